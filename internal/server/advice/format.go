package advice

import (
	"encoding/json"
	"fmt"
	"strings"
)

type structuredSuggestion struct {
	Summary         string `json:"summary"`
	Recommendations []any  `json:"recommendations"`
	Actions         []any  `json:"actions"`
	Risks           []any  `json:"risks"`
	Confidence      any    `json:"confidence"`
}

// FormatSuggestion turns the model's structured JSON reply into the labeled
// display text. The reply may be wrapped in prose or a code fence, so the
// JSON object is taken from the first '{' onward. Anything unparsable is
// returned verbatim rather than dropped.
func FormatSuggestion(content string) string {
	text := content
	if start := strings.Index(text, "{"); start != -1 {
		text = text[start:]
	}

	var parsed structuredSuggestion
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return content
	}

	var lines []string
	if parsed.Summary != "" {
		lines = append(lines, parsed.Summary)
	}
	lines = appendSection(lines, "推荐要点:", parsed.Recommendations)
	lines = appendSection(lines, "可执行步骤:", parsed.Actions)
	lines = appendSection(lines, "潜在风险:", parsed.Risks)
	if parsed.Confidence != nil {
		lines = append(lines, fmt.Sprintf("\n可信度: %v%%", parsed.Confidence))
	}

	return strings.Join(lines, "\n")
}

func appendSection(lines []string, header string, items []any) []string {
	if len(items) == 0 {
		return lines
	}
	lines = append(lines, "\n"+header)
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("- %v", item))
	}
	return lines
}
