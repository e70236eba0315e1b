package advice

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSuggestion_StructuredReply(t *testing.T) {
	content := `{
		"summary": "整体财务状况稳健。",
		"recommendations": ["提高权益类占比", "建立应急基金"],
		"actions": ["每月定投5000元"],
		"risks": ["市场波动风险"],
		"confidence": 85
	}`

	out := FormatSuggestion(content)

	assert.True(t, strings.HasPrefix(out, "整体财务状况稳健。"))
	assert.Contains(t, out, "推荐要点:")
	assert.Contains(t, out, "- 提高权益类占比")
	assert.Contains(t, out, "- 建立应急基金")
	assert.Contains(t, out, "可执行步骤:")
	assert.Contains(t, out, "- 每月定投5000元")
	assert.Contains(t, out, "潜在风险:")
	assert.Contains(t, out, "- 市场波动风险")
	assert.Contains(t, out, "可信度: 85%")
}

func TestFormatSuggestion_SkipsEmptySections(t *testing.T) {
	out := FormatSuggestion(`{"summary": "一切正常。", "recommendations": [], "confidence": null}`)

	assert.Equal(t, "一切正常。", out)
	assert.NotContains(t, out, "推荐要点")
	assert.NotContains(t, out, "可信度")
}

func TestFormatSuggestion_ExtractsObjectFromProse(t *testing.T) {
	content := "好的，以下是分析结果：\n" +
		`{"summary": "建议分散投资。", "risks": ["集中度过高"]}`

	out := FormatSuggestion(content)
	assert.Contains(t, out, "建议分散投资。")
	assert.Contains(t, out, "- 集中度过高")
}

func TestFormatSuggestion_UnparsableReturnsVerbatim(t *testing.T) {
	content := "模型这次只返回了普通文本建议。"
	assert.Equal(t, content, FormatSuggestion(content))

	content = "前缀 {broken json"
	assert.Equal(t, content, FormatSuggestion(content))
}
