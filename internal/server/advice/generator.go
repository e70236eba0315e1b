// Package advice generates per-category AI suggestions, formats the model's
// structured output for display and caches one suggestion per user, category
// and calendar day in the user's record.
package advice

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "你是一位资深的职业顾问和分析师，面向中高净值用户。请基于用户给出的上下文，生成结构化的JSON输出，" +
	"包含以下字段：summary(一句话总结), recommendations(要点列表), actions(可执行步骤列表), risks(潜在风险列表), confidence(可信度，0-100)。" +
	"返回必须是有效JSON，不包含其他无关文本。每个列表项为字符串。"

// Generator produces a display-ready suggestion for a category given the
// prompt context built from the user's record.
type Generator interface {
	Suggest(ctx context.Context, promptContext, category string) (string, error)
}

// Placeholder is the text shown in place of a suggestion when generation
// fails. It is never written to the cache, so the next request retries.
func Placeholder(err error) string {
	return fmt.Sprintf("建议生成中遇到问题，请稍后再试。错误：%v", err)
}

// OpenAIGenerator calls an OpenAI-compatible chat completion endpoint.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

func NewOpenAIGenerator(apiKey, baseURL, model string) *OpenAIGenerator {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIGenerator{client: openai.NewClientWithConfig(cfg), model: model}
}

func (g *OpenAIGenerator) Suggest(ctx context.Context, promptContext, category string) (string, error) {
	userPrompt := fmt.Sprintf(
		"数据类型：%s\n用户上下文：\n%s\n\n请以JSON格式返回结果，保持字段完整且简洁。",
		category, promptContext,
	)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		MaxTokens:   500,
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}

	return FormatSuggestion(resp.Choices[0].Message.Content), nil
}
