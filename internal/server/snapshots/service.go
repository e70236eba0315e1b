package snapshots

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/qianzhu/lifeplanner/internal/common"
	"github.com/qianzhu/lifeplanner/internal/logging"
	"github.com/qianzhu/lifeplanner/internal/server/models"
)

const (
	financePrompt   = "请提供今日3条最重要的全球金融市场动态，每条不超过50字。"
	healthPrompt    = "请提供一条实用的健康小贴士，不超过100字。"
	educationPrompt = "请提供一条关于K12教育或高等教育的最新资讯或建议，不超过100字。"
)

// ContentClient produces one free-form digest item per prompt.
type ContentClient interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// OpenAIContentClient calls an OpenAI-compatible completion endpoint for
// digest items. Unlike advice generation there is no system prompt and no
// structured output.
type OpenAIContentClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIContentClient(apiKey, baseURL, model string) *OpenAIContentClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIContentClient{client: openai.NewClientWithConfig(cfg), model: model}
}

func (c *OpenAIContentClient) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		Messages:  []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: prompt}},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

// Service serves the day's snapshot: Redis first, then Postgres, generating
// and persisting a new one only when neither has today's row.
type Service struct {
	repo    Repository
	cache   DayCache
	content ContentClient
	logger  logging.Logger
	now     func() time.Time
}

func NewService(repo Repository, cache DayCache, content ContentClient, logger logging.Logger) *Service {
	return &Service{repo: repo, cache: cache, content: content, logger: logger, now: time.Now}
}

// Get returns today's snapshot, generating it on first call of the day.
// Cache failures are soft; storage and generation failures are not.
func (s *Service) Get(ctx context.Context) (*models.DailySnapshot, error) {
	today := s.now().Format(common.DateLayout)

	if s.cache != nil {
		snap, err := s.cache.Get(ctx, today)
		if err == nil {
			return snap, nil
		}
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "snapshot cache read failed", "date", today, "error", err)
		}
	}

	snap, err := s.repo.GetByDate(ctx, today)
	if err == nil {
		s.cacheSet(ctx, snap)
		return snap, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("snapshot lookup: %w", err)
	}

	snap, err = s.generate(ctx, today)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, snap); err != nil {
		// Another instance may have generated concurrently; the stored row
		// wins so every dashboard shows the same digest.
		s.logger.Warn(ctx, "snapshot insert failed", "date", today, "error", err)
		if stored, lookupErr := s.repo.GetByDate(ctx, today); lookupErr == nil {
			snap = stored
		}
	}

	s.cacheSet(ctx, snap)
	return snap, nil
}

func (s *Service) generate(ctx context.Context, date string) (*models.DailySnapshot, error) {
	finance, err := s.content.Complete(ctx, financePrompt, 200)
	if err != nil {
		return nil, fmt.Errorf("finance digest: %w", err)
	}
	health, err := s.content.Complete(ctx, healthPrompt, 150)
	if err != nil {
		return nil, fmt.Errorf("health digest: %w", err)
	}
	education, err := s.content.Complete(ctx, educationPrompt, 150)
	if err != nil {
		return nil, fmt.Errorf("education digest: %w", err)
	}

	return &models.DailySnapshot{
		Date:          date,
		FinanceNews:   finance,
		HealthTips:    health,
		EducationInfo: education,
		CreatedAt:     s.now(),
	}, nil
}

func (s *Service) cacheSet(ctx context.Context, snap *models.DailySnapshot) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, snap); err != nil {
		s.logger.Warn(ctx, "snapshot cache write failed", "date", snap.Date, "error", err)
	}
}
