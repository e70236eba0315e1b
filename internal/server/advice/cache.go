package advice

import (
	"context"
	"time"

	"github.com/qianzhu/lifeplanner/internal/common"
	"github.com/qianzhu/lifeplanner/internal/logging"
	"github.com/qianzhu/lifeplanner/internal/server/records"
)

// Source reports where a suggestion came from.
type Source int

const (
	// SourceCached: today's stored suggestion was reused.
	SourceCached Source = iota
	// SourceFresh: a new suggestion was generated (and cached when possible).
	SourceFresh
	// SourceFallback: generation failed and the placeholder text is returned.
	SourceFallback
)

// recordStore is the slice of the record service the cache needs.
type recordStore interface {
	LoadRaw(ctx context.Context, userID string) (records.Fields, error)
	Save(ctx context.Context, userID string, fields records.Fields) error
}

// Cache serves at most one generated suggestion per user, category and
// calendar day, stored in the user's own record row. Every cache-path
// failure degrades to a direct uncached generation so advice keeps flowing
// when storage is down.
type Cache struct {
	generator Generator
	store     recordStore
	logger    logging.Logger
	now       func() time.Time
}

func NewCache(generator Generator, store recordStore, logger logging.Logger) *Cache {
	return &Cache{generator: generator, store: store, logger: logger, now: time.Now}
}

// Suggestion returns the advice text for the given category. With an empty
// userID (anonymous session) the cache is bypassed entirely. forceRefresh
// skips the same-day check but still writes the new suggestion back.
// Generation failures yield the placeholder text with SourceFallback; the
// placeholder is never cached, so the next request retries.
func (c *Cache) Suggestion(ctx context.Context, userID, promptContext, category string, forceRefresh bool) (string, Source) {
	if userID == "" {
		return c.generate(ctx, promptContext, category)
	}

	raw, err := c.store.LoadRaw(ctx, userID)
	if err != nil {
		c.logger.Error(ctx, "advice cache read failed", "user_id", userID, "category", category, "error", err)
		return c.generate(ctx, promptContext, category)
	}

	textKey, dateKey := records.SuggestionFields(category)
	today := c.now().Format(common.DateLayout)

	if !forceRefresh {
		cached := stringValue(raw[textKey])
		if cached != "" && dateValue(raw[dateKey]) == today {
			return cached, SourceCached
		}
	}

	text, source := c.generate(ctx, promptContext, category)
	if source == SourceFallback {
		return text, source
	}

	update := records.Fields{textKey: text, dateKey: today}
	if err := c.store.Save(ctx, userID, update); err != nil {
		c.logger.Error(ctx, "advice cache write failed", "user_id", userID, "category", category, "error", err)
	}
	return text, source
}

func (c *Cache) generate(ctx context.Context, promptContext, category string) (string, Source) {
	text, err := c.generator.Suggest(ctx, promptContext, category)
	if err != nil {
		c.logger.Error(ctx, "suggestion generation failed", "category", category, "error", err)
		return Placeholder(err), SourceFallback
	}
	return text, SourceFresh
}

func stringValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	}
	return ""
}

// dateValue renders a stored generation date for comparison with today.
// Date columns may scan as time.Time, string or raw bytes.
func dateValue(v any) string {
	switch x := v.(type) {
	case time.Time:
		return x.Format(common.DateLayout)
	case string:
		return x
	case []byte:
		return string(x)
	}
	return ""
}
