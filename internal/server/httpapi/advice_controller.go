package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qianzhu/lifeplanner/internal/logging"
	"github.com/qianzhu/lifeplanner/internal/server/advice"
	"github.com/qianzhu/lifeplanner/internal/server/models"
	"github.com/qianzhu/lifeplanner/internal/server/records"
	"github.com/qianzhu/lifeplanner/internal/server/snapshots"
)

type AdviceController struct {
	cache     *advice.Cache
	records   *records.Service
	snapshots *snapshots.Service
	secretKey []byte
	logger    logging.Logger
}

func NewAdviceController(
	cache *advice.Cache,
	recordService *records.Service,
	snapshotService *snapshots.Service,
	secretKey []byte,
	logger logging.Logger,
) *AdviceController {
	return &AdviceController{
		cache:     cache,
		records:   recordService,
		snapshots: snapshotService,
		secretKey: secretKey,
		logger:    logger,
	}
}

func (c *AdviceController) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/advice/:category", Auth(c.secretKey), c.getAdvice)
}

func sourceLabel(source advice.Source) string {
	switch source {
	case advice.SourceCached:
		return "cached"
	case advice.SourceFresh:
		return "fresh"
	default:
		return "fallback"
	}
}

func (c *AdviceController) getAdvice(ctx *gin.Context) {
	category := ctx.Param("category")
	forceRefresh := ctx.Query("refresh") == "1"
	userID := UserID(ctx)

	fields, _, err := c.records.Load(ctx.Request.Context(), userID)
	if err != nil {
		c.logger.Error(ctx.Request.Context(), "advice record load degraded", "error", err)
	}

	promptContext, ok := c.promptContext(ctx.Request.Context(), category, fields)
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "unknown advice category"})
		return
	}

	text, source := c.cache.Suggestion(ctx.Request.Context(), userID, promptContext, category, forceRefresh)
	ctx.JSON(http.StatusOK, gin.H{"suggestion": text, "source": sourceLabel(source)})
}

func (c *AdviceController) promptContext(ctx context.Context, category string, fields records.Fields) (string, bool) {
	switch category {
	case advice.CategoryLife:
		return advice.LifePlanContext(fields), true
	case advice.CategoryInvestment:
		return advice.InvestmentContext(fields, c.digest(ctx).FinanceNews), true
	case advice.CategoryHealth:
		return advice.HealthContext(fields, c.digest(ctx).HealthTips), true
	case advice.CategoryEducation:
		return advice.EducationContext(fields, c.digest(ctx).EducationInfo), true
	}
	return "", false
}

// digest fetches today's snapshot for prompt enrichment; advice still works
// with empty digest lines when the snapshot is unavailable.
func (c *AdviceController) digest(ctx context.Context) *models.DailySnapshot {
	snap, err := c.snapshots.Get(ctx)
	if err != nil {
		c.logger.Warn(ctx, "daily digest unavailable for advice prompt", "error", err)
		return &models.DailySnapshot{}
	}
	return snap
}
