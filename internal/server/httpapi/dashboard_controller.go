package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qianzhu/lifeplanner/internal/logging"
	"github.com/qianzhu/lifeplanner/internal/server/advice"
	"github.com/qianzhu/lifeplanner/internal/server/records"
	"github.com/qianzhu/lifeplanner/internal/server/scores"
)

// DashboardController aggregates the landing-page view: headline metrics
// from the record, the shared daily digest and the cached overview advice.
type DashboardController struct {
	records   *records.Service
	cache     *advice.Cache
	secretKey []byte
	logger    logging.Logger
}

func NewDashboardController(
	recordService *records.Service,
	cache *advice.Cache,
	secretKey []byte,
	logger logging.Logger,
) *DashboardController {
	return &DashboardController{records: recordService, cache: cache, secretKey: secretKey, logger: logger}
}

func (c *DashboardController) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/dashboard", Auth(c.secretKey), c.getDashboard)
}

func (c *DashboardController) getDashboard(ctx *gin.Context) {
	userID := UserID(ctx)

	fields, origin, err := c.records.Load(ctx.Request.Context(), userID)
	if err != nil {
		c.logger.Error(ctx.Request.Context(), "dashboard record load degraded", "error", err)
	}

	var bmiStatus string
	if bmi, ok := fields["bmi"].(float64); ok {
		bmiStatus = scores.BMIStatus(bmi)
	}

	suggestion, source := c.cache.Suggestion(
		ctx.Request.Context(), userID, advice.DashboardContext(fields), advice.CategoryLife, false,
	)

	ctx.JSON(http.StatusOK, gin.H{
		"origin": originLabel(origin),
		"metrics": gin.H{
			"total_assets":       fields["total_assets"],
			"health_score":       fields["health_score"],
			"education_progress": fields["education_progress"],
			"life_score":         fields["life_score"],
			"bmi_status":         bmiStatus,
		},
		"suggestion":        suggestion,
		"suggestion_source": sourceLabel(source),
	})
}
