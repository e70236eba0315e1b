package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qianzhu/lifeplanner/internal/logging"
	"github.com/qianzhu/lifeplanner/internal/server/snapshots"
)

type SnapshotsController struct {
	snapshots *snapshots.Service
	secretKey []byte
	logger    logging.Logger
}

func NewSnapshotsController(snapshotService *snapshots.Service, secretKey []byte, logger logging.Logger) *SnapshotsController {
	return &SnapshotsController{snapshots: snapshotService, secretKey: secretKey, logger: logger}
}

func (c *SnapshotsController) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/daily", Auth(c.secretKey), c.getDaily)
}

func (c *SnapshotsController) getDaily(ctx *gin.Context) {
	snap, err := c.snapshots.Get(ctx.Request.Context())
	if err != nil {
		c.logger.Error(ctx.Request.Context(), "daily digest fetch failed", "error", err)
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "daily updates unavailable"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"date":      snap.Date,
		"finance":   snap.FinanceNews,
		"health":    snap.HealthTips,
		"education": snap.EducationInfo,
	})
}
