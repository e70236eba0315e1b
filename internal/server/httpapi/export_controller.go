package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qianzhu/lifeplanner/internal/logging"
	"github.com/qianzhu/lifeplanner/internal/server/export"
)

type ExportController struct {
	export    *export.Service
	secretKey []byte
	logger    logging.Logger
}

func NewExportController(exportService *export.Service, secretKey []byte, logger logging.Logger) *ExportController {
	return &ExportController{export: exportService, secretKey: secretKey, logger: logger}
}

func (c *ExportController) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/export", Auth(c.secretKey), c.exportRecord)
}

func (c *ExportController) exportRecord(ctx *gin.Context) {
	url, err := c.export.Export(ctx.Request.Context(), UserID(ctx))
	if err != nil {
		c.logger.Error(ctx.Request.Context(), "record export failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"url": url})
}
