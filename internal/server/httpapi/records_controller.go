package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qianzhu/lifeplanner/internal/logging"
	"github.com/qianzhu/lifeplanner/internal/server/records"
	"github.com/qianzhu/lifeplanner/internal/server/scores"
)

type RecordsController struct {
	records   *records.Service
	secretKey []byte
	logger    logging.Logger
}

func NewRecordsController(recordService *records.Service, secretKey []byte, logger logging.Logger) *RecordsController {
	return &RecordsController{records: recordService, secretKey: secretKey, logger: logger}
}

func (c *RecordsController) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api", Auth(c.secretKey))
	group.GET("/record", c.getRecord)
	group.PUT("/record/financial", saveForm[records.FinancialForm](c))
	group.PUT("/record/health", saveForm[records.HealthForm](c))
	group.PUT("/record/education", saveForm[records.EducationForm](c))
	group.PUT("/record/lifeplan", c.saveLifePlan)
	group.PUT("/record/profile", saveForm[records.ProfileForm](c))
	group.PUT("/record/preferences", saveForm[records.PreferencesForm](c))
}

func originLabel(origin records.Origin) string {
	switch origin {
	case records.OriginStored:
		return "stored"
	case records.OriginDefault:
		return "default"
	default:
		return "fallback"
	}
}

func (c *RecordsController) getRecord(ctx *gin.Context) {
	fields, origin, err := c.records.Load(ctx.Request.Context(), UserID(ctx))
	if err != nil {
		// defaults are still served; the origin tells the client why
		c.logger.Error(ctx.Request.Context(), "record load degraded", "error", err)
	}
	ctx.JSON(http.StatusOK, gin.H{"record": fields, "origin": originLabel(origin)})
}

// form is any typed form that can flatten itself into a field bag.
type form interface {
	Fields() records.Fields
}

// saveForm binds the request body to the typed form F and saves the
// resulting fields. Save failures answer 200 with ok=false so the client
// keeps its local state instead of losing the submission.
func saveForm[F form](c *RecordsController) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var f F
		if err := ctx.ShouldBindJSON(&f); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "invalid request"})
			return
		}
		c.save(ctx, f.Fields())
	}
}

// saveLifePlan additionally derives the composite life score from the
// record as stored before this submission, matching the product's
// save-time semantics.
func (c *RecordsController) saveLifePlan(ctx *gin.Context) {
	var f records.LifePlanForm
	if err := ctx.ShouldBindJSON(&f); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "invalid request"})
		return
	}

	fields := f.Fields()

	raw, err := c.records.LoadRaw(ctx.Request.Context(), UserID(ctx))
	if err != nil {
		c.logger.Error(ctx.Request.Context(), "life score inputs unavailable", "error", err)
	} else {
		wealth, health, education := records.LifeScoreComponents(raw)
		fields["life_score"] = scores.Life(wealth, health, education)
	}

	c.save(ctx, fields)
}

func (c *RecordsController) save(ctx *gin.Context, fields records.Fields) {
	if err := c.records.Save(ctx.Request.Context(), UserID(ctx), fields); err != nil {
		c.logger.Error(ctx.Request.Context(), "record save failed", "error", err)
		ctx.JSON(http.StatusOK, gin.H{"ok": false, "message": "保存失败，请稍后再试"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}
