// Package httpapi exposes the application over HTTP/JSON: account
// registration and login, record reads and per-form writes, per-category
// advice, the daily digest and personal-data export.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/qianzhu/lifeplanner/internal/logging"
)

// Controller registers its routes on the shared router.
type Controller interface {
	RegisterRoutes(router *gin.Engine)
}

func NewHTTPServer(addr string, logger logging.Logger, controllers ...Controller) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(logger))

	for _, controller := range controllers {
		controller.RegisterRoutes(router)
	}

	return &http.Server{
		Handler:           router,
		Addr:              addr,
		ReadHeaderTimeout: 3 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       15 * time.Second,
	}
}
