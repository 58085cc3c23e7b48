package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alonkrifcher/aura-insight-whisperer/internal"
	"github.com/alonkrifcher/aura-insight-whisperer/internal/auth"
	"github.com/alonkrifcher/aura-insight-whisperer/internal/service"
	"github.com/alonkrifcher/aura-insight-whisperer/internal/storage"
)

type app struct {
	logger        internal.Logger
	metrics       storage.DailyMetricRepository
	lifestyle     storage.LifestyleRepository
	syncer        *service.Syncer
	ouraToken     string
	insightWindow int
}

func (a *app) Logger() internal.Logger                    { return a.logger }
func (a *app) MetricsRepo() storage.DailyMetricRepository { return a.metrics }
func (a *app) LifestyleRepo() storage.LifestyleRepository { return a.lifestyle }
func (a *app) Syncer() *service.Syncer                    { return a.syncer }
func (a *app) OuraToken() string                          { return a.ouraToken }
func (a *app) InsightWindow() int                         { return a.insightWindow }

// NewApp bundles handler dependencies.
func NewApp(logger internal.Logger, repos *storage.Repositories, syncer *service.Syncer, ouraToken string, insightWindow int) App {
	return &app{
		logger:        logger,
		metrics:       repos.Metrics,
		lifestyle:     repos.Lifestyle,
		syncer:        syncer,
		ouraToken:     ouraToken,
		insightWindow: insightWindow,
	}
}

// NewRouter builds the gin engine with all routes mounted. Everything under
// /api requires a bearer token.
func NewRouter(a App, provider auth.Provider) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestIDMiddleware(), RequestLogMiddleware(a.Logger()))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	g := r.Group("/api")
	g.Use(auth.AuthMiddleware(provider))
	g.POST("/sync", PostSync(a))
	g.POST("/lifestyle", PostLifestyle(a))
	g.GET("/lifestyle", GetLifestyle(a))
	g.GET("/insights", GetInsights(a))
	g.GET("/metrics/daily", GetDailyMetrics(a))

	return r
}
