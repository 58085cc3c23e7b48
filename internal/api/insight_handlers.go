package api

import (
	"github.com/gin-gonic/gin"

	"github.com/alonkrifcher/aura-insight-whisperer/internal"
	"github.com/alonkrifcher/aura-insight-whisperer/internal/service"
)

func GetInsights(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		window := parseLimit(c.Query("window"), app.InsightWindow())

		metrics, err := app.MetricsRepo().ListDailyMetrics(c.Request.Context(), user.ID, window)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch daily metrics")
			return
		}
		lifestyle, err := app.LifestyleRepo().ListLifestyleEntries(c.Request.Context(), user.ID, window)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch lifestyle entries")
			return
		}

		insights := service.GenerateInsights(metrics, lifestyle, window)
		meta := map[string]any{"window": window}
		HandleSuccess(c, app.Logger(), insights, meta)
	}
}
