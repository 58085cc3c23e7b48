package api

import (
	"github.com/gin-gonic/gin"

	"github.com/alonkrifcher/aura-insight-whisperer/internal"
)

func GetDailyMetrics(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		limit := parseLimit(c.Query("limit"), 30)
		records, err := app.MetricsRepo().ListDailyMetrics(c.Request.Context(), user.ID, limit)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch daily metrics")
			return
		}

		HandleSuccess(c, app.Logger(), records, nil)
	}
}
