package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alonkrifcher/aura-insight-whisperer/internal"
	"github.com/alonkrifcher/aura-insight-whisperer/internal/service"
)

func PostLifestyle(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var body service.LifestyleEntryRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateLifestyleRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		entry, err := service.SaveLifestyleEntry(c.Request.Context(), app.LifestyleRepo(), user, &body)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save lifestyle entry")
			return
		}

		HandleSuccess(c, app.Logger(), entry, nil)
	}
}

func GetLifestyle(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		limit := parseLimit(c.Query("limit"), 30)
		entries, err := app.LifestyleRepo().ListLifestyleEntries(c.Request.Context(), user.ID, limit)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch lifestyle entries")
			return
		}

		HandleSuccess(c, app.Logger(), entries, nil)
	}
}

func parseLimit(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
