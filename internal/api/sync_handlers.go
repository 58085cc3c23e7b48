package api

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/alonkrifcher/aura-insight-whisperer/internal"
)

// SyncRequest optionally overrides the synced range and the Oura credential.
// An empty body syncs the configured default range with the server token.
type SyncRequest struct {
	Days  int    `json:"days"`
	Token string `json:"token"`
}

func PostSync(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var req SyncRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if req.Days < 0 || req.Days > 31 {
			HandleError(c, app.Logger(), errors.New("days out of range"), 400, "'days' must be between 1 and 31")
			return
		}

		token := req.Token
		if token == "" {
			token = app.OuraToken()
		}
		if token == "" {
			HandleError(c, app.Logger(), errors.New("no token configured"), 500, "Oura API token not configured")
			return
		}

		result, err := app.Syncer().Sync(c.Request.Context(), user, token, req.Days)
		if err != nil {
			if errors.Is(err, internal.ErrUpstream) {
				HandleError(c, app.Logger(), err, 502, "Failed to fetch from Oura API")
				return
			}
			// Storage failed partway; report how far the batch got.
			msg := "Failed to save data"
			if result != nil {
				msg = result.Message
			}
			HandleError(c, app.Logger(), err, 500, msg)
			return
		}

		HandleSuccess(c, app.Logger(), result, nil)
	}
}
