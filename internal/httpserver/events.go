package httpserver

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"
)

const keepAliveInterval = 30 * time.Second

// events streams a "changed" event after every committed store change.
// Clients refetch whatever view they show.
func (h *handlers) events(c *gin.Context) {
	ch, cancel := h.store.Subscribe()
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("ready", gin.H{"userId": h.store.Identity().UserID})
	c.Writer.Flush()

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-ch:
			c.SSEvent("changed", gin.H{"updatedAt": h.store.Snapshot().UpdatedAt})
			return true
		case <-ticker.C:
			c.SSEvent("ping", gin.H{})
			return true
		}
	})
}
