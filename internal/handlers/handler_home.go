package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/financeflow/internal/core/ports/services"
)

// getHealth godoc
// @Summary Show the status of server.
// @Description Reports liveness and whether the derived reports are consistent with the journal.
// @Tags root
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func getHealth(book portssvc.BookStateReaderSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		snapshot := book.Snapshot(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"state":     book.State(c.Request.Context()),
			"version":   snapshot.Version,
			"entries":   len(snapshot.JournalEntries),
			"rebuiltAt": snapshot.RebuiltAt,
		})
	}
}
