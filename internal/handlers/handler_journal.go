package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/financeflow/internal/core/ports/services"
	"github.com/SscSPs/financeflow/internal/dto"
	"github.com/SscSPs/financeflow/internal/middleware"
	"github.com/SscSPs/financeflow/internal/utils/pagination"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: journalService,
	}
}

// RegisterJournalRoutes registers routes related to journal entries
func RegisterJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/journal-entries")
	{
		entries.GET("", h.listEntries)
		entries.POST("", h.createEntry)
		entries.DELETE("", h.clearEntries)
		entries.GET("/:entryID", h.getEntry)
		entries.PUT("/:entryID", h.updateEntry)
		entries.DELETE("/:entryID", h.deleteEntry)
	}
}

// listEntries godoc
// @Summary List journal entries
// @Description Returns journal entries in log order, optionally one page at a time
// @Tags journal-entries
// @Produce json
// @Param limit query int false "Page size (1-500); omit for the whole journal"
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} map[string]string "Invalid or stale pagination token"
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind list journal entries query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	entries := h.journalService.ListEntries(c.Request.Context())

	start := 0
	if params.NextToken != "" {
		cursor, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			logger.Warn("Invalid pagination token", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ids := make([]string, len(entries))
		for i, e := range entries {
			ids[i] = e.ID
		}
		var ok bool
		if start, ok = pagination.NextStart(ids, cursor); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "pagination token refers to an entry that no longer exists"})
			return
		}
	}

	end := len(entries)
	if params.Limit > 0 && start+params.Limit < end {
		end = start + params.Limit
	}
	page := entries[start:end]

	resp := dto.ListJournalEntriesResponse{
		Entries: dto.ToJournalEntryResponses(page),
		Count:   len(page),
		Total:   len(entries),
	}
	if end < len(entries) {
		resp.NextToken = pagination.EncodeToken(pagination.Cursor{Position: end - 1, EntryID: entries[end-1].ID})
	}
	c.JSON(http.StatusOK, resp)
}

// getEntry godoc
// @Summary Get a journal entry
// @Tags journal-entries
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Security BearerAuth
// @Router /journal-entries/{entryID} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	entry, err := h.journalService.GetEntry(c.Request.Context(), entryID)
	if err != nil {
		respondServiceError(c, logger.With(slog.String("entry_id", entryID)), err, "Failed to retrieve journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// createEntry godoc
// @Summary Add a journal entry
// @Description Validates a balanced journal entry and appends it to the journal. Ledgers and reports are rebuilt before the response.
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param entry body dto.JournalEntryRequest true "Journal entry"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid or unbalanced entry"
// @Security BearerAuth
// @Router /journal-entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.JournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind journal entry request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := req.ToDomain()
	if err != nil {
		respondServiceError(c, logger, err, "Failed to add journal entry")
		return
	}

	stored, err := h.journalService.AddEntry(c.Request.Context(), entry)
	if err != nil && !(stored != nil && flagPersistenceError(c, logger, err)) {
		respondServiceError(c, logger, err, "Failed to add journal entry")
		return
	}

	logger.Info("Journal entry created", slog.String("entry_id", stored.ID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(stored))
}

// updateEntry godoc
// @Summary Replace a journal entry
// @Description Replaces the entry wholesale. The original creation time is kept.
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param entryID path string true "Entry ID"
// @Param entry body dto.JournalEntryRequest true "Replacement entry"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid or unbalanced entry"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Security BearerAuth
// @Router /journal-entries/{entryID} [put]
func (h *journalHandler) updateEntry(c *gin.Context) {
	entryID := c.Param("entryID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("entry_id", entryID))

	var req dto.JournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind journal entry request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if req.ID != "" && req.ID != entryID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Entry ID in body does not match path"})
		return
	}
	req.ID = entryID

	entry, err := req.ToDomain()
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update journal entry")
		return
	}

	updated, err := h.journalService.UpdateEntry(c.Request.Context(), entry)
	if err != nil && !(updated != nil && flagPersistenceError(c, logger, err)) {
		respondServiceError(c, logger, err, "Failed to update journal entry")
		return
	}

	logger.Info("Journal entry updated")
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(updated))
}

// deleteEntry godoc
// @Summary Remove a journal entry
// @Tags journal-entries
// @Param entryID path string true "Entry ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Security BearerAuth
// @Router /journal-entries/{entryID} [delete]
func (h *journalHandler) deleteEntry(c *gin.Context) {
	entryID := c.Param("entryID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("entry_id", entryID))

	err := h.journalService.RemoveEntry(c.Request.Context(), entryID)
	if err != nil && !flagPersistenceError(c, logger, err) {
		respondServiceError(c, logger, err, "Failed to remove journal entry")
		return
	}

	logger.Info("Journal entry removed")
	c.Status(http.StatusNoContent)
}

// clearEntries godoc
// @Summary Clear the journal
// @Description Removes every entry and the persisted journal
// @Tags journal-entries
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /journal-entries [delete]
func (h *journalHandler) clearEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	err := h.journalService.Clear(c.Request.Context())
	if err != nil && !flagPersistenceError(c, logger, err) {
		respondServiceError(c, logger, err, "Failed to clear journal")
		return
	}

	logger.Info("Journal cleared")
	c.Status(http.StatusNoContent)
}
