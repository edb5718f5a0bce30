package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bookkeeping_core/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_core/internal/dto"
	"github.com/SscSPs/bookkeeping_core/internal/middleware"
	"github.com/gin-gonic/gin"
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

// registerJournalRoutes registers routes related to journal entries.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createJournalEntry)
		entries.GET("", h.listJournalEntries)
		entries.GET("/:id", h.getJournalEntry)
		entries.POST("/:id/post", h.postJournalEntry)
		entries.POST("/:id/reverse", h.reverseJournalEntry)
		entries.DELETE("/:id", h.deleteJournalEntry)
	}
}

// createJournalEntry godoc
// @Summary Create a draft journal entry
// @Description Validates a balanced set of lines and stores them as a DRAFT entry with the next number for its year
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   X-User-ID header string false "Acting user"
// @Param   entry body dto.CreateJournalEntryRequest true "Journal entry"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid lines, unknown account or unbalanced entry"
// @Failure 500 {object} map[string]string "Failed to create journal entry"
// @Router /journal-entries [post]
func (h *journalHandler) createJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateJournalEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Acting user not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Acting user not resolved"})
		return
	}

	logger = logger.With(slog.String("actor", actor))
	logger.Info("Received request to create journal entry", slog.Int("line_count", len(req.Lines)))

	entry, err := h.journalService.CreateJournalEntry(c.Request.Context(), req, actor)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create journal entry")
		return
	}

	logger.Info("Journal entry created successfully",
		slog.String("journal_entry_id", entry.JournalEntryID),
		slog.String("number", entry.Number))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// getJournalEntry godoc
// @Summary Get a journal entry
// @Description Retrieves a journal entry with its lines
// @Tags journal-entries
// @Produce  json
// @Param   id path string true "Journal entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal entry"
// @Router /journal-entries/{id} [get]
func (h *journalHandler) getJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")
	logger = logger.With(slog.String("journal_entry_id", entryID))

	entry, err := h.journalService.GetJournalEntryByID(c.Request.Context(), entryID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listJournalEntries godoc
// @Summary List journal entries
// @Description Lists journal entries ordered by date then number, optionally filtered by status and date range
// @Tags journal-entries
// @Produce  json
// @Param   status query string false "Status filter" Enums(DRAFT, POSTED, REVERSED)
// @Param   fromDate query string false "Start date (YYYY-MM-DD)"
// @Param   toDate query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list journal entries"
// @Router /journal-entries [get]
func (h *journalHandler) listJournalEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListJournalEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	filter, err := params.ToFilter()
	if err != nil {
		respondWithError(c, logger, err, "Invalid query parameters")
		return
	}

	entries, err := h.journalService.ListJournalEntries(c.Request.Context(), filter)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list journal entries")
		return
	}

	logger.Info("Journal entries listed successfully", slog.Int("count", len(entries)))
	c.JSON(http.StatusOK, dto.ToListJournalEntriesResponse(entries))
}

// postJournalEntry godoc
// @Summary Post a draft journal entry
// @Description Moves a DRAFT entry to POSTED, appends its ledger rows and updates account balances in one transaction
// @Tags journal-entries
// @Produce  json
// @Param   X-User-ID header string false "Acting user"
// @Param   id path string true "Journal entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 409 {object} map[string]string "Journal entry is not a draft"
// @Failure 500 {object} map[string]string "Failed to post journal entry"
// @Router /journal-entries/{id}/post [post]
func (h *journalHandler) postJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Acting user not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Acting user not resolved"})
		return
	}

	logger = logger.With(slog.String("journal_entry_id", entryID), slog.String("actor", actor))
	logger.Info("Received request to post journal entry")

	entry, err := h.journalService.PostJournalEntry(c.Request.Context(), entryID, actor)
	if err != nil {
		respondWithError(c, logger, err, "Failed to post journal entry")
		return
	}

	logger.Info("Journal entry posted successfully", slog.String("number", entry.Number))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// reverseJournalEntry godoc
// @Summary Reverse a posted journal entry
// @Description Posts an offsetting entry with debits and credits swapped and marks the original REVERSED
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   X-User-ID header string false "Acting user"
// @Param   id path string true "Journal entry ID"
// @Param   reversal body dto.ReverseJournalEntryRequest true "Reversal reason"
// @Success 201 {object} dto.JournalEntryResponse "The offsetting entry"
// @Failure 400 {object} map[string]string "Missing reason"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 409 {object} map[string]string "Journal entry cannot be reversed"
// @Failure 500 {object} map[string]string "Failed to reverse journal entry"
// @Router /journal-entries/{id}/reverse [post]
func (h *journalHandler) reverseJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	var req dto.ReverseJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReverseJournalEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Acting user not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Acting user not resolved"})
		return
	}

	logger = logger.With(slog.String("journal_entry_id", entryID), slog.String("actor", actor))
	logger.Info("Received request to reverse journal entry")

	reversal, err := h.journalService.ReverseJournalEntry(c.Request.Context(), entryID, req.Reason, actor)
	if err != nil {
		respondWithError(c, logger, err, "Failed to reverse journal entry")
		return
	}

	logger.Info("Journal entry reversed successfully",
		slog.String("reversal_id", reversal.JournalEntryID),
		slog.String("reversal_number", reversal.Number))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(reversal))
}

// deleteJournalEntry godoc
// @Summary Delete a draft journal entry
// @Description Removes a journal entry that has not been posted
// @Tags journal-entries
// @Produce  json
// @Param   id path string true "Journal entry ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 409 {object} map[string]string "Journal entry is not a draft"
// @Failure 500 {object} map[string]string "Failed to delete journal entry"
// @Router /journal-entries/{id} [delete]
func (h *journalHandler) deleteJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")
	logger = logger.With(slog.String("journal_entry_id", entryID))
	logger.Info("Received request to delete journal entry")

	if err := h.journalService.DeleteJournalEntry(c.Request.Context(), entryID); err != nil {
		respondWithError(c, logger, err, "Failed to delete journal entry")
		return
	}

	logger.Info("Journal entry deleted successfully")
	c.Status(http.StatusNoContent)
}
