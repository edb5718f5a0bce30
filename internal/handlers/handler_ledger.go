package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bookkeeping_core/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_core/internal/dto"
	"github.com/SscSPs/bookkeeping_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler serves general-ledger queries.
type ledgerHandler struct {
	ledgerService portssvc.LedgerReaderSvc
}

func newLedgerHandler(ledgerService portssvc.LedgerReaderSvc) *ledgerHandler {
	return &ledgerHandler{ledgerService: ledgerService}
}

// registerLedgerRoutes registers the general-ledger route.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerReaderSvc) {
	h := newLedgerHandler(ledgerService)
	rg.GET("/ledger", h.queryLedger)
}

// queryLedger godoc
// @Summary Query the general ledger
// @Description Returns ledger rows ordered by date, account code and insertion sequence. Pass nextToken from a previous response to continue.
// @Tags ledger
// @Produce  json
// @Param   accountID query string false "Account ID"
// @Param   journalEntryID query string false "Journal entry ID"
// @Param   fromDate query string false "Start date (YYYY-MM-DD)"
// @Param   toDate query string false "End date (YYYY-MM-DD)"
// @Param   q query string false "Case-insensitive text over description, reference, account code and name"
// @Param   limit query int false "Page size, 0 for no limit" default(100)
// @Param   nextToken query string false "Token for the next page"
// @Success 200 {object} dto.ListLedgerResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to query ledger"
// @Router /ledger [get]
func (h *ledgerHandler) queryLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.LedgerQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for QueryGeneralLedger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	filter, err := params.ToFilter()
	if err != nil {
		respondWithError(c, logger, err, "Invalid query parameters")
		return
	}

	entries, nextToken, err := h.ledgerService.QueryGeneralLedger(c.Request.Context(), filter)
	if err != nil {
		respondWithError(c, logger, err, "Failed to query ledger")
		return
	}

	logger.Debug("Ledger queried", slog.Int("count", len(entries)), slog.Bool("has_more", nextToken != nil))
	c.JSON(http.StatusOK, dto.ToListLedgerResponse(entries, nextToken))
}
