package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/bookkeeping_core/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_core/internal/dto"
	"github.com/SscSPs/bookkeeping_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/profit-and-loss", h.getProfitAndLoss)
	}
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Aggregates ledger rows dated on or before asOf into per-account debit and credit balances
// @Tags reports
// @Produce json
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOfStr := c.DefaultQuery("asOf", time.Now().Format(dto.DateLayout))
	asOf, err := time.Parse(dto.DateLayout, asOfStr)
	if err != nil {
		logger.Warn("Invalid asOf date format", slog.String("asOf", asOfStr), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	logger = logger.With(slog.String("asOf", asOfStr))
	logger.Info("Received request to generate trial balance report")

	tb, err := h.reportingService.GenerateTrialBalance(c.Request.Context(), asOf)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate trial balance report")
		return
	}

	if !tb.IsBalanced {
		logger.Error("Trial balance is out of balance",
			slog.String("total_debits", tb.TotalDebits.String()),
			slog.String("total_credits", tb.TotalCredits.String()))
	}

	logger.Info("Trial balance report generated successfully", slog.Int("row_count", len(tb.Entries)))
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(tb))
}

// getProfitAndLoss godoc
// @Summary Generate profit and loss report
// @Description Sums revenue and expense activity within a date window on each account's normal side
// @Tags reports
// @Produce json
// @Param fromDate query string false "Start date (YYYY-MM-DD)" default(first day of current month)
// @Param toDate query string false "End date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.ProfitAndLossResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /reports/profit-and-loss [get]
func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	now := time.Now()

	// Default from date is first day of current month
	firstDayOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	fromStr := c.DefaultQuery("fromDate", firstDayOfMonth.Format(dto.DateLayout))
	from, err := time.Parse(dto.DateLayout, fromStr)
	if err != nil {
		logger.Warn("Invalid from date format", slog.String("fromDate", fromStr), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fromDate format. Use YYYY-MM-DD"})
		return
	}

	toStr := c.DefaultQuery("toDate", now.Format(dto.DateLayout))
	to, err := time.Parse(dto.DateLayout, toStr)
	if err != nil {
		logger.Warn("Invalid to date format", slog.String("toDate", toStr), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid toDate format. Use YYYY-MM-DD"})
		return
	}

	logger = logger.With(
		slog.String("fromDate", fromStr),
		slog.String("toDate", toStr),
	)
	logger.Info("Received request to generate profit and loss report")

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), from, to)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate profit and loss report")
		return
	}

	logger.Info("Profit and loss report generated successfully",
		slog.Int("revenue_accounts", len(report.Revenue)),
		slog.Int("expense_accounts", len(report.Expenses)))
	c.JSON(http.StatusOK, dto.ToProfitAndLossResponse(report))
}
