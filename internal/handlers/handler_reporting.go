package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/financeflow/internal/core/ports/services"
	"github.com/SscSPs/financeflow/internal/dto"
	"github.com/SscSPs/financeflow/internal/middleware"
)

const maxRecentEntries = 50

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

// RegisterReportingRoutes registers routes related to financial reports
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/financial-summary", h.getFinancialSummary)
		reportingGroup.GET("/dashboard", h.getDashboard)
	}
}

// getTrialBalance godoc
// @Summary Trial balance
// @Description Lists every account balance in a debit or credit column, with column totals
// @Tags reports
// @Produce json
// @Success 200 {object} dto.TrialBalanceResponse
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tb := h.reportingService.TrialBalance(c.Request.Context())
	if !tb.IsBalanced() {
		logger.Warn("Trial balance does not balance",
			slog.String("total_debit", tb.TotalDebit.String()),
			slog.String("total_credit", tb.TotalCredit.String()))
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(tb))
}

// getFinancialSummary godoc
// @Summary Financial summary
// @Description Revenue, expense, profit, asset, liability and capital totals with the accounting equation check
// @Tags reports
// @Produce json
// @Success 200 {object} dto.FinancialSummaryResponse
// @Security BearerAuth
// @Router /reports/financial-summary [get]
func (h *reportingHandler) getFinancialSummary(c *gin.Context) {
	ctx := c.Request.Context()
	summary := h.reportingService.FinancialSummary(ctx)
	c.JSON(http.StatusOK, dto.ToFinancialSummaryResponse(summary, h.reportingService.ClassificationGaps(ctx)))
}

// getDashboard godoc
// @Summary Dashboard overview
// @Description Financial summary with balance-sheet composition ratios and the most recently created entries
// @Tags reports
// @Produce json
// @Param recent query int false "Number of recent entries (1-50)" default(5)
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} map[string]string "Invalid recent parameter"
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	recent := 0
	if raw := c.Query("recent"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxRecentEntries {
			logger.Warn("Invalid recent parameter", slog.String("recent", raw))
			c.JSON(http.StatusBadRequest, gin.H{"error": "recent must be an integer between 1 and 50"})
			return
		}
		recent = n
	}

	ctx := c.Request.Context()
	report := h.reportingService.Dashboard(ctx, recent)
	c.JSON(http.StatusOK, dto.ToDashboardResponse(report, h.reportingService.ClassificationGaps(ctx)))
}
