package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/finbooks/finbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// reportingHandler handles HTTP requests related to financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to financial reports
// within an organization.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/profit-and-loss", h.getProfitAndLoss)
		reports.GET("/balance-sheet", h.getBalanceSheet)
	}
}

// getTrialBalance godoc
// @Summary Generate a trial balance report
// @Description Lists every active account with its current balance placed on the debit or credit side. Total debits always equal total credits.
// @Tags reports
// @Produce json
// @Param org_id path string true "Organization ID"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /organizations/{org_id}/reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rows, err := h.reportingService.TrialBalance(c.Request.Context(), orgID, userID)
	if err != nil {
		respondWithError(c, logger, err, "generate trial balance")
		return
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, row := range rows {
		totalDebit = totalDebit.Add(row.Debit)
		totalCredit = totalCredit.Add(row.Credit)
	}

	logger.Info("Trial balance generated", slog.Int("rows", len(rows)))
	c.JSON(http.StatusOK, dto.TrialBalanceResponse{
		Rows:        rows,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
	})
}

// getProfitAndLoss godoc
// @Summary Generate a profit and loss report
// @Description Aggregates revenue, cost of goods sold and expenses from posted journal activity over a period.
// @Tags reports
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param from query string true "Period start (YYYY-MM-DD)"
// @Param to query string true "Period end (YYYY-MM-DD)"
// @Success 200 {object} domain.PAndLReport
// @Failure 400 {object} map[string]string "Invalid date range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /organizations/{org_id}/reports/profit-and-loss [get]
func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	from, err := time.Parse("2006-01-02", params.From)
	if err != nil {
		logger.Warn("Invalid from date", slog.String("from", params.From))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date. Use YYYY-MM-DD"})
		return
	}
	to, err := time.Parse("2006-01-02", params.To)
	if err != nil {
		logger.Warn("Invalid to date", slog.String("to", params.To))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date. Use YYYY-MM-DD"})
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to date must not be before from date"})
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), orgID, from, to, userID)
	if err != nil {
		respondWithError(c, logger, err, "generate profit and loss report")
		return
	}

	logger.Info("Profit and loss report generated", slog.Time("from", from), slog.Time("to", to))
	c.JSON(http.StatusOK, report)
}

// getBalanceSheet godoc
// @Summary Generate a balance sheet report
// @Description Presents assets against liabilities and equity as of a date, from posted journal activity.
// @Tags reports
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param asOf query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} domain.BalanceSheetReport
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /organizations/{org_id}/reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asOfStr := c.DefaultQuery("asOf", time.Now().Format("2006-01-02"))
	asOf, err := time.Parse("2006-01-02", asOfStr)
	if err != nil {
		logger.Warn("Invalid asOf date", slog.String("asOf", asOfStr))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date. Use YYYY-MM-DD"})
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), orgID, asOf, userID)
	if err != nil {
		respondWithError(c, logger, err, "generate balance sheet")
		return
	}

	logger.Info("Balance sheet generated", slog.Time("as_of", asOf))
	c.JSON(http.StatusOK, report)
}
