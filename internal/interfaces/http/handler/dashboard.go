package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aqari/backend/internal/application/report"
	"github.com/aqari/backend/internal/domain/shared"
	"github.com/aqari/backend/internal/domain/shared/valueobject"
)

// DashboardHandler handles reporting and dashboard endpoints
type DashboardHandler struct {
	BaseHandler
	dashboardService *report.DashboardService
	clock            shared.Clock
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *report.DashboardService, clock shared.Clock) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		clock:            clock,
	}
}

// intQuery parses a bounded integer query parameter, falling back to def
func intQuery(c *gin.Context, name string, def, min, max int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < min || v > max {
		return def
	}
	return v
}

// rangeQuery parses from/to date filters, defaulting to the last 12 months
func (h *DashboardHandler) rangeQuery(c *gin.Context) (time.Time, time.Time, bool) {
	today := h.clock.Today()
	from := today.AddDate(-1, 0, 0)
	to := today.AddDate(0, 0, 1)

	if f := c.Query("from"); f != "" {
		parsed, err := parseDate(f)
		if err != nil {
			return from, to, false
		}
		from = parsed
	}
	if t := c.Query("to"); t != "" {
		parsed, err := parseDate(t)
		if err != nil {
			return from, to, false
		}
		to = parsed.AddDate(0, 0, 1)
	}
	return from, to, true
}

// Overview returns the headline dashboard card
func (h *DashboardHandler) Overview(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	overview, err := h.dashboardService.GetOverview(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, overview)
}

// FinancialSummary returns the financials for one billing period
func (h *DashboardHandler) FinancialSummary(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var period *valueobject.Period
	if p := c.Query("period"); p != "" {
		parsed, err := valueobject.ParsePeriod(p)
		if err != nil {
			h.BadRequest(c, "Period must look like 2025-01")
			return
		}
		period = &parsed
	}

	summary, err := h.dashboardService.GetFinancialSummary(c.Request.Context(), ownerID, period)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// MonthlyRevenue returns a per-month financial series
func (h *DashboardHandler) MonthlyRevenue(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	months := intQuery(c, "months", 12, 1, 36)
	series, err := h.dashboardService.GetMonthlyRevenue(c.Request.Context(), ownerID, months)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, series)
}

// PropertyPerformance ranks properties by collected revenue
func (h *DashboardHandler) PropertyPerformance(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	from, to, ok := h.rangeQuery(c)
	if !ok {
		h.BadRequest(c, "Dates must look like 2025-01-31")
		return
	}
	limit := intQuery(c, "limit", 5, 1, 50)

	performance, err := h.dashboardService.GetPropertyPerformance(c.Request.Context(), ownerID, from, to, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, performance)
}

// ExpenseBreakdown returns expense totals grouped by category
func (h *DashboardHandler) ExpenseBreakdown(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	from, to, ok := h.rangeQuery(c)
	if !ok {
		h.BadRequest(c, "Dates must look like 2025-01-31")
		return
	}

	breakdown, err := h.dashboardService.GetExpenseBreakdown(c.Request.Context(), ownerID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, breakdown)
}

// OverdueInvoices lists unpaid invoices past their due date
func (h *DashboardHandler) OverdueInvoices(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	invoices, err := h.dashboardService.GetOverdueInvoices(c.Request.Context(), ownerID, parseFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoices)
}

// TopProperties ranks properties by how full they are
func (h *DashboardHandler) TopProperties(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	limit := intQuery(c, "limit", 5, 1, 50)
	properties, err := h.dashboardService.GetTopProperties(c.Request.Context(), ownerID, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, properties)
}

// RecentActivity returns the merged feed of payments, expenses and leases
func (h *DashboardHandler) RecentActivity(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	limit := intQuery(c, "limit", 10, 1, 50)
	feed, err := h.dashboardService.GetRecentActivity(c.Request.Context(), ownerID, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, feed)
}

// RecentPayments returns the latest recorded payments
func (h *DashboardHandler) RecentPayments(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	limit := intQuery(c, "limit", 10, 1, 100)
	payments, err := h.dashboardService.GetRecentPayments(c.Request.Context(), ownerID, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}
