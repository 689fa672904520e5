package report

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/aqari/backend/internal/domain/billing"
	"github.com/aqari/backend/internal/domain/finance"
	"github.com/aqari/backend/internal/domain/leasing"
	"github.com/aqari/backend/internal/domain/portfolio"
	"github.com/aqari/backend/internal/domain/shared"
	"github.com/aqari/backend/internal/domain/shared/valueobject"
	"github.com/aqari/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SnapshotCache stores rendered dashboard sections for a short while.
// A miss or a cache failure always falls through to the database.
type SnapshotCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// DashboardService aggregates portfolio, billing and expense data into the
// read models behind the dashboard endpoints. Everything here is read-only.
type DashboardService struct {
	propertyRepo portfolio.PropertyRepository
	unitRepo     portfolio.UnitRepository
	tenantRepo   portfolio.TenantRepository
	leaseRepo    leasing.LeaseRepository
	invoiceRepo  billing.InvoiceRepository
	paymentRepo  billing.PaymentRepository
	expenseRepo  finance.ExpenseRepository
	cache        SnapshotCache
	clock        shared.Clock
	logger       *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	propertyRepo portfolio.PropertyRepository,
	unitRepo portfolio.UnitRepository,
	tenantRepo portfolio.TenantRepository,
	leaseRepo leasing.LeaseRepository,
	invoiceRepo billing.InvoiceRepository,
	paymentRepo billing.PaymentRepository,
	expenseRepo finance.ExpenseRepository,
	cache SnapshotCache,
	clock shared.Clock,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		propertyRepo: propertyRepo,
		unitRepo:     unitRepo,
		tenantRepo:   tenantRepo,
		leaseRepo:    leaseRepo,
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
		expenseRepo:  expenseRepo,
		cache:        cache,
		clock:        clock,
		logger:       logger,
	}
}

const overviewCacheTTL = time.Minute

// Overview is the headline card of the dashboard
type Overview struct {
	Properties       int64           `json:"properties"`
	Units            int64           `json:"units"`
	OccupiedUnits    int64           `json:"occupied_units"`
	VacantUnits      int64           `json:"vacant_units"`
	OccupancyRate    float64         `json:"occupancy_rate"`
	Tenants          int64           `json:"tenants"`
	ActiveLeases     int64           `json:"active_leases"`
	OverdueInvoices  int64           `json:"overdue_invoices"`
	OutstandingTotal decimal.Decimal `json:"outstanding_total"`
}

// GetOverview returns the headline counts, served from cache when fresh
func (s *DashboardService) GetOverview(ctx context.Context, ownerID uuid.UUID) (*Overview, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "dashboard", "overview")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrOwnerID, ownerID.String())

	cacheKey := "dashboard:overview:" + ownerID.String()
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey); err == nil && raw != nil {
			var cached Overview
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	var o Overview
	var err error
	if o.Properties, err = s.countProperties(ctx, ownerID); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if o.Units, err = s.unitRepo.Count(ctx, ownerID); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if o.OccupiedUnits, err = s.unitRepo.CountByStatus(ctx, ownerID, portfolio.UnitStatusOccupied); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if o.VacantUnits, err = s.unitRepo.CountByStatus(ctx, ownerID, portfolio.UnitStatusVacant); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if o.Units > 0 {
		o.OccupancyRate = float64(o.OccupiedUnits) / float64(o.Units)
	}
	if o.Tenants, err = s.tenantRepo.Count(ctx, ownerID); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if o.ActiveLeases, err = s.leaseRepo.CountByStatus(ctx, ownerID, leasing.LeaseStatusActive); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if o.OverdueInvoices, err = s.invoiceRepo.CountByStatus(ctx, ownerID, billing.InvoiceStatusOverdue); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if o.OutstandingTotal, err = s.invoiceRepo.SumOutstanding(ctx, ownerID); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(o); err == nil {
			if err := s.cache.Set(ctx, cacheKey, raw, overviewCacheTTL); err != nil {
				s.logger.Warn("Dashboard cache write failed", zap.Error(err))
			}
		}
	}
	return &o, nil
}

func (s *DashboardService) countProperties(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	properties, err := s.propertyRepo.FindAllForOwner(ctx, ownerID, shared.Filter{Page: 1, PageSize: 10000})
	if err != nil {
		return 0, err
	}
	return int64(len(properties)), nil
}

// FinancialSummary is the invoice ledger of one calendar month rolled up:
// what was billed, what came in, what is still out and what of that is late
type FinancialSummary struct {
	Period          string          `json:"period"`
	ExpectedIncome  decimal.Decimal `json:"expected_income"`
	CollectedIncome decimal.Decimal `json:"collected_income"`
	PendingPayments decimal.Decimal `json:"pending_payments"`
	OverdueAmount   decimal.Decimal `json:"overdue_amount"`
	OverdueCount    int             `json:"overdue_count"`
	Expenses        decimal.Decimal `json:"expenses"`
	NetIncome       decimal.Decimal `json:"net_income"`
	CollectionRate  float64         `json:"collection_rate"`
}

// GetFinancialSummary aggregates the invoices due in a month. Expected is the
// billed total, collected the paid total, and the overdue bucket counts the
// remaining balance of OVERDUE invoices plus past-due PENDING ones the sweep
// has not reclassified yet. A nil period means the current month.
func (s *DashboardService) GetFinancialSummary(ctx context.Context, ownerID uuid.UUID, period *valueobject.Period) (*FinancialSummary, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "dashboard", "financial_summary")
	defer span.End()

	today := s.clock.Today()
	p := valueobject.PeriodOf(today)
	if period != nil {
		p = *period
	}

	invoices, err := s.invoiceRepo.FindDueBetween(ctx, ownerID, p.Start(), p.End())
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	summary := &FinancialSummary{
		Period:          p.String(),
		ExpectedIncome:  decimal.Zero,
		CollectedIncome: decimal.Zero,
		OverdueAmount:   decimal.Zero,
	}
	for _, inv := range invoices {
		summary.ExpectedIncome = summary.ExpectedIncome.Add(inv.Amount)
		summary.CollectedIncome = summary.CollectedIncome.Add(inv.PaidAmount)
		if inv.Status == billing.InvoiceStatusOverdue ||
			(inv.Status == billing.InvoiceStatusPending && inv.DueDate.Before(today)) {
			summary.OverdueAmount = summary.OverdueAmount.Add(inv.RemainingAmount())
			summary.OverdueCount++
		}
	}
	summary.PendingPayments = summary.ExpectedIncome.Sub(summary.CollectedIncome)
	if summary.ExpectedIncome.IsPositive() {
		rate := summary.CollectedIncome.Div(summary.ExpectedIncome).InexactFloat64() * 100
		summary.CollectionRate = math.Round(rate*10) / 10
	}

	expenses, err := s.expenseRepo.SumBetween(ctx, ownerID, p.Start(), p.End())
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	summary.Expenses = expenses
	summary.NetIncome = summary.CollectedIncome.Sub(expenses)
	return summary, nil
}

// RevenuePoint is one month of cash flow in the revenue series
type RevenuePoint struct {
	Period   string          `json:"period"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// GetMonthlyRevenue returns collected rent per month for the trailing window,
// oldest first
func (s *DashboardService) GetMonthlyRevenue(ctx context.Context, ownerID uuid.UUID, months int) ([]RevenuePoint, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "dashboard", "monthly_revenue")
	defer span.End()

	if months <= 0 || months > 36 {
		months = 12
	}

	current := valueobject.PeriodOf(s.clock.Today())
	series := make([]RevenuePoint, 0, months)
	p := current
	for i := 1; i < months; i++ {
		p = p.Previous()
	}
	for {
		income, err := s.paymentRepo.SumBetween(ctx, ownerID, p.Start(), p.End())
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		expenses, err := s.expenseRepo.SumBetween(ctx, ownerID, p.Start(), p.End())
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		series = append(series, RevenuePoint{
			Period:   p.String(),
			Income:   income,
			Expenses: expenses,
			Net:      income.Sub(expenses),
		})
		if p == current {
			break
		}
		p = p.Next()
	}
	return series, nil
}

// PropertyPerformance is revenue, spend and net for one property
type PropertyPerformance struct {
	PropertyID   uuid.UUID       `json:"property_id"`
	PropertyName string          `json:"property_name"`
	Revenue      decimal.Decimal `json:"revenue"`
	Expenses     decimal.Decimal `json:"expenses"`
	Net          decimal.Decimal `json:"net"`
}

// GetPropertyPerformance returns per-property revenue and expenses inside a
// date range, sorted by revenue descending. limit <= 0 returns everything.
func (s *DashboardService) GetPropertyPerformance(ctx context.Context, ownerID uuid.UUID, from, to time.Time, limit int) ([]PropertyPerformance, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "dashboard", "property_performance")
	defer span.End()

	revenues, err := s.paymentRepo.SumByPropertyBetween(ctx, ownerID, from, to)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	result := make([]PropertyPerformance, 0, len(revenues))
	for _, r := range revenues {
		property, err := s.propertyRepo.FindByIDForOwner(ctx, ownerID, r.PropertyID)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		name := ""
		if property != nil {
			name = property.Name
		}
		expenses, err := s.expenseRepo.SumByPropertyBetween(ctx, ownerID, r.PropertyID, from, to)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		result = append(result, PropertyPerformance{
			PropertyID:   r.PropertyID,
			PropertyName: name,
			Revenue:      r.Total,
			Expenses:     expenses,
			Net:          r.Total.Sub(expenses),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Revenue.GreaterThan(result[j].Revenue)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// GetExpenseBreakdown returns spend per category inside a date range
func (s *DashboardService) GetExpenseBreakdown(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]finance.CategoryTotal, error) {
	return s.expenseRepo.SumByCategoryBetween(ctx, ownerID, from, to)
}

// GetExpiringLeases returns active leases ending within the next n days
func (s *DashboardService) GetExpiringLeases(ctx context.Context, ownerID uuid.UUID, days int) ([]*leasing.Lease, error) {
	if days <= 0 {
		days = 30
	}
	today := s.clock.Today()
	return s.leaseRepo.FindExpiringBetween(ctx, ownerID, today, today.AddDate(0, 0, days))
}

// OverdueInvoice is an invoice past its due date with the derived collection
// figures the dashboard shows alongside it
type OverdueInvoice struct {
	*billing.Invoice
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	DaysOverdue     int             `json:"days_overdue"`
}

// GetOverdueInvoices returns the owner's unpaid invoices past their due
// date, oldest debt first. PENDING and PARTIAL rows the nightly sweep has
// not reclassified yet are included.
func (s *DashboardService) GetOverdueInvoices(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]OverdueInvoice, error) {
	today := s.clock.Today()
	invoices, err := s.invoiceRepo.FindPastDueOutstanding(ctx, ownerID, today, filter)
	if err != nil {
		return nil, err
	}

	result := make([]OverdueInvoice, len(invoices))
	for i, inv := range invoices {
		result[i] = OverdueInvoice{
			Invoice:         inv,
			RemainingAmount: inv.RemainingAmount(),
			DaysOverdue:     inv.DaysOverdue(today),
		}
	}
	return result, nil
}

// PropertyOccupancy is how full one property is
type PropertyOccupancy struct {
	PropertyID    uuid.UUID `json:"property_id"`
	PropertyName  string    `json:"property_name"`
	City          string    `json:"city"`
	TotalUnits    int       `json:"total_units"`
	OccupiedUnits int       `json:"occupied_units"`
	OccupancyRate float64   `json:"occupancy_rate"`
}

// GetTopProperties ranks active properties by occupancy rate, fullest first.
// limit <= 0 defaults to 5.
func (s *DashboardService) GetTopProperties(ctx context.Context, ownerID uuid.UUID, limit int) ([]PropertyOccupancy, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "dashboard", "top_properties")
	defer span.End()

	if limit <= 0 {
		limit = 5
	}

	properties, err := s.propertyRepo.FindAllForOwner(ctx, ownerID, shared.Filter{Page: 1, PageSize: 10000})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	result := make([]PropertyOccupancy, 0, len(properties))
	for _, property := range properties {
		if !property.IsActive {
			continue
		}
		units, err := s.unitRepo.FindByProperty(ctx, ownerID, property.ID)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		occupied := 0
		for _, unit := range units {
			if unit.Status == portfolio.UnitStatusOccupied {
				occupied++
			}
		}
		entry := PropertyOccupancy{
			PropertyID:    property.ID,
			PropertyName:  property.Name,
			City:          property.City,
			TotalUnits:    len(units),
			OccupiedUnits: occupied,
		}
		if len(units) > 0 {
			entry.OccupancyRate = math.Round(float64(occupied)/float64(len(units))*1000) / 10
		}
		result = append(result, entry)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].OccupancyRate > result[j].OccupancyRate
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// GetRecentPayments returns the latest payments, newest first
func (s *DashboardService) GetRecentPayments(ctx context.Context, ownerID uuid.UUID, limit int) ([]*billing.Payment, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.paymentRepo.FindRecent(ctx, ownerID, limit)
}

// Activity types in the recent activity feed
const (
	ActivityPayment = "payment"
	ActivityExpense = "expense"
	ActivityLease   = "lease"
)

// Activity is one lifecycle event in the recent activity feed
type Activity struct {
	Type    string    `json:"type"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
	RefID   uuid.UUID `json:"ref_id"`
}

// activitySourceLimit caps how many rows each source contributes before the
// merged feed is trimmed
const activitySourceLimit = 5

// GetRecentActivity merges the latest payments, expenses and leases into one
// feed, newest first. limit <= 0 defaults to 10.
func (s *DashboardService) GetRecentActivity(ctx context.Context, ownerID uuid.UUID, limit int) ([]Activity, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "dashboard", "recent_activity")
	defer span.End()

	if limit <= 0 || limit > 50 {
		limit = 10
	}
	recent := shared.Filter{Page: 1, PageSize: activitySourceLimit, OrderBy: "created_at", OrderDir: "desc"}
	activities := make([]Activity, 0, 3*activitySourceLimit)

	payments, err := s.paymentRepo.FindRecent(ctx, ownerID, activitySourceLimit)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	for _, p := range payments {
		activities = append(activities, Activity{
			Type:    ActivityPayment,
			Message: fmt.Sprintf("Payment of %s EGP received", p.Amount.StringFixed(2)),
			Date:    p.CreatedAt,
			RefID:   p.ID,
		})
	}

	expenses, err := s.expenseRepo.FindAllForOwner(ctx, ownerID, recent)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	for _, e := range expenses {
		activities = append(activities, Activity{
			Type:    ActivityExpense,
			Message: fmt.Sprintf("%s expense of %s EGP recorded", e.Category, e.Amount.StringFixed(2)),
			Date:    e.CreatedAt,
			RefID:   e.ID,
		})
	}

	leases, err := s.leaseRepo.FindAllForOwner(ctx, ownerID, recent)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	for _, l := range leases {
		message := "New lease signed"
		if tenant, err := s.tenantRepo.FindByIDForOwner(ctx, ownerID, l.TenantID); err == nil && tenant != nil {
			message = fmt.Sprintf("New lease signed with %s", tenant.Name)
		}
		activities = append(activities, Activity{
			Type:    ActivityLease,
			Message: message,
			Date:    l.CreatedAt,
			RefID:   l.ID,
		})
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Date.After(activities[j].Date)
	})
	if len(activities) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}
