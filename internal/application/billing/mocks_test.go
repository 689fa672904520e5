package billing

import (
	"context"
	"time"

	"github.com/aqari/backend/internal/domain/billing"
	"github.com/aqari/backend/internal/domain/leasing"
	"github.com/aqari/backend/internal/domain/portfolio"
	"github.com/aqari/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories shared by the billing service tests
// =============================================================================

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*billing.Invoice, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInvoiceRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]*billing.Invoice, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByIDForUpdate(ctx context.Context, ownerID, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByLease(ctx context.Context, ownerID, leaseID uuid.UUID) ([]*billing.Invoice, error) {
	args := m.Called(ctx, ownerID, leaseID)
	return args.Get(0).([]*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByStatus(ctx context.Context, ownerID uuid.UUID, status billing.InvoiceStatus, filter shared.Filter) ([]*billing.Invoice, error) {
	args := m.Called(ctx, ownerID, status, filter)
	return args.Get(0).([]*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ExistsForLeaseAndPeriod(ctx context.Context, leaseID uuid.UUID, period string) (bool, error) {
	args := m.Called(ctx, leaseID, period)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvoiceRepository) FindPendingPastDue(ctx context.Context, today time.Time) ([]*billing.Invoice, error) {
	args := m.Called(ctx, today)
	return args.Get(0).([]*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindDueBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]*billing.Invoice, error) {
	args := m.Called(ctx, ownerID, from, to)
	return args.Get(0).([]*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindPastDueOutstanding(ctx context.Context, ownerID uuid.UUID, today time.Time, filter shared.Filter) ([]*billing.Invoice, error) {
	args := m.Called(ctx, ownerID, today, filter)
	return args.Get(0).([]*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) SumOutstanding(ctx context.Context, ownerID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockInvoiceRepository) SumPaidBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, ownerID, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockInvoiceRepository) CountByStatus(ctx context.Context, ownerID uuid.UUID, status billing.InvoiceStatus) (int64, error) {
	args := m.Called(ctx, ownerID, status)
	return args.Get(0).(int64), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*billing.Payment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *billing.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*billing.Payment, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]*billing.Payment, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]*billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByInvoice(ctx context.Context, ownerID, invoiceID uuid.UUID) ([]*billing.Payment, error) {
	args := m.Called(ctx, ownerID, invoiceID)
	return args.Get(0).([]*billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindRecent(ctx context.Context, ownerID uuid.UUID, limit int) ([]*billing.Payment, error) {
	args := m.Called(ctx, ownerID, limit)
	return args.Get(0).([]*billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SumBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, ownerID, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPaymentRepository) SumByPropertyBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]billing.PropertyRevenue, error) {
	args := m.Called(ctx, ownerID, from, to)
	return args.Get(0).([]billing.PropertyRevenue), args.Error(1)
}

type MockLeaseRepository struct {
	mock.Mock
}

func (m *MockLeaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*leasing.Lease, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasing.Lease), args.Error(1)
}

func (m *MockLeaseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*leasing.Lease, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*leasing.Lease), args.Error(1)
}

func (m *MockLeaseRepository) Save(ctx context.Context, lease *leasing.Lease) error {
	args := m.Called(ctx, lease)
	return args.Error(0)
}

func (m *MockLeaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeaseRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*leasing.Lease, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasing.Lease), args.Error(1)
}

func (m *MockLeaseRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]*leasing.Lease, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]*leasing.Lease), args.Error(1)
}

func (m *MockLeaseRepository) FindActiveByUnit(ctx context.Context, ownerID, unitID uuid.UUID, excludeLeaseID *uuid.UUID) (*leasing.Lease, error) {
	args := m.Called(ctx, ownerID, unitID, excludeLeaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasing.Lease), args.Error(1)
}

func (m *MockLeaseRepository) FindByUnit(ctx context.Context, ownerID, unitID uuid.UUID) ([]*leasing.Lease, error) {
	args := m.Called(ctx, ownerID, unitID)
	return args.Get(0).([]*leasing.Lease), args.Error(1)
}

func (m *MockLeaseRepository) FindByTenant(ctx context.Context, ownerID, tenantID uuid.UUID) ([]*leasing.Lease, error) {
	args := m.Called(ctx, ownerID, tenantID)
	return args.Get(0).([]*leasing.Lease), args.Error(1)
}

func (m *MockLeaseRepository) FindByStatus(ctx context.Context, ownerID uuid.UUID, status leasing.LeaseStatus, filter shared.Filter) ([]*leasing.Lease, error) {
	args := m.Called(ctx, ownerID, status, filter)
	return args.Get(0).([]*leasing.Lease), args.Error(1)
}

func (m *MockLeaseRepository) FindActivePastEndDate(ctx context.Context, today time.Time) ([]*leasing.Lease, error) {
	args := m.Called(ctx, today)
	return args.Get(0).([]*leasing.Lease), args.Error(1)
}

func (m *MockLeaseRepository) FindActiveWithPaymentDay(ctx context.Context, day int) ([]*leasing.Lease, error) {
	args := m.Called(ctx, day)
	return args.Get(0).([]*leasing.Lease), args.Error(1)
}

func (m *MockLeaseRepository) FindExpiringBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]*leasing.Lease, error) {
	args := m.Called(ctx, ownerID, from, to)
	return args.Get(0).([]*leasing.Lease), args.Error(1)
}

func (m *MockLeaseRepository) CountByStatus(ctx context.Context, ownerID uuid.UUID, status leasing.LeaseStatus) (int64, error) {
	args := m.Called(ctx, ownerID, status)
	return args.Get(0).(int64), args.Error(1)
}

type MockUnitRepository struct {
	mock.Mock
}

func (m *MockUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*portfolio.Unit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portfolio.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*portfolio.Unit, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*portfolio.Unit), args.Error(1)
}

func (m *MockUnitRepository) Save(ctx context.Context, unit *portfolio.Unit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockUnitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUnitRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*portfolio.Unit, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portfolio.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]*portfolio.Unit, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]*portfolio.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindByIDForUpdate(ctx context.Context, ownerID, id uuid.UUID) (*portfolio.Unit, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portfolio.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindByProperty(ctx context.Context, ownerID, propertyID uuid.UUID) ([]*portfolio.Unit, error) {
	args := m.Called(ctx, ownerID, propertyID)
	return args.Get(0).([]*portfolio.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindByStatus(ctx context.Context, ownerID uuid.UUID, status portfolio.UnitStatus, filter shared.Filter) ([]*portfolio.Unit, error) {
	args := m.Called(ctx, ownerID, status, filter)
	return args.Get(0).([]*portfolio.Unit), args.Error(1)
}

func (m *MockUnitRepository) CountByStatus(ctx context.Context, ownerID uuid.UUID, status portfolio.UnitStatus) (int64, error) {
	args := m.Called(ctx, ownerID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUnitRepository) Count(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}
