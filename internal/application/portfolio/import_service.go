package portfolio

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/aqari/backend/internal/domain/portfolio"
	"github.com/aqari/backend/internal/domain/shared"
	"github.com/aqari/backend/internal/domain/shared/valueobject"
	csvimport "github.com/aqari/backend/internal/infrastructure/import"
	"github.com/aqari/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxImportRows bounds how many data rows a single upload may carry
const MaxImportRows = 5000

// importMaxErrors caps how many row errors a report carries back to the client
const importMaxErrors = 100

// ImportService bulk-loads tenants and units from CSV uploads. Validation
// runs over the whole file first; rows are only written when every row is
// clean, so an import either lands completely or not at all.
type ImportService struct {
	tenantRepo   portfolio.TenantRepository
	unitRepo     portfolio.UnitRepository
	propertyRepo portfolio.PropertyRepository
	txManager    shared.TransactionManager
}

// NewImportService creates a new ImportService
func NewImportService(
	tenantRepo portfolio.TenantRepository,
	unitRepo portfolio.UnitRepository,
	propertyRepo portfolio.PropertyRepository,
	txManager shared.TransactionManager,
) *ImportService {
	return &ImportService{
		tenantRepo:   tenantRepo,
		unitRepo:     unitRepo,
		propertyRepo: propertyRepo,
		txManager:    txManager,
	}
}

func tenantImportRules() []csvimport.FieldRule {
	return []csvimport.FieldRule{
		csvimport.Field("name").Required().MaxLength(200).Build(),
		csvimport.Field("phone").Required().MaxLength(50).Unique().Build(),
		csvimport.Field("email").Email().MaxLength(200).Build(),
		csvimport.Field("id_number").MaxLength(50).Build(),
		csvimport.Field("id_type").MaxLength(50).Build(),
		csvimport.Field("nationality").MaxLength(100).Build(),
		csvimport.Field("occupation").MaxLength(200).Build(),
		csvimport.Field("notes").MaxLength(2000).Build(),
	}
}

func unitImportRules() []csvimport.FieldRule {
	return []csvimport.FieldRule{
		csvimport.Field("unit_number").Required().MaxLength(50).Unique().Build(),
		csvimport.Field("monthly_rent").Required().Decimal().Min(decimal.Zero).Build(),
		csvimport.Field("floor").Int().Build(),
		csvimport.Field("bedrooms").Int().Min(decimal.Zero).Build(),
		csvimport.Field("bathrooms").Int().Min(decimal.Zero).Build(),
		csvimport.Field("area").Decimal().Min(decimal.Zero).Build(),
		csvimport.Field("description").MaxLength(2000).Build(),
	}
}

// ImportTenants loads tenant records from a CSV upload. With dryRun the file
// is validated and reported on without writing anything.
func (s *ImportService) ImportTenants(ctx context.Context, ownerID uuid.UUID, src io.Reader, dryRun bool) (*csvimport.Report, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "import", "tenants")
	defer span.End()

	validator := csvimport.NewRowValidator(tenantImportRules(), importMaxErrors)
	rows, report, err := s.parseAndValidate(src, validator, dryRun)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if !report.OK() || dryRun {
		return report, nil
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, row := range rows {
			tenant, err := portfolio.NewTenant(ownerID, row.Get("name"), row.Get("phone"))
			if err != nil {
				return err
			}
			tenant.Email = row.Get("email")
			tenant.IDNumber = row.Get("id_number")
			tenant.IDType = row.Get("id_type")
			tenant.Nationality = row.Get("nationality")
			tenant.Occupation = row.Get("occupation")
			tenant.Notes = row.Get("notes")

			if err := s.tenantRepo.Save(ctx, tenant); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	report.Imported = len(rows)
	return report, nil
}

// ImportUnits loads units under one property from a CSV upload. Unit numbers
// must be unique within the file and not collide with the property's
// existing units.
func (s *ImportService) ImportUnits(ctx context.Context, ownerID, propertyID uuid.UUID, src io.Reader, dryRun bool) (*csvimport.Report, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "import", "units")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrPropertyID, propertyID.String())

	property, err := s.propertyRepo.FindByIDForOwner(ctx, ownerID, propertyID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if property == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Property not found")
	}

	validator := csvimport.NewRowValidator(unitImportRules(), importMaxErrors)
	rows, report, err := s.parseAndValidate(src, validator, dryRun)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	// Unit numbers already taken under this property reject their rows even
	// when the file itself is internally consistent
	existing, err := s.unitRepo.FindByProperty(ctx, ownerID, propertyID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	taken := make(map[string]bool, len(existing))
	for _, u := range existing {
		taken[u.UnitNumber] = true
	}
	for _, row := range rows {
		if taken[row.Get("unit_number")] {
			validator.Errors().AddRejected(row.LineNumber, "unit number '"+row.Get("unit_number")+"' already exists in this property")
			report.ErrorRows++
		}
	}
	report.SetErrors(validator.Errors())

	if !report.OK() || dryRun {
		return report, nil
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, row := range rows {
			rent, err := decimal.NewFromString(row.Get("monthly_rent"))
			if err != nil {
				return shared.NewDomainError("INVALID_RENT", "Monthly rent is not a valid number")
			}
			unit, err := portfolio.NewUnit(ownerID, propertyID, row.Get("unit_number"), valueobject.NewMoneyEGP(rent))
			if err != nil {
				return err
			}
			unit.Floor = parseOptionalInt(row.Get("floor"))
			unit.Bedrooms = parseOptionalInt(row.Get("bedrooms"))
			unit.Bathrooms = parseOptionalInt(row.Get("bathrooms"))
			if area := row.Get("area"); area != "" {
				if d, err := decimal.NewFromString(area); err == nil {
					unit.Area = d
				}
			}
			unit.Description = row.Get("description")

			if err := s.unitRepo.Save(ctx, unit); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	report.Imported = len(rows)
	return report, nil
}

// parseAndValidate reads the whole upload and runs every row through the
// validator. File-level problems become domain errors; row-level problems
// land in the report.
func (s *ImportService) parseAndValidate(src io.Reader, validator *csvimport.RowValidator, dryRun bool) ([]*csvimport.Row, *csvimport.Report, error) {
	reader, err := csvimport.NewReader(src)
	if err != nil {
		return nil, nil, shared.NewDomainError("INVALID_FILE", err.Error())
	}
	if err := reader.ReadHeader(); err != nil {
		return nil, nil, shared.NewDomainError("INVALID_FILE", err.Error())
	}
	if missing := reader.MissingHeaders(validator.RequiredColumns()); len(missing) > 0 {
		return nil, nil, shared.NewDomainError("INVALID_FILE", "missing required columns: "+strings.Join(missing, ", "))
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, shared.NewDomainError("INVALID_FILE", err.Error())
	}
	if len(rows) == 0 {
		return nil, nil, shared.NewDomainError("INVALID_FILE", csvimport.ErrNoDataRows.Error())
	}
	if len(rows) > MaxImportRows {
		return nil, nil, shared.NewDomainError("INVALID_FILE", "file exceeds the maximum of "+strconv.Itoa(MaxImportRows)+" rows")
	}

	report := &csvimport.Report{TotalRows: len(rows), DryRun: dryRun}
	for _, row := range rows {
		if !validator.ValidateRow(row) {
			report.ErrorRows++
		}
	}
	report.SetErrors(validator.Errors())

	return rows, report, nil
}

func parseOptionalInt(value string) *int {
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &n
}
