package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aqari/backend/internal/application/report"
	"github.com/aqari/backend/internal/domain/shared/valueobject"
	"github.com/aqari/backend/internal/infrastructure/telemetry"
)

// TextGenerator produces free-form advisory text from a prompt. Implemented
// by the Gemini client in infrastructure; swapped for a stub in tests.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// SnapshotSource is the slice of the dashboard the advisor reads.
// *report.DashboardService satisfies it.
type SnapshotSource interface {
	GetOverview(ctx context.Context, ownerID uuid.UUID) (*report.Overview, error)
	GetFinancialSummary(ctx context.Context, ownerID uuid.UUID, period *valueobject.Period) (*report.FinancialSummary, error)
}

// fallbackAdvice is returned whenever the generator is unavailable or fails.
// The advisory endpoint never propagates collaborator errors.
const fallbackAdvice = "Advisory service is temporarily unavailable. " +
	"Review your occupancy rate and overdue invoices: following up on overdue rent " +
	"and filling vacant units are usually the fastest ways to improve net income."

// AdvisorService renders a portfolio snapshot into a prompt and asks the
// text generator for advice. Read-only, never touches state.
type AdvisorService struct {
	dashboard SnapshotSource
	generator TextGenerator
	logger    *zap.Logger
}

// NewAdvisorService creates a new AdvisorService. generator may be nil, in
// which case every request returns the fallback text.
func NewAdvisorService(dashboard SnapshotSource, generator TextGenerator, logger *zap.Logger) *AdvisorService {
	return &AdvisorService{
		dashboard: dashboard,
		generator: generator,
		logger:    logger,
	}
}

// Advice is the advisory response payload
type Advice struct {
	Text      string `json:"text"`
	Generated bool   `json:"generated"`
}

// GetAdvice builds a financial snapshot for the owner and returns advisory
// text. Any generator failure degrades to the canned fallback.
func (s *AdvisorService) GetAdvice(ctx context.Context, ownerID uuid.UUID) (*Advice, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "advisor", "get_advice")
	defer span.End()

	prompt, err := s.buildPrompt(ctx, ownerID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if s.generator == nil {
		return &Advice{Text: fallbackAdvice, Generated: false}, nil
	}

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil || strings.TrimSpace(text) == "" {
		s.logger.Warn("Advisory generation failed, using fallback",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err),
		)
		return &Advice{Text: fallbackAdvice, Generated: false}, nil
	}
	return &Advice{Text: strings.TrimSpace(text), Generated: true}, nil
}

func (s *AdvisorService) buildPrompt(ctx context.Context, ownerID uuid.UUID) (string, error) {
	overview, err := s.dashboard.GetOverview(ctx, ownerID)
	if err != nil {
		return "", err
	}
	summary, err := s.dashboard.GetFinancialSummary(ctx, ownerID, nil)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("You are a property management advisor. Based on this portfolio snapshot, ")
	b.WriteString("give three short, concrete recommendations in plain language.\n\n")
	fmt.Fprintf(&b, "Properties: %d\n", overview.Properties)
	fmt.Fprintf(&b, "Units: %d (occupied %d, vacant %d, occupancy %.0f%%)\n",
		overview.Units, overview.OccupiedUnits, overview.VacantUnits, overview.OccupancyRate*100)
	fmt.Fprintf(&b, "Active leases: %d\n", overview.ActiveLeases)
	fmt.Fprintf(&b, "Overdue invoices: %d\n", overview.OverdueInvoices)
	fmt.Fprintf(&b, "Outstanding balance: %s EGP\n", overview.OutstandingTotal.StringFixed(2))
	fmt.Fprintf(&b, "This month (%s): billed %s EGP, collected %s EGP (%.1f%%), expenses %s EGP, net %s EGP\n",
		summary.Period, summary.ExpectedIncome.StringFixed(2), summary.CollectedIncome.StringFixed(2),
		summary.CollectionRate, summary.Expenses.StringFixed(2), summary.NetIncome.StringFixed(2))
	fmt.Fprintf(&b, "Overdue this month: %s EGP across %d invoices\n",
		summary.OverdueAmount.StringFixed(2), summary.OverdueCount)
	return b.String(), nil
}
