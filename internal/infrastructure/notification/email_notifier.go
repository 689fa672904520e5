package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aqari/backend/internal/domain/billing"
	"github.com/aqari/backend/internal/domain/identity"
	"github.com/aqari/backend/internal/domain/leasing"
	"github.com/aqari/backend/internal/domain/shared"
	"github.com/aqari/backend/internal/infrastructure/config"
)

// sendTimeout bounds one SMTP delivery attempt
const sendTimeout = 15 * time.Second

// MailSender delivers one message. Stubbed in tests; backed by net/smtp in
// production.
type MailSender interface {
	Send(to, subject, body string) error
}

// smtpSender is the production MailSender
type smtpSender struct {
	cfg config.NotificationConfig
}

func (s *smtpSender) Send(to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + s.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg))
}

// EmailNotifier turns billing and leasing events into owner emails. It is a
// best-effort shared.EventPublisher: Publish always returns nil, delivery
// happens in the background and failures only make it into the log.
type EmailNotifier struct {
	sender   MailSender
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewEmailNotifier creates a notifier backed by SMTP
func NewEmailNotifier(cfg config.NotificationConfig, userRepo identity.UserRepository, logger *zap.Logger) *EmailNotifier {
	return &EmailNotifier{
		sender:   &smtpSender{cfg: cfg},
		userRepo: userRepo,
		logger:   logger,
	}
}

// NewEmailNotifierWithSender creates a notifier with a custom MailSender
func NewEmailNotifierWithSender(sender MailSender, userRepo identity.UserRepository, logger *zap.Logger) *EmailNotifier {
	return &EmailNotifier{
		sender:   sender,
		userRepo: userRepo,
		logger:   logger,
	}
}

// Publish queues one email per recognized event. Unrecognized event types
// are ignored.
func (n *EmailNotifier) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, event := range events {
		subject, body, ok := n.render(event)
		if !ok {
			continue
		}
		go n.deliver(event, subject, body)
	}
	return nil
}

func (n *EmailNotifier) deliver(event shared.DomainEvent, subject, body string) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	owner, err := n.userRepo.FindByID(ctx, event.OwnerID())
	if err != nil || owner == nil || owner.Email == "" {
		n.logger.Warn("Notification skipped, owner has no address",
			zap.String("event_type", event.EventType()),
			zap.String("owner_id", event.OwnerID().String()),
			zap.Error(err),
		)
		return
	}

	if err := n.sender.Send(owner.Email, subject, body); err != nil {
		n.logger.Warn("Notification delivery failed",
			zap.String("event_type", event.EventType()),
			zap.String("to", owner.Email),
			zap.Error(err),
		)
		return
	}
	n.logger.Debug("Notification sent",
		zap.String("event_type", event.EventType()),
		zap.String("to", owner.Email),
	)
}

func (n *EmailNotifier) render(event shared.DomainEvent) (subject, body string, ok bool) {
	switch e := event.(type) {
	case *billing.InvoiceIssuedEvent:
		subject = fmt.Sprintf("Invoice %s issued for %s", e.InvoiceNumber, e.BillingPeriod)
		body = fmt.Sprintf(
			"A new rent invoice has been issued.\n\nInvoice: %s\nBilling period: %s\nAmount: %s EGP\n",
			e.InvoiceNumber, e.BillingPeriod, e.Amount)
		return subject, body, true

	case *billing.PaymentAppliedEvent:
		subject = fmt.Sprintf("Payment received on invoice %s", e.InvoiceNumber)
		body = fmt.Sprintf(
			"A payment was recorded.\n\nInvoice: %s\nPayment: %s EGP\nPaid so far: %s EGP\nInvoice status: %s\n",
			e.InvoiceNumber, e.PaymentAmount, e.PaidAmount, e.NewStatus)
		return subject, body, true

	case *billing.InvoiceOverdueEvent:
		subject = fmt.Sprintf("Invoice %s is overdue", e.InvoiceNumber)
		body = fmt.Sprintf(
			"An invoice has passed its due date without full payment.\n\nInvoice: %s\nRemaining: %s EGP\n",
			e.InvoiceNumber, e.Remaining)
		return subject, body, true

	case *leasing.LeaseActivatedEvent:
		subject = "Lease activated"
		body = fmt.Sprintf(
			"A lease is now active.\n\nUnit: %s\nTenant: %s\nRuns until: %s\n",
			e.UnitID, e.TenantID, e.EndDate.Format("2006-01-02"))
		return subject, body, true

	case *leasing.LeaseEndedEvent:
		subject = "Lease ended"
		body = fmt.Sprintf(
			"A lease has ended.\n\nUnit: %s\nFinal status: %s\n",
			e.UnitID, e.NewStatus)
		return subject, body, true

	case *leasing.LeaseRenewedEvent:
		subject = "Lease renewed"
		body = fmt.Sprintf(
			"A lease was renewed.\n\nUnit: %s\nNew end date: %s\n",
			e.UnitID, e.NewEndDate.Format("2006-01-02"))
		return subject, body, true
	}
	return "", "", false
}

// Ensure EmailNotifier implements EventPublisher
var _ shared.EventPublisher = (*EmailNotifier)(nil)
