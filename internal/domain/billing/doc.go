// Package billing holds the invoicing and payment domain of the back office.
//
// The billing context is responsible for:
//   - Generating rent invoices from active leases, one per lease per
//     billing period
//   - Applying payments against invoices and deriving paid/partial status
//   - Tracking overdue balances once due dates pass
//
// Key aggregates:
//   - Invoice: a charge against a lease for one billing period, moving
//     through PENDING, PARTIALLY_PAID, PAID, OVERDUE and CANCELLED
//   - Payment: money received against an invoice; immutable once recorded
//
// Invoice numbers are assigned per owner and billing periods are unique per
// lease, which keeps the monthly generation sweep idempotent. The leasing
// domain supplies rent amounts and payment days; the reporting domain reads
// invoice balances for dashboards.
package billing
