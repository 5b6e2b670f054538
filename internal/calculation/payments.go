package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/taxprep/tax-engine/internal/domain"
)

// PaymentReconciler nets total payments against total tax.
type PaymentReconciler struct{}

// NewPaymentReconciler creates a new payment reconciler.
func NewPaymentReconciler() *PaymentReconciler {
	return &PaymentReconciler{}
}

// TotalPayments sums W-2 withholding, estimated payments and any prior-year
// overpayment applied to this return.
func (p *PaymentReconciler) TotalPayments(record *domain.TaxRecord) decimal.Decimal {
	total := record.Withholding()
	for _, e := range record.Payments.Estimated {
		total = total.Add(e.Amount)
	}
	return total.Add(record.Payments.PriorYearOverpaymentApplied)
}

// Reconcile returns the refund and balance due. Exactly one is nonzero,
// except when payments equal tax, which yields zero for both. A negative
// total tax (refundable credits exceeding liability) increases the refund.
func (p *PaymentReconciler) Reconcile(totalTax, totalPayments decimal.Decimal) (refund, balanceDue decimal.Decimal) {
	diff := totalPayments.Sub(totalTax)
	if diff.Sign() >= 0 {
		return diff, decimal.Zero
	}
	return decimal.Zero, diff.Neg()
}
