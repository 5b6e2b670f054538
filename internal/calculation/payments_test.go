package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/taxprep/tax-engine/internal/domain"
)

func TestTotalPayments(t *testing.T) {
	rec := NewPaymentReconciler()

	record := newRecord(domain.Single)
	record.Income.Wages = []domain.W2Entry{
		{Employer: "A", Wages: decimal.NewFromInt(50000), FederalWithholding: decimal.NewFromInt(6000)},
		{Employer: "B", Wages: decimal.NewFromInt(20000), FederalWithholding: decimal.NewFromInt(1500)},
	}
	record.Payments.Estimated = []domain.EstimatedPayment{
		{Date: date(t, "2025-04-15"), Amount: decimal.NewFromInt(1000)},
		{Date: date(t, "2025-06-16"), Amount: decimal.NewFromInt(1000)},
	}
	record.Payments.PriorYearOverpaymentApplied = decimal.NewFromInt(250)

	total := rec.TotalPayments(record)
	assert.True(t, total.Equal(decimal.NewFromInt(9750)), "got %s", total)
}

func TestReconcile(t *testing.T) {
	rec := NewPaymentReconciler()

	tests := []struct {
		name       string
		tax        decimal.Decimal
		payments   decimal.Decimal
		refund     decimal.Decimal
		balanceDue decimal.Decimal
	}{
		{
			name: "overpaid yields refund",
			tax:  decimal.NewFromInt(4000), payments: decimal.NewFromInt(4500),
			refund: decimal.NewFromInt(500), balanceDue: decimal.Zero,
		},
		{
			name: "underpaid yields balance due",
			tax:  decimal.NewFromInt(4000), payments: decimal.NewFromInt(3200),
			refund: decimal.Zero, balanceDue: decimal.NewFromInt(800),
		},
		{
			name: "exact cover yields neither",
			tax:  decimal.NewFromInt(4000), payments: decimal.NewFromInt(4000),
			refund: decimal.Zero, balanceDue: decimal.Zero,
		},
		{
			name: "negative tax adds to refund",
			tax:  decimal.NewFromInt(-1500), payments: decimal.NewFromInt(200),
			refund: decimal.NewFromInt(1700), balanceDue: decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refund, balanceDue := rec.Reconcile(tt.tax, tt.payments)
			assert.True(t, refund.Equal(tt.refund), "refund: got %s", refund)
			assert.True(t, balanceDue.Equal(tt.balanceDue), "balance due: got %s", balanceDue)
		})
	}
}

// TestReconcileExclusive sweeps tax/payment pairs and checks that refund and
// balance due are never both positive.
func TestReconcileExclusive(t *testing.T) {
	rec := NewPaymentReconciler()

	for tax := int64(-2000); tax <= 10000; tax += 700 {
		for payments := int64(0); payments <= 10000; payments += 900 {
			refund, balanceDue := rec.Reconcile(decimal.NewFromInt(tax), decimal.NewFromInt(payments))
			assert.False(t, refund.IsPositive() && balanceDue.IsPositive(),
				"tax %d payments %d: both refund %s and balance %s positive", tax, payments, refund, balanceDue)
			assert.False(t, refund.IsNegative() || balanceDue.IsNegative(),
				"tax %d payments %d: negative output", tax, payments)
		}
	}
}
