package calculation

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taxprep/tax-engine/internal/domain"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func newRecord(status domain.FilingStatus) *domain.TaxRecord {
	return domain.NewTaxRecord(2025, status)
}

func TestAggregateSumsCategories(t *testing.T) {
	agg := NewIncomeAggregator()
	rs := rulesFor(t, 2025)

	record := newRecord(domain.Single)
	record.Income = domain.Income{
		Wages: []domain.W2Entry{
			{Employer: "A", Wages: decimal.NewFromInt(40000), FederalWithholding: decimal.NewFromInt(4000)},
			{Employer: "B", Wages: decimal.NewFromInt(10000), FederalWithholding: decimal.NewFromInt(900)},
		},
		Interest: []domain.InterestEntry{
			{Payer: "Bank", Amount: decimal.NewFromInt(300)},
		},
		Dividends: []domain.DividendEntry{
			{Payer: "Broker", Ordinary: decimal.NewFromInt(1200), Qualified: decimal.NewFromInt(800)},
		},
		Business: []domain.BusinessEntry{
			{Description: "Consulting", GrossReceipts: decimal.NewFromInt(9000), Expenses: decimal.NewFromInt(2000)},
		},
		Rental: []domain.RentalEntry{
			{Property: "Unit 1", RentsReceived: decimal.NewFromInt(14000), Expenses: decimal.NewFromInt(16000)},
		},
		Other: []domain.OtherEntry{
			{Description: "Prize", Amount: decimal.NewFromInt(500)},
		},
	}

	totals, err := agg.Aggregate(record, rs)
	require.NoError(t, err)

	assert.True(t, totals.Wages.Equal(decimal.NewFromInt(50000)))
	assert.True(t, totals.Withholding.Equal(decimal.NewFromInt(4900)))
	assert.True(t, totals.Interest.Equal(decimal.NewFromInt(300)))
	assert.True(t, totals.OrdinaryDividends.Equal(decimal.NewFromInt(1200)))
	assert.True(t, totals.QualifiedDividends.Equal(decimal.NewFromInt(800)))
	assert.True(t, totals.BusinessNet.Equal(decimal.NewFromInt(7000)))
	assert.True(t, totals.RentalNet.Equal(decimal.NewFromInt(-2000)))
	// 50000 + 300 + 1200 + 7000 + 0 - 2000 + 500
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(57000)),
		"total income: got %s", totals.Total)
	// wages + positive business net
	assert.True(t, totals.EarnedIncome.Equal(decimal.NewFromInt(57000)))
}

func TestAggregateHoldingPeriodBoundary(t *testing.T) {
	agg := NewIncomeAggregator()
	rs := rulesFor(t, 2025)

	// Exactly 365 days is short-term; one more day is long-term.
	record := newRecord(domain.Single)
	record.Income.CapitalSales = []domain.CapitalSale{
		{Asset: "AAA", Acquired: date(t, "2024-03-01"), Sold: date(t, "2025-03-01"),
			Proceeds: decimal.NewFromInt(5000), CostBasis: decimal.NewFromInt(4000)},
		{Asset: "BBB", Acquired: date(t, "2024-03-01"), Sold: date(t, "2025-03-02"),
			Proceeds: decimal.NewFromInt(7000), CostBasis: decimal.NewFromInt(4500)},
	}

	totals, err := agg.Aggregate(record, rs)
	require.NoError(t, err)

	assert.True(t, totals.ShortTermNet.Equal(decimal.NewFromInt(1000)),
		"short-term: got %s", totals.ShortTermNet)
	assert.True(t, totals.LongTermNet.Equal(decimal.NewFromInt(2500)),
		"long-term: got %s", totals.LongTermNet)
	assert.True(t, totals.CapitalGainIncome.Equal(decimal.NewFromInt(3500)))
	assert.True(t, totals.PreferentialLongTerm.Equal(decimal.NewFromInt(2500)))
}

// TestAggregateWashSale: a loss sale with a repurchase inside the 61-day
// window is disallowed entirely and the loss moves into the replacement
// lot's basis.
func TestAggregateWashSale(t *testing.T) {
	agg := NewIncomeAggregator()
	rs := rulesFor(t, 2025)

	record := newRecord(domain.Single)
	record.Income.CapitalSales = []domain.CapitalSale{
		// Long-term loss of 2000, repurchased 14 days later.
		{Asset: "VTI", Acquired: date(t, "2024-01-10"), Sold: date(t, "2025-03-01"),
			Proceeds: decimal.NewFromInt(8000), CostBasis: decimal.NewFromInt(10000)},
		// Replacement lot, later sold at a raw gain of 3000; the adjusted
		// basis shrinks the gain to 1000.
		{Asset: "VTI", Acquired: date(t, "2025-03-15"), Sold: date(t, "2025-11-20"),
			Proceeds: decimal.NewFromInt(12000), CostBasis: decimal.NewFromInt(9000)},
	}

	totals, err := agg.Aggregate(record, rs)
	require.NoError(t, err)

	assert.True(t, totals.WashSaleDisallowed.Equal(decimal.NewFromInt(2000)),
		"disallowed: got %s", totals.WashSaleDisallowed)
	assert.True(t, totals.LongTermNet.Equal(decimal.Zero),
		"long-term: got %s", totals.LongTermNet)
	assert.True(t, totals.ShortTermNet.Equal(decimal.NewFromInt(1000)),
		"short-term: got %s", totals.ShortTermNet)
	assert.True(t, totals.CapitalGainIncome.Equal(decimal.NewFromInt(1000)))
}

func TestAggregateWashSaleOutsideWindowAllowed(t *testing.T) {
	agg := NewIncomeAggregator()
	rs := rulesFor(t, 2025)

	record := newRecord(domain.Single)
	record.Income.CapitalSales = []domain.CapitalSale{
		{Asset: "VTI", Acquired: date(t, "2024-01-10"), Sold: date(t, "2025-03-01"),
			Proceeds: decimal.NewFromInt(8000), CostBasis: decimal.NewFromInt(10000)},
		// Repurchase 45 days after the sale: outside the window.
		{Asset: "VTI", Acquired: date(t, "2025-04-15"), Sold: date(t, "2025-11-20"),
			Proceeds: decimal.NewFromInt(12000), CostBasis: decimal.NewFromInt(9000)},
	}

	totals, err := agg.Aggregate(record, rs)
	require.NoError(t, err)

	assert.True(t, totals.WashSaleDisallowed.IsZero())
	// The allowed long-term loss offsets the short-term gain.
	assert.True(t, totals.LongTermNet.IsZero())
	assert.True(t, totals.ShortTermNet.Equal(decimal.NewFromInt(1000)))
	assert.True(t, totals.CapitalGainIncome.Equal(decimal.NewFromInt(1000)))
}

func TestAggregateDifferentAssetNotWashSale(t *testing.T) {
	agg := NewIncomeAggregator()
	rs := rulesFor(t, 2025)

	record := newRecord(domain.Single)
	record.Income.CapitalSales = []domain.CapitalSale{
		{Asset: "VTI", Acquired: date(t, "2024-01-10"), Sold: date(t, "2025-03-01"),
			Proceeds: decimal.NewFromInt(8000), CostBasis: decimal.NewFromInt(10000)},
		{Asset: "VXUS", Acquired: date(t, "2025-03-10"), Sold: date(t, "2025-11-20"),
			Proceeds: decimal.NewFromInt(12000), CostBasis: decimal.NewFromInt(9000)},
	}

	totals, err := agg.Aggregate(record, rs)
	require.NoError(t, err)
	assert.True(t, totals.WashSaleDisallowed.IsZero())
}

func TestAggregateCarryoverConsumption(t *testing.T) {
	agg := NewIncomeAggregator()
	rs := rulesFor(t, 2025)

	t.Run("carryover consumed against current gain", func(t *testing.T) {
		record := newRecord(domain.Single)
		record.Income.CapitalSales = []domain.CapitalSale{
			{Asset: "AAA", Acquired: date(t, "2025-01-05"), Sold: date(t, "2025-06-05"),
				Proceeds: decimal.NewFromInt(9000), CostBasis: decimal.NewFromInt(4000)},
		}
		record.Carryovers.ShortTermCapitalLoss = decimal.NewFromInt(7000)

		totals, err := agg.Aggregate(record, rs)
		require.NoError(t, err)

		// 5000 gain - 7000 carryover = -2000, within the annual limit.
		assert.True(t, totals.CapitalGainIncome.Equal(decimal.NewFromInt(-2000)))
		assert.True(t, totals.CarryoversOut.ShortTermCapitalLoss.IsZero())
		assert.True(t, totals.CarryoversOut.LongTermCapitalLoss.IsZero())
	})

	t.Run("loss over the limit re-carries", func(t *testing.T) {
		record := newRecord(domain.Single)
		record.Income.CapitalSales = []domain.CapitalSale{
			{Asset: "AAA", Acquired: date(t, "2025-01-05"), Sold: date(t, "2025-06-05"),
				Proceeds: decimal.NewFromInt(5000), CostBasis: decimal.NewFromInt(4000)},
		}
		record.Carryovers.ShortTermCapitalLoss = decimal.NewFromInt(7000)

		totals, err := agg.Aggregate(record, rs)
		require.NoError(t, err)

		// 1000 gain - 7000 carryover = -6000; 3000 allowed, 3000 re-carried.
		assert.True(t, totals.CapitalGainIncome.Equal(decimal.NewFromInt(-3000)))
		assert.True(t, totals.CarryoversOut.ShortTermCapitalLoss.Equal(decimal.NewFromInt(3000)))
	})

	t.Run("married separate limit is 1500", func(t *testing.T) {
		record := newRecord(domain.MarriedSeparate)
		record.Carryovers.LongTermCapitalLoss = decimal.NewFromInt(4000)

		totals, err := agg.Aggregate(record, rs)
		require.NoError(t, err)

		assert.True(t, totals.CapitalGainIncome.Equal(decimal.NewFromInt(-1500)))
		assert.True(t, totals.CarryoversOut.LongTermCapitalLoss.Equal(decimal.NewFromInt(2500)))
	})
}

func TestAggregateCrossCharacterOffset(t *testing.T) {
	agg := NewIncomeAggregator()
	rs := rulesFor(t, 2025)

	record := newRecord(domain.Single)
	record.Income.CapitalSales = []domain.CapitalSale{
		// Short-term loss 4000.
		{Asset: "AAA", Acquired: date(t, "2025-01-05"), Sold: date(t, "2025-04-05"),
			Proceeds: decimal.NewFromInt(1000), CostBasis: decimal.NewFromInt(5000)},
		// Long-term gain 10000.
		{Asset: "BBB", Acquired: date(t, "2022-01-05"), Sold: date(t, "2025-06-05"),
			Proceeds: decimal.NewFromInt(30000), CostBasis: decimal.NewFromInt(20000)},
	}

	totals, err := agg.Aggregate(record, rs)
	require.NoError(t, err)

	assert.True(t, totals.ShortTermNet.IsZero())
	assert.True(t, totals.LongTermNet.Equal(decimal.NewFromInt(6000)))
	assert.True(t, totals.CapitalGainIncome.Equal(decimal.NewFromInt(6000)))
	// Only the surviving long-term portion is preferential.
	assert.True(t, totals.PreferentialLongTerm.Equal(decimal.NewFromInt(6000)))
}

func TestAggregateMalformedEntryAborts(t *testing.T) {
	agg := NewIncomeAggregator()
	rs := rulesFor(t, 2025)

	tests := []struct {
		name string
		sale domain.CapitalSale
	}{
		{
			name: "missing asset",
			sale: domain.CapitalSale{Acquired: date(t, "2025-01-05"), Sold: date(t, "2025-02-05"),
				Proceeds: decimal.NewFromInt(100), CostBasis: decimal.NewFromInt(50)},
		},
		{
			name: "missing acquired date",
			sale: domain.CapitalSale{Asset: "AAA", Sold: date(t, "2025-02-05"),
				Proceeds: decimal.NewFromInt(100), CostBasis: decimal.NewFromInt(50)},
		},
		{
			name: "missing sold date",
			sale: domain.CapitalSale{Asset: "AAA", Acquired: date(t, "2025-01-05"),
				Proceeds: decimal.NewFromInt(100), CostBasis: decimal.NewFromInt(50)},
		},
		{
			name: "sold before acquired",
			sale: domain.CapitalSale{Asset: "AAA", Acquired: date(t, "2025-03-05"), Sold: date(t, "2025-02-05"),
				Proceeds: decimal.NewFromInt(100), CostBasis: decimal.NewFromInt(50)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := newRecord(domain.Single)
			record.Income.CapitalSales = []domain.CapitalSale{tt.sale}

			totals, err := agg.Aggregate(record, rs)
			assert.Nil(t, totals, "no partial totals on failure")

			var invalid *domain.InvalidInputError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, "income.capital_sales", invalid.Field)
			assert.Equal(t, 0, invalid.Index)
		})
	}
}
