package calculation

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/taxprep/tax-engine/internal/domain"
	"github.com/taxprep/tax-engine/internal/rules"
	"github.com/taxprep/tax-engine/pkg/dateutil"
)

// IncomeTotals is the output of aggregation: per-category sums plus the
// netted capital gain figures the later stages consume.
type IncomeTotals struct {
	Wages              decimal.Decimal
	Interest           decimal.Decimal
	OrdinaryDividends  decimal.Decimal
	QualifiedDividends decimal.Decimal
	BusinessNet        decimal.Decimal
	RentalNet          decimal.Decimal
	Foreign            decimal.Decimal
	Other              decimal.Decimal

	// ShortTermNet and LongTermNet are the per-character results after
	// wash-sale disallowance, prior-year carryovers and cross-character
	// offsetting. CapitalGainIncome is their sum after the annual loss
	// limit; PreferentialLongTerm is the long-term gain eligible for
	// preferential rates.
	ShortTermNet         decimal.Decimal
	LongTermNet          decimal.Decimal
	CapitalGainIncome    decimal.Decimal
	PreferentialLongTerm decimal.Decimal
	WashSaleDisallowed   decimal.Decimal
	CarryoversOut        domain.Carryovers

	EarnedIncome     decimal.Decimal
	InvestmentIncome decimal.Decimal
	Withholding      decimal.Decimal
	Total            decimal.Decimal
}

// IncomeAggregator sums the record's income collections. It never mutates
// the source entries; wash-sale basis adjustments happen on private copies.
type IncomeAggregator struct{}

// NewIncomeAggregator creates a new income aggregator.
func NewIncomeAggregator() *IncomeAggregator {
	return &IncomeAggregator{}
}

// Aggregate sums every income category and performs the Schedule D netting
// sequence: wash-sale disallowance per transaction, then carryover
// consumption, then cross-character offsetting, then the annual loss limit.
// A malformed entry aborts the whole aggregation with an InvalidInputError.
func (a *IncomeAggregator) Aggregate(record *domain.TaxRecord, rs *rules.TaxYearRuleSet) (*IncomeTotals, error) {
	t := &IncomeTotals{}

	for _, w := range record.Income.Wages {
		t.Wages = t.Wages.Add(w.Wages)
		t.Withholding = t.Withholding.Add(w.FederalWithholding)
	}
	for _, e := range record.Income.Interest {
		t.Interest = t.Interest.Add(e.Amount)
	}
	for _, e := range record.Income.Dividends {
		t.OrdinaryDividends = t.OrdinaryDividends.Add(e.Ordinary)
		t.QualifiedDividends = t.QualifiedDividends.Add(e.Qualified)
	}
	for _, e := range record.Income.Business {
		t.BusinessNet = t.BusinessNet.Add(e.Net())
	}
	for _, e := range record.Income.Rental {
		t.RentalNet = t.RentalNet.Add(e.Net())
	}
	for _, e := range record.Income.Foreign {
		t.Foreign = t.Foreign.Add(e.Amount)
	}
	for _, e := range record.Income.Other {
		t.Other = t.Other.Add(e.Amount)
	}

	if err := a.aggregateCapital(record, rs, t); err != nil {
		return nil, err
	}

	t.EarnedIncome = t.Wages.Add(decimal.Max(decimal.Zero, t.BusinessNet))
	t.InvestmentIncome = t.Interest.
		Add(t.OrdinaryDividends).
		Add(decimal.Max(decimal.Zero, t.CapitalGainIncome))

	t.Total = t.Wages.
		Add(t.Interest).
		Add(t.OrdinaryDividends).
		Add(t.BusinessNet).
		Add(t.CapitalGainIncome).
		Add(t.RentalNet).
		Add(t.Foreign).
		Add(t.Other)

	return t, nil
}

// aggregateCapital nets capital sales into short-term and long-term totals.
//
// Holding-period boundary: exactly 365 days is short-term, 366 or more is
// long-term (see dateutil.IsLongTerm).
//
// Wash sales: a loss sale with a repurchase of the same asset within the
// surrounding window (WashSaleWindowDays before through after the sale) has
// its loss disallowed; the disallowed amount is added to the replacement
// lot's basis. Sales are processed in sale-date order, and a lot whose gain
// has already been finalized cannot serve as a replacement.
func (a *IncomeAggregator) aggregateCapital(record *domain.TaxRecord, rs *rules.TaxYearRuleSet, t *IncomeTotals) error {
	sales := record.Income.CapitalSales
	n := len(sales)

	for i, s := range sales {
		if s.Asset == "" {
			return &domain.InvalidInputError{Field: "income.capital_sales", Index: i, Msg: "asset identifier is required"}
		}
		if s.Acquired.IsZero() {
			return &domain.InvalidInputError{Field: "income.capital_sales", Index: i, Msg: "acquired date is required"}
		}
		if s.Sold.IsZero() {
			return &domain.InvalidInputError{Field: "income.capital_sales", Index: i, Msg: "sold date is required"}
		}
		if s.Sold.Before(s.Acquired) {
			return &domain.InvalidInputError{Field: "income.capital_sales", Index: i, Msg: "sold date precedes acquired date"}
		}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		return sales[order[x]].Sold.Before(sales[order[y]].Sold)
	})

	adjustedBasis := make([]decimal.Decimal, n)
	for i, s := range sales {
		adjustedBasis[i] = s.CostBasis
	}
	finalized := make([]bool, n)

	var shortTerm, longTerm decimal.Decimal
	for _, i := range order {
		sale := sales[i]
		gain := sale.Proceeds.Sub(adjustedBasis[i])

		if gain.IsNegative() {
			if j := a.findReplacementLot(sales, finalized, i, rs.WashSaleWindowDays); j >= 0 {
				disallowed := gain.Neg()
				adjustedBasis[j] = adjustedBasis[j].Add(disallowed)
				t.WashSaleDisallowed = t.WashSaleDisallowed.Add(disallowed)
				gain = decimal.Zero
			}
		}

		finalized[i] = true
		if dateutil.IsLongTerm(sale.Acquired, sale.Sold) {
			longTerm = longTerm.Add(gain)
		} else {
			shortTerm = shortTerm.Add(gain)
		}
	}

	// Prior-year carryovers enter the netting after wash-sale adjustments,
	// before the current year's losses are exhausted.
	shortTerm = shortTerm.Sub(record.Carryovers.ShortTermCapitalLoss)
	longTerm = longTerm.Sub(record.Carryovers.LongTermCapitalLoss)

	// Cross-character offset: a loss of one character absorbs a gain of the
	// other before the annual limit applies.
	if shortTerm.IsNegative() && longTerm.IsPositive() {
		offset := decimal.Min(shortTerm.Neg(), longTerm)
		shortTerm = shortTerm.Add(offset)
		longTerm = longTerm.Sub(offset)
	}
	if longTerm.IsNegative() && shortTerm.IsPositive() {
		offset := decimal.Min(longTerm.Neg(), shortTerm)
		longTerm = longTerm.Add(offset)
		shortTerm = shortTerm.Sub(offset)
	}

	t.ShortTermNet = shortTerm
	t.LongTermNet = longTerm

	combined := shortTerm.Add(longTerm)
	if combined.Sign() >= 0 {
		t.CapitalGainIncome = combined
		t.PreferentialLongTerm = decimal.Max(decimal.Zero, longTerm)
		return nil
	}

	// Net loss: deductible only up to the annual limit, short-term consumed
	// first; the remainder re-carries by character.
	limit := rs.CapitalLossLimit[record.FilingStatus]
	allowed := decimal.Min(combined.Neg(), limit)
	t.CapitalGainIncome = allowed.Neg()

	shortLoss := decimal.Max(decimal.Zero, shortTerm.Neg())
	longLoss := decimal.Max(decimal.Zero, longTerm.Neg())
	usedShort := decimal.Min(shortLoss, allowed)
	usedLong := allowed.Sub(usedShort)
	t.CarryoversOut = domain.Carryovers{
		ShortTermCapitalLoss: shortLoss.Sub(usedShort),
		LongTermCapitalLoss:  longLoss.Sub(usedLong),
	}
	return nil
}

// findReplacementLot returns the index of the lot that triggers wash-sale
// treatment for a loss on sales[i]: same asset, acquired within the window
// around the sale date, not the lot itself, and not already finalized. When
// several qualify, the earliest acquisition wins (ties by entry order).
func (a *IncomeAggregator) findReplacementLot(sales []domain.CapitalSale, finalized []bool, i, windowDays int) int {
	loss := sales[i]
	best := -1
	for j, candidate := range sales {
		if j == i || finalized[j] || candidate.Asset != loss.Asset {
			continue
		}
		if !dateutil.WithinDays(candidate.Acquired, loss.Sold, windowDays) {
			continue
		}
		if best < 0 || candidate.Acquired.Before(sales[best].Acquired) {
			best = j
		}
	}
	return best
}
