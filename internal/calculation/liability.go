package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/taxprep/tax-engine/internal/domain"
	"github.com/taxprep/tax-engine/internal/rules"
)

// TaxLiabilityCalculator computes ordinary income tax, the preferential-rate
// worksheet tax and self-employment tax.
type TaxLiabilityCalculator struct{}

// NewTaxLiabilityCalculator creates a new liability calculator.
func NewTaxLiabilityCalculator() *TaxLiabilityCalculator {
	return &TaxLiabilityCalculator{}
}

// ComputeTax applies marginal-bracket integration: for every bracket whose
// floor is below taxable income, tax the slice between the floor and the
// lower of taxable income and the bracket ceiling. Income exactly equal to a
// ceiling belongs to that bracket. Negative taxable income is clamped to
// zero, never an error.
func (c *TaxLiabilityCalculator) ComputeTax(taxableIncome decimal.Decimal, status domain.FilingStatus, rs *rules.TaxYearRuleSet) decimal.Decimal {
	return marginalTax(taxableIncome, rs.Brackets[status])
}

// TaxWithPreferentialRates runs the qualified dividends and capital gains
// worksheet: the preferential portion (qualified dividends plus net long-term
// gain) is taxed through the capital-gains brackets stacked on top of the
// ordinary portion. The result is the smaller of the worksheet tax and the
// all-ordinary tax, as on the worksheet's final comparison line.
func (c *TaxLiabilityCalculator) TaxWithPreferentialRates(taxableIncome, preferential decimal.Decimal, status domain.FilingStatus, rs *rules.TaxYearRuleSet) decimal.Decimal {
	regular := c.ComputeTax(taxableIncome, status, rs)
	if preferential.Sign() <= 0 || taxableIncome.Sign() <= 0 {
		return regular
	}

	preferential = decimal.Min(preferential, taxableIncome)
	ordinary := taxableIncome.Sub(preferential)

	worksheet := marginalTax(ordinary, rs.Brackets[status])
	for _, b := range rs.CapitalGainsBrackets[status] {
		lo := decimal.Max(b.Floor, ordinary)
		hi := taxableIncome
		if !b.Ceiling.IsZero() {
			hi = decimal.Min(hi, b.Ceiling)
		}
		if hi.GreaterThan(lo) {
			worksheet = worksheet.Add(hi.Sub(lo).Mul(b.Rate))
		}
	}

	return decimal.Min(worksheet, regular)
}

// SelfEmploymentTax computes Schedule SE tax on net business profit: 92.35%
// of the profit is net earnings; the Social Security portion is capped at
// the annual wage base while the Medicare portion is uncapped. Net earnings
// below the statutory minimum owe nothing.
func (c *TaxLiabilityCalculator) SelfEmploymentTax(businessNet decimal.Decimal, rs *rules.TaxYearRuleSet) decimal.Decimal {
	if businessNet.Sign() <= 0 {
		return decimal.Zero
	}
	se := rs.SelfEmployment
	netEarnings := businessNet.Mul(se.NetEarningsFactor)
	if netEarnings.LessThan(se.MinimumNetEarnings) {
		return decimal.Zero
	}
	socialSecurity := decimal.Min(netEarnings, se.SocialSecurityWageBase).Mul(se.SocialSecurityRate)
	medicare := netEarnings.Mul(se.MedicareRate)
	return socialSecurity.Add(medicare)
}

func marginalTax(taxableIncome decimal.Decimal, brackets []rules.Bracket) decimal.Decimal {
	if taxableIncome.Sign() <= 0 {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, b := range brackets {
		if taxableIncome.LessThanOrEqual(b.Floor) {
			break
		}
		top := taxableIncome
		if !b.Ceiling.IsZero() {
			top = decimal.Min(top, b.Ceiling)
		}
		total = total.Add(top.Sub(b.Floor).Mul(b.Rate))
	}
	return total
}
