package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/taxprep/tax-engine/internal/domain"
	"github.com/taxprep/tax-engine/internal/rules"
)

// DeductionSelector chooses between the standard deduction and itemized
// deductions and reports both candidates for transparency.
type DeductionSelector struct{}

// NewDeductionSelector creates a new deduction selector.
func NewDeductionSelector() *DeductionSelector {
	return &DeductionSelector{}
}

// Select computes both candidate deductions and picks the larger. Ties favor
// the standard deduction, which keeps the downstream form set simpler. The
// standard deduction comes strictly from the rule set; there is no manual
// override.
func (s *DeductionSelector) Select(record *domain.TaxRecord, agi decimal.Decimal, rs *rules.TaxYearRuleSet) domain.DeductionUsed {
	standard := s.standardDeduction(record, rs)
	itemized := s.itemizedTotal(record, agi, rs)

	used := domain.DeductionUsed{
		StandardAmount: standard,
		ItemizedAmount: itemized,
	}
	if itemized.GreaterThan(standard) {
		used.Method = domain.DeductionItemized
		used.Amount = itemized
	} else {
		used.Method = domain.DeductionStandard
		used.Amount = standard
	}
	return used
}

// standardDeduction is the status-keyed base amount plus the additional
// amount for each filer aged 65 or older at year end.
func (s *DeductionSelector) standardDeduction(record *domain.TaxRecord, rs *rules.TaxYearRuleSet) decimal.Decimal {
	amount := rs.StandardDeduction[record.FilingStatus]
	additional := rs.AdditionalStandardDeduction[record.FilingStatus]
	if record.Taxpayer.Age65OrOlder(record.Year) {
		amount = amount.Add(additional)
	}
	if record.Spouse != nil && record.FilingStatus.Joint() && record.Spouse.Age65OrOlder(record.Year) {
		amount = amount.Add(additional)
	}
	return amount
}

// itemizedTotal sums the Schedule A components: medical expenses above the
// AGI floor, state and local taxes up to the SALT cap, mortgage interest,
// charitable contributions and casualty losses.
func (s *DeductionSelector) itemizedTotal(record *domain.TaxRecord, agi decimal.Decimal, rs *rules.TaxYearRuleSet) decimal.Decimal {
	it := record.Itemized
	if it == nil {
		return decimal.Zero
	}

	medicalFloor := agi.Mul(rs.MedicalAGIFloor)
	medical := decimal.Max(decimal.Zero, it.MedicalExpenses.Sub(medicalFloor))
	salt := decimal.Min(it.StateLocalTaxes, rs.SALTCap[record.FilingStatus])

	return medical.
		Add(salt).
		Add(it.MortgageInterest).
		Add(it.CharitableContributions).
		Add(it.CasualtyLosses)
}
