package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/taxprep/tax-engine/internal/domain"
	"github.com/taxprep/tax-engine/internal/rules"
)

// CreditEngine computes every credit with its phase-out and splits the
// results into nonrefundable amounts (floored so tax never drops below zero)
// and refundable amounts (which may exceed remaining tax and become refund).
//
// Application order is fixed so results are deterministic: child tax credit,
// then education credit, both against remaining tax; then the refundable
// credits (earned income credit, additional child tax credit).
type CreditEngine struct{}

// NewCreditEngine creates a new credit engine.
func NewCreditEngine() *CreditEngine {
	return &CreditEngine{}
}

// ComputeCredits evaluates each credit against the record, AGI and the tax
// before credits.
func (e *CreditEngine) ComputeCredits(record *domain.TaxRecord, totals *IncomeTotals, agi, taxBeforeCredits decimal.Decimal, rs *rules.TaxYearRuleSet) domain.CreditBreakdown {
	var b domain.CreditBreakdown
	remaining := decimal.Max(decimal.Zero, taxBeforeCredits)

	children := record.QualifyingChildren()

	// Child tax credit: nonrefundable up to remaining tax; the unused
	// remainder is refundable up to the per-child cap.
	grossCTC := e.childTaxCredit(children, agi, record.FilingStatus, rs)
	b.ChildTaxCredit = decimal.Min(grossCTC, remaining)
	remaining = remaining.Sub(b.ChildTaxCredit)

	ctc := rs.ChildTaxCredit
	refundableCap := ctc.RefundableCapPerChild.Mul(decimal.NewFromInt(int64(children)))
	b.AdditionalChildTaxCredit = decimal.Min(grossCTC.Sub(b.ChildTaxCredit), refundableCap)

	// Education credit: nonrefundable only.
	grossEducation := e.educationCredit(record, agi, rs)
	b.EducationCredit = decimal.Min(grossEducation, remaining)

	// Earned income credit: fully refundable.
	b.EarnedIncomeCredit = e.earnedIncomeCredit(record, totals, agi, rs)

	b.NonrefundableApplied = b.ChildTaxCredit.Add(b.EducationCredit)
	b.RefundablePortion = b.AdditionalChildTaxCredit.Add(b.EarnedIncomeCredit)
	return b
}

// phaseOut applies the linear reduction: base minus the excess of AGI over
// the threshold times the rate, floored at zero.
func phaseOut(base, agi, start, rate decimal.Decimal) decimal.Decimal {
	excess := decimal.Max(decimal.Zero, agi.Sub(start))
	return decimal.Max(decimal.Zero, base.Sub(excess.Mul(rate)))
}

func (e *CreditEngine) childTaxCredit(children int, agi decimal.Decimal, status domain.FilingStatus, rs *rules.TaxYearRuleSet) decimal.Decimal {
	if children == 0 {
		return decimal.Zero
	}
	ctc := rs.ChildTaxCredit
	base := ctc.PerChild.Mul(decimal.NewFromInt(int64(children)))
	return phaseOut(base, agi, ctc.PhaseOutStart[status], ctc.PhaseOutRate)
}

// educationCredit follows the two-tier base formula: the first expense tier
// counts in full, amounts above it at the second-tier rate, capped at the
// credit maximum. Married-filing-separately filers are ineligible.
func (e *CreditEngine) educationCredit(record *domain.TaxRecord, agi decimal.Decimal, rs *rules.TaxYearRuleSet) decimal.Decimal {
	expenses := record.Credits.QualifiedEducationExpenses
	if expenses.Sign() <= 0 || record.FilingStatus == domain.MarriedSeparate {
		return decimal.Zero
	}
	edu := rs.EducationCredit
	base := decimal.Min(expenses, edu.FirstTier)
	if expenses.GreaterThan(edu.FirstTier) {
		base = base.Add(expenses.Sub(edu.FirstTier).Mul(edu.SecondTierRate))
	}
	base = decimal.Min(base, edu.Max)
	return phaseOut(base, agi, edu.PhaseOutStart[record.FilingStatus], edu.PhaseOutRate[record.FilingStatus])
}

// earnedIncomeCredit checks eligibility (earned income, the investment-income
// ceiling, and a filing status other than married filing separately), then
// phases the child-count-keyed maximum down from the status-adjusted start.
// The phase-out is measured against the greater of AGI and earned income.
func (e *CreditEngine) earnedIncomeCredit(record *domain.TaxRecord, totals *IncomeTotals, agi decimal.Decimal, rs *rules.TaxYearRuleSet) decimal.Decimal {
	if record.FilingStatus == domain.MarriedSeparate {
		return decimal.Zero
	}
	if totals.EarnedIncome.Sign() <= 0 {
		return decimal.Zero
	}
	eic := rs.EarnedIncomeCredit
	if totals.InvestmentIncome.GreaterThan(eic.InvestmentIncomeLimit) {
		return decimal.Zero
	}

	idx := record.QualifyingChildren()
	if idx > 3 {
		idx = 3
	}
	start := eic.PhaseOutStart[idx]
	if record.FilingStatus.Joint() {
		start = start.Add(eic.MarriedJointIncrease)
	}
	measured := decimal.Max(agi, totals.EarnedIncome)
	return phaseOut(eic.MaxCredit[idx], measured, start, eic.PhaseOutRate[idx])
}
