// Package rules holds the per-year IRS constants the engine computes with.
// Rule sets are pure data, created once at startup and never mutated; adding
// a supported year means adding a table, not changing calculation code.
package rules

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/taxprep/tax-engine/internal/domain"
)

// Bracket is one marginal rate segment. Floor is the inclusive lower bound of
// the segment; Ceiling is the exclusive upper bound, so income exactly equal
// to a ceiling belongs to this bracket, not the next. A zero Ceiling marks
// the unbounded top bracket.
type Bracket struct {
	Floor   decimal.Decimal
	Ceiling decimal.Decimal
	Rate    decimal.Decimal
}

// SelfEmploymentRules holds the Schedule SE constants.
type SelfEmploymentRules struct {
	NetEarningsFactor      decimal.Decimal // portion of net profit subject to SE tax (92.35%)
	SocialSecurityRate     decimal.Decimal
	SocialSecurityWageBase decimal.Decimal
	MedicareRate           decimal.Decimal
	MinimumNetEarnings     decimal.Decimal // below this, no SE tax is due
}

// ChildTaxCreditRules holds the CTC/ACTC constants.
type ChildTaxCreditRules struct {
	PerChild              decimal.Decimal
	PhaseOutStart         map[domain.FilingStatus]decimal.Decimal
	PhaseOutRate          decimal.Decimal
	RefundableCapPerChild decimal.Decimal
}

// EarnedIncomeCreditRules holds the EIC constants, indexed by the number of
// qualifying children (capped at three).
type EarnedIncomeCreditRules struct {
	MaxCredit             [4]decimal.Decimal
	PhaseOutStart         [4]decimal.Decimal // for single-equivalent statuses
	MarriedJointIncrease  decimal.Decimal    // added to PhaseOutStart for joint filers
	PhaseOutRate          [4]decimal.Decimal
	InvestmentIncomeLimit decimal.Decimal
}

// EducationCreditRules holds the American-opportunity-style education credit
// constants. The base amount is 100% of the first expense tier plus 25% of
// the second, capped at Max.
type EducationCreditRules struct {
	Max            decimal.Decimal
	FirstTier      decimal.Decimal // expenses credited at 100%
	SecondTierRate decimal.Decimal // rate applied to expenses above FirstTier
	PhaseOutStart  map[domain.FilingStatus]decimal.Decimal
	PhaseOutRate   map[domain.FilingStatus]decimal.Decimal
}

// TaxYearRuleSet bundles every constant for one tax year.
type TaxYearRuleSet struct {
	Year int

	Brackets             map[domain.FilingStatus][]Bracket
	CapitalGainsBrackets map[domain.FilingStatus][]Bracket

	StandardDeduction           map[domain.FilingStatus]decimal.Decimal
	AdditionalStandardDeduction map[domain.FilingStatus]decimal.Decimal // per person 65+

	MedicalAGIFloor  decimal.Decimal // itemized medical counts only above this AGI fraction
	SALTCap          map[domain.FilingStatus]decimal.Decimal
	CapitalLossLimit map[domain.FilingStatus]decimal.Decimal

	WashSaleWindowDays int

	SelfEmployment     SelfEmploymentRules
	ChildTaxCredit     ChildTaxCreditRules
	EarnedIncomeCredit EarnedIncomeCreditRules
	EducationCredit    EducationCreditRules
}

var registry = map[int]*TaxYearRuleSet{
	2024: year2024(),
	2025: year2025(),
	2026: year2026(),
}

// ForYear returns the rule set for the given tax year, or an
// UnsupportedYearError when none is registered.
func ForYear(year int) (*TaxYearRuleSet, error) {
	rs, ok := registry[year]
	if !ok {
		return nil, &domain.UnsupportedYearError{Year: year}
	}
	return rs, nil
}

// SupportedYears lists every registered year in ascending order.
func SupportedYears() []int {
	years := make([]int, 0, len(registry))
	for y := range registry {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
