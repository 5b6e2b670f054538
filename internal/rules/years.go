package rules

import (
	"github.com/shopspring/decimal"
	"github.com/taxprep/tax-engine/internal/domain"
)

var ordinaryRates = []decimal.Decimal{
	decimal.NewFromFloat(0.10),
	decimal.NewFromFloat(0.12),
	decimal.NewFromFloat(0.22),
	decimal.NewFromFloat(0.24),
	decimal.NewFromFloat(0.32),
	decimal.NewFromFloat(0.35),
	decimal.NewFromFloat(0.37),
}

var capitalGainsRates = []decimal.Decimal{
	decimal.Zero,
	decimal.NewFromFloat(0.15),
	decimal.NewFromFloat(0.20),
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// bracketsFrom builds a bracket table from ceiling edges. The table has one
// more bracket than edges; the final bracket is unbounded (zero ceiling).
func bracketsFrom(rates []decimal.Decimal, edges ...int64) []Bracket {
	brackets := make([]Bracket, 0, len(edges)+1)
	floor := decimal.Zero
	for i, e := range edges {
		ceiling := d(e)
		brackets = append(brackets, Bracket{Floor: floor, Ceiling: ceiling, Rate: rates[i]})
		floor = ceiling
	}
	brackets = append(brackets, Bracket{Floor: floor, Rate: rates[len(edges)]})
	return brackets
}

// halved derives a married-filing-separately table by halving every edge of
// the joint table.
func halved(joint []Bracket) []Bracket {
	two := d(2)
	out := make([]Bracket, len(joint))
	for i, b := range joint {
		out[i] = Bracket{Floor: b.Floor.Div(two), Rate: b.Rate}
		if !b.Ceiling.IsZero() {
			out[i].Ceiling = b.Ceiling.Div(two)
		}
	}
	return out
}

func statusAmounts(single, joint, separate, hoh, qss int64) map[domain.FilingStatus]decimal.Decimal {
	return map[domain.FilingStatus]decimal.Decimal{
		domain.Single:                    d(single),
		domain.MarriedJoint:              d(joint),
		domain.MarriedSeparate:           d(separate),
		domain.HeadOfHousehold:           d(hoh),
		domain.QualifyingSurvivingSpouse: d(qss),
	}
}

func year2024() *TaxYearRuleSet {
	joint := bracketsFrom(ordinaryRates, 23200, 94300, 201050, 383900, 487450, 731200)
	jointCG := bracketsFrom(capitalGainsRates, 94050, 583750)
	return &TaxYearRuleSet{
		Year: 2024,
		Brackets: map[domain.FilingStatus][]Bracket{
			domain.Single:                    bracketsFrom(ordinaryRates, 11600, 47150, 100525, 191950, 243725, 609350),
			domain.MarriedJoint:              joint,
			domain.MarriedSeparate:           halved(joint),
			domain.HeadOfHousehold:           bracketsFrom(ordinaryRates, 16550, 63100, 100500, 191950, 243700, 609350),
			domain.QualifyingSurvivingSpouse: joint,
		},
		CapitalGainsBrackets: map[domain.FilingStatus][]Bracket{
			domain.Single:                    bracketsFrom(capitalGainsRates, 47025, 518900),
			domain.MarriedJoint:              jointCG,
			domain.MarriedSeparate:           halved(jointCG),
			domain.HeadOfHousehold:           bracketsFrom(capitalGainsRates, 63000, 551350),
			domain.QualifyingSurvivingSpouse: jointCG,
		},
		StandardDeduction:           statusAmounts(14600, 29200, 14600, 21900, 29200),
		AdditionalStandardDeduction: statusAmounts(1950, 1550, 1550, 1950, 1550),
		MedicalAGIFloor:             decimal.NewFromFloat(0.075),
		SALTCap:                     statusAmounts(10000, 10000, 5000, 10000, 10000),
		CapitalLossLimit:            statusAmounts(3000, 3000, 1500, 3000, 3000),
		WashSaleWindowDays:          30,
		SelfEmployment: SelfEmploymentRules{
			NetEarningsFactor:      decimal.NewFromFloat(0.9235),
			SocialSecurityRate:     decimal.NewFromFloat(0.124),
			SocialSecurityWageBase: d(168600),
			MedicareRate:           decimal.NewFromFloat(0.029),
			MinimumNetEarnings:     d(400),
		},
		ChildTaxCredit: ChildTaxCreditRules{
			PerChild:              d(2000),
			PhaseOutStart:         statusAmounts(200000, 400000, 200000, 200000, 400000),
			PhaseOutRate:          decimal.NewFromFloat(0.05),
			RefundableCapPerChild: d(1700),
		},
		EarnedIncomeCredit: EarnedIncomeCreditRules{
			MaxCredit:             [4]decimal.Decimal{d(632), d(4213), d(6960), d(7830)},
			PhaseOutStart:         [4]decimal.Decimal{d(10330), d(22720), d(22720), d(22720)},
			MarriedJointIncrease:  d(6920),
			PhaseOutRate:          [4]decimal.Decimal{decimal.NewFromFloat(0.0765), decimal.NewFromFloat(0.1598), decimal.NewFromFloat(0.2106), decimal.NewFromFloat(0.2106)},
			InvestmentIncomeLimit: d(11600),
		},
		EducationCredit: EducationCreditRules{
			Max:            d(2500),
			FirstTier:      d(2000),
			SecondTierRate: decimal.NewFromFloat(0.25),
			PhaseOutStart:  statusAmounts(80000, 160000, 80000, 80000, 160000),
			PhaseOutRate: map[domain.FilingStatus]decimal.Decimal{
				domain.Single:                    decimal.NewFromFloat(0.25),
				domain.MarriedJoint:              decimal.NewFromFloat(0.125),
				domain.MarriedSeparate:           decimal.NewFromFloat(0.25),
				domain.HeadOfHousehold:           decimal.NewFromFloat(0.25),
				domain.QualifyingSurvivingSpouse: decimal.NewFromFloat(0.125),
			},
		},
	}
}

func year2025() *TaxYearRuleSet {
	joint := bracketsFrom(ordinaryRates, 23850, 96950, 206700, 394600, 501050, 751600)
	jointCG := bracketsFrom(capitalGainsRates, 96700, 600050)
	return &TaxYearRuleSet{
		Year: 2025,
		Brackets: map[domain.FilingStatus][]Bracket{
			domain.Single:                    bracketsFrom(ordinaryRates, 11925, 48475, 103350, 197300, 250525, 626350),
			domain.MarriedJoint:              joint,
			domain.MarriedSeparate:           halved(joint),
			domain.HeadOfHousehold:           bracketsFrom(ordinaryRates, 17000, 64850, 103350, 197300, 250500, 626350),
			domain.QualifyingSurvivingSpouse: joint,
		},
		CapitalGainsBrackets: map[domain.FilingStatus][]Bracket{
			domain.Single:                    bracketsFrom(capitalGainsRates, 48350, 533400),
			domain.MarriedJoint:              jointCG,
			domain.MarriedSeparate:           halved(jointCG),
			domain.HeadOfHousehold:           bracketsFrom(capitalGainsRates, 64750, 566700),
			domain.QualifyingSurvivingSpouse: jointCG,
		},
		StandardDeduction:           statusAmounts(15000, 30000, 15000, 22500, 30000),
		AdditionalStandardDeduction: statusAmounts(2000, 1600, 1600, 2000, 1600),
		MedicalAGIFloor:             decimal.NewFromFloat(0.075),
		SALTCap:                     statusAmounts(10000, 10000, 5000, 10000, 10000),
		CapitalLossLimit:            statusAmounts(3000, 3000, 1500, 3000, 3000),
		WashSaleWindowDays:          30,
		SelfEmployment: SelfEmploymentRules{
			NetEarningsFactor:      decimal.NewFromFloat(0.9235),
			SocialSecurityRate:     decimal.NewFromFloat(0.124),
			SocialSecurityWageBase: d(176100),
			MedicareRate:           decimal.NewFromFloat(0.029),
			MinimumNetEarnings:     d(400),
		},
		ChildTaxCredit: ChildTaxCreditRules{
			PerChild:              d(2000),
			PhaseOutStart:         statusAmounts(200000, 400000, 200000, 200000, 400000),
			PhaseOutRate:          decimal.NewFromFloat(0.05),
			RefundableCapPerChild: d(1700),
		},
		EarnedIncomeCredit: EarnedIncomeCreditRules{
			MaxCredit:             [4]decimal.Decimal{d(649), d(4328), d(7152), d(8046)},
			PhaseOutStart:         [4]decimal.Decimal{d(10620), d(23350), d(23350), d(23350)},
			MarriedJointIncrease:  d(7110),
			PhaseOutRate:          [4]decimal.Decimal{decimal.NewFromFloat(0.0765), decimal.NewFromFloat(0.1598), decimal.NewFromFloat(0.2106), decimal.NewFromFloat(0.2106)},
			InvestmentIncomeLimit: d(11950),
		},
		EducationCredit: EducationCreditRules{
			Max:            d(2500),
			FirstTier:      d(2000),
			SecondTierRate: decimal.NewFromFloat(0.25),
			PhaseOutStart:  statusAmounts(80000, 160000, 80000, 80000, 160000),
			PhaseOutRate: map[domain.FilingStatus]decimal.Decimal{
				domain.Single:                    decimal.NewFromFloat(0.25),
				domain.MarriedJoint:              decimal.NewFromFloat(0.125),
				domain.MarriedSeparate:           decimal.NewFromFloat(0.25),
				domain.HeadOfHousehold:           decimal.NewFromFloat(0.25),
				domain.QualifyingSurvivingSpouse: decimal.NewFromFloat(0.125),
			},
		},
	}
}

func year2026() *TaxYearRuleSet {
	joint := bracketsFrom(ordinaryRates, 24800, 100800, 211400, 403550, 512450, 768700)
	jointCG := bracketsFrom(capitalGainsRates, 99400, 616850)
	return &TaxYearRuleSet{
		Year: 2026,
		Brackets: map[domain.FilingStatus][]Bracket{
			domain.Single:                    bracketsFrom(ordinaryRates, 12400, 50400, 105700, 201775, 256225, 640600),
			domain.MarriedJoint:              joint,
			domain.MarriedSeparate:           halved(joint),
			domain.HeadOfHousehold:           bracketsFrom(ordinaryRates, 17700, 67450, 105700, 201775, 256200, 640600),
			domain.QualifyingSurvivingSpouse: joint,
		},
		CapitalGainsBrackets: map[domain.FilingStatus][]Bracket{
			domain.Single:                    bracketsFrom(capitalGainsRates, 49700, 548300),
			domain.MarriedJoint:              jointCG,
			domain.MarriedSeparate:           halved(jointCG),
			domain.HeadOfHousehold:           bracketsFrom(capitalGainsRates, 66550, 582550),
			domain.QualifyingSurvivingSpouse: jointCG,
		},
		StandardDeduction:           statusAmounts(15350, 30700, 15350, 23025, 30700),
		AdditionalStandardDeduction: statusAmounts(2050, 1650, 1650, 2050, 1650),
		MedicalAGIFloor:             decimal.NewFromFloat(0.075),
		SALTCap:                     statusAmounts(10000, 10000, 5000, 10000, 10000),
		CapitalLossLimit:            statusAmounts(3000, 3000, 1500, 3000, 3000),
		WashSaleWindowDays:          30,
		SelfEmployment: SelfEmploymentRules{
			NetEarningsFactor:      decimal.NewFromFloat(0.9235),
			SocialSecurityRate:     decimal.NewFromFloat(0.124),
			SocialSecurityWageBase: d(183600),
			MedicareRate:           decimal.NewFromFloat(0.029),
			MinimumNetEarnings:     d(400),
		},
		ChildTaxCredit: ChildTaxCreditRules{
			PerChild:              d(2000),
			PhaseOutStart:         statusAmounts(200000, 400000, 200000, 200000, 400000),
			PhaseOutRate:          decimal.NewFromFloat(0.05),
			RefundableCapPerChild: d(1800),
		},
		EarnedIncomeCredit: EarnedIncomeCreditRules{
			MaxCredit:             [4]decimal.Decimal{d(664), d(4427), d(7316), d(8231)},
			PhaseOutStart:         [4]decimal.Decimal{d(10850), d(23900), d(23900), d(23900)},
			MarriedJointIncrease:  d(7300),
			PhaseOutRate:          [4]decimal.Decimal{decimal.NewFromFloat(0.0765), decimal.NewFromFloat(0.1598), decimal.NewFromFloat(0.2106), decimal.NewFromFloat(0.2106)},
			InvestmentIncomeLimit: d(12200),
		},
		EducationCredit: EducationCreditRules{
			Max:            d(2500),
			FirstTier:      d(2000),
			SecondTierRate: decimal.NewFromFloat(0.25),
			PhaseOutStart:  statusAmounts(80000, 160000, 80000, 80000, 160000),
			PhaseOutRate: map[domain.FilingStatus]decimal.Decimal{
				domain.Single:                    decimal.NewFromFloat(0.25),
				domain.MarriedJoint:              decimal.NewFromFloat(0.125),
				domain.MarriedSeparate:           decimal.NewFromFloat(0.25),
				domain.HeadOfHousehold:           decimal.NewFromFloat(0.25),
				domain.QualifyingSurvivingSpouse: decimal.NewFromFloat(0.125),
			},
		},
	}
}
