package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/taxprep/tax-engine/internal/domain"
)

// scheduleBThreshold is the combined interest-plus-ordinary-dividends amount
// above which Schedule B must be attached.
var scheduleBThreshold = decimal.NewFromInt(1500)

// formRule is one row of the determination table: a predicate over the
// record and computed result, and the requirement it produces when true.
type formRule struct {
	formID         string
	classification domain.FormClassification
	reason         string
	applies        func(*domain.TaxRecord, *domain.Result) bool
}

// FormDeterminer maps a record and its computed result to the set of
// supplementary forms the return needs. The mapping is a fixed predicate
// table: no randomness, no external lookups, idempotent by construction.
type FormDeterminer struct {
	table []formRule
}

// NewFormDeterminer creates a determiner with the built-in rule table.
func NewFormDeterminer() *FormDeterminer {
	return &FormDeterminer{table: []formRule{
		{
			formID: "Form 1040", classification: domain.FormRequired,
			reason:  "individual income tax return",
			applies: func(*domain.TaxRecord, *domain.Result) bool { return true },
		},
		{
			formID: "Schedule 1", classification: domain.FormRequired,
			reason: "additional income or adjustments to income",
			applies: func(r *domain.TaxRecord, res *domain.Result) bool {
				return len(r.Income.Business) > 0 || len(r.Income.Rental) > 0 ||
					len(r.Income.Other) > 0 || res.SelfEmploymentTax.IsPositive()
			},
		},
		{
			formID: "Schedule 2", classification: domain.FormRequired,
			reason: "additional taxes (self-employment tax)",
			applies: func(_ *domain.TaxRecord, res *domain.Result) bool {
				return res.SelfEmploymentTax.IsPositive()
			},
		},
		{
			formID: "Schedule 3", classification: domain.FormRequired,
			reason: "additional credits (education credit)",
			applies: func(_ *domain.TaxRecord, res *domain.Result) bool {
				return res.Credits.EducationCredit.IsPositive()
			},
		},
		{
			formID: "Schedule A", classification: domain.FormRequired,
			reason: "itemized deductions claimed",
			applies: func(_ *domain.TaxRecord, res *domain.Result) bool {
				return res.Deduction.Method == domain.DeductionItemized
			},
		},
		{
			formID: "Schedule B", classification: domain.FormRequired,
			reason: "interest and ordinary dividends over $1,500",
			applies: func(r *domain.TaxRecord, _ *domain.Result) bool {
				total := decimal.Zero
				for _, e := range r.Income.Interest {
					total = total.Add(e.Amount)
				}
				for _, e := range r.Income.Dividends {
					total = total.Add(e.Ordinary)
				}
				return total.GreaterThan(scheduleBThreshold)
			},
		},
		{
			formID: "Schedule C", classification: domain.FormRequired,
			reason: "business income or loss reported",
			applies: func(r *domain.TaxRecord, _ *domain.Result) bool {
				return len(r.Income.Business) > 0
			},
		},
		{
			formID: "Schedule D", classification: domain.FormRequired,
			reason: "capital gains or losses reported",
			applies: func(r *domain.TaxRecord, _ *domain.Result) bool {
				return len(r.Income.CapitalSales) > 0
			},
		},
		{
			formID: "Form 8949", classification: domain.FormRequired,
			reason: "sales and dispositions of capital assets",
			applies: func(r *domain.TaxRecord, _ *domain.Result) bool {
				return len(r.Income.CapitalSales) > 0
			},
		},
		{
			formID: "Schedule E", classification: domain.FormRequired,
			reason: "rental income or loss reported",
			applies: func(r *domain.TaxRecord, _ *domain.Result) bool {
				return len(r.Income.Rental) > 0
			},
		},
		{
			formID: "Schedule SE", classification: domain.FormRequired,
			reason: "self-employment tax due",
			applies: func(_ *domain.TaxRecord, res *domain.Result) bool {
				return res.SelfEmploymentTax.IsPositive()
			},
		},
		{
			formID: "Schedule 8812", classification: domain.FormRequired,
			reason: "child tax credit claimed",
			applies: func(_ *domain.TaxRecord, res *domain.Result) bool {
				return res.Credits.ChildTaxCredit.IsPositive() ||
					res.Credits.AdditionalChildTaxCredit.IsPositive()
			},
		},
		{
			formID: "Schedule EIC", classification: domain.FormRequired,
			reason: "earned income credit with qualifying children",
			applies: func(r *domain.TaxRecord, res *domain.Result) bool {
				return res.Credits.EarnedIncomeCredit.IsPositive() && r.QualifyingChildren() > 0
			},
		},
		{
			formID: "Form 8863", classification: domain.FormRequired,
			reason: "education credit claimed",
			applies: func(_ *domain.TaxRecord, res *domain.Result) bool {
				return res.Credits.EducationCredit.IsPositive()
			},
		},
		{
			formID: "Form 1116", classification: domain.FormRecommended,
			reason: "foreign tax paid may be creditable",
			applies: func(r *domain.TaxRecord, _ *domain.Result) bool {
				for _, f := range r.Income.Foreign {
					if f.ForeignTaxPaid.IsPositive() {
						return true
					}
				}
				return false
			},
		},
		{
			formID: "Form 2555", classification: domain.FormRecommended,
			reason: "foreign earned income may be excludable",
			applies: func(r *domain.TaxRecord, _ *domain.Result) bool {
				return len(r.Income.Foreign) > 0
			},
		},
	}}
}

// Determine evaluates the rule table against the record and result. Calling
// it twice with the same inputs yields an identical form set.
func (d *FormDeterminer) Determine(record *domain.TaxRecord, result *domain.Result) []domain.FormRequirement {
	forms := make([]domain.FormRequirement, 0, 4)
	for _, rule := range d.table {
		if rule.applies(record, result) {
			forms = append(forms, domain.FormRequirement{
				FormID:         rule.formID,
				Classification: rule.classification,
				Reason:         rule.reason,
			})
		}
	}
	return forms
}
