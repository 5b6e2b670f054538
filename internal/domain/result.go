package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeductionMethod identifies which deduction the calculation used.
type DeductionMethod string

const (
	DeductionStandard DeductionMethod = "standard"
	DeductionItemized DeductionMethod = "itemized"
)

// DeductionUsed reports the selected deduction along with both candidate
// amounts so consumers can see why the selection won.
type DeductionUsed struct {
	Method         DeductionMethod `json:"method"`
	Amount         decimal.Decimal `json:"amount"`
	StandardAmount decimal.Decimal `json:"standard_amount"`
	ItemizedAmount decimal.Decimal `json:"itemized_amount"`
}

// CreditBreakdown itemizes every computed credit. Nonrefundable amounts are
// the portions actually applied against tax; refundable amounts may exceed
// remaining tax and flow into the refund.
type CreditBreakdown struct {
	ChildTaxCredit           decimal.Decimal `json:"child_tax_credit"`
	EducationCredit          decimal.Decimal `json:"education_credit"`
	EarnedIncomeCredit       decimal.Decimal `json:"earned_income_credit"`
	AdditionalChildTaxCredit decimal.Decimal `json:"additional_child_tax_credit"`
	NonrefundableApplied     decimal.Decimal `json:"nonrefundable_applied"`
	RefundablePortion        decimal.Decimal `json:"refundable_portion"`
}

// Total returns the sum of every credit in the breakdown.
func (c CreditBreakdown) Total() decimal.Decimal {
	return c.NonrefundableApplied.Add(c.RefundablePortion)
}

// FormClassification distinguishes forms the return cannot be filed without
// from forms the filer should consider attaching.
type FormClassification string

const (
	FormRequired    FormClassification = "required"
	FormRecommended FormClassification = "recommended"
)

// FormRequirement is one supplementary form with the reason it was selected.
type FormRequirement struct {
	FormID         string             `json:"form_id"`
	Classification FormClassification `json:"classification"`
	Reason         string             `json:"reason"`
}

// Result is the immutable output of one calculation. All amounts are rounded
// to cents. Exactly one of Refund and BalanceDue is nonzero unless payments
// exactly equal total tax.
type Result struct {
	ReturnID uuid.UUID `json:"return_id"`
	Year     int       `json:"year"`

	TotalIncome         decimal.Decimal `json:"total_income"`
	AdjustedGrossIncome decimal.Decimal `json:"adjusted_gross_income"`
	Deduction           DeductionUsed   `json:"deduction"`
	TaxableIncome       decimal.Decimal `json:"taxable_income"`

	IncomeTax         decimal.Decimal `json:"income_tax"`
	SelfEmploymentTax decimal.Decimal `json:"self_employment_tax"`
	Credits           CreditBreakdown `json:"credits"`
	TotalTax          decimal.Decimal `json:"total_tax"`

	TotalPayments decimal.Decimal `json:"total_payments"`
	Refund        decimal.Decimal `json:"refund"`
	BalanceDue    decimal.Decimal `json:"balance_due"`

	WashSaleLossDisallowed decimal.Decimal `json:"wash_sale_loss_disallowed"`
	CarryoversOut          Carryovers      `json:"carryovers_out"`

	RequiredForms []FormRequirement `json:"required_forms"`
}
