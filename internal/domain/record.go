package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FilingStatus identifies the federal filing status for a return.
type FilingStatus string

const (
	Single                    FilingStatus = "single"
	MarriedJoint              FilingStatus = "married_joint"
	MarriedSeparate           FilingStatus = "married_separate"
	HeadOfHousehold           FilingStatus = "head_of_household"
	QualifyingSurvivingSpouse FilingStatus = "qualifying_surviving_spouse"
)

// FilingStatuses lists every supported status in a fixed order.
var FilingStatuses = []FilingStatus{
	Single,
	MarriedJoint,
	MarriedSeparate,
	HeadOfHousehold,
	QualifyingSurvivingSpouse,
}

// Valid reports whether the status is one of the supported values.
func (fs FilingStatus) Valid() bool {
	for _, s := range FilingStatuses {
		if fs == s {
			return true
		}
	}
	return false
}

// Joint reports whether the status uses the joint-filer tables.
func (fs FilingStatus) Joint() bool {
	return fs == MarriedJoint || fs == QualifyingSurvivingSpouse
}

// PersonalInfo holds identifying details for the taxpayer or spouse.
type PersonalInfo struct {
	FirstName string    `yaml:"first_name" json:"first_name"`
	LastName  string    `yaml:"last_name" json:"last_name"`
	TaxID     string    `yaml:"tax_id" json:"tax_id"`
	BirthDate time.Time `yaml:"birth_date" json:"birth_date"`
}

// Age65OrOlder reports whether the person is 65 or older at the end of the
// given tax year. Birth date unset means age is unknown and treated as under 65.
func (p PersonalInfo) Age65OrOlder(year int) bool {
	if p.BirthDate.IsZero() {
		return false
	}
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	cutoff := p.BirthDate.AddDate(65, 0, 0)
	return !cutoff.After(yearEnd)
}

// Dependent is one claimed dependent. QualifyingChild drives child tax credit
// and earned income credit eligibility.
type Dependent struct {
	Name            string `yaml:"name" json:"name"`
	TaxID           string `yaml:"tax_id" json:"tax_id"`
	Relationship    string `yaml:"relationship" json:"relationship"`
	QualifyingChild bool   `yaml:"qualifying_child" json:"qualifying_child"`
	MonthsResident  int    `yaml:"months_resident" json:"months_resident"`
}

// W2Entry is one Form W-2.
type W2Entry struct {
	Employer           string          `yaml:"employer" json:"employer"`
	Wages              decimal.Decimal `yaml:"wages" json:"wages"`
	FederalWithholding decimal.Decimal `yaml:"federal_withholding" json:"federal_withholding"`
}

// InterestEntry is one 1099-INT payer line.
type InterestEntry struct {
	Payer  string          `yaml:"payer" json:"payer"`
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
}

// DividendEntry is one 1099-DIV payer line. Qualified is the portion of
// Ordinary eligible for preferential rates and can never exceed it.
type DividendEntry struct {
	Payer     string          `yaml:"payer" json:"payer"`
	Ordinary  decimal.Decimal `yaml:"ordinary" json:"ordinary"`
	Qualified decimal.Decimal `yaml:"qualified" json:"qualified"`
}

// BusinessEntry is one Schedule C activity.
type BusinessEntry struct {
	Description   string          `yaml:"description" json:"description"`
	GrossReceipts decimal.Decimal `yaml:"gross_receipts" json:"gross_receipts"`
	Expenses      decimal.Decimal `yaml:"expenses" json:"expenses"`
}

// Net returns gross receipts minus expenses (may be negative).
func (b BusinessEntry) Net() decimal.Decimal {
	return b.GrossReceipts.Sub(b.Expenses)
}

// CapitalSale is one disposition of a capital asset. Asset identifies the
// security for wash-sale matching (substantially identical assets share the
// same identifier).
type CapitalSale struct {
	Asset     string          `yaml:"asset" json:"asset"`
	Acquired  time.Time       `yaml:"acquired" json:"acquired"`
	Sold      time.Time       `yaml:"sold" json:"sold"`
	Proceeds  decimal.Decimal `yaml:"proceeds" json:"proceeds"`
	CostBasis decimal.Decimal `yaml:"cost_basis" json:"cost_basis"`
}

// RentalEntry is one Schedule E property.
type RentalEntry struct {
	Property      string          `yaml:"property" json:"property"`
	RentsReceived decimal.Decimal `yaml:"rents_received" json:"rents_received"`
	Expenses      decimal.Decimal `yaml:"expenses" json:"expenses"`
}

// Net returns rents received minus expenses (may be negative).
func (r RentalEntry) Net() decimal.Decimal {
	return r.RentsReceived.Sub(r.Expenses)
}

// ForeignEntry is foreign-source income from one country.
type ForeignEntry struct {
	Country        string          `yaml:"country" json:"country"`
	Amount         decimal.Decimal `yaml:"amount" json:"amount"`
	ForeignTaxPaid decimal.Decimal `yaml:"foreign_tax_paid" json:"foreign_tax_paid"`
}

// OtherEntry is miscellaneous income reported on Schedule 1.
type OtherEntry struct {
	Description string          `yaml:"description" json:"description"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
}

// Income holds every income collection on the record. Aggregation reads these
// collections and never mutates them.
type Income struct {
	Wages        []W2Entry       `yaml:"wages,omitempty" json:"wages,omitempty"`
	Interest     []InterestEntry `yaml:"interest,omitempty" json:"interest,omitempty"`
	Dividends    []DividendEntry `yaml:"dividends,omitempty" json:"dividends,omitempty"`
	Business     []BusinessEntry `yaml:"business,omitempty" json:"business,omitempty"`
	CapitalSales []CapitalSale   `yaml:"capital_sales,omitempty" json:"capital_sales,omitempty"`
	Rental       []RentalEntry   `yaml:"rental,omitempty" json:"rental,omitempty"`
	Foreign      []ForeignEntry  `yaml:"foreign,omitempty" json:"foreign,omitempty"`
	Other        []OtherEntry    `yaml:"other,omitempty" json:"other,omitempty"`
}

// ItemizedDeductions holds the component amounts for Schedule A. A nil
// ItemizedDeductions on the record means the filer takes the standard
// deduction without comparison; a present one means the engine picks the
// larger of the two candidates.
type ItemizedDeductions struct {
	MedicalExpenses         decimal.Decimal `yaml:"medical_expenses" json:"medical_expenses"`
	StateLocalTaxes         decimal.Decimal `yaml:"state_local_taxes" json:"state_local_taxes"`
	MortgageInterest        decimal.Decimal `yaml:"mortgage_interest" json:"mortgage_interest"`
	CharitableContributions decimal.Decimal `yaml:"charitable_contributions" json:"charitable_contributions"`
	CasualtyLosses          decimal.Decimal `yaml:"casualty_losses" json:"casualty_losses"`
}

// CreditInputs carries eligibility inputs for credits whose amounts are
// computed, never stored.
type CreditInputs struct {
	QualifiedEducationExpenses decimal.Decimal `yaml:"qualified_education_expenses" json:"qualified_education_expenses"`
}

// EstimatedPayment is one quarterly estimated tax payment.
type EstimatedPayment struct {
	Date   time.Time       `yaml:"date" json:"date"`
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
}

// Payments holds everything credited against total tax. W-2 withholding is
// derived from the income collection, not stored here.
type Payments struct {
	Estimated                   []EstimatedPayment `yaml:"estimated,omitempty" json:"estimated,omitempty"`
	PriorYearOverpaymentApplied decimal.Decimal    `yaml:"prior_year_overpayment_applied" json:"prior_year_overpayment_applied"`
}

// Carryovers holds prior-year amounts carried into this return. Loss amounts
// are positive magnitudes.
type Carryovers struct {
	ShortTermCapitalLoss decimal.Decimal `yaml:"short_term_capital_loss" json:"short_term_capital_loss"`
	LongTermCapitalLoss  decimal.Decimal `yaml:"long_term_capital_loss" json:"long_term_capital_loss"`
}

// TaxRecord is the canonical in-memory model for one filing year. The record
// stores inputs only; calculation produces a Result and never writes derived
// amounts back onto the record.
type TaxRecord struct {
	ReturnID     uuid.UUID           `yaml:"return_id" json:"return_id"`
	Year         int                 `yaml:"year" json:"year"`
	FilingStatus FilingStatus        `yaml:"filing_status" json:"filing_status"`
	Taxpayer     PersonalInfo        `yaml:"taxpayer" json:"taxpayer"`
	Spouse       *PersonalInfo       `yaml:"spouse,omitempty" json:"spouse,omitempty"`
	Dependents   []Dependent         `yaml:"dependents,omitempty" json:"dependents,omitempty"`
	Income       Income              `yaml:"income" json:"income"`
	Itemized     *ItemizedDeductions `yaml:"itemized,omitempty" json:"itemized,omitempty"`
	Credits      CreditInputs        `yaml:"credits" json:"credits"`
	Payments     Payments            `yaml:"payments" json:"payments"`
	Carryovers   Carryovers          `yaml:"carryovers" json:"carryovers"`
}

// NewTaxRecord creates an empty record for the given year with a fresh
// return ID.
func NewTaxRecord(year int, status FilingStatus) *TaxRecord {
	return &TaxRecord{
		ReturnID:     uuid.New(),
		Year:         year,
		FilingStatus: status,
	}
}

// QualifyingChildren counts dependents eligible for the child tax credit.
// A qualifying child must carry a tax ID.
func (r *TaxRecord) QualifyingChildren() int {
	n := 0
	for _, d := range r.Dependents {
		if d.QualifyingChild && d.TaxID != "" {
			n++
		}
	}
	return n
}

// Withholding sums federal withholding across all W-2 entries.
func (r *TaxRecord) Withholding() decimal.Decimal {
	total := decimal.Zero
	for _, w := range r.Income.Wages {
		total = total.Add(w.FederalWithholding)
	}
	return total
}

// Validate checks the record against its structural invariants and returns a
// ValidationError naming the first offending field path.
func (r *TaxRecord) Validate() error {
	if !r.FilingStatus.Valid() {
		return &ValidationError{Path: "filing_status", Msg: fmt.Sprintf("unknown filing status %q", r.FilingStatus)}
	}
	if r.Year <= 0 {
		return &ValidationError{Path: "year", Msg: "tax year is required"}
	}
	if r.FilingStatus.Joint() && r.Spouse == nil && r.FilingStatus == MarriedJoint {
		return &ValidationError{Path: "spouse", Msg: "married filing jointly requires spouse details"}
	}

	seen := make(map[string]int, len(r.Dependents))
	for i, d := range r.Dependents {
		if d.TaxID != "" {
			if j, dup := seen[d.TaxID]; dup {
				return &ValidationError{
					Path: fmt.Sprintf("dependents[%d].tax_id", i),
					Msg:  fmt.Sprintf("duplicate tax ID, already used by dependents[%d]", j),
				}
			}
			seen[d.TaxID] = i
		}
		if d.MonthsResident < 0 || d.MonthsResident > 12 {
			return &ValidationError{
				Path: fmt.Sprintf("dependents[%d].months_resident", i),
				Msg:  "months resident must be between 0 and 12",
			}
		}
	}

	if err := r.validateIncome(); err != nil {
		return err
	}

	if r.Itemized != nil {
		it := r.Itemized
		components := []struct {
			name   string
			amount decimal.Decimal
		}{
			{"medical_expenses", it.MedicalExpenses},
			{"state_local_taxes", it.StateLocalTaxes},
			{"mortgage_interest", it.MortgageInterest},
			{"charitable_contributions", it.CharitableContributions},
			{"casualty_losses", it.CasualtyLosses},
		}
		for _, c := range components {
			if c.amount.IsNegative() {
				return &ValidationError{Path: "itemized." + c.name, Msg: "amount cannot be negative"}
			}
		}
	}

	if r.Credits.QualifiedEducationExpenses.IsNegative() {
		return &ValidationError{Path: "credits.qualified_education_expenses", Msg: "amount cannot be negative"}
	}
	for i, p := range r.Payments.Estimated {
		if p.Amount.IsNegative() {
			return &ValidationError{Path: fmt.Sprintf("payments.estimated[%d].amount", i), Msg: "amount cannot be negative"}
		}
	}
	if r.Payments.PriorYearOverpaymentApplied.IsNegative() {
		return &ValidationError{Path: "payments.prior_year_overpayment_applied", Msg: "amount cannot be negative"}
	}
	if r.Carryovers.ShortTermCapitalLoss.IsNegative() || r.Carryovers.LongTermCapitalLoss.IsNegative() {
		return &ValidationError{Path: "carryovers", Msg: "carryover loss amounts are positive magnitudes"}
	}

	return nil
}

// validateIncome checks that no income entry is negative in isolation.
// Capital sales may produce losses, but their proceeds and basis are amounts
// and must individually be non-negative.
func (r *TaxRecord) validateIncome() error {
	for i, w := range r.Income.Wages {
		if w.Wages.IsNegative() {
			return &ValidationError{Path: fmt.Sprintf("income.wages[%d].wages", i), Msg: "amount cannot be negative"}
		}
		if w.FederalWithholding.IsNegative() {
			return &ValidationError{Path: fmt.Sprintf("income.wages[%d].federal_withholding", i), Msg: "amount cannot be negative"}
		}
	}
	for i, e := range r.Income.Interest {
		if e.Amount.IsNegative() {
			return &ValidationError{Path: fmt.Sprintf("income.interest[%d].amount", i), Msg: "amount cannot be negative"}
		}
	}
	for i, d := range r.Income.Dividends {
		if d.Ordinary.IsNegative() || d.Qualified.IsNegative() {
			return &ValidationError{Path: fmt.Sprintf("income.dividends[%d]", i), Msg: "amount cannot be negative"}
		}
		if d.Qualified.GreaterThan(d.Ordinary) {
			return &ValidationError{
				Path: fmt.Sprintf("income.dividends[%d].qualified", i),
				Msg:  "qualified dividends cannot exceed ordinary dividends",
			}
		}
	}
	for i, b := range r.Income.Business {
		if b.GrossReceipts.IsNegative() || b.Expenses.IsNegative() {
			return &ValidationError{Path: fmt.Sprintf("income.business[%d]", i), Msg: "amount cannot be negative"}
		}
	}
	for i, c := range r.Income.CapitalSales {
		if c.Proceeds.IsNegative() || c.CostBasis.IsNegative() {
			return &ValidationError{Path: fmt.Sprintf("income.capital_sales[%d]", i), Msg: "amount cannot be negative"}
		}
	}
	for i, e := range r.Income.Rental {
		if e.RentsReceived.IsNegative() || e.Expenses.IsNegative() {
			return &ValidationError{Path: fmt.Sprintf("income.rental[%d]", i), Msg: "amount cannot be negative"}
		}
	}
	for i, f := range r.Income.Foreign {
		if f.Amount.IsNegative() || f.ForeignTaxPaid.IsNegative() {
			return &ValidationError{Path: fmt.Sprintf("income.foreign[%d]", i), Msg: "amount cannot be negative"}
		}
	}
	for i, o := range r.Income.Other {
		if o.Amount.IsNegative() {
			return &ValidationError{Path: fmt.Sprintf("income.other[%d].amount", i), Msg: "amount cannot be negative"}
		}
	}
	return nil
}
