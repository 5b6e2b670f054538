package output

import (
	"strconv"

	"github.com/taxprep/tax-engine/internal/domain"
)

// PDFFieldMap flattens a Result into the form-field dictionary the external
// PDF filler consumes: field name to already-formatted value. Field names
// follow the Form 1040 line naming so the filler needs no translation layer.
func PDFFieldMap(result *domain.Result) map[string]string {
	fields := map[string]string{
		"f1040.filing_year":           strconv.Itoa(result.Year),
		"f1040.total_income":          result.TotalIncome.StringFixed(2),
		"f1040.adjusted_gross_income": result.AdjustedGrossIncome.StringFixed(2),
		"f1040.deduction":             result.Deduction.Amount.StringFixed(2),
		"f1040.taxable_income":        result.TaxableIncome.StringFixed(2),
		"f1040.tax":                   result.IncomeTax.StringFixed(2),
		"f1040.total_tax":             result.TotalTax.StringFixed(2),
		"f1040.total_payments":        result.TotalPayments.StringFixed(2),
		"f1040.refund":                result.Refund.StringFixed(2),
		"f1040.amount_owed":           result.BalanceDue.StringFixed(2),
	}
	if result.SelfEmploymentTax.IsPositive() {
		fields["sch_se.total"] = result.SelfEmploymentTax.StringFixed(2)
	}
	if result.Deduction.Method == domain.DeductionItemized {
		fields["sch_a.total"] = result.Deduction.ItemizedAmount.StringFixed(2)
	}
	c := result.Credits
	if c.ChildTaxCredit.IsPositive() || c.AdditionalChildTaxCredit.IsPositive() {
		fields["sch_8812.credit"] = c.ChildTaxCredit.StringFixed(2)
		fields["sch_8812.additional"] = c.AdditionalChildTaxCredit.StringFixed(2)
	}
	if c.EarnedIncomeCredit.IsPositive() {
		fields["f1040.eic"] = c.EarnedIncomeCredit.StringFixed(2)
	}
	if c.EducationCredit.IsPositive() {
		fields["f8863.credit"] = c.EducationCredit.StringFixed(2)
	}
	return fields
}
