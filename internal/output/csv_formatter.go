package output

import (
	"bytes"
	"encoding/csv"

	"github.com/taxprep/tax-engine/internal/domain"
)

// CSVFormatter renders the result as a two-column line-item CSV, one row per
// summary figure, suitable for spreadsheet import.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(result *domain.Result) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	rows := [][]string{
		{"Line", "Amount"},
		{"TotalIncome", result.TotalIncome.StringFixed(2)},
		{"AdjustedGrossIncome", result.AdjustedGrossIncome.StringFixed(2)},
		{"DeductionMethod", string(result.Deduction.Method)},
		{"DeductionAmount", result.Deduction.Amount.StringFixed(2)},
		{"TaxableIncome", result.TaxableIncome.StringFixed(2)},
		{"IncomeTax", result.IncomeTax.StringFixed(2)},
		{"SelfEmploymentTax", result.SelfEmploymentTax.StringFixed(2)},
		{"ChildTaxCredit", result.Credits.ChildTaxCredit.StringFixed(2)},
		{"EducationCredit", result.Credits.EducationCredit.StringFixed(2)},
		{"EarnedIncomeCredit", result.Credits.EarnedIncomeCredit.StringFixed(2)},
		{"AdditionalChildTaxCredit", result.Credits.AdditionalChildTaxCredit.StringFixed(2)},
		{"TotalTax", result.TotalTax.StringFixed(2)},
		{"TotalPayments", result.TotalPayments.StringFixed(2)},
		{"Refund", result.Refund.StringFixed(2)},
		{"BalanceDue", result.BalanceDue.StringFixed(2)},
	}
	for _, f := range result.RequiredForms {
		rows = append(rows, []string{"Form:" + f.FormID, string(f.Classification)})
	}

	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
