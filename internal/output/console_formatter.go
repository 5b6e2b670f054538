package output

import (
	"bytes"
	"fmt"

	"github.com/taxprep/tax-engine/internal/domain"
	"github.com/taxprep/tax-engine/pkg/money"
)

// ConsoleFormatter renders a human-readable return summary.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.Result) ([]byte, error) {
	buf := &bytes.Buffer{}

	fmt.Fprintf(buf, "FEDERAL TAX RETURN SUMMARY — %d\n", result.Year)
	fmt.Fprintf(buf, "Return ID: %s\n\n", result.ReturnID)

	fmt.Fprintf(buf, "Total income:            %s\n", money.Format(result.TotalIncome))
	fmt.Fprintf(buf, "Adjusted gross income:   %s\n", money.Format(result.AdjustedGrossIncome))
	fmt.Fprintf(buf, "Deduction (%s):    %s\n", result.Deduction.Method, money.Format(result.Deduction.Amount))
	fmt.Fprintf(buf, "  standard candidate:    %s\n", money.Format(result.Deduction.StandardAmount))
	fmt.Fprintf(buf, "  itemized candidate:    %s\n", money.Format(result.Deduction.ItemizedAmount))
	fmt.Fprintf(buf, "Taxable income:          %s\n\n", money.Format(result.TaxableIncome))

	fmt.Fprintf(buf, "Income tax:              %s\n", money.Format(result.IncomeTax))
	fmt.Fprintf(buf, "Self-employment tax:     %s\n", money.Format(result.SelfEmploymentTax))
	fmt.Fprintf(buf, "Credits applied:\n")
	fmt.Fprintf(buf, "  child tax credit:      %s\n", money.Format(result.Credits.ChildTaxCredit))
	fmt.Fprintf(buf, "  education credit:      %s\n", money.Format(result.Credits.EducationCredit))
	fmt.Fprintf(buf, "  earned income credit:  %s\n", money.Format(result.Credits.EarnedIncomeCredit))
	fmt.Fprintf(buf, "  additional CTC:        %s\n", money.Format(result.Credits.AdditionalChildTaxCredit))
	fmt.Fprintf(buf, "Total tax:               %s\n", money.Format(result.TotalTax))
	fmt.Fprintf(buf, "Total payments:          %s\n\n", money.Format(result.TotalPayments))

	if result.Refund.IsPositive() {
		fmt.Fprintf(buf, "REFUND:                  %s\n", money.Format(result.Refund))
	} else if result.BalanceDue.IsPositive() {
		fmt.Fprintf(buf, "BALANCE DUE:             %s\n", money.Format(result.BalanceDue))
	} else {
		fmt.Fprintf(buf, "Payments exactly cover tax; no refund, no balance due.\n")
	}

	if result.WashSaleLossDisallowed.IsPositive() {
		fmt.Fprintf(buf, "\nWash-sale loss disallowed: %s\n", money.Format(result.WashSaleLossDisallowed))
	}
	out := result.CarryoversOut
	if out.ShortTermCapitalLoss.IsPositive() || out.LongTermCapitalLoss.IsPositive() {
		fmt.Fprintf(buf, "Capital loss carried to next year: short-term %s, long-term %s\n",
			money.Format(out.ShortTermCapitalLoss), money.Format(out.LongTermCapitalLoss))
	}

	fmt.Fprintf(buf, "\nForms:\n")
	for _, f := range result.RequiredForms {
		fmt.Fprintf(buf, "  %-14s %-12s %s\n", f.FormID, f.Classification, f.Reason)
	}

	return buf.Bytes(), nil
}
