package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/taxprep/tax-engine/internal/domain"
	"github.com/taxprep/tax-engine/internal/rules"
	"github.com/taxprep/tax-engine/pkg/money"
)

// TaxEngine composes the calculation stages into a fixed linear pipeline:
// aggregate income, select the deduction, compute tax, compute credits,
// reconcile payments, determine forms. No stage mutates the record, every
// invocation allocates a fresh Result, and any stage failure aborts the
// whole calculation so a partial Result is never returned.
type TaxEngine struct {
	Aggregator *IncomeAggregator
	Deductions *DeductionSelector
	Liability  *TaxLiabilityCalculator
	Credits    *CreditEngine
	Payments   *PaymentReconciler
	Forms      *FormDeterminer
	Logger     Logger
}

// NewTaxEngine creates an engine with all stages wired and a no-op logger.
func NewTaxEngine() *TaxEngine {
	return &TaxEngine{
		Aggregator: NewIncomeAggregator(),
		Deductions: NewDeductionSelector(),
		Liability:  NewTaxLiabilityCalculator(),
		Credits:    NewCreditEngine(),
		Payments:   NewPaymentReconciler(),
		Forms:      NewFormDeterminer(),
		Logger:     NopLogger{},
	}
}

// SetLogger sets the engine logger. A nil logger restores the no-op default.
func (e *TaxEngine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Calculate runs the full pipeline for the given record and tax year. The
// year selects the rule set; the record must agree with it.
func (e *TaxEngine) Calculate(record *domain.TaxRecord, year int) (*domain.Result, error) {
	rs, err := rules.ForYear(year)
	if err != nil {
		return nil, err
	}
	if record.Year != year {
		return nil, &domain.ValidationError{
			Path: "year",
			Msg:  fmt.Sprintf("record year %d does not match requested tax year %d", record.Year, year),
		}
	}
	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("record validation failed: %w", err)
	}

	totals, err := e.Aggregator.Aggregate(record, rs)
	if err != nil {
		return nil, fmt.Errorf("income aggregation failed: %w", err)
	}

	// Self-employment tax is needed before the deduction stage because half
	// of it is the above-the-line adjustment that produces AGI.
	seTax := e.Liability.SelfEmploymentTax(totals.BusinessNet, rs)
	agi := totals.Total.Sub(seTax.Div(decimal.NewFromInt(2)))

	deduction := e.Deductions.Select(record, agi, rs)

	taxableIncome := decimal.Max(decimal.Zero, agi.Sub(deduction.Amount))
	preferential := totals.QualifiedDividends.Add(totals.PreferentialLongTerm)
	incomeTax := e.Liability.TaxWithPreferentialRates(taxableIncome, preferential, record.FilingStatus, rs)

	credits := e.Credits.ComputeCredits(record, totals, agi, incomeTax, rs)

	// Nonrefundable credits cannot reduce the income tax below zero;
	// refundable credits can drive the total negative, which becomes refund.
	totalTax := decimal.Max(decimal.Zero, incomeTax.Sub(credits.NonrefundableApplied)).
		Add(seTax).
		Sub(credits.RefundablePortion)

	totalPayments := e.Payments.TotalPayments(record)
	refund, balanceDue := e.Payments.Reconcile(totalTax, totalPayments)

	result := &domain.Result{
		ReturnID:            record.ReturnID,
		Year:                year,
		TotalIncome:         money.RoundCents(totals.Total),
		AdjustedGrossIncome: money.RoundCents(agi),
		Deduction: domain.DeductionUsed{
			Method:         deduction.Method,
			Amount:         money.RoundCents(deduction.Amount),
			StandardAmount: money.RoundCents(deduction.StandardAmount),
			ItemizedAmount: money.RoundCents(deduction.ItemizedAmount),
		},
		TaxableIncome:     money.RoundCents(taxableIncome),
		IncomeTax:         money.RoundCents(incomeTax),
		SelfEmploymentTax: money.RoundCents(seTax),
		Credits: domain.CreditBreakdown{
			ChildTaxCredit:           money.RoundCents(credits.ChildTaxCredit),
			EducationCredit:          money.RoundCents(credits.EducationCredit),
			EarnedIncomeCredit:       money.RoundCents(credits.EarnedIncomeCredit),
			AdditionalChildTaxCredit: money.RoundCents(credits.AdditionalChildTaxCredit),
			NonrefundableApplied:     money.RoundCents(credits.NonrefundableApplied),
			RefundablePortion:        money.RoundCents(credits.RefundablePortion),
		},
		TotalTax:               money.RoundCents(totalTax),
		TotalPayments:          money.RoundCents(totalPayments),
		Refund:                 money.RoundCents(refund),
		BalanceDue:             money.RoundCents(balanceDue),
		WashSaleLossDisallowed: money.RoundCents(totals.WashSaleDisallowed),
		CarryoversOut: domain.Carryovers{
			ShortTermCapitalLoss: money.RoundCents(totals.CarryoversOut.ShortTermCapitalLoss),
			LongTermCapitalLoss:  money.RoundCents(totals.CarryoversOut.LongTermCapitalLoss),
		},
	}
	result.RequiredForms = e.Forms.Determine(record, result)

	e.Logger.Debugf("calculated return %s year %d: taxable=%s tax=%s refund=%s balance=%s",
		record.ReturnID, year, result.TaxableIncome, result.TotalTax, result.Refund, result.BalanceDue)

	return result, nil
}
