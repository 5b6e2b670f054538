package config

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/taxprep/tax-engine/internal/domain"
	"github.com/taxprep/tax-engine/internal/rules"
	"gopkg.in/yaml.v3"
)

// InputParser handles loading and validating tax record files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a tax record from a YAML file and validates it.
func (ip *InputParser) LoadFromFile(filename string) (*domain.TaxRecord, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var record domain.TaxRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if record.ReturnID == uuid.Nil {
		record.ReturnID = uuid.New()
	}

	if err := ip.ValidateRecord(&record); err != nil {
		return nil, fmt.Errorf("record validation failed: %w", err)
	}

	return &record, nil
}

// ValidateRecord checks the record's invariants and that its tax year has a
// registered rule set.
func (ip *InputParser) ValidateRecord(record *domain.TaxRecord) error {
	if _, err := rules.ForYear(record.Year); err != nil {
		return err
	}
	return record.Validate()
}

// WriteExampleFile writes an example record to the given path.
func (ip *InputParser) WriteExampleFile(filename string) error {
	record := ip.CreateExampleRecord()
	data, err := yaml.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal example record: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

// CreateExampleRecord creates a populated example record: a married couple
// with one qualifying child, two W-2s, some investment income, a side
// business and a capital sale.
func (ip *InputParser) CreateExampleRecord() *domain.TaxRecord {
	birthA, _ := time.Parse("2006-01-02", "1982-04-11")
	birthB, _ := time.Parse("2006-01-02", "1984-09-30")
	acquired, _ := time.Parse("2006-01-02", "2023-02-01")
	sold, _ := time.Parse("2006-01-02", "2025-06-15")
	q2, _ := time.Parse("2006-01-02", "2025-06-16")

	record := domain.NewTaxRecord(2025, domain.MarriedJoint)
	record.Taxpayer = domain.PersonalInfo{
		FirstName: "Avery",
		LastName:  "Collins",
		TaxID:     "400-00-1111",
		BirthDate: birthA,
	}
	record.Spouse = &domain.PersonalInfo{
		FirstName: "Jordan",
		LastName:  "Collins",
		TaxID:     "400-00-2222",
		BirthDate: birthB,
	}
	record.Dependents = []domain.Dependent{
		{
			Name:            "Riley Collins",
			TaxID:           "400-00-3333",
			Relationship:    "daughter",
			QualifyingChild: true,
			MonthsResident:  12,
		},
	}
	record.Income = domain.Income{
		Wages: []domain.W2Entry{
			{Employer: "Keystone Analytics", Wages: decimal.NewFromInt(88000), FederalWithholding: decimal.NewFromInt(9200)},
			{Employer: "Brandywine Health", Wages: decimal.NewFromInt(64000), FederalWithholding: decimal.NewFromInt(6100)},
		},
		Interest: []domain.InterestEntry{
			{Payer: "First Keystone Bank", Amount: decimal.NewFromInt(420)},
		},
		Dividends: []domain.DividendEntry{
			{Payer: "Vanguard", Ordinary: decimal.NewFromInt(1300), Qualified: decimal.NewFromInt(1100)},
		},
		Business: []domain.BusinessEntry{
			{Description: "Consulting", GrossReceipts: decimal.NewFromInt(12000), Expenses: decimal.NewFromInt(3500)},
		},
		CapitalSales: []domain.CapitalSale{
			{Asset: "VTI", Acquired: acquired, Sold: sold, Proceeds: decimal.NewFromInt(15000), CostBasis: decimal.NewFromInt(11000)},
		},
	}
	record.Credits = domain.CreditInputs{
		QualifiedEducationExpenses: decimal.Zero,
	}
	record.Payments = domain.Payments{
		Estimated: []domain.EstimatedPayment{
			{Date: q2, Amount: decimal.NewFromInt(1500)},
		},
	}
	return record
}
