package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taxprep/tax-engine/internal/domain"
)

func TestLoadFromFile(t *testing.T) {
	parser := NewInputParser()

	path := filepath.Join(t.TempDir(), "record.yaml")
	content := `
year: 2025
filing_status: single
taxpayer:
  first_name: Alex
  last_name: Doe
  tax_id: 999-00-1111
income:
  wages:
    - employer: Acme
      wages: 50000
      federal_withholding: 4500
  interest:
    - payer: First Bank
      amount: 320.75
carryovers:
  short_term_capital_loss: 1200
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	record, err := parser.LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 2025, record.Year)
	assert.Equal(t, domain.Single, record.FilingStatus)
	assert.NotEqual(t, uuid.Nil, record.ReturnID, "missing return ID should be assigned")
	require.Len(t, record.Income.Wages, 1)
	assert.True(t, record.Income.Wages[0].Wages.Equal(decimal.NewFromInt(50000)))
	assert.True(t, record.Income.Interest[0].Amount.Equal(decimal.NewFromFloat(320.75)))
	assert.True(t, record.Carryovers.ShortTermCapitalLoss.Equal(decimal.NewFromInt(1200)))
}

func TestLoadFromFilePreservesReturnID(t *testing.T) {
	parser := NewInputParser()

	path := filepath.Join(t.TempDir(), "record.yaml")
	content := `
return_id: 0f4c1a4e-9a7b-4a2e-8c31-5d1d2c9e0b6a
year: 2025
filing_status: single
taxpayer:
  tax_id: 999-00-1111
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	record, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0f4c1a4e-9a7b-4a2e-8c31-5d1d2c9e0b6a", record.ReturnID.String())
}

func TestLoadFromFileErrors(t *testing.T) {
	parser := NewInputParser()
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := parser.LoadFromFile(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("year: [not a year"), 0644))

		_, err := parser.LoadFromFile(path)
		assert.ErrorContains(t, err, "failed to parse YAML")
	})

	t.Run("unsupported year", func(t *testing.T) {
		path := filepath.Join(dir, "oldyear.yaml")
		require.NoError(t, os.WriteFile(path, []byte("year: 1999\nfiling_status: single\n"), 0644))

		_, err := parser.LoadFromFile(path)
		assert.ErrorContains(t, err, "no tax rules registered")
	})

	t.Run("invalid record", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.yaml")
		content := "year: 2025\nfiling_status: single\nincome:\n  wages:\n    - employer: Acme\n      wages: -100\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		_, err := parser.LoadFromFile(path)
		assert.ErrorContains(t, err, "record validation failed")
	})
}

func TestExampleRecordRoundTrip(t *testing.T) {
	parser := NewInputParser()

	example := parser.CreateExampleRecord()
	require.NoError(t, parser.ValidateRecord(example))

	path := filepath.Join(t.TempDir(), "example.yaml")
	require.NoError(t, parser.WriteExampleFile(path))

	loaded, err := parser.LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, domain.MarriedJoint, loaded.FilingStatus)
	assert.Equal(t, 1, loaded.QualifyingChildren())
	require.Len(t, loaded.Income.Wages, 2)
	assert.True(t, loaded.Income.Wages[0].Wages.Equal(decimal.NewFromInt(88000)))
	require.Len(t, loaded.Income.CapitalSales, 1)
	assert.True(t, loaded.Income.CapitalSales[0].Proceeds.Equal(decimal.NewFromInt(15000)))
}
