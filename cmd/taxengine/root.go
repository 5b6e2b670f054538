package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/taxprep/tax-engine/internal/calculation"
	"github.com/taxprep/tax-engine/internal/config"
	"github.com/taxprep/tax-engine/internal/logging"
	"github.com/taxprep/tax-engine/internal/output"
	"github.com/taxprep/tax-engine/internal/rules"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "taxengine",
		Short: "Federal tax computation and form-determination engine",
		Long: "taxengine computes a federal tax return summary from a YAML tax record:\n" +
			"taxable income, tax liability, credits, refund or balance due, and the\n" +
			"set of supplementary forms the return requires.",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newCalculateCmd(&verbose))
	root.AddCommand(newValidateCmd())
	root.AddCommand(newExampleCmd())
	root.AddCommand(newYearsCmd())
	return root
}

func newCalculateCmd(verbose *bool) *cobra.Command {
	var (
		inputFile string
		year      int
		format    string
		outFile   string
	)

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate a return from a tax record file",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(*verbose)
			if err != nil {
				return fmt.Errorf("failed to build logger: %w", err)
			}
			defer logger.Sync()

			record, err := config.NewInputParser().LoadFromFile(inputFile)
			if err != nil {
				return err
			}
			if year == 0 {
				year = record.Year
			}

			engine := calculation.NewTaxEngine()
			engine.SetLogger(logger)
			result, err := engine.Calculate(record, year)
			if err != nil {
				return err
			}

			formatter, err := output.ByName(format)
			if err != nil {
				return err
			}
			data, err := formatter.Format(result)
			if err != nil {
				return fmt.Errorf("formatting failed: %w", err)
			}

			if outFile == "" {
				cmd.OutOrStdout().Write(data)
				return nil
			}
			if err := os.WriteFile(outFile, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outFile, err)
			}
			logger.Infof("wrote %s output to %s", formatter.Name(), outFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "tax record YAML file (required)")
	cmd.Flags().IntVarP(&year, "year", "y", 0, "tax year (defaults to the record's year)")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format: console, json, or csv")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "write output to file instead of stdout")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newValidateCmd() *cobra.Command {
	var inputFile string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a tax record file without calculating",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.NewInputParser().LoadFromFile(inputFile); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Record is valid.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "tax record YAML file (required)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newExampleCmd() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "example",
		Short: "Write an example tax record file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.NewInputParser().WriteExampleFile(outFile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote example record to %s\n", outFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "out", "o", "tax_record_example.yaml", "destination file")
	return cmd
}

func newYearsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "years",
		Short: "List supported tax years",
		RunE: func(cmd *cobra.Command, args []string) error {
			years := rules.SupportedYears()
			parts := make([]string, len(years))
			for i, y := range years {
				parts[i] = fmt.Sprintf("%d", y)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(parts, ", "))
			return nil
		},
	}
}
