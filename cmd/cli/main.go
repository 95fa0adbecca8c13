package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"movelab/adapters/export"
	"movelab/adapters/ingest"
	"movelab/app"
	"movelab/domain/trial"
	"movelab/internal"
	"movelab/internal/analysis"
	"movelab/internal/cleaning"
	"movelab/internal/config"
	"movelab/internal/validate"
	"movelab/ports"
)

func main() {
	// .env is optional; environment variables win either way
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "movelab",
		Short: "Movement-timing trial analysis pipeline",
	}

	rootCmd.AddCommand(
		newValidateCmd(),
		newCleanCmd(),
		newAnalyzeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a dataset against the trial schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := internal.NewDefaultLogger()
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			reader := ingest.NewDataReader(args[0], logger).WithSheet(cfg.Data.SheetName)
			frame, err := reader.Read()
			if err != nil {
				return err
			}

			validator := validate.New(validate.WithMaxMissingRatio(cfg.Data.MaxMissingRatio))
			report := validator.Validate(frame, trial.DefaultSchema())
			if !report.Valid() {
				return fmt.Errorf("dataset invalid: %s", report.FailureReason())
			}
			fmt.Println("dataset is valid")
			return nil
		},
	}
}

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean [file]",
		Short: "Validate and clean a dataset, printing the row-count summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := internal.NewDefaultLogger()
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			schema := trial.DefaultSchema()
			reader := ingest.NewDataReader(args[0], logger).WithSheet(cfg.Data.SheetName)
			frame, err := reader.Read()
			if err != nil {
				return err
			}

			validator := validate.New(validate.WithMaxMissingRatio(cfg.Data.MaxMissingRatio))
			report := validator.Validate(frame, schema)
			if !report.Valid() {
				return fmt.Errorf("dataset invalid: %s", report.FailureReason())
			}

			cleaned, summary := cleaning.New(logger).Clean(frame, schema)
			fmt.Println("Data Cleaning Summary:")
			fmt.Printf("Original rows: %d\n", summary.OriginalRows)
			fmt.Printf("Rows after cleaning: %d\n", summary.CleanedRows)
			fmt.Printf("Removed rows: %d\n", summary.RemovedRows)

			for _, profile := range analysis.ProfileColumns(cleaned, schema) {
				fmt.Printf("%s: mean=%.4f median=%.4f q1=%.4f q3=%.4f\n",
					schema.Label(profile.Column), profile.Mean, profile.Median, profile.Q1, profile.Q3)
			}
			return nil
		},
	}
}

func newAnalyzeCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Run the full validate, clean, analyze pipeline",
		Long: `Run the full pipeline and report per-trial-type Pearson correlations
between movement parameters and error measures, plus the significant
pairs (p < 0.05). Results are written to an Excel workbook for the
visualization tooling.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := internal.NewDefaultLogger()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = cfg.Export.Workbook
			}

			schema := trial.DefaultSchema()
			service := app.NewPipelineService(
				validate.New(validate.WithMaxMissingRatio(cfg.Data.MaxMissingRatio)),
				cleaning.New(logger),
				analysis.New(logger),
				logger,
			)

			result, err := service.Run(context.Background(), app.RunRequest{
				Reader: ingest.NewDataReader(args[0], logger).WithSheet(cfg.Data.SheetName),
				Schema: schema,
			})
			if err != nil {
				return err
			}

			switch result.Outcome {
			case app.OutcomeEmptyInput:
				return fmt.Errorf("no data found in %s", args[0])
			case app.OutcomeSchemaInvalid:
				return fmt.Errorf("dataset invalid: %s", result.Report.FailureReason())
			case app.OutcomeEmptyAfterCleaning:
				return fmt.Errorf("no data left after cleaning %s", args[0])
			}

			for _, r := range result.Results.Results() {
				if r.Undefined {
					fmt.Printf("%s x %s [%s]: undefined (n=%d)\n",
						schema.Label(r.MovementVar), schema.Label(r.ErrorVar), r.TrialType, r.SampleSize)
					continue
				}
				fmt.Printf("%s x %s [%s]: r=%.4f p=%.4g n=%d\n",
					schema.Label(r.MovementVar), schema.Label(r.ErrorVar), r.TrialType,
					r.Correlation, r.PValue, r.SampleSize)
			}
			fmt.Printf("significant pairs: %d of %d\n", len(result.Significant), result.Results.Len())

			var writer ports.ResultWriter = export.NewWorkbookWriter(outPath, schema, logger)
			if err := writer.Write(result.Cleaned, result.Results, result.Significant); err != nil {
				return err
			}

			manifest, _ := json.MarshalIndent(result.Manifest, "", "  ")
			logger.Debug("run manifest: %s", manifest)
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "Path of the results workbook (default from MOVELAB_EXPORT_WORKBOOK)")
	return cmd
}
