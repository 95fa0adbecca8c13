package config

import (
	"os"
	"strconv"

	"movelab/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Data   DataConfig
	Export ExportConfig
}

// DataConfig holds data source settings
type DataConfig struct {
	File            string  // path to the trial dataset (csv or xlsx)
	SheetName       string  // worksheet to read for Excel sources
	MaxMissingRatio float64 // validation threshold for missing values per column
}

// ExportConfig holds result export settings
type ExportConfig struct {
	Workbook string // path of the workbook handed to the visualization consumer
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Data: DataConfig{
			File:            os.Getenv("MOVELAB_DATA_FILE"),
			SheetName:       getEnvOrDefault("MOVELAB_SHEET_NAME", "Sheet1"),
			MaxMissingRatio: 0.30,
		},
		Export: ExportConfig{
			Workbook: getEnvOrDefault("MOVELAB_EXPORT_WORKBOOK", "movelab_results.xlsx"),
		},
	}

	if ratioStr := os.Getenv("MOVELAB_MAX_MISSING_RATIO"); ratioStr != "" {
		ratio, err := strconv.ParseFloat(ratioStr, 64)
		if err != nil {
			return nil, errors.Wrap(errors.ConfigInvalid("MOVELAB_MAX_MISSING_RATIO must be a float"), "failed to load data configuration")
		}
		if ratio < 0 || ratio > 1 {
			return nil, errors.ConfigInvalid("MOVELAB_MAX_MISSING_RATIO must be within [0, 1]")
		}
		config.Data.MaxMissingRatio = ratio
	}

	return config, nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
