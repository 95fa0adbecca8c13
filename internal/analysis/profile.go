package analysis

import (
	"github.com/montanaflynn/stats"

	"movelab/domain/trial"
)

// ProfileColumns summarizes every numeric column of a frame. Profiles
// feed the run manifest and the CLI output; they carry no analytical
// weight beyond description.
func ProfileColumns(f *trial.Frame, s *trial.Schema) []trial.ColumnProfile {
	var profiles []trial.ColumnProfile
	for _, col := range s.NumericCols() {
		if !f.HasColumn(col) {
			continue
		}
		profiles = append(profiles, profileColumn(f, col))
	}
	return profiles
}

func profileColumn(f *trial.Frame, col string) trial.ColumnProfile {
	values := f.Floats(col)
	profile := trial.ColumnProfile{
		Column:       col,
		Count:        len(values),
		MissingRatio: f.MissingRatio(col),
	}
	if len(values) == 0 {
		return profile
	}

	// montanaflynn/stats only errors on empty input, which is handled above
	profile.Mean, _ = stats.Mean(values)
	profile.StdDev, _ = stats.StandardDeviation(values)
	profile.Min, _ = stats.Min(values)
	profile.Max, _ = stats.Max(values)
	profile.Median, _ = stats.Median(values)
	profile.Q1, _ = stats.Percentile(values, 25)
	profile.Q3, _ = stats.Percentile(values, 75)
	return profile
}
