package catalog

import (
	"encoding/csv"
	"os"
	"strconv"

	"loadsim/internal/engine"
)

// WriteProfilesCSV flattens a Result's (num_profiles, 1440) array to one row
// per day and writes it as CSV (spec.md §6: "The serialization layer
// (external) may flatten to a single time series and emit CSV; that is not
// part of the core contract").
func WriteProfilesCSV(path string, result *engine.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := make([]string, len(result.Profiles[0])+1)
	header[0] = "day"
	for m := range result.Profiles[0] {
		header[m+1] = "minute_" + strconv.Itoa(m)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for day, profile := range result.Profiles {
		row := make([]string, len(profile)+1)
		row[0] = strconv.Itoa(day)
		for m, v := range profile {
			row[m+1] = strconv.FormatFloat(v, 'f', 6, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}
