package catalog

import (
	"encoding/json"
	"os"

	"loadsim/internal/model"
)

// LoadPowerSeries reads a power series from path: a single-number JSON
// value, a JSON array, or a JSON table whose first column is the series
// (spec.md §6 "Power series input"). It returns the values as read: a
// scalar comes back as a one-element slice and array length is not checked
// here; model.NewApplianceConfig broadcasts a single value to 366 days and
// rejects any length other than 1 or 366.
func LoadPowerSeries(path string) ([]float64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scalar float64
	if err := json.Unmarshal(raw, &scalar); err == nil {
		return []float64{scalar}, nil
	}

	var series []float64
	if err := json.Unmarshal(raw, &series); err == nil {
		return series, nil
	}

	var table [][]float64
	if err := json.Unmarshal(raw, &table); err == nil {
		out := make([]float64, len(table))
		for i, row := range table {
			if len(row) == 0 {
				return nil, &model.ConfigurationError{Message: "power series table row is empty"}
			}
			out[i] = row[0]
		}
		return out, nil
	}

	return nil, &model.ConfigurationError{Message: "power series must be a scalar, a numeric array, or a JSON table"}
}
