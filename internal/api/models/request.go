package models

// ProfileRequest represents the request body for running a profile
// generation (spec.md §6 "Configuration flags consumed by the core").
type ProfileRequest struct {
	CatalogFile string  `json:"catalog_file" binding:"required"`
	NumProfiles int     `json:"num_profiles" binding:"required"`
	DayType     []int   `json:"day_type" binding:"required"`
	PeakEnlarge float64 `json:"peak_enlarge,omitempty"`
	Parallel    bool    `json:"parallel,omitempty"`
	Seed        int64   `json:"seed,omitempty"`
	Rounds      int     `json:"rounds,omitempty"`
	IncludeData bool    `json:"include_data,omitempty"`
}

// ValidateRequest represents a request to validate a catalog file.
type ValidateRequest struct {
	CatalogFile string `json:"catalog_file" binding:"required"`
}
