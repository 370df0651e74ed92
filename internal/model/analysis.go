package model

// Summary holds the headline store metrics shown on the dashboard.
type Summary struct {
	Rows      int     `json:"rows"`
	AvgMag    float64 `json:"avg_mag"`
	MaxMag    float64 `json:"max_mag"`
	Strong    int     `json:"strong"`
	Threshold float64 `json:"threshold"`
}

// Analysis is the output of the analysis step: summary statistics plus the
// subset of rows at or above the strong threshold, with a readable trace.
type Analysis struct {
	Thoughts []string `json:"thoughts"`
	Summary  Summary  `json:"summary"`
	Strong   []Record `json:"strong,omitempty"`
}

// Strategy is the output of the strategy step: a recommended action derived
// from the analysis, with a readable trace.
type Strategy struct {
	Thoughts []string `json:"thoughts"`
	Action   string   `json:"action"`
}
