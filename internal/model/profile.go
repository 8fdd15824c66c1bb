package model

// Profile is the canonical applicant schema. All fields are optional; zero
// values mean "not declared" and eligibility checks treat them leniently.
type Profile struct {
	UserID      string  `json:"userId"`
	Category    string  `json:"category,omitempty"`
	Income      int64   `json:"income,omitempty"`
	Percentage  float64 `json:"percentage,omitempty"`
	State       string  `json:"state,omitempty"`
	Gender      string  `json:"gender,omitempty"`
	Level       string  `json:"level,omitempty"`
	Course      string  `json:"course,omitempty"`
	Institution string  `json:"institution,omitempty"`
}

// profileDimensions are the fields counted toward profile completeness.
const profileDimensions = 6

// CompletedFields counts the declared fields among the six dimensions used
// for completeness and success-probability scoring.
func (p *Profile) CompletedFields() int {
	if p == nil {
		return 0
	}
	n := 0
	if p.Category != "" {
		n++
	}
	if p.Income > 0 {
		n++
	}
	if p.Percentage > 0 {
		n++
	}
	if p.State != "" {
		n++
	}
	if p.Gender != "" {
		n++
	}
	if p.Level != "" {
		n++
	}
	return n
}

// Completeness returns the profile fill ratio as a 0-100 percentage.
func (p *Profile) Completeness() int {
	return int(float64(p.CompletedFields()) / profileDimensions * 100)
}
