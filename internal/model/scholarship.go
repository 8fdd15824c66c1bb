// Package model defines the canonical scholarship and applicant types shared
// across the matching engine, stores, and API surface.
package model

import "time"

// ScholarshipType identifies the funding source of an award. Stacking rules
// key off this value.
type ScholarshipType string

const (
	TypeCentral   ScholarshipType = "central"
	TypeState     ScholarshipType = "state"
	TypePrivate   ScholarshipType = "private"
	TypeCorporate ScholarshipType = "corporate"
	TypeCollege   ScholarshipType = "college"
)

// KnownTypes lists every valid ScholarshipType in stacking-priority order.
var KnownTypes = []ScholarshipType{TypeCentral, TypeState, TypePrivate, TypeCorporate, TypeCollege}

// CompetitionLevel is a coarse applicant-pool size signal.
type CompetitionLevel string

const (
	CompetitionLow    CompetitionLevel = "low"
	CompetitionMedium CompetitionLevel = "medium"
	CompetitionHigh   CompetitionLevel = "high"
)

// AmountRange is a closed award interval in rupees, Min <= Max.
type AmountRange struct {
	Min int64 `json:"min" yaml:"min"`
	Max int64 `json:"max" yaml:"max"`
}

// Mean returns the midpoint of the range, used for value ranking.
func (a AmountRange) Mean() float64 {
	return float64(a.Min+a.Max) / 2
}

// Add widens the range by another award's range.
func (a AmountRange) Add(b AmountRange) AmountRange {
	return AmountRange{Min: a.Min + b.Min, Max: a.Max + b.Max}
}

// Eligibility holds a scholarship's stated constraints. Empty slices and zero
// numerics mean "no restriction on this dimension".
type Eligibility struct {
	Categories    []string `json:"categories,omitempty" yaml:"categories,omitempty"`
	IncomeLimit   int64    `json:"incomeLimit,omitempty" yaml:"income_limit,omitempty"`
	MinPercentage float64  `json:"minPercentage,omitempty" yaml:"min_percentage,omitempty"`
	States        []string `json:"states,omitempty" yaml:"states,omitempty"`
	Gender        string   `json:"gender,omitempty" yaml:"gender,omitempty"`
	Courses       []string `json:"courses,omitempty" yaml:"courses,omitempty"`
	Levels        []string `json:"levels,omitempty" yaml:"levels,omitempty"`
	MinYear       int      `json:"minYear,omitempty" yaml:"min_year,omitempty"`
	MaxYear       int      `json:"maxYear,omitempty" yaml:"max_year,omitempty"`
}

// ApplicationStats carries historical outcomes when the provider publishes them.
type ApplicationStats struct {
	TotalApplications int     `json:"totalApplications" yaml:"total_applications"`
	ApprovalRate      float64 `json:"approvalRate" yaml:"approval_rate"`
}

// Scholarship is a single award offer. The engine treats these as read-only.
type Scholarship struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Provider         string            `json:"provider"`
	Type             ScholarshipType   `json:"type"`
	Amount           AmountRange       `json:"amount"`
	Deadline         time.Time         `json:"deadline,omitempty"`
	Eligibility      Eligibility       `json:"eligibility"`
	CompetitionLevel CompetitionLevel  `json:"competitionLevel,omitempty"`
	Stackable        bool              `json:"stackable"`
	StackingRules    []string          `json:"stackingRules,omitempty"`
	Stats            *ApplicationStats `json:"applicationStats,omitempty"`
}
