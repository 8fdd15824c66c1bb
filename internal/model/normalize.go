package model

import (
	"strings"
	"time"

	"go.uber.org/zap"
)

// Wildcard sentinels accepted in eligibility fields. Upstream data uses
// "all", "All" and "All India" interchangeably.
func isWildcard(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "all", "all india", "all levels":
		return true
	}
	return false
}

// HasWildcard reports whether the list contains a wildcard sentinel.
func HasWildcard(list []string) bool {
	for _, v := range list {
		if isWildcard(v) {
			return true
		}
	}
	return false
}

// ContainsFold reports case-insensitive membership of v in list.
func ContainsFold(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(strings.TrimSpace(item), strings.TrimSpace(v)) {
			return true
		}
	}
	return false
}

// NormalizeType maps a raw type string onto the five-way enum. Legacy records
// use "government" for both central and state schemes; a record scoped to a
// single real state is treated as a state scheme, anything else as central.
// ok is false for types outside the known enum, which callers must count and
// skip rather than guess at.
func NormalizeType(raw string, states []string) (ScholarshipType, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "central":
		return TypeCentral, true
	case "state":
		return TypeState, true
	case "private":
		return TypePrivate, true
	case "corporate":
		return TypeCorporate, true
	case "college", "institutional":
		return TypeCollege, true
	case "government":
		if len(states) == 1 && !isWildcard(states[0]) {
			return TypeState, true
		}
		return TypeCentral, true
	}
	return "", false
}

// NormalizeCompetition maps free-text competition levels onto the enum,
// defaulting to medium for unknown values.
func NormalizeCompetition(raw string) CompetitionLevel {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "low":
		return CompetitionLow
	case "high":
		return CompetitionHigh
	}
	return CompetitionMedium
}

// ScholarshipDoc is the loosely-typed wire/store shape of a scholarship.
// Upstream documents omit fields freely and spell the type enum
// inconsistently; Canonical is the single place that cleans this up.
type ScholarshipDoc struct {
	ID               string            `json:"id" yaml:"id"`
	Name             string            `json:"name" yaml:"name"`
	Provider         string            `json:"provider" yaml:"provider"`
	Type             string            `json:"type" yaml:"type"`
	Amount           *AmountRange      `json:"amount,omitempty" yaml:"amount,omitempty"`
	Deadline         string            `json:"deadline,omitempty" yaml:"deadline,omitempty"`
	Eligibility      Eligibility       `json:"eligibility" yaml:"eligibility"`
	CompetitionLevel string            `json:"competitionLevel,omitempty" yaml:"competition_level,omitempty"`
	Stackable        *bool             `json:"stackable,omitempty" yaml:"stackable,omitempty"`
	StackingRules    []string          `json:"stackingRules,omitempty" yaml:"stacking_rules,omitempty"`
	Stats            *ApplicationStats `json:"applicationStats,omitempty" yaml:"application_stats,omitempty"`
}

// Canonical converts a raw document into the canonical Scholarship. Unknown
// types return ok=false; the caller decides whether to skip or count the
// record. Missing amounts become the zero range, missing stackable defaults
// true, malformed deadlines become the zero time.
func (d ScholarshipDoc) Canonical() (Scholarship, bool) {
	typ, ok := NormalizeType(d.Type, d.Eligibility.States)
	if !ok {
		zap.L().Warn("model: unknown scholarship type",
			zap.String("id", d.ID),
			zap.String("type", d.Type),
		)
		return Scholarship{}, false
	}

	s := Scholarship{
		ID:               d.ID,
		Name:             d.Name,
		Provider:         d.Provider,
		Type:             typ,
		Eligibility:      d.Eligibility,
		CompetitionLevel: NormalizeCompetition(d.CompetitionLevel),
		Stackable:        d.Stackable == nil || *d.Stackable,
		StackingRules:    d.StackingRules,
		Stats:            d.Stats,
	}
	if d.Amount != nil {
		s.Amount = *d.Amount
	}
	if s.Amount.Min > s.Amount.Max {
		s.Amount.Min, s.Amount.Max = s.Amount.Max, s.Amount.Min
	}
	if d.Deadline != "" {
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, d.Deadline); err == nil {
				s.Deadline = t
				break
			}
		}
	}
	return s, true
}

// Doc converts a canonical Scholarship back to its store document shape.
func (s Scholarship) Doc() ScholarshipDoc {
	stackable := s.Stackable
	d := ScholarshipDoc{
		ID:               s.ID,
		Name:             s.Name,
		Provider:         s.Provider,
		Type:             string(s.Type),
		Eligibility:      s.Eligibility,
		CompetitionLevel: string(s.CompetitionLevel),
		Stackable:        &stackable,
		StackingRules:    s.StackingRules,
		Stats:            s.Stats,
	}
	amount := s.Amount
	d.Amount = &amount
	if !s.Deadline.IsZero() {
		d.Deadline = s.Deadline.Format("2006-01-02")
	}
	return d
}

// ProfileDoc is the loosely-typed profile shape. Older records use
// annualIncome/academicPercentage, newer ones income/percentage; Canonical
// collapses both spellings so the ambiguity never reaches the engine.
type ProfileDoc struct {
	UserID             string  `json:"userId"`
	Category           string  `json:"category,omitempty"`
	Income             int64   `json:"income,omitempty"`
	AnnualIncome       int64   `json:"annualIncome,omitempty"`
	Percentage         float64 `json:"percentage,omitempty"`
	AcademicPercentage float64 `json:"academicPercentage,omitempty"`
	State              string  `json:"state,omitempty"`
	Gender             string  `json:"gender,omitempty"`
	Level              string  `json:"level,omitempty"`
	Course             string  `json:"course,omitempty"`
	Institution        string  `json:"institution,omitempty"`
}

// Canonical collapses the duplicate field spellings, preferring the canonical
// name when both are present.
func (d ProfileDoc) Canonical() Profile {
	p := Profile{
		UserID:      d.UserID,
		Category:    strings.TrimSpace(d.Category),
		Income:      d.Income,
		Percentage:  d.Percentage,
		State:       strings.TrimSpace(d.State),
		Gender:      strings.TrimSpace(d.Gender),
		Level:       strings.TrimSpace(d.Level),
		Course:      strings.TrimSpace(d.Course),
		Institution: strings.TrimSpace(d.Institution),
	}
	if p.Income == 0 {
		p.Income = d.AnnualIncome
	}
	if p.Percentage == 0 {
		p.Percentage = d.AcademicPercentage
	}
	return p
}
