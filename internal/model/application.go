package model

import "time"

// ApplicationStatus tracks an application's lifecycle.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Application records one submission of a scholarship application by a user.
type Application struct {
	ID            string            `json:"id"`
	UserID        string            `json:"userId"`
	ScholarshipID string            `json:"scholarshipId"`
	Status        ApplicationStatus `json:"status"`
	AppliedAt     time.Time         `json:"appliedAt"`
}

// SavedScholarship marks a scholarship bookmarked by a user.
type SavedScholarship struct {
	UserID        string    `json:"userId"`
	ScholarshipID string    `json:"scholarshipId"`
	SavedAt       time.Time `json:"savedAt"`
}
