package domain

import "time"

// FacilityStatus represents the moderation status of a facility
type FacilityStatus string

const (
	FacilityPending  FacilityStatus = "pending"
	FacilityApproved FacilityStatus = "approved"
	FacilityRejected FacilityStatus = "rejected"
)

// Facility represents a venue owned by a manager account and containing courts
type Facility struct {
	ID      int64
	OwnerID int64
	Name    string
	Status  FacilityStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsApproved returns true if the facility passed admin moderation
// Брони принимаются только на одобренных площадках
func (f *Facility) IsApproved() bool {
	return f.Status == FacilityApproved
}
