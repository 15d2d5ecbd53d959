package model

import (
	"time"

	"github.com/google/uuid"
)

type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

type ReportStatus string

const (
	StatusPending    ReportStatus = "pending"
	StatusInProgress ReportStatus = "in_progress"
	StatusResolved   ReportStatus = "resolved"
)

// ValidUrgency reports whether u is one of the four enumerated levels.
func ValidUrgency(u Urgency) bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical:
		return true
	}
	return false
}

// ValidStatus reports whether s is one of the three enumerated states.
func ValidStatus(s ReportStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// StatusLabel returns the human-readable form used in notification bodies.
func StatusLabel(s ReportStatus) string {
	switch s {
	case StatusInProgress:
		return "In Progress"
	case StatusResolved:
		return "Resolved"
	default:
		return "Pending"
	}
}

type RescueReport struct {
	ID            uuid.UUID    `json:"id"`
	AnimalType    string       `json:"animal_type"`
	Location      string       `json:"location"`
	Description   string       `json:"description"`
	Phone         string       `json:"phone"`
	Email         string       `json:"email"`
	Urgency       Urgency      `json:"urgency"`
	Status        ReportStatus `json:"status"`
	Latitude      *float64     `json:"latitude,omitempty"`
	Longitude     *float64     `json:"longitude,omitempty"`
	ImageURL      *string      `json:"image_url,omitempty"`
	UserID        *uuid.UUID   `json:"user_id,omitempty"`
	AssignedNgoID *uuid.UUID   `json:"assigned_ngo_id,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type Organization struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Request/Response DTOs
type CreateReportRequest struct {
	AnimalType    string  `json:"animal_type"`
	Location      string  `json:"location"`
	Description   string  `json:"description"`
	Phone         string  `json:"phone"`
	Email         string  `json:"email"`
	Urgency       string  `json:"urgency"`
	Status        string  `json:"status"`
	Latitude      *string `json:"latitude"`
	Longitude     *string `json:"longitude"`
	ImageURL      *string `json:"image_url"`
	UserID        *string `json:"user_id"`
	AssignedNgoID *string `json:"assigned_ngo_id"`
}

type UpdateReportRequest struct {
	AnimalType    *string `json:"animal_type"`
	Location      *string `json:"location"`
	Description   *string `json:"description"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Urgency       *string `json:"urgency"`
	Status        *string `json:"status"`
	Latitude      *string `json:"latitude"`
	Longitude     *string `json:"longitude"`
	ImageURL      *string `json:"image_url"`
	AssignedNgoID *string `json:"assigned_ngo_id"`
}

// ReportPatch carries the validated subset of fields to apply on update.
// Nil means "leave unchanged".
type ReportPatch struct {
	AnimalType    *string
	Location      *string
	Description   *string
	Phone         *string
	Email         *string
	Urgency       *Urgency
	Status        *ReportStatus
	Latitude      *float64
	Longitude     *float64
	ImageURL      *string
	AssignedNgoID *uuid.UUID
}

// Empty reports whether the patch carries no field at all.
func (p *ReportPatch) Empty() bool {
	return p.AnimalType == nil && p.Location == nil && p.Description == nil &&
		p.Phone == nil && p.Email == nil && p.Urgency == nil && p.Status == nil &&
		p.Latitude == nil && p.Longitude == nil && p.ImageURL == nil &&
		p.AssignedNgoID == nil
}

// ReportFilter narrows FindAll results. Zero values mean "no constraint".
type ReportFilter struct {
	Status        ReportStatus
	Urgency       Urgency
	UserID        *uuid.UUID
	AssignedNgoID *uuid.UUID
	Search        string
	Limit         int
	Offset        int
}

// ReportDetail is the single-report read model: the record plus the
// responding organization resolved from assigned_ngo_id.
type ReportDetail struct {
	RescueReport
	AssignedNgo *Organization `json:"assigned_ngo,omitempty"`
}

type ReportListResponse struct {
	Reports []RescueReport `json:"reports"`
	Total   int            `json:"total"`
}

type DeleteReportResponse struct {
	Message       string       `json:"message"`
	DeletedReport RescueReport `json:"deletedReport"`
}
