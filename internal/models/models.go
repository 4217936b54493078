package models

import (
	"time"

	"gorm.io/gorm"
)

// Job application statuses (kanban columns in the extension UI).
const (
	StatusSaved     = "Saved"
	StatusApplied   = "Applied"
	StatusInterview = "Interview"
	StatusOffer     = "Offer"
	StatusRejected  = "Rejected"
	StatusAccepted  = "Accepted"
	StatusWithdrawn = "Withdrawn"
)

var validStatuses = map[string]bool{
	StatusSaved:     true,
	StatusApplied:   true,
	StatusInterview: true,
	StatusOffer:     true,
	StatusRejected:  true,
	StatusAccepted:  true,
	StatusWithdrawn: true,
}

// ValidStatus reports whether s is one of the known job statuses.
func ValidStatus(s string) bool {
	return validStatuses[s]
}

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Email string `gorm:"uniqueIndex;not null" json:"email"`
	Plan  string `gorm:"default:'free'" json:"plan"`
}

type Job struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID uint `gorm:"index;not null" json:"user_id"`

	Position    string `gorm:"not null" json:"position"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Salary      string `json:"salary"`
	JobType     string `json:"job_type"`
	Status      string `gorm:"default:'Saved'" json:"status"`
	Link        string `json:"link"`
	Description string `gorm:"type:text" json:"description"`
	Notes       string `gorm:"type:text" json:"notes"`
}
