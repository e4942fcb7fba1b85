// Package models contains data structures for the application's domain models.
package models

import "time"

// Statuses an application record may hold.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Statuses lists every accepted application status.
var Statuses = []string{StatusPending, StatusApproved, StatusRejected}

// ValidStatus reports whether s is one of the accepted statuses.
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Application represents a tracked application record.
type Application struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"not null" json:"description"`
	Status      string    `gorm:"not null" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
