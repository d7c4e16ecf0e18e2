// Package entity defines the domain entities for the tasks feature.
package entity

import "time"

// Status is the workflow state of a task.
type Status string

// Valid task statuses.
const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in progress"
	StatusCompleted  Status = "completed"
)

// Valid reports whether s is one of the recognized statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Priority is the urgency level of a task.
type Priority string

// Valid task priorities.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the recognized priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task represents a work item owned by exactly one user.
// Ownership is fixed at creation and never transferred.
type Task struct {
	// ID is the unique identifier for the task.
	ID uint `gorm:"primaryKey"`

	// UserID references the owning user. Only the owner can see or mutate the task.
	UserID uint `gorm:"index;not null"`

	// Title is the required short summary of the task.
	Title string `gorm:"size:255;not null"`

	// Description is optional free text.
	Description string `gorm:"type:text"`

	// Deadline is the optional due date. Nil means no deadline.
	Deadline *time.Time

	// Status is the workflow state. Defaults to pending.
	Status Status `gorm:"size:32;not null;default:pending"`

	// Priority is the urgency level. Defaults to medium.
	Priority Priority `gorm:"size:32;not null;default:medium"`

	// CreatedAt is the system-assigned creation timestamp. Immutable.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the task was last updated.
	UpdatedAt time.Time
}
