package models

import (
	"time"
)

// ReminderType selects how a task's reminder time is derived from its due date.
type ReminderType string

const (
	ReminderFifteenMinutes ReminderType = "15m"
	ReminderThirtyMinutes  ReminderType = "30m"
	ReminderOneHour        ReminderType = "1h"
	ReminderOneDay         ReminderType = "1d"
	ReminderExact          ReminderType = "exact"
)

// OffsetMinutes returns the number of minutes a relative reminder fires
// before the due date. Exact (and unknown) types have no fixed offset.
func (t ReminderType) OffsetMinutes() int {
	switch t {
	case ReminderFifteenMinutes:
		return 15
	case ReminderThirtyMinutes:
		return 30
	case ReminderOneHour:
		return 60
	case ReminderOneDay:
		return 1440
	default:
		return 0
	}
}

// Valid reports whether t is one of the known reminder types.
func (t ReminderType) Valid() bool {
	switch t {
	case ReminderFifteenMinutes, ReminderThirtyMinutes, ReminderOneHour, ReminderOneDay, ReminderExact:
		return true
	}
	return false
}

// Task represents a todo item
type Task struct {
	ID        string    `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title       string     `gorm:"not null" json:"title"`
	Notes       string     `json:"notes"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	Deleted     bool       `gorm:"default:false;index" json:"deleted"`
	DueDate     *time.Time `json:"due_date"`
	Priority    int        `gorm:"default:0" json:"priority"` // 0=no priority, 1=low, 2=medium, 3=high
	SortOrder   int64      `gorm:"default:0" json:"sort_order"`

	ReminderEnabled       bool         `gorm:"default:false" json:"reminder_enabled"`
	ReminderType          ReminderType `gorm:"default:exact" json:"reminder_type"`
	ReminderTime          *time.Time   `json:"reminder_time"`
	ReminderOffsetMinutes int          `gorm:"default:0" json:"reminder_offset_minutes"`

	// Weak back-references: a task belongs to at most one project and one
	// area, neither of which owns it.
	ProjectID *string `gorm:"index" json:"project_id"`
	AreaID    *string `gorm:"index" json:"area_id"`

	// Relationships
	Tags []Tag `gorm:"many2many:task_tags;" json:"tags"`
}
