package models

import "time"

// Tag represents a task tag
type Tag struct {
	ID        string    `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Name  string `gorm:"unique;not null" json:"name"`
	Color string `json:"color"`

	// Relationships
	Tasks []Task `gorm:"many2many:task_tags;" json:"-"`
}

// TaskTag is the join table for the many-to-many relationship
type TaskTag struct {
	TaskID string `gorm:"primaryKey"`
	TagID  string `gorm:"primaryKey"`
}
