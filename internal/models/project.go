package models

import "time"

// Project groups tasks toward a single outcome. Deleting a project detaches
// its tasks rather than deleting them.
type Project struct {
	ID        string    `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name      string `gorm:"not null" json:"name"`
	Notes     string `json:"notes"`
	Color     string `json:"color"`
	Icon      string `json:"icon"`
	Completed bool   `gorm:"default:false" json:"completed"`

	// Optional parent area (non-owning).
	AreaID *string `gorm:"index" json:"area_id"`
}

// Area is a broad sphere of responsibility holding projects and loose tasks.
type Area struct {
	ID        string    `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Name  string `gorm:"not null" json:"name"`
	Notes string `json:"notes"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}
