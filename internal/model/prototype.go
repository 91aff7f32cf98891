package model

import "time"

// Prototype represents a submitted project owned by exactly one exhibitor.
// Title is unique per exhibitor.
type Prototype struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:100;not null;uniqueIndex:idx_prototype_title_exhibitor" json:"title"`
	Description string    `gorm:"size:255;not null" json:"description"`
	Category    string    `gorm:"size:50;not null" json:"category"`
	ExhibitorID int64     `gorm:"not null;index;uniqueIndex:idx_prototype_title_exhibitor" json:"exhibitorId"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`

	// Associations
	Exhibitor *Exhibitor `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
