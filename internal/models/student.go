package models

import (
	"time"

	"gorm.io/datatypes"
)

// Placement statuses recorded on student profiles.
const (
	PlacementStatusUnplaced = "unplaced"
	PlacementStatusPlaced   = "placed"
)

// Badge is an achievement shown on a student profile.
type Badge struct {
	ID   string     `json:"id"`
	Name string     `json:"name"`
	Type string     `json:"type,omitempty"`
	Date *time.Time `json:"date,omitempty"`
}

// Student is a placement candidate. Other records reference students by ExternalID,
// never by the storage key.
type Student struct {
	ID              uint                        `gorm:"primaryKey" json:"-"`
	ExternalID      string                      `gorm:"column:external_id;size:64;uniqueIndex;not null" json:"id"`
	Name            string                      `gorm:"size:255;not null" json:"name"`
	Email           string                      `gorm:"size:255" json:"email,omitempty"`
	Department      string                      `gorm:"size:120;index" json:"department"`
	Skills          datatypes.JSONSlice[string] `json:"skills"`
	Achievements    datatypes.JSONSlice[Badge]  `json:"achievements"`
	IsPlaced        bool                        `gorm:"default:false" json:"isPlaced"`
	PlacementStatus string                      `gorm:"size:32;default:unplaced" json:"placementStatus"`
	CreatedAt       time.Time                   `json:"-"`
	UpdatedAt       time.Time                   `json:"-"`
}

// Placed reports whether either placement flag marks the student as placed.
func (s Student) Placed() bool {
	return s.IsPlaced || s.PlacementStatus == PlacementStatusPlaced
}
