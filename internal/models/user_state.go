package models

import "time"

// UserState is the single row of per-installation state.
// The table name is "user_state" to avoid conflicts with reserved keywords.
type UserState struct {
	ID               string    `gorm:"primaryKey;size:64" json:"id"`
	TrackingID       string    `gorm:"size:64" json:"tracking_id"`
	ActiveCollection string    `gorm:"size:255" json:"active_collection"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (UserState) TableName() string {
	return "user_state"
}

// DefaultUserStateID is the primary key of the only UserState row.
const DefaultUserStateID = "default"

// Collection returns the active collection, falling back to the default one.
func (s *UserState) Collection() string {
	if s.ActiveCollection == "" {
		return DefaultCollectionName
	}
	return s.ActiveCollection
}
