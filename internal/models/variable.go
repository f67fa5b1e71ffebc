package models

import (
	"time"

	"github.com/asteroid-belt/themebuddy/internal/hash"
)

// DefaultCollectionName is the collection a generated design system lands in.
const DefaultCollectionName = "Theme Buddy"

// Collection is a named set of variables with one or more modes.
type Collection struct {
	ID        string     `gorm:"primaryKey;size:64" json:"id"`
	Name      string     `gorm:"size:255;uniqueIndex" json:"name"`
	FileKey   string     `gorm:"size:64;index" json:"file_key"`
	Modes     []Mode     `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE" json:"modes,omitempty"`
	Variables []Variable `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE" json:"variables,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Collection) TableName() string {
	return "collections"
}

// CollectionID derives the ID of the collection called name.
func CollectionID(name string) string {
	return hash.ID("collection", name)
}

// ModeNames returns the mode names in position order. Modes must be loaded
// sorted by position.
func (c *Collection) ModeNames() []string {
	names := make([]string, len(c.Modes))
	for i, m := range c.Modes {
		names[i] = m.Name
	}
	return names
}

// Mode is a column of values in a collection, e.g. light or dark.
type Mode struct {
	ID           string `gorm:"primaryKey;size:64" json:"id"`
	CollectionID string `gorm:"size:64;uniqueIndex:idx_mode_name" json:"collection_id"`
	Name         string `gorm:"size:100;uniqueIndex:idx_mode_name" json:"name"`
	Position     int    `gorm:"default:0" json:"position"`
}

// TableName specifies the table name for GORM.
func (Mode) TableName() string {
	return "modes"
}

// ModeID derives the ID of a mode within a collection.
func ModeID(collectionID, name string) string {
	return hash.ID("mode", collectionID, name)
}

// Variable is one design token stored in a collection.
type Variable struct {
	ID           string          `gorm:"primaryKey;size:64" json:"id"`
	CollectionID string          `gorm:"size:64;uniqueIndex:idx_variable_name" json:"collection_id"`
	Name         string          `gorm:"size:255;uniqueIndex:idx_variable_name" json:"name"`
	Kind         string          `gorm:"size:32;index" json:"kind"`
	Description  string          `gorm:"type:text" json:"description"`
	Values       []VariableValue `gorm:"foreignKey:VariableID;constraint:OnDelete:CASCADE" json:"values,omitempty"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Variable) TableName() string {
	return "variables"
}

// VariableID derives the ID of a variable within a collection.
func VariableID(collectionID, name string) string {
	return hash.ID("variable", collectionID, name)
}

// ValueFor returns the value stored for modeID.
func (v *Variable) ValueFor(modeID string) (string, bool) {
	for _, val := range v.Values {
		if val.ModeID == modeID {
			return val.Value, true
		}
	}
	return "", false
}

// VariableValue is the value of a variable in one mode.
type VariableValue struct {
	VariableID string    `gorm:"primaryKey;size:64" json:"variable_id"`
	ModeID     string    `gorm:"primaryKey;size:64;index" json:"mode_id"`
	Value      string    `gorm:"type:text" json:"value"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (VariableValue) TableName() string {
	return "variable_values"
}

// CollectionStats summarizes one collection.
type CollectionStats struct {
	Name      string
	Modes     []string
	Variables int64
	Values    int64
}
