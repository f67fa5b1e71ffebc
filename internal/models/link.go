package models

import (
	"fmt"
	"strconv"

	"github.com/asteroid-belt/themebuddy/internal/hash"
)

// Bar identifies which link bar a link belongs to.
type Bar string

const (
	BarNavbar    Bar = "navbar"
	BarStatusbar Bar = "statusbar"
)

// ParseBar accepts "navbar" or "statusbar".
func ParseBar(s string) (Bar, error) {
	switch Bar(s) {
	case BarNavbar, BarStatusbar:
		return Bar(s), nil
	default:
		return "", fmt.Errorf("unknown link bar %q (want navbar or statusbar)", s)
	}
}

// Link is an entry in the navbar or statusbar of a documentation file.
type Link struct {
	ID       string `gorm:"primaryKey;size:64" json:"id"`
	Bar      Bar    `gorm:"size:16;index" json:"bar"`
	Position int    `gorm:"default:0" json:"position"`
	Label    string `gorm:"size:255" json:"label"`
	URL      string `gorm:"size:1000" json:"url"`
}

// TableName specifies the table name for GORM.
func (Link) TableName() string {
	return "links"
}

// LinkID derives the ID of the link at position in bar.
func LinkID(bar Bar, position int) string {
	return hash.ID("link", string(bar), strconv.Itoa(position))
}
