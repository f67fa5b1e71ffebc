package db

import (
	"github.com/asteroid-belt/themebuddy/internal/models"
)

// LinkInput is a label and URL to store with ReplaceLinks.
type LinkInput struct {
	Label string
	URL   string
}

// ReplaceLinks swaps every link of bar for links, keeping their order.
func (db *DB) ReplaceLinks(bar models.Bar, links []LinkInput) error {
	return db.Transaction(func(tx *DB) error {
		if err := tx.Where("bar = ?", bar).Delete(&models.Link{}).Error; err != nil {
			return err
		}
		for i, l := range links {
			link := models.Link{
				ID:       models.LinkID(bar, i),
				Bar:      bar,
				Position: i,
				Label:    l.Label,
				URL:      l.URL,
			}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ListLinks returns the links of bar in order.
func (db *DB) ListLinks(bar models.Bar) ([]models.Link, error) {
	var links []models.Link
	err := db.Where("bar = ?", bar).Order("position").Find(&links).Error
	return links, err
}

// CountLinks returns the number of stored links across both bars.
func (db *DB) CountLinks() (int64, error) {
	var n int64
	err := db.Model(&models.Link{}).Count(&n).Error
	return n, err
}
