package db

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asteroid-belt/themebuddy/internal/models"
)

// GetUserState returns the state row, or a default one if it is missing.
func (db *DB) GetUserState() (*models.UserState, error) {
	var state models.UserState
	err := db.Where("id = ?", models.DefaultUserStateID).First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.UserState{ID: models.DefaultUserStateID}, nil
		}
		return nil, err
	}
	return &state, nil
}

// SetActiveCollection records the collection the CLI works on by default.
func (db *DB) SetActiveCollection(name string) error {
	state := models.UserState{ID: models.DefaultUserStateID, ActiveCollection: name}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"active_collection", "updated_at"}),
	}).Create(&state).Error
}

// GetOrCreateTrackingID returns the persistent tracking ID, creating one if
// needed. On any error it falls back to a per-session ID.
func (db *DB) GetOrCreateTrackingID() string {
	state, err := db.GetUserState()
	if err != nil {
		return generateSessionID()
	}

	if state.TrackingID != "" {
		return state.TrackingID
	}

	trackingID := generateSessionID()
	state.TrackingID = trackingID
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"tracking_id", "updated_at"}),
	}).Create(state).Error
	if err != nil {
		// still usable for this session
		return trackingID
	}

	return trackingID
}

func generateSessionID() string {
	return uuid.New().String()
}
