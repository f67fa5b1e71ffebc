package db

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asteroid-belt/themebuddy/internal/models"
)

// ErrCollectionExists is returned when duplicating onto an existing name.
var ErrCollectionExists = errors.New("collection already exists")

// VariableInput is a variable to write with ApplyVariables.
type VariableInput struct {
	Name        string
	Kind        string
	Description string
	Values      map[string]string // mode name -> value
}

func orderedModes(tx *gorm.DB) *gorm.DB {
	return tx.Order("position")
}

// GetCollection loads a collection and its modes by name.
func (db *DB) GetCollection(name string) (*models.Collection, error) {
	var c models.Collection
	err := db.Preload("Modes", orderedModes).Where("name = ?", name).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
		}
		return nil, err
	}
	return &c, nil
}

// ListCollections returns every collection with its modes, sorted by name.
func (db *DB) ListCollections() ([]models.Collection, error) {
	var cs []models.Collection
	err := db.Preload("Modes", orderedModes).Order("name").Find(&cs).Error
	return cs, err
}

// EnsureCollection creates the collection if needed and appends any missing
// modes after the existing ones.
func (db *DB) EnsureCollection(name string, modes ...string) (*models.Collection, error) {
	c := models.Collection{ID: models.CollectionID(name), Name: name, FileKey: uuid.New().String()}
	if err := db.Where("id = ?", c.ID).FirstOrCreate(&c).Error; err != nil {
		return nil, fmt.Errorf("create collection %s: %w", name, err)
	}

	var count int64
	if err := db.Model(&models.Mode{}).Where("collection_id = ?", c.ID).Count(&count).Error; err != nil {
		return nil, err
	}

	for _, m := range modes {
		mode := models.Mode{ID: models.ModeID(c.ID, m), CollectionID: c.ID, Name: m, Position: int(count)}
		res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&mode)
		if res.Error != nil {
			return nil, fmt.Errorf("create mode %s: %w", m, res.Error)
		}
		count += res.RowsAffected
	}

	return db.GetCollection(name)
}

func findMode(c *models.Collection, name string) (*models.Mode, error) {
	for i := range c.Modes {
		if c.Modes[i].Name == name {
			return &c.Modes[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s has no mode %q", ErrModeNotFound, c.Name, name)
}

// GetVariable loads a variable and its values.
func (db *DB) GetVariable(collection, name string) (*models.Variable, error) {
	c, err := db.GetCollection(collection)
	if err != nil {
		return nil, err
	}
	var v models.Variable
	err = db.Preload("Values").Where("id = ?", models.VariableID(c.ID, name)).First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrVariableNotFound, name)
		}
		return nil, err
	}
	return &v, nil
}

// ListVariables returns every variable of a collection with values, sorted by name.
func (db *DB) ListVariables(collection string) ([]models.Variable, error) {
	c, err := db.GetCollection(collection)
	if err != nil {
		return nil, err
	}
	var vars []models.Variable
	err = db.Preload("Values").Where("collection_id = ?", c.ID).Order("name").Find(&vars).Error
	return vars, err
}

// SetValue writes one value. The variable is created with kind if it does
// not exist; an existing variable keeps its kind.
func (db *DB) SetValue(collection, variable, kind, mode, value string) error {
	c, err := db.GetCollection(collection)
	if err != nil {
		return err
	}
	m, err := findMode(c, mode)
	if err != nil {
		return err
	}

	v := models.Variable{ID: models.VariableID(c.ID, variable), CollectionID: c.ID, Name: variable, Kind: kind}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&v).Error; err != nil {
		return fmt.Errorf("create variable %s: %w", variable, err)
	}
	return db.upsertValue(v.ID, m.ID, value)
}

func (db *DB) upsertValue(variableID, modeID, value string) error {
	val := models.VariableValue{VariableID: variableID, ModeID: modeID, Value: value}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "variable_id"}, {Name: "mode_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&val).Error
}

// ApplyVariables upserts vars into collection, creating it and its modes as
// needed, and returns the number of variables written.
func (db *DB) ApplyVariables(collection string, modes []string, vars []VariableInput) (int, error) {
	written := 0
	err := db.Transaction(func(tx *DB) error {
		c, err := tx.EnsureCollection(collection, modes...)
		if err != nil {
			return err
		}

		for _, in := range vars {
			v := models.Variable{
				ID:           models.VariableID(c.ID, in.Name),
				CollectionID: c.ID,
				Name:         in.Name,
				Kind:         in.Kind,
				Description:  in.Description,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"kind", "description", "updated_at"}),
			}).Create(&v).Error
			if err != nil {
				return fmt.Errorf("write variable %s: %w", in.Name, err)
			}

			for modeName, value := range in.Values {
				m, err := findMode(c, modeName)
				if err != nil {
					return err
				}
				if err := tx.upsertValue(v.ID, m.ID, value); err != nil {
					return fmt.Errorf("write %s (%s): %w", in.Name, modeName, err)
				}
			}
			written++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}

// CopyModeValues copies every value of source into target within collection
// and returns how many were copied.
func (db *DB) CopyModeValues(collection, source, target string) (int, error) {
	copied := 0
	err := db.Transaction(func(tx *DB) error {
		c, err := tx.GetCollection(collection)
		if err != nil {
			return err
		}
		src, err := findMode(c, source)
		if err != nil {
			return err
		}
		dst, err := findMode(c, target)
		if err != nil {
			return err
		}

		var values []models.VariableValue
		if err := tx.Where("mode_id = ?", src.ID).Find(&values).Error; err != nil {
			return err
		}
		for _, v := range values {
			if err := tx.upsertValue(v.VariableID, dst.ID, v.Value); err != nil {
				return err
			}
			copied++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return copied, nil
}

// DuplicateCollection copies a collection with its modes, variables and
// values under newName and a fresh file key. An empty newName means
// "<name> (copy)".
func (db *DB) DuplicateCollection(name, newName string) (*models.Collection, error) {
	if newName == "" {
		newName = name + " (copy)"
	}

	err := db.Transaction(func(tx *DB) error {
		src, err := tx.GetCollection(name)
		if err != nil {
			return err
		}
		if _, err := tx.GetCollection(newName); err == nil {
			return fmt.Errorf("%w: %s", ErrCollectionExists, newName)
		} else if !errors.Is(err, ErrCollectionNotFound) {
			return err
		}

		dst, err := tx.EnsureCollection(newName, src.ModeNames()...)
		if err != nil {
			return err
		}
		modeMap := make(map[string]string, len(src.Modes))
		for _, m := range src.Modes {
			modeMap[m.ID] = models.ModeID(dst.ID, m.Name)
		}

		vars, err := tx.ListVariables(name)
		if err != nil {
			return err
		}
		for _, v := range vars {
			cp := models.Variable{
				ID:           models.VariableID(dst.ID, v.Name),
				CollectionID: dst.ID,
				Name:         v.Name,
				Kind:         v.Kind,
				Description:  v.Description,
			}
			if err := tx.Create(&cp).Error; err != nil {
				return fmt.Errorf("copy variable %s: %w", v.Name, err)
			}
			for _, val := range v.Values {
				if err := tx.upsertValue(cp.ID, modeMap[val.ModeID], val.Value); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return db.GetCollection(newName)
}

// Stats summarizes the named collection, or every collection when name is empty.
func (db *DB) Stats(name string) ([]models.CollectionStats, error) {
	var cs []models.Collection
	if name != "" {
		c, err := db.GetCollection(name)
		if err != nil {
			return nil, err
		}
		cs = []models.Collection{*c}
	} else {
		var err error
		if cs, err = db.ListCollections(); err != nil {
			return nil, err
		}
	}

	out := make([]models.CollectionStats, 0, len(cs))
	for _, c := range cs {
		s := models.CollectionStats{Name: c.Name, Modes: c.ModeNames()}
		if err := db.Model(&models.Variable{}).Where("collection_id = ?", c.ID).Count(&s.Variables).Error; err != nil {
			return nil, err
		}
		err := db.Model(&models.VariableValue{}).
			Joins("JOIN variables ON variables.id = variable_values.variable_id").
			Where("variables.collection_id = ?", c.ID).
			Count(&s.Values).Error
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
