package host

import (
	"fmt"

	"github.com/asteroid-belt/themebuddy/internal/db"
	"github.com/asteroid-belt/themebuddy/internal/tokens"
)

// LoadRegistry reads a stored collection into a registry with the
// collection's modes, so a plugin session can edit what the host holds.
func LoadRegistry(database *db.DB, collection string) (*tokens.Registry, error) {
	c, err := database.GetCollection(collection)
	if err != nil {
		return nil, err
	}
	vars, err := database.ListVariables(collection)
	if err != nil {
		return nil, err
	}

	reg := tokens.New(c.ModeNames()...)
	for _, v := range vars {
		t := tokens.Token{
			Name:        v.Name,
			Kind:        tokens.Kind(v.Kind),
			Description: v.Description,
			Values:      make(map[string]string, len(c.Modes)),
		}
		for _, m := range c.Modes {
			if value, ok := v.ValueFor(m.ID); ok {
				t.Values[m.Name] = value
			}
		}
		if err := reg.Register(t); err != nil {
			return nil, fmt.Errorf("load %s: %w", collection, err)
		}
	}
	return reg, nil
}
