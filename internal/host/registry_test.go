package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/themebuddy/internal/db"
	"github.com/asteroid-belt/themebuddy/internal/models"
	"github.com/asteroid-belt/themebuddy/internal/tokens"
)

func TestLoadRegistry(t *testing.T) {
	h, database := newTestHost(t)
	generate(t, h)

	reg, err := LoadRegistry(database, models.DefaultCollectionName)
	require.NoError(t, err)

	assert.Equal(t, []string{"light", "dark"}, reg.Modes())
	assert.Equal(t, 3, reg.Len())

	tok, err := reg.Get("color/primary/500")
	require.NoError(t, err)
	assert.Equal(t, tokens.KindColor, tok.Kind)
	assert.Equal(t, map[string]string{"light": "#1F5BFF", "dark": "#6690FF"}, tok.Values)

	spacing, err := reg.Get("spacing/1")
	require.NoError(t, err)
	assert.Equal(t, tokens.KindDimension, spacing.Kind)
}

func TestLoadRegistry_MissingCollection(t *testing.T) {
	_, database := newTestHost(t)

	_, err := LoadRegistry(database, "Nope")
	assert.ErrorIs(t, err, db.ErrCollectionNotFound)
}
