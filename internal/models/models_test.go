package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDsAreScoped(t *testing.T) {
	c := CollectionID(DefaultCollectionName)
	assert.Len(t, c, 16)
	assert.NotEqual(t, c, CollectionID("Other"))

	assert.NotEqual(t, ModeID(c, "light"), ModeID(c, "dark"))
	assert.NotEqual(t, ModeID(c, "light"), ModeID(CollectionID("Other"), "light"))
	assert.NotEqual(t, VariableID(c, "light"), ModeID(c, "light"))

	assert.NotEqual(t, LinkID(BarNavbar, 0), LinkID(BarStatusbar, 0))
}

func TestVariableValueFor(t *testing.T) {
	v := Variable{Values: []VariableValue{{ModeID: "m1", Value: "#000000"}}}

	got, ok := v.ValueFor("m1")
	require.True(t, ok)
	assert.Equal(t, "#000000", got)

	_, ok = v.ValueFor("m2")
	assert.False(t, ok)
}

func TestCollectionModeNames(t *testing.T) {
	c := Collection{Modes: []Mode{{Name: "light", Position: 0}, {Name: "dark", Position: 1}}}
	assert.Equal(t, []string{"light", "dark"}, c.ModeNames())
}

func TestParseBar(t *testing.T) {
	b, err := ParseBar("statusbar")
	require.NoError(t, err)
	assert.Equal(t, BarStatusbar, b)

	_, err = ParseBar("sidebar")
	assert.Error(t, err)
}

func TestUserStateCollection(t *testing.T) {
	s := UserState{}
	assert.Equal(t, DefaultCollectionName, s.Collection())

	s.ActiveCollection = "Brand"
	assert.Equal(t, "Brand", s.Collection())
}
