package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexLookups(t *testing.T) {
	idx := NewIndex("testdata")

	tracks, vehicles, classes := idx.Counts()
	assert.Equal(t, 3, tracks)
	assert.Equal(t, 3, vehicles)
	assert.Equal(t, 2, classes)

	// negative ids are valid, the game hashes can be negative
	assert.Equal(t, "Brands Hatch Grand Prix", idx.TrackName(-1044251917))
	assert.Equal(t, "Mercedes-AMG GT3", idx.VehicleName(501))
	assert.Equal(t, "Formula Junior", idx.VehicleClassName(12))
}

func TestIndexPlaceholders(t *testing.T) {
	idx := NewIndex("testdata")

	assert.Equal(t, "Unknown Track (42)", idx.TrackName(42))
	assert.Equal(t, "Unknown Vehicle (42)", idx.VehicleName(42))
	assert.Equal(t, "Unknown Class (42)", idx.VehicleClassName(42))
}

func TestIndexMissingDir(t *testing.T) {
	// a missing directory leaves all tables empty, lookups still work
	idx := NewIndex("testdata/does-not-exist")
	tracks, vehicles, classes := idx.Counts()
	assert.Zero(t, tracks)
	assert.Zero(t, vehicles)
	assert.Zero(t, classes)
	assert.Equal(t, "Unknown Track (1)", idx.TrackName(1))
}

func TestSearchTracks(t *testing.T) {
	idx := NewIndex("testdata")

	got := idx.SearchTracks("spa")
	assert.Len(t, got, 1)
	assert.Equal(t, "Spa-Francorchamps", got[0].Name)

	assert.Empty(t, idx.SearchTracks("monza"))
	// all entries match the empty query
	assert.Len(t, idx.SearchTracks(""), 3)
}

func TestSearchVehicles(t *testing.T) {
	idx := NewIndex("testdata")

	got := idx.SearchVehicles("gt3")
	assert.Len(t, got, 2)
}

func TestVehicleClassKeyedByValue(t *testing.T) {
	idx := NewIndex("testdata")

	c, ok := idx.VehicleClass(77)
	assert.True(t, ok)
	assert.Equal(t, "GT3", c.TranslatedName)
	// display name comes from translated_name, not name
	c, ok = idx.VehicleClass(12)
	assert.True(t, ok)
	assert.Equal(t, "FJUNIOR", c.Name)
	assert.Equal(t, "Formula Junior", c.TranslatedName)
}
