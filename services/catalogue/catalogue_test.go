package catalogue

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"washbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDefaultCatalogue(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	assert.Equal(t, "los-angeles", c.Locations[0].ID, "first location is the fallback")
	assert.Len(t, c.Locations, 4)

	sf, ok := c.LocationByID("san-francisco")
	require.True(t, ok)
	assert.Equal(t, models.NextAvailable, sf.Availability)

	lux, ok := c.ServiceByID("Executive")
	require.True(t, ok)
	assert.Equal(t, "luxury", lux.ID)

	_, ok = c.ServiceByID("")
	assert.False(t, ok)
	_, ok = c.AddonByID("ceramic")
	assert.True(t, ok)
	assert.False(t, c.HasLocation(nil))
	assert.False(t, c.HasLocation(&models.Location{ID: "reno"}))
}

func TestValidate(t *testing.T) {
	valid := func() *Catalogue {
		return &Catalogue{
			Locations: []models.Location{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}},
			Services:  []models.WashService{{ID: "basic", Name: "Basic", DurationMinutes: 15}},
		}
	}
	require.NoError(t, valid().Validate())

	c := valid()
	c.Locations = nil
	assert.ErrorIs(t, c.Validate(), ErrNoLocations)

	c = valid()
	c.Services = nil
	assert.ErrorIs(t, c.Validate(), ErrNoServices)

	c = valid()
	c.Locations[1].ID = "a"
	assert.ErrorContains(t, c.Validate(), "duplicate")

	c = valid()
	c.Locations[0].ID = ""
	assert.Error(t, c.Validate())

	c = valid()
	c.Services[0].DurationMinutes = 0
	assert.Error(t, c.Validate())
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalogue.yaml")
	yaml := `locations:
  - id: fresno
    name: Fresno
    coordinates:
      latitude: 36.7378
      longitude: -119.7871
    availability: available-today
services:
  - id: basic
    name: Basic Wash
    basePrice: 1500
    durationMinutes: 15
    aliases: [express]
addons:
  - id: wax
    name: Wax
    price: 1000
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	c, err := Load(context.Background(), FileSource{Path: path}, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, c.Locations, 1)
	assert.InDelta(t, 36.7378, c.Locations[0].Coordinates.Latitude, 1e-9)
	svc, ok := c.ServiceByID("express")
	require.True(t, ok)
	assert.Equal(t, models.Cents(1500), svc.BasePrice)
	assert.Equal(t, 15, svc.DurationMinutes)
	wax, ok := c.AddonByID("wax")
	require.True(t, ok)
	assert.Equal(t, models.Cents(1000), wax.Price)
}

func TestFileSource_ShippedCatalogue(t *testing.T) {
	c, err := Load(context.Background(), FileSource{Path: "../../config/catalogue.yaml"}, zap.NewNop())
	require.NoError(t, err)
	_, ok := c.LocationByID("fresno")
	assert.True(t, ok)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(context.Background(), FileSource{Path: filepath.Join(t.TempDir(), "missing.yaml")}, zap.NewNop())
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("services: []\n"), 0o600))
	_, err = Load(context.Background(), FileSource{Path: empty}, zap.NewNop())
	assert.ErrorIs(t, err, ErrNoLocations)
}
