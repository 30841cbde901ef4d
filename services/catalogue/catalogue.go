package catalogue

import (
	"errors"
	"fmt"
	"strings"

	"washbook/models"
)

// ErrNoLocations rejects a catalogue without any location; the resolver needs a default.
var ErrNoLocations = errors.New("catalogue has no locations")

// ErrNoServices rejects a catalogue without any bookable service.
var ErrNoServices = errors.New("catalogue has no services")

// Catalogue is the read-only set of locations, services and addons.
// It is loaded once at startup; callers must not mutate the slices.
type Catalogue struct {
	Locations []models.Location    `json:"locations" mapstructure:"locations"`
	Services  []models.WashService `json:"services" mapstructure:"services"`
	Addons    []models.Addon       `json:"addons" mapstructure:"addons"`
}

// Validate checks the catalogue is usable.
func (c *Catalogue) Validate() error {
	if len(c.Locations) == 0 {
		return ErrNoLocations
	}
	if len(c.Services) == 0 {
		return ErrNoServices
	}
	seen := make(map[string]bool, len(c.Locations))
	for _, loc := range c.Locations {
		if loc.ID == "" {
			return fmt.Errorf("location %q has no id", loc.Name)
		}
		if seen[loc.ID] {
			return fmt.Errorf("duplicate location id %q", loc.ID)
		}
		seen[loc.ID] = true
	}
	for _, svc := range c.Services {
		if svc.ID == "" || svc.DurationMinutes <= 0 {
			return fmt.Errorf("service %q needs an id and a positive duration", svc.Name)
		}
	}
	return nil
}

// LocationByID returns a copy of the location with the given id.
func (c *Catalogue) LocationByID(id string) (models.Location, bool) {
	for _, loc := range c.Locations {
		if loc.ID == id {
			return loc, true
		}
	}
	return models.Location{}, false
}

// HasLocation reports whether loc is one of the catalogue locations.
func (c *Catalogue) HasLocation(loc *models.Location) bool {
	if loc == nil {
		return false
	}
	_, ok := c.LocationByID(loc.ID)
	return ok
}

// ServiceByID looks a service up by id or alias, case-insensitively.
func (c *Catalogue) ServiceByID(id string) (models.WashService, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return models.WashService{}, false
	}
	for _, svc := range c.Services {
		if svc.ID == id {
			return svc, true
		}
		for _, alias := range svc.Aliases {
			if alias == id {
				return svc, true
			}
		}
	}
	return models.WashService{}, false
}

// AddonByID returns the addon with the given id.
func (c *Catalogue) AddonByID(id string) (models.Addon, bool) {
	for _, a := range c.Addons {
		if a.ID == id {
			return a, true
		}
	}
	return models.Addon{}, false
}

// Default returns the built-in catalogue: four California branches, three packages and six extras.
func Default() *Catalogue {
	return &Catalogue{
		Locations: []models.Location{
			{
				ID:           "los-angeles",
				Name:         "Los Angeles",
				Coordinates:  models.Coordinates{Latitude: 34.0522, Longitude: -118.2437},
				Address:      "123 Sunset Blvd, Los Angeles, CA 90028",
				Phone:        "(555) 123-4567",
				Hours:        "Mon-Sun: 7AM-7PM",
				Availability: models.AvailableToday,
			},
			{
				ID:           "san-francisco",
				Name:         "San Francisco",
				Coordinates:  models.Coordinates{Latitude: 37.7749, Longitude: -122.4194},
				Address:      "456 Market St, San Francisco, CA 94102",
				Phone:        "(555) 234-5678",
				Hours:        "Mon-Sun: 8AM-6PM",
				Availability: models.NextAvailable,
			},
			{
				ID:           "san-diego",
				Name:         "San Diego",
				Coordinates:  models.Coordinates{Latitude: 32.7157, Longitude: -117.1611},
				Address:      "789 Harbor Dr, San Diego, CA 92101",
				Phone:        "(555) 345-6789",
				Hours:        "Mon-Sun: 7AM-8PM",
				Availability: models.AvailableToday,
			},
			{
				ID:           "sacramento",
				Name:         "Sacramento",
				Coordinates:  models.Coordinates{Latitude: 38.5816, Longitude: -121.4944},
				Address:      "321 Capitol Mall, Sacramento, CA 95814",
				Phone:        "(555) 456-7890",
				Hours:        "Mon-Sat: 8AM-6PM, Sun: 9AM-5PM",
				Availability: models.AvailableToday,
			},
		},
		Services: []models.WashService{
			{
				ID:              "basic",
				Name:            "Basic Wash",
				BasePrice:       1500,
				DurationMinutes: 15,
				Description:     "Exterior wash, wheel cleaning, tire shine, hand dry",
				Features:        []string{"Exterior Wash & Rinse", "Wheel Cleaning", "Basic Tire Shine", "Hand Dry"},
			},
			{
				ID:              "premium",
				Name:            "Premium Detail",
				BasePrice:       3500,
				DurationMinutes: 25,
				Description:     "Complete interior & exterior cleaning, windows, vacuum",
				Popular:         true,
				Features:        []string{"Interior Vacuum", "Window Cleaning", "Premium Tire Shine", "Air Freshener"},
			},
			{
				ID:              "luxury",
				Name:            "Luxury Spa",
				BasePrice:       5500,
				DurationMinutes: 40,
				Description:     "Ultimate treatment with wax, clay bar, leather conditioning",
				Features:        []string{"Clay Bar Treatment", "Leather Conditioning", "Premium Wax", "Engine Bay Cleaning"},
				Aliases:         []string{"executive"},
			},
		},
		Addons: []models.Addon{
			{ID: "wax", Name: "Premium Wax Protection", Price: 1000},
			{ID: "interior", Name: "Deep Interior Detailing", Price: 1500},
			{ID: "engine", Name: "Engine Bay Detailing", Price: 1200},
			{ID: "ceramic", Name: "Ceramic Coating", Price: 2500},
			{ID: "headlight", Name: "Headlight Restoration", Price: 800},
			{ID: "pet-hair", Name: "Pet Hair Removal", Price: 700},
		},
	}
}
