package models

const (
	AvailableToday = "available-today"
	NextAvailable  = "next-available"
)

// Coordinates is a WGS84 point in decimal degrees.
type Coordinates struct {
	Latitude  float64 `bson:"latitude" json:"latitude" mapstructure:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude" mapstructure:"longitude"`
}

// Location is one branch of the chain. Catalogue order matters: the first entry is the default.
type Location struct {
	ID           string      `bson:"id" json:"id" mapstructure:"id"`
	Name         string      `bson:"name" json:"name" mapstructure:"name"`
	Coordinates  Coordinates `bson:"coordinates" json:"coordinates" mapstructure:"coordinates"`
	Address      string      `bson:"address" json:"address" mapstructure:"address"`
	Phone        string      `bson:"phone" json:"phone" mapstructure:"phone"`
	Hours        string      `bson:"hours" json:"hours" mapstructure:"hours"`
	Availability string      `bson:"availability" json:"availability" mapstructure:"availability"` // "available-today" or "next-available"
	Position     int         `bson:"position" json:"-" mapstructure:"-"`                           // sort key in the Mongo catalogue
}

// Resolution describes how the current location was chosen.
type Resolution struct {
	Location      Location `json:"location"`
	Fallback      bool     `json:"fallback"`                // true when no coordinates were available
	DistanceMiles *float64 `json:"distanceMiles,omitempty"` // nil on fallback
	Source        string   `json:"source"`                  // "coordinates", "ip" or "default"
	Error         string   `json:"error,omitempty"`         // geolocation failure that caused the fallback
}

// RankedLocation is a catalogue entry with its distance from the user.
type RankedLocation struct {
	Location      Location `json:"location"`
	DistanceMiles float64  `json:"distanceMiles"`
}
