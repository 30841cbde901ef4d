package models

import "fmt"

// Cents is an amount of money in US cents.
type Cents int64

// String renders the amount as dollars, e.g. "$39.75".
func (c Cents) String() string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s$%d.%02d", sign, int64(c)/100, int64(c)%100)
}

// WashService is a bookable wash package.
type WashService struct {
	ID              string   `bson:"id" json:"id" mapstructure:"id"`
	Name            string   `bson:"name" json:"name" mapstructure:"name"`
	BasePrice       Cents    `bson:"basePrice" json:"basePrice" mapstructure:"basePrice"`
	DurationMinutes int      `bson:"durationMinutes" json:"durationMinutes" mapstructure:"durationMinutes"`
	Description     string   `bson:"description" json:"description" mapstructure:"description"`
	Popular         bool     `bson:"popular" json:"popular" mapstructure:"popular"`
	Features        []string `bson:"features,omitempty" json:"features,omitempty" mapstructure:"features"`
	Aliases         []string `bson:"aliases,omitempty" json:"aliases,omitempty" mapstructure:"aliases"` // alternate ids, e.g. "executive"
	Position        int      `bson:"position" json:"-" mapstructure:"-"`
}

// Addon is an optional extra priced on top of the service.
type Addon struct {
	ID       string `bson:"id" json:"id" mapstructure:"id"`
	Name     string `bson:"name" json:"name" mapstructure:"name"`
	Price    Cents  `bson:"price" json:"price" mapstructure:"price"`
	Position int    `bson:"position" json:"-" mapstructure:"-"`
}
