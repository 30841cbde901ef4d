package booking

import (
	"time"

	"washbook/services/catalogue"
)

// Rules is everything the transition function consults besides the state itself.
type Rules struct {
	Catalogue    *catalogue.Catalogue
	Window       SlotWindow
	Availability AvailabilityChecker
	Pricing      Pricing
	TZ           *time.Location   // business timezone; dates are validated here
	Clock        func() time.Time // defaults to time.Now
}

// DefaultRules wires the built-in catalogue, the 8:00-18:00 half-hour grid and simulated availability.
func DefaultRules() Rules {
	return Rules{
		Catalogue:    catalogue.Default(),
		Window:       DefaultSlotWindow(),
		Availability: SimulatedAvailability{OpenRatio: DefaultOpenRatio},
		Pricing:      DefaultPricing(),
		TZ:           time.UTC,
	}
}

// Now is the rule clock.
func (r Rules) Now() time.Time {
	if r.Clock != nil {
		return r.Clock()
	}
	return time.Now()
}

// Zone is the business timezone, UTC when unset.
func (r Rules) Zone() *time.Location {
	if r.TZ != nil {
		return r.TZ
	}
	return time.UTC
}

// Checker is the slot availability source; every slot is open when unset.
func (r Rules) Checker() AvailabilityChecker {
	if r.Availability != nil {
		return r.Availability
	}
	return AllAvailable{}
}
