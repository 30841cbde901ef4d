package models

// PriceQuote is an itemised price for a service with optional extras.
type PriceQuote struct {
	ServiceID          string  `json:"serviceId"`
	BasePrice          Cents   `json:"basePrice"`
	LocationMultiplier float64 `json:"locationMultiplier"`
	SizeMultiplier     float64 `json:"sizeMultiplier"`
	ServicePrice       Cents   `json:"servicePrice"` // base after multipliers
	Discount           Cents   `json:"discount"`     // membership discount on the service price
	Addons             []Addon `json:"addons,omitempty"`
	AddonTotal         Cents   `json:"addonTotal"`
	Total              Cents   `json:"total"`
	Display            string  `json:"display"` // Total formatted as dollars
}

// QuoteRequest is the body of a standalone price quote.
type QuoteRequest struct {
	Service     string   `json:"service" binding:"required"`
	Addons      []string `json:"addons"`
	Membership  bool     `json:"membership"`
	Location    string   `json:"location"`    // optional, enables location pricing
	VehicleSize string   `json:"vehicleSize"` // optional
}
