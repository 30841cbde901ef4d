package models

import "time"

// BookingSession holds a wizard between HTTP requests.
type BookingSession struct {
	SessionID  string       `json:"sessionId"`
	State      BookingState `json:"state"`
	Resolution *Resolution  `json:"resolution,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// BookingSummary is what the confirm step shows before submission.
type BookingSummary struct {
	Step            Step         `json:"step"`
	Service         *WashService `json:"service,omitempty"`
	Location        *Location    `json:"location,omitempty"`
	Date            string       `json:"date"`
	Time            string       `json:"time"`
	VehicleType     string       `json:"vehicleType"`
	FirstName       string       `json:"firstName"`
	LastName        string       `json:"lastName"`
	Email           string       `json:"email"`
	Phone           string       `json:"phone"`
	SpecialRequests string       `json:"specialRequests,omitempty"`
	Quote           *PriceQuote  `json:"quote,omitempty"`
}

// DraftPatch is a partial draft update; nil fields are left untouched.
type DraftPatch struct {
	Service         *string   `json:"service"`
	Location        *string   `json:"location"` // location id
	Date            *string   `json:"date"`
	Time            *string   `json:"time"`
	VehicleType     *string   `json:"vehicleType"`
	FirstName       *string   `json:"firstName"`
	LastName        *string   `json:"lastName"`
	Email           *string   `json:"email"`
	Phone           *string   `json:"phone"`
	SpecialRequests *string   `json:"specialRequests"`
	Addons          *[]string `json:"addons"`
	Membership      *bool     `json:"membership"`
	VehicleSize     *string   `json:"vehicleSize"`
}
