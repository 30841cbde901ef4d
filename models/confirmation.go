package models

import "time"

// BookingConfirmation is the frozen record returned by the reservation API.
type BookingConfirmation struct {
	ConfirmationID  string     `json:"confirmationId"`
	Service         string     `json:"service"`
	Location        Location   `json:"location"`
	Date            string     `json:"date"`
	Time            string     `json:"time"`
	VehicleType     string     `json:"vehicleType"`
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	SpecialRequests string     `json:"specialRequests,omitempty"`
	Quote           PriceQuote `json:"quote"`
	CreatedAt       time.Time  `json:"createdAt"`
}
