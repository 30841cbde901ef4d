package models

// TimeSlot is a candidate start time for a service on a given day.
type TimeSlot struct {
	Label     string `json:"label"`     // display label, e.g. "8:00 AM"
	Start     int    `json:"start"`     // minutes from midnight (e.g., 480 for 8:00 AM)
	End       int    `json:"end"`       // start plus service duration
	Available bool   `json:"available"`
}

// BookingDate is an entry of the date picker.
type BookingDate struct {
	Date       string `json:"date"`  // "YYYY-MM-DD"
	Label      string `json:"label"` // e.g. "Sat, Oct 17"
	IsToday    bool   `json:"isToday"`
	IsTomorrow bool   `json:"isTomorrow"`
	Bookable   bool   `json:"bookable"` // today is never bookable
}
