package models

// ReminderPayload is the body of an appointment reminder task.
type ReminderPayload struct {
	ConfirmationID string `json:"confirmationId"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	FirstName      string `json:"firstName"`
	Service        string `json:"service"`
	LocationName   string `json:"locationName"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	FireDate       string `json:"fireDate"` // RFC3339
}
