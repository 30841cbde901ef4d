package models

// Step is a page of the booking wizard.
type Step int

const (
	StepService Step = iota + 1
	StepSchedule
	StepDetails
	StepConfirm
	StepSuccess
)

func (s Step) String() string {
	switch s {
	case StepService:
		return "service"
	case StepSchedule:
		return "schedule"
	case StepDetails:
		return "details"
	case StepConfirm:
		return "confirm"
	case StepSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the five wizard steps.
func (s Step) Valid() bool {
	return s >= StepService && s <= StepSuccess
}

// Vehicle types offered on the details step.
var VehicleTypes = []string{"sedan", "suv", "truck", "van", "coupe", "convertible", "other"}

// BookingDraft is the in-progress, mutable booking request.
type BookingDraft struct {
	Service         string    `json:"service"`  // service id
	Location        *Location `json:"location"` // nil until chosen or resolved
	Date            string    `json:"date"`     // "YYYY-MM-DD"
	Time            string    `json:"time"`     // slot label, e.g. "9:30 AM"
	VehicleType     string    `json:"vehicleType"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	SpecialRequests string    `json:"specialRequests"`
	Addons          []string  `json:"addons,omitempty"`
	Membership      bool      `json:"membership,omitempty"`
	VehicleSize     string    `json:"vehicleSize,omitempty"` // compact, medium, large, xl
}

// BookingState is the whole wizard state.
type BookingState struct {
	Step         Step                 `json:"step"`
	Draft        BookingDraft         `json:"draft"`
	Submitting   bool                 `json:"submitting"`
	Confirmation *BookingConfirmation `json:"confirmation,omitempty"`
	LastError    string               `json:"lastError,omitempty"`
}

// NewBookingState returns an empty wizard at the service step.
func NewBookingState() BookingState {
	return BookingState{Step: StepService}
}
