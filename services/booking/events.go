package booking

import "washbook/models"

// Event is an input to Transition.
type Event interface {
	Name() string
}

type (
	Next            struct{}
	Prev            struct{}
	JumpTo          struct{ Step models.Step }
	BeginSubmit     struct{}
	SubmitSucceeded struct{ Confirmation models.BookingConfirmation }
	SubmitFailed    struct{ Err error }
	// Edit sets one draft field. Value is a string for text fields, []string for
	// "addons" and bool for "membership".
	Edit struct {
		Field string
		Value any
	}
)

func (Next) Name() string            { return "next" }
func (Prev) Name() string            { return "prev" }
func (JumpTo) Name() string          { return "jump" }
func (BeginSubmit) Name() string     { return "begin_submit" }
func (SubmitSucceeded) Name() string { return "submit_succeeded" }
func (SubmitFailed) Name() string    { return "submit_failed" }
func (Edit) Name() string            { return "edit" }

// Draft field names accepted by Edit.
const (
	FieldService         = "service"
	FieldLocation        = "location"
	FieldDate            = "date"
	FieldTime            = "time"
	FieldVehicleType     = "vehicleType"
	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
	FieldEmail           = "email"
	FieldPhone           = "phone"
	FieldSpecialRequests = "specialRequests"
	FieldAddons          = "addons"
	FieldMembership      = "membership"
	FieldVehicleSize     = "vehicleSize"
)

// PatchEvents turns a partial update into Edit events, service first so a time set
// in the same patch survives the service change.
func PatchEvents(p models.DraftPatch) []Event {
	var evs []Event
	str := func(field string, v *string) {
		if v != nil {
			evs = append(evs, Edit{Field: field, Value: *v})
		}
	}
	str(FieldService, p.Service)
	str(FieldLocation, p.Location)
	str(FieldDate, p.Date)
	str(FieldTime, p.Time)
	str(FieldVehicleType, p.VehicleType)
	str(FieldFirstName, p.FirstName)
	str(FieldLastName, p.LastName)
	str(FieldEmail, p.Email)
	str(FieldPhone, p.Phone)
	str(FieldSpecialRequests, p.SpecialRequests)
	str(FieldVehicleSize, p.VehicleSize)
	if p.Addons != nil {
		evs = append(evs, Edit{Field: FieldAddons, Value: *p.Addons})
	}
	if p.Membership != nil {
		evs = append(evs, Edit{Field: FieldMembership, Value: *p.Membership})
	}
	return evs
}
