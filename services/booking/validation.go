package booking

import (
	"strings"
	"time"

	"washbook/models"
)

const dateLayout = "2006-01-02"

// ValidateStep checks the fields owned by step. Confirm and Success have none.
func ValidateStep(step models.Step, d models.BookingDraft, r Rules) error {
	switch step {
	case models.StepService:
		return validateService(d, r)
	case models.StepSchedule:
		return validateSchedule(d, r)
	case models.StepDetails:
		return validateDetails(d)
	default:
		return nil
	}
}

// validateThrough checks every step before upTo and returns the first failure.
func validateThrough(upTo models.Step, d models.BookingDraft, r Rules) error {
	for s := models.StepService; s < upTo; s++ {
		if err := ValidateStep(s, d, r); err != nil {
			return err
		}
	}
	return nil
}

func validateService(d models.BookingDraft, r Rules) error {
	verr := &ValidationError{Step: models.StepService}
	if strings.TrimSpace(d.Service) == "" {
		verr.add(FieldService, "required")
	} else if _, ok := r.Catalogue.ServiceByID(d.Service); !ok {
		verr.add(FieldService, "unknown service")
	}
	return verr.errOrNil()
}

func validateSchedule(d models.BookingDraft, r Rules) error {
	verr := &ValidationError{Step: models.StepSchedule}

	locationOK := false
	switch {
	case d.Location == nil:
		verr.add(FieldLocation, "required")
	case !r.Catalogue.HasLocation(d.Location):
		verr.add(FieldLocation, "unknown location")
	default:
		locationOK = true
	}

	dateOK := false
	if d.Date == "" {
		verr.add(FieldDate, "required")
	} else if day, err := time.ParseInLocation(dateLayout, d.Date, r.Zone()); err != nil {
		verr.add(FieldDate, "must be YYYY-MM-DD")
	} else if day.Before(Tomorrow(r.Now(), r.Zone())) {
		verr.add(FieldDate, "must be tomorrow or later")
	} else {
		dateOK = true
	}

	if d.Time == "" {
		verr.add(FieldTime, "required")
	} else if svc, ok := r.Catalogue.ServiceByID(d.Service); ok && locationOK && dateOK {
		if !SlotAvailable(svc, d.Date, d.Location.ID, d.Time, r.Window, r.Checker()) {
			verr.add(FieldTime, "not an available slot")
		}
	}
	return verr.errOrNil()
}

func validateDetails(d models.BookingDraft) error {
	verr := &ValidationError{Step: models.StepDetails}
	required := []struct {
		field string
		value string
	}{
		{FieldFirstName, d.FirstName},
		{FieldLastName, d.LastName},
		{FieldEmail, d.Email},
		{FieldPhone, d.Phone},
		{FieldVehicleType, d.VehicleType},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			verr.add(f.field, "required")
		}
	}
	return verr.errOrNil()
}

// Tomorrow returns midnight of the day after now in tz.
func Tomorrow(now time.Time, tz *time.Location) time.Time {
	local := now.In(tz)
	return time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, tz)
}
