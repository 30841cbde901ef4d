package booking

import "washbook/models"

// Summary echoes the draft with catalogue details and a price quote.
func Summary(s models.BookingState, r Rules) models.BookingSummary {
	d := s.Draft
	sum := models.BookingSummary{
		Step:            s.Step,
		Location:        d.Location,
		Date:            d.Date,
		Time:            d.Time,
		VehicleType:     d.VehicleType,
		FirstName:       d.FirstName,
		LastName:        d.LastName,
		Email:           d.Email,
		Phone:           d.Phone,
		SpecialRequests: d.SpecialRequests,
	}
	if svc, ok := r.Catalogue.ServiceByID(d.Service); ok {
		sum.Service = &svc
	}
	sum.Quote = r.Pricing.QuoteDraft(r.Catalogue, d)
	return sum
}
