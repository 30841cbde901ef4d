package booking

import (
	"fmt"
	"math"
	"strings"

	"washbook/models"
	"washbook/services/catalogue"
)

// Pricing holds the multipliers and discount applied on top of catalogue prices.
type Pricing struct {
	LocationMultipliers       map[string]float64
	SizeMultipliers           map[string]float64
	MembershipDiscountPercent int64
}

// DefaultPricing mirrors the price calculator: regional and vehicle-size multipliers, 15% membership discount.
func DefaultPricing() Pricing {
	return Pricing{
		LocationMultipliers: map[string]float64{
			"los-angeles":   1.10,
			"san-francisco": 1.15,
			"san-diego":     1.00,
			"sacramento":    0.95,
			"fresno":        0.90,
		},
		SizeMultipliers: map[string]float64{
			"compact": 0.90,
			"medium":  1.00,
			"large":   1.20,
			"xl":      1.40,
		},
		MembershipDiscountPercent: 15,
	}
}

// basis points keep the multiplication exact; 1.15 is 11500.
func toBasisPoints(m float64) int64 {
	return int64(math.Round(m * 10000))
}

// divRoundHalfUp divides non-negative n by d rounding .5 up.
func divRoundHalfUp(n, d int64) int64 {
	return (2*n + d) / (2 * d)
}

func (p Pricing) multiplier(table map[string]float64, key string) float64 {
	if m, ok := table[strings.ToLower(key)]; ok && key != "" {
		return m
	}
	return 1.0
}

// Quote prices svc with its addons. An empty locationID or vehicleSize leaves that multiplier at 1.00.
// The membership discount applies to the service price only.
func (p Pricing) Quote(svc models.WashService, addons []models.Addon, membership bool, locationID, vehicleSize string) models.PriceQuote {
	locM := p.multiplier(p.LocationMultipliers, locationID)
	sizeM := p.multiplier(p.SizeMultipliers, vehicleSize)

	servicePrice := divRoundHalfUp(int64(svc.BasePrice)*toBasisPoints(locM)*toBasisPoints(sizeM), 10000*10000)

	var discount int64
	if membership {
		discount = divRoundHalfUp(servicePrice*p.MembershipDiscountPercent, 100)
	}

	var addonTotal int64
	for _, a := range addons {
		addonTotal += int64(a.Price)
	}

	total := models.Cents(servicePrice - discount + addonTotal)
	return models.PriceQuote{
		ServiceID:          svc.ID,
		BasePrice:          svc.BasePrice,
		LocationMultiplier: locM,
		SizeMultiplier:     sizeM,
		ServicePrice:       models.Cents(servicePrice),
		Discount:           models.Cents(discount),
		Addons:             addons,
		AddonTotal:         models.Cents(addonTotal),
		Total:              total,
		Display:            total.String(),
	}
}

// QuoteRequest resolves ids against the catalogue and prices the request.
func (p Pricing) QuoteRequest(c *catalogue.Catalogue, req models.QuoteRequest) (models.PriceQuote, error) {
	svc, ok := c.ServiceByID(req.Service)
	if !ok {
		return models.PriceQuote{}, &ValidationError{Fields: []string{FieldService}, Reasons: map[string]string{FieldService: "unknown service"}}
	}
	if req.Location != "" {
		if _, ok := c.LocationByID(req.Location); !ok {
			return models.PriceQuote{}, &ValidationError{Fields: []string{FieldLocation}, Reasons: map[string]string{FieldLocation: "unknown location"}}
		}
	}
	addons, err := resolveAddons(c, req.Addons)
	if err != nil {
		return models.PriceQuote{}, err
	}
	return p.Quote(svc, addons, req.Membership, req.Location, req.VehicleSize), nil
}

// QuoteDraft prices a wizard draft at base regional price. Nil when no known service is chosen.
func (p Pricing) QuoteDraft(c *catalogue.Catalogue, d models.BookingDraft) *models.PriceQuote {
	svc, ok := c.ServiceByID(d.Service)
	if !ok {
		return nil
	}
	addons, err := resolveAddons(c, d.Addons)
	if err != nil {
		return nil
	}
	q := p.Quote(svc, addons, d.Membership, "", d.VehicleSize)
	return &q
}

func resolveAddons(c *catalogue.Catalogue, ids []string) ([]models.Addon, error) {
	addons := make([]models.Addon, 0, len(ids))
	for _, id := range ids {
		a, ok := c.AddonByID(id)
		if !ok {
			return nil, &ValidationError{Fields: []string{FieldAddons}, Reasons: map[string]string{FieldAddons: fmt.Sprintf("unknown addon %q", id)}}
		}
		addons = append(addons, a)
	}
	return addons, nil
}
