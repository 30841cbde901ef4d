package location

import (
	"math"
	"sort"

	"washbook/models"
	"washbook/utils"
)

// EarthRadiusMiles is the mean Earth radius used for distances.
const EarthRadiusMiles = 3959.0

// LocationResolver picks the branch closest to the user.
type LocationResolver interface {
	Resolve(coords *models.Coordinates) (models.Resolution, error)
	Rank(coords models.Coordinates) []models.RankedLocation
}

// DefaultLocationResolver resolves against a fixed catalogue.
type DefaultLocationResolver struct {
	Catalogue []models.Location
	Metrics   *utils.BookingMetrics
}

// NewLocationResolver returns a resolver over a copy of catalogue.
func NewLocationResolver(catalogue []models.Location, metrics *utils.BookingMetrics) *DefaultLocationResolver {
	locs := make([]models.Location, len(catalogue))
	copy(locs, catalogue)
	return &DefaultLocationResolver{Catalogue: locs, Metrics: metrics}
}

func (r *DefaultLocationResolver) Resolve(coords *models.Coordinates) (models.Resolution, error) {
	res, err := ResolveLocation(coords, r.Catalogue)
	if err == nil {
		r.Metrics.Resolution(res.Source)
	}
	return res, err
}

func (r *DefaultLocationResolver) Rank(coords models.Coordinates) []models.RankedLocation {
	return Rank(coords, r.Catalogue)
}

// HaversineMiles returns the great-circle distance between a and b in miles.
func HaversineMiles(a, b models.Coordinates) float64 {
	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusMiles * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// ResolveLocation returns the nearest catalogue location to coords.
// Ties keep the earlier catalogue entry. Without coords the first entry is the fallback.
func ResolveLocation(coords *models.Coordinates, catalogue []models.Location) (models.Resolution, error) {
	if len(catalogue) == 0 {
		return models.Resolution{}, ErrEmptyCatalogue
	}
	if coords == nil {
		return models.Resolution{Location: catalogue[0], Fallback: true, Source: "default"}, nil
	}

	best := 0
	bestDist := HaversineMiles(*coords, catalogue[0].Coordinates)
	for i := 1; i < len(catalogue); i++ {
		d := HaversineMiles(*coords, catalogue[i].Coordinates)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return models.Resolution{
		Location:      catalogue[best],
		DistanceMiles: &bestDist,
		Source:        "coordinates",
	}, nil
}

// Rank lists every location by distance from coords, nearest first.
func Rank(coords models.Coordinates, catalogue []models.Location) []models.RankedLocation {
	ranked := make([]models.RankedLocation, 0, len(catalogue))
	for _, loc := range catalogue {
		ranked = append(ranked, models.RankedLocation{
			Location:      loc,
			DistanceMiles: HaversineMiles(coords, loc.Coordinates),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceMiles < ranked[j].DistanceMiles
	})
	return ranked
}
