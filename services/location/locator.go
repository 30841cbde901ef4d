package location

import (
	"context"
	"errors"
	"fmt"
	"time"

	"washbook/models"
	"washbook/utils"

	"go.uber.org/zap"
)

// GeoOptions tunes a position request.
type GeoOptions struct {
	EnableHighAccuracy bool
	Timeout            time.Duration
	MaxCacheAge        time.Duration // how old a cached position may be
}

// DefaultGeoOptions matches what the booking page asks the browser for.
func DefaultGeoOptions() GeoOptions {
	return GeoOptions{
		EnableHighAccuracy: true,
		Timeout:            10 * time.Second,
		MaxCacheAge:        5 * time.Minute,
	}
}

// GeolocationProvider acquires the user's position.
type GeolocationProvider interface {
	RequestPosition(ctx context.Context, opts GeoOptions) (models.Coordinates, error)
}

// Locator acquires a position and resolves it, falling back to the default location on failure.
type Locator struct {
	resolver LocationResolver
	logger   *zap.Logger
	metrics  *utils.BookingMetrics
}

func NewLocator(resolver LocationResolver, logger *zap.Logger, metrics *utils.BookingMetrics) *Locator {
	return &Locator{resolver: resolver, logger: logger, metrics: metrics}
}

// Locate asks provider for a position within opts.Timeout and resolves the nearest location.
// Geolocation failures never surface as errors: the result is the fallback with Error set.
// Cancelling ctx abandons the request and returns ctx.Err().
func (l *Locator) Locate(ctx context.Context, provider GeolocationProvider, opts GeoOptions) (models.Resolution, error) {
	reqCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	coords, err := provider.RequestPosition(reqCtx, opts)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return models.Resolution{}, ctxErr
		}
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w after %s", ErrTimeout, opts.Timeout)
		}
		if !IsGeolocationFailure(err) {
			err = fmt.Errorf("%w: %v", ErrPositionUnavailable, err)
		}
		l.logger.Info("Geolocation failed; using default location", zap.Error(err))

		res, rerr := l.resolver.Resolve(nil)
		if rerr != nil {
			return models.Resolution{}, rerr
		}
		res.Error = err.Error()
		return res, nil
	}

	res, err := l.resolver.Resolve(&coords)
	if err != nil {
		return models.Resolution{}, err
	}
	if named, ok := provider.(interface{ Source() string }); ok {
		res.Source = named.Source()
	}
	l.logger.Debug("Resolved nearest location",
		zap.String("location", res.Location.ID),
		zap.Float64p("distanceMiles", res.DistanceMiles))
	return res, nil
}
