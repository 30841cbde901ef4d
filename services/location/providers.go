package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"washbook/models"
	"washbook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// StaticProvider replays a position (or failure) the client already obtained.
type StaticProvider struct {
	Coordinates *models.Coordinates
	ErrorCode   int    // browser failure code; 0 when none
	Message     string // browser failure message
}

func (p StaticProvider) RequestPosition(ctx context.Context, _ GeoOptions) (models.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return models.Coordinates{}, err
	}
	if p.ErrorCode != 0 {
		return models.Coordinates{}, NewGeolocationError(p.ErrorCode, p.Message)
	}
	if p.Coordinates == nil {
		return models.Coordinates{}, NewGeolocationError(CodePositionUnavailable, "no coordinates supplied")
	}
	if !validCoordinates(*p.Coordinates) {
		return models.Coordinates{}, NewGeolocationError(CodePositionUnavailable, "coordinates out of range")
	}
	return *p.Coordinates, nil
}

func validCoordinates(c models.Coordinates) bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// ipAPIResponse is the subset of the ipapi.co JSON body we read.
type ipAPIResponse struct {
	IP        string  `json:"ip"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Error     bool    `json:"error"`
	Reason    string  `json:"reason"`
}

// IPGeolocator looks up approximate positions by client IP and caches them in Redis.
type IPGeolocator struct {
	BaseURL    string
	HTTPClient *http.Client
	Cache      *redis.Client // optional
	Logger     *zap.Logger
}

func NewIPGeolocator(baseURL string, cache *redis.Client, logger *zap.Logger) *IPGeolocator {
	return &IPGeolocator{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
		Cache:      cache,
		Logger:     logger,
	}
}

// Provider returns a GeolocationProvider bound to one client IP.
func (g *IPGeolocator) Provider(ip string) GeolocationProvider {
	return ipProvider{geo: g, ip: ip}
}

type ipProvider struct {
	geo *IPGeolocator
	ip  string
}

func (p ipProvider) Source() string { return "ip" }

func (p ipProvider) RequestPosition(ctx context.Context, opts GeoOptions) (models.Coordinates, error) {
	return p.geo.lookup(ctx, p.ip, opts)
}

// isPrivateIP checks if an IP is private, loopback or otherwise not routable.
func isPrivateIP(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return true
	}
	return parsed.IsPrivate() || parsed.IsLoopback() || parsed.IsUnspecified() ||
		parsed.IsLinkLocalUnicast() || parsed.IsLinkLocalMulticast()
}

func (g *IPGeolocator) lookup(ctx context.Context, ip string, opts GeoOptions) (models.Coordinates, error) {
	if isPrivateIP(ip) {
		return models.Coordinates{}, NewGeolocationError(CodePositionUnavailable, "client IP is not publicly routable")
	}

	key := utils.GeoCachePrefix + ip
	if g.Cache != nil && opts.MaxCacheAge > 0 {
		if raw, err := g.Cache.Get(ctx, key).Bytes(); err == nil {
			var cached models.Coordinates
			if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
				return cached, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			g.Logger.Warn("Geolocation cache read failed", zap.String("ip", ip), zap.Error(err))
		}
	}

	url := fmt.Sprintf("%s/%s/json/", g.BaseURL, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("build geolocation request: %w", err)
	}
	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return models.Coordinates{}, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		if ctx.Err() != nil {
			return models.Coordinates{}, ctx.Err()
		}
		return models.Coordinates{}, NewGeolocationError(CodePositionUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Coordinates{}, NewGeolocationError(CodePositionUnavailable,
			fmt.Sprintf("geolocation API returned status %d", resp.StatusCode))
	}

	var body ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return models.Coordinates{}, NewGeolocationError(CodePositionUnavailable, "malformed geolocation response")
	}
	if body.Error {
		return models.Coordinates{}, NewGeolocationError(CodePositionUnavailable, body.Reason)
	}
	coords := models.Coordinates{Latitude: body.Latitude, Longitude: body.Longitude}
	if (coords.Latitude == 0 && coords.Longitude == 0) || !validCoordinates(coords) {
		return models.Coordinates{}, NewGeolocationError(CodePositionUnavailable, "geolocation API returned no position")
	}

	if g.Cache != nil && opts.MaxCacheAge > 0 {
		if raw, err := json.Marshal(coords); err == nil {
			if err := g.Cache.Set(ctx, key, raw, opts.MaxCacheAge).Err(); err != nil {
				g.Logger.Warn("Geolocation cache write failed", zap.String("ip", ip), zap.Error(err))
			}
		}
	}

	g.Logger.Debug("Geolocation retrieved from external API",
		zap.String("ip", ip), zap.String("city", body.City), zap.Bool("highAccuracy", opts.EnableHighAccuracy))
	return coords, nil
}
