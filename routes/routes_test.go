package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"washbook/handlers"
	"washbook/models"
	"washbook/services/booking"
	"washbook/services/location"
	"washbook/services/reservation"
	"washbook/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sessionBody struct {
	Session models.BookingSession `json:"session"`
	Summary models.BookingSummary `json:"summary"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := zap.NewNop()
	reg := prometheus.NewRegistry()
	metrics := utils.NewBookingMetrics(reg)

	rules := booking.DefaultRules()
	rules.Availability = booking.AllAvailable{}
	rules.Clock = func() time.Time { return time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC) }

	resolver := location.NewLocationResolver(rules.Catalogue.Locations, metrics)
	sessions := &booking.DefaultBookingSessionService{
		Store:         booking.NewRedisSessionStore(client, 30*time.Minute),
		Rules:         rules,
		Resolver:      resolver,
		Submitter:     reservation.NewSimulatedAPI(0, logger),
		SubmitTimeout: 5 * time.Second,
		Logger:        logger,
		Metrics:       metrics,
	}

	bundle := handlers.NewHandlerBundle(
		&handlers.CatalogueHandler{Catalogue: rules.Catalogue, Rules: rules, HorizonDays: 14},
		&handlers.LocationHandler{
			Resolver: resolver,
			Locator:  location.NewLocator(resolver, logger, metrics),
			IPGeo:    location.NewIPGeolocator("http://127.0.0.1:1", client, logger),
			Options:  location.DefaultGeoOptions(),
		},
		handlers.NewBookingHandler(sessions),
		reg,
	)

	r := gin.New()
	r.Use(utils.ErrorHandler())
	RegisterRoutes(r, bundle)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestBookingFlow(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/booking/session", gin.H{
		"coordinates": gin.H{"latitude": 37.8044, "longitude": -122.2712},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	started := decode[sessionBody](t, w)
	id := started.Session.SessionID
	require.NotEmpty(t, id)
	assert.Equal(t, "san-francisco", started.Session.State.Draft.Location.ID)
	base := "/api/booking/session/" + id

	w = do(t, r, http.MethodPost, base+"/next", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	verr := decode[utils.ErrorResponse](t, w)
	assert.Equal(t, []string{"service"}, verr.Fields)

	w = do(t, r, http.MethodPatch, base, gin.H{"service": "luxury", "addons": []string{"wax"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode[sessionBody](t, w)
	require.NotNil(t, body.Summary.Quote)
	assert.Equal(t, "$65.00", body.Summary.Quote.Display)

	w = do(t, r, http.MethodPost, base+"/next", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StepSchedule, decode[sessionBody](t, w).Session.State.Step)

	w = do(t, r, http.MethodPatch, base, gin.H{"date": "2026-10-16", "time": "9:00 AM"})
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, http.MethodPost, base+"/next", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, []string{"date"}, decode[utils.ErrorResponse](t, w).Fields)

	w = do(t, r, http.MethodPatch, base, gin.H{"date": "2026-10-20"})
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, http.MethodPost, base+"/next", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, r, http.MethodPatch, base, gin.H{
		"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com",
		"phone": "555-0100", "vehicleType": "coupe",
	})
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, http.MethodPost, base+"/next", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StepConfirm, decode[sessionBody](t, w).Session.State.Step)

	w = do(t, r, http.MethodPost, base+"/next", nil)
	assert.Equal(t, http.StatusConflict, w.Code, "confirm only advances by submitting")

	w = do(t, r, http.MethodPost, base+"/jump", gin.H{"step": 1})
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, http.MethodPost, base+"/jump", gin.H{"step": 4})
	assert.Equal(t, http.StatusConflict, w.Code, "cannot jump forward")
	for i := 0; i < 3; i++ {
		w = do(t, r, http.MethodPost, base+"/next", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodPost, base+"/submit", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	submitted := decode[struct {
		Message      string                     `json:"message"`
		Confirmation models.BookingConfirmation `json:"confirmation"`
	}](t, w)
	assert.True(t, strings.HasPrefix(submitted.Confirmation.ConfirmationID, "WB-"))
	assert.Equal(t, "2026-10-20", submitted.Confirmation.Date)
	assert.Equal(t, "$65.00", submitted.Confirmation.Quote.Display)

	w = do(t, r, http.MethodPost, base+"/submit", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	w = do(t, r, http.MethodPost, base+"/prev", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingSession_BadRequests(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/booking/session", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode[sessionBody](t, w)
	assert.True(t, body.Session.Resolution.Fallback)
	base := "/api/booking/session/" + body.Session.SessionID

	w = do(t, r, http.MethodPatch, base, gin.H{"location": "reno"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, r, http.MethodPost, base+"/jump", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, base+"/prev", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodPost, "/api/booking/session/nope/next", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCatalogueEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/catalogue/locations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	locs := decode[struct {
		Locations []models.Location `json:"locations"`
	}](t, w)
	assert.Len(t, locs.Locations, 4)

	w = do(t, r, http.MethodGet, "/api/services/basic/slots?date=2026-10-17&location=san-diego", nil)
	require.Equal(t, http.StatusOK, w.Code)
	slots := decode[struct {
		Slots []models.TimeSlot `json:"slots"`
	}](t, w)
	require.Len(t, slots.Slots, 20)
	assert.Equal(t, "5:30 PM", slots.Slots[19].Label)

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/api/services/platinum/slots?date=2026-10-17&location=san-diego", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/api/services/basic/slots?date=tomorrow&location=san-diego", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/api/services/basic/slots?date=2026-10-17", nil).Code)

	w = do(t, r, http.MethodGet, "/api/booking/dates?days=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	dates := decode[struct {
		Dates []models.BookingDate `json:"dates"`
	}](t, w)
	require.Len(t, dates.Dates, 3)
	assert.False(t, dates.Dates[0].Bookable)
	assert.True(t, dates.Dates[1].IsTomorrow)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/api/booking/dates?days=0", nil).Code)

	w = do(t, r, http.MethodPost, "/api/pricing/quote", gin.H{"service": "premium", "addons": []string{"wax"}, "membership": true})
	require.Equal(t, http.StatusOK, w.Code)
	quote := decode[struct {
		Quote models.PriceQuote `json:"quote"`
	}](t, w)
	assert.Equal(t, "$39.75", quote.Quote.Display)

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, "/api/pricing/quote", gin.H{}).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, do(t, r, http.MethodPost, "/api/pricing/quote", gin.H{"service": "platinum"}).Code)
}

type nearestBody struct {
	models.Resolution
	Ranked []models.RankedLocation `json:"ranked"`
}

func TestNearestLocation(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/locations/nearest", gin.H{
		"coordinates": gin.H{"latitude": 34.1, "longitude": -118.3},
	})
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[nearestBody](t, w)
	assert.Equal(t, "los-angeles", got.Location.ID)
	assert.False(t, got.Fallback)
	require.Len(t, got.Ranked, 4)
	assert.Equal(t, "los-angeles", got.Ranked[0].Location.ID)

	w = do(t, r, http.MethodPost, "/api/locations/nearest", gin.H{
		"geolocationError": gin.H{"code": 1, "message": "User denied Geolocation"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	got = decode[nearestBody](t, w)
	assert.True(t, got.Fallback)
	assert.Equal(t, "los-angeles", got.Location.ID)
	assert.Contains(t, got.Error, "denied")
	assert.Empty(t, got.Ranked)

	req := httptest.NewRequest(http.MethodGet, "/api/locations/nearest", nil)
	req.Header.Set("X-Forwarded-For", "10.1.2.3")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	got = decode[nearestBody](t, rec)
	assert.True(t, got.Fallback)
	assert.NotEmpty(t, got.Error)
}

func TestEmptyChunkedBodyUsesDefaults(t *testing.T) {
	r := newTestRouter(t)

	send := func(path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, io.NopCloser(strings.NewReader(body)))
		req.ContentLength = -1
		req.TransferEncoding = []string{"chunked"}
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	w := send("/api/booking/session", "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	started := decode[sessionBody](t, w)
	require.NotNil(t, started.Session.Resolution)
	assert.True(t, started.Session.Resolution.Fallback)
	assert.Equal(t, "los-angeles", started.Session.State.Draft.Location.ID)

	w = send("/api/locations/nearest", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode[nearestBody](t, w)
	assert.True(t, got.Fallback)
	assert.Equal(t, "los-angeles", got.Location.ID)

	w = send("/api/booking/session", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = send("/api/locations/nearest", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOperationalEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	do(t, r, http.MethodPost, "/api/booking/session", nil)
	w = do(t, r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `washbook_location_resolutions_total{source="default"} 1`)
}
