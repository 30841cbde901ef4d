package reservation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"washbook/models"

	"go.uber.org/zap"
)

// bookingRequest is the body POSTed to the booking API.
type bookingRequest struct {
	Service         string   `json:"service"`
	LocationID      string   `json:"locationId"`
	Date            string   `json:"date"`
	Time            string   `json:"time"`
	VehicleType     string   `json:"vehicleType"`
	VehicleSize     string   `json:"vehicleSize,omitempty"`
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	SpecialRequests string   `json:"specialRequests,omitempty"`
	Addons          []string `json:"addons,omitempty"`
	Membership      bool     `json:"membership,omitempty"`
}

type bookingResponse struct {
	ConfirmationID string    `json:"confirmationId"`
	CreatedAt      time.Time `json:"createdAt"`
	Message        string    `json:"message"`
}

// HTTPClient submits bookings to a JSON HTTP API.
type HTTPClient struct {
	URL    string
	Client *http.Client
	Logger *zap.Logger
}

func NewHTTPClient(url string, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		URL:    url,
		Client: &http.Client{Timeout: 30 * time.Second},
		Logger: logger,
	}
}

func (c *HTTPClient) SubmitBooking(ctx context.Context, draft models.BookingDraft) (*models.BookingConfirmation, error) {
	body := bookingRequest{
		Service:         draft.Service,
		Date:            draft.Date,
		Time:            draft.Time,
		VehicleType:     draft.VehicleType,
		VehicleSize:     draft.VehicleSize,
		FirstName:       draft.FirstName,
		LastName:        draft.LastName,
		Email:           draft.Email,
		Phone:           draft.Phone,
		SpecialRequests: draft.SpecialRequests,
		Addons:          draft.Addons,
		Membership:      draft.Membership,
	}
	if draft.Location != nil {
		body.LocationID = draft.Location.ID
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal booking request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build booking request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &SubmissionError{Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &SubmissionError{Kind: KindNetwork, Status: resp.StatusCode, Err: err}
	}

	var out bookingResponse
	_ = json.Unmarshal(raw, &out)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out.ConfirmationID == "" {
			return nil, &SubmissionError{Kind: KindNetwork, Status: resp.StatusCode, Message: "response has no confirmation id"}
		}
		conf := confirmationFromDraft(out.ConfirmationID, draft)
		conf.CreatedAt = out.CreatedAt
		if conf.CreatedAt.IsZero() {
			conf.CreatedAt = time.Now().UTC()
		}
		c.Logger.Info("Booking accepted by API", zap.String("confirmationId", conf.ConfirmationID))
		return conf, nil
	case resp.StatusCode == http.StatusConflict:
		return nil, &SubmissionError{Kind: KindConflict, Status: resp.StatusCode, Message: out.Message}
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, &SubmissionError{Kind: KindRejected, Status: resp.StatusCode, Message: out.Message}
	default:
		c.Logger.Warn("Booking API returned unexpected status", zap.Int("status", resp.StatusCode))
		return nil, &SubmissionError{Kind: KindNetwork, Status: resp.StatusCode, Message: out.Message}
	}
}
