package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/voyago/tripengine/internal/domain"
)

// StatusError is a rejection from the persistence service, as opposed to a
// transport failure. Handlers use the code to pick between the conflict and
// network banners.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("trips api: status %d: %s", e.Code, e.Message)
}

// TripPayload is the create/update body; the two endpoints share its shape.
type TripPayload struct {
	CityID             string                    `json:"city_id"`
	StartDate          time.Time                 `json:"start_date"`
	DurationDays       int                       `json:"duration_days"`
	SelectedActivities []domain.SelectedActivity `json:"selected_activities"`
}

// Client talks to the remote trip persistence service. The service owns all
// trips; this client never retries or cancels mid-flight, a failed call
// leaves local state untouched.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpc:   &http.Client{Timeout: timeout},
	}
}

func (c *Client) ListTrips(ctx context.Context) ([]domain.Trip, error) {
	var trips []domain.Trip
	if err := c.do(ctx, http.MethodGet, "/trips", nil, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

func (c *Client) CreateTrip(ctx context.Context, payload TripPayload) (*domain.Trip, error) {
	var trip domain.Trip
	if err := c.do(ctx, http.MethodPost, "/trips", payload, &trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

func (c *Client) UpdateTrip(ctx context.Context, id string, payload TripPayload) (*domain.Trip, error) {
	var trip domain.Trip
	if err := c.do(ctx, http.MethodPut, "/trips/"+id, payload, &trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

func (c *Client) StartTrip(ctx context.Context, id string) (*domain.Trip, error) {
	return c.transition(ctx, id, "start")
}

func (c *Client) CompleteTrip(ctx context.Context, id string) (*domain.Trip, error) {
	return c.transition(ctx, id, "complete")
}

// CancelTrip backs both the cancel and the delete actions; the service
// exposes no separate hard-delete endpoint.
func (c *Client) CancelTrip(ctx context.Context, id string) (*domain.Trip, error) {
	return c.transition(ctx, id, "cancel")
}

func (c *Client) transition(ctx context.Context, id, action string) (*domain.Trip, error) {
	var trip domain.Trip
	if err := c.do(ctx, http.MethodPut, "/trips/"+id+"/"+action, nil, &trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("trips api: marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("trips api: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("trips api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &StatusError{Code: resp.StatusCode, Message: apiErr.Error}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("trips api: decode response: %w", err)
		}
	}
	return nil
}
