package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/voyago/tripengine/internal/domain"
)

// CatalogClient reads the destination catalog (countries, cities, activities,
// provider packages). The catalog is consumed strictly read-only.
type CatalogClient struct {
	baseURL string
	httpc   *http.Client
}

func NewCatalogClient(baseURL string, timeout time.Duration) *CatalogClient {
	return &CatalogClient{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
	}
}

func (c *CatalogClient) Cities(ctx context.Context) ([]domain.City, error) {
	var cities []domain.City
	if err := c.get(ctx, "/cities", &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

func (c *CatalogClient) Activities(ctx context.Context, cityID string) ([]domain.Activity, error) {
	var activities []domain.Activity
	if err := c.get(ctx, "/cities/"+cityID+"/activities", &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

func (c *CatalogClient) PackageByID(ctx context.Context, id string) (*domain.PackageTrip, error) {
	var pkg domain.PackageTrip
	if err := c.get(ctx, "/packages/"+id, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (c *CatalogClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("catalog api: build request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("catalog api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &StatusError{Code: resp.StatusCode, Message: apiErr.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("catalog api: decode response: %w", err)
	}
	return nil
}
