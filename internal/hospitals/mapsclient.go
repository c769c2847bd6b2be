package hospitals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vaidyahealth/vaidya-platform/pkg/logging"
)

const defaultMapsBaseURL = "https://maps.googleapis.com/maps/api"

// Place is one nearby-search result with contact details resolved.
type Place struct {
	Name             string
	Address          string
	Rating           float64
	UserRatingsTotal int
	Phone            string
	Lat              float64
	Lng              float64
	PlaceID          string
}

// PlaceFinder geocodes a place name and lists nearby hospitals.
type PlaceFinder interface {
	Geocode(ctx context.Context, place string) (lat, lng float64, err error)
	NearbyHospitals(ctx context.Context, lat, lng float64) ([]Place, error)
}

// ErrGeocodeFailed indicates the place name could not be resolved.
var ErrGeocodeFailed = errors.New("hospitals: geocoding failed")

// MapsConfig controls the Google Maps client.
type MapsConfig struct {
	BaseURL      string
	APIKey       string
	SearchRadius int // meters
	Timeout      time.Duration
	HTTPClient   *http.Client
}

// MapsClient calls the Google Maps Geocoding and Places web services.
type MapsClient struct {
	baseURL      string
	apiKey       string
	searchRadius int
	httpClient   *http.Client
	logger       *logging.Logger
}

// NewMapsClient creates a configured MapsClient.
func NewMapsClient(cfg MapsConfig, logger *logging.Logger) (*MapsClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("hospitals: maps API key is required")
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultMapsBaseURL
	}
	radius := cfg.SearchRadius
	if radius <= 0 {
		radius = 5000
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &MapsClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		apiKey:       cfg.APIKey,
		searchRadius: radius,
		httpClient:   httpClient,
		logger:       logger,
	}, nil
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves a place name to coordinates via the Geocoding API.
// The first result wins.
func (c *MapsClient) Geocode(ctx context.Context, place string) (float64, float64, error) {
	q := url.Values{}
	q.Set("address", place)
	q.Set("key", c.apiKey)

	var resp geocodeResponse
	if err := c.getJSON(ctx, "/geocode/json", q, &resp); err != nil {
		return 0, 0, err
	}
	if resp.Status != "OK" || len(resp.Results) == 0 {
		return 0, 0, fmt.Errorf("%w: status %s", ErrGeocodeFailed, resp.Status)
	}
	loc := resp.Results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}

type nearbyResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Name             string  `json:"name"`
		Vicinity         string  `json:"vicinity"`
		Rating           float64 `json:"rating"`
		UserRatingsTotal int     `json:"user_ratings_total"`
		PlaceID          string  `json:"place_id"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

type detailsResponse struct {
	Status string `json:"status"`
	Result struct {
		FormattedPhoneNumber string `json:"formatted_phone_number"`
	} `json:"result"`
}

// NearbyHospitals runs a nearby search around the coordinates and
// resolves each result's phone number with a details lookup.
func (c *MapsClient) NearbyHospitals(ctx context.Context, lat, lng float64) ([]Place, error) {
	q := url.Values{}
	q.Set("location", fmt.Sprintf("%f,%f", lat, lng))
	q.Set("radius", fmt.Sprintf("%d", c.searchRadius))
	q.Set("type", "hospital")
	q.Set("key", c.apiKey)

	var resp nearbyResponse
	if err := c.getJSON(ctx, "/place/nearbysearch/json", q, &resp); err != nil {
		return nil, err
	}

	places := make([]Place, 0, len(resp.Results))
	for _, r := range resp.Results {
		places = append(places, Place{
			Name:             r.Name,
			Address:          r.Vicinity,
			Rating:           r.Rating,
			UserRatingsTotal: r.UserRatingsTotal,
			Phone:            c.contactPhone(ctx, r.PlaceID),
			Lat:              r.Geometry.Location.Lat,
			Lng:              r.Geometry.Location.Lng,
			PlaceID:          r.PlaceID,
		})
	}
	return places, nil
}

// contactPhone looks up the formatted phone number for a place. Missing
// or failed lookups fall back to "N/A".
func (c *MapsClient) contactPhone(ctx context.Context, placeID string) string {
	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("key", c.apiKey)

	var resp detailsResponse
	if err := c.getJSON(ctx, "/place/details/json", q, &resp); err != nil {
		c.logger.Warn("place details lookup failed", "error", err, "place_id", placeID)
		return "N/A"
	}
	if resp.Status != "OK" || resp.Result.FormattedPhoneNumber == "" {
		return "N/A"
	}
	return resp.Result.FormattedPhoneNumber
}

func (c *MapsClient) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	endpoint := c.baseURL + path + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("hospitals: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("hospitals: call maps API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("hospitals: read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("hospitals: maps API status %d", resp.StatusCode)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("hospitals: decode response: %w", err)
	}
	return nil
}
