package hospitals

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaidyahealth/vaidya-platform/pkg/logging"
)

type fakeFinder struct {
	lat, lng   float64
	geocodeErr error
	places     []Place
	nearbyErr  error
}

func (f *fakeFinder) Geocode(ctx context.Context, place string) (float64, float64, error) {
	if f.geocodeErr != nil {
		return 0, 0, f.geocodeErr
	}
	return f.lat, f.lng, nil
}

func (f *fakeFinder) NearbyHospitals(ctx context.Context, lat, lng float64) ([]Place, error) {
	if f.nearbyErr != nil {
		return nil, f.nearbyErr
	}
	return f.places, nil
}

func searchRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/hospitals/search", strings.NewReader(body))
}

func TestSearchSortsByDistance(t *testing.T) {
	finder := &fakeFinder{
		lat: 19.0, lng: 72.0,
		places: []Place{
			{Name: "Far Hospital", Lat: 19.5, Lng: 72.5, PlaceID: "far"},
			{Name: "Near Hospital", Lat: 19.01, Lng: 72.01, PlaceID: "near", Phone: "022 1111"},
		},
	}
	h := NewHandler(finder, logging.Default())

	w := httptest.NewRecorder()
	h.Search(w, searchRequest(`{"place":"Mumbai"}`))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp SearchResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Hospitals, 2)
	assert.Equal(t, "Near Hospital", resp.Hospitals[0].Name)
	assert.Equal(t, "Far Hospital", resp.Hospitals[1].Name)
	assert.Less(t, resp.Hospitals[0].DistanceKm, resp.Hospitals[1].DistanceKm)
	assert.Contains(t, resp.Hospitals[0].MapsURL, "google.com/maps/search")
	assert.Equal(t, 19.0, resp.Latitude)
}

func TestSearchGeocodeFailure(t *testing.T) {
	h := NewHandler(&fakeFinder{geocodeErr: ErrGeocodeFailed}, logging.Default())

	w := httptest.NewRecorder()
	h.Search(w, searchRequest(`{"place":"Atlantis"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "geocoding failed")
}

func TestSearchNoResults(t *testing.T) {
	h := NewHandler(&fakeFinder{lat: 1, lng: 1}, logging.Default())

	w := httptest.NewRecorder()
	h.Search(w, searchRequest(`{"place":"Remote Village"}`))
	require.Equal(t, http.StatusOK, w.Code)

	var resp SearchResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Empty(t, resp.Hospitals)
	assert.Equal(t, "No hospitals found.", resp.Message)
}

func TestSearchWithoutFinder(t *testing.T) {
	h := NewHandler(nil, logging.Default())

	w := httptest.NewRecorder()
	h.Search(w, searchRequest(`{"place":"Pilani"}`))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "not configured")
}

func TestSearchMissingPlace(t *testing.T) {
	h := NewHandler(&fakeFinder{}, logging.Default())

	w := httptest.NewRecorder()
	h.Search(w, searchRequest(`{}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
