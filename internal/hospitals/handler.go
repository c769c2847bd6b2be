// Package hospitals locates hospitals near a user-entered place name
// using the Google Maps web services.
package hospitals

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/url"
	"sort"

	"github.com/vaidyahealth/vaidya-platform/pkg/logging"
)

// Handler handles HTTP requests for the hospital locator.
type Handler struct {
	finder PlaceFinder
	logger *logging.Logger
}

// NewHandler creates a new hospitals handler.
func NewHandler(finder PlaceFinder, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{finder: finder, logger: logger}
}

// SearchRequest names the area to search around.
type SearchRequest struct {
	Place string `json:"place"`
}

// Hospital is one locator result.
type Hospital struct {
	Name             string  `json:"name"`
	Address          string  `json:"address"`
	Rating           float64 `json:"rating"`
	UserRatingsTotal int     `json:"user_ratings_total"`
	Phone            string  `json:"phone_number"`
	DistanceKm       float64 `json:"distance_km"`
	PlaceID          string  `json:"place_id"`
	MapsURL          string  `json:"maps_url"`
}

// SearchResponse lists hospitals sorted by distance.
type SearchResponse struct {
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Hospitals []Hospital `json:"hospitals"`
	Message   string     `json:"message,omitempty"`
}

// Search handles POST /hospitals/search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Place == "" {
		writeError(w, http.StatusBadRequest, "please enter a place name")
		return
	}

	if h.finder == nil {
		writeError(w, http.StatusServiceUnavailable, "hospital search is not configured")
		return
	}

	lat, lng, err := h.finder.Geocode(r.Context(), req.Place)
	if err != nil {
		if errors.Is(err, ErrGeocodeFailed) {
			writeError(w, http.StatusBadRequest, "geocoding failed, please check the place name and try again")
			return
		}
		h.logger.Error("geocode failed", "error", err, "place", req.Place)
		writeError(w, http.StatusBadGateway, "error contacting maps service")
		return
	}

	places, err := h.finder.NearbyHospitals(r.Context(), lat, lng)
	if err != nil {
		h.logger.Error("nearby search failed", "error", err, "place", req.Place)
		writeError(w, http.StatusBadGateway, "error contacting maps service")
		return
	}

	hospitals := make([]Hospital, 0, len(places))
	for _, p := range places {
		hospitals = append(hospitals, Hospital{
			Name:             p.Name,
			Address:          p.Address,
			Rating:           p.Rating,
			UserRatingsTotal: p.UserRatingsTotal,
			Phone:            p.Phone,
			DistanceKm:       round2(Haversine(lat, lng, p.Lat, p.Lng)),
			PlaceID:          p.PlaceID,
			MapsURL:          mapsSearchURL(p.Name, p.Address),
		})
	}
	sort.Slice(hospitals, func(i, j int) bool {
		return hospitals[i].DistanceKm < hospitals[j].DistanceKm
	})

	resp := SearchResponse{Latitude: lat, Longitude: lng, Hospitals: hospitals}
	if len(hospitals) == 0 {
		resp.Message = "No hospitals found."
	}
	writeJSON(w, http.StatusOK, resp)
}

func mapsSearchURL(name, address string) string {
	return "https://www.google.com/maps/search/?q=" + url.QueryEscape(name+" "+address)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
