// Package profile renders and saves the patient profile page. Saves
// overwrite the whole stored row: the half of the form the user did not
// touch (personal vs lab) is round-tripped from the existing values.
package profile

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vaidyahealth/vaidya-platform/internal/session"
	"github.com/vaidyahealth/vaidya-platform/internal/store"
	"github.com/vaidyahealth/vaidya-platform/pkg/logging"
)

// Handler handles HTTP requests for patient profiles.
type Handler struct {
	profiles store.Profiles
	logger   *logging.Logger
}

// NewHandler creates a new profile handler.
func NewHandler(profiles store.Profiles, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{profiles: profiles, logger: logger}
}

// Get handles GET /profile.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())

	p, err := h.profiles.Get(r.Context(), sess.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "profile not found")
			return
		}
		h.logger.Error("failed to fetch profile", "error", err, "email", sess.Email)
		writeError(w, http.StatusBadGateway, "error fetching details")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// PersonalInfoRequest is the body of PUT /profile/personal.
type PersonalInfoRequest struct {
	Name               string `json:"name"`
	Gender             string `json:"gender"`
	Age                int    `json:"age"`
	BirthDate          string `json:"birth_date"`
	Disease            string `json:"disease"`
	Allergies          string `json:"allergies"`
	BloodGroup         string `json:"blood_group"`
	HeightCm           int    `json:"height_cm"`
	WeightKg           int    `json:"weight_kg"`
	EmergencyContact   string `json:"emergency_contact"`
	PreviousSurgeries  string `json:"previous_surgeries"`
	CurrentMedications string `json:"current_medications"`
	FamilyHistory      string `json:"family_history"`
	InsuranceDetails   string `json:"insurance_details"`
}

// SavePersonal handles PUT /profile/personal, keeping stored lab fields.
func (h *Handler) SavePersonal(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())

	var req PersonalInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Gender == "" || req.Age == 0 {
		writeError(w, http.StatusBadRequest, "name, gender and age are required")
		return
	}

	existing, err := h.profiles.Get(r.Context(), sess.Email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		h.logger.Error("failed to fetch profile", "error", err, "email", sess.Email)
		writeError(w, http.StatusBadGateway, "error updating details")
		return
	}
	if existing == nil {
		existing = &store.PatientProfile{Email: sess.Email}
	}

	updated := store.PatientProfile{
		Email:              sess.Email,
		Name:               req.Name,
		Gender:             req.Gender,
		Age:                req.Age,
		BirthDate:          req.BirthDate,
		Disease:            req.Disease,
		Allergies:          req.Allergies,
		BloodGroup:         req.BloodGroup,
		HeightCm:           req.HeightCm,
		WeightKg:           req.WeightKg,
		EmergencyContact:   req.EmergencyContact,
		PreviousSurgeries:  req.PreviousSurgeries,
		CurrentMedications: req.CurrentMedications,
		FamilyHistory:      req.FamilyHistory,
		InsuranceDetails:   req.InsuranceDetails,
		// Lab fields round-trip untouched.
		RecentLabTests:   existing.RecentLabTests,
		BloodTestResults: existing.BloodTestResults,
		ImagingReports:   existing.ImagingReports,
		OtherTestResults: existing.OtherTestResults,
		LabReportDates:   existing.LabReportDates,
	}

	if err := h.profiles.Save(r.Context(), updated); err != nil {
		h.logger.Error("failed to save profile", "error", err, "email", sess.Email)
		writeError(w, http.StatusBadGateway, "error updating details")
		return
	}

	h.logger.Info("profile personal info saved", "email", sess.Email)
	writeJSON(w, http.StatusOK, map[string]string{"message": "details updated successfully"})
}

// LabReportsRequest is the body of PUT /profile/labs.
type LabReportsRequest struct {
	RecentLabTests   string `json:"recent_lab_tests"`
	BloodTestResults string `json:"blood_test_results"`
	ImagingReports   string `json:"imaging_reports"`
	OtherTestResults string `json:"other_test_results"`
	LabReportDates   string `json:"lab_report_dates"`
}

// SaveLabs handles PUT /profile/labs, keeping stored personal fields.
func (h *Handler) SaveLabs(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())

	var req LabReportsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	existing, err := h.profiles.Get(r.Context(), sess.Email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		h.logger.Error("failed to fetch profile", "error", err, "email", sess.Email)
		writeError(w, http.StatusBadGateway, "error updating details")
		return
	}
	if existing == nil {
		existing = &store.PatientProfile{Email: sess.Email}
	}

	updated := *existing
	updated.Email = sess.Email
	updated.RecentLabTests = req.RecentLabTests
	updated.BloodTestResults = req.BloodTestResults
	updated.ImagingReports = req.ImagingReports
	updated.OtherTestResults = req.OtherTestResults
	updated.LabReportDates = req.LabReportDates

	if err := h.profiles.Save(r.Context(), updated); err != nil {
		h.logger.Error("failed to save profile", "error", err, "email", sess.Email)
		writeError(w, http.StatusBadGateway, "error updating details")
		return
	}

	h.logger.Info("profile lab reports saved", "email", sess.Email)
	writeJSON(w, http.StatusOK, map[string]string{"message": "details updated successfully"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
