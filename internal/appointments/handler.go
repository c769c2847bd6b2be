// Package appointments books video consultations with a doctor: a slot
// is picked from the doctor's static schedule, a calendar event is
// created and the patient is notified by email and SMS. There is no
// conflict check; two users can book the same slot.
package appointments

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/vaidyahealth/vaidya-platform/internal/notify"
	"github.com/vaidyahealth/vaidya-platform/pkg/logging"
)

// Handler handles HTTP requests for appointment scheduling.
type Handler struct {
	calendar     notify.CalendarService
	email        notify.EmailSender
	sms          notify.SMSSender
	jitsiBaseURL string
	utcOffset    string
	timezone     string
	countryCode  string
	logger       *logging.Logger
}

// Config carries the handler's collaborators and regional settings.
type Config struct {
	Calendar     notify.CalendarService
	Email        notify.EmailSender
	SMS          notify.SMSSender
	JitsiBaseURL string
	UTCOffset    string
	Timezone     string
	CountryCode  string
}

// NewHandler creates a new appointments handler.
func NewHandler(cfg Config, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.JitsiBaseURL == "" {
		cfg.JitsiBaseURL = "https://meet.jit.si"
	}
	if cfg.UTCOffset == "" {
		cfg.UTCOffset = "+05:30"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Asia/Kolkata"
	}
	if cfg.CountryCode == "" {
		cfg.CountryCode = "+91"
	}
	return &Handler{
		calendar:     cfg.Calendar,
		email:        cfg.Email,
		sms:          cfg.SMS,
		jitsiBaseURL: cfg.JitsiBaseURL,
		utcOffset:    cfg.UTCOffset,
		timezone:     cfg.Timezone,
		countryCode:  cfg.CountryCode,
		logger:       logger,
	}
}

// ScheduleRequest is the booking form.
type ScheduleRequest struct {
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Doctor string `json:"doctor"`
	Date   string `json:"date"` // YYYY-MM-DD
	Slot   string `json:"slot"` // HH:MM
}

// ScheduleResponse confirms the booking.
type ScheduleResponse struct {
	Message      string `json:"message"`
	Doctor       string `json:"doctor"`
	Date         string `json:"date"`
	Slot         string `json:"slot"`
	JitsiLink    string `json:"jitsi_link"`
	CalendarLink string `json:"calendar_link,omitempty"`
}

// Schedule handles POST /appointments.
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Phone == "" || req.Doctor == "" || req.Date == "" || req.Slot == "" {
		writeError(w, http.StatusBadRequest, "email, phone, doctor, date and slot are required")
		return
	}
	if _, ok := doctorSchedules[req.Doctor]; !ok {
		writeError(w, http.StatusBadRequest, "unknown doctor")
		return
	}

	jitsiLink := fmt.Sprintf("%s/%s_%s", h.jitsiBaseURL,
		strings.ReplaceAll(req.Doctor, " ", ""),
		strings.ReplaceAll(req.Slot, ":", ""))

	start := fmt.Sprintf("%sT%s:00%s", req.Date, req.Slot, h.utcOffset)
	end, err := addThirtyMinutes(start)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date or slot")
		return
	}

	calendarLink, err := h.calendar.CreateEvent(r.Context(), notify.CalendarEvent{
		Summary:     fmt.Sprintf("Appointment with %s", req.Doctor),
		Description: fmt.Sprintf("Your appointment with %s.", req.Doctor),
		Start:       start,
		End:         end,
		Timezone:    h.timezone,
	})
	if err != nil {
		h.logger.Error("calendar event creation failed", "error", err, "doctor", req.Doctor)
		calendarLink = ""
	}

	if err := h.email.Send(r.Context(), notify.EmailMessage{
		To:      req.Email,
		Subject: fmt.Sprintf("Appointment Confirmation with %s", req.Doctor),
		Body:    confirmationBody(req.Doctor, req.Date, req.Slot, jitsiLink, calendarLink),
	}); err != nil {
		h.logger.Error("confirmation email failed", "error", err, "to", req.Email)
	}

	smsBody := fmt.Sprintf("Appointment with %s on %s at %s. Join the call here: %s",
		req.Doctor, req.Date, req.Slot, jitsiLink)
	if err := h.sms.SendSMS(r.Context(), NormalizePhone(h.countryCode, req.Phone), smsBody); err != nil {
		h.logger.Error("confirmation sms failed", "error", err)
	}

	writeJSON(w, http.StatusCreated, ScheduleResponse{
		Message:      fmt.Sprintf("Appointment Scheduled with %s at %s", req.Doctor, req.Slot),
		Doctor:       req.Doctor,
		Date:         req.Date,
		Slot:         req.Slot,
		JitsiLink:    jitsiLink,
		CalendarLink: calendarLink,
	})
}

// Slots handles GET /appointments/slots?doctor=.
func (h *Handler) Slots(w http.ResponseWriter, r *http.Request) {
	doctor := r.URL.Query().Get("doctor")
	slots, ok := SlotsForDoctor(doctor)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown doctor")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"doctor": doctor, "slots": slots})
}

func confirmationBody(doctor, date, slot, jitsiLink, calendarLink string) string {
	return fmt.Sprintf(`Hello,

Your appointment with %s is confirmed for %s at %s.
Join the video call here: %s

To add this event to your Google Calendar, click here: %s

Thank you for scheduling with us!
`, doctor, date, slot, jitsiLink, calendarLink)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
