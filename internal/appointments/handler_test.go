package appointments

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaidyahealth/vaidya-platform/internal/notify"
	"github.com/vaidyahealth/vaidya-platform/pkg/logging"
)

func newTestHandler() (*Handler, *notify.StubCalendar, *notify.StubEmailSender, *notify.StubSMSSender) {
	cal := notify.NewStubCalendar(logging.Default())
	cal.Link = "https://calendar.google.com/event?eid=abc"
	email := notify.NewStubEmailSender(logging.Default())
	sms := notify.NewStubSMSSender(logging.Default())
	h := NewHandler(Config{Calendar: cal, Email: email, SMS: sms}, logging.Default())
	return h, cal, email, sms
}

func schedule(t *testing.T, h *Handler, req ScheduleRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	h.Schedule(w, httptest.NewRequest(http.MethodPost, "/appointments", bytes.NewReader(body)))
	return w
}

func TestScheduleBooksEventAndNotifies(t *testing.T) {
	h, cal, email, sms := newTestHandler()

	w := schedule(t, h, ScheduleRequest{
		Email:  "amit@example.com",
		Phone:  "98765 43210",
		Doctor: "Cardiologist",
		Date:   "2026-09-01",
		Slot:   "10:30",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp ScheduleResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "https://meet.jit.si/Cardiologist_1030", resp.JitsiLink)
	assert.Equal(t, "https://calendar.google.com/event?eid=abc", resp.CalendarLink)

	require.Len(t, cal.Events, 1)
	event := cal.Events[0]
	assert.Equal(t, "Appointment with Cardiologist", event.Summary)
	assert.Equal(t, "2026-09-01T10:30:00+05:30", event.Start)
	assert.Equal(t, "2026-09-01T11:00:00+05:30", event.End)
	assert.Equal(t, "Asia/Kolkata", event.Timezone)

	require.Len(t, email.Sent, 1)
	assert.Equal(t, "amit@example.com", email.Sent[0].To)
	assert.Contains(t, email.Sent[0].Subject, "Cardiologist")
	assert.Contains(t, email.Sent[0].Body, resp.JitsiLink)
	assert.Contains(t, email.Sent[0].Body, resp.CalendarLink)

	require.Len(t, sms.Sent, 1)
	assert.Equal(t, "+919876543210", sms.Sent[0].To)
	assert.Contains(t, sms.Sent[0].Body, resp.JitsiLink)
}

func TestScheduleDoubleSubmitBooksTwice(t *testing.T) {
	h, cal, email, sms := newTestHandler()

	req := ScheduleRequest{
		Email:  "amit@example.com",
		Phone:  "9876543210",
		Doctor: "Pediatrician",
		Date:   "2026-09-02",
		Slot:   "09:00",
	}
	require.Equal(t, http.StatusCreated, schedule(t, h, req).Code)
	require.Equal(t, http.StatusCreated, schedule(t, h, req).Code)

	// No conflict check or idempotency: everything fires twice.
	assert.Len(t, cal.Events, 2)
	assert.Len(t, email.Sent, 2)
	assert.Len(t, sms.Sent, 2)
}

func TestScheduleRegionalSettings(t *testing.T) {
	cal := notify.NewStubCalendar(logging.Default())
	email := notify.NewStubEmailSender(logging.Default())
	sms := notify.NewStubSMSSender(logging.Default())
	h := NewHandler(Config{
		Calendar:    cal,
		Email:       email,
		SMS:         sms,
		UTCOffset:   "-05:00",
		Timezone:    "America/New_York",
		CountryCode: "+1",
	}, logging.Default())

	w := schedule(t, h, ScheduleRequest{
		Email:  "amit@example.com",
		Phone:  "555-012-3456",
		Doctor: "Cardiologist",
		Date:   "2026-09-01",
		Slot:   "10:30",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	require.Len(t, cal.Events, 1)
	assert.Equal(t, "2026-09-01T10:30:00-05:00", cal.Events[0].Start)
	assert.Equal(t, "America/New_York", cal.Events[0].Timezone)

	require.Len(t, sms.Sent, 1)
	assert.Equal(t, "+15550123456", sms.Sent[0].To)
}

func TestScheduleValidation(t *testing.T) {
	h, cal, email, sms := newTestHandler()

	w := schedule(t, h, ScheduleRequest{Email: "amit@example.com", Doctor: "Cardiologist"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = schedule(t, h, ScheduleRequest{
		Email: "a@b.c", Phone: "9876543210",
		Doctor: "Astrologist", Date: "2026-09-01", Slot: "10:00",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown doctor")

	assert.Empty(t, cal.Events)
	assert.Empty(t, email.Sent)
	assert.Empty(t, sms.Sent)
}

func TestScheduleCalendarFailureStillNotifies(t *testing.T) {
	h, cal, email, sms := newTestHandler()
	cal.Err = assert.AnError

	w := schedule(t, h, ScheduleRequest{
		Email:  "amit@example.com",
		Phone:  "9876543210",
		Doctor: "Dermatologist",
		Date:   "2026-09-03",
		Slot:   "14:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp ScheduleResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Empty(t, resp.CalendarLink)
	assert.Len(t, email.Sent, 1)
	assert.Len(t, sms.Sent, 1)
}

func TestSlotsEndpoint(t *testing.T) {
	h, _, _, _ := newTestHandler()

	w := httptest.NewRecorder()
	h.Slots(w, httptest.NewRequest(http.MethodGet, "/appointments/slots?doctor=Pediatrician", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Doctor string   `json:"doctor"`
		Slots  []string `json:"slots"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "Pediatrician", resp.Doctor)
	assert.Equal(t, []string{
		"09:00", "09:30", "10:00", "10:30",
		"11:00", "11:30", "12:00", "12:30",
	}, resp.Slots)

	w = httptest.NewRecorder()
	h.Slots(w, httptest.NewRequest(http.MethodGet, "/appointments/slots?doctor=Nobody", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
