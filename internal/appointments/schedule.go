package appointments

import (
	"fmt"
	"sort"
	"time"
)

// doctorSchedules maps each doctor to their consulting window. Slots are
// generated in 30-minute steps and the window end is exclusive.
var doctorSchedules = map[string]struct {
	Start string
	End   string
}{
	"Dermatologist": {Start: "14:00", End: "19:00"},
	"Cardiologist":  {Start: "10:00", End: "15:00"},
	"Pediatrician":  {Start: "09:00", End: "13:00"},
}

// Doctors returns the known doctor names in stable order.
func Doctors() []string {
	names := make([]string, 0, len(doctorSchedules))
	for name := range doctorSchedules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GenerateTimeSlots returns "HH:MM" slots from start up to but not
// including end, stepping by interval.
func GenerateTimeSlots(start, end string, interval time.Duration) ([]string, error) {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return nil, fmt.Errorf("appointments: parse start %q: %w", start, err)
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return nil, fmt.Errorf("appointments: parse end %q: %w", end, err)
	}

	var slots []string
	for t := s; t.Before(e); t = t.Add(interval) {
		slots = append(slots, t.Format("15:04"))
	}
	return slots, nil
}

// addThirtyMinutes returns the RFC 3339 timestamp thirty minutes after
// start, preserving the UTC offset.
func addThirtyMinutes(start string) (string, error) {
	t, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return "", fmt.Errorf("appointments: parse event start %q: %w", start, err)
	}
	return t.Add(30 * time.Minute).Format(time.RFC3339), nil
}

// SlotsForDoctor returns the bookable slots for a doctor, or false when
// the doctor is unknown.
func SlotsForDoctor(doctor string) ([]string, bool) {
	sched, ok := doctorSchedules[doctor]
	if !ok {
		return nil, false
	}
	slots, err := GenerateTimeSlots(sched.Start, sched.End, 30*time.Minute)
	if err != nil {
		return nil, false
	}
	return slots, true
}
