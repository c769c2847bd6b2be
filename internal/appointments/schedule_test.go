package appointments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTimeSlotsEndExclusive(t *testing.T) {
	slots, err := GenerateTimeSlots("09:00", "13:00", 30*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"09:00", "09:30", "10:00", "10:30",
		"11:00", "11:30", "12:00", "12:30",
	}, slots)
}

func TestGenerateTimeSlotsDermatologistWindow(t *testing.T) {
	slots, err := GenerateTimeSlots("14:00", "19:00", 30*time.Minute)
	require.NoError(t, err)
	require.Len(t, slots, 10)
	assert.Equal(t, "14:00", slots[0])
	assert.Equal(t, "18:30", slots[len(slots)-1])
}

func TestGenerateTimeSlotsBadInput(t *testing.T) {
	_, err := GenerateTimeSlots("2pm", "19:00", 30*time.Minute)
	assert.Error(t, err)
}

func TestSlotsForDoctor(t *testing.T) {
	slots, ok := SlotsForDoctor("Cardiologist")
	require.True(t, ok)
	assert.Equal(t, "10:00", slots[0])
	assert.Equal(t, "14:30", slots[len(slots)-1])

	_, ok = SlotsForDoctor("Astrologist")
	assert.False(t, ok)
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		code string
		in   string
		want string
	}{
		{"+91", "9876543210", "+919876543210"},
		{"+91", "98765 43210", "+919876543210"},
		{"+91", "98765-43210", "+919876543210"},
		{"+91", "+91 98765 43210", "+919876543210"},
		{"+91", "0 98765 43210", "+919876543210"},
		{"+1", "555-012-3456", "+15550123456"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizePhone(tc.code, tc.in), "input %q", tc.in)
	}
}
