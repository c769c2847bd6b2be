package store

import (
	"context"
	"errors"
)

// ErrNotFound indicates no record matched the lookup email.
var ErrNotFound = errors.New("store: record not found")

// ErrDuplicateEmail indicates a registration attempt for an existing email.
var ErrDuplicateEmail = errors.New("store: email already registered")

// UserAccount is one row of the account table. Email is the lookup key.
// Passwords are stored exactly as supplied; the upstream system keeps
// them in plaintext and this port preserves that data shape.
type UserAccount struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"-"`
}

// PatientProfile is one row of the patient table, keyed by the same email
// as the account. Saves overwrite the whole row; callers are expected to
// round-trip any fields they did not collect.
type PatientProfile struct {
	Email             string `json:"email"`
	Name              string `json:"name"`
	Gender            string `json:"gender"`
	Age               int    `json:"age"`
	BirthDate         string `json:"birth_date"`
	Disease           string `json:"disease"`
	Allergies         string `json:"allergies"`
	BloodGroup        string `json:"blood_group"`
	HeightCm          int    `json:"height_cm"`
	WeightKg          int    `json:"weight_kg"`
	EmergencyContact  string `json:"emergency_contact"`
	PreviousSurgeries string `json:"previous_surgeries"`
	CurrentMedications string `json:"current_medications"`
	FamilyHistory     string `json:"family_history"`
	InsuranceDetails  string `json:"insurance_details"`
	RecentLabTests    string `json:"recent_lab_tests"`
	BloodTestResults  string `json:"blood_test_results"`
	ImagingReports    string `json:"imaging_reports"`
	OtherTestResults  string `json:"other_test_results"`
	LabReportDates    string `json:"lab_report_dates"`
}

// DailyTrackingEntry is one appended row of the daily tracking log.
// There is no uniqueness constraint on (Email, Date); multiple entries
// per day are kept as-is.
type DailyTrackingEntry struct {
	Date            string  `json:"date"`
	Email           string  `json:"email"`
	SleepHours      float64 `json:"sleep_hours"`
	WaterIntake     int     `json:"water_intake"`
	ExerciseMinutes int     `json:"exercise_minutes"`
	Mood            string  `json:"mood"`
	StressLevel     int     `json:"stress_level"`
	MealQuality     int     `json:"meal_quality"`
	Notes           string  `json:"notes"`
}

// Accounts is the user account table.
type Accounts interface {
	Create(ctx context.Context, account UserAccount) error
	GetByEmail(ctx context.Context, email string) (*UserAccount, error)
}

// Profiles is the patient profile table.
type Profiles interface {
	Get(ctx context.Context, email string) (*PatientProfile, error)
	Save(ctx context.Context, profile PatientProfile) error
}

// Tracking is the append-only daily tracking log.
type Tracking interface {
	Append(ctx context.Context, entry DailyTrackingEntry) error
	ListByEmail(ctx context.Context, email string) ([]DailyTrackingEntry, error)
}
