// Package postgres implements the record stores on pgx. It is the
// alternative backend to the spreadsheet, selected when DATABASE_URL is
// configured. Schema lives in migrations/.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vaidyahealth/vaidya-platform/internal/store"
)

// db is the subset of pgxpool.Pool the store needs; pgxmock satisfies it.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store is a Postgres-backed record store.
type Store struct {
	db db
}

// New initializes the store over a pgx pool.
func New(db db) *Store {
	if db == nil {
		panic("postgres: db required")
	}
	return &Store{db: db}
}

// Create inserts an account row; a unique violation maps to ErrDuplicateEmail.
func (s *Store) Create(ctx context.Context, account store.UserAccount) error {
	query := `
		INSERT INTO accounts (email, username, password)
		VALUES ($1, $2, $3)
	`
	if _, err := s.db.Exec(ctx, query, account.Email, account.Username, account.Password); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return store.ErrDuplicateEmail
		}
		return fmt.Errorf("postgres: insert account: %w", err)
	}
	return nil
}

// GetByEmail fetches an account row.
func (s *Store) GetByEmail(ctx context.Context, email string) (*store.UserAccount, error) {
	query := `
		SELECT email, username, password
		FROM accounts
		WHERE email = $1
	`
	var account store.UserAccount
	err := s.db.QueryRow(ctx, query, email).Scan(&account.Email, &account.Username, &account.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("postgres: select account: %w", err)
	}
	return &account, nil
}

// Get fetches the profile row for the email.
func (s *Store) Get(ctx context.Context, email string) (*store.PatientProfile, error) {
	query := `
		SELECT email, name, gender, age, birth_date, disease, allergies,
		       blood_group, height_cm, weight_kg, emergency_contact,
		       previous_surgeries, current_medications, family_history,
		       insurance_details, recent_lab_tests, blood_test_results,
		       imaging_reports, other_test_results, lab_report_dates
		FROM patient_profiles
		WHERE email = $1
	`
	var p store.PatientProfile
	err := s.db.QueryRow(ctx, query, email).Scan(
		&p.Email,
		&p.Name,
		&p.Gender,
		&p.Age,
		&p.BirthDate,
		&p.Disease,
		&p.Allergies,
		&p.BloodGroup,
		&p.HeightCm,
		&p.WeightKg,
		&p.EmergencyContact,
		&p.PreviousSurgeries,
		&p.CurrentMedications,
		&p.FamilyHistory,
		&p.InsuranceDetails,
		&p.RecentLabTests,
		&p.BloodTestResults,
		&p.ImagingReports,
		&p.OtherTestResults,
		&p.LabReportDates,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("postgres: select profile: %w", err)
	}
	return &p, nil
}

// Save upserts the full profile row, overwriting every field.
func (s *Store) Save(ctx context.Context, p store.PatientProfile) error {
	query := `
		INSERT INTO patient_profiles (
			email, name, gender, age, birth_date, disease, allergies,
			blood_group, height_cm, weight_kg, emergency_contact,
			previous_surgeries, current_medications, family_history,
			insurance_details, recent_lab_tests, blood_test_results,
			imaging_reports, other_test_results, lab_report_dates
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		ON CONFLICT (email) DO UPDATE SET
			name = EXCLUDED.name,
			gender = EXCLUDED.gender,
			age = EXCLUDED.age,
			birth_date = EXCLUDED.birth_date,
			disease = EXCLUDED.disease,
			allergies = EXCLUDED.allergies,
			blood_group = EXCLUDED.blood_group,
			height_cm = EXCLUDED.height_cm,
			weight_kg = EXCLUDED.weight_kg,
			emergency_contact = EXCLUDED.emergency_contact,
			previous_surgeries = EXCLUDED.previous_surgeries,
			current_medications = EXCLUDED.current_medications,
			family_history = EXCLUDED.family_history,
			insurance_details = EXCLUDED.insurance_details,
			recent_lab_tests = EXCLUDED.recent_lab_tests,
			blood_test_results = EXCLUDED.blood_test_results,
			imaging_reports = EXCLUDED.imaging_reports,
			other_test_results = EXCLUDED.other_test_results,
			lab_report_dates = EXCLUDED.lab_report_dates
	`
	_, err := s.db.Exec(ctx, query,
		p.Email, p.Name, p.Gender, p.Age, p.BirthDate, p.Disease, p.Allergies,
		p.BloodGroup, p.HeightCm, p.WeightKg, p.EmergencyContact,
		p.PreviousSurgeries, p.CurrentMedications, p.FamilyHistory,
		p.InsuranceDetails, p.RecentLabTests, p.BloodTestResults,
		p.ImagingReports, p.OtherTestResults, p.LabReportDates,
	)
	if err != nil {
		return fmt.Errorf("postgres: upsert profile: %w", err)
	}
	return nil
}

// Append inserts a tracking row. The table has no uniqueness constraint
// on (email, date); duplicate submissions produce duplicate rows.
func (s *Store) Append(ctx context.Context, e store.DailyTrackingEntry) error {
	query := `
		INSERT INTO daily_tracking (
			date, email, sleep_hours, water_intake, exercise_minutes,
			mood, stress_level, meal_quality, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.Exec(ctx, query,
		e.Date, e.Email, e.SleepHours, e.WaterIntake, e.ExerciseMinutes,
		e.Mood, e.StressLevel, e.MealQuality, e.Notes,
	)
	if err != nil {
		return fmt.Errorf("postgres: insert tracking: %w", err)
	}
	return nil
}

// ListByEmail returns the tracking rows for the email, oldest first.
func (s *Store) ListByEmail(ctx context.Context, email string) ([]store.DailyTrackingEntry, error) {
	query := `
		SELECT date, email, sleep_hours, water_intake, exercise_minutes,
		       mood, stress_level, meal_quality, notes
		FROM daily_tracking
		WHERE email = $1
		ORDER BY id
	`
	rows, err := s.db.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("postgres: select tracking: %w", err)
	}
	defer rows.Close()

	var out []store.DailyTrackingEntry
	for rows.Next() {
		var e store.DailyTrackingEntry
		if err := rows.Scan(
			&e.Date, &e.Email, &e.SleepHours, &e.WaterIntake, &e.ExerciseMinutes,
			&e.Mood, &e.StressLevel, &e.MealQuality, &e.Notes,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan tracking: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate tracking: %w", err)
	}
	return out, nil
}
