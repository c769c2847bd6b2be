// Package sheets implements the record stores on top of a Google
// spreadsheet. Accounts and profiles share one worksheet (email, username
// and password in columns A-C, profile fields in D-V); daily tracking is
// an append-only second worksheet. Every lookup fetches the whole table
// and scans it linearly, which matches how the upstream system reads.
package sheets

import (
	"context"
	"fmt"
	"strconv"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/vaidyahealth/vaidya-platform/internal/store"
)

// Config holds the spreadsheet coordinates.
type Config struct {
	CredentialsFile string
	SpreadsheetID   string
	ProfileSheet    string
	TrackingSheet   string
}

// Store talks to the Sheets API.
type Store struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	profileSheet  string
	trackingSheet string
}

// New creates a sheet-backed store using service-account credentials.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("sheets: spreadsheet ID is required")
	}
	svc, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}
	profileSheet := cfg.ProfileSheet
	if profileSheet == "" {
		profileSheet = "Sheet1"
	}
	trackingSheet := cfg.TrackingSheet
	if trackingSheet == "" {
		trackingSheet = "DailyTracking"
	}
	return &Store{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		profileSheet:  profileSheet,
		trackingSheet: trackingSheet,
	}, nil
}

// Create appends an account row unless the email already exists.
func (s *Store) Create(ctx context.Context, account store.UserAccount) error {
	rows, err := s.readAll(ctx, s.profileSheet)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if cell(row, 0) == account.Email {
			return store.ErrDuplicateEmail
		}
	}
	values := &sheetsapi.ValueRange{
		Values: [][]interface{}{{account.Email, account.Username, account.Password}},
	}
	_, err = s.svc.Spreadsheets.Values.Append(s.spreadsheetID, s.profileSheet, values).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: append account: %w", err)
	}
	return nil
}

// GetByEmail scans the worksheet for the account row.
func (s *Store) GetByEmail(ctx context.Context, email string) (*store.UserAccount, error) {
	rows, err := s.readAll(ctx, s.profileSheet)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if cell(row, 0) == email {
			return &store.UserAccount{
				Email:    email,
				Username: cell(row, 1),
				Password: cell(row, 2),
			}, nil
		}
	}
	return nil, store.ErrNotFound
}

// Get scans the worksheet for the profile row of the email.
func (s *Store) Get(ctx context.Context, email string) (*store.PatientProfile, error) {
	rows, err := s.readAll(ctx, s.profileSheet)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if cell(row, 0) == email {
			return rowToProfile(row), nil
		}
	}
	return nil, store.ErrNotFound
}

// Save overwrites the profile columns (D-V) of the email's row. The row
// index is recovered by scanning the table; row 1 is the header.
func (s *Store) Save(ctx context.Context, profile store.PatientProfile) error {
	rows, err := s.readAll(ctx, s.profileSheet)
	if err != nil {
		return err
	}
	rowIndex := 0
	for i, row := range rows {
		if cell(row, 0) == profile.Email {
			rowIndex = i + 2 // header row plus 1-based addressing
			break
		}
	}
	if rowIndex == 0 {
		return store.ErrNotFound
	}
	target := fmt.Sprintf("%s!D%d:V%d", s.profileSheet, rowIndex, rowIndex)
	values := &sheetsapi.ValueRange{Values: [][]interface{}{profileToCells(profile)}}
	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, target, values).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: update profile: %w", err)
	}
	return nil
}

// Append adds a tracking row to the tracking worksheet.
func (s *Store) Append(ctx context.Context, entry store.DailyTrackingEntry) error {
	values := &sheetsapi.ValueRange{
		Values: [][]interface{}{{
			entry.Date,
			entry.Email,
			entry.SleepHours,
			entry.WaterIntake,
			entry.ExerciseMinutes,
			entry.Mood,
			entry.StressLevel,
			entry.MealQuality,
			entry.Notes,
		}},
	}
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, s.trackingSheet, values).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: append tracking: %w", err)
	}
	return nil
}

// ListByEmail returns the tracking rows for the email in sheet order.
func (s *Store) ListByEmail(ctx context.Context, email string) ([]store.DailyTrackingEntry, error) {
	rows, err := s.readAll(ctx, s.trackingSheet)
	if err != nil {
		return nil, err
	}
	var out []store.DailyTrackingEntry
	for _, row := range rows {
		if cell(row, 1) != email {
			continue
		}
		out = append(out, store.DailyTrackingEntry{
			Date:            cell(row, 0),
			Email:           email,
			SleepHours:      cellFloat(row, 2),
			WaterIntake:     cellInt(row, 3),
			ExerciseMinutes: cellInt(row, 4),
			Mood:            cell(row, 5),
			StressLevel:     cellInt(row, 6),
			MealQuality:     cellInt(row, 7),
			Notes:           cell(row, 8),
		})
	}
	return out, nil
}

// readAll fetches a worksheet and strips the header row.
func (s *Store) readAll(ctx context.Context, sheet string) ([][]interface{}, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, sheet).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: read %s: %w", sheet, err)
	}
	if len(resp.Values) <= 1 {
		return nil, nil
	}
	return resp.Values[1:], nil
}

func rowToProfile(row []interface{}) *store.PatientProfile {
	return &store.PatientProfile{
		Email:              cell(row, 0),
		Name:               cell(row, 3),
		Gender:             cell(row, 4),
		Age:                cellInt(row, 5),
		BirthDate:          cell(row, 6),
		Disease:            cell(row, 7),
		Allergies:          cell(row, 8),
		BloodGroup:         cell(row, 9),
		HeightCm:           cellInt(row, 10),
		WeightKg:           cellInt(row, 11),
		EmergencyContact:   cell(row, 12),
		PreviousSurgeries:  cell(row, 13),
		CurrentMedications: cell(row, 14),
		FamilyHistory:      cell(row, 15),
		InsuranceDetails:   cell(row, 16),
		RecentLabTests:     cell(row, 17),
		BloodTestResults:   cell(row, 18),
		ImagingReports:     cell(row, 19),
		OtherTestResults:   cell(row, 20),
		LabReportDates:     cell(row, 21),
	}
}

func profileToCells(p store.PatientProfile) []interface{} {
	return []interface{}{
		p.Name,
		p.Gender,
		strconv.Itoa(p.Age),
		p.BirthDate,
		p.Disease,
		p.Allergies,
		p.BloodGroup,
		strconv.Itoa(p.HeightCm),
		strconv.Itoa(p.WeightKg),
		p.EmergencyContact,
		p.PreviousSurgeries,
		p.CurrentMedications,
		p.FamilyHistory,
		p.InsuranceDetails,
		p.RecentLabTests,
		p.BloodTestResults,
		p.ImagingReports,
		p.OtherTestResults,
		p.LabReportDates,
	}
}

func cell(row []interface{}, i int) string {
	if i >= len(row) {
		return ""
	}
	if s, ok := row[i].(string); ok {
		return s
	}
	return fmt.Sprintf("%v", row[i])
}

func cellInt(row []interface{}, i int) int {
	v, _ := strconv.Atoi(cell(row, i))
	return v
}

func cellFloat(row []interface{}, i int) float64 {
	v, _ := strconv.ParseFloat(cell(row, i), 64)
	return v
}
