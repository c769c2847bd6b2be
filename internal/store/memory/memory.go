// Package memory provides in-memory record stores for local development
// and tests. Lookups mirror the remote backends: a linear scan by email.
package memory

import (
	"context"
	"sync"

	"github.com/vaidyahealth/vaidya-platform/internal/store"
)

// Store keeps all three tables in process memory.
type Store struct {
	mu       sync.RWMutex
	accounts []store.UserAccount
	profiles []store.PatientProfile
	tracking []store.DailyTrackingEntry
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{}
}

// Create appends a new account row after checking for a duplicate email.
func (s *Store) Create(ctx context.Context, account store.UserAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Email == account.Email {
			return store.ErrDuplicateEmail
		}
	}
	s.accounts = append(s.accounts, account)
	return nil
}

// GetByEmail scans the account table for an exact email match.
func (s *Store) GetByEmail(ctx context.Context, email string) (*store.UserAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.accounts {
		if a.Email == email {
			found := a
			return &found, nil
		}
	}
	return nil, store.ErrNotFound
}

// Get scans the profile table for an exact email match.
func (s *Store) Get(ctx context.Context, email string) (*store.PatientProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.profiles {
		if p.Email == email {
			found := p
			return &found, nil
		}
	}
	return nil, store.ErrNotFound
}

// Save overwrites the profile row for the email, creating it on first save.
func (s *Store) Save(ctx context.Context, profile store.PatientProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.profiles {
		if p.Email == profile.Email {
			s.profiles[i] = profile
			return nil
		}
	}
	s.profiles = append(s.profiles, profile)
	return nil
}

// Append adds a tracking row. No deduplication on (Email, Date).
func (s *Store) Append(ctx context.Context, entry store.DailyTrackingEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracking = append(s.tracking, entry)
	return nil
}

// ListByEmail returns all tracking rows for the email in insertion order.
func (s *Store) ListByEmail(ctx context.Context, email string) ([]store.DailyTrackingEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []store.DailyTrackingEntry
	for _, e := range s.tracking {
		if e.Email == email {
			out = append(out, e)
		}
	}
	return out, nil
}
