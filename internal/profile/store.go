package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jmherd/daily-briefing/internal/model"
)

// Store manages user profiles in a single JSON file keyed by profile name.
// Edit the file directly or drive it through the API's profile endpoints.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads all profiles. A missing file means no profiles yet.
func (s *Store) Load() (map[string]model.Profile, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]model.Profile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("profiles read: %w", err)
	}

	var profiles map[string]model.Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("profiles decode: %w", err)
	}
	if profiles == nil {
		profiles = map[string]model.Profile{}
	}

	return profiles, nil
}

// Get returns one profile by name.
func (s *Store) Get(name string) (*model.Profile, error) {
	profiles, err := s.Load()
	if err != nil {
		return nil, err
	}

	p, ok := profiles[name]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// Save writes all profiles back to disk.
func (s *Store) Save(profiles map[string]model.Profile) error {
	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("profiles encode: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("profiles write: %w", err)
	}

	return nil
}
