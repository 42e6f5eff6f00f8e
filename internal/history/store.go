package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/jmherd/daily-briefing/internal/model"
)

const maxEntriesPerProfile = 30

// Store persists completed briefings in a single JSON file shared by all
// profiles: a map from profile name to entries, one per calendar day.
// Concurrent writers race and the last one wins; acceptable for the
// single-user usage this is built for.
type Store struct {
	path string
	now  func() time.Time
}

func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Append records a completed briefing under today's date, replacing any
// entry already written today and keeping only the newest 30 entries.
// The returned error is for logging only; briefing display never depends
// on a history write succeeding.
func (s *Store) Append(profileName string, result model.BriefingResult) error {
	history, err := s.read()
	if err != nil {
		return err
	}

	today := s.now().Format(time.DateOnly)

	entries := make([]model.HistoryEntry, 0, len(history[profileName])+1)
	for _, e := range history[profileName] {
		if e.Date != today {
			entries = append(entries, e)
		}
	}

	entries = append(entries, model.HistoryEntry{
		Date:        today,
		GeneratedAt: result.GeneratedAt,
		Briefing:    result.Briefing,
	})

	if len(entries) > maxEntriesPerProfile {
		entries = entries[len(entries)-maxEntriesPerProfile:]
	}

	history[profileName] = entries
	return s.write(history)
}

// Load returns the profile's entries sorted newest first. A missing file,
// missing profile, or unreadable file all yield an empty slice.
func (s *Store) Load(profileName string) []model.HistoryEntry {
	history, err := s.read()
	if err != nil {
		return []model.HistoryEntry{}
	}

	entries := history[profileName]
	if entries == nil {
		return []model.HistoryEntry{}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})

	return entries
}

func (s *Store) read() (map[string][]model.HistoryEntry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string][]model.HistoryEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("history read: %w", err)
	}

	var history map[string][]model.HistoryEntry
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("history decode: %w", err)
	}
	if history == nil {
		history = map[string][]model.HistoryEntry{}
	}

	return history, nil
}

func (s *Store) write(history map[string][]model.HistoryEntry) error {
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("history encode: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("history write: %w", err)
	}

	return nil
}
