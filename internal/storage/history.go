// Package storage holds small JSON-file stores under the data directory.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// maxHistory caps the number of lines kept on disk.
const maxHistory = 500

// HistoryEntry is one line typed into the shell.
type HistoryEntry struct {
	Line      string    `json:"line"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryStore keeps shell history in shell_history.json. It satisfies the
// readline history source contract (Write, GetLine, Len, Dump).
type HistoryStore struct {
	mu      sync.Mutex
	dir     string
	entries []HistoryEntry
}

// NewHistoryStore loads the history under dir. A corrupt file starts fresh.
func NewHistoryStore(dir string) *HistoryStore {
	s := &HistoryStore{dir: dir}
	if entries, err := s.readUnsafe(); err == nil {
		s.entries = entries
	}
	return s
}

func (s *HistoryStore) filePath() string {
	return filepath.Join(s.dir, "shell_history.json")
}

// Write appends line and returns the new length. Blank lines and repeats of
// the previous line are not stored.
func (s *HistoryStore) Write(line string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if line == "" || (len(s.entries) > 0 && s.entries[len(s.entries)-1].Line == line) {
		return len(s.entries), nil
	}
	s.entries = append(s.entries, HistoryEntry{Line: line, CreatedAt: time.Now()})
	if len(s.entries) > maxHistory {
		s.entries = s.entries[len(s.entries)-maxHistory:]
	}
	return len(s.entries), s.writeUnsafe(s.entries)
}

// GetLine returns the line at index i, oldest first.
func (s *HistoryStore) GetLine(i int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.entries) {
		return "", fmt.Errorf("history index %d out of range", i)
	}
	return s.entries[i].Line, nil
}

// Len returns the number of stored lines.
func (s *HistoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Dump returns a copy of every entry.
func (s *HistoryStore) Dump() interface{} {
	return s.Recent(maxHistory)
}

// Recent returns the last n entries.
func (s *HistoryStore) Recent(n int) []HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := 0
	if len(s.entries) > n {
		start = len(s.entries) - n
	}
	out := make([]HistoryEntry, len(s.entries)-start)
	copy(out, s.entries[start:])
	return out
}

// Clear removes all entries.
func (s *HistoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	return s.writeUnsafe(nil)
}

func (s *HistoryStore) readUnsafe() ([]HistoryEntry, error) {
	data, err := os.ReadFile(s.filePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	var entries []HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse history: %w", err)
	}
	return entries, nil
}

func (s *HistoryStore) writeUnsafe(entries []HistoryEntry) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	return os.WriteFile(s.filePath(), data, 0o600)
}
