package queue

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// Store manages queue persistence backed by a flat text file.
type Store struct {
	path string
	lock *flock.Flock
}

// Open prepares a store for the given queue file. The file itself is created
// lazily on the first Add; opening an absent queue is not an error.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("queue path required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve queue path: %w", err)
	}
	return &Store{
		path: abs,
		lock: flock.New(abs + ".lock"),
	}, nil
}

// Path reports the queue file location.
func (s *Store) Path() string {
	return s.path
}

// Add appends an entry to the tail of the queue.
func (s *Store) Add(entry Entry) error {
	if strings.TrimSpace(entry.URL) == "" {
		return errors.New("entry url required")
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock queue: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open queue: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString(entry.Line() + "\n"); err != nil {
		return fmt.Errorf("append queue entry: %w", err)
	}
	return nil
}

// Pop removes and returns the oldest entry. It fails with ErrEmpty when the
// file is absent or holds no entries, and with ErrFormat when the head line
// is malformed (the line is left in place so the operator can inspect it).
func (s *Store) Pop() (Entry, error) {
	if err := s.lock.Lock(); err != nil {
		return Entry{}, fmt.Errorf("lock queue: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	lines, err := s.readLines()
	if err != nil {
		return Entry{}, err
	}
	if len(lines) == 0 {
		return Entry{}, ErrEmpty
	}

	entry, err := ParseLine(lines[0])
	if err != nil {
		return Entry{}, err
	}

	if err := s.writeLines(lines[1:]); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// List returns every pending entry in FIFO order without removing anything.
func (s *Store) List() ([]Entry, error) {
	if err := s.lock.Lock(); err != nil {
		return nil, fmt.Errorf("lock queue: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	lines, err := s.readLines()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		entry, err := ParseLine(line)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Clear removes every pending entry and reports how many were dropped.
func (s *Store) Clear() (int, error) {
	if err := s.lock.Lock(); err != nil {
		return 0, fmt.Errorf("lock queue: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	lines, err := s.readLines()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}
	if err := s.writeLines(nil); err != nil {
		return 0, err
	}
	return len(lines), nil
}

func (s *Store) readLines() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read queue: %w", err)
	}
	raw := strings.Split(string(data), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// writeLines rewrites the queue wholesale through a temp file and rename so
// a crash mid-write never leaves a truncated queue behind.
func (s *Store) writeLines(lines []string) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create queue temp file: %w", err)
	}
	tmpPath := tmp.Name()

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if _, err := tmp.WriteString(b.String()); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write queue: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close queue temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace queue: %w", err)
	}
	return nil
}
