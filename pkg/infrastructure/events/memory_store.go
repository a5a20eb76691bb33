package events

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// defaultCapacity bounds the in-memory ring buffer. Oldest entries are
// dropped once the buffer is full; the JSONL file, if configured, keeps
// entries beyond that bound, subject to lumberjack's rotation and
// retention limits set in NewMemorySinkWithFile.
const defaultCapacity = 1000

// MemorySink is a mutex-protected, bounded, optionally file-persisted
// Sink implementation.
type MemorySink struct {
	mu        sync.RWMutex
	entries   []Entry
	capacity  int
	observers []Observer
	file      *lumberjack.Logger
}

// NewMemorySink creates a MemorySink with the default capacity and no file
// persistence.
func NewMemorySink() *MemorySink {
	return &MemorySink{capacity: defaultCapacity}
}

// NewMemorySinkWithFile creates a MemorySink that also appends every
// recorded entry as a JSONL line to path, rotated via lumberjack.
func NewMemorySinkWithFile(path string) *MemorySink {
	return &MemorySink{
		capacity: defaultCapacity,
		file: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    50,
			MaxBackups: 5,
			MaxAge:     28,
		},
	}
}

// AddObserver registers an observer to receive synchronous notifications.
func (s *MemorySink) AddObserver(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Record appends entry to the ring buffer, persists it to the JSONL file
// if configured (write failures are logged and swallowed — the audit log
// is best-effort on disk, authoritative in memory for the session), and
// notifies observers synchronously.
func (s *MemorySink) Record(entry Entry) error {
	s.mu.Lock()
	s.entries = append(s.entries, entry)
	if len(s.entries) > s.capacity {
		s.entries = s.entries[len(s.entries)-s.capacity:]
	}
	observers := append([]Observer(nil), s.observers...)
	s.mu.Unlock()

	if s.file != nil {
		if err := s.appendToFile(entry); err != nil {
			log.Warn().Err(err).Str("eventType", string(entry.EventType)).Msg("audit entry file persistence failed")
		}
	}

	for _, o := range observers {
		s.safeNotifyLogAdded(o, entry)
	}
	return nil
}

// safeNotifyLogAdded invokes an observer's OnLogAdded and recovers a panic
// rather than letting it escape Record, logging a SystemAlert entry in its
// place so one misbehaving observer can't corrupt the matching or dashboard
// call that triggered it.
func (s *MemorySink) safeNotifyLogAdded(o Observer, entry Entry) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("eventType", string(entry.EventType)).Msg("observer OnLogAdded panicked")
			s.appendSystemAlert(fmt.Sprintf("observer OnLogAdded panicked on %s: %v", entry.EventType, r))
		}
	}()
	o.OnLogAdded(entry)
}

// appendSystemAlert records a SystemAlert entry directly to the ring buffer
// and file, bypassing observer notification so a panicking observer can't
// retrigger itself through the alert it caused.
func (s *MemorySink) appendSystemAlert(message string) {
	entry := NewEntry(SystemAlert, message)

	s.mu.Lock()
	s.entries = append(s.entries, entry)
	if len(s.entries) > s.capacity {
		s.entries = s.entries[len(s.entries)-s.capacity:]
	}
	s.mu.Unlock()

	if s.file != nil {
		if err := s.appendToFile(entry); err != nil {
			log.Warn().Err(err).Msg("system alert file persistence failed")
		}
	}
}

func (s *MemorySink) appendToFile(entry Entry) error {
	w := bufio.NewWriter(s.file)
	enc := json.NewEncoder(w)
	if err := enc.Encode(entry); err != nil {
		return fmt.Errorf("encode audit entry: %w", err)
	}
	return w.Flush()
}

// Recent returns the n most recently recorded entries, newest first. A
// non-positive or oversized n is clamped to the available count.
func (s *MemorySink) Recent(n int) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || n > len(s.entries) {
		n = len(s.entries)
	}
	out := make([]Entry, n)
	for i := 0; i < n; i++ {
		out[i] = s.entries[len(s.entries)-1-i]
	}
	return out
}

// ByType returns every recorded entry of the given kind, newest first.
func (s *MemorySink) ByType(kind Kind) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].EventType == kind {
			out = append(out, s.entries[i])
		}
	}
	return out
}

// ByTimeRange returns every recorded entry with a timestamp in [from, to],
// newest first.
func (s *MemorySink) ByTimeRange(from, to time.Time) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	for i := len(s.entries) - 1; i >= 0; i-- {
		ts := s.entries[i].Timestamp
		if !ts.Before(from) && !ts.After(to) {
			out = append(out, s.entries[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}

// NotifyPanicModeTriggered notifies every registered observer that the
// dashboard's panic conditions were met, synchronously and on the caller's
// goroutine.
func (s *MemorySink) NotifyPanicModeTriggered(panicEntityIDs []uuid.UUID) {
	s.mu.RLock()
	observers := append([]Observer(nil), s.observers...)
	s.mu.RUnlock()

	for _, o := range observers {
		s.safeNotifyPanicModeTriggered(o, panicEntityIDs)
	}
}

// safeNotifyPanicModeTriggered mirrors safeNotifyLogAdded for the
// OnPanicModeTriggered callback.
func (s *MemorySink) safeNotifyPanicModeTriggered(o Observer, panicEntityIDs []uuid.UUID) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Int("panicCount", len(panicEntityIDs)).Msg("observer OnPanicModeTriggered panicked")
			s.appendSystemAlert(fmt.Sprintf("observer OnPanicModeTriggered panicked: %v", r))
		}
	}()
	o.OnPanicModeTriggered(panicEntityIDs)
}
