// Package session tracks one visualization session's clock and drives the
// conclusion fade-out.
package session

import "time"

// Session is one active run of the visualizer under a chosen category.
type Session struct {
	Category string

	start time.Time
}

func New(category string) *Session {
	return &Session{Category: category, start: time.Now()}
}

func (s *Session) StartedAt() time.Time { return s.start }

// Elapsed is the wall-clock session duration shown on the central timer.
func (s *Session) Elapsed() time.Duration { return time.Since(s.start) }
