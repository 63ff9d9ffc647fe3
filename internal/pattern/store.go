// Package pattern persists captured trail histories so a finished session
// can be replayed later as a static image.
package pattern

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/RequiringSleep/spacejam/internal/viz"
)

// Pattern is one saved session's per-orb trail history.
type Pattern struct {
	ID        string
	Category  string
	CreatedAt time.Time
	Duration  time.Duration
	Trails    [][]viz.TrailPoint
}

// Age renders the pattern's age for listings.
func (p *Pattern) Age() string { return humanize.Time(p.CreatedAt) }

type row struct {
	ID         string `db:"id"`
	Category   string `db:"category"`
	CreatedAt  int64  `db:"created_at"`
	DurationMS int64  `db:"duration_ms"`
	Trails     []byte `db:"trails"`
}

// Store wraps a SQLite connection holding saved patterns.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates the pattern database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error { return s.conn.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS patterns (
		id TEXT PRIMARY KEY,
		category TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		trails TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_patterns_created ON patterns(created_at);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Save stores a session's trails under a fresh ID and returns the pattern.
// The trail count is validated here, at the boundary, so replay never feeds
// the renderer a malformed history.
func (s *Store) Save(category string, duration time.Duration, trails [][]viz.TrailPoint) (*Pattern, error) {
	if len(trails) != viz.NumOrbs {
		return nil, fmt.Errorf("pattern has %d trails, want %d", len(trails), viz.NumOrbs)
	}
	blob, err := json.Marshal(trails)
	if err != nil {
		return nil, fmt.Errorf("encode trails: %w", err)
	}

	p := &Pattern{
		ID:        uuid.NewString(),
		Category:  category,
		CreatedAt: time.Now(),
		Duration:  duration,
		Trails:    trails,
	}
	_, err = s.conn.Exec(
		`INSERT INTO patterns (id, category, created_at, duration_ms, trails) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Category, p.CreatedAt.UnixMilli(), p.Duration.Milliseconds(), string(blob),
	)
	if err != nil {
		return nil, fmt.Errorf("insert pattern: %w", err)
	}

	slog.Info("pattern saved", "id", p.ID, "category", p.Category, "duration", p.Duration.Round(time.Second))
	return p, nil
}

// Get loads one pattern by ID.
func (s *Store) Get(id string) (*Pattern, error) {
	var r row
	err := s.conn.Get(&r, `SELECT id, category, created_at, duration_ms, trails FROM patterns WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("load pattern %s: %w", id, err)
	}
	return r.pattern()
}

// List returns all stored patterns, most recent first. Rows that fail
// validation are skipped rather than surfaced to the renderer.
func (s *Store) List() ([]*Pattern, error) {
	var rows []row
	err := s.conn.Select(&rows, `SELECT id, category, created_at, duration_ms, trails FROM patterns ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list patterns: %w", err)
	}

	out := make([]*Pattern, 0, len(rows))
	for i := range rows {
		p, err := rows[i].pattern()
		if err != nil {
			slog.Warn("skipping invalid pattern", "id", rows[i].ID, "error", err)
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *row) pattern() (*Pattern, error) {
	var trails [][]viz.TrailPoint
	if err := json.Unmarshal(r.Trails, &trails); err != nil {
		return nil, fmt.Errorf("decode trails: %w", err)
	}
	if len(trails) != viz.NumOrbs {
		return nil, fmt.Errorf("pattern %s has %d trails, want %d", r.ID, len(trails), viz.NumOrbs)
	}
	return &Pattern{
		ID:        r.ID,
		Category:  r.Category,
		CreatedAt: time.UnixMilli(r.CreatedAt),
		Duration:  time.Duration(r.DurationMS) * time.Millisecond,
		Trails:    trails,
	}, nil
}
