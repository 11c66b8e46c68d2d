// Package frontier persists enumeration results in SQLite, so hypotheses
// found for a request type survive the process and can be inspected later.
package frontier

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id      TEXT PRIMARY KEY,
	request TEXT NOT NULL,
	started TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE TABLE IF NOT EXISTS hypotheses (
	run_id     TEXT NOT NULL REFERENCES runs(id),
	position   INTEGER NOT NULL,
	expression TEXT NOT NULL,
	logprob    REAL NOT NULL,
	PRIMARY KEY (run_id, position)
);
CREATE INDEX IF NOT EXISTS hypotheses_by_run ON hypotheses(run_id);
`

// Store is a handle to one hypothesis database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("frontier: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("frontier: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Run records the hypotheses of one enumeration pass.
type Run struct {
	ID      string
	store   *Store
	nextPos int
}

// Begin starts a run for the given request type and returns its handle.
func (s *Store) Begin(request string) (*Run, error) {
	id := uuid.NewString()
	if _, err := s.db.Exec(`INSERT INTO runs (id, request) VALUES (?, ?)`, id, request); err != nil {
		return nil, fmt.Errorf("frontier: begin run: %w", err)
	}
	return &Run{ID: id, store: s}, nil
}

// Add appends one hypothesis to the run, preserving enumeration order.
func (r *Run) Add(expression string, logProb float64) error {
	_, err := r.store.db.Exec(
		`INSERT INTO hypotheses (run_id, position, expression, logprob) VALUES (?, ?, ?, ?)`,
		r.ID, r.nextPos, expression, logProb,
	)
	if err != nil {
		return fmt.Errorf("frontier: add hypothesis: %w", err)
	}
	r.nextPos++
	return nil
}

// Hypothesis is one stored enumeration result.
type Hypothesis struct {
	RunID      string
	Expression string
	LogProb    float64
}

// Hypotheses returns every stored hypothesis for the request type, newest
// run first, each run in enumeration order.
func (s *Store) Hypotheses(request string) ([]Hypothesis, error) {
	rows, err := s.db.Query(`
		SELECT h.run_id, h.expression, h.logprob
		FROM hypotheses h JOIN runs r ON r.id = h.run_id
		WHERE r.request = ?
		ORDER BY r.started DESC, h.run_id, h.position`, request)
	if err != nil {
		return nil, fmt.Errorf("frontier: query hypotheses: %w", err)
	}
	defer rows.Close()

	var out []Hypothesis
	for rows.Next() {
		var h Hypothesis
		if err := rows.Scan(&h.RunID, &h.Expression, &h.LogProb); err != nil {
			return nil, fmt.Errorf("frontier: scan hypothesis: %w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("frontier: %w", err)
	}
	return out, nil
}
