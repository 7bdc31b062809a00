package regime

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Store persists RunResult rows to a SQLite file, one row per swept run
// (config digest via Label/Seed, terminal regime, summary stats). This is
// the repo's only persistent store — the per-run Universe itself stays
// in-memory-only (spec §1 Non-goals "no persistent database for world
// state"), matching the teacher's sqlx-over-modernc.org/sqlite pattern in
// internal/persistence/db.go.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates the regime-results SQLite database at path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("regime: open db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("regime: migrate: %w", err)
	}
	return s, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error { return s.conn.Close() }

func (s *Store) migrate() error {
	_, err := s.conn.Exec(`
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY,
		batch_tag TEXT NOT NULL,
		label TEXT NOT NULL,
		seed INTEGER NOT NULL,
		ticks INTEGER NOT NULL,
		terminal_entities INTEGER NOT NULL,
		terminal_energy REAL NOT NULL,
		regime TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_batch_tag ON runs(batch_tag);
	`)
	return err
}

// Save persists one RunResult row.
func (s *Store) Save(r RunResult) error {
	_, err := s.conn.Exec(
		`INSERT INTO runs (batch_tag, label, seed, ticks, terminal_entities, terminal_energy, regime)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.BatchTag, r.Label, r.Seed, r.Ticks, r.TerminalEntities, r.TerminalEnergy, r.Regime.String(),
	)
	if err != nil {
		return fmt.Errorf("regime: save run %q: %w", r.Label, err)
	}
	return nil
}

// SaveAll persists every result in results, stopping at the first error.
func (s *Store) SaveAll(results []RunResult) error {
	for _, r := range results {
		if err := s.Save(r); err != nil {
			return err
		}
	}
	return nil
}

type regimeCount struct {
	Regime string `db:"regime"`
	Count  int    `db:"count"`
}

// CountByRegime tallies persisted rows for batchTag by their regime label.
func (s *Store) CountByRegime(batchTag string) (map[string]int, error) {
	var rows []regimeCount
	err := s.conn.Select(&rows, `SELECT regime, COUNT(*) as count FROM runs WHERE batch_tag = ? GROUP BY regime`, batchTag)
	if err != nil {
		return nil, fmt.Errorf("regime: count by regime: %w", err)
	}

	out := make(map[string]int, len(rows))
	for _, r := range rows {
		out[r.Regime] = r.Count
	}
	return out, nil
}
