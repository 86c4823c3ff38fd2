package report

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// timeFormat is fixed-width so stored timestamps sort lexically.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore persists runs to a SQLite database. Each Day is written in one
// transaction.
type SQLiteStore struct {
	mu     sync.Mutex
	db     *sql.DB
	path   string
	runID  string
	closed bool
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)

	if err := InitSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string { return s.path }

// DB returns the underlying *sql.DB for raw queries.
func (s *SQLiteStore) DB() *sql.DB { return s.db }

// Begin inserts the run row. An empty run.ID gets a fresh one.
func (s *SQLiteStore) Begin(ctx context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		run.ID = NewRunID()
	}
	if run.Started.IsZero() {
		run.Started = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, seed, days, population, config) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Started.UTC().Format(timeFormat), run.Seed, run.Days, run.Population, run.Config)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", run.ID, err)
	}
	s.runID = run.ID
	return nil
}

// Record writes the day's counts, counters and transmission results.
func (s *SQLiteStore) Record(ctx context.Context, day Day) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.runID == "" {
		return fmt.Errorf("record day %d: %w", day.Day, ErrNoRun)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, dd := range day.Diseases {
		for i, n := range dd.Counts {
			name := ""
			if i < len(dd.States) {
				name = dd.States[i]
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO daily_counts (run_id, day, disease, state, state_index, count) VALUES (?, ?, ?, ?, ?, ?)`,
				s.runID, day.Day, dd.Disease, name, i, n); err != nil {
				return fmt.Errorf("failed to insert counts for %s day %d: %w", dd.Disease, day.Day, err)
			}
		}
		c := dd.Counters
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO daily_counters (run_id, day, disease, exposed, infectious, symptomatic,
				new_exposures, new_infectious, new_symptomatic, new_recoveries,
				recovered, case_fatalities, cumulative_incidence)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.runID, day.Day, dd.Disease, c.Exposed, c.Infectious, c.Symptomatic,
			c.NewExposures, c.NewInfectious, c.NewSymptomatic, c.NewRecoveries,
			c.Recovered, c.CaseFatalities, c.CumulativeIncidence); err != nil {
			return fmt.Errorf("failed to insert counters for %s day %d: %w", dd.Disease, day.Day, err)
		}
	}

	for _, sp := range day.Spread {
		r := sp.Result
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO daily_transmission (run_id, day, network, disease, hosts, links, attempts, contacts, infections)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.runID, day.Day, sp.Network, sp.Disease, r.Hosts, r.Links, r.Attempts, r.Contacts, r.Infections); err != nil {
			return fmt.Errorf("failed to insert transmission for %s/%s day %d: %w", sp.Network, sp.Disease, day.Day, err)
		}
	}

	return tx.Commit()
}

// End stamps the run's finish time and last day.
func (s *SQLiteStore) End(ctx context.Context, lastDay int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.runID == "" {
		return fmt.Errorf("end run: %w", ErrNoRun)
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, last_day = ? WHERE id = ?`,
		time.Now().UTC().Format(timeFormat), lastDay, s.runID)
	if err != nil {
		return fmt.Errorf("failed to finish run %s: %w", s.runID, err)
	}
	s.runID = ""
	return nil
}

// Close closes the database connection. It is safe to call twice.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// RunSummary is a stored run header.
type RunSummary struct {
	Run
	Finished bool
	LastDay  int
}

// Runs lists stored runs, oldest first.
func (s *SQLiteStore) Runs(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, seed, days, population, last_day, config FROM runs ORDER BY started_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var (
			rs       RunSummary
			started  string
			finished sql.NullString
			lastDay  sql.NullInt64
			config   sql.NullString
		)
		if err := rows.Scan(&rs.ID, &started, &finished, &rs.Seed, &rs.Days, &rs.Population, &lastDay, &config); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		rs.Started, _ = time.Parse(timeFormat, started)
		rs.Finished = finished.Valid
		rs.LastDay = int(lastDay.Int64)
		rs.Config = config.String
		out = append(out, rs)
	}
	return out, rows.Err()
}

// Point is one day's value in a stored series.
type Point struct {
	Day   int
	Value int
}

// StateSeries returns a state's daily counts for one run, ordered by day.
func (s *SQLiteStore) StateSeries(ctx context.Context, runID, disease, state string) ([]Point, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT day, count FROM daily_counts WHERE run_id = ? AND disease = ? AND state = ? ORDER BY day`,
		runID, disease, state)
	if err != nil {
		return nil, fmt.Errorf("failed to query counts: %w", err)
	}
	defer rows.Close()

	var out []Point
	for rows.Next() {
		var p Point
		if err := rows.Scan(&p.Day, &p.Value); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Counters returns a disease's stored counters for one day.
func (s *SQLiteStore) Counters(ctx context.Context, runID, disease string, day int) (DiseaseDay, error) {
	dd := DiseaseDay{Disease: disease}
	c := &dd.Counters
	err := s.db.QueryRowContext(ctx,
		`SELECT exposed, infectious, symptomatic, new_exposures, new_infectious, new_symptomatic,
			new_recoveries, recovered, case_fatalities, cumulative_incidence
		FROM daily_counters WHERE run_id = ? AND disease = ? AND day = ?`,
		runID, disease, day).Scan(&c.Exposed, &c.Infectious, &c.Symptomatic, &c.NewExposures,
		&c.NewInfectious, &c.NewSymptomatic, &c.NewRecoveries, &c.Recovered, &c.CaseFatalities,
		&c.CumulativeIncidence)
	if err != nil {
		return DiseaseDay{}, fmt.Errorf("failed to query counters for %s day %d: %w", disease, day, err)
	}
	return dd, nil
}

// TotalInfections sums successful exposures of disease over all networks and days.
func (s *SQLiteStore) TotalInfections(ctx context.Context, runID, disease string) (int, error) {
	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(infections), 0) FROM daily_transmission WHERE run_id = ? AND disease = ?`,
		runID, disease).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum infections: %w", err)
	}
	return total, nil
}
