// Package runstore persists evaluation runs in SQLite so results of many
// parameter sets can be compared later.
//
// A Store satisfies clustereval.Recorder:
//
//	store, err := runstore.Open("runs.db")
//	ev, err := clustereval.NewEvaluator(p, clustereval.WithRecorder(store))
package runstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/TrevorS/clustereval"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// ErrNotFound is returned by Get when no run has the requested ID.
var ErrNotFound = errors.New("runstore: run not found")

// Run is one stored evaluation.
type Run struct {
	ID         string
	CreatedAt  time.Time
	Chromosome clustereval.Chromosome

	Elapsed      time.Duration
	Clusters     int
	BaseClusters int
	Overall      clustereval.Overall

	// Coverage, Representation and FMeasure hold the per-rank fractions,
	// best rank first.
	Coverage       []float64
	Representation []float64
	FMeasure       []float64
}

// RunFromResult captures the chromosome and outcome of one evaluation.
func RunFromResult(c clustereval.Chromosome, res *clustereval.Result) Run {
	return Run{
		Chromosome:     c,
		Elapsed:        res.Timing.Total,
		Clusters:       res.Clusters,
		BaseClusters:   res.BaseClusters,
		Overall:        res.Overall,
		Coverage:       res.CoverageFractions(),
		Representation: res.RepresentationFractions(),
		FMeasure:       res.FMeasureFractions(),
	}
}

// Store persists runs in a SQLite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path and applies migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("runstore: open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("runstore: enable WAL mode: %w", err)
	}
	s := &Store{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("runstore: migrate database: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		chromosome TEXT NOT NULL,
		elapsed_ns INTEGER NOT NULL,
		clusters INTEGER NOT NULL,
		base_clusters INTEGER NOT NULL,
		precision REAL NOT NULL,
		recall REAL NOT NULL,
		f_measure REAL NOT NULL,
		coverage TEXT NOT NULL,
		representation TEXT NOT NULL,
		f_measure_by_rank TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_f_measure ON runs(f_measure DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores run and returns its ID. A run without an ID gets a new UUID;
// a run without a creation time gets the current time.
func (s *Store) Save(ctx context.Context, run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = s.now()
	}
	chromosome, err := json.Marshal(run.Chromosome)
	if err != nil {
		return "", fmt.Errorf("runstore: encode chromosome: %w", err)
	}
	coverage, err := json.Marshal(run.Coverage)
	if err != nil {
		return "", fmt.Errorf("runstore: encode coverage: %w", err)
	}
	representation, err := json.Marshal(run.Representation)
	if err != nil {
		return "", fmt.Errorf("runstore: encode representation: %w", err)
	}
	fmeasure, err := json.Marshal(run.FMeasure)
	if err != nil {
		return "", fmt.Errorf("runstore: encode f-measure: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, chromosome, elapsed_ns, clusters, base_clusters,
			precision, recall, f_measure, coverage, representation, f_measure_by_rank)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
		string(chromosome),
		int64(run.Elapsed),
		run.Clusters,
		run.BaseClusters,
		run.Overall.Precision,
		run.Overall.Recall,
		run.Overall.FMeasure,
		string(coverage),
		string(representation),
		string(fmeasure),
	)
	if err != nil {
		return "", fmt.Errorf("runstore: insert run: %w", err)
	}
	return run.ID, nil
}

// RecordRun stores the outcome of one evaluation. It implements
// clustereval.Recorder.
func (s *Store) RecordRun(c clustereval.Chromosome, res *clustereval.Result) error {
	_, err := s.Save(context.Background(), RunFromResult(c, res))
	return err
}

const selectRun = `
	SELECT id, created_at, chromosome, elapsed_ns, clusters, base_clusters,
		precision, recall, f_measure, coverage, representation, f_measure_by_rank
	FROM runs`

// Get returns the run with the given ID, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, selectRun+` WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNotFound
	}
	return run, err
}

// Best returns up to limit runs with the highest overall F-measure, best first.
func (s *Store) Best(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, selectRun+` ORDER BY f_measure DESC, created_at ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("runstore: query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Count returns the number of stored runs.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("runstore: count runs: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run                                Run
		createdAt, chromosome              string
		coverage, representation, fmeasure string
		elapsed                            int64
	)
	err := sc.Scan(&run.ID, &createdAt, &chromosome, &elapsed, &run.Clusters, &run.BaseClusters,
		&run.Overall.Precision, &run.Overall.Recall, &run.Overall.FMeasure,
		&coverage, &representation, &fmeasure)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("runstore: scan run: %w", err)
	}
	run.Elapsed = time.Duration(elapsed)
	if run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return Run{}, fmt.Errorf("runstore: parse created_at: %w", err)
	}
	if err := json.Unmarshal([]byte(chromosome), &run.Chromosome); err != nil {
		return Run{}, fmt.Errorf("runstore: decode chromosome: %w", err)
	}
	for _, f := range []struct {
		raw string
		dst *[]float64
	}{
		{coverage, &run.Coverage},
		{representation, &run.Representation},
		{fmeasure, &run.FMeasure},
	} {
		if err := json.Unmarshal([]byte(f.raw), f.dst); err != nil {
			return Run{}, fmt.Errorf("runstore: decode fractions: %w", err)
		}
	}
	return run, nil
}
