// Package report persists evaluation runs and their failure cases so they
// can be inspected after the fact, via the CLI or the results API.
package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/stellarlinkco/gsm8k-eval/internal/eval"
)

const defaultLimit = 50

// DefaultSQLitePath is where runs are stored when no path is configured.
const DefaultSQLitePath = "data/gsm8k-eval.db"

type Store struct {
	db *sql.DB
}

// Run is a persisted evaluation run summary.
type Run struct {
	ID          int64     `json:"id"`
	Model       string    `json:"model"`
	Provider    string    `json:"provider"`
	Dataset     string    `json:"dataset"`
	Total       int       `json:"total"`
	Correct     int       `json:"correct"`
	NoResponse  int       `json:"no_response"`
	Unscorable  int       `json:"unscorable"`
	Accuracy    float64   `json:"accuracy"`
	LatencyMs   int64     `json:"latency_ms"`
	TotalTokens int       `json:"total_tokens"`
	EvalDate    time.Time `json:"eval_date"`
}

func NewStore(dbPath string) (*Store, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, errors.New("report: empty db path")
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("report: create db dir: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("report: open db: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("report: ping db: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("report: nil db")
	}

	stmts := []string{
		`PRAGMA foreign_keys = ON`,
		`PRAGMA journal_mode = WAL`,
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			model TEXT NOT NULL,
			provider TEXT NOT NULL,
			dataset TEXT NOT NULL,
			total INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			no_response INTEGER NOT NULL DEFAULT 0,
			unscorable INTEGER NOT NULL DEFAULT 0,
			accuracy REAL NOT NULL,
			latency_ms INTEGER NOT NULL DEFAULT 0,
			total_tokens INTEGER NOT NULL DEFAULT 0,
			eval_date INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_eval_date ON runs(eval_date DESC)`,
		`CREATE TABLE IF NOT EXISTS failure_cases (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			case_id TEXT NOT NULL,
			question TEXT NOT NULL,
			reference_solution TEXT NOT NULL DEFAULT '',
			reference_final_answer TEXT NOT NULL DEFAULT '',
			generated_prompt TEXT NOT NULL DEFAULT '',
			raw_output TEXT NOT NULL DEFAULT '',
			extracted_prediction TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_failure_cases_run ON failure_cases(run_id)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("report: init schema: %w", err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveRun persists a run summary and its failure cases in one transaction
// and fills in the run ID.
func (s *Store) SaveRun(ctx context.Context, run *Run, failures []eval.FailureCase) error {
	if s == nil || s.db == nil {
		return errors.New("report: nil store")
	}
	if ctx == nil {
		return errors.New("report: nil context")
	}
	if run == nil {
		return errors.New("report: nil run")
	}

	model := strings.TrimSpace(run.Model)
	provider := strings.TrimSpace(run.Provider)
	dataset := strings.TrimSpace(run.Dataset)
	if model == "" || provider == "" || dataset == "" {
		return errors.New("report: missing model/provider/dataset")
	}

	evalDate := run.EvalDate
	if evalDate.IsZero() {
		evalDate = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("report: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (
			model, provider, dataset, total, correct, no_response, unscorable,
			accuracy, latency_ms, total_tokens, eval_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, model, provider, dataset, run.Total, run.Correct, run.NoResponse, run.Unscorable,
		run.Accuracy, run.LatencyMs, run.TotalTokens, evalDate.UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("report: insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("report: run id: %w", err)
	}

	for i := range failures {
		fc := failures[i]
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO failure_cases (
				run_id, case_id, question, reference_solution,
				reference_final_answer, generated_prompt, raw_output,
				extracted_prediction
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, runID, fc.ID, fc.Question, fc.ReferenceSolution, fc.ReferenceFinalAnswer,
			fc.GeneratedPrompt, fc.RawOutput, fc.ExtractedPrediction); err != nil {
			return fmt.Errorf("report: insert failure case %q: %w", fc.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("report: commit: %w", err)
	}

	run.ID = runID
	run.Model = model
	run.Provider = provider
	run.Dataset = dataset
	run.EvalDate = evalDate
	return nil
}

// ListRuns returns run summaries, most recent first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("report: nil store")
	}
	if ctx == nil {
		return nil, errors.New("report: nil context")
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, model, provider, dataset, total, correct, no_response,
			unscorable, accuracy, latency_ms, total_tokens, eval_date
		FROM runs
		ORDER BY eval_date DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("report: query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// GetRun returns a single run by ID.
func (s *Store) GetRun(ctx context.Context, id int64) (*Run, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("report: nil store")
	}
	if ctx == nil {
		return nil, errors.New("report: nil context")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, model, provider, dataset, total, correct, no_response,
			unscorable, accuracy, latency_ms, total_tokens, eval_date
		FROM runs
		WHERE id = ?
	`, id)
	if err != nil {
		return nil, fmt.Errorf("report: query run: %w", err)
	}
	defer rows.Close()

	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, sql.ErrNoRows
	}
	return &runs[0], nil
}

// GetFailures returns the failure cases recorded for a run.
func (s *Store) GetFailures(ctx context.Context, runID int64) ([]eval.FailureCase, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("report: nil store")
	}
	if ctx == nil {
		return nil, errors.New("report: nil context")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT case_id, question, reference_solution, reference_final_answer,
			generated_prompt, raw_output, extracted_prediction
		FROM failure_cases
		WHERE run_id = ?
		ORDER BY id ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("report: query failure cases: %w", err)
	}
	defer rows.Close()

	var out []eval.FailureCase
	for rows.Next() {
		var fc eval.FailureCase
		if err := rows.Scan(
			&fc.ID,
			&fc.Question,
			&fc.ReferenceSolution,
			&fc.ReferenceFinalAnswer,
			&fc.GeneratedPrompt,
			&fc.RawOutput,
			&fc.ExtractedPrediction,
		); err != nil {
			return nil, fmt.Errorf("report: scan failure case: %w", err)
		}
		out = append(out, fc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("report: scan rows: %w", err)
	}
	return out, nil
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var out []Run
	for rows.Next() {
		var r Run
		var evalDateMS int64
		if err := rows.Scan(
			&r.ID,
			&r.Model,
			&r.Provider,
			&r.Dataset,
			&r.Total,
			&r.Correct,
			&r.NoResponse,
			&r.Unscorable,
			&r.Accuracy,
			&r.LatencyMs,
			&r.TotalTokens,
			&evalDateMS,
		); err != nil {
			return nil, fmt.Errorf("report: scan run: %w", err)
		}
		r.EvalDate = time.UnixMilli(evalDateMS).UTC()
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("report: scan rows: %w", err)
	}
	return out, nil
}

// Open builds a store from storage configuration.
func Open(storageType, path string) (*Store, error) {
	storageType = strings.ToLower(strings.TrimSpace(storageType))
	if storageType == "" {
		storageType = "sqlite"
	}

	switch storageType {
	case "sqlite":
		path = strings.TrimSpace(path)
		if path == "" {
			path = DefaultSQLitePath
		}
		return NewStore(path)
	case "memory":
		return NewStore(":memory:")
	default:
		return nil, fmt.Errorf("report: unsupported storage type %q", storageType)
	}
}
