// jobstore persists fill-job metadata and results to sqlite via
// database/sql and mattn/go-sqlite3.
package apiserver

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Status is a fill job's lifecycle state.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Job is one submitted fill request and its outcome, if any.
type Job struct {
	ID                 string
	DictionaryName     string
	Status             Status
	GridText           string
	ResultText         string
	ErrorMessage       string
	CandidatesExplored int
	CreatedAt          time.Time
	CompletedAt        time.Time
}

// schema defines the fill_jobs table.
const schema = `
CREATE TABLE IF NOT EXISTS fill_jobs (
	id TEXT PRIMARY KEY,
	dictionary_name TEXT NOT NULL,
	status TEXT NOT NULL,
	grid_text TEXT NOT NULL,
	result_text TEXT NOT NULL DEFAULT '',
	error_message TEXT NOT NULL DEFAULT '',
	candidates_explored INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	completed_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_fill_jobs_status ON fill_jobs(status);
`

// JobStore is the sqlite-backed fill-job store.
type JobStore struct {
	db *sql.DB
}

// OpenJobStore opens (creating if necessary) a sqlite database at path
// and ensures its schema exists.
func OpenJobStore(path string) (*JobStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("apiserver: failed to open job database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apiserver: failed to initialize job schema: %w", err)
	}
	return &JobStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *JobStore) Close() error {
	return s.db.Close()
}

// Create inserts a new queued job.
func (s *JobStore) Create(job *Job) error {
	_, err := s.db.Exec(`
		INSERT INTO fill_jobs (id, dictionary_name, status, grid_text, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, job.ID, job.DictionaryName, StatusQueued, job.GridText, job.CreatedAt)
	if err != nil {
		return fmt.Errorf("apiserver: failed to create job %s: %w", job.ID, err)
	}
	return nil
}

// MarkRunning transitions a job from queued to running.
func (s *JobStore) MarkRunning(id string) error {
	_, err := s.db.Exec(`UPDATE fill_jobs SET status = ? WHERE id = ?`, StatusRunning, id)
	return err
}

// Complete records a job's terminal state: the filled grid text on
// success, or an error message on failure. Exactly one of resultText,
// errMsg is expected to be non-empty.
func (s *JobStore) Complete(id string, succeeded bool, resultText, errMsg string, candidatesExplored int, completedAt time.Time) error {
	status := StatusFailed
	if succeeded {
		status = StatusSucceeded
	}
	_, err := s.db.Exec(`
		UPDATE fill_jobs
		SET status = ?, result_text = ?, error_message = ?, candidates_explored = ?, completed_at = ?
		WHERE id = ?
	`, status, resultText, errMsg, candidatesExplored, completedAt, id)
	if err != nil {
		return fmt.Errorf("apiserver: failed to complete job %s: %w", id, err)
	}
	return nil
}

// Get retrieves a job by ID. ok is false if no such job exists.
func (s *JobStore) Get(id string) (job Job, ok bool, err error) {
	var completedAt sql.NullTime
	row := s.db.QueryRow(`
		SELECT id, dictionary_name, status, grid_text, result_text, error_message,
		       candidates_explored, created_at, completed_at
		FROM fill_jobs WHERE id = ?
	`, id)

	err = row.Scan(&job.ID, &job.DictionaryName, &job.Status, &job.GridText, &job.ResultText,
		&job.ErrorMessage, &job.CandidatesExplored, &job.CreatedAt, &completedAt)
	if err == sql.ErrNoRows {
		return Job{}, false, nil
	}
	if err != nil {
		return Job{}, false, fmt.Errorf("apiserver: failed to get job %s: %w", id, err)
	}
	if completedAt.Valid {
		job.CompletedAt = completedAt.Time
	}
	return job, true, nil
}

// CountByStatus returns the number of jobs in each status.
func (s *JobStore) CountByStatus() (map[Status]int, error) {
	rows, err := s.db.Query(`SELECT status, COUNT(*) FROM fill_jobs GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("apiserver: failed to count jobs by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[Status]int)
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("apiserver: failed to scan job count row: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// AverageCandidatesExplored reports the mean candidates-explored count
// across completed (succeeded or failed) jobs, or 0 if none have
// completed yet.
func (s *JobStore) AverageCandidatesExplored() (float64, error) {
	var avg sql.NullFloat64
	err := s.db.QueryRow(`
		SELECT AVG(candidates_explored) FROM fill_jobs
		WHERE status IN (?, ?)
	`, StatusSucceeded, StatusFailed).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("apiserver: failed to average candidates explored: %w", err)
	}
	return avg.Float64, nil
}
