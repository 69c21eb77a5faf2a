package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jengzang/chokepoint-planner/internal/models"
)

// ErrRunNotFound is returned when no analysis run has the requested id.
var ErrRunNotFound = errors.New("repository: analysis run not found")

// AnalysisRunRepository handles database operations for analysis runs
type AnalysisRunRepository struct {
	db *sql.DB
}

// NewAnalysisRunRepository creates a new analysis run repository
func NewAnalysisRunRepository(db *sql.DB) *AnalysisRunRepository {
	return &AnalysisRunRepository{db: db}
}

// Save inserts a run. CreatedAt is set when zero.
func (r *AnalysisRunRepository) Save(run *models.AnalysisRun) error {
	if run.ID == "" {
		return errors.New("repository: analysis run id is empty")
	}
	if run.Result == nil {
		return errors.New("repository: analysis run has no result")
	}

	resultJSON, err := json.Marshal(run.Result)
	if err != nil {
		return fmt.Errorf("failed to encode analysis result: %w", err)
	}

	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO analysis_runs (
			id, scenario, outcome, route_count, chokepoint_count,
			poi_count, team_count, result_json, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		run.ID,
		run.Scenario,
		run.Outcome,
		run.RouteCount,
		run.ChokepointCount,
		run.POICount,
		run.TeamCount,
		string(resultJSON),
		run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis run: %w", err)
	}

	return nil
}

// GetByID retrieves a run with its full result
func (r *AnalysisRunRepository) GetByID(id string) (*models.AnalysisRun, error) {
	query := `
		SELECT id, scenario, outcome, route_count, chokepoint_count,
			   poi_count, team_count, result_json, created_at
		FROM analysis_runs
		WHERE id = ?
	`

	run := &models.AnalysisRun{}
	var resultJSON string
	err := r.db.QueryRow(query, id).Scan(
		&run.ID,
		&run.Scenario,
		&run.Outcome,
		&run.RouteCount,
		&run.ChokepointCount,
		&run.POICount,
		&run.TeamCount,
		&resultJSON,
		&run.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis run: %w", err)
	}

	run.Result = &models.AnalysisResult{}
	if err := json.Unmarshal([]byte(resultJSON), run.Result); err != nil {
		return nil, fmt.Errorf("failed to decode analysis result: %w", err)
	}

	return run, nil
}

// List returns run summaries, newest first, without results.
func (r *AnalysisRunRepository) List(limit, offset int) ([]*models.AnalysisRun, int, error) {
	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM analysis_runs").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count analysis runs: %w", err)
	}

	query := `
		SELECT id, scenario, outcome, route_count, chokepoint_count,
			   poi_count, team_count, created_at
		FROM analysis_runs
		ORDER BY created_at DESC, rowid DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list analysis runs: %w", err)
	}
	defer rows.Close()

	runs := []*models.AnalysisRun{}
	for rows.Next() {
		run := &models.AnalysisRun{}
		if err := rows.Scan(
			&run.ID,
			&run.Scenario,
			&run.Outcome,
			&run.RouteCount,
			&run.ChokepointCount,
			&run.POICount,
			&run.TeamCount,
			&run.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan analysis run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate analysis runs: %w", err)
	}

	return runs, total, nil
}
