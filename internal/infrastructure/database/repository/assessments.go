package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"pqcguard/internal/domain/models"
	"pqcguard/internal/infrastructure/database"
	"pqcguard/pkg/logger"
)

// ErrRunNotFound is returned when no persisted run matches the id.
var ErrRunNotFound = errors.New("assessment run not found")

// AssessmentRepository persists assessment runs. The full run is stored as a
// jsonb document alongside the columns used for listing and filtering.
type AssessmentRepository struct {
	db     database.DBTX
	logger *logger.Logger
}

// NewAssessmentRepository creates a repository backed by db.
func NewAssessmentRepository(db database.DBTX, log *logger.Logger) *AssessmentRepository {
	return &AssessmentRepository{
		db:     db,
		logger: log.WithComponent("assessment-repository"),
	}
}

// Save upserts an assessment run.
func (r *AssessmentRepository) Save(ctx context.Context, run models.AssessmentRun) error {
	document, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	query := `
		INSERT INTO assessment_runs (id, scenario, state, profile, error, document, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			state = EXCLUDED.state,
			error = EXCLUDED.error,
			document = EXCLUDED.document,
			completed_at = EXCLUDED.completed_at`

	_, err = r.db.Exec(ctx, query,
		run.ID,
		run.Scenario,
		run.State,
		run.Classification.Profile,
		run.Error,
		document,
		run.CreatedAt,
		run.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save assessment run: %w", err)
	}

	r.logger.Debug().Str("run_id", run.ID).Str("state", run.State).Msg("saved assessment run")
	return nil
}

// GetByID fetches one run by id.
func (r *AssessmentRepository) GetByID(ctx context.Context, id string) (models.AssessmentRun, error) {
	query := `SELECT document FROM assessment_runs WHERE id = $1`

	var document []byte
	err := r.db.QueryRow(ctx, query, id).Scan(&document)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.AssessmentRun{}, fmt.Errorf("run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return models.AssessmentRun{}, fmt.Errorf("failed to fetch assessment run: %w", err)
	}

	var run models.AssessmentRun
	if err := json.Unmarshal(document, &run); err != nil {
		return models.AssessmentRun{}, fmt.Errorf("failed to unmarshal run document: %w", err)
	}
	return run, nil
}

// List returns runs newest first.
func (r *AssessmentRepository) List(ctx context.Context, limit, offset int) ([]models.AssessmentRun, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := `
		SELECT document FROM assessment_runs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessment runs: %w", err)
	}
	defer rows.Close()

	var runs []models.AssessmentRun
	for rows.Next() {
		var document []byte
		if err := rows.Scan(&document); err != nil {
			return nil, fmt.Errorf("failed to scan run document: %w", err)
		}
		var run models.AssessmentRun
		if err := json.Unmarshal(document, &run); err != nil {
			return nil, fmt.Errorf("failed to unmarshal run document: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}

// Count returns the number of persisted runs.
func (r *AssessmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM assessment_runs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count assessment runs: %w", err)
	}
	return count, nil
}

// Schema is the DDL for the assessment_runs table.
const Schema = `
CREATE TABLE IF NOT EXISTS assessment_runs (
	id           UUID PRIMARY KEY,
	scenario     TEXT NOT NULL,
	state        TEXT NOT NULL,
	profile      TEXT NOT NULL DEFAULT '',
	error        TEXT NOT NULL DEFAULT '',
	document     JSONB NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL,
	completed_at TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_assessment_runs_created_at ON assessment_runs (created_at DESC);
CREATE INDEX IF NOT EXISTS idx_assessment_runs_state ON assessment_runs (state);
`

// EnsureSchema creates the assessment_runs table if missing.
func (r *AssessmentRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
