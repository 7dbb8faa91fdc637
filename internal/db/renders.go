package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/clipforge/clipforge/internal/models"
	"github.com/google/uuid"
)

func (db *DB) CreateRender(ctx context.Context, render *models.Render) error {
	query := `
		INSERT INTO renders (id, project_id, status, progress)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	return db.QueryRowContext(
		ctx, query,
		render.ID, render.ProjectID, render.Status, render.Progress,
	).Scan(&render.CreatedAt, &render.UpdatedAt)
}

func (db *DB) GetRender(ctx context.Context, id uuid.UUID) (*models.Render, error) {
	query := `
		SELECT
			id, project_id, status, progress, output_path, error_message,
			started_at, completed_at, created_at, updated_at
		FROM renders
		WHERE id = $1
	`

	render := &models.Render{}
	err := db.QueryRowContext(ctx, query, id).Scan(
		&render.ID, &render.ProjectID, &render.Status, &render.Progress,
		&render.OutputPath, &render.ErrorMessage,
		&render.StartedAt, &render.CompletedAt,
		&render.CreatedAt, &render.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("render not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get render: %w", err)
	}

	return render, nil
}

// GetProjectRenders returns a project's render history, newest first.
func (db *DB) GetProjectRenders(ctx context.Context, projectID uuid.UUID) ([]models.Render, error) {
	query := `
		SELECT
			id, project_id, status, progress, output_path, error_message,
			started_at, completed_at, created_at, updated_at
		FROM renders
		WHERE project_id = $1
		ORDER BY created_at DESC
	`

	rows, err := db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query renders: %w", err)
	}
	defer rows.Close()

	var renders []models.Render
	for rows.Next() {
		var r models.Render
		if err := rows.Scan(
			&r.ID, &r.ProjectID, &r.Status, &r.Progress,
			&r.OutputPath, &r.ErrorMessage,
			&r.StartedAt, &r.CompletedAt,
			&r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan render: %w", err)
		}
		renders = append(renders, r)
	}

	return renders, nil
}

// StartRender marks a render as picked up by a worker.
func (db *DB) StartRender(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE renders
		SET status = $1, started_at = $2, updated_at = NOW()
		WHERE id = $3
	`
	_, err := db.ExecContext(ctx, query, models.RenderStatusProcessing, time.Now(), id)
	return err
}

// UpdateRenderCheckpoint records a stage-boundary status/progress pair.
// Checkpoints are the only granularity external pollers ever observe.
func (db *DB) UpdateRenderCheckpoint(ctx context.Context, id uuid.UUID, status models.RenderStatus, progress int) error {
	query := `
		UPDATE renders
		SET status = $1, progress = $2, updated_at = NOW()
		WHERE id = $3
	`
	_, err := db.ExecContext(ctx, query, status, progress, id)
	return err
}

func (db *DB) CompleteRender(ctx context.Context, id uuid.UUID, outputPath string) error {
	query := `
		UPDATE renders
		SET status = $1, progress = 100, output_path = $2, completed_at = $3, updated_at = NOW()
		WHERE id = $4
	`
	_, err := db.ExecContext(ctx, query, models.RenderStatusCompleted, outputPath, time.Now(), id)
	return err
}

func (db *DB) FailRender(ctx context.Context, id uuid.UUID, errorMessage string) error {
	query := `
		UPDATE renders
		SET status = $1, error_message = $2, completed_at = $3, updated_at = NOW()
		WHERE id = $4
	`
	_, err := db.ExecContext(ctx, query, models.RenderStatusFailed, errorMessage, time.Now(), id)
	return err
}
