package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/clipforge/clipforge/internal/models"
	"github.com/google/uuid"
)

func (db *DB) CreateProject(ctx context.Context, project *models.Project) error {
	query := `
		INSERT INTO projects (
			id, name, resolution_width, resolution_height, fps,
			scenes, audio_tracks, video_tracks, subtitle_tracks, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	return db.QueryRowContext(
		ctx, query,
		project.ID, project.Name, project.ResolutionWidth, project.ResolutionHeight,
		project.FPS, project.Scenes, project.AudioTracks, project.VideoTracks,
		project.SubtitleTracks, project.Status,
	).Scan(&project.CreatedAt, &project.UpdatedAt)
}

func (db *DB) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	query := `
		SELECT
			id, name, resolution_width, resolution_height, fps,
			scenes, audio_tracks, video_tracks, subtitle_tracks, status,
			created_at, updated_at
		FROM projects
		WHERE id = $1
	`

	project := &models.Project{}
	err := db.QueryRowContext(ctx, query, id).Scan(
		&project.ID, &project.Name, &project.ResolutionWidth, &project.ResolutionHeight,
		&project.FPS, &project.Scenes, &project.AudioTracks, &project.VideoTracks,
		&project.SubtitleTracks, &project.Status,
		&project.CreatedAt, &project.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("project not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return project, nil
}

// ListProjects returns projects ordered by creation date (newest first).
func (db *DB) ListProjects(ctx context.Context, limit, offset int) ([]models.Project, error) {
	query := `
		SELECT
			id, name, resolution_width, resolution_height, fps,
			scenes, audio_tracks, video_tracks, subtitle_tracks, status,
			created_at, updated_at
		FROM projects
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(
			&p.ID, &p.Name, &p.ResolutionWidth, &p.ResolutionHeight,
			&p.FPS, &p.Scenes, &p.AudioTracks, &p.VideoTracks,
			&p.SubtitleTracks, &p.Status,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}

	return projects, nil
}

// UpdateProjectTimeline saves the editable project fields. Nil fields in the
// request leave the stored column untouched.
func (db *DB) UpdateProjectTimeline(ctx context.Context, id uuid.UUID, req *models.UpdateProjectRequest) error {
	query := `
		UPDATE projects SET
			name = COALESCE($1, name),
			scenes = COALESCE($2, scenes),
			audio_tracks = COALESCE($3, audio_tracks),
			video_tracks = COALESCE($4, video_tracks),
			subtitle_tracks = COALESCE($5, subtitle_tracks),
			updated_at = NOW()
		WHERE id = $6
	`

	// Pointer fields are unwrapped explicitly: a nil typed pointer would
	// still hit the JSONB Valuer and panic instead of binding SQL NULL.
	var name, scenes, audioTracks, videoTracks, subtitleTracks interface{}
	if req.Name != nil {
		name = *req.Name
	}
	if req.Scenes != nil {
		scenes = *req.Scenes
	}
	if req.AudioTracks != nil {
		audioTracks = *req.AudioTracks
	}
	if req.VideoTracks != nil {
		videoTracks = *req.VideoTracks
	}
	if req.SubtitleTracks != nil {
		subtitleTracks = *req.SubtitleTracks
	}

	_, err := db.ExecContext(ctx, query, name, scenes, audioTracks, videoTracks, subtitleTracks, id)
	return err
}

func (db *DB) UpdateProjectStatus(ctx context.Context, id uuid.UUID, status models.ProjectStatus) error {
	query := `UPDATE projects SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := db.ExecContext(ctx, query, status, id)
	return err
}
