package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/clipforge/clipforge/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

func (db *DB) CreateAsset(ctx context.Context, asset *models.Asset) error {
	query := `
		INSERT INTO assets (
			project_id, type, source, name, path, disk,
			mime_type, size_bytes, duration_ms, width, height
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	return db.QueryRowContext(
		ctx, query,
		asset.ProjectID, asset.Type, asset.Source, asset.Name, asset.Path,
		asset.Disk, asset.MimeType, asset.SizeBytes, asset.DurationMs,
		asset.Width, asset.Height,
	).Scan(&asset.ID, &asset.CreatedAt, &asset.UpdatedAt)
}

func (db *DB) GetAsset(ctx context.Context, id int64) (*models.Asset, error) {
	query := `
		SELECT
			id, project_id, type, source, name, path, disk,
			mime_type, size_bytes, duration_ms, width, height,
			created_at, updated_at
		FROM assets
		WHERE id = $1
	`

	asset := &models.Asset{}
	err := db.QueryRowContext(ctx, query, id).Scan(
		&asset.ID, &asset.ProjectID, &asset.Type, &asset.Source, &asset.Name,
		&asset.Path, &asset.Disk, &asset.MimeType, &asset.SizeBytes,
		&asset.DurationMs, &asset.Width, &asset.Height,
		&asset.CreatedAt, &asset.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("asset not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}

	return asset, nil
}

// GetAssetsByIDs loads assets in bulk. IDs with no matching row are simply
// absent from the result; callers decide whether that is an error.
func (db *DB) GetAssetsByIDs(ctx context.Context, ids []int64) ([]models.Asset, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT
			id, project_id, type, source, name, path, disk,
			mime_type, size_bytes, duration_ms, width, height,
			created_at, updated_at
		FROM assets
		WHERE id = ANY($1)
	`

	rows, err := db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		var a models.Asset
		if err := rows.Scan(
			&a.ID, &a.ProjectID, &a.Type, &a.Source, &a.Name,
			&a.Path, &a.Disk, &a.MimeType, &a.SizeBytes,
			&a.DurationMs, &a.Width, &a.Height,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, a)
	}

	return assets, nil
}

func (db *DB) GetProjectAssets(ctx context.Context, projectID uuid.UUID) ([]models.Asset, error) {
	query := `
		SELECT
			id, project_id, type, source, name, path, disk,
			mime_type, size_bytes, duration_ms, width, height,
			created_at, updated_at
		FROM assets
		WHERE project_id = $1
		ORDER BY created_at
	`

	rows, err := db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query project assets: %w", err)
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		var a models.Asset
		if err := rows.Scan(
			&a.ID, &a.ProjectID, &a.Type, &a.Source, &a.Name,
			&a.Path, &a.Disk, &a.MimeType, &a.SizeBytes,
			&a.DurationMs, &a.Width, &a.Height,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, a)
	}

	return assets, nil
}
