package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/clipforge/clipforge/internal/models"
)

// validateAssets confirms every asset referenced anywhere in the timeline
// exists on its declared disk before any encoder resources are committed.
// Every miss is aggregated into one ValidationError rather than failing on
// the first, so a re-upload fixes the whole set at once. An empty reference
// set succeeds without touching storage.
func (p *Pipeline) validateAssets(ctx context.Context, project *models.Project) (map[int64]models.Asset, error) {
	ids := collectAssetIDs(project)
	if len(ids) == 0 {
		return map[int64]models.Asset{}, nil
	}

	assets, err := p.assets.GetAssetsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load assets: %w", err)
	}

	byID := make(map[int64]models.Asset, len(assets))
	for _, a := range assets {
		byID[a.ID] = a
	}

	var missing []string
	for _, id := range ids {
		asset, ok := byID[id]
		if !ok {
			missing = append(missing, fmt.Sprintf("asset %d not found", id))
			continue
		}
		if !p.store.Exists(asset.Disk, asset.Path) {
			missing = append(missing, fmt.Sprintf("%s (ID: %d, path: %s)", asset.Name, asset.ID, asset.Path))
		}
	}

	if len(missing) > 0 {
		return nil, &ValidationError{
			Message: "asset files not found on disk: " + strings.Join(missing, ", ") +
				". Files may have been lost during deployment. Please re-upload the missing assets.",
		}
	}

	return byID, nil
}

// collectAssetIDs gathers every asset reference across scene layers, audio
// clips, and video-track clips, deduplicated in first-seen order.
func collectAssetIDs(project *models.Project) []int64 {
	seen := make(map[int64]bool)
	var ids []int64

	add := func(id int64) {
		if id != 0 && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	for _, scene := range project.Scenes {
		for _, layer := range scene.Layers {
			switch layer.Type {
			case models.LayerTypeVideo, models.LayerTypeImage:
				add(layer.AssetID)
			case models.LayerTypeText:
				// no backing asset
			}
		}
	}

	for _, track := range project.AudioTracks {
		for _, clip := range track.Clips {
			add(clip.AssetID)
		}
	}

	for _, track := range project.VideoTracks {
		for _, clip := range track.Clips {
			add(clip.AssetID)
		}
	}

	return ids
}
