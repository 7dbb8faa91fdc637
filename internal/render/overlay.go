package render

import (
	"context"
	"fmt"

	"github.com/clipforge/clipforge/internal/models"
	"github.com/google/uuid"
)

// overlayVideoTracks layers time-windowed secondary clips (PIP, watermarks)
// on top of the joined timeline. Each clip is gated by a per-frame enable
// expression against the master timeline, not the clip's local time.
// Invisible tracks are skipped entirely; if no clip contributes, the input
// is returned unchanged. Video is re-encoded (pixel filtering requires it),
// audio passes through untouched.
func (p *Pipeline) overlayVideoTracks(ctx context.Context, inputPath string, project *models.Project, assetsByID map[int64]models.Asset, arena *Arena) (string, error) {
	outputPath := arena.Allocate(fmt.Sprintf("overlaid_%s.mp4", uuid.New().String()))

	inputs := []string{inputPath}
	g := NewGraph()
	base := InputVideo(0)

	for _, track := range project.VideoTracks {
		if !boolOr(track.Visible, true) {
			continue
		}

		for _, clip := range track.Clips {
			asset, ok := assetsByID[clip.AssetID]
			if !ok {
				continue
			}

			inputs = append(inputs, p.store.Path(asset.Disk, asset.Path))
			idx := len(inputs) - 1

			startMs := clip.StartMs
			endMs := startMs + intOr(clip.DurationMs, 5000)

			scaled := g.Chain(
				InputVideo(idx),
				fmt.Sprintf("scale=%d:%d,setpts=PTS-STARTPTS",
					intOr(clip.Width, 320), intOr(clip.Height, 180)),
				"scaled",
			)

			overlayInput := scaled
			if opacity := floatOr(clip.Opacity, 1.0); opacity < 1.0 {
				overlayInput = g.Chain(
					scaled,
					fmt.Sprintf("format=rgba,colorchannelmixer=aa=%.3f", opacity),
					"alpha",
				)
			}

			composited := g.NewLabel("out")
			g.Node(
				[]Label{base, overlayInput},
				fmt.Sprintf("overlay=%d:%d:enable='between(t,%s,%s)'",
					intOr(clip.X, 0), intOr(clip.Y, 0), seconds(startMs), seconds(endMs)),
				[]Label{composited},
			)
			base = composited
		}
	}

	// Nothing visible contributed an overlay input
	if g.Empty() {
		return inputPath, nil
	}

	args := []string{"-y"}
	for _, input := range inputs {
		args = append(args, "-i", input)
	}
	args = append(args,
		"-filter_complex", g.String(),
		"-map", g.Map(base),
		"-map", "0:a?",
		"-c:v", "libx264",
		"-preset", "fast",
		"-c:a", "copy",
		outputPath,
	)

	if err := p.run(ctx, "video track overlay", overlayTimeout, args...); err != nil {
		return "", err
	}

	arena.Release(inputPath)
	return outputPath, nil
}
