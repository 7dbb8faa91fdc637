package render

import (
	"context"
	"fmt"
	"strconv"

	"github.com/clipforge/clipforge/internal/models"
	"github.com/google/uuid"
)

// renderScene composes one scene's layers into a fixed-duration clip at
// project resolution and frame rate. Layers paint in array order onto a
// solid-color base canvas, later layers on top.
func (p *Pipeline) renderScene(ctx context.Context, project *models.Project, scene models.Scene, assetsByID map[int64]models.Asset, arena *Arena) (string, error) {
	sceneID := scene.ID
	if sceneID == "" {
		sceneID = uuid.New().String()
	}
	outputPath := arena.Allocate(fmt.Sprintf("scene_%s.mp4", sceneID))

	durSec := seconds(scene.DurationMs)
	background := ffColor(strOr(scene.BackgroundColor, "black"))
	canvas := fmt.Sprintf(
		"color=c=%s:s=%dx%d:d=%s:r=%d",
		background, project.ResolutionWidth, project.ResolutionHeight, durSec, project.FPS,
	)

	// Fast path: a layerless scene is just the solid canvas, no graph needed.
	if len(scene.Layers) == 0 {
		args := []string{
			"-y",
			"-f", "lavfi",
			"-i", canvas,
			"-c:v", "libx264",
			"-preset", "fast",
			"-t", durSec,
			outputPath,
		}
		if err := p.run(ctx, "scene render", blankTimeout, args...); err != nil {
			return "", err
		}
		return outputPath, nil
	}

	g := NewGraph()
	base := g.Source(canvas, "base")

	var inputs []string

	for _, layer := range scene.Layers {
		switch layer.Type {
		case models.LayerTypeVideo, models.LayerTypeImage:
			asset, ok := assetsByID[layer.AssetID]
			if !ok {
				continue
			}

			inputs = append(inputs, p.store.Path(asset.Disk, asset.Path))
			idx := len(inputs) - 1

			width := intOr(layer.Width, project.ResolutionWidth)
			height := intOr(layer.Height, project.ResolutionHeight)

			var scaled Label
			if layer.Type == models.LayerTypeVideo {
				scaled = g.Chain(
					InputVideo(idx),
					fmt.Sprintf("scale=%d:%d,setpts=PTS-STARTPTS", width, height),
					"layer",
				)
			} else {
				// A still image becomes a stream by looping its single frame.
				scaled = g.Chain(
					InputVideo(idx),
					fmt.Sprintf("scale=%d:%d,loop=loop=-1:size=1:start=0", width, height),
					"layer",
				)
			}

			composited := g.NewLabel("ov")
			g.Node(
				[]Label{base, scaled},
				fmt.Sprintf("overlay=%d:%d:shortest=1", intOr(layer.X, 0), intOr(layer.Y, 0)),
				[]Label{composited},
			)
			base = composited

		case models.LayerTypeText:
			x := "(w-text_w)/2"
			if layer.X != nil {
				x = strconv.Itoa(*layer.X)
			}
			y := "(h-text_h)/2"
			if layer.Y != nil {
				y = strconv.Itoa(*layer.Y)
			}

			base = g.Chain(base, fmt.Sprintf(
				"drawtext=text='%s':fontsize=%d:fontcolor=%s:x=%s:y=%s",
				escapeText(layer.Text),
				intOr(layer.FontSize, 48),
				ffColor(strOr(layer.FontColor, "white")),
				x, y,
			), "text")
		}
	}

	args := []string{"-y"}
	for _, input := range inputs {
		args = append(args, "-i", input)
	}
	args = append(args,
		"-filter_complex", g.String(),
		"-map", g.Map(base),
		"-c:v", "libx264",
		"-preset", "fast",
		"-t", durSec,
		outputPath,
	)

	if err := p.run(ctx, "scene render", sceneTimeout, args...); err != nil {
		return "", err
	}

	return outputPath, nil
}
