package render

import (
	"context"
	"fmt"

	"github.com/clipforge/clipforge/internal/models"
	"github.com/google/uuid"
)

// burnSubtitles draws styled subtitle text onto the video, one drawtext node
// per entry, gated by the same between(t,...) master-timeline window used
// for video-track overlays. Draw order is deterministic: track order, then
// entry order. Disabled tracks are skipped; if no entry contributes, the
// input is returned unchanged.
func (p *Pipeline) burnSubtitles(ctx context.Context, inputPath string, project *models.Project, arena *Arena) (string, error) {
	outputPath := arena.Allocate(fmt.Sprintf("subtitled_%s.mp4", uuid.New().String()))

	g := NewGraph()
	base := InputVideo(0)

	for _, track := range project.SubtitleTracks {
		if !boolOr(track.Enabled, true) {
			continue
		}

		fontSize := intOr(track.Style.FontSize, 48)
		fontColor := ffColor(strOr(track.Style.FontColor, "#ffffff"))
		boxColor := ffColor(strOr(track.Style.BackgroundColor, "#00000080"))

		// Vertical anchor: 8% from the top or bottom edge of the frame
		y := "h-text_h-h*0.08"
		if strOr(track.Style.Position, "bottom") == "top" {
			y = "h*0.08"
		}

		for _, entry := range track.Entries {
			base = g.Chain(base, fmt.Sprintf(
				"drawtext=text='%s':fontsize=%d:fontcolor=%s:box=1:boxcolor=%s:boxborderw=8:x=(w-text_w)/2:y=%s:enable='between(t,%s,%s)'",
				escapeText(entry.Text),
				fontSize,
				fontColor,
				boxColor,
				y,
				seconds(entry.StartMs),
				seconds(entry.EndMs),
			), "sub")
		}
	}

	if g.Empty() {
		return inputPath, nil
	}

	args := []string{
		"-y",
		"-i", inputPath,
		"-filter_complex", g.String(),
		"-map", g.Map(base),
		"-map", "0:a?",
		"-c:v", "libx264",
		"-preset", "fast",
		"-c:a", "copy",
		outputPath,
	}

	if err := p.run(ctx, "subtitle burn", subtitleTimeout, args...); err != nil {
		return "", err
	}

	arena.Release(inputPath)
	return outputPath, nil
}
