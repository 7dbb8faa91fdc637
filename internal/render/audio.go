package render

import (
	"context"
	"fmt"

	"github.com/clipforge/clipforge/internal/models"
	"github.com/google/uuid"
)

// mixAudioTracks mixes every audio clip across all tracks into a single
// stereo stream sized exactly to the full timeline. Muted tracks contribute
// nothing, whatever their clips say. Each clip is trimmed to
// its source window, delayed to its timeline onset, and amplitude-scaled by
// clip volume x track volume. The mix naturally runs as long as the longest
// contributor and is then hard-truncated. Zero clips synthesize silence of
// the exact duration instead.
func (p *Pipeline) mixAudioTracks(ctx context.Context, tracks models.AudioTrackList, totalDurationMs int, assetsByID map[int64]models.Asset, arena *Arena) (string, error) {
	outputPath := arena.Allocate(fmt.Sprintf("audio_mix_%s.mp3", uuid.New().String()))
	durSec := seconds(totalDurationMs)

	var inputs []string
	g := NewGraph()
	var mixInputs []Label

	for _, track := range tracks {
		if track.Muted {
			continue
		}
		trackVolume := floatOr(track.Volume, 1.0)

		for _, clip := range track.Clips {
			asset, ok := assetsByID[clip.AssetID]
			if !ok {
				continue
			}

			inputs = append(inputs, p.store.Path(asset.Disk, asset.Path))
			idx := len(inputs) - 1

			// Clip length falls back to the source asset's known duration,
			// then to 10s when nothing is known.
			durationMs := 10000
			if clip.DurationMs != nil {
				durationMs = *clip.DurationMs
			} else if asset.DurationMs != nil {
				durationMs = *asset.DurationMs
			}

			trimStartMs := intOr(clip.TrimStartMs, 0)
			volume := floatOr(clip.Volume, 1.0) * trackVolume
			delayMs := clip.StartMs

			// adelay is applied to both channels identically
			mixed := g.Chain(
				InputAudio(idx),
				fmt.Sprintf("atrim=start=%s:duration=%s,adelay=%d|%d,volume=%.3f",
					seconds(trimStartMs), seconds(durationMs), delayMs, delayMs, volume),
				"a",
			)
			mixInputs = append(mixInputs, mixed)
		}
	}

	if len(mixInputs) == 0 {
		return p.createSilentAudio(ctx, durSec, outputPath)
	}

	mixed := g.NewLabel("aout")
	g.Node(mixInputs, fmt.Sprintf("amix=inputs=%d:duration=longest", len(mixInputs)), []Label{mixed})

	args := []string{"-y"}
	for _, input := range inputs {
		args = append(args, "-i", input)
	}
	args = append(args,
		"-filter_complex", g.String(),
		"-map", g.Map(mixed),
		"-t", durSec,
		outputPath,
	)

	if err := p.run(ctx, "audio mixing", mixTimeout, args...); err != nil {
		return "", err
	}

	return outputPath, nil
}

// createSilentAudio synthesizes a silent stereo stream of exactly durSec.
func (p *Pipeline) createSilentAudio(ctx context.Context, durSec, outputPath string) (string, error) {
	args := []string{
		"-y",
		"-f", "lavfi",
		"-i", "anullsrc=r=44100:cl=stereo",
		"-t", durSec,
		outputPath,
	}

	if err := p.run(ctx, "silent audio creation", silenceTimeout, args...); err != nil {
		return "", err
	}

	return outputPath, nil
}
