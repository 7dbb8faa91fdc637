package render

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// concatenate joins ordered scene clips into one timeline video using the
// container-level stream-copy join — no re-encode. A single clip is returned
// unchanged without invoking the encoder at all.
func (p *Pipeline) concatenate(ctx context.Context, videoPaths []string, arena *Arena) (string, error) {
	if len(videoPaths) == 1 {
		return videoPaths[0], nil
	}

	outputPath := arena.Allocate(fmt.Sprintf("concat_%s.mp4", uuid.New().String()))
	listPath := arena.Allocate(fmt.Sprintf("concat_list_%s.txt", uuid.New().String()))

	var sb strings.Builder
	for _, path := range videoPaths {
		// ffmpeg concat manifest format; single quotes in paths are escaped
		fmt.Fprintf(&sb, "file '%s'\n", strings.ReplaceAll(path, "'", `'\''`))
	}

	if err := os.WriteFile(listPath, []byte(sb.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write concat list: %w", err)
	}
	// Manifest is deleted whatever the encoder does
	defer arena.Release(listPath)

	args := []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		outputPath,
	}

	if err := p.run(ctx, "video concatenation", concatTimeout, args...); err != nil {
		return "", err
	}

	return outputPath, nil
}
