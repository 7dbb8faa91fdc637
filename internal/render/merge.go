package render

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
)

// merge combines the final video and mixed audio into the deliverable and
// persists it to durable storage under a globally unique name. Video is
// stream-copied, audio is re-encoded to the deliverable codec, and -shortest
// caps the output at the shorter of the two streams. Both inputs and the
// local merge temp are deleted on success.
func (p *Pipeline) merge(ctx context.Context, videoPath, audioPath string, arena *Arena) (string, error) {
	localPath := arena.Allocate(fmt.Sprintf("final_%s.mp4", uuid.New().String()))

	args := []string{
		"-y",
		"-i", videoPath,
		"-i", audioPath,
		"-c:v", "copy",
		"-c:a", "aac",
		"-shortest",
		localPath,
	}

	if err := p.run(ctx, "audio/video merge", mergeTimeout, args...); err != nil {
		return "", err
	}

	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to read merged output: %w", err)
	}

	outputPath := fmt.Sprintf("renders/final_%s.mp4", uuid.New().String())
	if err := p.store.Put(outputPath, data); err != nil {
		return "", &StorageError{Op: "put", Err: err}
	}

	arena.Release(localPath)
	arena.Release(videoPath)
	arena.Release(audioPath)

	return outputPath, nil
}
