package render

import (
	"context"
	"log"
	"time"

	"github.com/clipforge/clipforge/internal/models"
)

// AssetResolver loads asset records referenced by the timeline.
type AssetResolver interface {
	GetAssetsByIDs(ctx context.Context, ids []int64) ([]models.Asset, error)
}

// ObjectStore is the pipeline's view of storage: existence checks and local
// path resolution for inputs, Put for the final deliverable.
type ObjectStore interface {
	Exists(disk, path string) bool
	Path(disk, path string) string
	Put(path string, data []byte) error
}

// Recorder receives the render's observable state transitions. Updates
// happen only at stage boundaries; pollers never see sub-stage state.
type Recorder interface {
	Begin(ctx context.Context) error
	Checkpoint(ctx context.Context, status models.RenderStatus, progress int) error
	Complete(ctx context.Context, outputPath string) error
	Fail(ctx context.Context, message string) error
}

// Pipeline renders one project timeline into a single deliverable by driving
// the encoder through a fixed sequence of stages. Stages are strictly
// sequential: each stage's output file is the next stage's mandatory input.
type Pipeline struct {
	runner  Runner
	assets  AssetResolver
	store   ObjectStore
	tempDir string
}

func NewPipeline(runner Runner, assets AssetResolver, store ObjectStore, tempDir string) *Pipeline {
	return &Pipeline{
		runner:  runner,
		assets:  assets,
		store:   store,
		tempDir: tempDir,
	}
}

// Run executes the full render: validate -> compose scenes -> concatenate ->
// overlay -> subtitles -> mix audio -> merge -> persist. It records progress
// checkpoints through rec and returns the durable output reference.
//
// A render gets exactly one attempt. On any failure the error is written to
// the record via rec.Fail and returned so the job runner can apply its own
// policy. Temporary artifacts are swept on both paths.
func (p *Pipeline) Run(ctx context.Context, project *models.Project, rec Recorder) (outputPath string, err error) {
	arena, err := NewArena(p.tempDir)
	if err != nil {
		rec.Fail(ctx, err.Error())
		return "", err
	}
	defer arena.Sweep()

	defer func() {
		if err != nil {
			log.Printf("[Render] project %s failed: %v", project.ID, err)
			rec.Fail(ctx, err.Error())
		}
	}()

	if err = rec.Begin(ctx); err != nil {
		return "", err
	}

	if len(project.Scenes) == 0 {
		err = &ValidationError{Message: "no scenes to render"}
		return "", err
	}

	assetsByID, err := p.validateAssets(ctx, project)
	if err != nil {
		return "", err
	}

	if err = rec.Checkpoint(ctx, models.RenderStatusCompositing, 10); err != nil {
		return "", err
	}

	sceneVideos := make([]string, 0, len(project.Scenes))
	total := len(project.Scenes)
	for i, scene := range project.Scenes {
		log.Printf("[Render] project %s: compositing scene %d/%d", project.ID, i+1, total)

		sceneVideo, sceneErr := p.renderScene(ctx, project, scene, assetsByID, arena)
		if sceneErr != nil {
			err = sceneErr
			return "", err
		}
		sceneVideos = append(sceneVideos, sceneVideo)

		progress := 10 + 50*(i+1)/total
		if err = rec.Checkpoint(ctx, models.RenderStatusCompositing, progress); err != nil {
			return "", err
		}
	}

	if err = rec.Checkpoint(ctx, models.RenderStatusMixing, 70); err != nil {
		return "", err
	}

	video, err := p.concatenate(ctx, sceneVideos, arena)
	if err != nil {
		return "", err
	}

	if len(project.VideoTracks) > 0 {
		if err = rec.Checkpoint(ctx, models.RenderStatusMixing, 75); err != nil {
			return "", err
		}
		video, err = p.overlayVideoTracks(ctx, video, project, assetsByID, arena)
		if err != nil {
			return "", err
		}
	}

	if len(project.SubtitleTracks) > 0 {
		if err = rec.Checkpoint(ctx, models.RenderStatusMixing, 78); err != nil {
			return "", err
		}
		video, err = p.burnSubtitles(ctx, video, project, arena)
		if err != nil {
			return "", err
		}
	}

	totalDurationMs := project.TotalDurationMs()

	audio, err := p.mixAudioTracks(ctx, project.AudioTracks, totalDurationMs, assetsByID, arena)
	if err != nil {
		return "", err
	}

	outputPath, err = p.merge(ctx, video, audio, arena)
	if err != nil {
		return "", err
	}

	if err = rec.Complete(ctx, outputPath); err != nil {
		return "", err
	}

	log.Printf("[Render] project %s: completed, output %s", project.ID, outputPath)
	return outputPath, nil
}

// run invokes the encoder for one stage, converting any failure into an
// EncodeError carrying the diagnostic stream.
func (p *Pipeline) run(ctx context.Context, stage string, timeout time.Duration, args ...string) error {
	stderr, err := p.runner.Run(ctx, timeout, args...)
	if err != nil {
		return &EncodeError{Stage: stage, Stderr: stderr, Err: err}
	}
	return nil
}

// Optional-field defaults. The editor omits fields it considers default;
// the pipeline resolves them exactly once, here.

func intOr(v *int, def int) int {
	if v != nil {
		return *v
	}
	return def
}

func floatOr(v *float64, def float64) float64 {
	if v != nil {
		return *v
	}
	return def
}

func boolOr(v *bool, def bool) bool {
	if v != nil {
		return *v
	}
	return def
}

func strOr(v *string, def string) string {
	if v != nil {
		return *v
	}
	return def
}
