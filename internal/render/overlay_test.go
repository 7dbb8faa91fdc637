package render

import (
	"context"
	"strings"
	"testing"

	"github.com/clipforge/clipforge/internal/models"
)

func TestOverlayClipTimeWindow(t *testing.T) {
	assets := map[int64]models.Asset{1: videoAsset(1)}
	p, runner, _ := newTestPipeline(t, assets)
	project := testProject()
	project.VideoTracks = models.VideoTrackList{
		{ID: "vt1", Name: "PIP", Clips: []models.VideoClip{
			{ID: "vc1", AssetID: 1, StartMs: 2000, DurationMs: intp(3000), X: intp(10), Y: intp(20)},
		}},
	}

	_, err := p.overlayVideoTracks(context.Background(), "/tmp/x/base.mp4", project, assets, newArenaForTest(t))
	if err != nil {
		t.Fatalf("overlayVideoTracks failed: %v", err)
	}

	graph := filterComplexArg(t, runner.calls[0])
	if !strings.Contains(graph, "overlay=10:20:enable='between(t,2.000,5.000)'") {
		t.Errorf("expected master-timeline gated overlay, got %s", graph)
	}
}

func TestOverlayClipDefaults(t *testing.T) {
	assets := map[int64]models.Asset{1: videoAsset(1)}
	p, runner, _ := newTestPipeline(t, assets)
	project := testProject()
	project.VideoTracks = models.VideoTrackList{
		{ID: "vt1", Name: "PIP", Clips: []models.VideoClip{
			{ID: "vc1", AssetID: 1, StartMs: 0},
		}},
	}

	if _, err := p.overlayVideoTracks(context.Background(), "/tmp/x/base.mp4", project, assets, newArenaForTest(t)); err != nil {
		t.Fatalf("overlayVideoTracks failed: %v", err)
	}

	graph := filterComplexArg(t, runner.calls[0])
	// Default size 320x180, default 5s window, default position 0,0
	if !strings.Contains(graph, "scale=320:180,setpts=PTS-STARTPTS") {
		t.Errorf("expected default overlay size, got %s", graph)
	}
	if !strings.Contains(graph, "overlay=0:0:enable='between(t,0.000,5.000)'") {
		t.Errorf("expected default 5s window at origin, got %s", graph)
	}
	if strings.Contains(graph, "colorchannelmixer") {
		t.Errorf("fully opaque clip must not get an alpha chain: %s", graph)
	}
}

func TestOverlayClipOpacity(t *testing.T) {
	assets := map[int64]models.Asset{1: videoAsset(1)}
	p, runner, _ := newTestPipeline(t, assets)
	project := testProject()
	project.VideoTracks = models.VideoTrackList{
		{ID: "vt1", Name: "Watermark", Clips: []models.VideoClip{
			{ID: "vc1", AssetID: 1, StartMs: 0, Opacity: floatp(0.5)},
		}},
	}

	if _, err := p.overlayVideoTracks(context.Background(), "/tmp/x/base.mp4", project, assets, newArenaForTest(t)); err != nil {
		t.Fatalf("overlayVideoTracks failed: %v", err)
	}

	graph := filterComplexArg(t, runner.calls[0])
	if !strings.Contains(graph, "format=rgba,colorchannelmixer=aa=0.500") {
		t.Errorf("expected alpha scaling for translucent clip, got %s", graph)
	}
}

func TestOverlayInvisibleTrackSkipped(t *testing.T) {
	assets := map[int64]models.Asset{1: videoAsset(1)}
	p, runner, _ := newTestPipeline(t, assets)
	project := testProject()
	project.VideoTracks = models.VideoTrackList{
		{ID: "vt1", Name: "Hidden", Visible: boolp(false), Clips: []models.VideoClip{
			{ID: "vc1", AssetID: 1, StartMs: 0},
		}},
	}

	out, err := p.overlayVideoTracks(context.Background(), "/tmp/x/base.mp4", project, assets, newArenaForTest(t))
	if err != nil {
		t.Fatalf("overlayVideoTracks failed: %v", err)
	}
	if out != "/tmp/x/base.mp4" {
		t.Errorf("expected input returned unchanged, got %s", out)
	}
	if len(runner.calls) != 0 {
		t.Errorf("invisible track must not invoke the encoder, got %d calls", len(runner.calls))
	}
}

func TestOverlayAudioPassesThrough(t *testing.T) {
	assets := map[int64]models.Asset{1: videoAsset(1)}
	p, runner, _ := newTestPipeline(t, assets)
	project := testProject()
	project.VideoTracks = models.VideoTrackList{
		{ID: "vt1", Name: "PIP", Clips: []models.VideoClip{
			{ID: "vc1", AssetID: 1, StartMs: 0},
		}},
	}

	if _, err := p.overlayVideoTracks(context.Background(), "/tmp/x/base.mp4", project, assets, newArenaForTest(t)); err != nil {
		t.Fatalf("overlayVideoTracks failed: %v", err)
	}

	argv := strings.Join(runner.calls[0], " ")
	if !strings.Contains(argv, "-map 0:a? -c:v libx264 -preset fast -c:a copy") {
		t.Errorf("expected base audio mapped and copied untouched, got %s", argv)
	}
}
