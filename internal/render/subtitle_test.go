package render

import (
	"context"
	"strings"
	"testing"

	"github.com/clipforge/clipforge/internal/models"
)

func subtitleProject(tracks ...models.SubtitleTrack) *models.Project {
	p := testProject()
	p.SubtitleTracks = tracks
	return p
}

func TestBurnSubtitlesDefaults(t *testing.T) {
	p, runner, _ := newTestPipeline(t, nil)
	project := subtitleProject(models.SubtitleTrack{
		ID:   "st1",
		Name: "English",
		Entries: []models.SubtitleEntry{
			{ID: "e1", StartMs: 1000, EndMs: 3500, Text: "Hello"},
		},
	})

	if _, err := p.burnSubtitles(context.Background(), "/tmp/x/base.mp4", project, newArenaForTest(t)); err != nil {
		t.Fatalf("burnSubtitles failed: %v", err)
	}

	graph := filterComplexArg(t, runner.calls[0])
	if !strings.Contains(graph, "drawtext=text='Hello':fontsize=48:fontcolor=0xffffff:box=1:boxcolor=0x00000080:boxborderw=8") {
		t.Errorf("expected default subtitle styling, got %s", graph)
	}
	if !strings.Contains(graph, "y=h-text_h-h*0.08") {
		t.Errorf("expected bottom anchoring by default, got %s", graph)
	}
	if !strings.Contains(graph, "enable='between(t,1.000,3.500)'") {
		t.Errorf("expected entry time window, got %s", graph)
	}
}

func TestBurnSubtitlesTopPosition(t *testing.T) {
	p, runner, _ := newTestPipeline(t, nil)
	project := subtitleProject(models.SubtitleTrack{
		ID:    "st1",
		Name:  "English",
		Style: models.SubtitleStyle{Position: strp("top")},
		Entries: []models.SubtitleEntry{
			{ID: "e1", StartMs: 0, EndMs: 1000, Text: "Up here"},
		},
	})

	if _, err := p.burnSubtitles(context.Background(), "/tmp/x/base.mp4", project, newArenaForTest(t)); err != nil {
		t.Fatalf("burnSubtitles failed: %v", err)
	}

	graph := filterComplexArg(t, runner.calls[0])
	if !strings.Contains(graph, "y=h*0.08:") {
		t.Errorf("expected top anchoring, got %s", graph)
	}
}

func TestBurnSubtitlesDisabledTrackSkipped(t *testing.T) {
	p, runner, _ := newTestPipeline(t, nil)
	project := subtitleProject(models.SubtitleTrack{
		ID:      "st1",
		Name:    "Muted",
		Enabled: boolp(false),
		Entries: []models.SubtitleEntry{
			{ID: "e1", StartMs: 0, EndMs: 1000, Text: "Never shown"},
		},
	})

	out, err := p.burnSubtitles(context.Background(), "/tmp/x/base.mp4", project, newArenaForTest(t))
	if err != nil {
		t.Fatalf("burnSubtitles failed: %v", err)
	}
	if out != "/tmp/x/base.mp4" {
		t.Errorf("expected input returned unchanged, got %s", out)
	}
	if len(runner.calls) != 0 {
		t.Errorf("disabled track must not invoke the encoder, got %d calls", len(runner.calls))
	}
}

func TestBurnSubtitlesDrawOrder(t *testing.T) {
	p, runner, _ := newTestPipeline(t, nil)
	project := subtitleProject(
		models.SubtitleTrack{ID: "st1", Name: "A", Entries: []models.SubtitleEntry{
			{ID: "e1", StartMs: 0, EndMs: 1000, Text: "first"},
			{ID: "e2", StartMs: 1000, EndMs: 2000, Text: "second"},
		}},
		models.SubtitleTrack{ID: "st2", Name: "B", Entries: []models.SubtitleEntry{
			{ID: "e3", StartMs: 0, EndMs: 1000, Text: "third"},
		}},
	)

	if _, err := p.burnSubtitles(context.Background(), "/tmp/x/base.mp4", project, newArenaForTest(t)); err != nil {
		t.Fatalf("burnSubtitles failed: %v", err)
	}

	graph := filterComplexArg(t, runner.calls[0])
	i1 := strings.Index(graph, "text='first'")
	i2 := strings.Index(graph, "text='second'")
	i3 := strings.Index(graph, "text='third'")
	if i1 == -1 || i2 == -1 || i3 == -1 || !(i1 < i2 && i2 < i3) {
		t.Errorf("expected track order then entry order, got %s", graph)
	}
}
