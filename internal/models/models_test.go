package models

import (
	"encoding/json"
	"testing"
)

func TestSceneListValue(t *testing.T) {
	dur := 48
	l := SceneList{
		{ID: "s1", DurationMs: 3000, Layers: []Layer{
			{ID: "l1", Type: LayerTypeText, Text: "Title", FontSize: &dur},
		}},
	}

	data, err := l.Value()
	if err != nil {
		t.Fatalf("failed to marshal scene list: %v", err)
	}

	var result []map[string]interface{}
	if err := json.Unmarshal(data.([]byte), &result); err != nil {
		t.Fatalf("failed to unmarshal result: %v", err)
	}
	if result[0]["duration_ms"].(float64) != 3000 {
		t.Errorf("expected duration_ms=3000, got %v", result[0]["duration_ms"])
	}
}

func TestSceneListScan(t *testing.T) {
	jsonData := []byte(`[{"id":"s1","duration_ms":2000,"layers":[{"id":"l1","type":"video","asset_id":7,"x":100}]}]`)

	var l SceneList
	if err := l.Scan(jsonData); err != nil {
		t.Fatalf("failed to scan: %v", err)
	}

	if len(l) != 1 || l[0].DurationMs != 2000 {
		t.Fatalf("unexpected scene list: %+v", l)
	}
	layer := l[0].Layers[0]
	if layer.Type != LayerTypeVideo || layer.AssetID != 7 {
		t.Errorf("unexpected layer: %+v", layer)
	}
	if layer.X == nil || *layer.X != 100 {
		t.Errorf("expected x=100, got %v", layer.X)
	}
	if layer.Y != nil {
		t.Errorf("omitted y must stay nil, got %v", *layer.Y)
	}
}

func TestScanNilLeavesZeroValue(t *testing.T) {
	var l AudioTrackList
	if err := l.Scan(nil); err != nil {
		t.Fatalf("failed to scan nil: %v", err)
	}
	if l != nil {
		t.Errorf("expected nil list, got %+v", l)
	}
}

func TestRenderStatus(t *testing.T) {
	statuses := []RenderStatus{
		RenderStatusQueued,
		RenderStatusProcessing,
		RenderStatusCompositing,
		RenderStatusMixing,
		RenderStatusCompleted,
		RenderStatusFailed,
	}

	for _, status := range statuses {
		if status == "" {
			t.Errorf("empty status found")
		}
	}
}

func TestRenderStateHelpers(t *testing.T) {
	cases := []struct {
		status     RenderStatus
		complete   bool
		failed     bool
		processing bool
	}{
		{RenderStatusQueued, false, false, false},
		{RenderStatusProcessing, false, false, true},
		{RenderStatusCompositing, false, false, true},
		{RenderStatusMixing, false, false, true},
		{RenderStatusCompleted, true, false, false},
		{RenderStatusFailed, false, true, false},
	}

	for _, c := range cases {
		r := Render{Status: c.status}
		if r.IsComplete() != c.complete {
			t.Errorf("%s: IsComplete expected %v", c.status, c.complete)
		}
		if r.IsFailed() != c.failed {
			t.Errorf("%s: IsFailed expected %v", c.status, c.failed)
		}
		if r.IsProcessing() != c.processing {
			t.Errorf("%s: IsProcessing expected %v", c.status, c.processing)
		}
	}
}

func TestTotalDurationMs(t *testing.T) {
	p := Project{Scenes: SceneList{
		{ID: "s1", DurationMs: 3000},
		{ID: "s2", DurationMs: 2500},
		{ID: "s3", DurationMs: 500},
	}}

	if got := p.TotalDurationMs(); got != 6000 {
		t.Errorf("expected 6000, got %d", got)
	}

	empty := Project{}
	if got := empty.TotalDurationMs(); got != 0 {
		t.Errorf("expected 0 for empty timeline, got %d", got)
	}
}

func TestSubtitleTrackScan(t *testing.T) {
	jsonData := []byte(`[{"id":"st1","name":"EN","style":{"position":"top","font_size":32},"entries":[{"id":"e1","start_ms":0,"end_ms":1500,"text":"Hi"}]}]`)

	var l SubtitleTrackList
	if err := l.Scan(jsonData); err != nil {
		t.Fatalf("failed to scan: %v", err)
	}

	track := l[0]
	if track.Enabled != nil {
		t.Error("omitted enabled must stay nil")
	}
	if track.Style.Position == nil || *track.Style.Position != "top" {
		t.Errorf("unexpected position: %v", track.Style.Position)
	}
	if track.Style.FontColor != nil {
		t.Error("omitted font_color must stay nil")
	}
	if len(track.Entries) != 1 || track.Entries[0].EndMs != 1500 {
		t.Errorf("unexpected entries: %+v", track.Entries)
	}
}
