package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Enums

type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "draft"
	ProjectStatusRendering ProjectStatus = "rendering"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusFailed    ProjectStatus = "failed"
)

type RenderStatus string

const (
	RenderStatusQueued      RenderStatus = "queued"
	RenderStatusProcessing  RenderStatus = "processing"
	RenderStatusCompositing RenderStatus = "compositing"
	RenderStatusMixing      RenderStatus = "mixing"
	RenderStatusCompleted   RenderStatus = "completed"
	RenderStatusFailed      RenderStatus = "failed"
)

type AssetType string

const (
	AssetTypeVideo AssetType = "video"
	AssetTypeImage AssetType = "image"
	AssetTypeAudio AssetType = "audio"
)

type AssetSource string

const (
	AssetSourceUpload    AssetSource = "upload"
	AssetSourceGenerated AssetSource = "generated"
)

type LayerType string

const (
	LayerTypeVideo LayerType = "video"
	LayerTypeImage LayerType = "image"
	LayerTypeText  LayerType = "text"
)

// Timeline types — stored as JSONB columns on the projects table.

// Layer is a type-tagged union over {video, image, text}. Video and image
// layers carry an asset reference plus a transform; text layers carry the
// literal text and font styling. Callers switch exhaustively on Type.
type Layer struct {
	ID     string    `json:"id"`
	Type   LayerType `json:"type"`
	X      *int      `json:"x,omitempty"`
	Y      *int      `json:"y,omitempty"`
	Width  *int      `json:"width,omitempty"`
	Height *int      `json:"height,omitempty"`

	// video / image
	AssetID int64 `json:"asset_id,omitempty"`

	// text
	Text      string  `json:"text,omitempty"`
	FontSize  *int    `json:"font_size,omitempty"`
	FontColor *string `json:"font_color,omitempty"`
}

type Scene struct {
	ID              string  `json:"id"`
	Name            *string `json:"name,omitempty"`
	DurationMs      int     `json:"duration_ms"`
	Layers          []Layer `json:"layers"` // array order is the z-order, later = on top
	BackgroundColor *string `json:"background_color,omitempty"`
}

type AudioClip struct {
	ID          string   `json:"id"`
	AssetID     int64    `json:"asset_id"`
	StartMs     int      `json:"start_ms"`
	DurationMs  *int     `json:"duration_ms,omitempty"`   // nil = source asset duration, else 10s
	TrimStartMs *int     `json:"trim_start_ms,omitempty"` // nil = 0
	Volume      *float64 `json:"volume,omitempty"`        // nil = 1.0, multiplied by track volume
}

type AudioTrack struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Volume *float64    `json:"volume,omitempty"` // nil = 1.0
	Muted  bool        `json:"muted,omitempty"`
	Clips  []AudioClip `json:"clips"`
}

type VideoClip struct {
	ID         string   `json:"id"`
	AssetID    int64    `json:"asset_id"`
	StartMs    int      `json:"start_ms"`
	DurationMs *int     `json:"duration_ms,omitempty"`
	X          *int     `json:"x,omitempty"`
	Y          *int     `json:"y,omitempty"`
	Width      *int     `json:"width,omitempty"`
	Height     *int     `json:"height,omitempty"`
	Opacity    *float64 `json:"opacity,omitempty"` // nil = fully opaque
}

type VideoTrack struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Visible *bool       `json:"visible,omitempty"` // nil = visible
	Clips   []VideoClip `json:"clips"`
}

type SubtitleStyle struct {
	FontSize        *int    `json:"font_size,omitempty"`        // nil = 48
	FontColor       *string `json:"font_color,omitempty"`       // nil = #ffffff
	BackgroundColor *string `json:"background_color,omitempty"` // nil = #00000080
	Position        *string `json:"position,omitempty"`         // "top" | "bottom", nil = bottom
}

type SubtitleEntry struct {
	ID      string `json:"id"`
	StartMs int    `json:"start_ms"`
	EndMs   int    `json:"end_ms"`
	Text    string `json:"text"`
}

type SubtitleTrack struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Enabled *bool           `json:"enabled,omitempty"` // nil = enabled
	Style   SubtitleStyle   `json:"style"`
	Entries []SubtitleEntry `json:"entries"`
}

// JSONB column wrappers — each timeline array lives in its own jsonb column
// so the editor can save partial updates without rewriting the whole project.

type SceneList []Scene
type AudioTrackList []AudioTrack
type VideoTrackList []VideoTrack
type SubtitleTrackList []SubtitleTrack

func (l SceneList) Value() (driver.Value, error)          { return jsonbValue(l) }
func (l *SceneList) Scan(value interface{}) error         { return jsonbScan(value, l) }
func (l AudioTrackList) Value() (driver.Value, error)     { return jsonbValue(l) }
func (l *AudioTrackList) Scan(value interface{}) error    { return jsonbScan(value, l) }
func (l VideoTrackList) Value() (driver.Value, error)     { return jsonbValue(l) }
func (l *VideoTrackList) Scan(value interface{}) error    { return jsonbScan(value, l) }
func (l SubtitleTrackList) Value() (driver.Value, error)  { return jsonbValue(l) }
func (l *SubtitleTrackList) Scan(value interface{}) error { return jsonbScan(value, l) }

func jsonbValue(v interface{}) (driver.Value, error) {
	return json.Marshal(v)
}

func jsonbScan(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("jsonb scan: expected []byte, got %T", value)
	}
	return json.Unmarshal(bytes, dest)
}

// Models

type Project struct {
	ID               uuid.UUID         `json:"id"`
	Name             string            `json:"name"`
	ResolutionWidth  int               `json:"resolution_width"`
	ResolutionHeight int               `json:"resolution_height"`
	FPS              int               `json:"fps"`
	Scenes           SceneList         `json:"scenes"`
	AudioTracks      AudioTrackList    `json:"audio_tracks"`
	VideoTracks      VideoTrackList    `json:"video_tracks"`
	SubtitleTracks   SubtitleTrackList `json:"subtitle_tracks"`
	Status           ProjectStatus     `json:"status"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// TotalDurationMs is the length of the full timeline: the sum of all scene
// durations, in milliseconds.
func (p *Project) TotalDurationMs() int {
	total := 0
	for _, scene := range p.Scenes {
		total += scene.DurationMs
	}
	return total
}

type Asset struct {
	ID         int64       `json:"id"`
	ProjectID  *uuid.UUID  `json:"project_id,omitempty"`
	Type       AssetType   `json:"type"`
	Source     AssetSource `json:"source"`
	Name       string      `json:"name"`
	Path       string      `json:"path"` // relative to its disk root
	Disk       string      `json:"disk"`
	MimeType   string      `json:"mime_type"`
	SizeBytes  int64       `json:"size_bytes"`
	DurationMs *int        `json:"duration_ms,omitempty"` // nil for images
	Width      *int        `json:"width,omitempty"`
	Height     *int        `json:"height,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// Render is the single externally observable record of one render execution.
// Status and progress only move forward on the success path; progress reaches
// 100 exactly when the render completes.
type Render struct {
	ID           uuid.UUID    `json:"id"`
	ProjectID    uuid.UUID    `json:"project_id"`
	Status       RenderStatus `json:"status"`
	Progress     int          `json:"progress"` // 0-100
	OutputPath   *string      `json:"output_path,omitempty"`
	ErrorMessage *string      `json:"error_message,omitempty"`
	StartedAt    *time.Time   `json:"started_at,omitempty"`
	CompletedAt  *time.Time   `json:"completed_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (r *Render) IsComplete() bool {
	return r.Status == RenderStatusCompleted
}

func (r *Render) IsFailed() bool {
	return r.Status == RenderStatusFailed
}

func (r *Render) IsProcessing() bool {
	switch r.Status {
	case RenderStatusProcessing, RenderStatusCompositing, RenderStatusMixing:
		return true
	}
	return false
}

// DTOs for API requests and responses

type CreateProjectRequest struct {
	Name             string `json:"name"`
	ResolutionWidth  *int   `json:"resolution_width,omitempty"`  // Default: 1920
	ResolutionHeight *int   `json:"resolution_height,omitempty"` // Default: 1080
	FPS              *int   `json:"fps,omitempty"`               // Default: 30
}

type UpdateProjectRequest struct {
	Name           *string            `json:"name,omitempty"`
	Scenes         *SceneList         `json:"scenes,omitempty"`
	AudioTracks    *AudioTrackList    `json:"audio_tracks,omitempty"`
	VideoTracks    *VideoTrackList    `json:"video_tracks,omitempty"`
	SubtitleTracks *SubtitleTrackList `json:"subtitle_tracks,omitempty"`
}

type RegisterAssetRequest struct {
	ProjectID  *uuid.UUID `json:"project_id,omitempty"`
	Type       AssetType  `json:"type"`
	Name       string     `json:"name"`
	Path       string     `json:"path"`
	Disk       *string    `json:"disk,omitempty"` // Default: "local"
	MimeType   string     `json:"mime_type"`
	SizeBytes  int64      `json:"size_bytes"`
	DurationMs *int       `json:"duration_ms,omitempty"`
	Width      *int       `json:"width,omitempty"`
	Height     *int       `json:"height,omitempty"`
}

type RenderResponse struct {
	Render
	OutputURL *string `json:"output_url,omitempty"`
}
