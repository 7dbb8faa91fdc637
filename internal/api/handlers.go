package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/clipforge/clipforge/internal/db"
	"github.com/clipforge/clipforge/internal/models"
	"github.com/clipforge/clipforge/internal/queue"
	"github.com/clipforge/clipforge/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type Handler struct {
	db      *db.DB
	queue   *queue.Queue
	storage *storage.Storage
}

func NewHandler(database *db.DB, q *queue.Queue, stor *storage.Storage) *Handler {
	return &Handler{
		db:      database,
		queue:   q,
		storage: stor,
	}
}

// CreateProject handles POST /v1/projects
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "Name is required")
		return
	}

	project := &models.Project{
		ID:               uuid.New(),
		Name:             req.Name,
		ResolutionWidth:  intOrDefault(req.ResolutionWidth, 1920),
		ResolutionHeight: intOrDefault(req.ResolutionHeight, 1080),
		FPS:              intOrDefault(req.FPS, 30),
		Scenes:           models.SceneList{},
		AudioTracks:      models.AudioTrackList{},
		VideoTracks:      models.VideoTrackList{},
		SubtitleTracks:   models.SubtitleTrackList{},
		Status:           models.ProjectStatusDraft,
	}

	if err := h.db.CreateProject(r.Context(), project); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create project")
		return
	}

	respondJSON(w, http.StatusCreated, project)
}

// ListProjects handles GET /v1/projects
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > 100 {
		limit = 100
	}

	offset := 0
	if o := r.URL.Query().Get("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	projects, err := h.db.ListProjects(r.Context(), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list projects")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"projects": projects,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetProject handles GET /v1/projects/{id}
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	project, err := h.db.GetProject(r.Context(), projectID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Project not found")
		return
	}

	respondJSON(w, http.StatusOK, project)
}

// UpdateProject handles PUT /v1/projects/{id} — saves the editable timeline
// fields (name, scenes, tracks). Omitted fields keep their stored value.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	if _, err := h.db.GetProject(r.Context(), projectID); err != nil {
		respondError(w, http.StatusNotFound, "Project not found")
		return
	}

	var req models.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.SubtitleTracks != nil {
		for _, track := range *req.SubtitleTracks {
			if pos := track.Style.Position; pos != nil && *pos != "top" && *pos != "bottom" {
				respondError(w, http.StatusUnprocessableEntity, "Subtitle position must be top or bottom")
				return
			}
		}
	}

	if err := h.db.UpdateProjectTimeline(r.Context(), projectID, &req); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update project")
		return
	}

	project, err := h.db.GetProject(r.Context(), projectID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to reload project")
		return
	}

	respondJSON(w, http.StatusOK, project)
}

// RegisterAsset handles POST /v1/assets — records a media file already
// present on a storage disk so the timeline can reference it. Upload and
// thumbnailing are handled elsewhere.
func (h *Handler) RegisterAsset(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" || req.Path == "" {
		respondError(w, http.StatusBadRequest, "Name and path are required")
		return
	}

	switch req.Type {
	case models.AssetTypeVideo, models.AssetTypeImage, models.AssetTypeAudio:
	default:
		respondError(w, http.StatusBadRequest, "Type must be video, image, or audio")
		return
	}

	disk := storage.DefaultDisk
	if req.Disk != nil {
		disk = *req.Disk
	}

	asset := &models.Asset{
		ProjectID:  req.ProjectID,
		Type:       req.Type,
		Source:     models.AssetSourceUpload,
		Name:       req.Name,
		Path:       req.Path,
		Disk:       disk,
		MimeType:   req.MimeType,
		SizeBytes:  req.SizeBytes,
		DurationMs: req.DurationMs,
		Width:      req.Width,
		Height:     req.Height,
	}

	if err := h.db.CreateAsset(r.Context(), asset); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create asset")
		return
	}

	respondJSON(w, http.StatusCreated, asset)
}

// StreamAsset handles GET /v1/assets/{id} — serves the asset bytes with its
// stored mime type.
func (h *Handler) StreamAsset(w http.ResponseWriter, r *http.Request) {
	assetID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid asset ID")
		return
	}

	asset, err := h.db.GetAsset(r.Context(), assetID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Asset not found")
		return
	}

	if !h.storage.Exists(asset.Disk, asset.Path) {
		respondError(w, http.StatusNotFound, "Asset file not found")
		return
	}

	w.Header().Set("Content-Type", asset.MimeType)
	http.ServeFile(w, r, h.storage.Path(asset.Disk, asset.Path))
}

// ListProjectAssets handles GET /v1/projects/{id}/assets
func (h *Handler) ListProjectAssets(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	assets, err := h.db.GetProjectAssets(r.Context(), projectID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list assets")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"assets": assets})
}

// CreateRender handles POST /v1/projects/{id}/renders — creates a queued
// render record and hands it to the background worker.
func (h *Handler) CreateRender(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	if _, err := h.db.GetProject(r.Context(), projectID); err != nil {
		respondError(w, http.StatusNotFound, "Project not found")
		return
	}

	render := &models.Render{
		ID:        uuid.New(),
		ProjectID: projectID,
		Status:    models.RenderStatusQueued,
		Progress:  0,
	}

	if err := h.db.CreateRender(r.Context(), render); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create render")
		return
	}

	if err := h.queue.EnqueueRenderProject(r.Context(), projectID, render.ID); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to enqueue render")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"render": render})
}

// GetRender handles GET /v1/renders/{id} — the pollable render record.
func (h *Handler) GetRender(w http.ResponseWriter, r *http.Request) {
	renderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid render ID")
		return
	}

	render, err := h.db.GetRender(r.Context(), renderID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Render not found")
		return
	}

	response := models.RenderResponse{Render: *render}
	if render.IsComplete() && render.OutputPath != nil {
		url := fmt.Sprintf("/v1/renders/%s/download", render.ID)
		response.OutputURL = &url
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"render": response})
}

// ListProjectRenders handles GET /v1/projects/{id}/renders
func (h *Handler) ListProjectRenders(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	renders, err := h.db.GetProjectRenders(r.Context(), projectID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list renders")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"renders": renders})
}

// DownloadRender handles GET /v1/renders/{id}/download — streams the
// deliverable once the render has completed, named after the project.
func (h *Handler) DownloadRender(w http.ResponseWriter, r *http.Request) {
	renderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid render ID")
		return
	}

	render, err := h.db.GetRender(r.Context(), renderID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Render not found")
		return
	}

	if !render.IsComplete() || render.OutputPath == nil {
		respondError(w, http.StatusNotFound, "Render not available for download")
		return
	}

	project, err := h.db.GetProject(r.Context(), render.ProjectID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Project not found")
		return
	}

	f, err := h.storage.Open(*render.OutputPath)
	if err != nil {
		respondError(w, http.StatusNotFound, "Output file not found")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "video/mp4")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", project.Name+".mp4"))
	io.Copy(w, f)
}

// Helpers

func intOrDefault(v *int, def int) int {
	if v != nil {
		return *v
	}
	return def
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// Health check
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
