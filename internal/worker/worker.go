package worker

import (
	"context"
	"log"
	"time"

	"github.com/clipforge/clipforge/internal/db"
	"github.com/clipforge/clipforge/internal/models"
	"github.com/clipforge/clipforge/internal/queue"
	"github.com/clipforge/clipforge/internal/render"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Worker consumes render jobs from the queue and drives the pipeline. Each
// render runs on exactly one consumer goroutine with no intra-render
// parallelism; concurrency here is across independent renders only.
type Worker struct {
	db       *db.DB
	queue    *queue.Queue
	pipeline *render.Pipeline
}

func New(database *db.DB, q *queue.Queue, pipeline *render.Pipeline) *Worker {
	return &Worker{
		db:       database,
		queue:    q,
		pipeline: pipeline,
	}
}

// Start runs concurrency consumer loops until ctx is cancelled.
func (w *Worker) Start(ctx context.Context, concurrency int) {
	log.Printf("[Worker] started with concurrency: %d", concurrency)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < concurrency; i++ {
		g.Go(func() error {
			w.consume(ctx)
			return nil
		})
	}

	g.Wait()
	log.Println("[Worker] shut down")
}

func (w *Worker) consume(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			job, err := w.queue.Dequeue(ctx, queue.QueueRenderProject, 5*time.Second)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Printf("[Worker] dequeue error: %v", err)
				continue
			}

			if job == nil {
				continue // No job available, retry
			}

			log.Printf("[Worker] processing render %s (project %s)", job.RenderID, job.ProjectID)

			if err := w.handleRender(ctx, job); err != nil {
				// Single attempt: the failure is already on the render
				// record, nothing goes back on the queue.
				log.Printf("[Worker] render %s failed: %v", job.RenderID, err)
			} else {
				log.Printf("[Worker] render %s completed", job.RenderID)
			}
		}
	}
}

func (w *Worker) handleRender(ctx context.Context, job *queue.Job) error {
	project, err := w.db.GetProject(ctx, job.ProjectID)
	if err != nil {
		w.db.FailRender(ctx, job.RenderID, err.Error())
		return err
	}

	w.db.UpdateProjectStatus(ctx, project.ID, models.ProjectStatusRendering)

	rec := &renderRecorder{db: w.db, renderID: job.RenderID}
	if _, err := w.pipeline.Run(ctx, project, rec); err != nil {
		w.db.UpdateProjectStatus(ctx, project.ID, models.ProjectStatusFailed)
		return err
	}

	return w.db.UpdateProjectStatus(ctx, project.ID, models.ProjectStatusCompleted)
}

// renderRecorder writes pipeline checkpoints onto the render row. It is the
// only writer for that row while the render runs.
type renderRecorder struct {
	db       *db.DB
	renderID uuid.UUID
}

func (r *renderRecorder) Begin(ctx context.Context) error {
	return r.db.StartRender(ctx, r.renderID)
}

func (r *renderRecorder) Checkpoint(ctx context.Context, status models.RenderStatus, progress int) error {
	return r.db.UpdateRenderCheckpoint(ctx, r.renderID, status, progress)
}

func (r *renderRecorder) Complete(ctx context.Context, outputPath string) error {
	return r.db.CompleteRender(ctx, r.renderID, outputPath)
}

func (r *renderRecorder) Fail(ctx context.Context, message string) error {
	return r.db.FailRender(ctx, r.renderID, message)
}
