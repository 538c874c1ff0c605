// Package workers runs background jobs for the API process.
package workers

import (
	"context"
	"time"

	"creatordna_backend/internal/logger"
	"creatordna_backend/internal/models"
	"creatordna_backend/internal/repositories"
	"creatordna_backend/internal/services"
)

const sweepInterval = 10 * time.Minute

// MatchingWorker scores match proposals off the request path. Jobs go
// through a buffered channel; a full queue makes Enqueue report false
// so the caller can fall back to inline scoring. A periodic sweep
// re-proposes requests still open, picking up creators who registered
// after the request was created.
type MatchingWorker struct {
	matchingSvc services.MatchingService
	requestRepo repositories.CollabRequestRepository
	jobs        chan string
}

func NewMatchingWorker(matchingSvc services.MatchingService, requestRepo repositories.CollabRequestRepository, queueSize int) *MatchingWorker {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &MatchingWorker{
		matchingSvc: matchingSvc,
		requestRepo: requestRepo,
		jobs:        make(chan string, queueSize),
	}
}

// Enqueue submits a request for proposal scoring. Never blocks.
func (w *MatchingWorker) Enqueue(requestID string) bool {
	select {
	case w.jobs <- requestID:
		return true
	default:
		return false
	}
}

// Start consumes the job queue until the context is cancelled.
func (w *MatchingWorker) Start(ctx context.Context) {
	go func() {
		logger.Info("matching worker started")
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.Info("matching worker stopped")
				return
			case requestID := <-w.jobs:
				if err := w.matchingSvc.ProposeMatches(ctx, requestID); err != nil {
					logger.CtxWarn(ctx, "background match proposal failed",
						"request_id", requestID, "error", err)
				}
			case <-ticker.C:
				w.sweepOpenRequests(ctx)
			}
		}
	}()
}

// sweepOpenRequests re-scores requests with no live proposals so newly
// registered creators become visible to older requests.
func (w *MatchingWorker) sweepOpenRequests(ctx context.Context) {
	open, err := w.requestRepo.ListByStatus(models.RequestStatusOpen)
	if err != nil {
		logger.CtxWarn(ctx, "open request sweep failed", "error", err)
		return
	}
	for _, request := range open {
		if err := w.matchingSvc.ProposeMatches(ctx, request.ID); err != nil {
			logger.CtxWarn(ctx, "sweep proposal failed", "request_id", request.ID, "error", err)
		}
	}
}
