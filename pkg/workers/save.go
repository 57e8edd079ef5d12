package workers

import (
	"context"

	"github.com/cbodonnell/lockstep/pkg/log"
	"github.com/cbodonnell/lockstep/pkg/repositories"
	"github.com/cbodonnell/lockstep/pkg/repositories/models"
)

// DefaultSaveMatchQueueSize is the buffer size callers should give the save channel.
const DefaultSaveMatchQueueSize = 8

type SaveMatchWorker struct {
	repository    repositories.Repository
	saveMatchChan <-chan SaveMatchRequest
}

type NewSaveMatchWorkerOptions struct {
	Repository    repositories.Repository
	SaveMatchChan <-chan SaveMatchRequest
}

type SaveMatchRequest struct {
	Match *models.Match
	// Snapshot is the uncompressed final world snapshot
	Snapshot []byte
}

// NewSaveMatchWorker creates a new SaveMatchWorker.
// The worker compresses and saves the match records sent by the session loop
// so the loop never waits on the database.
func NewSaveMatchWorker(opts NewSaveMatchWorkerOptions) *SaveMatchWorker {
	return &SaveMatchWorker{
		repository:    opts.Repository,
		saveMatchChan: opts.SaveMatchChan,
	}
}

// Start saves requests until ctx is done, then saves whatever is still queued.
func (w *SaveMatchWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return
		case req, ok := <-w.saveMatchChan:
			if !ok {
				return
			}
			w.saveMatch(ctx, req)
		}
	}
}

func (w *SaveMatchWorker) drain() {
	for {
		select {
		case req, ok := <-w.saveMatchChan:
			if !ok {
				return
			}
			w.saveMatch(context.Background(), req)
		default:
			return
		}
	}
}

func (w *SaveMatchWorker) saveMatch(ctx context.Context, req SaveMatchRequest) {
	if len(req.Snapshot) > 0 {
		compressed, err := repositories.CompressState(req.Snapshot)
		if err != nil {
			log.Error("Failed to compress final state of match %s: %v", req.Match.ID, err)
		} else {
			req.Match.FinalState = compressed
		}
	}
	if err := w.repository.SaveMatch(ctx, req.Match); err != nil {
		log.Error("Failed to save match %s: %v", req.Match.ID, err)
		return
	}
	log.Debug("Saved match %s", req.Match.ID)
}
