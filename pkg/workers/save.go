package workers

import (
	"context"
	"time"

	"github.com/cbodonnell/beastball/pkg/log"
	"github.com/cbodonnell/beastball/pkg/repositories"
	"github.com/cbodonnell/beastball/pkg/repositories/models"
)

// SaveTimeout bounds a single repository write.
const SaveTimeout = 5 * time.Second

type SaveMatchResultWorker struct {
	repository          repositories.Repository
	saveMatchResultChan <-chan SaveMatchResultRequest
}

type NewSaveMatchResultWorkerOptions struct {
	Repository          repositories.Repository
	SaveMatchResultChan <-chan SaveMatchResultRequest
}

type SaveMatchResultRequest struct {
	Result *models.MatchResult
	// Done, when set, receives the outcome of the write and is then closed.
	// It must be buffered.
	Done chan<- error
}

// NewSaveMatchResultWorker creates a new SaveMatchResultWorker.
// The worker persists finished matches off the game loop.
func NewSaveMatchResultWorker(opts NewSaveMatchResultWorkerOptions) *SaveMatchResultWorker {
	return &SaveMatchResultWorker{
		repository:          opts.Repository,
		saveMatchResultChan: opts.SaveMatchResultChan,
	}
}

func (w *SaveMatchResultWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return
		case saveRequest := <-w.saveMatchResultChan:
			w.saveMatchResult(ctx, saveRequest)
		}
	}
}

// drain writes the requests that were queued before shutdown.
func (w *SaveMatchResultWorker) drain() {
	for {
		select {
		case saveRequest := <-w.saveMatchResultChan:
			w.saveMatchResult(context.Background(), saveRequest)
		default:
			return
		}
	}
}

func (w *SaveMatchResultWorker) saveMatchResult(ctx context.Context, saveRequest SaveMatchResultRequest) {
	ctx, cancel := context.WithTimeout(ctx, SaveTimeout)
	defer cancel()

	err := w.repository.SaveMatchResult(ctx, saveRequest.Result)
	if err != nil {
		log.Error("Failed to save match result %s: %v", saveRequest.Result.ID, err)
	} else {
		log.Info("Saved match result %s", saveRequest.Result.ID)
	}
	if saveRequest.Done != nil {
		saveRequest.Done <- err
		close(saveRequest.Done)
	}
}
