package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cbodonnell/lockstep/pkg/repositories"
	"github.com/cbodonnell/lockstep/pkg/repositories/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepository struct {
	lock    sync.Mutex
	matches map[string]*models.Match
	failing bool
}

func (r *memoryRepository) Close(context.Context) error { return nil }

func (r *memoryRepository) SaveMatch(_ context.Context, match *models.Match) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.failing {
		return errors.New("disk full")
	}
	r.matches[match.ID] = match
	return nil
}

func (r *memoryRepository) ListMatches(context.Context, int) ([]*models.Match, error) {
	return nil, nil
}

func (r *memoryRepository) GetMatch(_ context.Context, id string) (*models.Match, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	match, ok := r.matches[id]
	if !ok {
		return nil, &repositories.ErrNotFound{MatchID: id}
	}
	return match, nil
}

func TestSaveMatchWorker(t *testing.T) {
	repo := &memoryRepository{matches: make(map[string]*models.Match)}
	ch := make(chan SaveMatchRequest, DefaultSaveMatchQueueSize)
	worker := NewSaveMatchWorker(NewSaveMatchWorkerOptions{Repository: repo, SaveMatchChan: ch})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	snapshot := []byte("final world snapshot")
	ch <- SaveMatchRequest{Match: &models.Match{ID: "a"}, Snapshot: snapshot}

	require.Eventually(t, func() bool {
		_, err := repo.GetMatch(ctx, "a")
		return err == nil
	}, time.Second, 5*time.Millisecond)

	match, _ := repo.GetMatch(ctx, "a")
	state, err := repositories.DecompressState(match.FinalState)
	require.NoError(t, err)
	assert.Equal(t, snapshot, state)

	cancel()
	<-done
}

func TestSaveMatchWorkerDrainsOnShutdown(t *testing.T) {
	repo := &memoryRepository{matches: make(map[string]*models.Match)}
	ch := make(chan SaveMatchRequest, DefaultSaveMatchQueueSize)
	worker := NewSaveMatchWorker(NewSaveMatchWorkerOptions{Repository: repo, SaveMatchChan: ch})

	ch <- SaveMatchRequest{Match: &models.Match{ID: "a"}}
	ch <- SaveMatchRequest{Match: &models.Match{ID: "b"}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	worker.drain()

	for _, id := range []string{"a", "b"} {
		_, err := repo.GetMatch(context.Background(), id)
		assert.NoError(t, err)
	}
	worker.Start(ctx)
}

func TestSaveMatchWorkerKeepsRunningAfterFailure(t *testing.T) {
	repo := &memoryRepository{matches: make(map[string]*models.Match), failing: true}
	worker := NewSaveMatchWorker(NewSaveMatchWorkerOptions{Repository: repo})

	worker.saveMatch(context.Background(), SaveMatchRequest{Match: &models.Match{ID: "a"}})
	_, err := repo.GetMatch(context.Background(), "a")
	assert.True(t, repositories.IsNotFound(err))
}
