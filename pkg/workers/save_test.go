package workers

import (
	"context"
	"testing"
	"time"

	"github.com/cbodonnell/beastball/pkg/repositories"
	"github.com/cbodonnell/beastball/pkg/repositories/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveMatchResultWorker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repository, err := repositories.NewSQLiteRepository(ctx, ":memory:", "../../migrations/sqlite")
	require.NoError(t, err)
	defer repository.Close(ctx)

	requests := make(chan SaveMatchResultRequest, 1)
	worker := NewSaveMatchResultWorker(NewSaveMatchResultWorkerOptions{
		Repository:          repository,
		SaveMatchResultChan: requests,
	})
	go worker.Start(ctx)

	result := &models.MatchResult{
		ID:         "m-1",
		StartedAt:  1000,
		EndedAt:    2000,
		WinnerID:   2,
		WinnerName: "Rules 2",
		Standings: []models.MatchStanding{
			{PlayerID: 0, Name: "A", Kills: -1},
			{PlayerID: 2, Name: "Rules 2", Kills: 3, Lives: 1, IsAI: true, IsWinner: true},
		},
	}
	done := make(chan error, 1)
	requests <- SaveMatchResultRequest{Result: result, Done: done}

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for save")
	}

	got, err := repository.GetMatchResult(ctx, "m-1")
	require.NoError(t, err)
	assert.Equal(t, result.WinnerName, got.WinnerName)
	assert.Len(t, got.Standings, 2)
}
