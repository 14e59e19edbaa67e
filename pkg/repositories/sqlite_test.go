package repositories

import (
	"context"
	"testing"

	"github.com/cbodonnell/beastball/pkg/repositories/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteRepository(t *testing.T) Repository {
	t.Helper()
	repo, err := NewSQLiteRepository(context.Background(), ":memory:", "../../migrations/sqlite")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close(context.Background()) })
	return repo
}

func TestSQLiteRepository_matchResults(t *testing.T) {
	ctx := context.Background()
	repo := newTestSQLiteRepository(t)

	first := &models.MatchResult{
		ID:         "match-1",
		StartedAt:  1000,
		EndedAt:    2000,
		WinnerID:   2,
		WinnerName: "two",
		Standings: []models.MatchStanding{
			{PlayerID: 0, Name: "zero", Kills: -1, Lives: 0},
			{PlayerID: 2, Name: "two", Kills: 3, Lives: 1, IsWinner: true},
			{PlayerID: 5, Name: "Rules 5", Kills: 0, Lives: 0, IsAI: true},
		},
	}
	second := &models.MatchResult{
		ID:        "match-2",
		StartedAt: 3000,
		EndedAt:   4000,
		WinnerID:  -1,
		Standings: []models.MatchStanding{},
	}
	require.NoError(t, repo.SaveMatchResult(ctx, first))
	require.NoError(t, repo.SaveMatchResult(ctx, second))

	got, err := repo.GetMatchResult(ctx, "match-1")
	require.NoError(t, err)
	assert.Equal(t, first, got)

	list, err := repo.ListMatchResults(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "match-2", list[0].ID, "newest first")
	assert.Equal(t, "match-1", list[1].ID)

	list, err = repo.ListMatchResults(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSQLiteRepository_saveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newTestSQLiteRepository(t)

	result := &models.MatchResult{
		ID:        "match-1",
		EndedAt:   10,
		WinnerID:  1,
		Standings: []models.MatchStanding{{PlayerID: 1, Name: "one", IsWinner: true}},
	}
	require.NoError(t, repo.SaveMatchResult(ctx, result))
	result.Standings[0].Kills = 4
	require.NoError(t, repo.SaveMatchResult(ctx, result))

	got, err := repo.GetMatchResult(ctx, "match-1")
	require.NoError(t, err)
	require.Len(t, got.Standings, 1)
	assert.Equal(t, int32(4), got.Standings[0].Kills)
}

func TestSQLiteRepository_notFound(t *testing.T) {
	repo := newTestSQLiteRepository(t)

	_, err := repo.GetMatchResult(context.Background(), "missing")
	assert.True(t, IsNotFound(err))
}
