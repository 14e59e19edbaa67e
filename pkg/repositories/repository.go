package repositories

import (
	"context"

	"github.com/cbodonnell/beastball/pkg/repositories/models"
)

type Repository interface {
	Close(ctx context.Context) error
	SaveMatchResult(ctx context.Context, result *models.MatchResult) error
	GetMatchResult(ctx context.Context, matchID string) (*models.MatchResult, error)
	ListMatchResults(ctx context.Context, limit int) ([]*models.MatchResult, error)
}
