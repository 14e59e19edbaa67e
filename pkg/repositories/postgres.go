package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cbodonnell/beastball/pkg/log"
	"github.com/cbodonnell/beastball/pkg/repositories/models"
	"github.com/jackc/pgx/v5"
)

type PostgresRepository struct {
	// pgx.Conn is not safe for concurrent use
	lock sync.Mutex
	conn *pgx.Conn
}

// NewPostgresRepository connects to connStr and applies the migrations in
// the migrations directory, if one is given.
// The caller is responsible for calling Close() on the repository.
func NewPostgresRepository(ctx context.Context, connStr string, migrations string) (Repository, error) {
	conn, err := connectDb(ctx, connStr)
	if err != nil {
		return nil, err
	}
	if migrations != "" {
		err := runMigrations(ctx, migrations, func(ctx context.Context, q string) error {
			_, err := conn.Exec(ctx, q)
			return err
		})
		if err != nil {
			conn.Close(ctx)
			return nil, err
		}
	}
	return &PostgresRepository{
		conn: conn,
	}, nil
}

func connectDb(ctx context.Context, connStr string) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	var username string
	var database string
	err = conn.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database)
	if err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("unable to query database: %v", err)
	}

	log.Info("Connected to %s as %s", database, username)

	return conn, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.conn.Close(ctx)
}

func (r *PostgresRepository) SaveMatchResult(ctx context.Context, result *models.MatchResult) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	tx, err := r.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	q := `
	INSERT INTO match_results (id, started_at, ended_at, winner_id, winner_name) VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id) DO UPDATE SET started_at = $2, ended_at = $3, winner_id = $4, winner_name = $5;
	`
	_, err = tx.Exec(ctx, q, result.ID, result.StartedAt, result.EndedAt, result.WinnerID, result.WinnerName)
	if err != nil {
		return fmt.Errorf("failed to insert match result: %v", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM match_standings WHERE match_id = $1;`, result.ID); err != nil {
		return fmt.Errorf("failed to clear standings: %v", err)
	}

	batch := &pgx.Batch{}
	for _, s := range result.Standings {
		batch.Queue(`
		INSERT INTO match_standings (match_id, player_id, name, kills, lives, is_ai, is_winner)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
		`, result.ID, s.PlayerID, s.Name, s.Kills, s.Lives, s.IsAI, s.IsWinner)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert standings: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

func (r *PostgresRepository) GetMatchResult(ctx context.Context, matchID string) (*models.MatchResult, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	q := `
	SELECT id::text, started_at, ended_at, winner_id, winner_name FROM match_results WHERE id::text = $1;
	`
	result := &models.MatchResult{}
	err := r.conn.QueryRow(ctx, q, matchID).Scan(&result.ID, &result.StartedAt, &result.EndedAt, &result.WinnerID, &result.WinnerName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan match result: %v", err)
	}

	standings, err := r.standings(ctx, result.ID)
	if err != nil {
		return nil, err
	}
	result.Standings = standings
	return result, nil
}

func (r *PostgresRepository) ListMatchResults(ctx context.Context, limit int) ([]*models.MatchResult, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	q := `
	SELECT id::text, started_at, ended_at, winner_id, winner_name FROM match_results
	ORDER BY ended_at DESC LIMIT $1;
	`
	rows, err := r.conn.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query match results: %v", err)
	}
	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*models.MatchResult, error) {
		result := &models.MatchResult{}
		err := row.Scan(&result.ID, &result.StartedAt, &result.EndedAt, &result.WinnerID, &result.WinnerName)
		return result, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan match results: %v", err)
	}

	for _, result := range results {
		standings, err := r.standings(ctx, result.ID)
		if err != nil {
			return nil, err
		}
		result.Standings = standings
	}
	return results, nil
}

func (r *PostgresRepository) standings(ctx context.Context, matchID string) ([]models.MatchStanding, error) {
	q := `
	SELECT player_id, name, kills, lives, is_ai, is_winner FROM match_standings
	WHERE match_id::text = $1 ORDER BY player_id;
	`
	rows, err := r.conn.Query(ctx, q, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query standings: %v", err)
	}
	standings, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.MatchStanding])
	if err != nil {
		return nil, fmt.Errorf("failed to scan standings: %v", err)
	}
	return standings, nil
}
