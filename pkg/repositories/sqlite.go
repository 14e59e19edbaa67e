package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cbodonnell/beastball/pkg/repositories/models"
	_ "github.com/mattn/go-sqlite3"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(ctx context.Context, path string, migrations string) (Repository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}
	// sqlite serializes writers anyway, and in-memory databases are per connection
	db.SetMaxOpenConns(1)

	err = runMigrations(ctx, migrations, func(ctx context.Context, q string) error {
		_, err := db.ExecContext(ctx, q)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) SaveMatchResult(ctx context.Context, result *models.MatchResult) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	q := `
	INSERT OR REPLACE INTO match_results (id, started_at, ended_at, winner_id, winner_name)
	VALUES (?, ?, ?, ?, ?);
	`
	_, err = tx.ExecContext(ctx, q, result.ID, result.StartedAt, result.EndedAt, result.WinnerID, result.WinnerName)
	if err != nil {
		return fmt.Errorf("failed to insert match result: %v", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM match_standings WHERE match_id = ?;`, result.ID); err != nil {
		return fmt.Errorf("failed to clear standings: %v", err)
	}
	for _, s := range result.Standings {
		q := `
		INSERT INTO match_standings (match_id, player_id, name, kills, lives, is_ai, is_winner)
		VALUES (?, ?, ?, ?, ?, ?, ?);
		`
		_, err = tx.ExecContext(ctx, q, result.ID, s.PlayerID, s.Name, s.Kills, s.Lives, s.IsAI, s.IsWinner)
		if err != nil {
			return fmt.Errorf("failed to insert standing: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

func (r *SQLiteRepository) GetMatchResult(ctx context.Context, matchID string) (*models.MatchResult, error) {
	q := `
	SELECT id, started_at, ended_at, winner_id, winner_name FROM match_results WHERE id = ?;
	`
	result := &models.MatchResult{}
	err := r.db.QueryRowContext(ctx, q, matchID).Scan(&result.ID, &result.StartedAt, &result.EndedAt, &result.WinnerID, &result.WinnerName)
	if err != nil {
		if err == sql.ErrNoRows {
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

func (r *SQLiteRepository) ListMatchResults(ctx context.Context, limit int) ([]*models.MatchResult, error) {
	q := `
	SELECT id, started_at, ended_at, winner_id, winner_name FROM match_results
	ORDER BY ended_at DESC LIMIT ?;
	`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query match results: %v", err)
	}

	results := make([]*models.MatchResult, 0)
	for rows.Next() {
		result := &models.MatchResult{}
		if err := rows.Scan(&result.ID, &result.StartedAt, &result.EndedAt, &result.WinnerID, &result.WinnerName); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan match result: %v", err)
		}
		results = append(results, result)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read match results: %v", err)
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

func (r *SQLiteRepository) standings(ctx context.Context, matchID string) ([]models.MatchStanding, error) {
	q := `
	SELECT player_id, name, kills, lives, is_ai, is_winner FROM match_standings
	WHERE match_id = ? ORDER BY player_id;
	`
	rows, err := r.db.QueryContext(ctx, q, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query standings: %v", err)
	}
	defer rows.Close()

	standings := make([]models.MatchStanding, 0)
	for rows.Next() {
		var s models.MatchStanding
		if err := rows.Scan(&s.PlayerID, &s.Name, &s.Kills, &s.Lives, &s.IsAI, &s.IsWinner); err != nil {
			return nil, fmt.Errorf("failed to scan standing: %v", err)
		}
		standings = append(standings, s)
	}
	return standings, rows.Err()
}
