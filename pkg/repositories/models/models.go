package models

// MatchResult is the record of a finished match.
type MatchResult struct {
	ID         string          `json:"id"`
	StartedAt  int64           `json:"started_at"`
	EndedAt    int64           `json:"ended_at"`
	WinnerID   int32           `json:"winner_id"`
	WinnerName string          `json:"winner_name"`
	Standings  []MatchStanding `json:"standings"`
}

// MatchStanding is one player's line in a MatchResult.
type MatchStanding struct {
	PlayerID int32  `json:"player_id"`
	Name     string `json:"name"`
	Kills    int32  `json:"kills"`
	Lives    int32  `json:"lives"`
	IsAI     bool   `json:"is_ai"`
	IsWinner bool   `json:"is_winner"`
}
