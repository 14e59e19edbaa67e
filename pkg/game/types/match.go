package types

// MatchState is the phase of the match. Only the match orchestrator writes it.
type MatchState uint8

const (
	MatchStatePreMatch MatchState = iota
	MatchStateMatchStart
	MatchStatePlayerDead
	MatchStatePlayerRevive
	MatchStatePlayerAlive
	MatchStateMatchEnd
)

func (s MatchState) String() string {
	switch s {
	case MatchStatePreMatch:
		return "PreMatch"
	case MatchStateMatchStart:
		return "MatchStart"
	case MatchStatePlayerDead:
		return "PlayerDead"
	case MatchStatePlayerRevive:
		return "PlayerRevive"
	case MatchStatePlayerAlive:
		return "PlayerAlive"
	case MatchStateMatchEnd:
		return "MatchEnd"
	default:
		return "Unknown"
	}
}

// InProgress reports whether gameplay is running.
func (s MatchState) InProgress() bool {
	return s != MatchStatePreMatch && s != MatchStateMatchEnd
}
