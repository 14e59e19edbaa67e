package ai

import (
	"math/rand"

	"github.com/cbodonnell/beastball/pkg/game/types"
	"github.com/cbodonnell/beastball/pkg/kinematic"
)

type recordingEmitter struct {
	intents []types.Intent
	reject  bool
}

func (r *recordingEmitter) EmitIntent(intent types.Intent) bool {
	if r.reject {
		return false
	}
	r.intents = append(r.intents, intent)
	return true
}

func (r *recordingEmitter) last() types.Intent {
	if len(r.intents) == 0 {
		return nil
	}
	return r.intents[len(r.intents)-1]
}

func newTestHandle(id types.PlayerID) (*Handle, *recordingEmitter) {
	emitter := &recordingEmitter{}
	return NewHandle(id, emitter, rand.New(rand.NewSource(1))), emitter
}

func testPlayer(id types.PlayerID, pos kinematic.Vector) types.PlayerRecord {
	p := types.NewPlayerRecord(id)
	p.Available = true
	p.IsGameOver = false
	p.State = types.PlayerStateAlive
	p.Position = pos
	return p.Copy()
}

// testSnapshot returns a running match with players 0..n-1 on the roster.
func testSnapshot(positions ...kinematic.Vector) *types.Snapshot {
	s := &types.Snapshot{
		MatchState:        types.MatchStatePlayerAlive,
		BallCarrier:       types.NoPlayer,
		LastPassingPlayer: types.NoPlayer,
		Beast: &types.BeastState{
			Speed:         10,
			RotationSpeed: 50,
			Target:        types.NoPlayer,
		},
	}
	for i, pos := range positions {
		id := types.PlayerID(i)
		s.Players = append(s.Players, testPlayer(id, pos))
		s.Remaining = append(s.Remaining, id)
	}
	return s
}
