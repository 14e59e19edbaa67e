package ai

import (
	"github.com/cbodonnell/beastball/pkg/game/constants"
	"github.com/cbodonnell/beastball/pkg/game/types"
	"github.com/cbodonnell/beastball/pkg/kinematic"
	"github.com/rotisserie/eris"
)

const (
	// SimplifiedFeatureCount is the length of SimplifiedFeatures.
	SimplifiedFeatureCount = 12
	// FullFeatureCount is the length of FullFeatures.
	FullFeatureCount = 11 + 5*(constants.MaxPlayers-1)
)

var (
	// ErrNoBeast is returned when the snapshot has no beast yet.
	ErrNoBeast = eris.New("snapshot has no beast")
	// ErrNotPlaying is returned when the agent's player is missing from the snapshot.
	ErrNotPlaying = eris.New("player is not in the snapshot")
	// ErrNoEnemy is returned when no other player remains.
	ErrNoEnemy = eris.New("no remaining enemy")
)

// Sentinels describing an absent or non-alive slot in FullFeatures.
const (
	absentGrid     = 0
	absentDistance = 130
	absentRotation = -1
	absentLives    = -1
	absentScore    = -11
)

func carrierFeature(s *types.Snapshot) float64 {
	return float64(s.BallCarrier)
}

// SimplifiedFeatures returns the normalized 12 value observation used by
// the learning policy: the beast, the ball carrier, the agent and the first
// remaining enemy.
func SimplifiedFeatures(s *types.Snapshot, me types.PlayerID) ([]float64, error) {
	if s.Beast == nil {
		return nil, ErrNoBeast
	}
	self, ok := s.Player(me)
	if !ok {
		return nil, eris.Wrapf(ErrNotPlaying, "player %d", me)
	}
	enemies := s.RemainingEnemies(me)
	if len(enemies) == 0 {
		return nil, eris.Wrapf(ErrNoEnemy, "player %d", me)
	}
	enemy := enemies[0]
	beast := s.Beast

	return []float64{
		BeastSpeedRange.Normalize(beast.Speed),
		BeastRotationSpeedRange.Normalize(beast.RotationSpeed),
		BeastPositionRange.Normalize(beast.Position.X),
		BeastPositionRange.Normalize(beast.Position.Z),
		RotationRange.Normalize(beast.Rotation),
		BallCarrierRange.Normalize(carrierFeature(s)),
		PositionXRange.Normalize(self.Position.X),
		PositionZRange.Normalize(self.Position.Z),
		RotationRange.Normalize(self.Rotation),
		PositionXRange.Normalize(enemy.Position.X),
		PositionZRange.Normalize(enemy.Position.Z),
		RotationRange.Normalize(enemy.Rotation),
	}, nil
}

// FullFeatures returns the normalized observation over every slot. Slots
// that are empty or whose player is not alive are filled with sentinels so
// the length never changes. elapsed is the time since the last initial pass.
func FullFeatures(s *types.Snapshot, me types.PlayerID, grid *Grid, elapsed float64) ([]float64, error) {
	if s.Beast == nil {
		return nil, ErrNoBeast
	}
	self, ok := s.Player(me)
	if !ok {
		return nil, eris.Wrapf(ErrNotPlaying, "player %d", me)
	}
	beast := s.Beast

	beastCell, err := grid.FindGridIndex(beast.Position.X, beast.Position.Z)
	if err != nil {
		return nil, eris.Wrap(err, "beast")
	}
	myCell, err := grid.FindGridIndex(self.Position.X, self.Position.Z)
	if err != nil {
		return nil, eris.Wrapf(err, "player %d", me)
	}

	features := make([]float64, 0, FullFeatureCount)
	features = append(features,
		ElapsedTimeRange.Normalize(elapsed),
		BeastSpeedRange.Normalize(beast.Speed),
		BeastRotationSpeedRange.Normalize(beast.RotationSpeed),
		GridPositionRange.Normalize(float64(beastCell)),
		RotationRange.Normalize(beast.Rotation),
		BallCarrierRange.Normalize(carrierFeature(s)),
		GridPositionRange.Normalize(float64(myCell)),
		DistanceRange.Normalize(kinematic.Distance(self.Position, beast.Position)),
		RotationRange.Normalize(self.Rotation),
		LivesRange.Normalize(float64(self.Lives)),
		ScoreRange.Normalize(float64(self.Kills)),
	)

	n := constants.MaxPlayers - 1
	cells := make([]float64, 0, n)
	distances := make([]float64, 0, n)
	rotations := make([]float64, 0, n)
	lives := make([]float64, 0, n)
	scores := make([]float64, 0, n)
	for i := 0; i < constants.MaxPlayers; i++ {
		id := types.PlayerID(i)
		if id == me {
			continue
		}
		enemy, ok := s.Player(id)
		if !ok || !enemy.IsAlive() {
			cells = append(cells, GridPositionRange.Normalize(absentGrid))
			distances = append(distances, DistanceRange.Normalize(absentDistance))
			rotations = append(rotations, RotationRange.Normalize(absentRotation))
			lives = append(lives, LivesRange.Normalize(absentLives))
			scores = append(scores, ScoreRange.Normalize(absentScore))
			continue
		}
		cell, err := grid.FindGridIndex(enemy.Position.X, enemy.Position.Z)
		if err != nil {
			return nil, eris.Wrapf(err, "player %d", id)
		}
		cells = append(cells, GridPositionRange.Normalize(float64(cell)))
		distances = append(distances, DistanceRange.Normalize(kinematic.Distance(self.Position, enemy.Position)))
		rotations = append(rotations, RotationRange.Normalize(enemy.Rotation))
		lives = append(lives, LivesRange.Normalize(float64(enemy.Lives)))
		scores = append(scores, ScoreRange.Normalize(float64(enemy.Kills)))
	}

	features = append(features, cells...)
	features = append(features, distances...)
	features = append(features, rotations...)
	features = append(features, lives...)
	features = append(features, scores...)
	return features, nil
}
