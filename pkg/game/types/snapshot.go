package types

// Snapshot is the read-only mirror of the match handed to AI agents and
// network clients. It is rebuilt once per tick after all mutation for the
// tick has committed and shares no memory with the GameState.
type Snapshot struct {
	MatchID           string         `json:"matchID"`
	Timestamp         int64          `json:"timestamp"`
	Tick              uint64         `json:"tick"`
	MatchState        MatchState     `json:"matchState"`
	Players           []PlayerRecord `json:"players"`
	Remaining         []PlayerID     `json:"remaining"`
	BallCarrier       PlayerID       `json:"ballCarrier"`
	LastPassingPlayer PlayerID       `json:"lastPassingPlayer"`
	Beast             *BeastState    `json:"beast,omitempty"`
	Ball              *Ball          `json:"ball,omitempty"`
	IsPowerShot       bool           `json:"isPowerShot"`
	PowerShotCharge   float64        `json:"powerShotCharge"`
	InfiniteLives     bool           `json:"infiniteLives"`
	BallSequenceTime  float64        `json:"ballSequenceTime"`
}

// NewSnapshot copies the state into a detached snapshot.
func NewSnapshot(g *GameState, tick uint64, isPowerShot bool, charge float64) *Snapshot {
	s := &Snapshot{
		MatchID:           g.MatchID,
		Timestamp:         g.Timestamp,
		Tick:              tick,
		MatchState:        g.MatchState,
		Players:           make([]PlayerRecord, 0, len(g.Players)),
		Remaining:         append([]PlayerID(nil), g.Remaining...),
		BallCarrier:       g.BallCarrier,
		LastPassingPlayer: g.LastPassingPlayer,
		IsPowerShot:       isPowerShot,
		PowerShotCharge:   charge,
		InfiniteLives:     g.InfiniteLives,
		BallSequenceTime:  g.BallSequenceTime,
	}
	for _, p := range g.Players {
		if p.Available {
			s.Players = append(s.Players, p.Copy())
		}
	}
	if g.Beast != nil {
		beast := g.Beast.Copy()
		s.Beast = &beast
	}
	if g.Ball != nil {
		s.Ball = g.Ball.Copy()
	}
	return s
}

// Copy returns a deep copy of the snapshot.
func (s *Snapshot) Copy() *Snapshot {
	c := *s
	c.Players = append([]PlayerRecord(nil), s.Players...)
	c.Remaining = append([]PlayerID(nil), s.Remaining...)
	if s.Beast != nil {
		beast := *s.Beast
		c.Beast = &beast
	}
	if s.Ball != nil {
		c.Ball = s.Ball.Copy()
	}
	return &c
}

// Player returns the record of id if the slot is taken.
func (s *Snapshot) Player(id PlayerID) (PlayerRecord, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return PlayerRecord{}, false
}

// Carrier returns the ball carrier, if any.
func (s *Snapshot) Carrier() (PlayerRecord, bool) {
	if s.BallCarrier == NoPlayer {
		return PlayerRecord{}, false
	}
	return s.Player(s.BallCarrier)
}

// RemainingEnemies returns the remaining players other than exclude, in roster order.
func (s *Snapshot) RemainingEnemies(exclude PlayerID) []PlayerRecord {
	enemies := make([]PlayerRecord, 0, len(s.Remaining))
	for _, id := range s.Remaining {
		if id == exclude {
			continue
		}
		if p, ok := s.Player(id); ok {
			enemies = append(enemies, p)
		}
	}
	return enemies
}
