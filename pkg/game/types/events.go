package types

// Lobby events are produced by network handlers, workers and the HTTP API
// and applied by the game loop in arrival order. Result channels, when set,
// must be buffered; the game loop never blocks on them.

// RegistrationResult reports the slot assigned to a joining player.
type RegistrationResult struct {
	PlayerID PlayerID
	Err      error
}

type ConnectPlayerEvent struct {
	ClientID uint32
	Name     string
	Result   chan<- RegistrationResult
}

type DisconnectPlayerEvent struct {
	ClientID uint32
}

type AddAIPlayerEvent struct {
	Strategy string
	Result   chan<- RegistrationResult
}

type KickPlayerEvent struct {
	PlayerID PlayerID
	Result   chan<- error
}

type SetLivesEvent struct {
	Lives         int
	InfiniteLives bool
	Result        chan<- error
}

type ForceStartEvent struct {
	Result chan<- error
}

type AbortMatchEvent struct {
	Result chan<- error
}
