package registration

import (
	"github.com/cbodonnell/beastball/pkg/game/constants"
	"github.com/cbodonnell/beastball/pkg/game/types"
	"github.com/cbodonnell/beastball/pkg/log"
	"github.com/cbodonnell/beastball/pkg/scheduler"
	"github.com/rotisserie/eris"
)

// ErrMatchInProgress is returned for lobby changes that need the pre-match phase.
var ErrMatchInProgress = eris.New("match in progress")

// ReadyController counts down to a match launch once every available
// player is lobby ready, and interrupts the countdown when that stops
// being true.
type ReadyController struct {
	state     *types.GameState
	scheduler *scheduler.Scheduler
	launch    func()
	countdown scheduler.Token
	counting  bool
	startedAt float64
}

// NewReadyController calls launch from the scheduler when the countdown ends.
func NewReadyController(state *types.GameState, sched *scheduler.Scheduler, launch func()) *ReadyController {
	return &ReadyController{
		state:     state,
		scheduler: sched,
		launch:    launch,
	}
}

// Counting reports whether a launch countdown is running.
func (c *ReadyController) Counting() bool {
	return c.counting
}

// Remaining returns the seconds left on the countdown, or 0.
func (c *ReadyController) Remaining() float64 {
	if !c.counting {
		return 0
	}
	left := constants.LobbyLaunchCountdown - (c.scheduler.Now() - c.startedAt)
	if left < 0 {
		return 0
	}
	return left
}

// ToggleReady flips the lobby readiness of a human player and re-evaluates
// the countdown. It returns the new readiness.
func (c *ReadyController) ToggleReady(id types.PlayerID) (bool, error) {
	if c.state.MatchState.InProgress() {
		return false, eris.Wrapf(ErrMatchInProgress, "toggle ready %d", id)
	}
	p, ok := c.state.Player(id)
	if !ok || !p.Available {
		return false, eris.Wrapf(ErrSlotNotTaken, "toggle ready %d", id)
	}
	if p.IsAI {
		return true, nil
	}
	p.LobbyReady = !p.LobbyReady
	c.Evaluate()
	return p.LobbyReady, nil
}

// Evaluate starts the countdown if more than one player is available and
// all of them are ready, and interrupts it otherwise.
func (c *ReadyController) Evaluate() {
	if c.state.MatchState.InProgress() {
		return
	}
	available := 0
	ready := 0
	for _, p := range c.state.Players {
		if !p.Available {
			continue
		}
		available++
		if p.LobbyReady {
			ready++
		}
	}
	if available > 1 && ready == available {
		c.start()
		return
	}
	c.Interrupt(false)
}

// Interrupt stops a running countdown. When a player disconnected, the
// readiness of the remaining human players is cleared as well.
func (c *ReadyController) Interrupt(playerLeft bool) {
	if playerLeft {
		for _, p := range c.state.Players {
			if p.Available && !p.IsAI {
				p.LobbyReady = false
			}
		}
	}
	if !c.counting {
		return
	}
	c.scheduler.Cancel(c.countdown)
	c.counting = false
	log.Debug("Launch countdown interrupted")
}

func (c *ReadyController) start() {
	if c.counting {
		return
	}
	token, err := c.scheduler.After(constants.LobbyLaunchCountdown, "launch countdown", func() {
		c.counting = false
		c.launch()
	})
	if err != nil {
		log.Error("Failed to schedule launch countdown: %v", err)
		return
	}
	c.countdown = token
	c.counting = true
	c.startedAt = c.scheduler.Now()
	log.Info("All players ready, launching in %.0f seconds", constants.LobbyLaunchCountdown)
}

// Reset clears the countdown and everyone's readiness after a match ends.
func (c *ReadyController) Reset() {
	c.Interrupt(false)
	for _, p := range c.state.Players {
		p.MatchReady = false
		if p.Available && !p.IsAI {
			p.LobbyReady = false
		}
	}
}
