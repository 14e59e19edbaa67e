package registration

import (
	"github.com/cbodonnell/beastball/pkg/game/constants"
	"github.com/cbodonnell/beastball/pkg/game/types"
	"github.com/rotisserie/eris"
)

var (
	// ErrNoFreeSlot is returned when all player slots are taken.
	ErrNoFreeSlot = eris.New("no free player slot")
	// ErrInvalidPlayer is returned for ids outside 0..7.
	ErrInvalidPlayer = eris.New("invalid player id")
	// ErrSlotNotTaken is returned when freeing or addressing an empty slot.
	ErrSlotNotTaken = eris.New("player slot is not taken")
)

// IDAssigner hands out the lowest free player slot.
type IDAssigner struct {
	taken [constants.MaxPlayers]bool
}

func NewIDAssigner() *IDAssigner {
	return &IDAssigner{}
}

// Request takes the first free slot.
func (a *IDAssigner) Request() (types.PlayerID, error) {
	for i, taken := range a.taken {
		if !taken {
			a.taken[i] = true
			return types.PlayerID(i), nil
		}
	}
	return types.NoPlayer, ErrNoFreeSlot
}

// Free releases a slot for reuse.
func (a *IDAssigner) Free(id types.PlayerID) error {
	if !id.Valid() {
		return eris.Wrapf(ErrInvalidPlayer, "free %d", id)
	}
	if !a.taken[id] {
		return eris.Wrapf(ErrSlotNotTaken, "free %d", id)
	}
	a.taken[id] = false
	return nil
}

// Taken reports whether the slot is in use.
func (a *IDAssigner) Taken(id types.PlayerID) bool {
	return id.Valid() && a.taken[id]
}

// Count returns the number of taken slots.
func (a *IDAssigner) Count() int {
	n := 0
	for _, taken := range a.taken {
		if taken {
			n++
		}
	}
	return n
}
