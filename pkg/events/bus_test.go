package events

import (
	"testing"

	"github.com/cbodonnell/beastball/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	key  int
	log  *[]string
	seen []Event
}

func (r *recorder) HandleEvent(e Event) {
	r.seen = append(r.seen, e)
	*r.log = append(*r.log, string(e.EventType())+"@"+string(rune('0'+r.key)))
}

func TestBus_deferredDelivery(t *testing.T) {
	bus := NewBus()
	var log []string
	r := &recorder{key: 1, log: &log}
	bus.Subscribe(1, r)

	bus.Publish(BallCaught{Catcher: 2})
	assert.Empty(t, r.seen, "nothing is delivered before the flush")
	assert.Equal(t, 1, bus.Pending())

	assert.Equal(t, 1, bus.Flush())
	require.Len(t, r.seen, 1)
	assert.Equal(t, BallCaught{Catcher: 2}, r.seen[0])
	assert.Equal(t, 0, bus.Flush())
}

func TestBus_listenerOrderIsByKey(t *testing.T) {
	bus := NewBus()
	var log []string
	for _, k := range []int{5, 0, 3} {
		bus.Subscribe(k, &recorder{key: k, log: &log})
	}

	bus.Publish(MatchStarted{MatchID: "m"})
	bus.Publish(BallCaught{Catcher: 0})
	bus.Flush()

	assert.Equal(t, []string{
		"match_started@0", "match_started@3", "match_started@5",
		"ball_caught@0", "ball_caught@3", "ball_caught@5",
	}, log)
}

func TestBus_subscribeDuringFlush(t *testing.T) {
	bus := NewBus()
	var log []string
	late := &recorder{key: 9, log: &log}
	bus.Subscribe(1, ListenerFunc(func(e Event) {
		bus.Subscribe(9, late)
		bus.Unsubscribe(1)
		bus.Publish(BallCaught{Catcher: 1})
	}))

	bus.Publish(MatchStarted{})
	bus.Flush()
	assert.Empty(t, late.seen, "listeners added mid-flush wait for the next flush")

	bus.Flush()
	require.Len(t, late.seen, 1)
	assert.Equal(t, TypeBallCaught, late.seen[0].EventType())
}

func TestBus_Drain(t *testing.T) {
	bus := NewBus()
	bus.SetTick(7)
	bus.Publish(PlayerKilled{Killer: types.NoPlayer, Victim: 2, Humiliated: true})
	bus.Publish(MatchDone{Winner: 1, WinnerName: "one"})

	got := bus.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, uint64(1), got[0].Seq)
	assert.Equal(t, uint64(7), got[0].Tick)
	assert.Equal(t, TypePlayerKilled, got[0].Type)
	assert.Equal(t, uint64(2), got[1].Seq)
	assert.Empty(t, bus.Drain())

	// draining for replication does not consume the deferred queue
	assert.Equal(t, 2, bus.Pending())
}
