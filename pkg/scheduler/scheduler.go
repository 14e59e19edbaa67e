// Package scheduler runs delayed continuations against the game loop clock.
//
// Every task is keyed by a Token that carries the scheduler generation it was
// created in. CancelAll bumps the generation, so continuations scheduled for a
// match that has since been torn down become no-ops instead of firing against
// stale state. Tasks only run from Advance, on the goroutine that owns the
// game state.
package scheduler

import (
	"sort"

	"github.com/rotisserie/eris"
)

// ErrNegativeDelay is returned when a task is scheduled in the past.
var ErrNegativeDelay = eris.New("delay must not be negative")

// Token identifies a scheduled task.
type Token struct {
	id         uint64
	generation uint64
}

// Valid reports whether the token refers to a task at all.
func (t Token) Valid() bool {
	return t.id != 0
}

type task struct {
	token Token
	name  string
	due   float64
	fn    func()

	cancelled bool
}

// Scheduler is a single-threaded timer wheel polled once per tick.
type Scheduler struct {
	now        float64
	generation uint64
	nextID     uint64
	tasks      []*task
	running    []*task
}

func New() *Scheduler {
	return &Scheduler{
		generation: 1,
	}
}

// Now returns the elapsed scheduler time in seconds.
func (s *Scheduler) Now() float64 {
	return s.now
}

// Generation returns the current generation.
func (s *Scheduler) Generation() uint64 {
	return s.generation
}

// After schedules fn to run once delay seconds from now.
func (s *Scheduler) After(delay float64, name string, fn func()) (Token, error) {
	if delay < 0 {
		return Token{}, eris.Wrapf(ErrNegativeDelay, "task %s", name)
	}
	s.nextID++
	t := &task{
		token: Token{id: s.nextID, generation: s.generation},
		name:  name,
		due:   s.now + delay,
		fn:    fn,
	}
	s.tasks = append(s.tasks, t)
	return t.token, nil
}

// Cancel removes a pending task. It reports whether the task was still pending.
func (s *Scheduler) Cancel(token Token) bool {
	for i, t := range s.tasks {
		if t.token == token {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	for _, t := range s.running {
		if t.token == token && !t.cancelled {
			t.cancelled = true
			return true
		}
	}
	return false
}

// CancelAll drops every pending task and invalidates all outstanding tokens.
func (s *Scheduler) CancelAll() {
	s.generation++
	s.tasks = nil
}

// Pending returns the names of pending tasks in the order they will fire.
func (s *Scheduler) Pending() []string {
	ordered := make([]*task, len(s.tasks))
	copy(ordered, s.tasks)
	sortTasks(ordered)
	names := make([]string, 0, len(ordered))
	for _, t := range ordered {
		names = append(names, t.name)
	}
	return names
}

// Advance moves the clock forward by dt seconds and runs every task that is
// due, ordered by due time and then by scheduling order. Tasks scheduled by a
// running task are never run in the same call. Returns the number of tasks run.
func (s *Scheduler) Advance(dt float64) int {
	s.now += dt

	var due, rest []*task
	for _, t := range s.tasks {
		if t.due <= s.now {
			due = append(due, t)
		} else {
			rest = append(rest, t)
		}
	}
	s.tasks = rest
	sortTasks(due)
	s.running = due
	defer func() { s.running = nil }()

	ran := 0
	for _, t := range due {
		// an earlier task in this batch may have cancelled it
		if t.cancelled || t.token.generation != s.generation {
			continue
		}
		t.cancelled = true
		t.fn()
		ran++
	}
	return ran
}

func sortTasks(tasks []*task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].due != tasks[j].due {
			return tasks[i].due < tasks[j].due
		}
		return tasks[i].token.id < tasks[j].token.id
	})
}
