package donation

import (
	"fmt"

	"github.com/rs/zerolog"
)

// State is the lifecycle position of one donation request.
type State string

const (
	StateValidating State = "validating"
	StateProcessing State = "processing"
	StateRecording  State = "recording"
	StateCommitted  State = "committed"
	StateRolledBack State = "rolled_back"
)

// Terminal reports whether no further transition is allowed.
func (s State) Terminal() bool {
	return s == StateCommitted || s == StateRolledBack
}

// Processing and Recording may go back to Processing when a conflicting
// attempt is rolled back and retried in a fresh transaction.
var transitions = map[State][]State{
	StateValidating: {StateProcessing, StateRolledBack},
	StateProcessing: {StateProcessing, StateRecording, StateRolledBack},
	StateRecording:  {StateProcessing, StateCommitted, StateRolledBack},
}

func canTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// lifecycle tracks and logs the state of a single request.
type lifecycle struct {
	state   State
	history []State
	logger  zerolog.Logger
}

func newLifecycle(logger zerolog.Logger) *lifecycle {
	return &lifecycle{state: StateValidating, history: []State{StateValidating}, logger: logger}
}

func (l *lifecycle) to(next State) error {
	if !canTransition(l.state, next) {
		return fmt.Errorf("donation: invalid transition %s -> %s", l.state, next)
	}
	l.logger.Debug().Str("from", string(l.state)).Str("to", string(next)).Msg("donation state")
	l.state = next
	l.history = append(l.history, next)
	return nil
}
