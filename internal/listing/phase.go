package listing

import (
	"fmt"
)

// Phase is the lifecycle state shared by all four screen kinds. Every
// data-changing action revisits loading; the page-local search is the one
// action that does not.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseError   Phase = "error"
)

// Screen tracks the phase of one mounted admin screen.
type Screen struct {
	phase Phase
}

// NewScreen starts in the idle phase.
func NewScreen() *Screen {
	return &Screen{phase: PhaseIdle}
}

// Phase reports the current phase.
func (s *Screen) Phase() Phase {
	return s.phase
}

// StartLoad enters loading from idle, ready (refetch), or error (retry).
func (s *Screen) StartLoad() error {
	switch s.phase {
	case PhaseIdle, PhaseReady, PhaseError:
		s.phase = PhaseLoading
		return nil
	default:
		return fmt.Errorf("cannot start a load while %s", s.phase)
	}
}

// FinishLoad leaves loading for ready or error depending on the outcome.
func (s *Screen) FinishLoad(err error) error {
	if s.phase != PhaseLoading {
		return fmt.Errorf("cannot finish a load while %s", s.phase)
	}
	if err != nil {
		s.phase = PhaseError
	} else {
		s.phase = PhaseReady
	}
	return nil
}

// Search is legal only on a ready screen and leaves the phase untouched: the
// filter runs over rows already in memory.
func (s *Screen) Search() error {
	if s.phase != PhaseReady {
		return fmt.Errorf("cannot search while %s", s.phase)
	}
	return nil
}
