package domain

import (
	"errors"
	"fmt"

	m "guut.dev/pkg/guut/internal/model"
)

var (
	// ErrSessionFinished is returned by Step once the session reached a
	// terminal state.
	ErrSessionFinished = errors.New("session already finished")

	// ErrMissingCoverage means a killing test produced no coverage data, so
	// the sweep cannot select candidates.
	ErrMissingCoverage = errors.New("killing test produced no coverage data")

	// ErrTargetNotFound means a mutant's target file or mutation site does
	// not exist in the module.
	ErrTargetNotFound = errors.New("mutant target not found")

	// ErrUnknownOperator means a catalog entry names an operator guut does
	// not have.
	ErrUnknownOperator = errors.New("unknown mutation operator")

	// ErrUnknownMutant means a mutant ID is not part of the catalog.
	ErrUnknownMutant = errors.New("mutant not in catalog")
)

// InvalidStateError reports that the state machine reached a state whose
// handler needs something the conversation does not hold.
type InvalidStateError struct {
	State  m.State
	Reason string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid session state %s: %s", e.State, e.Reason)
}
