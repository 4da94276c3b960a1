package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// SessionID represents a unique guided conversation session identifier
type SessionID string

// NewSessionID generates a new session ID
func NewSessionID() SessionID {
	return SessionID(uuid.New().String())
}

func (x SessionID) String() string {
	return string(x)
}

const EmptySessionID SessionID = ""

func (x SessionID) Validate() error {
	if x == EmptySessionID {
		return goerr.New("empty session ID")
	}
	if _, err := uuid.Parse(string(x)); err != nil {
		return goerr.Wrap(err, "invalid session ID format", goerr.V("id", x))
	}
	return nil
}

// SessionState represents where a guided conversation is in its lifecycle.
// Transitions are monotonic: collecting -> ready -> drafted -> completed.
// A session in ready still accepts ordinary messages; the state only
// unlocks draft creation.
type SessionState string

const (
	// SessionStateCollecting is the initial state, gathering information
	SessionStateCollecting SessionState = "collecting"
	// SessionStateReady means the model signaled it has enough to draft
	SessionStateReady SessionState = "ready"
	// SessionStateDrafted means an outline draft has been stored
	SessionStateDrafted SessionState = "drafted"
	// SessionStateCompleted means the final artifact has been rendered
	SessionStateCompleted SessionState = "completed"
)

func (x SessionState) String() string {
	return string(x)
}
