package memory

import (
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slidekit-lab/slidekit/pkg/domain/interfaces"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/session"
	"github.com/slidekit-lab/slidekit/pkg/domain/types"
	"github.com/slidekit-lab/slidekit/pkg/utils/errutil"
)

// Memory is the in-process session repository. Sessions do not survive a
// restart; that is an accepted property of the service, not a gap.
//
// Each session gets its own entry lock so that two writers for the same ID
// serialize while unrelated sessions proceed concurrently. The outer map
// lock only guards entry lookup, insertion and removal, never a session
// read-modify-write.
type Memory struct {
	mu      sync.RWMutex
	entries map[types.SessionID]*entry

	eb *goerr.Builder
}

type entry struct {
	mu sync.Mutex
	// sess is nil once the entry has been removed; a mutator that was
	// waiting on the entry lock observes that and reports not-found.
	sess *session.Session
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		entries: make(map[types.SessionID]*entry),
		eb:      goerr.NewBuilder(goerr.TV(errutil.RepositoryKey, "memory")),
	}
}
