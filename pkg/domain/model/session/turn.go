package session

import (
	"context"
	"time"

	"github.com/slidekit-lab/slidekit/pkg/utils/clock"
)

// Role identifies the author of a conversation turn
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

func (x Role) String() string {
	return string(x)
}

// Turn is a single message in the conversation history. The history is
// replayed verbatim to the model backend, so ordering is semantically
// meaningful.
type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTurn creates a turn stamped with the context clock
func NewTurn(ctx context.Context, role Role, content string) Turn {
	return Turn{
		Role:      role,
		Content:   content,
		CreatedAt: clock.Now(ctx),
	}
}
