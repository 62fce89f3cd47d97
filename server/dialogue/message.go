package dialogue

import (
	"fmt"
	"time"
)

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ParseRole validates a wire-level role string against the closed enum.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAssistant, RoleSystem:
		return Role(s), nil
	default:
		return "", fmt.Errorf("invalid role %q (valid: user, assistant, system)", s)
	}
}

// Message is one conversational turn. Messages are immutable once stored;
// they are removed only by a summarization trim or a full reset.
type Message struct {
	UID       string    `json:"uid"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"timestamp"`
}
