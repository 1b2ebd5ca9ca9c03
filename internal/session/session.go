// Package session keeps per-user conversation history in process memory.
// History is deliberately not persisted: a restart clears every conversation.
package session

// Role identifies who produced a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single message in a user's conversation history.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// DefaultMaxTurns is the bound on retained turns per user.
const DefaultMaxTurns = 10
