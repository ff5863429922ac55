package chat

// MaxTurns caps how many turns a session retains. Older turns are dropped
// from the front once the cap is exceeded.
const MaxTurns = 20

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single message in a conversation. Immutable once created.
type Turn struct {
	Role    string
	Content string
}

// truncateToWindow keeps the most recent MaxTurns entries. Truncation happens
// at the single point where history is about to be persisted.
func truncateToWindow(history []Turn) []Turn {
	if len(history) > MaxTurns {
		return history[len(history)-MaxTurns:]
	}
	return history
}
