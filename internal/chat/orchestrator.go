package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// SystemInstruction is sent with every completion request. The display client
// renders replies as GitHub-Flavored Markdown, so the model is pinned to it.
const SystemInstruction = "You are a concise, helpful assistant. Always format replies in " +
	"GitHub-Flavored Markdown. Put code in fenced code blocks with a language tag, preserve " +
	"indentation and line breaks in code verbatim, and never escape or quote-wrap code. " +
	"If the question does not call for code, do not include any."

// Completer is the external text-generation capability. It receives the full
// ordered history without the new message, which is passed separately as the
// final turn. A Completer failure is fatal to the request.
type Completer interface {
	Complete(ctx context.Context, instruction string, history []Turn, message string) (string, error)
}

// Retriever returns context snippets relevant to a query. It is best effort:
// the orchestrator swallows every Retriever failure.
type Retriever interface {
	Query(ctx context.Context, text string) ([]string, error)
}

type Orchestrator struct {
	store     SessionStore
	completer Completer
	retriever Retriever // nil when no retrieval backend is configured
}

func NewOrchestrator(store SessionStore, completer Completer, retriever Retriever) *Orchestrator {
	return &Orchestrator{
		store:     store,
		completer: completer,
		retriever: retriever,
	}
}

// Chat runs one conversation turn: load history, attempt retrieval, call the
// completion service, then persist the user and assistant turns truncated to
// the most recent MaxTurns. If the completion call fails the stored history is
// left untouched and the failed turn is discarded.
func (orch *Orchestrator) Chat(ctx context.Context, sessionID, message string) (string, error) {
	history, err := orch.store.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}

	instruction := SystemInstruction
	if snippets := orch.retrieveContext(ctx, message); len(snippets) > 0 {
		instruction = fmt.Sprintf("%s\n\nRelevant context:\n%s", SystemInstruction, strings.Join(snippets, "\n"))
	}

	reply, err := orch.completer.Complete(ctx, instruction, history, message)
	if err != nil {
		return "", fmt.Errorf("error generating completion: %w", err)
	}

	reply = EnsureCodeFences(reply)

	history = append(history, Turn{Role: RoleUser, Content: message}, Turn{Role: RoleAssistant, Content: reply})
	if err := orch.store.Put(ctx, sessionID, truncateToWindow(history)); err != nil {
		return "", err
	}

	return reply, nil
}

func (orch *Orchestrator) retrieveContext(ctx context.Context, message string) []string {
	if orch.retriever == nil {
		return nil
	}

	snippets, err := orch.retriever.Query(ctx, message)
	if err != nil {
		slog.Warn("retrieval failed, continuing without context", "error", err)
		return nil
	}
	return snippets
}

// Reset erases the session's stored history. Idempotent: resetting a session
// that was never written succeeds.
func (orch *Orchestrator) Reset(ctx context.Context, sessionID string) error {
	return orch.store.Delete(ctx, sessionID)
}
