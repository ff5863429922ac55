package chat

import (
	"context"
	"fmt"

	"chat-backend/internal/database"

	"gorm.io/gorm"
)

// SessionStore owns the persisted turn history, keyed by an opaque
// caller-supplied session id. A session that was never written reads back as
// an empty history, not an error, and sessions are created lazily on first
// Put. Operations on the same session are serialized relative to each other;
// operations on different sessions proceed concurrently.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) ([]Turn, error)
	Put(ctx context.Context, sessionID string, history []Turn) error
	Delete(ctx context.Context, sessionID string) error
}

type GormSessionStore struct {
	db *gorm.DB

	// Serializes operations per session so two concurrent requests cannot
	// interleave a read of one with the write of another.
	locks *keyedMutex
}

func NewGormSessionStore(db *gorm.DB) *GormSessionStore {
	return &GormSessionStore{
		db:    db,
		locks: newKeyedMutex(),
	}
}

func (store *GormSessionStore) Get(ctx context.Context, sessionID string) ([]Turn, error) {
	store.locks.Lock(sessionID)
	defer store.locks.Unlock(sessionID)

	var messages []database.ChatMessage
	err := store.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("error loading history for session %s: %w", sessionID, err)
	}

	history := make([]Turn, 0, len(messages))
	for _, msg := range messages {
		history = append(history, Turn{Role: msg.Role, Content: msg.Content})
	}
	return history, nil
}

// Put replaces the stored history atomically. Callers truncate before
// persisting, but the window is enforced here as well so an oversized history
// can never reach the database.
func (store *GormSessionStore) Put(ctx context.Context, sessionID string, history []Turn) error {
	history = truncateToWindow(history)

	store.locks.Lock(sessionID)
	defer store.locks.Unlock(sessionID)

	return store.db.WithContext(ctx).Transaction(func(txn *gorm.DB) error {
		if err := txn.Delete(&database.ChatMessage{}, "session_id = ?", sessionID).Error; err != nil {
			return fmt.Errorf("error clearing history for session %s: %w", sessionID, err)
		}

		if len(history) == 0 {
			return nil
		}

		messages := make([]database.ChatMessage, len(history))
		for i, turn := range history {
			messages[i] = database.ChatMessage{
				SessionID: sessionID,
				Role:      turn.Role,
				Content:   turn.Content,
			}
		}
		if err := txn.Create(&messages).Error; err != nil {
			return fmt.Errorf("error saving history for session %s: %w", sessionID, err)
		}
		return nil
	})
}

// Delete removes all state for the session. Deleting a session that does not
// exist is not an error.
func (store *GormSessionStore) Delete(ctx context.Context, sessionID string) error {
	store.locks.Lock(sessionID)
	defer store.locks.Unlock(sessionID)

	err := store.db.WithContext(ctx).Delete(&database.ChatMessage{}, "session_id = ?", sessionID).Error
	if err != nil {
		return fmt.Errorf("error deleting session %s: %w", sessionID, err)
	}
	return nil
}
