package integrationtests

import (
	"context"
	"fmt"
	"testing"
	"time"

	"chat-backend/internal/chat"
	"chat-backend/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	dbName     = "chat_test"
	dbUser     = "chat"
	dbPassword = "chat-password"
)

func setupPostgres(t *testing.T, ctx context.Context) string {
	t.Helper()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	t.Cleanup(func() {
		err := postgresContainer.Terminate(context.Background())
		require.NoError(t, err, "Failed to terminate PostgreSQL container")
	})

	connStr, err := postgresContainer.ConnectionString(ctx)
	require.NoError(t, err, "Failed to get PostgreSQL connection string")

	return connStr
}

func TestSessionStorePostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	connStr := setupPostgres(t, ctx)

	db, err := database.New(connStr)
	require.NoError(t, err)

	store := chat.NewGormSessionStore(db)

	// Never-written session reads back empty.
	history, err := store.Get(ctx, "fresh")
	require.NoError(t, err)
	assert.Empty(t, history)

	// Append exchanges past the cap and verify the window.
	for n := 1; n <= 11; n++ {
		history, err = store.Get(ctx, "s1")
		require.NoError(t, err)

		history = append(history,
			chat.Turn{Role: chat.RoleUser, Content: fmt.Sprintf("question %d", n)},
			chat.Turn{Role: chat.RoleAssistant, Content: fmt.Sprintf("answer %d", n)},
		)
		require.NoError(t, store.Put(ctx, "s1", history))
	}

	history, err = store.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, history, chat.MaxTurns)
	assert.Equal(t, "question 2", history[0].Content)
	assert.Equal(t, "answer 11", history[len(history)-1].Content)

	// Delete is complete and idempotent, and leaves other sessions alone.
	require.NoError(t, store.Put(ctx, "s2", []chat.Turn{{Role: chat.RoleUser, Content: "other session"}}))
	require.NoError(t, store.Delete(ctx, "s1"))
	require.NoError(t, store.Delete(ctx, "s1"))

	history, err = store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, history)

	history, err = store.Get(ctx, "s2")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "other session", history[0].Content)
}
