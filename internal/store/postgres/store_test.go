package postgres

import (
	"context"
	"flag"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/shrimpsizemoose/examdesk/internal/models"
)

// setupTestDB starts a throwaway Postgres and applies the real migrations
func setupTestDB(t *testing.T) (*PostgresStore, func()) {
	ctx := context.Background()

	container, err := postgres.Run(
		ctx,
		"postgres:16-alpine",
		testcontainers.WithEnv(map[string]string{
			"POSTGRES_DB":       "testdb",
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
		}),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := NewPostgresStore(dsn, "../../../migrations")
	require.NoError(t, err, "Failed to create store")

	cleanup := func() {
		s.Close()
		container.Terminate(ctx)
	}

	return s, cleanup
}

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		log.Println("Skipping Postgres integration tests. Use -short=false to run them.")
		os.Exit(0)
	}
	log.Println("Starting Postgres store tests...")
	code := m.Run()
	log.Println("Finished Postgres store tests")
	os.Exit(code)
}

func TestRebind(t *testing.T) {
	assert.Equal(t, "SELECT 1 WHERE a = $1 AND b = $2", rebind("SELECT 1 WHERE a = ? AND b = ?"))
}

func TestRecordAndList(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	first := models.NewJournalEntry(models.ActionCreate, "12", "ORD-1", true, "")
	first.CreatedAt = 1000
	second := models.NewJournalEntry(models.ActionClose, "12", "", false, "request failed with status 500")
	second.CreatedAt = 2000

	require.NoError(t, s.Record(first))
	require.NoError(t, s.Record(second))

	got, err := s.List(10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, *second, got[0])
	assert.Equal(t, *first, got[1])

	got, err = s.List(1)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	// applying twice is harmless
	assert.NoError(t, s.ApplyMigrations("../../../migrations"))
}
