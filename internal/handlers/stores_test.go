package handlers_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pandeptwidyaop/agents-rest/internal/config"
	"github.com/pandeptwidyaop/agents-rest/internal/database"
)

var testGame = config.GameConfig{GridSize: 1000, MissionRange: 200, AgentSpeed: 5}

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate())

	t.Cleanup(func() { _ = db.Close() })
	return db
}
