package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pandeptwidyaop/agents-rest/internal/config"
	"github.com/pandeptwidyaop/agents-rest/internal/database"
	"github.com/pandeptwidyaop/agents-rest/internal/events"
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

// recorder collects published events.
type recorder struct {
	events []events.Event
}

func (r *recorder) Publish(e events.Event) { r.events = append(r.events, e) }

func (r *recorder) types() []string {
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, string(e.Kind)+":"+e.Type)
	}
	return out
}
