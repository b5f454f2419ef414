package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pandeptwidyaop/agents-rest/internal/config"
	"github.com/pandeptwidyaop/agents-rest/internal/conversion"
	"github.com/pandeptwidyaop/agents-rest/internal/database"
	"github.com/pandeptwidyaop/agents-rest/internal/dto"
	"github.com/pandeptwidyaop/agents-rest/internal/events"
	"github.com/pandeptwidyaop/agents-rest/internal/metrics"
	"github.com/pandeptwidyaop/agents-rest/internal/models"
	"github.com/pandeptwidyaop/agents-rest/internal/validation"
)

const agentColumns = "id, nickname, status, x, y, image, eliminations, token"

// AgentStore manages agents in the database.
type AgentStore struct {
	db     *database.DB
	game   config.GameConfig
	events events.Publisher
}

// NewAgentStore creates a new AgentStore instance.
func NewAgentStore(db *database.DB, game config.GameConfig, pub events.Publisher) *AgentStore {
	if pub == nil {
		pub = events.Discard{}
	}
	return &AgentStore{db: db, game: game, events: pub}
}

func scanAgent(row interface{ Scan(...any) error }) (models.AgentModel, error) {
	var a models.AgentModel
	err := row.Scan(&a.ID, &a.Nickname, &a.Status, &a.X, &a.Y, &a.Image, &a.Eliminations, &a.Token)
	return a, err
}

func getAgent(ctx context.Context, q queryer, id int64) (*models.AgentModel, error) {
	a, err := scanAgent(q.QueryRowContext(ctx,
		"SELECT "+agentColumns+" FROM agents WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAgentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func listAgents(ctx context.Context, q queryer, where string, args ...any) ([]models.AgentModel, error) {
	rows, err := q.QueryContext(ctx, "SELECT "+agentColumns+" FROM agents "+where+" ORDER BY id", args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	agents := []models.AgentModel{}
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}
	return agents, rows.Err()
}

// GetAllAgents retrieves all agents ordered by id.
func (s *AgentStore) GetAllAgents(ctx context.Context) ([]models.AgentModel, error) {
	return listAgents(ctx, s.db, "")
}

// GetAgentByID retrieves an agent by its ID.
func (s *AgentStore) GetAgentByID(ctx context.Context, id int64) (*models.AgentModel, error) {
	return getAgent(ctx, s.db, id)
}

// IsAgentExist reports whether an agent with the given ID exists.
func (s *AgentStore) IsAgentExist(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM agents WHERE id = ?)", id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// CreateAgent persists a new agent. New agents always start inactive with no
// eliminations, whatever the description says.
func (s *AgentStore) CreateAgent(ctx context.Context, desc dto.AgentDto) (*models.AgentModel, error) {
	if err := validation.ValidateAgent(desc, s.game.GridSize); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	a := conversion.AgentDtoToModel(desc)
	a.Status = models.AgentInactive
	a.Eliminations = 0

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO agents (nickname, status, x, y, image, eliminations, token) VALUES (?, ?, ?, ?, ?, ?, ?)",
		a.Nickname, a.Status, a.X, a.Y, a.Image, a.Eliminations, a.Token,
	)
	if err != nil {
		return nil, fmt.Errorf("insert agent: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	created, err := getAgent(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	log.Debug().Int64("agent_id", id).Str("nickname", created.Nickname).Msg("agent created")
	s.events.Publish(events.Event{Type: "created", Kind: events.KindAgent, ID: id, X: created.X, Y: created.Y, Status: string(created.Status)})
	return created, nil
}

// PlaceAgent sets an inactive agent's location to exactly loc.
func (s *AgentStore) PlaceAgent(ctx context.Context, id int64, loc dto.LocationDto) (*models.AgentModel, error) {
	if validation.ValidateLocation(loc, s.game.GridSize) != nil {
		return nil, ErrOutOfBounds
	}

	result, err := s.db.ExecContext(ctx,
		"UPDATE agents SET x = ?, y = ?, updated_at = ? WHERE id = ? AND status = ?",
		loc.X, loc.Y, time.Now(), id, models.AgentInactive,
	)
	if err != nil {
		return nil, fmt.Errorf("place agent: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		if err := s.explainNoUpdate(ctx, id); err != nil {
			return nil, err
		}
	}

	a, err := getAgent(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	metrics.EntityMovesTotal.WithLabelValues("agent", "pin").Inc()
	s.events.Publish(events.Event{Type: "pinned", Kind: events.KindAgent, ID: id, X: a.X, Y: a.Y, Status: string(a.Status)})
	return a, nil
}

// MoveAgent translates an inactive agent one cell in the given direction.
func (s *AgentStore) MoveAgent(ctx context.Context, id int64, dir models.Direction) error {
	delta, ok := dir.Delta()
	if !ok {
		return ErrInvalidDirection
	}

	size := s.game.GridSize
	result, err := s.db.ExecContext(ctx,
		`UPDATE agents SET x = x + ?, y = y + ?, updated_at = ?
		 WHERE id = ? AND status = ?
		   AND x + ? BETWEEN 0 AND ? AND y + ? BETWEEN 0 AND ?`,
		delta.X, delta.Y, time.Now(),
		id, models.AgentInactive,
		delta.X, size, delta.Y, size,
	)
	if err != nil {
		return fmt.Errorf("move agent: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		if err := s.explainNoUpdate(ctx, id); err != nil {
			return err
		}
		return ErrOutOfBounds
	}

	metrics.EntityMovesTotal.WithLabelValues("agent", "move").Inc()
	if a, err := getAgent(ctx, s.db, id); err == nil {
		log.Debug().Int64("agent_id", id).Str("direction", string(dir)).Int("x", a.X).Int("y", a.Y).Msg("agent moved")
		s.events.Publish(events.Event{Type: "moved", Kind: events.KindAgent, ID: id, X: a.X, Y: a.Y, Status: string(a.Status)})
	}
	return nil
}

func (s *AgentStore) explainNoUpdate(ctx context.Context, id int64) error {
	a, err := getAgent(ctx, s.db, id)
	if err != nil {
		return err
	}
	if a.Status == models.AgentActive {
		return ErrAgentOnMission
	}
	return nil
}
