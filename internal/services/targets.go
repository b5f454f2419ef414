// Package services provides persistence-backed business logic for agents,
// targets, missions and client authentication.
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

const targetColumns = "id, name, role, status, x, y, image, is_detected"

// TargetStore manages targets in the database.
type TargetStore struct {
	db     *database.DB
	game   config.GameConfig
	events events.Publisher
}

// NewTargetStore creates a new TargetStore instance.
func NewTargetStore(db *database.DB, game config.GameConfig, pub events.Publisher) *TargetStore {
	if pub == nil {
		pub = events.Discard{}
	}
	return &TargetStore{db: db, game: game, events: pub}
}

func scanTarget(row interface{ Scan(...any) error }) (models.TargetModel, error) {
	var t models.TargetModel
	err := row.Scan(&t.ID, &t.Name, &t.Role, &t.Status, &t.X, &t.Y, &t.Image, &t.IsDetected)
	return t, err
}

func getTarget(ctx context.Context, q queryer, id int64) (*models.TargetModel, error) {
	t, err := scanTarget(q.QueryRowContext(ctx,
		"SELECT "+targetColumns+" FROM targets WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTargetNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func listTargets(ctx context.Context, q queryer, where string, args ...any) ([]models.TargetModel, error) {
	rows, err := q.QueryContext(ctx, "SELECT "+targetColumns+" FROM targets "+where+" ORDER BY id", args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	targets := []models.TargetModel{}
	for rows.Next() {
		t, err := scanTarget(rows)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, rows.Err()
}

// GetAllTargets retrieves all targets ordered by id.
func (s *TargetStore) GetAllTargets(ctx context.Context) ([]models.TargetModel, error) {
	return listTargets(ctx, s.db, "")
}

// GetTargetByID retrieves a target by its ID.
func (s *TargetStore) GetTargetByID(ctx context.Context, id int64) (*models.TargetModel, error) {
	return getTarget(ctx, s.db, id)
}

// IsTargetExist reports whether a target with the given ID exists.
func (s *TargetStore) IsTargetExist(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM targets WHERE id = ?)", id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// CreateTarget validates the description and persists it under a newly
// assigned ID. Any ID in the description is ignored.
func (s *TargetStore) CreateTarget(ctx context.Context, desc dto.TargetDto) (*models.TargetModel, error) {
	if err := validation.ValidateTarget(desc, s.game.GridSize); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	t := conversion.TargetDtoToModel(desc)
	if t.Status == "" {
		t.Status = models.TargetAlive
	}

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO targets (name, role, status, x, y, image, is_detected) VALUES (?, ?, ?, ?, ?, ?, ?)",
		t.Name, t.Role, t.Status, t.X, t.Y, t.Image, t.IsDetected,
	)
	if err != nil {
		return nil, fmt.Errorf("insert target: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	created, err := getTarget(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	log.Debug().Int64("target_id", id).Str("name", created.Name).Msg("target created")
	s.events.Publish(events.Event{Type: "created", Kind: events.KindTarget, ID: id, X: created.X, Y: created.Y, Status: string(created.Status)})
	return created, nil
}

// PlaceTarget sets the target's location to exactly loc.
func (s *TargetStore) PlaceTarget(ctx context.Context, id int64, loc dto.LocationDto) (*models.TargetModel, error) {
	if validation.ValidateLocation(loc, s.game.GridSize) != nil {
		return nil, ErrOutOfBounds
	}

	result, err := s.db.ExecContext(ctx,
		"UPDATE targets SET x = ?, y = ?, updated_at = ? WHERE id = ? AND status != ?",
		loc.X, loc.Y, time.Now(), id, models.TargetEliminated,
	)
	if err != nil {
		return nil, fmt.Errorf("place target: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		if err := s.explainNoUpdate(ctx, id); err != nil {
			return nil, err
		}
	}

	t, err := getTarget(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	metrics.EntityMovesTotal.WithLabelValues("target", "pin").Inc()
	s.events.Publish(events.Event{Type: "pinned", Kind: events.KindTarget, ID: id, X: t.X, Y: t.Y, Status: string(t.Status)})
	return t, nil
}

// MoveTarget translates the target one cell in the given direction. The
// bounds check and the update happen in one statement.
func (s *TargetStore) MoveTarget(ctx context.Context, id int64, dir models.Direction) error {
	delta, ok := dir.Delta()
	if !ok {
		return ErrInvalidDirection
	}

	size := s.game.GridSize
	result, err := s.db.ExecContext(ctx,
		`UPDATE targets SET x = x + ?, y = y + ?, updated_at = ?
		 WHERE id = ? AND status != ?
		   AND x + ? BETWEEN 0 AND ? AND y + ? BETWEEN 0 AND ?`,
		delta.X, delta.Y, time.Now(),
		id, models.TargetEliminated,
		delta.X, size, delta.Y, size,
	)
	if err != nil {
		return fmt.Errorf("move target: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		if err := s.explainNoUpdate(ctx, id); err != nil {
			return err
		}
		return ErrOutOfBounds
	}

	metrics.EntityMovesTotal.WithLabelValues("target", "move").Inc()
	if t, err := getTarget(ctx, s.db, id); err == nil {
		log.Debug().Int64("target_id", id).Str("direction", string(dir)).Int("x", t.X).Int("y", t.Y).Msg("target moved")
		s.events.Publish(events.Event{Type: "moved", Kind: events.KindTarget, ID: id, X: t.X, Y: t.Y, Status: string(t.Status)})
	}
	return nil
}

// explainNoUpdate reports why a conditional update touched no rows. It
// returns nil when the target exists and is alive.
func (s *TargetStore) explainNoUpdate(ctx context.Context, id int64) error {
	t, err := getTarget(ctx, s.db, id)
	if err != nil {
		return err
	}
	if t.Status == models.TargetEliminated {
		return ErrTargetEliminated
	}
	return nil
}
