package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/rs/zerolog/log"

	"github.com/pandeptwidyaop/agents-rest/internal/config"
	"github.com/pandeptwidyaop/agents-rest/internal/database"
	"github.com/pandeptwidyaop/agents-rest/internal/events"
	"github.com/pandeptwidyaop/agents-rest/internal/metrics"
	"github.com/pandeptwidyaop/agents-rest/internal/models"
)

const missionColumns = "id, agent_id, target_id, distance, start_time, estimated_duration, execution_time, status"

// MissionStore proposes, assigns and advances missions.
type MissionStore struct {
	db     *database.DB
	game   config.GameConfig
	events events.Publisher
	now    func() time.Time
}

// NewMissionStore creates a new MissionStore instance.
func NewMissionStore(db *database.DB, game config.GameConfig, pub events.Publisher) *MissionStore {
	if pub == nil {
		pub = events.Discard{}
	}
	return &MissionStore{db: db, game: game, events: pub, now: time.Now}
}

// Distance is the straight-line grid distance between two locations.
func Distance(a, b models.LocationModel) float64 {
	return planar.Distance(
		orb.Point{float64(a.X), float64(a.Y)},
		orb.Point{float64(b.X), float64(b.Y)},
	)
}

// estimate returns the hours an agent needs to cover distance.
func (s *MissionStore) estimate(distance float64) float64 {
	if s.game.AgentSpeed <= 0 {
		return 0
	}
	return distance / s.game.AgentSpeed
}

func scanMission(row interface{ Scan(...any) error }) (models.MissionModel, error) {
	var m models.MissionModel
	var start sql.NullTime
	err := row.Scan(&m.ID, &m.AgentID, &m.TargetID, &m.Distance, &start, &m.EstimatedDuration, &m.ExecutionTime, &m.Status)
	if err != nil {
		return m, err
	}
	if start.Valid {
		t := start.Time
		m.StartTime = &t
	}
	return m, nil
}

func getMission(ctx context.Context, q queryer, id int64) (*models.MissionModel, error) {
	m, err := scanMission(q.QueryRowContext(ctx,
		"SELECT "+missionColumns+" FROM missions WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMissionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func listMissions(ctx context.Context, q queryer, where string, args ...any) ([]models.MissionModel, error) {
	rows, err := q.QueryContext(ctx, "SELECT "+missionColumns+" FROM missions "+where+" ORDER BY id", args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	missions := []models.MissionModel{}
	for rows.Next() {
		m, err := scanMission(rows)
		if err != nil {
			return nil, err
		}
		missions = append(missions, m)
	}
	return missions, rows.Err()
}

// GetAllMissions retrieves all missions ordered by id.
func (s *MissionStore) GetAllMissions(ctx context.Context) ([]models.MissionModel, error) {
	return listMissions(ctx, s.db, "")
}

// GetMissionByID retrieves a mission by its ID.
func (s *MissionStore) GetMissionByID(ctx context.Context, id int64) (*models.MissionModel, error) {
	return getMission(ctx, s.db, id)
}

// ProposeMissions creates a proposed mission for every inactive agent and
// alive target within mission range that have no open mission together.
// It returns the newly created missions.
func (s *MissionStore) ProposeMissions(ctx context.Context) ([]models.MissionModel, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	agents, err := listAgents(ctx, tx, "WHERE status = ?", models.AgentInactive)
	if err != nil {
		return nil, err
	}
	targets, err := listTargets(ctx, tx, "WHERE status = ?", models.TargetAlive)
	if err != nil {
		return nil, err
	}
	open, err := openPairs(ctx, tx)
	if err != nil {
		return nil, err
	}

	var ids []int64
	for _, a := range agents {
		for _, t := range targets {
			if open[[2]int64{a.ID, t.ID}] {
				continue
			}
			d := Distance(a.Location(), t.Location())
			if d > s.game.MissionRange {
				continue
			}

			result, err := tx.ExecContext(ctx,
				"INSERT INTO missions (agent_id, target_id, distance, estimated_duration, status) VALUES (?, ?, ?, ?, ?)",
				a.ID, t.ID, d, s.estimate(d), models.MissionProposed,
			)
			if err != nil {
				return nil, fmt.Errorf("insert mission: %w", err)
			}
			id, err := result.LastInsertId()
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}

	created := make([]models.MissionModel, 0, len(ids))
	for _, id := range ids {
		m, err := getMission(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		created = append(created, *m)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	for _, m := range created {
		metrics.MissionsTotal.WithLabelValues(string(models.MissionProposed)).Inc()
		s.events.Publish(events.Event{Type: "proposed", Kind: events.KindMission, ID: m.ID, Status: string(m.Status)})
	}
	if len(created) > 0 {
		log.Info().Int("count", len(created)).Msg("missions proposed")
	}
	return created, nil
}

func openPairs(ctx context.Context, q queryer) (map[[2]int64]bool, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT agent_id, target_id FROM missions WHERE status IN (?, ?)",
		models.MissionProposed, models.MissionAssigned,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	pairs := map[[2]int64]bool{}
	for rows.Next() {
		var agentID, targetID int64
		if err := rows.Scan(&agentID, &targetID); err != nil {
			return nil, err
		}
		pairs[[2]int64{agentID, targetID}] = true
	}
	return pairs, rows.Err()
}

// AssignMission moves a proposed mission to assigned, activates its agent
// and withdraws every other proposal for the same agent or target.
func (s *MissionStore) AssignMission(ctx context.Context, id int64) (*models.MissionModel, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	m, err := getMission(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if m.Status != models.MissionProposed {
		return nil, ErrMissionNotProposed
	}

	agent, err := getAgent(ctx, tx, m.AgentID)
	if err != nil {
		return nil, err
	}
	if agent.Status == models.AgentActive {
		return nil, ErrAgentOnMission
	}
	target, err := getTarget(ctx, tx, m.TargetID)
	if err != nil {
		return nil, err
	}
	if target.Status == models.TargetEliminated {
		return nil, ErrTargetEliminated
	}

	d := Distance(agent.Location(), target.Location())
	now := s.now().UTC()

	if _, err := tx.ExecContext(ctx,
		"UPDATE missions SET status = ?, start_time = ?, distance = ?, estimated_duration = ? WHERE id = ?",
		models.MissionAssigned, now, d, s.estimate(d), id,
	); err != nil {
		return nil, fmt.Errorf("assign mission: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE agents SET status = ?, updated_at = ? WHERE id = ?",
		models.AgentActive, now, agent.ID,
	); err != nil {
		return nil, fmt.Errorf("activate agent: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM missions WHERE status = ? AND id != ? AND (agent_id = ? OR target_id = ?)",
		models.MissionProposed, id, agent.ID, target.ID,
	); err != nil {
		return nil, fmt.Errorf("withdraw proposals: %w", err)
	}

	assigned, err := getMission(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	metrics.MissionsTotal.WithLabelValues(string(models.MissionAssigned)).Inc()
	log.Info().Int64("mission_id", id).Int64("agent_id", agent.ID).Int64("target_id", target.ID).Msg("mission assigned")
	s.events.Publish(events.Event{Type: "assigned", Kind: events.KindMission, ID: id, Status: string(assigned.Status)})
	return assigned, nil
}

// UpdateMissions advances the simulation by one tick. Every assigned agent
// steps one cell toward its target; an agent that reaches its target's cell
// completes the mission. Proposals whose pair drifted out of range, or whose
// agent or target is no longer available, are withdrawn. It returns the
// assigned and completed missions touched by the tick.
func (s *MissionStore) UpdateMissions(ctx context.Context) ([]models.MissionModel, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.pruneProposals(ctx, tx); err != nil {
		return nil, err
	}

	assigned, err := listMissions(ctx, tx, "WHERE status = ?", models.MissionAssigned)
	if err != nil {
		return nil, err
	}

	var published []events.Event
	updated := make([]models.MissionModel, 0, len(assigned))
	now := s.now().UTC()

	for _, m := range assigned {
		// A completion earlier in this tick may have closed the mission.
		if _, err := getMission(ctx, tx, m.ID); errors.Is(err, ErrMissionNotFound) {
			continue
		} else if err != nil {
			return nil, err
		}

		agent, err := getAgent(ctx, tx, m.AgentID)
		if err != nil {
			return nil, err
		}
		target, err := getTarget(ctx, tx, m.TargetID)
		if err != nil {
			return nil, err
		}

		pos := agent.Location().Translate(agent.Location().StepToward(target.Location()))
		if pos != agent.Location() {
			if _, err := tx.ExecContext(ctx,
				"UPDATE agents SET x = ?, y = ?, updated_at = ? WHERE id = ?",
				pos.X, pos.Y, now, agent.ID,
			); err != nil {
				return nil, fmt.Errorf("step agent: %w", err)
			}
			metrics.EntityMovesTotal.WithLabelValues("agent", "mission").Inc()
			published = append(published, events.Event{Type: "moved", Kind: events.KindAgent, ID: agent.ID, X: pos.X, Y: pos.Y, Status: string(agent.Status)})
		}

		d := Distance(pos, target.Location())
		if d > 0 {
			if _, err := tx.ExecContext(ctx,
				"UPDATE missions SET distance = ?, estimated_duration = ? WHERE id = ?",
				d, s.estimate(d), m.ID,
			); err != nil {
				return nil, fmt.Errorf("update mission: %w", err)
			}
		} else {
			if err := s.complete(ctx, tx, m, agent.ID, target.ID, now); err != nil {
				return nil, err
			}
			published = append(published,
				events.Event{Type: "completed", Kind: events.KindMission, ID: m.ID, Status: string(models.MissionCompleted)},
				events.Event{Type: "eliminated", Kind: events.KindTarget, ID: target.ID, X: target.X, Y: target.Y, Status: string(models.TargetEliminated)},
			)
		}

		current, err := getMission(ctx, tx, m.ID)
		if err != nil {
			return nil, err
		}
		updated = append(updated, *current)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	for _, e := range published {
		s.events.Publish(e)
	}
	return updated, nil
}

func (s *MissionStore) complete(ctx context.Context, tx *sql.Tx, m models.MissionModel, agentID, targetID int64, now time.Time) error {
	var hours float64
	if m.StartTime != nil {
		hours = now.Sub(*m.StartTime).Hours()
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE missions SET status = ?, distance = 0, estimated_duration = 0, execution_time = ? WHERE id = ?",
		models.MissionCompleted, hours, m.ID,
	); err != nil {
		return fmt.Errorf("complete mission: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE targets SET status = ?, updated_at = ? WHERE id = ?",
		models.TargetEliminated, now, targetID,
	); err != nil {
		return fmt.Errorf("eliminate target: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE agents SET status = ?, eliminations = eliminations + 1, updated_at = ? WHERE id = ?",
		models.AgentInactive, now, agentID,
	); err != nil {
		return fmt.Errorf("release agent: %w", err)
	}
	// Other agents chasing the same target have nothing left to do.
	if _, err := tx.ExecContext(ctx,
		`UPDATE agents SET status = ?, updated_at = ? WHERE id IN (
			SELECT agent_id FROM missions WHERE target_id = ? AND status = ? AND id != ?)`,
		models.AgentInactive, now, targetID, models.MissionAssigned, m.ID,
	); err != nil {
		return fmt.Errorf("release chasing agents: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM missions WHERE target_id = ? AND status IN (?, ?) AND id != ?",
		targetID, models.MissionProposed, models.MissionAssigned, m.ID,
	); err != nil {
		return fmt.Errorf("close target missions: %w", err)
	}

	metrics.MissionsTotal.WithLabelValues(string(models.MissionCompleted)).Inc()
	log.Info().Int64("mission_id", m.ID).Int64("agent_id", agentID).Int64("target_id", targetID).Float64("hours", hours).Msg("mission completed")
	return nil
}

func (s *MissionStore) pruneProposals(ctx context.Context, tx *sql.Tx) error {
	proposed, err := listMissions(ctx, tx, "WHERE status = ?", models.MissionProposed)
	if err != nil {
		return err
	}

	for _, m := range proposed {
		agent, err := getAgent(ctx, tx, m.AgentID)
		if err != nil {
			return err
		}
		target, err := getTarget(ctx, tx, m.TargetID)
		if err != nil {
			return err
		}

		d := Distance(agent.Location(), target.Location())
		stale := agent.Status != models.AgentInactive ||
			target.Status != models.TargetAlive ||
			d > s.game.MissionRange

		if stale {
			if _, err := tx.ExecContext(ctx, "DELETE FROM missions WHERE id = ?", m.ID); err != nil {
				return fmt.Errorf("withdraw proposal: %w", err)
			}
			continue
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE missions SET distance = ?, estimated_duration = ? WHERE id = ?",
			d, s.estimate(d), m.ID,
		); err != nil {
			return fmt.Errorf("refresh proposal: %w", err)
		}
	}
	return nil
}
