package mapper

import (
	"encoding/json"
	"fmt"

	"birthplan-agent-be/internal/model"
	"birthplan-agent-be/pkg/plan"

	"github.com/google/uuid"
)

type PlanSessionMapper struct{}

func NewPlanSessionMapper() *PlanSessionMapper {
	return &PlanSessionMapper{}
}

func (m *PlanSessionMapper) ToModel(s *plan.Session) (*model.PlanSession, error) {
	if s == nil {
		return nil, nil
	}
	id, err := uuid.Parse(s.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid session id %q: %w", s.ID, err)
	}
	state, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal session state: %w", err)
	}
	return &model.PlanSession{
		Id:        id,
		Stage:     string(s.Stage),
		State:     state,
		Version:   s.Version,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}, nil
}

func (m *PlanSessionMapper) ToSession(pm *model.PlanSession) (*plan.Session, error) {
	if pm == nil {
		return nil, nil
	}
	var s plan.Session
	if err := json.Unmarshal(pm.State, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session state: %w", err)
	}
	// The row is authoritative for the CAS version and timestamps.
	s.Version = pm.Version
	s.CreatedAt = pm.CreatedAt
	s.UpdatedAt = pm.UpdatedAt
	if s.TopicsByTheme == nil {
		s.TopicsByTheme = map[string][]string{}
	}
	if s.TopicCursor == nil {
		s.TopicCursor = map[string]int{}
	}
	return &s, nil
}
