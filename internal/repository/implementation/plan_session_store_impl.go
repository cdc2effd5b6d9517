package implementation

import (
	"context"
	"errors"

	"birthplan-agent-be/internal/mapper"
	"birthplan-agent-be/internal/model"
	"birthplan-agent-be/internal/repository/contract"
	"birthplan-agent-be/internal/repository/specification"
	"birthplan-agent-be/pkg/plan"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlanSessionStoreImpl struct {
	db     *gorm.DB
	mapper *mapper.PlanSessionMapper
}

func NewPlanSessionStore(db *gorm.DB) contract.PlanSessionStore {
	return &PlanSessionStoreImpl{
		db:     db,
		mapper: mapper.NewPlanSessionMapper(),
	}
}

func (r *PlanSessionStoreImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PlanSessionStoreImpl) Create(ctx context.Context, session *plan.Session) error {
	m, err := r.mapper.ToModel(session)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *PlanSessionStoreImpl) Find(ctx context.Context, id string) (*plan.Session, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		// Malformed ids behave like unknown ones: the caller starts fresh.
		return nil, nil
	}
	var m model.PlanSession
	query := r.applySpecifications(r.db.WithContext(ctx), specification.ByID{ID: parsed})
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToSession(&m)
}

// Update is the compare-and-swap write: the version predicate in the WHERE
// clause makes a lost update visible as zero affected rows.
func (r *PlanSessionStoreImpl) Update(ctx context.Context, session *plan.Session) error {
	m, err := r.mapper.ToModel(session)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).
		Model(&model.PlanSession{}).
		Where("id = ? AND version = ?", m.Id, session.Version).
		Updates(map[string]interface{}{
			"stage":   m.Stage,
			"state":   m.State,
			"version": session.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return contract.ErrVersionConflict
	}
	session.Version++
	return nil
}

func (r *PlanSessionStoreImpl) FindAll(ctx context.Context, limit, offset int) ([]*plan.Session, error) {
	var models []*model.PlanSession
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.OrderBy{Field: "updated_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	sessions := make([]*plan.Session, 0, len(models))
	for _, m := range models {
		s, err := r.mapper.ToSession(m)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

func (r *PlanSessionStoreImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.PlanSession{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
