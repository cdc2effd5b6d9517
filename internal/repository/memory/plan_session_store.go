package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"birthplan-agent-be/internal/repository/contract"
	"birthplan-agent-be/pkg/plan"

	"github.com/patrickmn/go-cache"
)

// PlanSessionStore keeps sessions in process memory with TTL expiry.
// Default store for development and tests; the mutex gives the same
// compare-and-swap guarantee as the durable implementations.
type PlanSessionStore struct {
	mu    sync.Mutex
	cache *cache.Cache
}

var _ contract.PlanSessionStore = (*PlanSessionStore)(nil)

func NewPlanSessionStore() *PlanSessionStore {
	// Sessions idle for 12 hours expire; purge sweep every 30 minutes.
	return &PlanSessionStore{
		cache: cache.New(12*time.Hour, 30*time.Minute),
	}
}

func (r *PlanSessionStore) Create(ctx context.Context, session *plan.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Set(session.ID, session.Clone(), cache.DefaultExpiration)
	return nil
}

func (r *PlanSessionStore) Find(ctx context.Context, id string) (*plan.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if x, found := r.cache.Get(id); found {
		return x.(*plan.Session).Clone(), nil
	}
	return nil, nil
}

func (r *PlanSessionStore) Update(ctx context.Context, session *plan.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	x, found := r.cache.Get(session.ID)
	if !found {
		return contract.ErrVersionConflict
	}
	if x.(*plan.Session).Version != session.Version {
		return contract.ErrVersionConflict
	}
	session.Version++
	r.cache.Set(session.ID, session.Clone(), cache.DefaultExpiration)
	return nil
}

func (r *PlanSessionStore) FindAll(ctx context.Context, limit, offset int) ([]*plan.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sessions := make([]*plan.Session, 0, r.cache.ItemCount())
	for _, item := range r.cache.Items() {
		sessions = append(sessions, item.Object.(*plan.Session).Clone())
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})
	if offset >= len(sessions) {
		return []*plan.Session{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(sessions) {
		end = len(sessions)
	}
	return sessions[offset:end], nil
}

func (r *PlanSessionStore) Count(ctx context.Context) (int64, error) {
	return int64(r.cache.ItemCount()), nil
}
