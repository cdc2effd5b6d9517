package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"birthplan-agent-be/internal/repository/contract"
	"birthplan-agent-be/pkg/plan"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "plan_session:"
	indexKey   = "plan_sessions:by_updated"
	sessionTTL = 12 * time.Hour
)

// PlanSessionStore persists sessions as JSON blobs in Redis. A sorted set
// keyed on the last update time backs the admin listing. Updates run inside
// WATCH so a concurrent write on the same session aborts the transaction.
type PlanSessionStore struct {
	client *redis.Client
}

var _ contract.PlanSessionStore = (*PlanSessionStore)(nil)

func NewPlanSessionStore(client *redis.Client) *PlanSessionStore {
	return &PlanSessionStore{client: client}
}

func sessionKey(id string) string {
	return keyPrefix + id
}

func (r *PlanSessionStore) Create(ctx context.Context, session *plan.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionKey(session.ID), payload, sessionTTL)
		pipe.ZAdd(ctx, indexKey, redis.Z{
			Score:  float64(session.UpdatedAt.UnixMilli()),
			Member: session.ID,
		})
		return nil
	})
	return err
}

func (r *PlanSessionStore) Find(ctx context.Context, id string) (*plan.Session, error) {
	payload, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s plan.Session
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", id, err)
	}
	return &s, nil
}

// Update re-reads the stored version under WATCH and only writes when it
// still matches the caller's snapshot; any interleaved write makes the
// transaction fail and surfaces as ErrVersionConflict.
func (r *PlanSessionStore) Update(ctx context.Context, session *plan.Session) error {
	key := sessionKey(session.ID)

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		payload, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return contract.ErrVersionConflict
		}
		if err != nil {
			return err
		}
		var current plan.Session
		if err := json.Unmarshal(payload, &current); err != nil {
			return fmt.Errorf("unmarshal session %s: %w", session.ID, err)
		}
		if current.Version != session.Version {
			return contract.ErrVersionConflict
		}

		next := session.Clone()
		next.Version = session.Version + 1
		updated, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("marshal session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, sessionTTL)
			pipe.ZAdd(ctx, indexKey, redis.Z{
				Score:  float64(next.UpdatedAt.UnixMilli()),
				Member: next.ID,
			})
			return nil
		})
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return contract.ErrVersionConflict
	}
	if err != nil {
		return err
	}
	session.Version++
	return nil
}

func (r *PlanSessionStore) FindAll(ctx context.Context, limit, offset int) ([]*plan.Session, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(offset + limit - 1)
	}
	ids, err := r.client.ZRevRange(ctx, indexKey, int64(offset), stop).Result()
	if err != nil {
		return nil, err
	}
	sessions := make([]*plan.Session, 0, len(ids))
	for _, id := range ids {
		s, err := r.Find(ctx, id)
		if err != nil {
			return nil, err
		}
		if s == nil {
			// Expired blob still indexed; drop the dangling entry.
			r.client.ZRem(ctx, indexKey, id)
			continue
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

func (r *PlanSessionStore) Count(ctx context.Context) (int64, error) {
	return r.client.ZCard(ctx, indexKey).Result()
}
