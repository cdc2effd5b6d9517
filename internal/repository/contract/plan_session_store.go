package contract

import (
	"context"
	"errors"

	"birthplan-agent-be/pkg/plan"
)

// ErrVersionConflict signals a lost compare-and-swap: another request updated
// the session between this request's load and its write.
var ErrVersionConflict = errors.New("session was modified concurrently")

// PlanSessionStore is the durable mapping from session id to conversation
// state. Update is a compare-and-swap on the session's Version as loaded;
// implementations bump Version on success so two concurrent writers can
// never silently overwrite each other.
type PlanSessionStore interface {
	Create(ctx context.Context, session *plan.Session) error

	// Find returns (nil, nil) when the id is unknown or expired.
	Find(ctx context.Context, id string) (*plan.Session, error)

	// Update persists the session iff the stored version still equals
	// session.Version; returns ErrVersionConflict otherwise. On success the
	// session's Version is incremented in place.
	Update(ctx context.Context, session *plan.Session) error

	// FindAll lists sessions newest-first for the operator surface.
	FindAll(ctx context.Context, limit, offset int) ([]*plan.Session, error)

	Count(ctx context.Context) (int64, error)
}
