// Package access resolves which containers a user may study.
package access

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/myenglish-study/internal/adapter/postgres"
)

// Repo provides access-control lookups backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new access repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// A container is accessible when the user owns it, was granted access to it,
// or it is public. Archived containers stay accessible; the content store
// filters them out of candidate queries.
const accessibleSQL = `
SELECT c.id
FROM containers c
WHERE c.owner_id = $1
   OR c.is_public
   OR EXISTS (SELECT 1 FROM container_access ca WHERE ca.container_id = c.id AND ca.user_id = $1)
ORDER BY c.position, c.id`

// AccessibleContainerIDs returns the ids of every container userID may study.
func (r *Repo) AccessibleContainerIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	var ids []uuid.UUID
	if err := pgxscan.Select(ctx, querier, &ids, accessibleSQL, userID); err != nil {
		return nil, fmt.Errorf("accessible containers for %s: %w", userID, err)
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return ids, nil
}
