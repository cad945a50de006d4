// Package content implements the content store: item summaries and candidate
// queries built from a domain.QueryDescriptor.
package content

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/myenglish-study/internal/adapter/postgres"
	"github.com/heartmarshall/myenglish-study/internal/domain"
)

// builder is the squirrel statement builder configured for PostgreSQL.
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides content store operations backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new content repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const fetchItemsSQL = `
SELECT i.id, i.container_id, i.position, i.prompt, i.answer,
       i.capabilities, c.capabilities AS container_capabilities
FROM items i
JOIN containers c ON c.id = i.container_id
WHERE i.id = ANY($1::uuid[])`

type itemRow struct {
	ID                    uuid.UUID `db:"id"`
	ContainerID           uuid.UUID `db:"container_id"`
	Position              int       `db:"position"`
	Prompt                string    `db:"prompt"`
	Answer                string    `db:"answer"`
	Capabilities          []string  `db:"capabilities"`
	ContainerCapabilities []string  `db:"container_capabilities"`
}

func (r itemRow) toDomain() domain.ItemSummary {
	return domain.ItemSummary{
		ID:           r.ID,
		ContainerID:  r.ContainerID,
		Position:     r.Position,
		Prompt:       r.Prompt,
		Answer:       r.Answer,
		Capabilities: capabilitySet(r.Capabilities).Union(capabilitySet(r.ContainerCapabilities)),
	}
}

func capabilitySet(raw []string) domain.CapabilitySet {
	caps := make([]domain.Capability, 0, len(raw))
	for _, c := range raw {
		caps = append(caps, domain.Capability(c))
	}
	return domain.NewCapabilitySet(caps...)
}

// FetchItems returns summaries for ids in no particular order. Unknown ids
// are skipped. Capabilities are the union of item and container declarations.
func (r *Repo) FetchItems(ctx context.Context, ids []uuid.UUID) ([]domain.ItemSummary, error) {
	if len(ids) == 0 {
		return []domain.ItemSummary{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.db)

	var rows []itemRow
	if err := pgxscan.Select(ctx, querier, &rows, fetchItemsSQL, ids); err != nil {
		return nil, fmt.Errorf("fetch items: %w", err)
	}

	out := make([]domain.ItemSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// CountCandidates returns the number of items matching q.
func (r *Repo) CountCandidates(ctx context.Context, q domain.QueryDescriptor) (int, error) {
	if len(q.ContainerIDs) == 0 {
		return 0, nil
	}

	sql, args, err := countQuery(q).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.db)

	var n int
	if err := querier.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count candidates: %w", err)
	}
	return n, nil
}

// FetchCandidates returns up to limit ids matching q in q.Order, skipping
// excludeIDs.
func (r *Repo) FetchCandidates(ctx context.Context, q domain.QueryDescriptor, excludeIDs []uuid.UUID, limit int) ([]uuid.UUID, error) {
	if len(q.ContainerIDs) == 0 || limit <= 0 {
		return []uuid.UUID{}, nil
	}

	sql, args, err := fetchQuery(q, excludeIDs, limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build candidate query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.db)

	var ids []uuid.UUID
	if err := pgxscan.Select(ctx, querier, &ids, sql, args...); err != nil {
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return ids, nil
}

// InScope reports whether itemID belongs to q's containers and is neither
// archived nor ignored. q.AnyOf is not applied: an item stays in scope after
// an answer moves it out of the mode's filter.
func (r *Repo) InScope(ctx context.Context, q domain.QueryDescriptor, itemID uuid.UUID) (bool, error) {
	if len(q.ContainerIDs) == 0 {
		return false, nil
	}

	sql, args, err := scopeQuery(q, itemID).ToSql()
	if err != nil {
		return false, fmt.Errorf("build scope query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.db)

	var n int
	if err := querier.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("check item scope: %w", err)
	}
	return n > 0, nil
}

// ---------------------------------------------------------------------------
// Query building
// ---------------------------------------------------------------------------

func countQuery(q domain.QueryDescriptor) squirrel.SelectBuilder {
	return candidates(builder.Select("count(*)"), q)
}

func fetchQuery(q domain.QueryDescriptor, excludeIDs []uuid.UUID, limit int) squirrel.SelectBuilder {
	b := candidates(builder.Select("i.id"), q)
	if len(excludeIDs) > 0 {
		b = b.Where("NOT (i.id = ANY(?::uuid[]))", excludeIDs)
	}
	return b.OrderBy(orderBy(q.Order)...).Limit(uint64(limit))
}

func scopeQuery(q domain.QueryDescriptor, itemID uuid.UUID) squirrel.SelectBuilder {
	return scoped(builder.Select("count(*)"), q).Where("i.id = ?", itemID)
}

// scoped applies the container, archive and ignore filters.
func scoped(b squirrel.SelectBuilder, q domain.QueryDescriptor) squirrel.SelectBuilder {
	return b.
		From("items i").
		Join("containers c ON c.id = i.container_id").
		Where("i.container_id = ANY(?::uuid[])", q.ContainerIDs).
		Where("NOT EXISTS (SELECT 1 FROM container_archives a WHERE a.user_id = ? AND a.container_id = i.container_id)", q.UserID).
		Where("NOT EXISTS (SELECT 1 FROM ignored_items g WHERE g.user_id = ? AND g.learning_mode = ? AND g.item_id = i.id)", q.UserID, string(q.LearningMode))
}

// candidates adds the progress join and the mode predicates shared by count
// and fetch. Join arguments precede where arguments in the generated SQL.
func candidates(b squirrel.SelectBuilder, q domain.QueryDescriptor) squirrel.SelectBuilder {
	return scoped(b, q).
		LeftJoin("progress p ON p.item_id = i.id AND p.user_id = ? AND p.learning_mode = ?", q.UserID, string(q.LearningMode)).
		Where(anyOf(q.AnyOf))
}

func anyOf(preds []domain.Predicate) squirrel.Sqlizer {
	if len(preds) == 0 {
		return squirrel.Expr("FALSE")
	}
	or := make(squirrel.Or, 0, len(preds))
	for _, p := range preds {
		or = append(or, predicate(p))
	}
	return or
}

func predicate(p domain.Predicate) squirrel.Sqlizer {
	switch p.Kind {
	case domain.PredicateNew:
		return squirrel.Expr("(p.item_id IS NULL OR p.status = 'NEW')")
	case domain.PredicateDue:
		return squirrel.Expr("p.due_time <= ?", p.At.UTC())
	case domain.PredicateHard:
		return squirrel.Expr("p.status = 'HARD'")
	case domain.PredicateNotNew:
		return squirrel.Expr("(p.item_id IS NOT NULL AND p.status <> 'NEW')")
	case domain.PredicateCapable:
		c := string(p.Capability)
		return squirrel.Expr("(? = ANY(i.capabilities) OR ? = ANY(c.capabilities))", c, c)
	case domain.PredicateUnfiltered:
		return squirrel.Expr("TRUE")
	}
	return squirrel.Expr("FALSE")
}

func orderBy(o domain.SortOrder) []string {
	switch o {
	case domain.SortDueAsc:
		return []string{"p.due_time ASC NULLS LAST", "i.id"}
	case domain.SortRandom:
		return []string{"random()"}
	default:
		return []string{"c.position", "i.position", "i.id"}
	}
}
