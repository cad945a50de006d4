package testhelper

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/myenglish-study/internal/domain"
)

// SeededContainer is a container created by SeedContainer with its items in
// position order.
type SeededContainer struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	ItemIDs []uuid.UUID
}

// SeedContainer creates a container owned by ownerID with n items. caps are
// declared on the container, so every item inherits them.
func SeedContainer(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID, n int, caps ...domain.Capability) SeededContainer {
	t.Helper()
	ctx := context.Background()

	c := SeededContainer{ID: uuid.New(), OwnerID: ownerID}
	_, err := pool.Exec(ctx,
		`INSERT INTO containers (id, owner_id, title, capabilities) VALUES ($1, $2, $3, $4)`,
		c.ID, ownerID, "container "+c.ID.String()[:8], capStrings(caps),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedContainer insert container: %v", err)
	}

	for i := range n {
		id := uuid.New()
		_, err := pool.Exec(ctx,
			`INSERT INTO items (id, container_id, position, prompt, answer) VALUES ($1, $2, $3, $4, $5)`,
			id, c.ID, i, fmt.Sprintf("prompt %d", i), fmt.Sprintf("answer %d", i),
		)
		if err != nil {
			t.Fatalf("testhelper: SeedContainer insert item %d: %v", i, err)
		}
		c.ItemIDs = append(c.ItemIDs, id)
	}

	return c
}

// SetItemCapabilities replaces the capabilities declared on one item.
func SetItemCapabilities(t *testing.T, pool *pgxpool.Pool, itemID uuid.UUID, caps ...domain.Capability) {
	t.Helper()
	if _, err := pool.Exec(context.Background(),
		`UPDATE items SET capabilities = $2 WHERE id = $1`, itemID, capStrings(caps)); err != nil {
		t.Fatalf("testhelper: SetItemCapabilities: %v", err)
	}
}

// GrantAccess shares a container with userID.
func GrantAccess(t *testing.T, pool *pgxpool.Pool, containerID, userID uuid.UUID) {
	t.Helper()
	if _, err := pool.Exec(context.Background(),
		`INSERT INTO container_access (container_id, user_id) VALUES ($1, $2)`, containerID, userID); err != nil {
		t.Fatalf("testhelper: GrantAccess: %v", err)
	}
}

// ArchiveContainer archives a container for userID.
func ArchiveContainer(t *testing.T, pool *pgxpool.Pool, userID, containerID uuid.UUID) {
	t.Helper()
	if _, err := pool.Exec(context.Background(),
		`INSERT INTO container_archives (user_id, container_id) VALUES ($1, $2)`, userID, containerID); err != nil {
		t.Fatalf("testhelper: ArchiveContainer: %v", err)
	}
}

// IgnoreItem hides an item from userID in one learning mode.
func IgnoreItem(t *testing.T, pool *pgxpool.Pool, userID, itemID uuid.UUID, mode domain.LearningMode) {
	t.Helper()
	if _, err := pool.Exec(context.Background(),
		`INSERT INTO ignored_items (user_id, item_id, learning_mode) VALUES ($1, $2, $3)`,
		userID, itemID, string(mode)); err != nil {
		t.Fatalf("testhelper: IgnoreItem: %v", err)
	}
}

// SeedProgress stores a progress row for an item with the given status and
// due time.
func SeedProgress(t *testing.T, pool *pgxpool.Pool, userID, itemID uuid.UUID, mode domain.LearningMode, status domain.ProgressStatus, due *time.Time) {
	t.Helper()
	if _, err := pool.Exec(context.Background(),
		`INSERT INTO progress (user_id, item_id, learning_mode, status, repetitions, interval_days, due_time)
		 VALUES ($1, $2, $3, $4, 1, 1, $5)`,
		userID, itemID, string(mode), string(status), due); err != nil {
		t.Fatalf("testhelper: SeedProgress: %v", err)
	}
}

func capStrings(caps []domain.Capability) []string {
	out := make([]string, len(caps))
	for i, c := range caps {
		out[i] = string(c)
	}
	return out
}
