package submission

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore_AppendAndList(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, Submission{ID: "1", Email: "a@example.fr", SubmittedAt: "01/01/2025 09:00:00"}))
	require.NoError(t, store.Append(ctx, Submission{ID: "2", Email: "b@example.fr", SubmittedAt: "02/01/2025 09:00:00"}))

	subs, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, subs, 2)
}

func TestInMemoryStore_ListReturnsCopies(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, Submission{ID: "1", FirstName: "Alice"}))

	subs, err := store.ListAll(ctx)
	require.NoError(t, err)
	subs[0].FirstName = "mutated"

	again, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Alice", again[0].FirstName)
}

func TestInMemoryStore_ReplaceAll(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, Submission{ID: "old"}))
	require.NoError(t, store.ReplaceAll(ctx, []Submission{{ID: "new-1"}, {ID: "new-2"}}))

	subs, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "new-1", subs[0].ID)
}

func TestInMemoryStore_DeleteByKeys(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	keep := Submission{ID: "1", Email: "keep@example.fr", FirstName: "K", LastName: "L", SubmittedAt: "01/01/2025 09:00:00"}
	drop := Submission{ID: "2", Email: "drop@example.fr", FirstName: "D", LastName: "R", SubmittedAt: "01/01/2025 10:00:00"}
	require.NoError(t, store.Append(ctx, keep))
	require.NoError(t, store.Append(ctx, drop))

	deleted, err := store.DeleteByKeys(ctx, []string{drop.IdentityKey(), "no-such-key"})
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	subs, _ := store.ListAll(ctx)
	require.Len(t, subs, 1)
	assert.Equal(t, "keep@example.fr", subs[0].Email)
}
