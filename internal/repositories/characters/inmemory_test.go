package characters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/sheet-engine/internal/character"
	dnderr "github.com/KirkDiggler/sheet-engine/internal/errors"
)

func newInMemoryDraft(id string) *character.Draft {
	return &character.Draft{
		ID:      id,
		OwnerID: "owner-1",
		Name:    "Tordek",
		Race:    "dwarf",
		Class:   "fighter",
		Level:   1,
	}
}

func TestInMemoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemory()

	require.NoError(t, repo.Create(ctx, newInMemoryDraft("char-1")))

	err := repo.Create(ctx, newInMemoryDraft("char-1"))
	require.Error(t, err)
	assert.True(t, dnderr.Is(err, dnderr.CodeAlreadyExists))

	got, err := repo.Get(ctx, "char-1")
	require.NoError(t, err)
	assert.Equal(t, "Tordek", got.Name)

	got.Level = 5
	require.NoError(t, repo.Update(ctx, got))

	updated, err := repo.Get(ctx, "char-1")
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Level)

	require.NoError(t, repo.Delete(ctx, "char-1"))
	_, err = repo.Get(ctx, "char-1")
	assert.True(t, dnderr.IsNotFound(err))
	assert.True(t, dnderr.IsNotFound(repo.Delete(ctx, "char-1")))
}

func TestInMemoryCopiesOnWriteAndRead(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemory()

	draft := newInMemoryDraft("char-1")
	draft.Backpack = []character.InventoryEntry{{Name: "Torch", Quantity: 2}}
	require.NoError(t, repo.Create(ctx, draft))

	// Mutating the caller's copy does not touch stored state.
	draft.Backpack[0].Quantity = 99
	got, err := repo.Get(ctx, "char-1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Backpack[0].Quantity)

	// Nor does mutating a read result.
	got.Name = "changed"
	again, err := repo.Get(ctx, "char-1")
	require.NoError(t, err)
	assert.Equal(t, "Tordek", again.Name)
}

func TestInMemoryGetByOwner(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemory()

	require.NoError(t, repo.Create(ctx, newInMemoryDraft("char-1")))
	other := newInMemoryDraft("char-2")
	other.OwnerID = "owner-2"
	require.NoError(t, repo.Create(ctx, other))

	drafts, err := repo.GetByOwner(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "char-1", drafts[0].ID)

	_, err = repo.GetByOwner(ctx, "")
	assert.Error(t, err)
}

func TestInMemoryAssignsID(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemory()

	draft := newInMemoryDraft("")
	require.NoError(t, repo.Create(ctx, draft))
	assert.NotEmpty(t, draft.ID)
}
