package persistent

import (
	"context"
	"testing"

	"vidtube/internal/entity"
	"vidtube/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTweetRepository(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewTweetRepository(db)
	ctx := context.Background()
	alice := testutil.SeedUser(t, db, "alice")
	bob := testutil.SeedUser(t, db, "bob")

	a := &entity.Tweet{Content: "hello", OwnerID: alice.ID}
	require.NoError(t, repo.Create(ctx, a))
	assert.Equal(t, "alice", a.Owner.Username)
	require.NoError(t, repo.Create(ctx, &entity.Tweet{Content: "hi", OwnerID: bob.ID}))

	all, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := repo.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "hello", mine[0].Content)

	updated, err := repo.UpdateContent(ctx, a.ID, "hello world")
	require.NoError(t, err)
	assert.Equal(t, "hello world", updated.Content)

	require.NoError(t, repo.Delete(ctx, a.ID))
	_, err = repo.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
