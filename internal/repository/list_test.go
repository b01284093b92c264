// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"

	"codeberg.org/oliverandrich/superlists/internal/repository"
	"codeberg.org/oliverandrich/superlists/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateListWithFirstItem(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	list, item, err := repo.CreateListWithFirstItem(ctx, "buy milk", nil)

	require.NoError(t, err)
	assert.NotZero(t, list.ID)
	assert.Nil(t, list.OwnerID)
	assert.Equal(t, list.ID, item.ListID)
	assert.Equal(t, "buy milk", item.Text)

	items, err := repo.GetListItems(ctx, list.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "buy milk", items[0].Text)
}

func TestCreateListWithFirstItem_WithOwner(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	owner := testutil.NewTestUser(t, repo, "a@b.com")

	list, _, err := repo.CreateListWithFirstItem(ctx, "buy milk", &owner.ID)

	require.NoError(t, err)
	require.NotNil(t, list.OwnerID)
	assert.Equal(t, owner.ID, *list.OwnerID)
}

func TestCreateItem_AppendsInOrder(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	list := testutil.NewTestList(t, repo, "first", nil)

	_, err := repo.CreateItem(ctx, list.ID, "second")
	require.NoError(t, err)
	_, err = repo.CreateItem(ctx, list.ID, "third")
	require.NoError(t, err)

	items, err := repo.GetListItems(ctx, list.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "first", items[0].Text)
	assert.Equal(t, "second", items[1].Text)
	assert.Equal(t, "third", items[2].Text)
}

func TestCreateItem_DuplicateTextSameList(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	list := testutil.NewTestList(t, repo, "buy milk", nil)

	_, err := repo.CreateItem(ctx, list.ID, "buy milk")

	assert.ErrorIs(t, err, repository.ErrDuplicateItem)

	count, err := repo.CountListItems(ctx, list.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCreateItem_SameTextDifferentLists(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	listA := testutil.NewTestList(t, repo, "buy milk", nil)
	listB := testutil.NewTestList(t, repo, "other", nil)

	_, err := repo.CreateItem(ctx, listB.ID, "buy milk")

	require.NoError(t, err)

	countA, err := repo.CountListItems(ctx, listA.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), countA)
	countB, err := repo.CountListItems(ctx, listB.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), countB)
}

func TestCreateItem_TextIsCaseSensitive(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	list := testutil.NewTestList(t, repo, "buy milk", nil)

	_, err := repo.CreateItem(ctx, list.ID, "Buy Milk")

	assert.NoError(t, err)
}

func TestGetListByID_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	_, err := repo.GetListByID(ctx, 42)

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetListName_IsFirstItemText(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	list := testutil.NewTestList(t, repo, "groceries", nil)
	_, err := repo.CreateItem(ctx, list.ID, "another entry")
	require.NoError(t, err)

	name, err := repo.GetListName(ctx, list.ID)

	require.NoError(t, err)
	assert.Equal(t, "groceries", name)
}

func TestGetListsByOwner(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	owner := testutil.NewTestUser(t, repo, "a@b.com")
	other := testutil.NewTestUser(t, repo, "c@d.com")

	testutil.NewTestList(t, repo, "groceries", &owner.ID)
	testutil.NewTestList(t, repo, "chores", &owner.ID)
	testutil.NewTestList(t, repo, "not mine", &other.ID)
	testutil.NewTestList(t, repo, "anonymous", nil)

	lists, err := repo.GetListsByOwner(ctx, owner.ID)

	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.Equal(t, "groceries", lists[0].Name)
	assert.Equal(t, "chores", lists[1].Name)
}

func TestGetListItems_OnlyForThatList(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	listA := testutil.NewTestList(t, repo, "itemey 1", nil)
	_, err := repo.CreateItem(ctx, listA.ID, "itemey 2")
	require.NoError(t, err)
	listB := testutil.NewTestList(t, repo, "other list item", nil)

	items, err := repo.GetListItems(ctx, listA.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, listA.ID, item.ListID)
	}

	itemsB, err := repo.GetListItems(ctx, listB.ID)
	require.NoError(t, err)
	assert.Len(t, itemsB, 1)
}
