package promptstore

import (
	"testing"

	"github.com/stretchr/testify/require"
	storeerrors "sarah-testing/lib/utils/store-errors"
	testdb "sarah-testing/lib/utils/test-db"
	dbmodels "sarah-testing/models/db"
)

func TestCreateIncrementsVersion(t *testing.T) {
	store := NewInstance(testdb.New(t))
	v1, err := store.Create("support", "v1 {question}")
	require.NoError(t, err)
	require.Equal(t, 1, v1.Version)

	v2, err := store.Create("support", "v2 {question}")
	require.NoError(t, err)
	require.Equal(t, 2, v2.Version)
	require.NotEqual(t, v1.ID, v2.ID)

	other, err := store.Create("other", "x")
	require.NoError(t, err)
	require.Equal(t, 1, other.Version)

	versions, err := store.ListVersions("support")
	require.NoError(t, err)
	require.Len(t, versions, 2)
	require.Equal(t, 2, versions[0].Version)
	require.Equal(t, "v1 {question}", versions[1].Content)

	list, err := store.List()
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "other", list[0].Name)
}

func TestDelete(t *testing.T) {
	db := testdb.New(t)
	store := NewInstance(db)
	free, err := store.Create("free", "x")
	require.NoError(t, err)
	used, err := store.Create("used", "x")
	require.NoError(t, err)
	require.NoError(t, db.Create(&dbmodels.TestRun{PromptID: used.ID, Name: "run", Model: "m"}).Error)

	require.NoError(t, store.Delete(free.ID))
	got, err := store.GetByID(free.ID)
	require.NoError(t, err)
	require.Nil(t, got)

	require.ErrorIs(t, store.Delete(used.ID), storeerrors.ErrConstraint)
	require.ErrorIs(t, store.Delete("missing"), storeerrors.ErrNotFound)
}
