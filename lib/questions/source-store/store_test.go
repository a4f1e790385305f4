package sourcestore

import (
	"testing"

	"github.com/stretchr/testify/require"
	storeerrors "sarah-testing/lib/utils/store-errors"
	testdb "sarah-testing/lib/utils/test-db"
	dbmodels "sarah-testing/models/db"
)

func TestCreateAndList(t *testing.T) {
	db := testdb.New(t)
	question := dbmodels.Question{Name: "q", Content: "c"}
	require.NoError(t, db.Create(&question).Error)
	store := NewInstance(db)

	first, err := store.Create(dbmodels.Source{QuestionID: question.ID, Title: "first", Content: dbmodels.NewTextPages("p1", "p2")})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	_, err = store.Create(dbmodels.Source{QuestionID: question.ID, Title: "second", Content: dbmodels.NewTextPages("p1")})
	require.NoError(t, err)

	list, err := store.ListByQuestion(question.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "first", list[0].Title)
	require.Equal(t, dbmodels.SourcePages{{Type: "text", Text: "p1"}, {Type: "text", Text: "p2"}}, list[0].Content)
}

func TestCreateForMissingQuestion(t *testing.T) {
	store := NewInstance(testdb.New(t))
	_, err := store.Create(dbmodels.Source{QuestionID: "missing", Title: "t", Content: dbmodels.NewTextPages("p")})
	require.ErrorIs(t, err, storeerrors.ErrConstraint)
}
