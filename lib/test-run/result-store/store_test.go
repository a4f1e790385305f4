package runresultstore

import (
	"testing"

	"github.com/stretchr/testify/require"
	storeerrors "sarah-testing/lib/utils/store-errors"
	testdb "sarah-testing/lib/utils/test-db"
	dbmodels "sarah-testing/models/db"
)

func TestCreateAndList(t *testing.T) {
	db := testdb.New(t)
	prompt := dbmodels.Prompt{Name: "p", Content: "x", Version: 1}
	require.NoError(t, db.Create(&prompt).Error)
	question := dbmodels.Question{Name: "q", Content: "c"}
	require.NoError(t, db.Create(&question).Error)
	run := dbmodels.TestRun{PromptID: prompt.ID, Name: "run", Model: "m"}
	require.NoError(t, db.Create(&run).Error)
	store := NewInstance(db)

	ok, err := store.Create(dbmodels.RunResult{RunID: run.ID, QuestionID: question.ID, Response: "answer"})
	require.NoError(t, err)
	require.Equal(t, dbmodels.RunResultSuccess, ok.Status)
	_, err = store.Create(dbmodels.RunResult{
		RunID:      run.ID,
		QuestionID: question.ID,
		Response:   "Error: overloaded",
		Status:     dbmodels.RunResultError,
		ErrorKind:  dbmodels.RunErrorRateLimited,
	})
	require.NoError(t, err)

	list, err := store.ListByRun(run.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "answer", list[0].Response)
	require.True(t, list[1].IsError())

	rowCount, err := store.CountByRun(run.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, rowCount)

	_, err = store.Create(dbmodels.RunResult{RunID: "missing", QuestionID: question.ID})
	require.ErrorIs(t, err, storeerrors.ErrConstraint)
}
