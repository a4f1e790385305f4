package questionhandler

import (
	"testing"

	"github.com/stretchr/testify/require"
	questionstore "sarah-testing/lib/questions/store"
	sourcestore "sarah-testing/lib/questions/source-store"
	storeerrors "sarah-testing/lib/utils/store-errors"
	testdb "sarah-testing/lib/utils/test-db"
	apimodels "sarah-testing/models/api"
	questionapimodels "sarah-testing/models/api/question"
)

func newProvider(t *testing.T) Provider {
	db := testdb.New(t)
	return New(questionstore.NewInstance(db), sourcestore.NewInstance(db))
}

func TestCreateListDelete(t *testing.T) {
	provider := newProvider(t)
	view, err := provider.Create(questionapimodels.QuestionData{
		Name:    "Remote work",
		Content: "Can I work from home?",
		Sources: []questionapimodels.SourceData{
			{Title: "Policy", Pages: []string{"[Page 1]\nup to 3 days", "[Page 2]\ncore hours"}},
		},
	})
	require.NoError(t, err)
	require.Len(t, view.Sources, 1)
	require.Equal(t, []string{"[Page 1]\nup to 3 days", "[Page 2]\ncore hours"}, view.Sources[0].Pages)

	source, err := provider.AddSource(view.ID, questionapimodels.SourceData{Title: "Handbook", Pages: []string{"text"}})
	require.NoError(t, err)
	require.Equal(t, view.ID, source.QuestionID)

	list, err := provider.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].Sources, 2)

	require.NoError(t, provider.Delete(view.ID))
	_, err = provider.Get(view.ID)
	require.ErrorIs(t, err, storeerrors.ErrNotFound)
	sources, err := provider.ListSources(view.ID)
	require.NoError(t, err)
	require.Empty(t, sources)
}

func TestCreateValidation(t *testing.T) {
	provider := newProvider(t)
	_, err := provider.Create(questionapimodels.QuestionData{Name: "no content"})
	require.ErrorIs(t, err, apimodels.ErrValidation)

	_, err = provider.AddSource("missing", questionapimodels.SourceData{Title: "t", Pages: []string{"p"}})
	require.ErrorIs(t, err, storeerrors.ErrNotFound)
}
