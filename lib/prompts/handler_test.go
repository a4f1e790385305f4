package prompthandler

import (
	"testing"

	"github.com/stretchr/testify/require"
	promptstore "sarah-testing/lib/prompts/store"
	storeerrors "sarah-testing/lib/utils/store-errors"
	testdb "sarah-testing/lib/utils/test-db"
	apimodels "sarah-testing/models/api"
	promptapimodels "sarah-testing/models/api/prompt"
)

func TestVersionsAndGroups(t *testing.T) {
	provider := New(promptstore.NewInstance(testdb.New(t)))
	first, err := provider.Create(promptapimodels.PromptData{Name: "support", Content: "v1"})
	require.NoError(t, err)
	second, err := provider.Create(promptapimodels.PromptData{Name: "support", Content: "v2"})
	require.NoError(t, err)
	_, err = provider.Create(promptapimodels.PromptData{Name: "analyst", Content: "a"})
	require.NoError(t, err)

	require.Equal(t, 1, first.Version)
	require.Equal(t, 2, second.Version)
	require.NotEqual(t, first.ID, second.ID)

	groups, err := provider.ListGrouped()
	require.NoError(t, err)
	require.Len(t, groups, 2)
	require.Equal(t, "analyst", groups[0].Name)
	require.Equal(t, "support", groups[1].Name)
	require.Equal(t, 2, groups[1].Versions[0].Version)

	versions, err := provider.Versions("support")
	require.NoError(t, err)
	require.Len(t, versions, 2)

	require.NoError(t, provider.Delete(first.ID))
	_, err = provider.Get(first.ID)
	require.ErrorIs(t, err, storeerrors.ErrNotFound)
}

func TestCreateValidation(t *testing.T) {
	provider := New(promptstore.NewInstance(testdb.New(t)))
	_, err := provider.Create(promptapimodels.PromptData{Name: "x"})
	require.ErrorIs(t, err, apimodels.ErrValidation)
}
