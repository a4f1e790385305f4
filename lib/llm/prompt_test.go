package llm

import (
	"testing"

	"github.com/stretchr/testify/require"
	dbmodels "sarah-testing/models/db"
	llmmodels "sarah-testing/models/llm"
)

func TestRenderPrompt(t *testing.T) {
	docs := []llmmodels.Document{
		{Title: "Policy", Pages: []string{"page 1", "page 2"}},
		{Title: "Handbook", Pages: []string{"intro"}},
	}

	t.Run("both placeholders", func(t *testing.T) {
		result := RenderPrompt("Sources:\n{sources}\n\nQ: {question}", "How?", docs)
		require.Equal(t, "Sources:\nPolicy\npage 1\npage 2\n\nHandbook\nintro\n\nQ: How?", result)
	})
	t.Run("no question placeholder", func(t *testing.T) {
		result := RenderPrompt("Be concise.\n", "How?", nil)
		require.Equal(t, "Be concise.\n\nHow?", result)
	})
	t.Run("empty template", func(t *testing.T) {
		require.Equal(t, "How?", RenderPrompt("", "How?", nil))
	})
	t.Run("placeholders are not expanded twice", func(t *testing.T) {
		result := RenderPrompt("{question}", "what is {sources}?", docs)
		require.Equal(t, "what is {sources}?", result)
	})
}

func TestDocumentsFromSources(t *testing.T) {
	docs := DocumentsFromSources([]dbmodels.Source{
		{Title: "Policy", Content: dbmodels.NewTextPages("a", "b")},
	})
	require.Equal(t, []llmmodels.Document{{Title: "Policy", Pages: []string{"a", "b"}}}, docs)
}
