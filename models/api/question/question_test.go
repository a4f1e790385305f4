package questionapimodels

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePages(t *testing.T) {
	pages := ParsePages("[Page 1]\nfirst\r\n---\n\n[Page 2]\nsecond\n --- \n\n---\n")
	require.Equal(t, []string{"[Page 1]\nfirst", "[Page 2]\nsecond"}, pages)
	require.Empty(t, ParsePages(" \n---\n"))
}

func TestQuestionDataValidate(t *testing.T) {
	data := QuestionData{
		Name:    "Remote work",
		Content: "Can I work from home?",
		Sources: []SourceData{{Title: "Policy", Pages: []string{"", "text"}}},
	}
	require.NoError(t, data.Validate())

	question, sources := data.ToDB()
	require.Equal(t, "Remote work", question.Name)
	require.Len(t, sources, 1)
	require.Len(t, sources[0].Content, 1)

	data.Sources[0].Pages = []string{" "}
	require.Error(t, data.Validate())

	data.Sources = make([]SourceData, MaxSources+1)
	for i := range data.Sources {
		data.Sources[i] = SourceData{Title: "t", Pages: []string{"p"}}
	}
	err := data.Validate()
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "10"))

	require.Error(t, QuestionData{Content: "c"}.Validate())
	require.Error(t, QuestionData{Name: "n"}.Validate())
}
