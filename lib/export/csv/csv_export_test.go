package csvexport

import (
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	testrunapimodels "sarah-testing/models/api/testrun"
)

func TestExportRunResults(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	rows := []testrunapimodels.ExportRow{
		{
			RunName:        "Smoke",
			RunDescription: "first line\nParameters: temp=0.8, top_p=0.9, top_k=10",
			Model:          "Claude 3.5 Sonnet",
			PromptName:     "hr",
			PromptVersion:  2,
			PromptContent:  "Answer {question}",
			Question:       "Remote, policy?",
			Response:       `He said "yes"`,
			CreatedAt:      created,
		},
	}
	buf, err := impl{}.ExportRunResults(rows)
	require.NoError(t, err)

	records, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, testrunapimodels.ExportHeaders, records[0])
	require.Equal(t, "Smoke", records[1][0])
	require.Equal(t, "2", records[1][4])
	require.Equal(t, "Remote, policy?", records[1][6])
	require.Equal(t, `He said "yes"`, records[1][7])
	require.Equal(t, created.Format(time.RFC3339), records[1][8])
}

func TestExportEmpty(t *testing.T) {
	buf, err := impl{}.ExportRunResults(nil)
	require.NoError(t, err)
	records, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}
