package export

import (
	"testing"

	"github.com/stretchr/testify/require"
	apimodels "sarah-testing/models/api"
	testrunapimodels "sarah-testing/models/api/testrun"
)

func TestRunResults(t *testing.T) {
	NewHandler()
	run := testrunapimodels.RunView{ID: "run-1", Name: "Smoke test (Config 1)"}
	rows := []testrunapimodels.ExportRow{{RunName: run.Name, Question: "q", Response: "a"}}

	for _, format := range []string{FormatCSV, "XLSX", FormatPDF} {
		file, err := RunResults(format, run, rows)
		require.NoError(t, err, format)
		require.NotEmpty(t, file.Body)
		require.NotEmpty(t, file.ContentType)
	}

	_, err := RunResults("doc", run, rows)
	require.ErrorIs(t, err, apimodels.ErrValidation)
}

func TestFileName(t *testing.T) {
	require.Equal(t, "test_results_Smoke_test_Config_1.csv", FileName(testrunapimodels.RunView{Name: "Smoke test (Config 1)"}, FormatCSV))
	require.Equal(t, "test_results_run-1.pdf", FileName(testrunapimodels.RunView{ID: "run-1", Name: "Тест"}, FormatPDF))
}
