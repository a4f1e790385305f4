package pdfexport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	testrunapimodels "sarah-testing/models/api/testrun"
)

func TestExportRunResults(t *testing.T) {
	run := testrunapimodels.RunView{Name: "Smoke", Description: "desc", Model: "claude-3-5-sonnet-20241022", Temperature: 0.8, TopP: 0.9, TopK: 10}
	rows := []testrunapimodels.ExportRow{
		{RunName: "Smoke", PromptName: "hr", PromptVersion: 1, Question: "Remote work?", Response: "Up to 3 days per week."},
		{RunName: "Smoke", PromptName: "hr", PromptVersion: 1, Question: "Café hours?", Response: "Error: transport"},
	}
	body, err := impl{}.ExportRunResults(run, rows)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(body, []byte("%PDF-")))
}

func TestExportEmptyRun(t *testing.T) {
	body, err := impl{}.ExportRunResults(testrunapimodels.RunView{Name: "Empty"}, nil)
	require.NoError(t, err)
	require.NotEmpty(t, body)
}
