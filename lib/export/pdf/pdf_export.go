package pdfexport

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	testrunapimodels "sarah-testing/models/api/testrun"
)

type Provider interface {
	ExportRunResults(run testrunapimodels.RunView, rows []testrunapimodels.ExportRow) ([]byte, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

func (i impl) ExportRunResults(run testrunapimodels.RunView, rows []testrunapimodels.ExportRow) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("ExportRunResults panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	// встроенный шрифт, текст переводится в cp1252
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(run.Name), false)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("%d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, tr(run.Name), "", "L", false)
	pdf.SetFont("Helvetica", "", 10)
	_, lineHt := pdf.GetFontSize()
	lineHt += 2
	if run.Description != "" {
		pdf.MultiCell(0, lineHt, tr(run.Description), "", "L", false)
	}
	model := run.ModelName
	if model == "" {
		model = run.Model
	}
	pdf.MultiCell(0, lineHt, tr(fmt.Sprintf("Model: %s", model)), "", "L", false)
	pdf.MultiCell(0, lineHt, tr(fmt.Sprintf("Parameters: temp=%v, top_p=%v, top_k=%d", run.Temperature, run.TopP, run.TopK)), "", "L", false)
	if len(rows) != 0 {
		pdf.MultiCell(0, lineHt, tr(fmt.Sprintf("Prompt: %s (v%d)", rows[0].PromptName, rows[0].PromptVersion)), "", "L", false)
	}
	pdf.Ln(4)

	for idx, row := range rows {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetFillColor(235, 235, 235)
		pdf.MultiCell(0, lineHt+1, tr(fmt.Sprintf("%d. %s", idx+1, row.Question)), "", "L", true)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, lineHt, tr(row.Response), "", "L", false)
		pdf.Ln(3)
	}
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
