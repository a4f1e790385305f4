package export

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	csvexport "sarah-testing/lib/export/csv"
	pdfexport "sarah-testing/lib/export/pdf"
	xlsexport "sarah-testing/lib/export/xls"
	apimodels "sarah-testing/models/api"
	testrunapimodels "sarah-testing/models/api/testrun"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

type File struct {
	Name        string
	ContentType string
	Body        []byte
}

func NewHandler() {
	csvexport.NewHandler()
	xlsexport.NewHandler()
	pdfexport.NewHandler()
}

// RunResults выгрузка результатов прогона в одном из форматов
func RunResults(format string, run testrunapimodels.RunView, rows []testrunapimodels.ExportRow) (File, error) {
	format = strings.ToLower(format)
	file := File{Name: FileName(run, format)}
	switch format {
	case FormatCSV:
		buf, err := csvexport.Instance.ExportRunResults(rows)
		if err != nil {
			return File{}, err
		}
		file.Body = buf.Bytes()
		file.ContentType = "text/csv; charset=utf-8"
	case FormatXLSX:
		buf, err := xlsexport.Instance.ExportRunResults(run.Name, rows)
		if err != nil {
			return File{}, err
		}
		file.Body = buf.Bytes()
		file.ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		body, err := pdfexport.Instance.ExportRunResults(run, rows)
		if err != nil {
			return File{}, err
		}
		file.Body = body
		file.ContentType = "application/pdf"
	default:
		return File{}, apimodels.NewValidationError(errors.Errorf("неизвестный формат выгрузки %q", format))
	}
	return file, nil
}

// FileName test_results_<имя прогона>.<формат>
func FileName(run testrunapimodels.RunView, format string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, run.Name)
	if name == "" {
		name = run.ID
	}
	return fmt.Sprintf("test_results_%s.%s", name, format)
}
