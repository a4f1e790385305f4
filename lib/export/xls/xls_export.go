package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	testrunapimodels "sarah-testing/models/api/testrun"
)

type Provider interface {
	ExportRunResults(runName string, rows []testrunapimodels.ExportRow) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

// ограничение excel на имя листа
const maxSheetName = 31

func (i impl) ExportRunResults(runName string, rows []testrunapimodels.ExportRow) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, testrunapimodels.ExportHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(rows) != 0 {
		_, err = writeResultData(f, sheet, rows, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	if err = f.SetSheetName(sheet, sheetName(runName)); err != nil {
		return nil, errors.Wrap(err, "ошибка переименования листа")
	}
	return f.WriteToBuffer()
}

func writeResultData(f *excelize.File, sheet string, rows []testrunapimodels.ExportRow, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(testrunapimodels.ExportHeaders), len(rows)+1); err != nil {
		return row, err
	}
	for _, item := range rows {
		row++
		for idx, value := range item.Values() {
			if value == "" {
				continue
			}
			if err := writeColumn(f, sheet, idx+1, row, value); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}

func sheetName(runName string) string {
	name := []rune(runName)
	clean := make([]rune, 0, len(name))
	for _, r := range name {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			continue
		}
		clean = append(clean, r)
	}
	if len(clean) == 0 {
		return "Results"
	}
	if len(clean) > maxSheetName {
		clean = clean[:maxSheetName]
	}
	return string(clean)
}
