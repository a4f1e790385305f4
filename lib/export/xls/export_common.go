package xlsexport

import "github.com/xuri/excelize/v2"

const (
	narrowColWidth = 22
	wideColWidth   = 60
)

// колонки с длинным текстом: содержимое промпта, вопрос, ответ
var wideCols = map[int]bool{6: true, 7: true, 8: true}

func writeColumn(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}

func writeHeader(f *excelize.File, sheet string, row int, headers []string) (int, error) {
	row++
	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Font: &excelize.Font{
			Bold:   true,
			Family: "Calibri",
			Size:   11,
		},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return row, err
	}
	cellFirst, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return row, err
	}
	cellLast, err := excelize.CoordinatesToCellName(len(headers), row)
	if err != nil {
		return row, err
	}
	if err = f.SetCellStyle(sheet, cellFirst, cellLast, style); err != nil {
		return row, err
	}

	for idx, value := range headers {
		col := idx + 1
		colName, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return row, err
		}
		width := float64(narrowColWidth)
		if wideCols[col] {
			width = wideColWidth
		}
		if err = f.SetColWidth(sheet, colName, colName, width); err != nil {
			return row, err
		}
		if err = writeColumn(f, sheet, col, row, value); err != nil {
			return row, err
		}
	}
	topLeft, err := excelize.CoordinatesToCellName(1, row+1)
	if err != nil {
		return row, err
	}
	// шапка остается видимой при прокрутке
	err = f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      row,
		TopLeftCell: topLeft,
		ActivePane:  "bottomLeft",
	})
	return row, err
}

func applyDataCellStyle(f *excelize.File, sheet string, colFrom, rowFrom, colTo, rowTo int) error {
	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "top",
			WrapText:   true,
		},
		Font: &excelize.Font{
			Family: "Calibri",
			Size:   11,
		},
	})
	if err != nil {
		return err
	}
	cellFirst, err := excelize.CoordinatesToCellName(colFrom, rowFrom)
	if err != nil {
		return err
	}
	cellLast, err := excelize.CoordinatesToCellName(colTo, rowTo)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cellFirst, cellLast, style)
}
