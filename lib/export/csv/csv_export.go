package csvexport

import (
	"bytes"
	"encoding/csv"

	"github.com/pkg/errors"
	testrunapimodels "sarah-testing/models/api/testrun"
)

type Provider interface {
	ExportRunResults(rows []testrunapimodels.ExportRow) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

func (i impl) ExportRunResults(rows []testrunapimodels.ExportRow) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	if err := w.Write(testrunapimodels.ExportHeaders); err != nil {
		return nil, errors.Wrap(err, "ошибка записи заголовка csv")
	}
	for _, row := range rows {
		if err := w.Write(row.Values()); err != nil {
			return nil, errors.Wrap(err, "ошибка записи строки csv")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования csv")
	}
	return buf, nil
}
