package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Source документ-источник вопроса, разбитый на страницы
type Source struct {
	BaseModel
	QuestionID string      `gorm:"type:varchar(36);not null;index"`
	Title      string      `gorm:"type:varchar(255)"`
	Content    SourcePages `gorm:"type:text"`
}

type SourcePage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type SourcePages []SourcePage

func (p SourcePages) Value() (driver.Value, error) {
	if p == nil {
		p = SourcePages{}
	}
	valueString, err := json.Marshal(p)
	return string(valueString), err
}

func (p *SourcePages) Scan(value any) error {
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	case nil:
		*p = SourcePages{}
		return nil
	default:
		return errors.Errorf("неподдерживаемый тип данных страниц источника: %T", value)
	}
	return json.Unmarshal(data, p)
}

// Text текст всех страниц через перевод строки
func (p SourcePages) Text() string {
	parts := make([]string, 0, len(p))
	for _, page := range p {
		parts = append(parts, page.Text)
	}
	return strings.Join(parts, "\n")
}

func NewTextPages(texts ...string) SourcePages {
	pages := make(SourcePages, 0, len(texts))
	for _, text := range texts {
		pages = append(pages, SourcePage{Type: "text", Text: text})
	}
	return pages
}

func (s Source) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return errors.New("не указано название источника")
	}
	if len(s.Content) == 0 {
		return errors.New("источник не содержит страниц")
	}
	return nil
}
