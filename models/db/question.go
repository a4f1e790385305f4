package dbmodels

import (
	"strings"

	"github.com/pkg/errors"
)

type Question struct {
	BaseModel
	Name    string   `gorm:"type:varchar(255)" comment:"Название вопроса"`
	Content string   `gorm:"type:text" comment:"Текст вопроса"`
	Sources []Source `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
}

func (q Question) Validate() error {
	if strings.TrimSpace(q.Name) == "" {
		return errors.New("не указано название вопроса")
	}
	if strings.TrimSpace(q.Content) == "" {
		return errors.New("не указан текст вопроса")
	}
	return nil
}
