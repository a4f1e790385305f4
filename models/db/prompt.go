package dbmodels

import (
	"strings"

	"github.com/pkg/errors"
)

type Prompt struct {
	BaseModel
	Name    string `gorm:"type:varchar(255);uniqueIndex:idx_prompt_name_version" comment:"Название промпта"`
	Content string `gorm:"type:text" comment:"Текст промпта"`
	Version int    `gorm:"uniqueIndex:idx_prompt_name_version" comment:"Версия промпта в рамках названия"`
}

func (p Prompt) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("не указано название промпта")
	}
	if strings.TrimSpace(p.Content) == "" {
		return errors.New("не указан текст промпта")
	}
	return nil
}
