package dbmodels

import (
	"strings"

	"github.com/pkg/errors"
)

// TestRun один прогон промпта по набору вопросов с фиксированными параметрами модели
type TestRun struct {
	BaseModel
	PromptID    string  `gorm:"type:varchar(36);not null;index"`
	Prompt      *Prompt `gorm:"foreignKey:PromptID;constraint:OnDelete:RESTRICT"`
	Name        string  `gorm:"type:varchar(255)"`
	Description string  `gorm:"type:text"`
	Model       string  `gorm:"type:varchar(255)"`
	Temperature float64
	TopP        float64
	TopK        int
}

func (r TestRun) Validate() error {
	if r.PromptID == "" {
		return errors.New("отсутствует ссылка на промпт")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("не указано название прогона")
	}
	if r.Model == "" {
		return errors.New("не указана модель")
	}
	return nil
}
