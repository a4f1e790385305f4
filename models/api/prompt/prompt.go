package promptapimodels

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	dbmodels "sarah-testing/models/db"
)

type PromptData struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

func (p PromptData) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("не указано название промпта")
	}
	if strings.TrimSpace(p.Content) == "" {
		return errors.New("не указан текст промпта")
	}
	return nil
}

type PromptView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}

// PromptGroup версии одного промпта, последняя первой
type PromptGroup struct {
	Name     string       `json:"name"`
	Versions []PromptView `json:"versions"`
}

func PromptConvert(rec dbmodels.Prompt) PromptView {
	return PromptView{
		ID:        rec.ID,
		Name:      rec.Name,
		Content:   rec.Content,
		Version:   rec.Version,
		CreatedAt: rec.CreatedAt,
	}
}

func PromptGroupConvert(list []dbmodels.Prompt) []PromptGroup {
	result := make([]PromptGroup, 0)
	for _, rec := range list {
		if len(result) == 0 || result[len(result)-1].Name != rec.Name {
			result = append(result, PromptGroup{Name: rec.Name})
		}
		group := &result[len(result)-1]
		group.Versions = append(group.Versions, PromptConvert(rec))
	}
	return result
}
