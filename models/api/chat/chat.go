package chatapimodels

import (
	"strings"

	"github.com/pkg/errors"
	llmmodels "sarah-testing/models/llm"
)

type Message struct {
	Role    string `json:"role"` // user | assistant
	Content string `json:"content"`
}

type ChatRequest struct {
	Model      string            `json:"model"`
	PromptID   string            `json:"prompt_id"`   // системная инструкция, необязательно
	QuestionID string            `json:"question_id"` // источники вопроса прикладываются к последнему сообщению
	Messages   []Message         `json:"messages"`
	Params     *llmmodels.Params `json:"params,omitempty"`
}

func (r ChatRequest) Validate() error {
	if len(r.Messages) == 0 {
		return errors.New("нет сообщений")
	}
	last := r.Messages[len(r.Messages)-1]
	if last.Role != llmmodels.RoleUser || strings.TrimSpace(last.Content) == "" {
		return errors.New("последнее сообщение должно быть непустым сообщением пользователя")
	}
	for _, msg := range r.Messages {
		if msg.Role != llmmodels.RoleUser && msg.Role != llmmodels.RoleAssistant {
			return errors.Errorf("неизвестная роль %q", msg.Role)
		}
	}
	if r.Params != nil {
		return r.Params.Validate()
	}
	return nil
}

func (r ChatRequest) GetParams() llmmodels.Params {
	if r.Params == nil {
		return llmmodels.DefaultParams
	}
	return *r.Params
}

type ChatResponse struct {
	Model     string `json:"model"`
	Text      string `json:"text"`
	Formatted string `json:"formatted"` // markdown со ссылками на источники
}
