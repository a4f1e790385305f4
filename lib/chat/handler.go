package chathandler

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"sarah-testing/db"
	"sarah-testing/lib/llm"
	promptstore "sarah-testing/lib/prompts/store"
	questionstore "sarah-testing/lib/questions/store"
	initchecker "sarah-testing/lib/utils/init-checker"
	apimodels "sarah-testing/models/api"
	chatapimodels "sarah-testing/models/api/chat"
	llmmodels "sarah-testing/models/llm"
)

type Provider interface {
	Send(ctx context.Context, request chatapimodels.ChatRequest) (chatapimodels.ChatResponse, error)
	Models() []llmmodels.Model
}

var Instance Provider

func NewHandler(defaultModel string) {
	Instance = New(promptstore.NewInstance(db.DB), questionstore.NewInstance(db.DB), llm.Instance, defaultModel)
}

func New(promptStore promptstore.Provider, questionStore questionstore.Provider, model llm.Provider, defaultModel string) Provider {
	instance := impl{
		promptStore:   promptStore,
		questionStore: questionStore,
		model:         model,
		defaultModel:  defaultModel,
	}
	initchecker.CheckInit(
		"promptStore", instance.promptStore,
		"questionStore", instance.questionStore,
		"model", instance.model,
	)
	return instance
}

type impl struct {
	promptStore   promptstore.Provider
	questionStore questionstore.Provider
	model         llm.Provider
	defaultModel  string
}

func (i impl) Models() []llmmodels.Model {
	return i.model.Models()
}

func (i impl) Send(ctx context.Context, request chatapimodels.ChatRequest) (chatapimodels.ChatResponse, error) {
	if err := request.Validate(); err != nil {
		return chatapimodels.ChatResponse{}, apimodels.NewValidationError(err)
	}
	modelID := request.Model
	if modelID == "" {
		modelID = i.defaultModel
	}
	llmRequest := llmmodels.Request{
		Model:  modelID,
		Params: request.GetParams(),
	}
	if request.PromptID != "" {
		prompt, err := i.promptStore.GetByID(request.PromptID)
		if err != nil {
			return chatapimodels.ChatResponse{}, err
		}
		if prompt == nil {
			return chatapimodels.ChatResponse{}, apimodels.NewValidationError(errors.New("промпт не найден"))
		}
		llmRequest.System = prompt.Content
	}
	if request.QuestionID != "" {
		question, err := i.questionStore.GetByID(request.QuestionID)
		if err != nil {
			return chatapimodels.ChatResponse{}, err
		}
		if question == nil {
			return chatapimodels.ChatResponse{}, apimodels.NewValidationError(errors.New("вопрос не найден"))
		}
		llmRequest.Documents = llm.DocumentsFromSources(question.Sources)
	}
	last := len(request.Messages) - 1
	for _, msg := range request.Messages[:last] {
		if strings.TrimSpace(msg.Content) == "" {
			continue
		}
		llmRequest.History = append(llmRequest.History, llmmodels.Message{Role: msg.Role, Text: msg.Content})
	}
	llmRequest.Prompt = request.Messages[last].Content

	response, err := i.model.Generate(ctx, llmRequest)
	if err != nil {
		log.WithField("model", modelID).WithError(err).Warn("ошибка ответа модели в чате")
		return chatapimodels.ChatResponse{}, err
	}
	return chatapimodels.ChatResponse{
		Model:     modelID,
		Text:      response.Text(),
		Formatted: llm.FormatResponse(response),
	}, nil
}
