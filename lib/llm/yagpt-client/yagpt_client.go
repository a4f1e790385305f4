package yagptclient

import (
	"context"
	"net/http"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
	yandexgptclient "github.com/sheeiavellie/go-yandexgpt"
	llmmodels "sarah-testing/models/llm"
)

type Provider interface {
	Generate(ctx context.Context, request llmmodels.Request) (llmmodels.Response, error)
}

type impl struct {
	client    *yandexgptclient.YandexGPTClient
	catalogID string
}

func NewClient(token, catalog string) Provider {
	return impl{
		client:    yandexgptclient.NewYandexGPTClientWithIAMToken(token),
		catalogID: catalog,
	}
}

// Generate API YandexGPT не поддерживает top_p/top_k и документы, источники уже подставлены в текст промпта
func (i impl) Generate(ctx context.Context, request llmmodels.Request) (llmmodels.Response, error) {
	yaRequest := yandexgptclient.YandexGPTRequest{
		ModelURI: yandexgptclient.MakeModelURI(i.catalogID, yandexgptclient.YandexGPTModelLite),
		CompletionOptions: yandexgptclient.YandexGPTCompletionOptions{
			Stream:      false,
			Temperature: 0.3,
			MaxTokens:   2000,
		},
	}
	if request.Model == llmmodels.ModelYandexGPTPro {
		yaRequest.ModelURI = yandexgptclient.MakeModelURI(i.catalogID, yandexgptclient.YandexGPTModel)
	}
	setFloat(&yaRequest.CompletionOptions.Temperature, request.Params.Temperature)
	if request.System != "" {
		yaRequest.Messages = append(yaRequest.Messages, yandexgptclient.YandexGPTMessage{
			Role: yandexgptclient.YandexGPTMessageRoleSystem,
			Text: request.System,
		})
	}
	for _, msg := range request.History {
		role := yandexgptclient.YandexGPTMessageRoleUser
		if msg.Role == llmmodels.RoleAssistant {
			role = yandexgptclient.YandexGPTMessageRoleAssistant
		}
		yaRequest.Messages = append(yaRequest.Messages, yandexgptclient.YandexGPTMessage{
			Role: role,
			Text: msg.Text,
		})
	}
	yaRequest.Messages = append(yaRequest.Messages, yandexgptclient.YandexGPTMessage{
		Role: yandexgptclient.YandexGPTMessageRoleUser,
		Text: request.Prompt,
	})

	response, err := i.client.CreateRequest(ctx, yaRequest)
	if err != nil {
		return llmmodels.Response{}, classifyError(err)
	}
	if len(response.Result.Alternatives) == 0 {
		return llmmodels.Response{}, errors.Wrap(llmmodels.ErrTransport, "YandexGPT вернул пустой ответ")
	}
	return llmmodels.Response{
		Model:  request.Model,
		Blocks: []llmmodels.TextBlock{{Text: response.Result.Alternatives[0].Message.Text}},
	}, nil
}

func setFloat[T ~float32 | ~float64](dst *T, value float64) {
	*dst = T(value)
}

// statusPattern клиент возвращает ошибки без типа: "bad response. Http Status 429 ..."
var statusPattern = regexp.MustCompile(`\bHttp Status (\d{3})\b`)

func classifyError(err error) error {
	text := err.Error()
	match := statusPattern.FindStringSubmatch(text)
	if match == nil {
		return errors.Wrap(llmmodels.ErrTransport, text)
	}
	status, _ := strconv.Atoi(match[1])
	switch {
	case status == http.StatusTooManyRequests:
		return errors.Wrap(llmmodels.ErrRateLimited, text)
	case status >= 400 && status < 500:
		return errors.Wrap(llmmodels.ErrInvalidRequest, text)
	}
	return errors.Wrap(llmmodels.ErrTransport, text)
}
