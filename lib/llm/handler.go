package llm

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	anthropicclient "sarah-testing/lib/llm/anthropic-client"
	yagptclient "sarah-testing/lib/llm/yagpt-client"
	llmmodels "sarah-testing/models/llm"
)

var (
	ErrRateLimited    = llmmodels.ErrRateLimited
	ErrInvalidRequest = llmmodels.ErrInvalidRequest
	ErrTransport      = llmmodels.ErrTransport
)

type Provider interface {
	Generate(ctx context.Context, request llmmodels.Request) (llmmodels.Response, error)
	Models() []llmmodels.Model
}

// Backend клиент конкретного API модели
type Backend interface {
	Generate(ctx context.Context, request llmmodels.Request) (llmmodels.Response, error)
}

var Instance Provider

type Config struct {
	AnthropicAPIKey   string
	RequestsPerMinute int
	YandexIAMToken    string
	YandexCatalogID   string
}

func NewHandler(conf Config) {
	backends := map[llmmodels.Backend]Backend{}
	if conf.AnthropicAPIKey != "" {
		backends[llmmodels.BackendAnthropic] = anthropicclient.NewClient(conf.AnthropicAPIKey)
	} else {
		log.Warn("не задан ANTHROPIC_API_KEY, модели Claude недоступны")
	}
	if conf.YandexIAMToken != "" && conf.YandexCatalogID != "" {
		backends[llmmodels.BackendYandexGPT] = yagptclient.NewClient(conf.YandexIAMToken, conf.YandexCatalogID)
	}
	Instance = New(backends, conf.RequestsPerMinute)
}

// New requestsPerMinute <= 0 отключает ограничение частоты запросов
func New(backends map[llmmodels.Backend]Backend, requestsPerMinute int) Provider {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if requestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1)
	}
	return impl{
		backends: backends,
		limiter:  limiter,
	}
}

type impl struct {
	backends map[llmmodels.Backend]Backend
	limiter  *rate.Limiter
}

func (i impl) Models() []llmmodels.Model {
	result := make([]llmmodels.Model, 0)
	for _, model := range llmmodels.Models() {
		if _, ok := i.backends[model.Backend]; ok {
			result = append(result, model)
		}
	}
	return result
}

func (i impl) Generate(ctx context.Context, request llmmodels.Request) (llmmodels.Response, error) {
	model, ok := llmmodels.FindModel(request.Model)
	if !ok {
		return llmmodels.Response{}, errors.Wrapf(ErrInvalidRequest, "неизвестная модель %q", request.Model)
	}
	backend, ok := i.backends[model.Backend]
	if !ok {
		return llmmodels.Response{}, errors.Wrapf(ErrInvalidRequest, "модель %q не настроена", model.Name)
	}
	if request.Prompt == "" {
		return llmmodels.Response{}, errors.Wrap(ErrInvalidRequest, "пустой текст запроса")
	}
	if err := request.Params.Validate(); err != nil {
		return llmmodels.Response{}, errors.Wrap(ErrInvalidRequest, err.Error())
	}
	request.Model = model.ID
	if request.MaxTokens <= 0 || request.MaxTokens > model.MaxTokens {
		request.MaxTokens = model.MaxTokens
	}
	if !model.SupportsSampling {
		log.WithField("model", model.ID).Debug("top_p и top_k не поддерживаются моделью и будут проигнорированы")
	}
	if err := i.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return llmmodels.Response{}, errors.Wrap(ctx.Err(), "запрос отменен до обращения к модели")
		}
		// лимитер отказывает сразу, если очередь не успевает до дедлайна контекста
		return llmmodels.Response{}, errors.Wrap(context.DeadlineExceeded, err.Error())
	}
	logger := log.WithField("model", model.ID)
	start := time.Now()
	response, err := backend.Generate(ctx, request)
	if err != nil {
		logger.WithError(err).Warn("ошибка запроса к модели")
		return llmmodels.Response{}, err
	}
	logger.WithField("duration", time.Since(start).String()).Debug("получен ответ модели")
	return response, nil
}
