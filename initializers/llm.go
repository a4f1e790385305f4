package initializers

import (
	log "github.com/sirupsen/logrus"
	"sarah-testing/config"
	"sarah-testing/lib/llm"
	llmmodels "sarah-testing/models/llm"
)

func InitLLM() {
	llm.NewHandler(llm.Config{
		AnthropicAPIKey:   config.Conf.Anthropic.APIKey,
		RequestsPerMinute: config.Conf.Anthropic.RequestsPerMinute,
		YandexIAMToken:    config.Conf.YandexGPT.IAMToken,
		YandexCatalogID:   config.Conf.YandexGPT.CatalogID,
	})
	if _, ok := llmmodels.FindModel(config.Conf.Anthropic.DefaultModel); !ok {
		log.WithField("model", config.Conf.Anthropic.DefaultModel).Warn("модель по умолчанию не найдена в каталоге")
	}
	if len(llm.Instance.Models()) == 0 {
		log.Warn("не настроен ни один API модели, прогоны и чат будут завершаться ошибкой")
	}
}
