package llmmodels

type Backend string

const (
	BackendAnthropic Backend = "anthropic"
	BackendYandexGPT Backend = "yandexgpt"
)

type Model struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Backend   Backend `json:"backend"`
	MaxTokens int     `json:"max_tokens"`
	// модель учитывает top_p и top_k
	SupportsSampling bool `json:"supports_sampling"`
}

const (
	ModelClaude35Sonnet = "claude-3-5-sonnet-20241022"
	ModelClaude35Haiku  = "claude-3-5-haiku-20241022"
	ModelClaude37Sonnet = "claude-3-7-sonnet-20250219"
	ModelYandexGPTLite  = "yandexgpt-lite"
	ModelYandexGPTPro   = "yandexgpt"
)

var catalog = []Model{
	{ID: ModelClaude35Sonnet, Name: "Claude 3.5 Sonnet", Backend: BackendAnthropic, MaxTokens: 8192, SupportsSampling: true},
	{ID: ModelClaude35Haiku, Name: "Claude 3.5 Haiku", Backend: BackendAnthropic, MaxTokens: 8192, SupportsSampling: true},
	{ID: ModelClaude37Sonnet, Name: "Claude 3.7 Sonnet", Backend: BackendAnthropic, MaxTokens: 8192, SupportsSampling: true},
	{ID: ModelYandexGPTLite, Name: "YandexGPT Lite", Backend: BackendYandexGPT, MaxTokens: 2000},
	{ID: ModelYandexGPTPro, Name: "YandexGPT Pro", Backend: BackendYandexGPT, MaxTokens: 2000},
}

func Models() []Model {
	result := make([]Model, len(catalog))
	copy(result, catalog)
	return result
}

// FindModel поиск по идентификатору или отображаемому названию
func FindModel(idOrName string) (Model, bool) {
	for _, model := range catalog {
		if model.ID == idOrName || model.Name == idOrName {
			return model, true
		}
	}
	return Model{}, false
}

func ModelName(id string) string {
	if model, ok := FindModel(id); ok {
		return model.Name
	}
	return id
}
