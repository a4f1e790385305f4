package llmmodels

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrRateLimited    = errors.New("превышен лимит запросов к модели")
	ErrInvalidRequest = errors.New("некорректный запрос к модели")
	ErrTransport      = errors.New("ошибка соединения с сервисом модели")
)

type Params struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	TopK        int     `json:"top_k"`
}

var DefaultParams = Params{
	Temperature: 0.8,
	TopP:        0.9,
	TopK:        10,
}

func (p Params) Validate() error {
	if p.Temperature < 0 || p.Temperature > 1 {
		return errors.New("temperature должна быть в диапазоне 0..1")
	}
	if p.TopP < 0 || p.TopP > 1 {
		return errors.New("top_p должен быть в диапазоне 0..1")
	}
	if p.TopK < 1 || p.TopK > 100 {
		return errors.New("top_k должен быть в диапазоне 1..100")
	}
	return nil
}

// Document источник, передаваемый модели постранично
type Document struct {
	Title string
	Pages []string
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role string
	Text string
}

// Request History - предыдущие сообщения диалога, Prompt - текущее сообщение пользователя
type Request struct {
	Model     string
	MaxTokens int
	System    string
	History   []Message
	Prompt    string
	Documents []Document
	Params    Params
}

type Citation struct {
	Type            string
	DocumentTitle   string
	CitedText       string
	StartPageNumber int64
	EndPageNumber   int64
	StartCharIndex  int64
	EndCharIndex    int64
	StartBlockIndex int64
	EndBlockIndex   int64
}

type TextBlock struct {
	Text      string
	Citations []Citation
}

type Response struct {
	Model  string
	Blocks []TextBlock
}

// Text ответ модели без ссылок на источники
func (r Response) Text() string {
	var sb strings.Builder
	for _, block := range r.Blocks {
		sb.WriteString(block.Text)
	}
	return sb.String()
}

func (r Response) HasCitations() bool {
	for _, block := range r.Blocks {
		if len(block.Citations) > 0 {
			return true
		}
	}
	return false
}
