package anthropicclient

import (
	"context"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/pkg/errors"
	llmmodels "sarah-testing/models/llm"
)

type Provider interface {
	Generate(ctx context.Context, request llmmodels.Request) (llmmodels.Response, error)
}

type impl struct {
	client anthropic.Client
}

// NewClient клиент Messages API без собственных повторов запросов
func NewClient(apiKey string, opts ...option.RequestOption) Provider {
	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)
	return impl{
		client: anthropic.NewClient(opts...),
	}
}

func (i impl) Generate(ctx context.Context, request llmmodels.Request) (llmmodels.Response, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(request.Model),
		MaxTokens:   int64(request.MaxTokens),
		Messages:    messages(request),
		Temperature: anthropic.Float(request.Params.Temperature),
		TopP:        anthropic.Float(request.Params.TopP),
		TopK:        anthropic.Int(int64(request.Params.TopK)),
	}
	if request.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: request.System}}
	}

	message, err := i.client.Messages.New(ctx, params)
	if err != nil {
		return llmmodels.Response{}, classifyError(err)
	}

	response := llmmodels.Response{Model: string(message.Model)}
	for _, block := range message.Content {
		if block.Type != "text" {
			continue
		}
		textBlock := llmmodels.TextBlock{Text: block.Text}
		for _, citation := range block.Citations {
			textBlock.Citations = append(textBlock.Citations, llmmodels.Citation{
				Type:            citation.Type,
				DocumentTitle:   citation.DocumentTitle,
				CitedText:       citation.CitedText,
				StartPageNumber: citation.StartPageNumber,
				EndPageNumber:   citation.EndPageNumber,
				StartCharIndex:  citation.StartCharIndex,
				EndCharIndex:    citation.EndCharIndex,
				StartBlockIndex: citation.StartBlockIndex,
				EndBlockIndex:   citation.EndBlockIndex,
			})
		}
		response.Blocks = append(response.Blocks, textBlock)
	}
	return response, nil
}

func messages(request llmmodels.Request) []anthropic.MessageParam {
	result := make([]anthropic.MessageParam, 0, len(request.History)+1)
	for _, msg := range request.History {
		if msg.Role == llmmodels.RoleAssistant {
			result = append(result, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Text)))
			continue
		}
		result = append(result, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Text)))
	}
	return append(result, anthropic.NewUserMessage(contentBlocks(request)...))
}

// contentBlocks источники передаются документами со страницами-блоками, чтобы модель ссылалась на них
func contentBlocks(request llmmodels.Request) []anthropic.ContentBlockParamUnion {
	blocks := make([]anthropic.ContentBlockParamUnion, 0, len(request.Documents)+1)
	for _, doc := range request.Documents {
		pages := make([]anthropic.ContentBlockSourceContentItemUnionParam, 0, len(doc.Pages))
		for _, page := range doc.Pages {
			if strings.TrimSpace(page) == "" {
				continue
			}
			pages = append(pages, anthropic.ContentBlockSourceContentItemUnionParam{
				OfText: &anthropic.TextBlockParam{Text: page},
			})
		}
		if len(pages) == 0 {
			continue
		}
		block := anthropic.NewDocumentBlock(anthropic.ContentBlockSourceParam{
			Content: anthropic.ContentBlockSourceContentUnionParam{
				OfContentBlockSourceContent: pages,
			},
		})
		block.OfDocument.Title = anthropic.String(doc.Title)
		block.OfDocument.Context = anthropic.String("Document from source materials: " + doc.Title)
		block.OfDocument.Citations = anthropic.CitationsConfigParam{Enabled: anthropic.Bool(true)}
		blocks = append(blocks, block)
	}
	return append(blocks, anthropic.NewTextBlock(request.Prompt))
}

func classifyError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch {
		// 529 - API перегружен
		case apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode == 529:
			return errors.Wrap(llmmodels.ErrRateLimited, apiErr.Error())
		case apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
			return errors.Wrap(llmmodels.ErrInvalidRequest, apiErr.Error())
		}
	}
	return errors.Wrap(llmmodels.ErrTransport, err.Error())
}
