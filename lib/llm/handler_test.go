package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	llmmodels "sarah-testing/models/llm"
)

type backendMock struct {
	requests []llmmodels.Request
	err      error
}

func (b *backendMock) Generate(ctx context.Context, request llmmodels.Request) (llmmodels.Response, error) {
	b.requests = append(b.requests, request)
	if b.err != nil {
		return llmmodels.Response{}, b.err
	}
	return llmmodels.Response{Model: request.Model, Blocks: []llmmodels.TextBlock{{Text: "ok"}}}, nil
}

func TestGenerate(t *testing.T) {
	backend := &backendMock{}
	provider := New(map[llmmodels.Backend]Backend{llmmodels.BackendAnthropic: backend}, 0)

	response, err := provider.Generate(context.Background(), llmmodels.Request{
		Model:  "Claude 3.5 Haiku",
		Prompt: "hi",
		Params: llmmodels.DefaultParams,
	})
	require.NoError(t, err)
	require.Equal(t, "ok", response.Text())
	require.Len(t, backend.requests, 1)
	require.Equal(t, llmmodels.ModelClaude35Haiku, backend.requests[0].Model)
	require.Equal(t, 8192, backend.requests[0].MaxTokens)
}

func TestGenerateInvalidRequest(t *testing.T) {
	backend := &backendMock{}
	provider := New(map[llmmodels.Backend]Backend{llmmodels.BackendAnthropic: backend}, 0)
	ctx := context.Background()

	_, err := provider.Generate(ctx, llmmodels.Request{Model: "gpt-unknown", Prompt: "hi", Params: llmmodels.DefaultParams})
	require.ErrorIs(t, err, ErrInvalidRequest)

	_, err = provider.Generate(ctx, llmmodels.Request{Model: llmmodels.ModelYandexGPTLite, Prompt: "hi", Params: llmmodels.DefaultParams})
	require.ErrorIs(t, err, ErrInvalidRequest)

	_, err = provider.Generate(ctx, llmmodels.Request{Model: llmmodels.ModelClaude35Sonnet, Params: llmmodels.DefaultParams})
	require.ErrorIs(t, err, ErrInvalidRequest)

	_, err = provider.Generate(ctx, llmmodels.Request{
		Model:  llmmodels.ModelClaude35Sonnet,
		Prompt: "hi",
		Params: llmmodels.Params{Temperature: 1.5, TopP: 0.9, TopK: 10},
	})
	require.ErrorIs(t, err, ErrInvalidRequest)
	require.Empty(t, backend.requests)
}

func TestGenerateBackendError(t *testing.T) {
	backend := &backendMock{err: ErrRateLimited}
	provider := New(map[llmmodels.Backend]Backend{llmmodels.BackendAnthropic: backend}, 60)

	_, err := provider.Generate(context.Background(), llmmodels.Request{Model: llmmodels.ModelClaude37Sonnet, Prompt: "hi", Params: llmmodels.DefaultParams})
	require.ErrorIs(t, err, ErrRateLimited)
}

func TestGenerateCanceledWhileWaiting(t *testing.T) {
	backend := &backendMock{}
	provider := New(map[llmmodels.Backend]Backend{llmmodels.BackendAnthropic: backend}, 1)
	request := llmmodels.Request{Model: llmmodels.ModelClaude35Sonnet, Prompt: "hi", Params: llmmodels.DefaultParams}

	_, err := provider.Generate(context.Background(), request)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = provider.Generate(ctx, request)
	require.ErrorIs(t, err, context.Canceled)
	require.NotErrorIs(t, err, ErrTransport)
	require.Len(t, backend.requests, 1)
}

func TestGenerateDeadlineBeforeSlot(t *testing.T) {
	backend := &backendMock{}
	provider := New(map[llmmodels.Backend]Backend{llmmodels.BackendAnthropic: backend}, 1)
	request := llmmodels.Request{Model: llmmodels.ModelClaude35Sonnet, Prompt: "hi", Params: llmmodels.DefaultParams}

	_, err := provider.Generate(context.Background(), request)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err = provider.Generate(ctx, request)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.NotErrorIs(t, err, ErrTransport)
	require.Len(t, backend.requests, 1)
}

func TestModels(t *testing.T) {
	provider := New(map[llmmodels.Backend]Backend{llmmodels.BackendYandexGPT: &backendMock{}}, 0)
	models := provider.Models()
	require.Len(t, models, 2)
	for _, model := range models {
		require.Equal(t, llmmodels.BackendYandexGPT, model.Backend)
	}
}
