package anthropicclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/require"
	llmmodels "sarah-testing/models/llm"
)

func testRequest() llmmodels.Request {
	return llmmodels.Request{
		Model:     llmmodels.ModelClaude35Haiku,
		MaxTokens: 100,
		Prompt:    "hi",
		Params:    llmmodels.DefaultParams,
	}
}

func TestGenerateErrorClassification(t *testing.T) {
	cases := map[int]error{
		http.StatusTooManyRequests:     llmmodels.ErrRateLimited,
		529:                            llmmodels.ErrRateLimited,
		http.StatusBadRequest:          llmmodels.ErrInvalidRequest,
		http.StatusNotFound:            llmmodels.ErrInvalidRequest,
		http.StatusInternalServerError: llmmodels.ErrTransport,
	}
	for status, expected := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"type":"error","error":{"type":"api_error","message":"upstream"}}`))
		}))
		client := NewClient("key", option.WithBaseURL(server.URL))

		_, err := client.Generate(context.Background(), testRequest())
		require.ErrorIs(t, err, expected, "status %d", status)
		server.Close()
	}
}

func TestGenerateConnectionError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewClient("key", option.WithBaseURL(url)).Generate(context.Background(), testRequest())
	require.ErrorIs(t, err, llmmodels.ErrTransport)
}

func TestGenerateText(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","model":"claude-3-5-haiku-20241022",` +
			`"content":[{"type":"text","text":"hello"}],"stop_reason":"end_turn",` +
			`"usage":{"input_tokens":1,"output_tokens":1}}`))
	}))
	defer server.Close()

	response, err := NewClient("key", option.WithBaseURL(server.URL)).Generate(context.Background(), testRequest())
	require.NoError(t, err)
	require.Equal(t, "/v1/messages", path)
	require.Equal(t, "hello", response.Text())
	require.Equal(t, llmmodels.ModelClaude35Haiku, response.Model)
}
