package ui

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	chathandler "sarah-testing/lib/chat"
	"sarah-testing/lib/export"
	"sarah-testing/lib/llm"
	prompthandler "sarah-testing/lib/prompts"
	promptstore "sarah-testing/lib/prompts/store"
	questionhandler "sarah-testing/lib/questions"
	sourcestore "sarah-testing/lib/questions/source-store"
	questionstore "sarah-testing/lib/questions/store"
	testrun "sarah-testing/lib/test-run"
	runresultstore "sarah-testing/lib/test-run/result-store"
	testrunstore "sarah-testing/lib/test-run/store"
	testdb "sarah-testing/lib/utils/test-db"
	promptapimodels "sarah-testing/models/api/prompt"
	questionapimodels "sarah-testing/models/api/question"
	llmmodels "sarah-testing/models/llm"
)

type modelMock struct {
	err error
}

func (m *modelMock) Generate(ctx context.Context, request llmmodels.Request) (llmmodels.Response, error) {
	if m.err != nil {
		return llmmodels.Response{}, m.err
	}
	return llmmodels.Response{Blocks: []llmmodels.TextBlock{{Text: "model answer"}}}, nil
}

func (m *modelMock) Models() []llmmodels.Model {
	return llmmodels.Models()
}

func newApp(t *testing.T, model *modelMock) *fiber.App {
	db := testdb.New(t)
	questions := questionstore.NewInstance(db)
	sources := sourcestore.NewInstance(db)
	prompts := promptstore.NewInstance(db)
	questionhandler.Instance = questionhandler.New(questions, sources)
	prompthandler.Instance = prompthandler.New(prompts)
	testrun.Instance = testrun.New(
		testrunstore.NewInstance(db),
		runresultstore.NewInstance(db),
		prompts,
		questions,
		sources,
		model,
		nil,
		testrun.FailurePolicyContinue,
	)
	chathandler.Instance = chathandler.New(prompts, questions, model, llmmodels.ModelClaude35Sonnet)
	export.NewHandler()

	app := fiber.New()
	InitUIRouters(app)
	return app
}

func postForm(t *testing.T, app *fiber.App, path string, form url.Values) (*http.Response, string) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	return do(t, app, req)
}

func get(t *testing.T, app *fiber.App, path string) (*http.Response, string) {
	return do(t, app, httptest.NewRequest(http.MethodGet, path, nil))
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestQuestionPages(t *testing.T) {
	app := newApp(t, &modelMock{})

	resp, _ := postForm(t, app, "/questions", url.Values{
		"name":           {"Remote"},
		"content":        {"How many remote days?"},
		"source_title_1": {"Policy"},
		"source_pages_1": {"page one\n---\npage two"},
	})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	list, err := questionhandler.Instance.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, []string{"page one", "page two"}, list[0].Sources[0].Pages)

	resp, body := get(t, app, "/questions")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Contains(t, body, "Remote")

	resp, body = postForm(t, app, "/questions", url.Values{"name": {"no content"}})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Contains(t, body, "class=\"error\"")
	require.Contains(t, body, "value=\"no content\"")
}

func TestRunPages(t *testing.T) {
	app := newApp(t, &modelMock{})
	question, err := questionhandler.Instance.Create(questionapimodels.QuestionData{Name: "q", Content: "What is the policy?"})
	require.NoError(t, err)
	prompt, err := prompthandler.Instance.Create(promptapimodels.PromptData{Name: "hr", Content: "Answer {question}"})
	require.NoError(t, err)

	resp, _ := postForm(t, app, "/runs", url.Values{
		"prompt_id":   {prompt.ID},
		"model":       {llmmodels.ModelClaude35Haiku},
		"name":        {"Smoke"},
		"mode":        {"single"},
		"temperature": {"0.8"},
		"top_p":       {"0.9"},
		"top_k":       {"10"},
	})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	location := resp.Header.Get(fiber.HeaderLocation)
	require.True(t, strings.HasPrefix(location, "/runs/"), location)

	runPath := strings.SplitN(location, "?", 2)[0]
	resp, body := get(t, app, runPath)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Contains(t, body, "model answer")
	require.Contains(t, body, "What is the policy?")

	resp, _ = get(t, app, runPath+"/export/xlsx")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "test_results_Smoke.xlsx")

	// вопрос с результатами удалить нельзя
	resp, body = postForm(t, app, "/questions/"+question.ID+"/delete", url.Values{})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	require.Contains(t, body, "Cannot delete this question")

	resp, body = postForm(t, app, "/runs", url.Values{
		"prompt_id": {prompt.ID},
		"model":     {llmmodels.ModelClaude35Haiku},
		"name":      {"Range"},
		"mode":      {"range"},
		"points":    {"1"},
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Contains(t, body, "class=\"error\"")

	resp, _ = postForm(t, app, runPath+"/delete", url.Values{})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	resp, body = get(t, app, runPath)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	require.Contains(t, body, "class=\"error\"")
}

func TestChatPage(t *testing.T) {
	model := &modelMock{}
	app := newApp(t, model)

	resp, body := postForm(t, app, "/chat", url.Values{
		"model":       {llmmodels.ModelClaude35Sonnet},
		"message":     {"hello"},
		"temperature": {"0.5"},
		"top_p":       {"0.9"},
		"top_k":       {"10"},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Contains(t, body, "model answer")

	model.err = llm.ErrRateLimited
	resp, body = postForm(t, app, "/chat", url.Values{
		"model":       {llmmodels.ModelClaude35Sonnet},
		"message":     {"hello again"},
		"temperature": {"0.5"},
		"top_p":       {"0.9"},
		"top_k":       {"10"},
	})
	require.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	require.Contains(t, body, "class=\"error\"")
}
