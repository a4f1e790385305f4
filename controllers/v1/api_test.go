package apiv1

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
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
	apimodels "sarah-testing/models/api"
	promptapimodels "sarah-testing/models/api/prompt"
	questionapimodels "sarah-testing/models/api/question"
	testrunapimodels "sarah-testing/models/api/testrun"
	llmmodels "sarah-testing/models/llm"
)

type modelMock struct {
	err error
}

func (m *modelMock) Generate(ctx context.Context, request llmmodels.Request) (llmmodels.Response, error) {
	if m.err != nil {
		return llmmodels.Response{}, m.err
	}
	return llmmodels.Response{Blocks: []llmmodels.TextBlock{{Text: "ok"}}}, nil
}

func (m *modelMock) Models() []llmmodels.Model {
	return llmmodels.Models()
}

type response struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
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
	InitQuestionApiRouters(app)
	InitPromptApiRouters(app)
	InitTestRunApiRouters(app)
	InitChatApiRouters(app)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, response) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var result response
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) != 0 {
		require.NoError(t, json.Unmarshal(raw, &result), string(raw))
	}
	return resp.StatusCode, result
}

func createFixtures(t *testing.T, app *fiber.App) (questionapimodels.QuestionView, promptapimodels.PromptView) {
	status, resp := doRequest(t, app, http.MethodPost, "/questions", questionapimodels.QuestionData{
		Name:    "Remote",
		Content: "How many remote days?",
		Sources: []questionapimodels.SourceData{{Title: "Policy", Pages: []string{"Up to 3 days"}}},
	})
	require.Equal(t, fiber.StatusCreated, status, resp.Message)
	var question questionapimodels.QuestionView
	require.NoError(t, json.Unmarshal(resp.Data, &question))

	status, resp = doRequest(t, app, http.MethodPost, "/prompts", promptapimodels.PromptData{Name: "hr", Content: "Answer: {question}"})
	require.Equal(t, fiber.StatusCreated, status, resp.Message)
	var prompt promptapimodels.PromptView
	require.NoError(t, json.Unmarshal(resp.Data, &prompt))
	return question, prompt
}

func TestQuestionsApi(t *testing.T) {
	app := newApp(t, &modelMock{})
	question, _ := createFixtures(t, app)
	require.Len(t, question.Sources, 1)

	status, _ := doRequest(t, app, http.MethodGet, "/questions/"+question.ID, nil)
	require.Equal(t, fiber.StatusOK, status)

	status, resp := doRequest(t, app, http.MethodPost, "/questions/"+question.ID+"/sources", questionapimodels.SourceData{Title: "FAQ", Pages: []string{"text"}})
	require.Equal(t, fiber.StatusCreated, status, resp.Message)

	status, resp = doRequest(t, app, http.MethodGet, "/questions/"+question.ID+"/sources", nil)
	require.Equal(t, fiber.StatusOK, status)
	var sources []questionapimodels.SourceView
	require.NoError(t, json.Unmarshal(resp.Data, &sources))
	require.Len(t, sources, 2)

	status, resp = doRequest(t, app, http.MethodPost, "/questions", questionapimodels.QuestionData{Name: "no content"})
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Equal(t, "fail", resp.Status)

	status, _ = doRequest(t, app, http.MethodDelete, "/questions/"+question.ID, nil)
	require.Equal(t, fiber.StatusOK, status)
	status, _ = doRequest(t, app, http.MethodGet, "/questions/"+question.ID, nil)
	require.Equal(t, fiber.StatusNotFound, status)
	status, _ = doRequest(t, app, http.MethodDelete, "/questions/"+question.ID, nil)
	require.Equal(t, fiber.StatusNotFound, status)
}

func TestTestRunsApi(t *testing.T) {
	app := newApp(t, &modelMock{})
	question, prompt := createFixtures(t, app)

	status, resp := doRequest(t, app, http.MethodPost, "/test_runs", testrunapimodels.StartRequest{
		PromptID: prompt.ID,
		Model:    llmmodels.ModelClaude35Sonnet,
		Name:     "Smoke",
		Mode:     testrunapimodels.ModeSingle,
		Params:   llmmodels.DefaultParams,
	})
	require.Equal(t, fiber.StatusCreated, status, resp.Message)
	var summary testrunapimodels.StartSummary
	require.NoError(t, json.Unmarshal(resp.Data, &summary))
	require.Len(t, summary.Runs, 1)
	require.Equal(t, 1, summary.Runs[0].Succeeded)
	runID := summary.Runs[0].Run.ID

	status, _ = doRequest(t, app, http.MethodGet, "/test_runs/"+runID, nil)
	require.Equal(t, fiber.StatusOK, status)

	// вопрос с результатами удалить нельзя
	status, resp = doRequest(t, app, http.MethodDelete, "/questions/"+question.ID, nil)
	require.Equal(t, fiber.StatusConflict, status, resp.Message)
	status, _ = doRequest(t, app, http.MethodDelete, "/prompts/"+prompt.ID, nil)
	require.Equal(t, fiber.StatusConflict, status)

	req := httptest.NewRequest(http.MethodGet, "/test_runs/"+runID+"/export/csv", nil)
	httpResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, httpResp.StatusCode)
	require.Contains(t, httpResp.Header.Get(fiber.HeaderContentDisposition), "test_results_Smoke.csv")
	records, err := csv.NewReader(httpResp.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "How many remote days?", records[1][6])

	req = httptest.NewRequest(http.MethodGet, "/test_runs/"+runID+"/export/doc", nil)
	httpResp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, httpResp.StatusCode)

	status, _ = doRequest(t, app, http.MethodGet, "/test_runs/compare?left="+runID+"&right="+runID, nil)
	require.Equal(t, fiber.StatusOK, status)

	status, _ = doRequest(t, app, http.MethodDelete, "/test_runs/"+runID, nil)
	require.Equal(t, fiber.StatusOK, status)
	status, _ = doRequest(t, app, http.MethodGet, "/test_runs/"+runID, nil)
	require.Equal(t, fiber.StatusNotFound, status)
	status, _ = doRequest(t, app, http.MethodDelete, "/questions/"+question.ID, nil)
	require.Equal(t, fiber.StatusOK, status)
}

func TestChatApiErrors(t *testing.T) {
	model := &modelMock{err: llm.ErrRateLimited}
	app := newApp(t, model)

	body := map[string]interface{}{"messages": []map[string]string{{"role": "user", "content": "hi"}}}
	status, resp := doRequest(t, app, http.MethodPost, "/chat", body)
	require.Equal(t, fiber.StatusTooManyRequests, status)
	require.Equal(t, "fail", resp.Status)

	model.err = llm.ErrTransport
	status, _ = doRequest(t, app, http.MethodPost, "/chat", body)
	require.Equal(t, fiber.StatusBadGateway, status)

	model.err = nil
	status, resp = doRequest(t, app, http.MethodPost, "/chat", body)
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, apimodels.NewResponse(nil).Status, resp.Status)

	status, _ = doRequest(t, app, http.MethodGet, "/models", nil)
	require.Equal(t, fiber.StatusOK, status)
}

func TestHealth(t *testing.T) {
	app := fiber.New()
	controller := healthApiController{ping: func() error { return nil }}
	app.Get("/health", controller.health)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	controller.ping = func() error { return context.DeadlineExceeded }
	app = fiber.New()
	app.Get("/health", controller.health)
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
