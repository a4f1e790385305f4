package testrun

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"sarah-testing/db"
	"sarah-testing/lib/llm"
	promptstore "sarah-testing/lib/prompts/store"
	questionstore "sarah-testing/lib/questions/store"
	sourcestore "sarah-testing/lib/questions/source-store"
	"sarah-testing/lib/smtp"
	runresultstore "sarah-testing/lib/test-run/result-store"
	testrunstore "sarah-testing/lib/test-run/store"
	initchecker "sarah-testing/lib/utils/init-checker"
	storeerrors "sarah-testing/lib/utils/store-errors"
	apimodels "sarah-testing/models/api"
	promptapimodels "sarah-testing/models/api/prompt"
	questionapimodels "sarah-testing/models/api/question"
	testrunapimodels "sarah-testing/models/api/testrun"
	dbmodels "sarah-testing/models/db"
	llmmodels "sarah-testing/models/llm"
)

type FailurePolicy string

const (
	// ошибка модели сохраняется результатом, прогон продолжается
	FailurePolicyContinue FailurePolicy = "continue"
	// ошибка модели сохраняется результатом, прогон останавливается
	FailurePolicyAbort FailurePolicy = "abort"
)

// ProgressFunc вызывается после каждой обработанной пары прогон-вопрос
type ProgressFunc func(event testrunapimodels.Progress)

type Provider interface {
	Start(ctx context.Context, request testrunapimodels.StartRequest, progress ProgressFunc) (testrunapimodels.StartSummary, error)
	List() ([]testrunapimodels.RunView, error)
	Get(ctx context.Context, id string) (testrunapimodels.RunDetails, error)
	Delete(id string) error
	Compare(ctx context.Context, leftID, rightID string) (testrunapimodels.CompareView, error)
	ExportRows(ctx context.Context, id string) (testrunapimodels.RunView, []testrunapimodels.ExportRow, error)
	SendReport(ctx context.Context, id, email string) error
}

var Instance Provider

func NewHandler(policy string) {
	Instance = New(
		testrunstore.NewInstance(db.DB),
		runresultstore.NewInstance(db.DB),
		promptstore.NewInstance(db.DB),
		questionstore.NewInstance(db.DB),
		sourcestore.NewInstance(db.DB),
		llm.Instance,
		smtp.Instance,
		FailurePolicy(policy),
	)
}

func New(
	runStore testrunstore.Provider,
	resultStore runresultstore.Provider,
	promptStore promptstore.Provider,
	questionStore questionstore.Provider,
	sourceStore sourcestore.Provider,
	model llm.Provider,
	mail smtp.Provider,
	policy FailurePolicy,
) Provider {
	instance := impl{
		runStore:      runStore,
		resultStore:   resultStore,
		promptStore:   promptStore,
		questionStore: questionStore,
		sourceStore:   sourceStore,
		model:         model,
		mail:          mail,
		policy:        policy,
	}
	initchecker.CheckInit(
		"runStore", instance.runStore,
		"resultStore", instance.resultStore,
		"promptStore", instance.promptStore,
		"questionStore", instance.questionStore,
		"sourceStore", instance.sourceStore,
		"model", instance.model,
	)
	if instance.policy != FailurePolicyAbort {
		instance.policy = FailurePolicyContinue
	}
	return instance
}

type impl struct {
	runStore      testrunstore.Provider
	resultStore   runresultstore.Provider
	promptStore   promptstore.Provider
	questionStore questionstore.Provider
	sourceStore   sourcestore.Provider
	model         llm.Provider
	mail          smtp.Provider
	policy        FailurePolicy
}

func (i impl) Start(ctx context.Context, request testrunapimodels.StartRequest, progress ProgressFunc) (summary testrunapimodels.StartSummary, err error) {
	if err = request.Validate(); err != nil {
		return summary, apimodels.NewValidationError(err)
	}
	model, _ := llmmodels.FindModel(request.Model)
	prompt, err := i.promptStore.GetByID(request.PromptID)
	if err != nil {
		return summary, err
	}
	if prompt == nil {
		return summary, apimodels.NewValidationError(errors.New("промпт не найден"))
	}
	questions, err := i.selectQuestions(request.QuestionIDs)
	if err != nil {
		return summary, err
	}
	if progress == nil {
		progress = func(testrunapimodels.Progress) {}
	}

	configs := request.Configurations()
	logger := log.WithField("prompt_id", prompt.ID).WithField("model", model.ID)
	sourcesCache := map[string][]llmmodels.Document{}
	for runIdx, params := range configs {
		run, err := i.runStore.Create(dbmodels.TestRun{
			PromptID:    prompt.ID,
			Name:        request.RunName(runIdx, len(configs)),
			Description: request.RunDescription(params),
			Model:       model.ID,
			Temperature: params.Temperature,
			TopP:        params.TopP,
			TopK:        params.TopK,
		})
		if err != nil {
			logger.WithError(err).Error("ошибка создания прогона")
			return summary, err
		}
		summary.Runs = append(summary.Runs, testrunapimodels.RunSummary{Run: testrunapimodels.RunConvert(*run)})
		runSummary := &summary.Runs[len(summary.Runs)-1]

		for questionIdx, question := range questions {
			if err = ctx.Err(); err != nil {
				summary.Aborted = true
				summary.Error = "прогон прерван"
				return summary, errors.Wrap(err, "прогон прерван")
			}
			docs, ok := sourcesCache[question.ID]
			if !ok {
				sources, err := i.sourceStore.ListByQuestion(question.ID)
				if err != nil {
					logger.WithError(err).Error("ошибка получения источников вопроса")
					return summary, err
				}
				docs = llm.DocumentsFromSources(sources)
				sourcesCache[question.ID] = docs
			}

			response, genErr := i.model.Generate(ctx, llmmodels.Request{
				Model:     model.ID,
				Prompt:    llm.RenderPrompt(prompt.Content, question.Content, docs),
				Documents: docs,
				Params:    params,
			})
			rec := dbmodels.RunResult{
				RunID:      run.ID,
				QuestionID: question.ID,
				Status:     dbmodels.RunResultSuccess,
			}
			if genErr != nil {
				rec.Status = dbmodels.RunResultError
				rec.ErrorKind = ErrorKind(genErr)
				rec.Response = "Error: " + genErr.Error()
				logger.
					WithField("run_id", run.ID).
					WithField("question_id", question.ID).
					WithError(genErr).
					Warn("ошибка получения ответа модели")
			} else {
				rec.Response = strings.TrimSpace(llm.FormatResponse(response))
			}
			saved, err := i.resultStore.Create(rec)
			if err != nil {
				logger.WithField("run_id", run.ID).WithError(err).Error("ошибка сохранения результата, прогон остановлен")
				summary.Aborted = true
				summary.Error = err.Error()
				return summary, err
			}

			outcome := testrunapimodels.QuestionOutcome{
				QuestionID: question.ID,
				ResultID:   saved.ID,
				Status:     saved.Status,
				ErrorKind:  saved.ErrorKind,
			}
			if genErr != nil {
				outcome.Error = genErr.Error()
				runSummary.Failed++
			} else {
				runSummary.Succeeded++
			}
			runSummary.Outcomes = append(runSummary.Outcomes, outcome)
			progress(testrunapimodels.Progress{
				RunID:         run.ID,
				RunIndex:      runIdx,
				RunCount:      len(configs),
				QuestionID:    question.ID,
				QuestionIndex: questionIdx,
				QuestionCount: len(questions),
				Status:        outcome.Status,
				ErrorKind:     outcome.ErrorKind,
				Message:       outcome.Error,
			})
			if genErr != nil && i.policy == FailurePolicyAbort {
				summary.Aborted = true
				summary.Error = genErr.Error()
				return summary, nil
			}
		}
		logger.
			WithField("run_id", run.ID).
			WithField("succeeded", runSummary.Succeeded).
			WithField("failed", runSummary.Failed).
			Info("прогон завершен")
	}
	if request.NotifyEmail != "" && i.mail != nil {
		for _, runID := range summary.RunIDs() {
			if err := i.SendReport(ctx, runID, request.NotifyEmail); err != nil {
				logger.WithField("run_id", runID).WithError(err).Warn("отчет по прогону не отправлен")
			}
		}
	}
	return summary, nil
}

func (i impl) selectQuestions(ids []string) ([]dbmodels.Question, error) {
	if len(ids) == 0 {
		list, err := i.questionStore.List()
		if err != nil {
			return nil, err
		}
		if len(list) == 0 {
			return nil, apimodels.NewValidationError(errors.New("нет вопросов для прогона"))
		}
		return list, nil
	}
	unique := make([]string, 0, len(ids))
	seen := map[string]bool{}
	for _, id := range ids {
		if id != "" && !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	list, err := i.questionStore.FindByIDs(unique)
	if err != nil {
		return nil, err
	}
	if len(list) != len(unique) || len(list) == 0 {
		return nil, apimodels.NewValidationError(errors.New("выбранные вопросы не найдены"))
	}
	// порядок вопросов как в запросе
	byID := make(map[string]dbmodels.Question, len(list))
	for _, rec := range list {
		byID[rec.ID] = rec
	}
	result := make([]dbmodels.Question, 0, len(unique))
	for _, id := range unique {
		result = append(result, byID[id])
	}
	return result, nil
}

// ErrorKind тип ошибки модели для сохранения в результате
func ErrorKind(err error) dbmodels.RunResultErrorKind {
	switch {
	case errors.Is(err, llm.ErrRateLimited):
		return dbmodels.RunErrorRateLimited
	case errors.Is(err, llm.ErrInvalidRequest):
		return dbmodels.RunErrorInvalidRequest
	case errors.Is(err, llm.ErrTransport):
		return dbmodels.RunErrorTransport
	}
	return dbmodels.RunErrorUnknown
}

func (i impl) List() ([]testrunapimodels.RunView, error) {
	list, err := i.runStore.List()
	if err != nil {
		return nil, err
	}
	result := make([]testrunapimodels.RunView, 0, len(list))
	for _, rec := range list {
		result = append(result, testrunapimodels.RunConvert(rec))
	}
	return result, nil
}

func (i impl) Get(ctx context.Context, id string) (testrunapimodels.RunDetails, error) {
	data, err := i.runData(ctx, id)
	if err != nil {
		return testrunapimodels.RunDetails{}, err
	}
	return runDetails(data), nil
}

func (i impl) runData(ctx context.Context, id string) (*testrunstore.RunData, error) {
	data, err := i.runStore.GetRunData(ctx, id)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, storeerrors.Classify(storeerrors.ErrNotFound, "прогон не найден")
	}
	return data, nil
}

func runDetails(data *testrunstore.RunData) testrunapimodels.RunDetails {
	result := testrunapimodels.RunDetails{
		Run: testrunapimodels.RunConvert(data.Run),
	}
	if data.Prompt != nil {
		prompt := promptapimodels.PromptConvert(*data.Prompt)
		result.Prompt = &prompt
	}
	byQuestion := map[string]int{}
	for _, rec := range data.Results {
		idx, ok := byQuestion[rec.QuestionID]
		if !ok {
			group := testrunapimodels.QuestionResults{QuestionID: rec.QuestionID}
			if question, ok := data.Questions[rec.QuestionID]; ok {
				view := questionapimodels.QuestionConvert(question)
				group.Question = &view
			}
			result.Questions = append(result.Questions, group)
			idx = len(result.Questions) - 1
			byQuestion[rec.QuestionID] = idx
		}
		result.Questions[idx].Results = append(result.Questions[idx].Results, testrunapimodels.ResultConvert(rec))
		if rec.IsError() {
			result.Failed++
		} else {
			result.Succeeded++
		}
	}
	return result
}

func (i impl) Delete(id string) error {
	return i.runStore.Delete(id)
}

// Compare вопросы, на которые есть ответы в обоих прогонах
func (i impl) Compare(ctx context.Context, leftID, rightID string) (testrunapimodels.CompareView, error) {
	if leftID == "" || rightID == "" {
		return testrunapimodels.CompareView{}, apimodels.NewValidationError(errors.New("выберите два прогона для сравнения"))
	}
	var left, right testrunapimodels.RunDetails
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		left, err = i.Get(gctx, leftID)
		return err
	})
	g.Go(func() (err error) {
		right, err = i.Get(gctx, rightID)
		return err
	})
	if err := g.Wait(); err != nil {
		return testrunapimodels.CompareView{}, err
	}

	result := testrunapimodels.CompareView{
		Left:        left.Run,
		Right:       right.Run,
		LeftPrompt:  left.Prompt,
		RightPrompt: right.Prompt,
		Rows:        make([]testrunapimodels.CompareRow, 0),
	}
	rightByQuestion := make(map[string]testrunapimodels.QuestionResults, len(right.Questions))
	for _, group := range right.Questions {
		rightByQuestion[group.QuestionID] = group
	}
	for _, group := range left.Questions {
		other, ok := rightByQuestion[group.QuestionID]
		if !ok || group.Question == nil {
			continue
		}
		result.Rows = append(result.Rows, testrunapimodels.CompareRow{
			Question: *group.Question,
			Left:     group.Results,
			Right:    other.Results,
		})
	}
	return result, nil
}

// ExportRows строки выгрузки; результаты по удаленным вопросам пропускаются
func (i impl) ExportRows(ctx context.Context, id string) (testrunapimodels.RunView, []testrunapimodels.ExportRow, error) {
	data, err := i.runData(ctx, id)
	if err != nil {
		return testrunapimodels.RunView{}, nil, err
	}
	run := testrunapimodels.RunConvert(data.Run)
	rows := make([]testrunapimodels.ExportRow, 0, len(data.Results))
	for _, rec := range data.Results {
		question, ok := data.Questions[rec.QuestionID]
		if !ok {
			continue
		}
		row := testrunapimodels.ExportRow{
			RunName:        run.Name,
			RunDescription: run.Description,
			Model:          run.ModelName,
			Question:       question.Content,
			Response:       rec.Response,
			CreatedAt:      rec.CreatedAt,
		}
		if data.Prompt != nil {
			row.PromptName = data.Prompt.Name
			row.PromptVersion = data.Prompt.Version
			row.PromptContent = data.Prompt.Content
		}
		rows = append(rows, row)
	}
	return run, rows, nil
}
