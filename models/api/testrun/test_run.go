package testrunapimodels

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/pkg/errors"
	promptapimodels "sarah-testing/models/api/prompt"
	questionapimodels "sarah-testing/models/api/question"
	dbmodels "sarah-testing/models/db"
	llmmodels "sarah-testing/models/llm"
)

type Mode string

const (
	ModeSingle Mode = "single"
	ModeRange  Mode = "range"
)

const (
	MinRangePoints = 2
	MaxRangePoints = 10
)

type ParamRange struct {
	TemperatureMin float64 `json:"temperature_min"`
	TemperatureMax float64 `json:"temperature_max"`
	TopPMin        float64 `json:"top_p_min"`
	TopPMax        float64 `json:"top_p_max"`
	TopKMin        int     `json:"top_k_min"`
	TopKMax        int     `json:"top_k_max"`
	Points         int     `json:"points"` // количество конфигураций, 2..10
}

var DefaultParamRange = ParamRange{
	TemperatureMin: 0.5,
	TemperatureMax: 0.9,
	TopPMin:        0.7,
	TopPMax:        1,
	TopKMin:        5,
	TopKMax:        20,
	Points:         3,
}

func (r ParamRange) Validate() error {
	if r.Points < MinRangePoints || r.Points > MaxRangePoints {
		return errors.Errorf("количество точек должно быть в диапазоне %d..%d", MinRangePoints, MaxRangePoints)
	}
	if r.TemperatureMin > r.TemperatureMax || r.TopPMin > r.TopPMax || r.TopKMin > r.TopKMax {
		return errors.New("минимальное значение параметра больше максимального")
	}
	if err := (llmmodels.Params{Temperature: r.TemperatureMin, TopP: r.TopPMin, TopK: r.TopKMin}).Validate(); err != nil {
		return err
	}
	return llmmodels.Params{Temperature: r.TemperatureMax, TopP: r.TopPMax, TopK: r.TopKMax}.Validate()
}

// Configurations равномерно распределенные точки от min до max
func (r ParamRange) Configurations() []llmmodels.Params {
	result := make([]llmmodels.Params, 0, r.Points)
	for i := 0; i < r.Points; i++ {
		point, last := float64(i), float64(r.Points-1)
		result = append(result, llmmodels.Params{
			Temperature: round2(r.TemperatureMin + (r.TemperatureMax-r.TemperatureMin)*point/last),
			TopP:        round2(r.TopPMin + (r.TopPMax-r.TopPMin)*point/last),
			TopK:        int(float64(r.TopKMin) + float64(r.TopKMax-r.TopKMin)*point/last),
		})
	}
	return result
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

type StartRequest struct {
	PromptID    string           `json:"prompt_id"`
	Model       string           `json:"model"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Mode        Mode             `json:"mode"`
	Params      llmmodels.Params `json:"params"`
	Range       *ParamRange      `json:"range,omitempty"`
	QuestionIDs []string         `json:"question_ids"` // пусто - все вопросы
	NotifyEmail string           `json:"notify_email,omitempty"`
}

func (r StartRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("не указано название прогона")
	}
	if r.PromptID == "" {
		return errors.New("не выбран промпт")
	}
	if _, ok := llmmodels.FindModel(r.Model); !ok {
		return errors.Errorf("неизвестная модель %q", r.Model)
	}
	switch r.Mode {
	case ModeSingle, "":
		return r.Params.Validate()
	case ModeRange:
		if r.Range == nil {
			return errors.New("не указаны диапазоны параметров")
		}
		return r.Range.Validate()
	}
	return errors.Errorf("неизвестный режим %q", r.Mode)
}

func (r StartRequest) Configurations() []llmmodels.Params {
	if r.Mode == ModeRange && r.Range != nil {
		return r.Range.Configurations()
	}
	return []llmmodels.Params{r.Params}
}

// RunName название прогона для конфигурации idx из count
func (r StartRequest) RunName(idx, count int) string {
	name := strings.TrimSpace(r.Name)
	if count <= 1 {
		return name
	}
	return fmt.Sprintf("%s (Config %d)", name, idx+1)
}

func (r StartRequest) RunDescription(params llmmodels.Params) string {
	return fmt.Sprintf("%s\nParameters: temp=%v, top_p=%v, top_k=%d", strings.TrimSpace(r.Description), params.Temperature, params.TopP, params.TopK)
}

type RunView struct {
	ID          string    `json:"id"`
	PromptID    string    `json:"prompt_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Model       string    `json:"model"`
	ModelName   string    `json:"model_name"`
	Temperature float64   `json:"temperature"`
	TopP        float64   `json:"top_p"`
	TopK        int       `json:"top_k"`
	CreatedAt   time.Time `json:"created_at"`
}

func RunConvert(rec dbmodels.TestRun) RunView {
	return RunView{
		ID:          rec.ID,
		PromptID:    rec.PromptID,
		Name:        rec.Name,
		Description: rec.Description,
		Model:       rec.Model,
		ModelName:   llmmodels.ModelName(rec.Model),
		Temperature: rec.Temperature,
		TopP:        rec.TopP,
		TopK:        rec.TopK,
		CreatedAt:   rec.CreatedAt,
	}
}

type ResultView struct {
	ID         string                      `json:"id"`
	RunID      string                      `json:"run_id"`
	QuestionID string                      `json:"question_id"`
	Response   string                      `json:"response"`
	Status     dbmodels.RunResultStatus    `json:"status"`
	ErrorKind  dbmodels.RunResultErrorKind `json:"error_kind,omitempty"`
	CreatedAt  time.Time                   `json:"created_at"`
}

func ResultConvert(rec dbmodels.RunResult) ResultView {
	return ResultView{
		ID:         rec.ID,
		RunID:      rec.RunID,
		QuestionID: rec.QuestionID,
		Response:   rec.Response,
		Status:     rec.Status,
		ErrorKind:  rec.ErrorKind,
		CreatedAt:  rec.CreatedAt,
	}
}

// QuestionResults результаты по одному вопросу; Question == nil, если вопрос удален
type QuestionResults struct {
	QuestionID string                          `json:"question_id"`
	Question   *questionapimodels.QuestionView `json:"question"`
	Results    []ResultView                    `json:"results"`
}

type RunDetails struct {
	Run       RunView                     `json:"run"`
	Prompt    *promptapimodels.PromptView `json:"prompt"` // nil, если промпт удален
	Questions []QuestionResults           `json:"questions"`
	Succeeded int                         `json:"succeeded"`
	Failed    int                         `json:"failed"`
}

type CompareRow struct {
	Question questionapimodels.QuestionView `json:"question"`
	Left     []ResultView                   `json:"left"`
	Right    []ResultView                   `json:"right"`
}

type CompareView struct {
	Left        RunView                     `json:"left"`
	Right       RunView                     `json:"right"`
	LeftPrompt  *promptapimodels.PromptView `json:"left_prompt"`
	RightPrompt *promptapimodels.PromptView `json:"right_prompt"`
	Rows        []CompareRow                `json:"rows"`
}

type Progress struct {
	RunID         string                      `json:"run_id"`
	RunIndex      int                         `json:"run_index"`
	RunCount      int                         `json:"run_count"`
	QuestionID    string                      `json:"question_id"`
	QuestionIndex int                         `json:"question_index"`
	QuestionCount int                         `json:"question_count"`
	Status        dbmodels.RunResultStatus    `json:"status"`
	ErrorKind     dbmodels.RunResultErrorKind `json:"error_kind,omitempty"`
	Message       string                      `json:"message,omitempty"`
}

type QuestionOutcome struct {
	QuestionID string                      `json:"question_id"`
	ResultID   string                      `json:"result_id"`
	Status     dbmodels.RunResultStatus    `json:"status"`
	ErrorKind  dbmodels.RunResultErrorKind `json:"error_kind,omitempty"`
	Error      string                      `json:"error,omitempty"`
}

type RunSummary struct {
	Run       RunView           `json:"run"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Outcomes  []QuestionOutcome `json:"outcomes"`
}

type StartSummary struct {
	Runs    []RunSummary `json:"runs"`
	Aborted bool         `json:"aborted"` // прогон остановлен после ошибки модели
	Error   string       `json:"error,omitempty"`
}

func (s StartSummary) RunIDs() []string {
	ids := make([]string, 0, len(s.Runs))
	for _, run := range s.Runs {
		ids = append(ids, run.Run.ID)
	}
	return ids
}

type ReportRequest struct {
	Email string `json:"email"`
}

func (r ReportRequest) Validate() error {
	if !strings.Contains(r.Email, "@") {
		return errors.New("некорректный адрес почты")
	}
	return nil
}

var ExportHeaders = []string{
	"Test Run Name",
	"Test Run Description",
	"Model",
	"Prompt Name",
	"Prompt Version",
	"Prompt Content",
	"Question",
	"Response",
	"Created At",
}

// ExportRow строка выгрузки результатов прогона
type ExportRow struct {
	RunName        string
	RunDescription string
	Model          string
	PromptName     string
	PromptVersion  int
	PromptContent  string
	Question       string
	Response       string
	CreatedAt      time.Time
}

func (r ExportRow) Values() []string {
	version := ""
	if r.PromptVersion > 0 {
		version = fmt.Sprint(r.PromptVersion)
	}
	return []string{
		r.RunName,
		r.RunDescription,
		r.Model,
		r.PromptName,
		version,
		r.PromptContent,
		r.Question,
		r.Response,
		r.CreatedAt.Format(time.RFC3339),
	}
}
