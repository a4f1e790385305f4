package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	promptapimodels "sarah-testing/models/api/prompt"
	questionapimodels "sarah-testing/models/api/question"
	testrunapimodels "sarah-testing/models/api/testrun"
	llmmodels "sarah-testing/models/llm"
)

// RunsPageData данные страницы прогонов
type RunsPageData struct {
	Runs      []testrunapimodels.RunView
	Prompts   []promptapimodels.PromptView
	Questions []questionapimodels.QuestionView
	Models    []llmmodels.Model
	Form      testrunapimodels.StartRequest
	Summary   *testrunapimodels.StartSummary
}

func RunsPage(data RunsPageData, flash Flash) templ.Component {
	return Layout("Test runs", "/runs", flash, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(w)
		if data.Summary != nil {
			runSummary(h, *data.Summary)
		}
		startForm(h, data)

		h.f("<h2>Runs (%d)</h2>", len(data.Runs))
		if len(data.Runs) == 0 {
			h.raw("<p>No test runs yet.</p>")
			return h.err
		}
		h.raw("<form method=\"get\" action=\"/runs/compare\"><table><tr><th>Left</th><th>Right</th><th>Name</th><th>Model</th><th>Parameters</th><th>Created</th></tr>")
		for _, run := range data.Runs {
			h.raw("<tr>")
			h.f("<td><input type=\"radio\" name=\"left\" value=\"%s\"></td>", run.ID)
			h.f("<td><input type=\"radio\" name=\"right\" value=\"%s\"></td>", run.ID)
			h.f("<td><a href=\"/runs/%s\">%s</a></td>", run.ID, run.Name)
			h.f("<td>%s</td>", run.ModelName)
			h.f("<td>%s</td>", paramsLabel(run))
			h.f("<td>%s</td>", run.CreatedAt.Format("2006-01-02 15:04"))
			h.raw("</tr>")
		}
		h.raw("</table><button type=\"submit\">Compare selected</button></form>")
		return h.err
	}))
}

func paramsLabel(run testrunapimodels.RunView) string {
	return fmt.Sprintf("temp=%v, top_p=%v, top_k=%d", run.Temperature, run.TopP, run.TopK)
}

func runSummary(h *htmlWriter, summary testrunapimodels.StartSummary) {
	if summary.Aborted {
		h.f("<div class=\"warning\">Run stopped: %s</div>", summary.Error)
	}
	for _, run := range summary.Runs {
		h.f("<p><a href=\"/runs/%s\">%s</a>: %d succeeded, %d failed</p>", run.Run.ID, run.Run.Name, run.Succeeded, run.Failed)
	}
}

func startForm(h *htmlWriter, data RunsPageData) {
	form := data.Form
	if form.Mode == "" {
		form.Mode = testrunapimodels.ModeSingle
	}
	if form.Params == (llmmodels.Params{}) {
		form.Params = llmmodels.DefaultParams
	}
	rng := testrunapimodels.DefaultParamRange
	if form.Range != nil {
		rng = *form.Range
	}
	selectedQuestion := ""
	if len(form.QuestionIDs) == 1 {
		selectedQuestion = form.QuestionIDs[0]
	}

	h.raw("<details open><summary><b>Start test run</b></summary>")
	if len(data.Prompts) == 0 || len(data.Questions) == 0 {
		h.raw("<div class=\"warning\">Create at least one prompt and one question first.</div></details>")
		return
	}
	h.raw("<form method=\"post\" action=\"/runs\">")
	h.raw("<label>Prompt <select name=\"prompt_id\">")
	for _, prompt := range data.Prompts {
		h.f("<option value=\"%s\"%s>%s (v%d)</option>", prompt.ID, selected(prompt.ID == form.PromptID), prompt.Name, prompt.Version)
	}
	h.raw("</select></label>")
	modelSelect(h, data.Models, form.Model)
	h.f("<label>Name <input type=\"text\" name=\"name\" value=\"%s\" required></label>", form.Name)
	h.f("<label>Description<textarea name=\"description\">%s</textarea></label>", form.Description)

	h.raw("<label>Questions <select name=\"question_id\"><option value=\"\">All questions</option>")
	for _, question := range data.Questions {
		h.f("<option value=\"%s\"%s>%s</option>", question.ID, selected(question.ID == selectedQuestion), question.Name)
	}
	h.raw("</select></label>")

	h.f("<label><input type=\"radio\" name=\"mode\" value=\"single\"%s> Single configuration</label>", checked(form.Mode == testrunapimodels.ModeSingle))
	h.f("<label>Temperature <input type=\"number\" step=\"0.01\" min=\"0\" max=\"1\" name=\"temperature\" value=\"%v\"></label>", form.Params.Temperature)
	h.f("<label>Top P <input type=\"number\" step=\"0.01\" min=\"0\" max=\"1\" name=\"top_p\" value=\"%v\"></label>", form.Params.TopP)
	h.f("<label>Top K <input type=\"number\" step=\"1\" min=\"1\" max=\"100\" name=\"top_k\" value=\"%d\"></label>", form.Params.TopK)

	h.f("<label><input type=\"radio\" name=\"mode\" value=\"range\"%s> Parameter range</label>", checked(form.Mode == testrunapimodels.ModeRange))
	h.f("<label>Temperature from <input type=\"number\" step=\"0.01\" name=\"temperature_min\" value=\"%v\"> to <input type=\"number\" step=\"0.01\" name=\"temperature_max\" value=\"%v\"></label>", rng.TemperatureMin, rng.TemperatureMax)
	h.f("<label>Top P from <input type=\"number\" step=\"0.01\" name=\"top_p_min\" value=\"%v\"> to <input type=\"number\" step=\"0.01\" name=\"top_p_max\" value=\"%v\"></label>", rng.TopPMin, rng.TopPMax)
	h.f("<label>Top K from <input type=\"number\" step=\"1\" name=\"top_k_min\" value=\"%d\"> to <input type=\"number\" step=\"1\" name=\"top_k_max\" value=\"%d\"></label>", rng.TopKMin, rng.TopKMax)
	h.f("<label>Configurations <input type=\"number\" min=\"%d\" max=\"%d\" name=\"points\" value=\"%d\"></label>", testrunapimodels.MinRangePoints, testrunapimodels.MaxRangePoints, rng.Points)

	h.f("<label>Send report to <input type=\"email\" name=\"notify_email\" value=\"%s\"></label>", form.NotifyEmail)
	h.raw("<button type=\"submit\">Run</button></form></details>")
}

func modelSelect(h *htmlWriter, models []llmmodels.Model, current string) {
	h.raw("<label>Model <select name=\"model\">")
	for _, model := range models {
		h.f("<option value=\"%s\"%s>%s</option>", model.ID, selected(model.ID == current), model.Name)
	}
	h.raw("</select></label>")
	if len(models) == 0 {
		h.raw("<div class=\"warning\">No model API is configured.</div>")
	}
}
