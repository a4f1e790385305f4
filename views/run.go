package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
	promptapimodels "sarah-testing/models/api/prompt"
	testrunapimodels "sarah-testing/models/api/testrun"
)

func RunPage(details testrunapimodels.RunDetails, flash Flash) templ.Component {
	run := details.Run
	return Layout(run.Name, "/runs", flash, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(w)
		h.f("<p>Model: <b>%s</b>, %s, created %s</p>", run.ModelName, paramsLabel(run), run.CreatedAt.Format("2006-01-02 15:04"))
		h.f("<p>%d succeeded, %d failed</p>", details.Succeeded, details.Failed)
		if run.Description != "" {
			h.f("<div class=\"response\">%s</div>", run.Description)
		}
		promptBlock(h, details.Prompt)

		h.raw("<p>Export: ")
		for _, format := range []string{"csv", "xlsx", "pdf"} {
			h.f("<a href=\"/runs/%s/export/%s\">%s</a> ", run.ID, format, format)
		}
		h.f("</p><form class=\"inline\" method=\"post\" action=\"/runs/%s/delete\">", run.ID)
		h.raw("<button type=\"submit\" onclick=\"return confirm('Delete test run?')\">Delete run</button></form>")

		h.f("<form method=\"post\" action=\"/runs/%s/report\">", run.ID)
		h.raw("<label>Send report to <input type=\"email\" name=\"email\" required></label><button type=\"submit\">Send</button></form>")

		h.raw("<h2>Results</h2>")
		for _, group := range details.Questions {
			if group.Question == nil {
				h.raw("<div class=\"warning\">The question for these results has been deleted.</div>")
			} else {
				h.f("<h3>%s</h3><div class=\"response\">%s</div>", group.Question.Name, group.Question.Content)
				if len(group.Question.Sources) != 0 {
					h.raw("<details><summary>Source documents</summary>")
					for _, source := range group.Question.Sources {
						sourceBlock(h, source)
					}
					h.raw("</details>")
				}
			}
			for _, result := range group.Results {
				resultBlock(h, result)
			}
		}
		return h.err
	}))
}

func promptBlock(h *htmlWriter, prompt *promptapimodels.PromptView) {
	if prompt == nil {
		h.raw("<div class=\"warning\">The prompt of this run has been deleted.</div>")
		return
	}
	h.f("<details><summary>Prompt: %s (v%d)</summary><div class=\"response\">%s</div></details>", prompt.Name, prompt.Version, prompt.Content)
}

func resultBlock(h *htmlWriter, result testrunapimodels.ResultView) {
	class := "response"
	if result.Status == "error" {
		class += " failed"
	}
	h.f("<p><b>Response</b> %s</p><div class=\"%s\">%s</div>", result.CreatedAt.Format("15:04:05"), class, result.Response)
}

func ComparePage(view *testrunapimodels.CompareView, runs []testrunapimodels.RunView, left, right string, flash Flash) templ.Component {
	return Layout("Compare runs", "/runs", flash, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(w)
		h.raw("<form method=\"get\" action=\"/runs/compare\">")
		for _, side := range []struct{ name, value string }{{"left", left}, {"right", right}} {
			h.f("<select name=\"%s\">", side.name)
			for _, run := range runs {
				h.f("<option value=\"%s\"%s>%s</option>", run.ID, selected(run.ID == side.value), run.Name)
			}
			h.raw("</select> ")
		}
		h.raw("<button type=\"submit\">Compare</button></form>")
		if view == nil {
			return h.err
		}
		h.raw("<div class=\"cols\">")
		for _, side := range []struct {
			run    testrunapimodels.RunView
			prompt *promptapimodels.PromptView
		}{{view.Left, view.LeftPrompt}, {view.Right, view.RightPrompt}} {
			h.f("<div><h2><a href=\"/runs/%s\">%s</a></h2><p>%s, %s</p>", side.run.ID, side.run.Name, side.run.ModelName, paramsLabel(side.run))
			promptBlock(h, side.prompt)
			h.raw("</div>")
		}
		h.raw("</div>")
		if len(view.Rows) == 0 {
			h.raw("<p>The runs have no questions in common.</p>")
		}
		for _, row := range view.Rows {
			h.f("<h3>%s</h3><div class=\"response\">%s</div><div class=\"cols\">", row.Question.Name, row.Question.Content)
			for _, results := range [][]testrunapimodels.ResultView{row.Left, row.Right} {
				h.raw("<div>")
				for _, result := range results {
					resultBlock(h, result)
				}
				h.raw("</div>")
			}
			h.raw("</div>")
		}
		return h.err
	}))
}
