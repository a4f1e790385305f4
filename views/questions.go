package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
	questionapimodels "sarah-testing/models/api/question"
)

// QuestionForm состояние формы добавления вопроса
type QuestionForm struct {
	Name    string
	Content string
	Sources []SourceForm
}

type SourceForm struct {
	Title string
	Pages string // страницы разделяются строкой "---"
}

func QuestionsPage(list []questionapimodels.QuestionView, form QuestionForm, flash Flash) templ.Component {
	return Layout("Questions", "/questions", flash, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(w)
		questionForm(h, form)
		h.f("<h2>Question bank (%d)</h2>", len(list))
		if len(list) == 0 {
			h.raw("<p>No questions yet.</p>")
		}
		for _, question := range list {
			h.f("<details><summary><b>%s</b> %s</summary>", question.Name, preview(question.Content, 80))
			h.f("<div class=\"response\">%s</div>", question.Content)
			for _, source := range question.Sources {
				sourceBlock(h, source)
			}
			h.f("<form class=\"inline\" method=\"post\" action=\"/questions/%s/delete\">", question.ID)
			h.raw("<button type=\"submit\" onclick=\"return confirm('Delete question?')\">Delete</button></form>")
			h.raw("</details>")
		}
		return h.err
	}))
}

func sourceBlock(h *htmlWriter, source questionapimodels.SourceView) {
	h.f("<details><summary>Source: %s (%d pages)</summary>", source.Title, len(source.Pages))
	for idx, page := range source.Pages {
		h.f("<p><i>Page %d</i></p><div class=\"response\">%s</div>", idx+1, page)
	}
	h.raw("</details>")
}

func questionForm(h *htmlWriter, form QuestionForm) {
	h.raw("<details open><summary><b>Add question</b></summary><form method=\"post\" action=\"/questions\">")
	h.f("<label>Name <input type=\"text\" name=\"name\" value=\"%s\" required></label>", form.Name)
	h.f("<label>Question<textarea name=\"content\" required>%s</textarea></label>", form.Content)
	h.f("<p>Sources (up to %d). Separate pages with a line containing only <code>---</code>.</p>", questionapimodels.MaxSources)
	for idx := 0; idx < questionapimodels.MaxSources; idx++ {
		var source SourceForm
		if idx < len(form.Sources) {
			source = form.Sources[idx]
		}
		open := ""
		if idx == 0 || source.Title != "" || source.Pages != "" {
			open = " open"
		}
		h.raw("<details" + open + ">")
		h.f("<summary>Source %d</summary>", idx+1)
		h.f("<label>Title <input type=\"text\" name=\"source_title_%d\" value=\"%s\"></label>", idx+1, source.Title)
		h.f("<label>Pages<textarea name=\"source_pages_%d\">%s</textarea></label>", idx+1, source.Pages)
		h.raw("</details>")
	}
	h.raw("<button type=\"submit\">Save question</button></form></details>")
}
