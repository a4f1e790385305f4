package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
	promptapimodels "sarah-testing/models/api/prompt"
)

func PromptsPage(groups []promptapimodels.PromptGroup, form promptapimodels.PromptData, flash Flash) templ.Component {
	return Layout("Prompts", "/prompts", flash, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(w)
		h.raw("<details open><summary><b>Create prompt</b></summary>")
		if len(groups) != 0 {
			h.raw("<form method=\"get\" action=\"/prompts\"><label>Base on existing <select name=\"base\" onchange=\"this.form.submit()\"><option value=\"\">-</option>")
			for _, group := range groups {
				for _, version := range group.Versions {
					h.f("<option value=\"%s\">%s (v%d)</option>", version.ID, version.Name, version.Version)
				}
			}
			h.raw("</select></label></form>")
		}
		h.raw("<form method=\"post\" action=\"/prompts\">")
		h.f("<label>Name <input type=\"text\" name=\"name\" value=\"%s\" required></label>", form.Name)
		h.raw("<p>Use <code>{question}</code> and <code>{sources}</code> placeholders. An existing name creates a new version.</p>")
		h.f("<label>Content<textarea name=\"content\" required>%s</textarea></label>", form.Content)
		h.raw("<button type=\"submit\">Save prompt</button></form></details>")

		h.f("<h2>Prompts (%d)</h2>", len(groups))
		if len(groups) == 0 {
			h.raw("<p>No prompts yet.</p>")
		}
		for _, group := range groups {
			h.f("<details><summary><b>%s</b> (%d versions)</summary>", group.Name, len(group.Versions))
			for _, version := range group.Versions {
				h.f("<p><b>Version %d</b> created %s ", version.Version, version.CreatedAt.Format("2006-01-02 15:04"))
				h.f("<form class=\"inline\" method=\"post\" action=\"/prompts/%s/delete\">", version.ID)
				h.raw("<button type=\"submit\" onclick=\"return confirm('Delete prompt version?')\">Delete</button></form></p>")
				h.f("<div class=\"response\">%s</div>", version.Content)
			}
			h.raw("</details>")
		}
		return h.err
	}))
}
