package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Flash сообщения над содержимым страницы
type Flash struct {
	Error string
	Info  string
}

var menu = []struct {
	Path  string
	Title string
}{
	{"/questions", "Questions"},
	{"/prompts", "Prompts"},
	{"/runs", "Test runs"},
	{"/chat", "Chat"},
}

const styles = `
body{font-family:sans-serif;margin:0;color:#222}
nav{background:#2b3a55;padding:10px 20px}
nav a{color:#fff;margin-right:18px;text-decoration:none}
nav a.active{font-weight:bold;text-decoration:underline}
main{padding:20px;max-width:1200px}
.error{background:#fde2e1;border:1px solid #e0a3a0;padding:10px;margin-bottom:16px}
.info{background:#e3f4e1;border:1px solid #9fd19a;padding:10px;margin-bottom:16px}
.warning{background:#fff4d6;border:1px solid #e8cd7a;padding:8px;margin:6px 0}
.response{white-space:pre-wrap;background:#f6f6f6;padding:10px;border-radius:4px}
.failed{border-left:4px solid #d9534f}
details{margin:8px 0}
textarea{width:100%;min-height:90px}
input[type=text],input[type=email],select{min-width:260px}
table{border-collapse:collapse;width:100%}
td,th{border:1px solid #ddd;padding:6px;vertical-align:top;text-align:left}
form.inline{display:inline}
.cols{display:grid;grid-template-columns:1fr 1fr;gap:16px}
label{display:block;margin-top:8px}
`

func Layout(title, active string, flash Flash, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(w)
		h.raw("<!DOCTYPE html><html><head><meta charset=\"utf-8\">")
		h.f("<title>%s - Sarah Testing</title>", title)
		h.raw("<style>" + styles + "</style></head><body><nav>")
		for _, item := range menu {
			class := ""
			if item.Path == active {
				class = " class=\"active\""
			}
			h.f("<a href=\"%s\""+class+">%s</a>", item.Path, item.Title)
		}
		h.f("</nav><main><h1>%s</h1>", title)
		if flash.Error != "" {
			h.f("<div class=\"error\">%s</div>", flash.Error)
		}
		if flash.Info != "" {
			h.f("<div class=\"info\">%s</div>", flash.Info)
		}
		if h.err != nil {
			return h.err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		h.raw("</main></body></html>")
		return h.err
	})
}
