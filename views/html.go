package views

import (
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// htmlWriter запоминает первую ошибку записи, строковые аргументы экранируются
type htmlWriter struct {
	w   io.Writer
	err error
}

func newWriter(w io.Writer) *htmlWriter {
	return &htmlWriter{w: w}
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) f(format string, args ...interface{}) {
	for idx, arg := range args {
		switch value := arg.(type) {
		case string:
			args[idx] = templ.EscapeString(value)
		case fmt.Stringer:
			args[idx] = templ.EscapeString(value.String())
		}
	}
	h.raw(fmt.Sprintf(format, args...))
}

func selected(ok bool) string {
	if ok {
		return " selected"
	}
	return ""
}

func checked(ok bool) string {
	if ok {
		return " checked"
	}
	return ""
}

func preview(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
