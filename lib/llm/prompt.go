package llm

import (
	"strings"

	dbmodels "sarah-testing/models/db"
	llmmodels "sarah-testing/models/llm"
)

const (
	questionPlaceholder = "{question}"
	sourcesPlaceholder  = "{sources}"
)

// RenderPrompt подставляет вопрос и текст источников в шаблон промпта.
// Без {question} в шаблоне вопрос добавляется в конец через пустую строку.
func RenderPrompt(template, question string, docs []llmmodels.Document) string {
	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		parts = append(parts, doc.Title+"\n"+strings.Join(doc.Pages, "\n"))
	}
	result := strings.NewReplacer(
		questionPlaceholder, question,
		sourcesPlaceholder, strings.Join(parts, "\n\n"),
	).Replace(template)
	if !strings.Contains(template, questionPlaceholder) {
		if strings.TrimSpace(result) == "" {
			return question
		}
		return strings.TrimRight(result, "\n") + "\n\n" + question
	}
	return result
}

func DocumentsFromSources(sources []dbmodels.Source) []llmmodels.Document {
	docs := make([]llmmodels.Document, 0, len(sources))
	for _, source := range sources {
		pages := make([]string, 0, len(source.Content))
		for _, page := range source.Content {
			pages = append(pages, page.Text)
		}
		docs = append(docs, llmmodels.Document{
			Title: source.Title,
			Pages: pages,
		})
	}
	return docs
}
