package llm

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	llmmodels "sarah-testing/models/llm"
)

const maxCitedTextLen = 150

type reference struct {
	number    int
	title     string
	citedText string
	page      string
}

// FormatResponse текст ответа в markdown: номера ссылок [n] после процитированных фрагментов
// и раздел **References** с названием документа, цитатой и страницей
func FormatResponse(response llmmodels.Response) string {
	var (
		sb         strings.Builder
		references []*reference
		byKey      = map[string]*reference{}
	)
	for _, block := range response.Blocks {
		sb.WriteString(block.Text)
		if len(block.Citations) == 0 {
			continue
		}
		used := map[int]bool{}
		for _, citation := range block.Citations {
			title := citation.DocumentTitle
			if title == "" {
				title = fmt.Sprintf("Source %d", len(references)+1)
			}
			citedText, page := splitPageHeader(citation.CitedText)
			if citation.StartPageNumber > 0 {
				page = strconv.FormatInt(citation.StartPageNumber, 10)
			}
			key := title + ":" + citedText
			ref, ok := byKey[key]
			if !ok {
				ref = &reference{
					number:    len(references) + 1,
					title:     title,
					citedText: citedText,
					page:      page,
				}
				byKey[key] = ref
				references = append(references, ref)
			}
			if used[ref.number] {
				continue
			}
			used[ref.number] = true
			sb.WriteString(fmt.Sprintf(" [%d]", ref.number))
		}
	}
	if len(references) == 0 {
		return sb.String()
	}
	sb.WriteString("\n\n**References**\n\n")
	for _, ref := range references {
		sb.WriteString(fmt.Sprintf("[%d] %s", ref.number, ref.title))
		if text := shortenCitedText(ref.citedText); text != "" {
			sb.WriteString(fmt.Sprintf(": \"%s\"", text))
		}
		if ref.page != "" {
			sb.WriteString(fmt.Sprintf(" (Page %s)", ref.page))
		}
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// splitPageHeader отделяет заголовок страницы вида "[Page N]" от процитированного текста
func splitPageHeader(citedText string) (text, page string) {
	text = strings.TrimSpace(strings.ReplaceAll(citedText, "\u0002", ""))
	if !strings.HasPrefix(text, "[Page") {
		return text, ""
	}
	end := strings.Index(text, "]")
	if end < 0 {
		return text, ""
	}
	page = strings.TrimSpace(strings.TrimPrefix(text[:end], "[Page"))
	return strings.TrimSpace(text[end+1:]), page
}

func shortenCitedText(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= maxCitedTextLen {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxCitedTextLen-3]) + "..."
}
