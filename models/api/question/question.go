package questionapimodels

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	dbmodels "sarah-testing/models/db"
)

const MaxSources = 10

type SourceData struct {
	Title string   `json:"title"`
	Pages []string `json:"pages"` // текст страниц по порядку
}

func (s SourceData) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return errors.New("не указано название источника")
	}
	for _, page := range s.Pages {
		if strings.TrimSpace(page) != "" {
			return nil
		}
	}
	return errors.Errorf("источник %q не содержит текста", s.Title)
}

func (s SourceData) ToDB() dbmodels.Source {
	pages := make([]string, 0, len(s.Pages))
	for _, page := range s.Pages {
		if strings.TrimSpace(page) != "" {
			pages = append(pages, page)
		}
	}
	return dbmodels.Source{
		Title:   strings.TrimSpace(s.Title),
		Content: dbmodels.NewTextPages(pages...),
	}
}

// ParsePages разбивает текст источника на страницы по строкам, содержащим только "---"
func ParsePages(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var (
		pages   []string
		current []string
	)
	flush := func() {
		page := strings.TrimSpace(strings.Join(current, "\n"))
		if page != "" {
			pages = append(pages, page)
		}
		current = nil
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "---" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return pages
}

type QuestionData struct {
	Name    string       `json:"name"`
	Content string       `json:"content"`
	Sources []SourceData `json:"sources"`
}

func (q QuestionData) Validate() error {
	if strings.TrimSpace(q.Name) == "" {
		return errors.New("не указано название вопроса")
	}
	if strings.TrimSpace(q.Content) == "" {
		return errors.New("не указан текст вопроса")
	}
	if len(q.Sources) > MaxSources {
		return errors.Errorf("источников не может быть больше %d", MaxSources)
	}
	for idx, source := range q.Sources {
		if err := source.Validate(); err != nil {
			return errors.Wrap(err, fmt.Sprintf("источник %d", idx+1))
		}
	}
	return nil
}

func (q QuestionData) ToDB() (dbmodels.Question, []dbmodels.Source) {
	sources := make([]dbmodels.Source, 0, len(q.Sources))
	for _, source := range q.Sources {
		sources = append(sources, source.ToDB())
	}
	return dbmodels.Question{
		Name:    strings.TrimSpace(q.Name),
		Content: strings.TrimSpace(q.Content),
	}, sources
}

type SourceView struct {
	ID         string    `json:"id"`
	QuestionID string    `json:"question_id"`
	Title      string    `json:"title"`
	Pages      []string  `json:"pages"`
	CreatedAt  time.Time `json:"created_at"`
}

type QuestionView struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
	Sources   []SourceView `json:"sources"`
}

func SourceConvert(rec dbmodels.Source) SourceView {
	pages := make([]string, 0, len(rec.Content))
	for _, page := range rec.Content {
		pages = append(pages, page.Text)
	}
	return SourceView{
		ID:         rec.ID,
		QuestionID: rec.QuestionID,
		Title:      rec.Title,
		Pages:      pages,
		CreatedAt:  rec.CreatedAt,
	}
}

func QuestionConvert(rec dbmodels.Question) QuestionView {
	sources := make([]SourceView, 0, len(rec.Sources))
	for _, source := range rec.Sources {
		sources = append(sources, SourceConvert(source))
	}
	return QuestionView{
		ID:        rec.ID,
		Name:      rec.Name,
		Content:   rec.Content,
		CreatedAt: rec.CreatedAt,
		Sources:   sources,
	}
}
