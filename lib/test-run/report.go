package testrun

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"sarah-testing/lib/smtp"
	apimodels "sarah-testing/models/api"
	testrunapimodels "sarah-testing/models/api/testrun"
)

const reportResponseLen = 500

func (i impl) SendReport(ctx context.Context, id, email string) error {
	if err := (testrunapimodels.ReportRequest{Email: email}).Validate(); err != nil {
		return apimodels.NewValidationError(err)
	}
	if i.mail == nil {
		return smtp.ErrNotConfigured
	}
	details, err := i.Get(ctx, id)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Test run report: %s", details.Run.Name)
	if err = i.mail.SendEMail("sarah-testing", email, RenderReport(details), subject); err != nil {
		return errors.Wrap(err, "ошибка отправки отчета")
	}
	return nil
}

// RenderReport текстовый отчет по прогону для письма
func RenderReport(details testrunapimodels.RunDetails) string {
	var sb strings.Builder
	run := details.Run
	sb.WriteString(fmt.Sprintf("Test run: %s\n", run.Name))
	sb.WriteString(fmt.Sprintf("Created: %s\n", run.CreatedAt.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("Model: %s\n", run.ModelName))
	sb.WriteString(fmt.Sprintf("Parameters: temp=%v, top_p=%v, top_k=%d\n", run.Temperature, run.TopP, run.TopK))
	if details.Prompt != nil {
		sb.WriteString(fmt.Sprintf("Prompt: %s (v%d)\n", details.Prompt.Name, details.Prompt.Version))
	} else {
		sb.WriteString("Prompt: deleted\n")
	}
	sb.WriteString(fmt.Sprintf("Results: %d succeeded, %d failed\n", details.Succeeded, details.Failed))
	for _, group := range details.Questions {
		sb.WriteString("\n")
		if group.Question != nil {
			sb.WriteString(fmt.Sprintf("== %s\n%s\n", group.Question.Name, group.Question.Content))
		} else {
			sb.WriteString("== (question deleted)\n")
		}
		for _, result := range group.Results {
			sb.WriteString(fmt.Sprintf("[%s] %s\n", result.Status, truncate(result.Response, reportResponseLen)))
		}
	}
	return sb.String()
}

func truncate(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	return string([]rune(text)[:limit]) + "..."
}
