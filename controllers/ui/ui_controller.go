package ui

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"sarah-testing/controllers"
	chathandler "sarah-testing/lib/chat"
	"sarah-testing/lib/export"
	prompthandler "sarah-testing/lib/prompts"
	questionhandler "sarah-testing/lib/questions"
	testrun "sarah-testing/lib/test-run"
	apimodels "sarah-testing/models/api"
	chatapimodels "sarah-testing/models/api/chat"
	promptapimodels "sarah-testing/models/api/prompt"
	questionapimodels "sarah-testing/models/api/question"
	testrunapimodels "sarah-testing/models/api/testrun"
	llmmodels "sarah-testing/models/llm"
	"sarah-testing/views"
)

type uiController struct {
	controllers.BaseAPIController
}

// InitUIRouters middlewares подключаются к каждой группе страниц, а не ко всему приложению
func InitUIRouters(app *fiber.App, middlewares ...fiber.Handler) {
	controller := uiController{}
	use := func(router fiber.Router) {
		for _, handler := range middlewares {
			router.Use(handler)
		}
	}
	app.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Redirect("/questions")
	})
	app.Route("questions", func(router fiber.Router) {
		use(router)
		router.Get("", controller.questions)
		router.Post("", controller.createQuestion)
		router.Post(":id/delete", controller.deleteQuestion)
	})
	app.Route("prompts", func(router fiber.Router) {
		use(router)
		router.Get("", controller.prompts)
		router.Post("", controller.createPrompt)
		router.Post(":id/delete", controller.deletePrompt)
	})
	app.Route("runs", func(router fiber.Router) {
		use(router)
		router.Get("", controller.runs)
		router.Post("", controller.startRun)
		router.Get("compare", controller.compare)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.run)
			idRoute.Post("delete", controller.deleteRun)
			idRoute.Post("report", controller.report)
			idRoute.Get("export/:format", controller.export)
		})
	})
	app.Route("chat", func(router fiber.Router) {
		use(router)
		router.Get("", controller.chat)
		router.Post("", controller.sendChat)
	})
}

func (c *uiController) render(ctx *fiber.Ctx, status int, component templ.Component) error {
	ctx.Status(status)
	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return component.Render(ctx.UserContext(), ctx.Response().BodyWriter())
}

func (c *uiController) flash(ctx *fiber.Ctx) views.Flash {
	return views.Flash{Info: ctx.Query("info"), Error: ctx.Query("error")}
}

// errorStatus код ответа страницы с ошибкой; 5xx пишутся в лог
func (c *uiController) errorStatus(ctx *fiber.Ctx, err error) int {
	status := controllers.ErrorStatus(err)
	if status >= fiber.StatusInternalServerError {
		c.GetLogger(ctx).WithError(err).Error("ошибка обработки запроса")
	}
	return status
}

func redirect(ctx *fiber.Ctx, path, info string) error {
	if info != "" {
		path += "?info=" + url.QueryEscape(info)
	}
	return ctx.Redirect(path, fiber.StatusSeeOther)
}

func (c *uiController) questions(ctx *fiber.Ctx) error {
	return c.renderQuestions(ctx, fiber.StatusOK, views.QuestionForm{}, c.flash(ctx))
}

func (c *uiController) renderQuestions(ctx *fiber.Ctx, status int, form views.QuestionForm, flash views.Flash) error {
	list, err := questionhandler.Instance.List()
	if err != nil {
		flash.Error = err.Error()
		status = c.errorStatus(ctx, err)
	}
	return c.render(ctx, status, views.QuestionsPage(list, form, flash))
}

func (c *uiController) createQuestion(ctx *fiber.Ctx) error {
	form := views.QuestionForm{
		Name:    ctx.FormValue("name"),
		Content: ctx.FormValue("content"),
	}
	data := questionapimodels.QuestionData{Name: form.Name, Content: form.Content}
	for idx := 1; idx <= questionapimodels.MaxSources; idx++ {
		source := views.SourceForm{
			Title: ctx.FormValue(fmt.Sprintf("source_title_%d", idx)),
			Pages: ctx.FormValue(fmt.Sprintf("source_pages_%d", idx)),
		}
		form.Sources = append(form.Sources, source)
		if strings.TrimSpace(source.Title) == "" && strings.TrimSpace(source.Pages) == "" {
			continue
		}
		data.Sources = append(data.Sources, questionapimodels.SourceData{
			Title: source.Title,
			Pages: questionapimodels.ParsePages(source.Pages),
		})
	}
	question, err := questionhandler.Instance.Create(data)
	if err != nil {
		return c.renderQuestions(ctx, c.errorStatus(ctx, err), form, views.Flash{Error: err.Error()})
	}
	return redirect(ctx, "/questions", fmt.Sprintf("Question %q added with %d sources", question.Name, len(question.Sources)))
}

func (c *uiController) deleteQuestion(ctx *fiber.Ctx) error {
	if err := questionhandler.Instance.Delete(ctx.Params("id")); err != nil {
		return c.renderQuestions(ctx, c.errorStatus(ctx, err), views.QuestionForm{}, views.Flash{Error: deleteError("question", err)})
	}
	return redirect(ctx, "/questions", "Question deleted")
}

func (c *uiController) prompts(ctx *fiber.Ctx) error {
	var form promptapimodels.PromptData
	flash := c.flash(ctx)
	if base := ctx.Query("base"); base != "" {
		prompt, err := prompthandler.Instance.Get(base)
		if err != nil {
			flash.Error = err.Error()
		} else {
			form = promptapimodels.PromptData{Name: prompt.Name, Content: prompt.Content}
		}
	}
	return c.renderPrompts(ctx, fiber.StatusOK, form, flash)
}

func (c *uiController) renderPrompts(ctx *fiber.Ctx, status int, form promptapimodels.PromptData, flash views.Flash) error {
	groups, err := prompthandler.Instance.ListGrouped()
	if err != nil {
		flash.Error = err.Error()
		status = c.errorStatus(ctx, err)
	}
	return c.render(ctx, status, views.PromptsPage(groups, form, flash))
}

func (c *uiController) createPrompt(ctx *fiber.Ctx) error {
	form := promptapimodels.PromptData{
		Name:    ctx.FormValue("name"),
		Content: ctx.FormValue("content"),
	}
	prompt, err := prompthandler.Instance.Create(form)
	if err != nil {
		return c.renderPrompts(ctx, c.errorStatus(ctx, err), form, views.Flash{Error: err.Error()})
	}
	return redirect(ctx, "/prompts", fmt.Sprintf("Prompt %q saved as version %d", prompt.Name, prompt.Version))
}

func (c *uiController) deletePrompt(ctx *fiber.Ctx) error {
	if err := prompthandler.Instance.Delete(ctx.Params("id")); err != nil {
		return c.renderPrompts(ctx, c.errorStatus(ctx, err), promptapimodels.PromptData{}, views.Flash{Error: deleteError("prompt", err)})
	}
	return redirect(ctx, "/prompts", "Prompt deleted")
}

func (c *uiController) runsData(data *views.RunsPageData) error {
	var err error
	if data.Runs, err = testrun.Instance.List(); err != nil {
		return err
	}
	if data.Prompts, err = prompthandler.Instance.List(); err != nil {
		return err
	}
	if data.Questions, err = questionhandler.Instance.List(); err != nil {
		return err
	}
	data.Models = chathandler.Instance.Models()
	return nil
}

func (c *uiController) runs(ctx *fiber.Ctx) error {
	return c.renderRuns(ctx, fiber.StatusOK, views.RunsPageData{}, c.flash(ctx))
}

func (c *uiController) renderRuns(ctx *fiber.Ctx, status int, data views.RunsPageData, flash views.Flash) error {
	if err := c.runsData(&data); err != nil {
		flash.Error = err.Error()
		status = c.errorStatus(ctx, err)
	}
	return c.render(ctx, status, views.RunsPage(data, flash))
}

func (c *uiController) startRun(ctx *fiber.Ctx) error {
	request := startRequestFromForm(ctx)
	summary, err := testrun.Instance.Start(ctx.UserContext(), request, nil)
	if err != nil {
		data := views.RunsPageData{Form: request}
		if len(summary.Runs) != 0 {
			data.Summary = &summary
		}
		return c.renderRuns(ctx, c.errorStatus(ctx, err), data, views.Flash{Error: err.Error()})
	}
	if len(summary.Runs) == 1 && !summary.Aborted {
		run := summary.Runs[0]
		return redirect(ctx, "/runs/"+run.Run.ID, fmt.Sprintf("Test run finished: %d succeeded, %d failed", run.Succeeded, run.Failed))
	}
	return c.renderRuns(ctx, fiber.StatusOK, views.RunsPageData{Form: request, Summary: &summary}, views.Flash{Info: "Test runs finished"})
}

func startRequestFromForm(ctx *fiber.Ctx) testrunapimodels.StartRequest {
	request := testrunapimodels.StartRequest{
		PromptID:    ctx.FormValue("prompt_id"),
		Model:       ctx.FormValue("model"),
		Name:        ctx.FormValue("name"),
		Description: ctx.FormValue("description"),
		Mode:        testrunapimodels.Mode(ctx.FormValue("mode")),
		NotifyEmail: strings.TrimSpace(ctx.FormValue("notify_email")),
		Params: llmmodels.Params{
			Temperature: formFloat(ctx, "temperature"),
			TopP:        formFloat(ctx, "top_p"),
			TopK:        formInt(ctx, "top_k"),
		},
	}
	if questionID := ctx.FormValue("question_id"); questionID != "" {
		request.QuestionIDs = []string{questionID}
	}
	if request.Mode == testrunapimodels.ModeRange {
		request.Range = &testrunapimodels.ParamRange{
			TemperatureMin: formFloat(ctx, "temperature_min"),
			TemperatureMax: formFloat(ctx, "temperature_max"),
			TopPMin:        formFloat(ctx, "top_p_min"),
			TopPMax:        formFloat(ctx, "top_p_max"),
			TopKMin:        formInt(ctx, "top_k_min"),
			TopKMax:        formInt(ctx, "top_k_max"),
			Points:         formInt(ctx, "points"),
		}
	}
	return request
}

// пустое или некорректное значение дает 0 и отклоняется валидацией
func formFloat(ctx *fiber.Ctx, key string) float64 {
	value, _ := strconv.ParseFloat(strings.TrimSpace(ctx.FormValue(key)), 64)
	return value
}

func formInt(ctx *fiber.Ctx, key string) int {
	value, _ := strconv.Atoi(strings.TrimSpace(ctx.FormValue(key)))
	return value
}

func (c *uiController) run(ctx *fiber.Ctx) error {
	return c.renderRun(ctx, fiber.StatusOK, c.flash(ctx))
}

func (c *uiController) renderRun(ctx *fiber.Ctx, status int, flash views.Flash) error {
	details, err := testrun.Instance.Get(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return c.renderRuns(ctx, c.errorStatus(ctx, err), views.RunsPageData{}, views.Flash{Error: err.Error()})
	}
	return c.render(ctx, status, views.RunPage(details, flash))
}

func (c *uiController) deleteRun(ctx *fiber.Ctx) error {
	if err := testrun.Instance.Delete(ctx.Params("id")); err != nil {
		return c.renderRuns(ctx, c.errorStatus(ctx, err), views.RunsPageData{}, views.Flash{Error: deleteError("test run", err)})
	}
	return redirect(ctx, "/runs", "Test run deleted")
}

func (c *uiController) report(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	email := strings.TrimSpace(ctx.FormValue("email"))
	if err := testrun.Instance.SendReport(ctx.UserContext(), id, email); err != nil {
		return c.renderRun(ctx, c.errorStatus(ctx, err), views.Flash{Error: err.Error()})
	}
	return redirect(ctx, "/runs/"+id, "Report sent to "+email)
}

func (c *uiController) export(ctx *fiber.Ctx) error {
	run, rows, err := testrun.Instance.ExportRows(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return c.renderRun(ctx, c.errorStatus(ctx, err), views.Flash{Error: err.Error()})
	}
	file, err := export.RunResults(ctx.Params("format"), run, rows)
	if err != nil {
		return c.renderRun(ctx, c.errorStatus(ctx, err), views.Flash{Error: err.Error()})
	}
	ctx.Set(fiber.HeaderContentType, file.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	return ctx.Status(fiber.StatusOK).Send(file.Body)
}

func (c *uiController) compare(ctx *fiber.Ctx) error {
	left, right := ctx.Query("left"), ctx.Query("right")
	flash := c.flash(ctx)
	status := fiber.StatusOK
	runs, err := testrun.Instance.List()
	if err != nil {
		flash.Error = err.Error()
		return c.render(ctx, c.errorStatus(ctx, err), views.ComparePage(nil, nil, left, right, flash))
	}
	var view *testrunapimodels.CompareView
	switch {
	case left == "" || right == "":
		if len(ctx.Request().URI().QueryString()) != 0 {
			flash.Error = "Select two test runs to compare"
			status = fiber.StatusBadRequest
		}
	default:
		result, err := testrun.Instance.Compare(ctx.UserContext(), left, right)
		if err != nil {
			flash.Error = err.Error()
			status = c.errorStatus(ctx, err)
		} else {
			view = &result
		}
	}
	return c.render(ctx, status, views.ComparePage(view, runs, left, right, flash))
}

func (c *uiController) chatData(data *views.ChatPageData) error {
	var err error
	data.Models = chathandler.Instance.Models()
	if data.Prompts, err = prompthandler.Instance.List(); err != nil {
		return err
	}
	data.Questions, err = questionhandler.Instance.List()
	return err
}

func (c *uiController) chat(ctx *fiber.Ctx) error {
	return c.renderChat(ctx, fiber.StatusOK, views.ChatPageData{}, c.flash(ctx))
}

func (c *uiController) renderChat(ctx *fiber.Ctx, status int, data views.ChatPageData, flash views.Flash) error {
	if err := c.chatData(&data); err != nil {
		flash.Error = err.Error()
		status = c.errorStatus(ctx, err)
	}
	return c.render(ctx, status, views.ChatPage(data, flash))
}

func (c *uiController) sendChat(ctx *fiber.Ctx) error {
	params := llmmodels.Params{
		Temperature: formFloat(ctx, "temperature"),
		TopP:        formFloat(ctx, "top_p"),
		TopK:        formInt(ctx, "top_k"),
	}
	request := chatapimodels.ChatRequest{
		Model:      ctx.FormValue("model"),
		PromptID:   ctx.FormValue("prompt_id"),
		QuestionID: ctx.FormValue("question_id"),
		Params:     &params,
	}
	if ctx.FormValue("reset") != "" {
		return c.renderChat(ctx, fiber.StatusOK, views.ChatPageData{Request: request}, views.Flash{})
	}
	if history := ctx.FormValue("history"); history != "" {
		if err := json.Unmarshal([]byte(history), &request.Messages); err != nil {
			err = apimodels.NewValidationError(errors.Wrap(err, "некорректная история чата"))
			return c.renderChat(ctx, fiber.StatusBadRequest, views.ChatPageData{Request: request}, views.Flash{Error: err.Error()})
		}
	}
	history := request.Messages
	request.Messages = append(request.Messages, chatapimodels.Message{Role: llmmodels.RoleUser, Content: ctx.FormValue("message")})

	resp, err := chathandler.Instance.Send(ctx.UserContext(), request)
	if err != nil {
		request.Messages = history
		return c.renderChat(ctx, c.errorStatus(ctx, err), views.ChatPageData{Request: request}, views.Flash{Error: err.Error()})
	}
	request.Messages = append(request.Messages, chatapimodels.Message{Role: llmmodels.RoleAssistant, Content: resp.Text})
	data := views.ChatPageData{
		Request:   request,
		Formatted: map[int]string{len(request.Messages) - 1: resp.Formatted},
	}
	return c.renderChat(ctx, fiber.StatusOK, data, views.Flash{})
}

func deleteError(entity string, err error) string {
	if controllers.ErrorStatus(err) == fiber.StatusConflict {
		return fmt.Sprintf("Cannot delete this %s: it is still referenced by test results (%s)", entity, err.Error())
	}
	return err.Error()
}
