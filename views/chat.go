package views

import (
	"context"
	"encoding/json"
	"io"

	"github.com/a-h/templ"
	chatapimodels "sarah-testing/models/api/chat"
	promptapimodels "sarah-testing/models/api/prompt"
	questionapimodels "sarah-testing/models/api/question"
	llmmodels "sarah-testing/models/llm"
)

type ChatPageData struct {
	Models    []llmmodels.Model
	Prompts   []promptapimodels.PromptView
	Questions []questionapimodels.QuestionView
	Request   chatapimodels.ChatRequest
	// ответы ассистента с разметкой ссылок, по индексу сообщения
	Formatted map[int]string
}

func ChatPage(data ChatPageData, flash Flash) templ.Component {
	return Layout("Chat", "/chat", flash, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(w)
		request := data.Request
		for idx, msg := range request.Messages {
			text := msg.Content
			if formatted, ok := data.Formatted[idx]; ok {
				text = formatted
			}
			h.f("<p><b>%s</b></p><div class=\"response\">%s</div>", msg.Role, text)
		}

		history, err := json.Marshal(request.Messages)
		if err != nil {
			return err
		}
		h.raw("<form method=\"post\" action=\"/chat\">")
		h.f("<input type=\"hidden\" name=\"history\" value=\"%s\">", string(history))
		modelSelect(h, data.Models, request.Model)
		h.raw("<label>Prompt <select name=\"prompt_id\"><option value=\"\">No system prompt</option>")
		for _, prompt := range data.Prompts {
			h.f("<option value=\"%s\"%s>%s (v%d)</option>", prompt.ID, selected(prompt.ID == request.PromptID), prompt.Name, prompt.Version)
		}
		h.raw("</select></label>")
		h.raw("<label>Question bank <select name=\"question_id\"><option value=\"\">No sources</option>")
		for _, question := range data.Questions {
			h.f("<option value=\"%s\"%s>%s</option>", question.ID, selected(question.ID == request.QuestionID), question.Name)
		}
		h.raw("</select></label>")
		params := request.GetParams()
		h.f("<label>Temperature <input type=\"number\" step=\"0.01\" min=\"0\" max=\"1\" name=\"temperature\" value=\"%v\"></label>", params.Temperature)
		h.f("<label>Top P <input type=\"number\" step=\"0.01\" min=\"0\" max=\"1\" name=\"top_p\" value=\"%v\"></label>", params.TopP)
		h.f("<label>Top K <input type=\"number\" step=\"1\" min=\"1\" max=\"100\" name=\"top_k\" value=\"%d\"></label>", params.TopK)
		h.raw("<label>Message<textarea name=\"message\" required></textarea></label>")
		h.raw("<button type=\"submit\">Send</button> <button type=\"submit\" name=\"reset\" value=\"1\" formnovalidate>Clear chat</button></form>")
		return h.err
	}))
}
