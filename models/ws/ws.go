package wsmodels

import "time"

const (
	CodeProgress = "progress"
	CodeSummary  = "summary"
	CodeError    = "error"
)

type ServerMessage struct {
	Time   string      `json:"time"`             // время события
	Code   string      `json:"code"`             // код события
	Msg    string      `json:"msg,omitempty"`    // текст события
	Status int         `json:"status,omitempty"` // http код ошибки для code=error
	Data   interface{} `json:"data,omitempty"`
}

func NewServerMessage(code string, data interface{}) ServerMessage {
	return ServerMessage{
		Time: time.Now().Format(time.RFC3339),
		Code: code,
		Data: data,
	}
}
