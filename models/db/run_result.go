package dbmodels

import "github.com/pkg/errors"

// RunResult ответ модели по одной паре (прогон, вопрос)
type RunResult struct {
	BaseModel
	RunID      string             `gorm:"type:varchar(36);not null;index"`
	Run        *TestRun           `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
	QuestionID string             `gorm:"type:varchar(36);not null;index"`
	Question   *Question          `gorm:"foreignKey:QuestionID;constraint:OnDelete:RESTRICT"`
	Response   string             `gorm:"type:text"`
	Status     RunResultStatus    `gorm:"type:varchar(32);default:success"`
	ErrorKind  RunResultErrorKind `gorm:"type:varchar(32)"`
}

type RunResultStatus string

const (
	RunResultSuccess RunResultStatus = "success"
	RunResultError   RunResultStatus = "error"
)

type RunResultErrorKind string

const (
	RunErrorNone           RunResultErrorKind = ""
	RunErrorRateLimited    RunResultErrorKind = "rate_limited"
	RunErrorInvalidRequest RunResultErrorKind = "invalid_request"
	RunErrorTransport      RunResultErrorKind = "transport"
	RunErrorUnknown        RunResultErrorKind = "unknown"
)

func (r RunResult) Validate() error {
	if r.RunID == "" {
		return errors.New("отсутствует ссылка на прогон")
	}
	if r.QuestionID == "" {
		return errors.New("отсутствует ссылка на вопрос")
	}
	return nil
}

func (r RunResult) IsError() bool {
	return r.Status == RunResultError
}
