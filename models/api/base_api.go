package apimodels

import "github.com/pkg/errors"

type Response struct {
	Status  string      `json:"status"`            //результат обработки fail/success
	Message string      `json:"message,omitempty"` //сообщение ошибки
	Data    interface{} `json:"data,omitempty"`    //данные ответа
}

func NewError(message string) Response {
	return Response{
		Status:  "fail",
		Message: message,
	}
}

func NewResponse(data interface{}) Response {
	return Response{
		Status: "success",
		Data:   data,
	}
}

var ErrValidation = errors.New("ошибка валидации запроса")

type validationError struct {
	cause error
}

func (e validationError) Error() string {
	return e.cause.Error()
}

func (e validationError) Is(target error) bool {
	return target == ErrValidation
}

func (e validationError) Unwrap() error {
	return e.cause
}

// NewValidationError помечает ошибку как ошибку входных данных, текст не меняется
func NewValidationError(err error) error {
	if err == nil {
		return nil
	}
	return validationError{cause: err}
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}
