package storeerrors

import (
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	ErrNotFound   = errors.New("запись не найдена")
	ErrConstraint = errors.New("нарушено ограничение целостности")
	ErrTransport  = errors.New("ошибка соединения с БД")
)

// Classify оборачивает ошибку gorm в одну из ошибок пакета, сохраняя исходный текст
func Classify(err error, msg string) error {
	if err == nil {
		return nil
	}
	kind := Kind(err)
	return &storeError{kind: kind, msg: msg, cause: err}
}

func Kind(err error) error {
	for _, kind := range []error{ErrNotFound, ErrConstraint, ErrTransport} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrConstraint
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		return ErrConstraint
	}
	if strings.Contains(strings.ToLower(err.Error()), "constraint failed") {
		return ErrConstraint
	}
	return ErrTransport
}

type storeError struct {
	kind  error
	msg   string
	cause error
}

func (e *storeError) Error() string {
	return e.msg + ": " + e.cause.Error()
}

func (e *storeError) Is(target error) bool {
	return target == e.kind
}

func (e *storeError) Unwrap() error {
	return e.cause
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConstraint(err error) bool {
	return errors.Is(err, ErrConstraint)
}
