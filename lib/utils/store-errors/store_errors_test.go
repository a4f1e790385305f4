package storeerrors

import (
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		require.NoError(t, Classify(nil, "x"))
	})
	t.Run("not found", func(t *testing.T) {
		err := Classify(gorm.ErrRecordNotFound, "ошибка получения вопроса")
		require.ErrorIs(t, err, ErrNotFound)
		require.ErrorIs(t, err, gorm.ErrRecordNotFound)
		require.Contains(t, err.Error(), "ошибка получения вопроса")
	})
	t.Run("foreign key", func(t *testing.T) {
		err := Classify(errors.Wrap(gorm.ErrForeignKeyViolated, "delete"), "ошибка удаления")
		require.ErrorIs(t, err, ErrConstraint)
		require.False(t, errors.Is(err, ErrTransport))
	})
	t.Run("postgres class 23", func(t *testing.T) {
		err := Classify(&pgconn.PgError{Code: "23503"}, "ошибка удаления")
		require.ErrorIs(t, err, ErrConstraint)
	})
	t.Run("sqlite constraint text", func(t *testing.T) {
		err := Classify(errors.New("constraint failed: FOREIGN KEY constraint failed (787)"), "ошибка")
		require.True(t, IsConstraint(err))
	})
	t.Run("transport", func(t *testing.T) {
		err := Classify(errors.New("dial tcp: connection refused"), "ошибка")
		require.ErrorIs(t, err, ErrTransport)
	})
	t.Run("already classified", func(t *testing.T) {
		inner := Classify(gorm.ErrRecordNotFound, "inner")
		err := Classify(errors.Wrap(inner, "outer"), "outer")
		require.True(t, IsNotFound(err))
	})
}
