package db

import (
	"context"
	"embed"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	dbmodels "sarah-testing/models/db"
)

//go:embed migrations/*.sql
var migrations embed.FS

func AutoMigrateDB() error {
	log.Info("Запуск миграций")
	if err := MigrateSchema(DB); err != nil {
		return err
	}
	if DB.Dialector.Name() == "postgres" {
		if err := runSQLMigrations(context.Background(), DB); err != nil {
			return err
		}
	}
	log.Info("Миграция прошла успешно")
	return nil
}

func MigrateSchema(db *gorm.DB) error {
	for _, model := range dbmodels.Models() {
		if err := db.AutoMigrate(model); err != nil {
			return errors.Wrapf(err, "ошибка создания структуры %T", model)
		}
	}
	return nil
}

// runSQLMigrations правки схемы, которые AutoMigrate не выполняет (изменение существующих ограничений)
func runSQLMigrations(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "ошибка получения соединения для миграций")
	}
	goose.SetBaseFS(migrations)
	goose.SetLogger(log.StandardLogger())
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "ошибка установки диалекта миграций")
	}
	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return errors.Wrap(err, "ошибка применения миграций")
	}
	return nil
}
