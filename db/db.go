package db

import (
	"net/url"
	"strings"

	"github.com/glebarez/sqlite"
	gorm_logrus "github.com/onrik/gorm-logrus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect подключение к БД. При заданном localPath используется локальный файл sqlite, иначе postgres по dbURL
func Connect(dbURL, dbKey, localPath string, debugMode bool, migrate bool) (err error) {
	if DB != nil {
		return nil
	}
	var dialector gorm.Dialector
	if localPath != "" {
		dialector = sqlite.Open(LocalDSN(localPath))
	} else {
		dsn, err := PostgresDSN(dbURL, dbKey)
		if err != nil {
			return err
		}
		dialector = postgres.Open(dsn)
	}
	db, err := Open(dialector, debugMode)
	if err != nil {
		return err
	}
	if localPath != "" {
		// sqlite не допускает параллельной записи в один файл
		sqlDB, err := db.DB()
		if err != nil {
			return errors.Wrap(err, "Ошибка подключения к БД")
		}
		sqlDB.SetMaxOpenConns(1)
	}
	DB = db
	if migrate {
		if err = AutoMigrateDB(); err != nil {
			return err
		}
	}
	log.WithField("local", localPath != "").Info("Сервис успешно подключен к БД")
	return nil
}

func Open(dialector gorm.Dialector, debugMode bool) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gorm_logrus.New(),
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "Ошибка подключения к БД")
	}
	if debugMode {
		db.Logger = logger.Default.LogMode(logger.Info)
		return db.Debug(), nil
	}
	return db, nil
}

// LocalDSN строка подключения к файлу sqlite с включенной проверкой внешних ключей
func LocalDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// PostgresDSN подставляет ключ доступа в качестве пароля, если он задан отдельно
func PostgresDSN(dbURL, dbKey string) (string, error) {
	if dbURL == "" {
		return "", errors.New("не задан адрес БД (DATABASE_URL) и путь к локальной БД (DATABASE_LOCAL_PATH)")
	}
	if dbKey == "" {
		return dbURL, nil
	}
	u, err := url.Parse(dbURL)
	if err != nil {
		return "", errors.Wrap(err, "некорректный адрес БД")
	}
	user := "postgres"
	if u.User != nil && u.User.Username() != "" {
		user = u.User.Username()
	}
	u.User = url.UserPassword(user, dbKey)
	return u.String(), nil
}

func IsLocal() bool {
	return DB != nil && DB.Dialector.Name() == "sqlite"
}

func PingDB() error {
	db, err := DB.DB()
	if err != nil {
		return err
	}
	if err = db.Ping(); err != nil {
		return err
	}
	return nil
}

func Close() {
	if DB == nil {
		return
	}
	db, err := DB.DB()
	if err != nil {
		return
	}
	if err = db.Close(); err != nil {
		log.WithError(err).Warn("ошибка закрытия соединения с БД")
	}
	DB = nil
}
