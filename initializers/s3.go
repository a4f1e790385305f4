package initializers

import (
	"context"

	log "github.com/sirupsen/logrus"
	"sarah-testing/config"
	dbsync "sarah-testing/lib/db-sync"
	s3client "sarah-testing/s3"
)

// InitS3 включает синхронизацию локальной БД с бакетом и подтягивает последнюю копию файла
func InitS3(ctx context.Context) {
	if config.Conf.Database.LocalPath == "" {
		return
	}
	conf := s3client.Config{
		Endpoint:        config.Conf.S3.Endpoint,
		AccessKeyID:     config.Conf.S3.AccessKeyID,
		SecretAccessKey: config.Conf.S3.SecretAccessKey,
		UseSSL:          *config.Conf.S3.UseSSL,
		BucketName:      config.Conf.S3.BucketName,
	}
	if !conf.IsConfigured() {
		log.Info("S3 не настроен, синхронизация файла БД отключена")
		return
	}
	client, err := s3client.NewClient(conf)
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3")
		return
	}
	dbsync.NewHandler(client, config.Conf.S3.DBObjectName, config.Conf.Database.LocalPath)
	if err = dbsync.Instance.Pull(ctx); err != nil {
		log.WithError(err).Error("Ошибка загрузки файла БД из S3, используется локальный")
		return
	}
	log.Info("S3 клиент успешно инициализирован")
}
