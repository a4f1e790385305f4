package dbsync

import (
	"context"
	"os"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	s3client "sarah-testing/s3"
)

// Provider синхронизация файла локальной БД с бакетом
type Provider interface {
	Pull(ctx context.Context) error
	Push(ctx context.Context) error
}

// Instance nil, если синхронизация не настроена
var Instance Provider

func NewHandler(client s3client.Provider, objectName, localPath string) {
	Instance = New(client, objectName, localPath)
}

func New(client s3client.Provider, objectName, localPath string) Provider {
	return &impl{
		client:     client,
		objectName: objectName,
		localPath:  localPath,
	}
}

type impl struct {
	client     s3client.Provider
	objectName string
	localPath  string
	mu         sync.Mutex
}

func (i *impl) Pull(ctx context.Context) error {
	logger := log.WithField("object", i.objectName)
	if err := i.client.MakeBucket(ctx); err != nil {
		return errors.Wrap(err, "ошибка проверки бакета")
	}
	tmpPath := i.localPath + ".download"
	found, err := i.client.DownloadFile(ctx, i.objectName, tmpPath)
	if err != nil {
		return err
	}
	if !found {
		logger.Info("файла БД в бакете нет, используется локальный")
		return nil
	}
	if err = os.Rename(tmpPath, i.localPath); err != nil {
		return errors.Wrap(err, "ошибка замены локального файла БД")
	}
	logger.Info("файл БД загружен из бакета")
	return nil
}

func (i *impl) Push(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if _, err := os.Stat(i.localPath); err != nil {
		return errors.Wrap(err, "локальный файл БД недоступен")
	}
	if err := i.client.UploadFile(ctx, i.objectName, i.localPath); err != nil {
		return err
	}
	log.WithField("object", i.objectName).Debug("файл БД выгружен в бакет")
	return nil
}
