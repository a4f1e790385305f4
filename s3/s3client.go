package s3client

import (
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

type Provider interface {
	MakeBucket(ctx context.Context) error
	// DownloadFile возвращает false, если объекта в бакете нет
	DownloadFile(ctx context.Context, objectName, filePath string) (bool, error)
	UploadFile(ctx context.Context, objectName, filePath string) error
}

type Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	BucketName      string
}

func (c Config) IsConfigured() bool {
	return c.Endpoint != "" && c.BucketName != "" && c.AccessKeyID != ""
}

type s3client struct {
	minioClient *minio.Client
	bucketName  string
}

func NewClient(conf Config) (Provider, error) {
	minioClient, err := minio.New(conf.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(conf.AccessKeyID, conf.SecretAccessKey, ""),
		Secure: conf.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &s3client{minioClient: minioClient, bucketName: conf.BucketName}, nil
}

func (s s3client) MakeBucket(ctx context.Context) error {
	location := "us-east-1"
	exists, err := s.minioClient.BucketExists(ctx, s.bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.minioClient.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{Region: location})
}

func (s s3client) DownloadFile(ctx context.Context, objectName, filePath string) (bool, error) {
	err := s.minioClient.FGetObject(ctx, s.bucketName, objectName, filePath, minio.GetObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, errors.Wrapf(err, "ошибка загрузки объекта %s", objectName)
	}
	return true, nil
}

func (s s3client) UploadFile(ctx context.Context, objectName, filePath string) error {
	_, err := s.minioClient.FPutObject(ctx, s.bucketName, objectName, filePath, minio.PutObjectOptions{
		ContentType: "application/vnd.sqlite3",
	})
	if err != nil {
		return errors.Wrapf(err, "ошибка выгрузки объекта %s", objectName)
	}
	return nil
}
