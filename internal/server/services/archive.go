package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/accmachine/internal/common"
	sc "github.com/dmitrijs2005/accmachine/internal/server/config"
	"github.com/dmitrijs2005/accmachine/internal/server/models"
	"github.com/dmitrijs2005/accmachine/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// ArchiveService hands out presigned object storage URLs for account
// exports. The server never touches archive bodies, clients upload and
// download directly against the presigned URLs.
type ArchiveService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewArchiveService(db *sql.DB, repomanager repomanager.RepositoryManager, config *sc.Config) *ArchiveService {
	return &ArchiveService{
		db:          db,
		repomanager: repomanager,
		config:      config,
	}
}

func GetRandomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("users/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *ArchiveService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,     // MINIO_ROOT_USER
			s.config.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

func (s *ArchiveService) getPresignedPutUrl(ctx context.Context, key string) (string, error) {

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	// Presigned PUT
	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))

	if err != nil {
		return "", err
	}

	return req.URL, nil
}

func (s *ArchiveService) getPresignedGetUrl(ctx context.Context, key string) (string, error) {

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	// Presigned GET
	reg, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}

	return reg.URL, nil
}

// PresignPut registers a pending archive for userID and returns its storage
// key together with a presigned PUT URL the client uploads the file to.
func (s *ArchiveService) PresignPut(ctx context.Context, userID string, filename string) (string, string, error) {

	key := GetRandomStorageKey()

	url, err := s.getPresignedPutUrl(ctx, key)
	if err != nil {
		return "", "", fmt.Errorf("error presigning upload: %v", err)
	}

	repo := s.repomanager.Archives(s.db)
	_, err = repo.Create(ctx, &models.Archive{
		UserID:     userID,
		StorageKey: key,
		Filename:   filename,
	})
	if err != nil {
		return "", "", fmt.Errorf("error creating archive: %v", err)
	}

	return key, url, nil
}

// Complete marks the archive behind key as uploaded and records its size.
// The key must belong to userID, foreign keys read as not found.
func (s *ArchiveService) Complete(ctx context.Context, userID string, key string, size int64) error {

	repo := s.repomanager.Archives(s.db)

	archive, err := repo.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error getting archive: %v", err)
	}

	if archive.UserID != userID {
		return common.ErrorNotFound
	}

	err = repo.MarkUploaded(ctx, archive.ID, size)
	if err != nil {
		return fmt.Errorf("error updating archive: %v", err)
	}

	return nil
}

// PresignGet returns a presigned download URL for an uploaded archive of
// userID.
func (s *ArchiveService) PresignGet(ctx context.Context, userID string, key string) (string, error) {

	repo := s.repomanager.Archives(s.db)

	archive, err := repo.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("error getting archive: %v", err)
	}

	if archive.UserID != userID {
		return "", common.ErrorNotFound
	}

	url, err := s.getPresignedGetUrl(ctx, archive.StorageKey)
	if err != nil {
		return "", fmt.Errorf("error presigning download: %v", err)
	}

	return url, nil
}

// List returns the archives of userID, newest first.
func (s *ArchiveService) List(ctx context.Context, userID string) ([]*models.Archive, error) {

	repo := s.repomanager.Archives(s.db)

	list, err := repo.GetAllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing archives: %v", err)
	}

	return list, nil
}
