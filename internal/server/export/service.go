// Package export writes a user's record to S3-compatible object storage and
// hands back a short-lived download link.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	sc "github.com/qianzhu/lifeplanner/internal/server/config"
	"github.com/qianzhu/lifeplanner/internal/server/records"
)

const urlValidity = 15 * time.Minute

type recordLoader interface {
	Load(ctx context.Context, userID string) (records.Fields, records.Origin, error)
}

type Service struct {
	records recordLoader
	config  *sc.Config
}

func NewService(recordService recordLoader, config *sc.Config) *Service {
	return &Service{records: recordService, config: config}
}

func storageKey(userID string) string {
	d := time.Now()
	return fmt.Sprintf("exports/%s/%d/%d/%d/%v.json", userID, d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *Service) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	}), nil
}

// Export uploads the user's sanitized record as a JSON object and returns a
// presigned GET URL valid for 15 minutes.
func (s *Service) Export(ctx context.Context, userID string) (string, error) {
	fields, _, err := s.records.Load(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("record load: %w", err)
	}

	body, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("record encode: %w", err)
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return "", fmt.Errorf("s3 client: %w", err)
	}

	bucket := s.config.S3Bucket
	key := storageKey(userID)
	contentType := "application/json"

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload: %w", err)
	}

	presignClient := s3.NewPresignClient(client)
	req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(urlValidity))
	if err != nil {
		return "", fmt.Errorf("s3 presign: %w", err)
	}

	return req.URL, nil
}
