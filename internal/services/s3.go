package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"kids-activity-normalizer/internal/models"
)

// S3Client handles batch storage: raw record batches land under raw/,
// canonical outputs under canonical/, and run reports under reports/.
type S3Client struct {
	client     *s3.Client
	bucketName string
	region     string
}

// S3Config holds configuration for the S3 client
type S3Config struct {
	BucketName string
	Region     string
	Profile    string // AWS profile to use
}

// S3UploadResult represents the result of an S3 upload operation
type S3UploadResult struct {
	Key         string    `json:"key"`
	Location    string    `json:"location"`
	ETag        string    `json:"etag"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
	ContentType string    `json:"content_type"`
}

// NewS3Client creates a new S3 client with AWS SDK v2
func NewS3Client() (*S3Client, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	bucketName := os.Getenv("S3_BUCKET_NAME")
	if bucketName == "" {
		bucketName = "kids-activity-normalizer-data"
	}

	return &S3Client{
		client:     s3.NewFromConfig(cfg),
		bucketName: bucketName,
		region:     cfg.Region,
	}, nil
}

// NewS3ClientWithConfig creates an S3 client with custom configuration
func NewS3ClientWithConfig(s3Config S3Config) (*S3Client, error) {
	var cfg aws.Config
	var err error

	if s3Config.Profile != "" {
		cfg, err = config.LoadDefaultConfig(
			context.TODO(),
			config.WithSharedConfigProfile(s3Config.Profile),
		)
	} else {
		cfg, err = config.LoadDefaultConfig(context.TODO())
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if s3Config.Region != "" {
		cfg.Region = s3Config.Region
	}

	return &S3Client{
		client:     s3.NewFromConfig(cfg),
		bucketName: s3Config.BucketName,
		region:     cfg.Region,
	}, nil
}

// DownloadRawBatch fetches a batch of raw activity records stored as a
// JSON array. Upstream scrapers and the vendor upload layer both write
// this shape.
func (s *S3Client) DownloadRawBatch(ctx context.Context, key string) ([]models.RawRecord, error) {
	key = strings.TrimPrefix(key, "/")

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download raw batch %s: %w", key, err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read raw batch %s: %w", key, err)
	}

	var raws []models.RawRecord
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("failed to parse raw batch %s: %w", key, err)
	}

	return raws, nil
}

// UploadCanonicalActivities uploads a normalized batch as formatted JSON
func (s *S3Client) UploadCanonicalActivities(ctx context.Context, providerID string, activities []models.CanonicalActivity, key string) (*S3UploadResult, error) {
	output := models.CanonicalBatchOutput{
		Metadata:   models.NewBatchMetadata(providerID, len(activities)),
		Activities: activities,
	}

	jsonData, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal canonical activities to JSON: %w", err)
	}

	return s.uploadJSON(ctx, jsonData, key)
}

// UploadRunReport uploads a normalization run report (metrics snapshot plus
// run identity) for operator review.
func (s *S3Client) UploadRunReport(ctx context.Context, report interface{}, key string) (*S3UploadResult, error) {
	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal run report to JSON: %w", err)
	}

	return s.uploadJSON(ctx, jsonData, key)
}

// uploadJSON is a helper method to upload JSON data to S3
func (s *S3Client) uploadJSON(ctx context.Context, data []byte, key string) (*S3UploadResult, error) {
	key = strings.TrimPrefix(key, "/")

	result, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", key, err)
	}

	etag := ""
	if result.ETag != nil {
		etag = *result.ETag
	}

	return &S3UploadResult{
		Key:         key,
		Location:    fmt.Sprintf("s3://%s/%s", s.bucketName, key),
		ETag:        etag,
		Size:        int64(len(data)),
		UploadedAt:  time.Now(),
		ContentType: "application/json",
	}, nil
}

// CanonicalBatchKey builds the S3 key for a provider's canonical output
func CanonicalBatchKey(providerID string, runAt time.Time) string {
	return fmt.Sprintf("canonical/%s/%s.json", providerID, runAt.Format("2006-01-02T15-04-05"))
}

// RunReportKey builds the S3 key for a run report
func RunReportKey(runID string) string {
	return fmt.Sprintf("reports/%s.json", runID)
}
