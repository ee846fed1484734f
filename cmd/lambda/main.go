package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"kids-activity-normalizer/internal/models"
	"kids-activity-normalizer/internal/services"
)

// NormalizationEvent is the EventBridge trigger payload: one raw batch for
// one provider, already staged in S3 by the scraping/upload layer.
type NormalizationEvent struct {
	ProviderID    string `json:"provider_id"`
	RawBatchKey   string `json:"raw_batch_key"`
	MappingFormat string `json:"mapping_format,omitempty"` // defaults to legacy-scraper
	MappingFile   string `json:"mapping_file,omitempty"`   // optional YAML override
}

// NormalizationResponse represents the function response
type NormalizationResponse struct {
	Success          bool     `json:"success"`
	Message          string   `json:"message"`
	RunID            string   `json:"run_id"`
	ProviderID       string   `json:"provider_id"`
	TotalRecords     int      `json:"total_records"`
	NormalizedCount  int      `json:"normalized_count"`
	SkippedCount     int      `json:"skipped_count"`
	UpsertedCount    int      `json:"upserted_count"`
	MarkedInactive   int      `json:"marked_inactive"`
	QualityScore     float64  `json:"quality_score"`
	ProcessingTimeMS int64    `json:"processing_time_ms"`
	UploadedFiles    []string `json:"uploaded_files,omitempty"`
	Errors           []string `json:"errors,omitempty"`
}

// RunReport is the operator-facing report uploaded after each run
type RunReport struct {
	RunID      string                         `json:"run_id"`
	ProviderID string                         `json:"provider_id"`
	StartedAt  time.Time                      `json:"started_at"`
	FinishedAt time.Time                      `json:"finished_at"`
	Metrics    *services.NormalizationMetrics `json:"metrics"`
}

func HandleNormalization(ctx context.Context, event NormalizationEvent) (*NormalizationResponse, error) {
	start := time.Now()
	runID := models.NewRunID()
	response := &NormalizationResponse{
		RunID:      runID,
		ProviderID: event.ProviderID,
	}

	if event.ProviderID == "" || event.RawBatchKey == "" {
		response.Message = "provider_id and raw_batch_key are required"
		return response, fmt.Errorf("provider_id and raw_batch_key are required")
	}

	mappingConfig, err := resolveMappingConfig(event)
	if err != nil {
		response.Message = err.Error()
		return response, err
	}

	s3Client, err := services.NewS3Client()
	if err != nil {
		response.Message = fmt.Sprintf("failed to create S3 client: %v", err)
		return response, err
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		response.Message = fmt.Sprintf("failed to load AWS config: %v", err)
		return response, err
	}

	activitiesTable := os.Getenv("ACTIVITIES_TABLE")
	if activitiesTable == "" {
		activitiesTable = "kids-activities"
	}
	dynamoService := services.NewDynamoDBService(dynamodb.NewFromConfig(cfg), activitiesTable)

	log.Printf("Run %s: normalizing batch %s for provider %s", runID, event.RawBatchKey, event.ProviderID)

	raws, err := s3Client.DownloadRawBatch(ctx, event.RawBatchKey)
	if err != nil {
		response.Message = fmt.Sprintf("failed to download raw batch: %v", err)
		return response, err
	}
	response.TotalRecords = len(raws)

	metrics := services.GetNormalizationMetrics()
	metrics.Reset()

	normalizer := services.NewNormalizationService()
	provider := services.ProviderConfig{
		ProviderID:   event.ProviderID,
		SourceFormat: event.MappingFormat,
	}

	activities := normalizer.NormalizeBatch(ctx, raws, mappingConfig, provider)
	response.NormalizedCount = len(activities)
	response.SkippedCount = len(raws) - len(activities)

	seen, upsertErrs := dynamoService.UpsertBatch(ctx, event.ProviderID, activities)
	response.UpsertedCount = len(seen)
	for _, upsertErr := range upsertErrs {
		response.Errors = append(response.Errors, upsertErr.Error())
	}

	marked, err := dynamoService.MarkMissingInactive(ctx, event.ProviderID, seen)
	if err != nil {
		response.Errors = append(response.Errors, err.Error())
	}
	response.MarkedInactive = marked

	canonicalKey := services.CanonicalBatchKey(event.ProviderID, start)
	if _, err := s3Client.UploadCanonicalActivities(ctx, event.ProviderID, activities, canonicalKey); err != nil {
		response.Errors = append(response.Errors, err.Error())
	} else {
		response.UploadedFiles = append(response.UploadedFiles, canonicalKey)
	}

	snapshot := metrics.Snapshot()
	if pm, ok := snapshot.ProviderMetrics[event.ProviderID]; ok {
		response.QualityScore = pm.QualityScore
	}

	report := RunReport{
		RunID:      runID,
		ProviderID: event.ProviderID,
		StartedAt:  start,
		FinishedAt: time.Now(),
		Metrics:    snapshot,
	}
	reportKey := services.RunReportKey(runID)
	if _, err := s3Client.UploadRunReport(ctx, report, reportKey); err != nil {
		response.Errors = append(response.Errors, err.Error())
	} else {
		response.UploadedFiles = append(response.UploadedFiles, reportKey)
	}

	response.Success = len(response.Errors) == 0
	response.ProcessingTimeMS = time.Since(start).Milliseconds()
	response.Message = fmt.Sprintf("normalized %d/%d records for %s",
		response.NormalizedCount, response.TotalRecords, event.ProviderID)

	log.Printf("Run %s finished: %s (quality %.1f)", runID, response.Message, response.QualityScore)
	return response, nil
}

// resolveMappingConfig picks the field mapping for this batch: an explicit
// YAML file wins, then the named built-in format, then legacy-scraper.
func resolveMappingConfig(event NormalizationEvent) (services.FieldMappingConfig, error) {
	if event.MappingFile != "" {
		config, err := services.LoadFieldMappingConfig(event.MappingFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load mapping file: %w", err)
		}
		return config, nil
	}

	format := event.MappingFormat
	if format == "" {
		format = services.ProviderFormatLegacy
	}
	config, ok := services.BuiltinFieldMappings(format)
	if !ok {
		return nil, fmt.Errorf("unknown mapping format '%s'", format)
	}
	return config, nil
}

func main() {
	lambda.Start(HandleNormalization)
}
