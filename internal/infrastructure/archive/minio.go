// Package archive stores finished assessment documents in object storage so
// auditors can retrieve them independently of the API.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"pqcguard/internal/config"
	"pqcguard/internal/domain/models"
	"pqcguard/pkg/logger"
)

// ReportArchive writes auditor reports and OSCAL documents to a bucket.
type ReportArchive struct {
	client *minio.Client
	bucket string
	logger *logger.Logger
}

// NewMinio connects to the object store and ensures the bucket exists.
func NewMinio(ctx context.Context, cfg config.ArchiveConfig, log *logger.Logger) (*ReportArchive, error) {
	log = log.WithComponent("archive")

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		log.Info().Str("bucket", cfg.Bucket).Msg("created archive bucket")
	}

	log.Info().Str("endpoint", cfg.Endpoint).Str("bucket", cfg.Bucket).Msg("connected to report archive")

	return &ReportArchive{
		client: client,
		bucket: cfg.Bucket,
		logger: log,
	}, nil
}

// StoreRun archives the complete run document under runs/<id>.json and
// returns the object key.
func (a *ReportArchive) StoreRun(ctx context.Context, run models.AssessmentRun) (string, error) {
	return a.putJSON(ctx, fmt.Sprintf("runs/%s.json", run.ID), run)
}

// StoreReport archives the auditor report under reports/<run id>.json.
func (a *ReportArchive) StoreReport(ctx context.Context, runID string, report models.AuditorReport) (string, error) {
	return a.putJSON(ctx, fmt.Sprintf("reports/%s.json", runID), report)
}

// StoreResults archives the OSCAL assessment-results document.
func (a *ReportArchive) StoreResults(ctx context.Context, runID string, doc models.AssessmentResultsDocument) (string, error) {
	return a.putJSON(ctx, fmt.Sprintf("results/%s.json", runID), doc)
}

func (a *ReportArchive) putJSON(ctx context.Context, key string, value any) (string, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}

	_, err = a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", fmt.Errorf("failed to store %s: %w", key, err)
	}

	a.logger.Debug().Str("key", key).Int("bytes", len(data)).Msg("archived document")
	return key, nil
}
