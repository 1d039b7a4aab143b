package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"socialite/internal/config"
	"socialite/internal/model"
)

// MaxPresignBatch caps one batch presign request.
const MaxPresignBatch = 10

// MediaService issues presigned PUT URLs against S3-compatible object
// storage (Cloudflare R2). Clients upload bytes directly to storage;
// media never transits this server.
type MediaService struct {
	presigner *s3.PresignClient
	bucket    string
	publicURL string
}

// NewMediaService constructs an S3-compatible presign client for R2.
func NewMediaService(ctx context.Context, cfg *config.Config) (*MediaService, error) {
	if cfg.StorageAccountID == "" || cfg.StorageAccessKeyID == "" || cfg.StorageSecretAccessKey == "" || cfg.StorageBucketName == "" || cfg.StoragePublicURL == "" {
		return nil, fmt.Errorf("missing object storage configuration")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.StorageAccessKeyID, cfg.StorageSecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for storage: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.StorageAccountID)
	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &MediaService{
		presigner: s3.NewPresignClient(s3Client),
		bucket:    cfg.StorageBucketName,
		publicURL: strings.TrimSuffix(cfg.StoragePublicURL, "/"),
	}, nil
}

// PresignUpload validates the declared type and size and returns a
// time-limited upload URL plus the public URL the object will have.
func (s *MediaService) PresignUpload(ctx context.Context, req model.PresignUploadRequest) (*model.PresignUploadResponse, error) {
	ext, ok := model.UploadExtension(req.ContentType)
	if !ok {
		return nil, model.ErrBadContentType
	}
	if req.FileSize <= 0 || req.FileSize > model.MaxUploadSizeBytes {
		return nil, model.ErrFileTooLarge
	}

	key := fmt.Sprintf("%s/%s%s", model.MediaFolder, uuid.NewString(), ext)

	presigned, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		ContentType:   aws.String(req.ContentType),
		ContentLength: aws.Int64(req.FileSize),
	}, s3.WithPresignExpires(model.PresignTTLSeconds*time.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	return &model.PresignUploadResponse{
		UploadURL: presigned.URL,
		PublicURL: fmt.Sprintf("%s/%s", s.publicURL, key),
		Key:       key,
		ExpiresIn: model.PresignTTLSeconds,
	}, nil
}

// PresignUploadBatch presigns several uploads in one call. The whole batch
// is validated before any URL is issued, so it succeeds or fails as a unit.
func (s *MediaService) PresignUploadBatch(ctx context.Context, req model.PresignUploadBatchRequest) (*model.PresignUploadBatchResponse, error) {
	if len(req.Items) == 0 || len(req.Items) > MaxPresignBatch {
		return nil, model.ErrTooManyPresigns
	}
	for _, item := range req.Items {
		if _, ok := model.UploadExtension(item.ContentType); !ok {
			return nil, model.ErrBadContentType
		}
		if item.FileSize <= 0 || item.FileSize > model.MaxUploadSizeBytes {
			return nil, model.ErrFileTooLarge
		}
	}

	out := &model.PresignUploadBatchResponse{
		Items: make([]model.PresignUploadResponse, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		resp, err := s.PresignUpload(ctx, item)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, *resp)
	}
	return out, nil
}
