package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/sony/gobreaker"

	"github.com/osint-hub/backend/internal/util"
	"github.com/osint-hub/backend/pkg/common"
	"github.com/osint-hub/backend/pkg/logger"
	"github.com/osint-hub/backend/pkg/store"
)

// deleteBatchSize is the most keys a single DeleteObjects call accepts.
const deleteBatchSize = 1000

// ObjectStore is the object storage used for avatars, entity images and
// entity documents. Failures are returned as *common.RemoteError, except
// a missing key which wraps common.ErrNotFound.
type ObjectStore interface {
	PutFile(ctx context.Context, prefix, name, id string, body io.ReadSeeker, contentType string) (string, error)
	GetFile(ctx context.Context, key string) ([]byte, error)
	DeleteFile(ctx context.Context, key string) error
	DeleteFolder(ctx context.Context, prefix string) error
	DeleteKeys(ctx context.Context, keys []string) error
	ListFilesWithPrefix(ctx context.Context, prefix string) ([]string, error)
	GenerateDownloadLink(ctx context.Context, key string) (string, error)
	PublicURL(key string) string
}

// S3Storage implements ObjectStore on an S3 compatible bucket. All calls go
// through a circuit breaker so an unreachable bucket fails fast.
type S3Storage struct {
	client         *s3.Client
	bucket         string
	publicEndpoint string
	breaker        *gobreaker.CircuitBreaker
}

// EntityPrefix is the folder holding every object of one entity.
func EntityPrefix(entityID string) string {
	return fmt.Sprintf("entities/%s", entityID)
}

func AvatarPrefix(entityID string) string {
	return EntityPrefix(entityID) + "/avatar"
}

func ImagePrefix(entityID string) string {
	return EntityPrefix(entityID) + "/images"
}

func DocumentPrefix(entityID string) string {
	return EntityPrefix(entityID) + "/documents"
}

func NewS3Client(ctx context.Context) (*S3Storage, error) {
	region := util.GetEnv("AWS_REGION")
	endpoint := util.GetEnv("AWS_ENDPOINT")
	accessKey := util.GetEnv("AWS_ACCESS_KEY")
	secretKey := util.GetEnv("AWS_SECRET_KEY")
	bucket := util.GetEnv("AWS_BUCKET")
	if bucket == "" {
		return nil, errors.New("missing AWS_BUCKET")
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKey,
			secretKey,
			"",
		)),
	}
	if endpoint != "" {
		opts = append(opts, config.WithBaseEndpoint(endpoint))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	publicEndpoint := util.GetEnv("AWS_PUBLIC_ENDPOINT")
	if publicEndpoint == "" {
		publicEndpoint = endpoint
	}
	return &S3Storage{
		client:         client,
		bucket:         bucket,
		publicEndpoint: strings.TrimSuffix(publicEndpoint, "/"),
		breaker:        NewBreaker("s3"),
	}, nil
}

// NewBreaker returns the breaker guarding object storage calls. It opens
// once at least 5 calls were made and 80% of them failed in the interval.
// Missing objects do not count as failures.
func NewBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, common.ErrNotFound)
		},
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.8
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})
}

func (s *S3Storage) execute(op string, fn func() (any, error)) (any, error) {
	res, err := s.breaker.Execute(fn)
	switch {
	case errors.Is(err, common.ErrNotFound):
		return nil, err
	case err != nil:
		return nil, common.NewRemoteError(op, err)
	}
	return res, nil
}

// missingObject maps the SDK's missing key errors onto common.ErrNotFound.
func missingObject(key string, err error) error {
	var noKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noKey) || errors.As(err, &notFound) {
		return fmt.Errorf("object %s: %w", key, common.ErrNotFound)
	}
	return err
}

func (s *S3Storage) GetFile(ctx context.Context, key string) ([]byte, error) {
	res, err := s.execute("get object", func() (any, error) {
		result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			if missing := missingObject(key, err); missing != err {
				return nil, missing
			}
			return nil, fmt.Errorf("failed to get file from S3: %w", err)
		}
		defer result.Body.Close()

		buf := new(bytes.Buffer)
		if _, err := io.Copy(buf, result.Body); err != nil {
			return nil, fmt.Errorf("failed to read file contents: %w", err)
		}
		return buf.Bytes(), nil
	})
	if err != nil {
		return nil, err
	}
	return res.([]byte), nil
}

// PutFile stores body as <prefix>/<id>.<ext of name> and returns the key.
func (s *S3Storage) PutFile(ctx context.Context, prefix, name, id string, body io.ReadSeeker, contentType string) (string, error) {
	key := ObjectKey(prefix, name, id)
	if contentType == "" {
		contentType = mime.TypeByExtension(path.Ext(key))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.execute("put object", func() (any, error) {
		return s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			Body:        body,
			ContentType: aws.String(contentType),
		})
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

// ObjectKey builds the key PutFile stores an upload under.
func ObjectKey(prefix, name, id string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	if ext == "" {
		return fmt.Sprintf("%s/%s", prefix, id)
	}
	return fmt.Sprintf("%s/%s.%s", prefix, id, ext)
}

func (s *S3Storage) DeleteFile(ctx context.Context, key string) error {
	_, err := s.execute("delete object", func() (any, error) {
		return s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
	})
	return err
}

// PublicURL is the unsigned URL of key on the public endpoint.
func (s *S3Storage) PublicURL(key string) string {
	return PublicURL(s.publicEndpoint, s.bucket, key)
}

func PublicURL(endpoint, bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(endpoint, "/"), bucket, strings.TrimPrefix(key, "/"))
}

func (s *S3Storage) GenerateDownloadLink(ctx context.Context, key string) (string, error) {
	publicURL, err := url.Parse(s.publicEndpoint)
	if err != nil || publicURL.Scheme == "" || publicURL.Host == "" {
		return "", fmt.Errorf("invalid AWS_PUBLIC_ENDPOINT: %s", s.publicEndpoint)
	}
	prefix := strings.TrimSuffix(publicURL.Path, "/")

	// Presign against the public host so the signature matches the Host
	// header the client sends.
	publicBaseEndpoint := fmt.Sprintf("%s://%s", publicURL.Scheme, publicURL.Host)
	presignClientS3 := s3.NewFromConfig(
		aws.Config{
			Region:      s.client.Options().Region,
			Credentials: s.client.Options().Credentials,
			HTTPClient:  s.client.Options().HTTPClient,
		},
		func(o *s3.Options) {
			o.BaseEndpoint = aws.String(publicBaseEndpoint)
			o.UsePathStyle = true
		},
	)

	presigner := s3.NewPresignClient(presignClientS3)
	out, err := presigner.PresignGetObject(
		ctx,
		&s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		},
		s3.WithPresignExpires(15*time.Minute),
	)
	if err != nil {
		return "", common.NewRemoteError("presign object", err)
	}

	if prefix != "" {
		signedURL, parseErr := url.Parse(out.URL)
		if parseErr != nil {
			return "", fmt.Errorf("failed to parse presigned url: %w", parseErr)
		}
		signedURL.Path = prefix + signedURL.Path
		return signedURL.String(), nil
	}

	return out.URL, nil
}

// DeleteFolder removes every object below prefix.
func (s *S3Storage) DeleteFolder(ctx context.Context, prefix string) error {
	keys, err := s.ListFilesWithPrefix(ctx, prefix)
	if err != nil {
		return err
	}
	return s.DeleteKeys(ctx, keys)
}

// DeleteKeys removes keys in batches DeleteObjects accepts.
func (s *S3Storage) DeleteKeys(ctx context.Context, keys []string) error {
	keys = store.DedupeStrings(keys)
	return store.ChunkRange(len(keys), deleteBatchSize, func(start, end int) error {
		objects := make([]types.ObjectIdentifier, 0, end-start)
		for _, k := range keys[start:end] {
			objects = append(objects, types.ObjectIdentifier{Key: aws.String(k)})
		}
		_, err := s.execute("delete objects", func() (any, error) {
			return s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
				Bucket: aws.String(s.bucket),
				Delete: &types.Delete{
					Objects: objects,
					Quiet:   aws.Bool(true),
				},
			})
		})
		return err
	})
}

func (s *S3Storage) ListFilesWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	listInput := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	}

	for {
		res, err := s.execute("list objects", func() (any, error) {
			return s.client.ListObjectsV2(ctx, listInput)
		})
		if err != nil {
			return nil, err
		}
		listOutput := res.(*s3.ListObjectsV2Output)

		for _, obj := range listOutput.Contents {
			if obj.Key != nil {
				keys = append(keys, *obj.Key)
			}
		}

		if listOutput.IsTruncated != nil && *listOutput.IsTruncated {
			listInput.ContinuationToken = listOutput.NextContinuationToken
		} else {
			break
		}
	}

	return keys, nil
}
