package deploy

import (
	"context"
	"errors"
	"os"

	"git.handmade.network/hmn/mashinka/src/config"
	"git.handmade.network/hmn/mashinka/src/logging"
	"git.handmade.network/hmn/mashinka/src/oops"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/aws/smithy-go/middleware"
	smithyhttp "github.com/aws/smithy-go/transport/http"
)

// Uploader puts the archive at archivePath into storage under key.
type Uploader interface {
	Upload(ctx context.Context, key string, archivePath string) error
}

// S3Uploader uploads to any S3-compatible object storage.
type S3Uploader struct {
	client  *s3.Client
	bucket  string
	extract bool
}

var _ Uploader = &S3Uploader{}

// NewS3Uploader builds a path-style client for cfg.Endpoint, or for AWS when
// no endpoint is set.
func NewS3Uploader(ctx context.Context, cfg config.DeployConfig) (*S3Uploader, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, awsconfig.WithEndpointResolver(aws.EndpointResolverFunc(func(service, region string) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL: cfg.Endpoint,
			}, nil
		})))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, oops.New(err, "failed to configure object storage client")
	}

	return &S3Uploader{
		client: s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.UsePathStyle = true
		}),
		bucket:  cfg.Bucket,
		extract: cfg.ExtractArchive,
	}, nil
}

// Upload puts the archive in the bucket, creating the bucket if it doesn't
// exist yet. With extraction on, the storage unpacks the archive into the
// bucket instead of keeping it as one object.
func (u *S3Uploader) Upload(ctx context.Context, key string, archivePath string) error {
	err := u.put(ctx, key, archivePath)
	if err != nil {
		var apiError smithy.APIError
		if errors.As(err, &apiError) && apiError.ErrorCode() == "NoSuchBucket" {
			logging.Info().Str("bucket", u.bucket).Msg("creating missing bucket")
			_, err := u.client.CreateBucket(ctx, &s3.CreateBucketInput{
				Bucket: &u.bucket,
			})
			if err != nil {
				return oops.New(err, "failed to create bucket %s", u.bucket)
			}

			err = u.put(ctx, key, archivePath)
			if err != nil {
				return oops.New(err, "failed to upload archive")
			}
		} else {
			return oops.New(err, "failed to upload archive")
		}
	}
	return nil
}

func (u *S3Uploader) put(ctx context.Context, key string, archivePath string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	var optFns []func(*s3.Options)
	if u.extract {
		optFns = append(optFns, func(o *s3.Options) {
			o.APIOptions = append(o.APIOptions, addExtractArchive)
		})
	}

	contentType := "application/gzip"
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &u.bucket,
		Key:         &key,
		Body:        f,
		ContentType: &contentType,
	}, optFns...)
	return err
}

// ExtractArchiveParam is the query parameter asking the storage to unpack an
// uploaded tar.gz.
const ExtractArchiveParam = "extract-archive"

func addExtractArchive(stack *middleware.Stack) error {
	return stack.Build.Add(middleware.BuildMiddlewareFunc("ExtractArchive", func(
		ctx context.Context, in middleware.BuildInput, next middleware.BuildHandler,
	) (middleware.BuildOutput, middleware.Metadata, error) {
		if req, ok := in.Request.(*smithyhttp.Request); ok {
			query := req.URL.Query()
			query.Set(ExtractArchiveParam, "tar.gz")
			req.URL.RawQuery = query.Encode()
		}
		return next.HandleBuild(ctx, in)
	}), middleware.After)
}
