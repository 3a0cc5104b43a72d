package lambda

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stahnma/pds-didweb/internal/commands"
	"github.com/stahnma/pds-didweb/internal/format"
	"go.uber.org/zap"
)

// Uploader is the subset of the S3 client used by the handler.
type Uploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewHandler returns a Lambda handler that collects the configured host's
// did:web repos and uploads them to S3 as JSON. A nil uploader is built from
// the default AWS configuration on first use.
func NewHandler(app *commands.App, uploader Uploader) func(context.Context, interface{}) (string, error) {
	return func(ctx context.Context, event interface{}) (string, error) {
		bucket, key := app.Config.S3Bucket, app.Config.S3ObjectKey
		if bucket == "" || key == "" {
			return "", errors.New("S3_BUCKET_NAME and S3_OBJECT_KEY environment variables must be set")
		}
		if strings.Contains(key, "%s") {
			key = fmt.Sprintf(key, time.Now().Format("2006-Jan-02"))
		}

		host := app.Config.ResolveHost(nil)
		res, err := app.Collect(ctx, host)
		if err != nil {
			return "", fmt.Errorf("collecting %s: %w", host, err)
		}

		body, err := format.MarshalIndent(res.Matches)
		if err != nil {
			return "", fmt.Errorf("encoding matches: %w", err)
		}

		if uploader == nil {
			cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(app.Config.AWSRegion))
			if err != nil {
				return "", fmt.Errorf("failed to load AWS config: %w", err)
			}
			uploader = s3.NewFromConfig(cfg)
		}

		_, err = uploader.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(body),
			ContentType: aws.String("application/json"),
		})
		if err != nil {
			return "", fmt.Errorf("failed to upload file to S3: %w", err)
		}

		if app.Logger != nil {
			app.Logger.Info("Uploaded did:web repos",
				zap.String("host", host),
				zap.Int("matched", len(res.Matches)),
				zap.String("bucket", bucket),
				zap.String("key", key))
		}
		return fmt.Sprintf("Uploaded %d did:web repos from %s to s3://%s/%s", len(res.Matches), host, bucket, key), nil
	}
}
