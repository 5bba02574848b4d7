package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
	log "github.com/sirupsen/logrus"
)

// Publisher uploads rendered reports to a S3 bucket.
type Publisher struct {
	uploader s3manageriface.UploaderAPI
	bucket   string
}

// NewPublisher creates a Publisher for bucket using the default AWS
// credential chain.
func NewPublisher(region, bucket string) (*Publisher, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, err
	}
	return &Publisher{uploader: s3manager.NewUploader(sess), bucket: bucket}, nil
}

// ObjectKey returns the default object key of a report.
func ObjectKey(cfg *Configuration, version string) string {
	return fmt.Sprintf("reports/%s/%s/%s.txt", cfg.Organization, cfg.Application, version)
}

// Publish uploads the report text under key.
func (p *Publisher) Publish(ctx context.Context, key, text string) error {
	_, err := p.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(text),
		ContentType: aws.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload report to bucket %s: %w", p.bucket, err)
	}
	log.Infof("Report published to s3://%s/%s", p.bucket, key)
	return nil
}
