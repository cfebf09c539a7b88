// Package cloud adapts the AWS SDK clients used by the service: S3 for
// submission payloads, SES for notifications and Secrets Manager for
// database credentials.
package cloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	"tabela/internal/app/server/config"
)

// Clients bundles the SDK clients built from one shared aws.Config.
type Clients struct {
	S3      *s3.Client
	SES     *sesv2.Client
	Secrets *secretsmanager.Client
}

// NewClients loads the default credential chain. A non-empty endpoint
// points every client at it (LocalStack and similar).
func NewClients(ctx context.Context, cfg config.AWS) (*Clients, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	var endpoint *string
	if cfg.Endpoint != "" {
		endpoint = aws.String(cfg.Endpoint)
	}

	return &Clients{
		S3: s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if endpoint != nil {
				o.BaseEndpoint = endpoint
				o.UsePathStyle = true
			}
		}),
		SES: sesv2.NewFromConfig(awsCfg, func(o *sesv2.Options) {
			o.BaseEndpoint = endpoint
		}),
		Secrets: secretsmanager.NewFromConfig(awsCfg, func(o *secretsmanager.Options) {
			o.BaseEndpoint = endpoint
		}),
	}, nil
}
