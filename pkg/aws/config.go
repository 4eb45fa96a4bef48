package aws

import (
	"context"
	"fmt"
	"os"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

// DefaultRegion is used when neither the shared config nor AWS_REGION names one.
const DefaultRegion = "eu-west-1"

// Endpoint returns the LocalStack style override, if any. AWS_ENDPOINT wins over the
// older AWS_S3_ENDPOINT.
func Endpoint() string {
	if v := os.Getenv("AWS_ENDPOINT"); v != "" {
		return v
	}
	return os.Getenv("AWS_S3_ENDPOINT")
}

// LoadAWSConfig loads the default credential chain. When an endpoint override is set every
// client built from the returned config targets it instead of AWS.
func LoadAWSConfig(ctx context.Context) (sdkaws.Config, error) {
	var opts []func(*config.LoadOptions) error
	if endpoint := Endpoint(); endpoint != "" {
		opts = append(opts, config.WithBaseEndpoint(endpoint))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return cfg, fmt.Errorf("failed to load aws config: %w", err)
	}
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}
	return cfg, nil
}
