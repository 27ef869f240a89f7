package utils

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/pennsieve/customers-service/internal/config"
)

// LoadAWSConfig builds the AWS configuration the DynamoDB client is created from.
// An injected database secret replaces the default credential chain; in TEST and
// DOCKER environments with DYNAMODB_URL set, requests go to DynamoDB Local.
func LoadAWSConfig(ctx context.Context, cfg config.Config) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error

	if cfg.HasStaticCredentials() {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}

	if cfg.UsesLocalEndpoint() {
		opts = append(opts,
			awsconfig.WithRegion("us-east-1"),
			awsconfig.WithBaseEndpoint(cfg.DynamoDBURL))
		if !cfg.HasStaticCredentials() {
			opts = append(opts, awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider("test", "test", "")))
		}
	}

	return awsconfig.LoadDefaultConfig(ctx, opts...)
}
