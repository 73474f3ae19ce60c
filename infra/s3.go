package infra

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tnqbao/gau-document-service/config"
)

type S3Client struct {
	Client *s3.Client
}

func InitS3Client(cfg *config.EnvConfig) *S3Client {
	ctx := context.Background()

	var awsCfg aws.Config
	var err error
	if cfg.S3.AccessKeyID != "" && cfg.S3.SecretAccessKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.S3.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.S3.AccessKeyID,
				cfg.S3.SecretAccessKey,
				"",
			)),
		)
	} else {
		// default credential chain
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3.Region))
	}
	if err != nil {
		panic(fmt.Sprintf("Failed to load AWS config: %v", err))
	}

	var clientOpts []func(*s3.Options)
	if cfg.S3.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.S3.Endpoint)
			o.UsePathStyle = true // required for MinIO and similar services
		})
	}

	return &S3Client{Client: s3.NewFromConfig(awsCfg, clientOpts...)}
}
