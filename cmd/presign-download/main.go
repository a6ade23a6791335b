package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/menumatch/labeler/internal/config"
	"github.com/menumatch/labeler/internal/handler"
	"github.com/menumatch/labeler/internal/signer"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("lambda", "presign-download").Logger()

	cfg := config.Load()

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		logger.Fatal().Err(err).Msg("load AWS config")
	}

	issuer := signer.New(s3.NewPresignClient(s3.NewFromConfig(awsCfg)), cfg.URLExpirationSeconds)
	issuer.SetLogger(logger)

	lambda.Start(handler.NewPresignDownload(cfg, issuer, logger).Handle)
}
