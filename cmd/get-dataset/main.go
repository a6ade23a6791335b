package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/rs/zerolog"

	"github.com/menumatch/labeler/internal/config"
	"github.com/menumatch/labeler/internal/handler"
	"github.com/menumatch/labeler/internal/store"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("lambda", "get-dataset").Logger()

	cfg := config.Load()

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		logger.Fatal().Err(err).Msg("load AWS config")
	}

	gateway := store.New(dynamodb.NewFromConfig(awsCfg), cfg.MetadataTable)
	gateway.SetLogger(logger)

	lambda.Start(handler.NewDataset(cfg, gateway, logger).Handle)
}
