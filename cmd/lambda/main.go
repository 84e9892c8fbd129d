package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"

	"tv-alert-webhook/internal/application/ingestion"
	"tv-alert-webhook/internal/infrastructure/config"
	"tv-alert-webhook/internal/infrastructure/logging"
	"tv-alert-webhook/internal/infrastructure/persistence/dynamo"
	"tv-alert-webhook/internal/interface/lambdaapi"
)

func main() {
	cfg, err := config.LoadFromFile("config.yaml")
	if err != nil {
		fallback := logging.NewLogger(logging.Config{})
		fallback.Fatal().Err(err).Msg("load config failed")
	}
	logger := logging.NewLogger(logging.Config{Level: cfg.Log.Level})

	awsCfg := aws.NewConfig()
	if cfg.Store.Region != "" {
		awsCfg = awsCfg.WithRegion(cfg.Store.Region)
	}
	sess := session.Must(session.NewSession(awsCfg))
	store := dynamo.NewStore(dynamodb.New(sess), cfg.Store.Table)

	svc := ingestion.NewService(store, logger, nil)
	handler := lambdaapi.New(svc, logger, cfg.HTTP.DefaultRecent)

	logger.Info().Str("table", cfg.Store.Table).Msg("webhook handler cold start")
	lambda.Start(handler.Handle)
}
