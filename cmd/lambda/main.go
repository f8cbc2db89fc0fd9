package main

import (
	"context"
	stdlog "log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/iliyamo/docdesk/internal/app"
	"github.com/iliyamo/docdesk/internal/config"
	"github.com/iliyamo/docdesk/internal/logger"
	"github.com/iliyamo/docdesk/internal/router"
)

func main() {
	cfg := config.Load()
	log, _, err := logger.New(logger.Config{Level: cfg.LogLevel})
	if err != nil {
		stdlog.Fatal(err)
	}

	a, err := app.New(context.Background(), cfg, log, prometheus.NewRegistry())
	if err != nil {
		log.WithError(err).Fatal("startup failed")
	}

	dispatch := router.Dispatch(a.Routes)
	lambda.Start(func(ctx context.Context, ev events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return dispatch(ctx, ev), nil
	})
}
