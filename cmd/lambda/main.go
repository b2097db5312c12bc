// Lambda entry point for the Terraform review agent.
//
// Build with GOOS=linux GOARCH=arm64 and ship the binary as "bootstrap" on
// the provided.al2023 runtime.
package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"terraform-review-agent/internal/config"
	"terraform-review-agent/internal/handler"
	"terraform-review-agent/internal/secrets"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(nil)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		log.Fatalf("load aws config: %v", err)
	}

	creds := secrets.NewCache(secretsmanager.NewFromConfig(awsCfg), cfg.SecretName, cfg.SecretKey)

	h, err := handler.New(cfg, creds)
	if err != nil {
		log.Fatalf("init handler: %v", err)
	}

	lambda.Start(h.Handle)
}
