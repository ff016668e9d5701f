package database

import (
	"context"
	"testing"
)

func TestNewDynamoDBConfigFromEnv(t *testing.T) {
	t.Setenv("AWS_REGION", "sa-east-1")
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")
	t.Setenv("DYNAMODB_ENDPOINT", "http://localhost:8000")

	cfg, err := NewDynamoDBConfigFromEnv(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Region != "sa-east-1" {
		t.Fatalf("expected region sa-east-1, got %s", cfg.Region)
	}
	creds, err := cfg.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("unexpected credentials error: %v", err)
	}
	if creds.AccessKeyID != "local" {
		t.Fatalf("expected local credentials, got %s", creds.AccessKeyID)
	}
}
