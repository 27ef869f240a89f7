package test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
)

// LocalClient returns a client for DynamoDB Local, skipping the test when
// DYNAMODB_URL is not set.
func LocalClient(t *testing.T) *dynamodb.Client {
	t.Helper()
	testDBUri := os.Getenv("DYNAMODB_URL")
	if testDBUri == "" {
		t.Skip("DYNAMODB_URL not set, skipping DynamoDB Local test")
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion("us-east-1"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("dummy", "dummy_secret", "1234")),
		config.WithBaseEndpoint(testDBUri),
	)
	if err != nil {
		t.Fatalf("error loading DynamoDB Local config: %v", err)
	}
	return dynamodb.NewFromConfig(cfg)
}

// GenerateTestId returns a short unique suffix for table names and record ids.
func GenerateTestId() string {
	id := uuid.New().String()
	return id[len(id)-8:]
}

func DeleteTable(dynamoDBClient *dynamodb.Client, tableName string) error {
	_, err := dynamoDBClient.DeleteTable(context.TODO(), &dynamodb.DeleteTableInput{
		TableName: aws.String(tableName)})
	if err != nil {
		log.Printf("couldn't delete table %v. Here's why: %v\n", tableName, err)
	}
	return err
}
