package repository

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoDBAPI is the subset of *dynamodb.Client the repositories use.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

var _ DynamoDBAPI = (*dynamodb.Client)(nil)

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func nowString() string {
	return formatTime(time.Now())
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

// updateBuilder assembles a SET expression with placeholder names so
// reserved words such as "status" are safe.
type updateBuilder struct {
	sets   []string
	names  map[string]string
	values map[string]types.AttributeValue
}

func newUpdateBuilder() *updateBuilder {
	return &updateBuilder{
		names:  map[string]string{},
		values: map[string]types.AttributeValue{},
	}
}

func (b *updateBuilder) set(attr string, v types.AttributeValue) *updateBuilder {
	b.names["#"+attr] = attr
	b.values[":"+attr] = v
	b.sets = append(b.sets, "#"+attr+" = :"+attr)
	return b
}

func (b *updateBuilder) setString(attr, v string) *updateBuilder {
	return b.set(attr, &types.AttributeValueMemberS{Value: v})
}

// setIfNotEmpty skips empty strings; GSI key attributes must never hold "".
func (b *updateBuilder) setIfNotEmpty(attr, v string) *updateBuilder {
	if v == "" {
		return b
	}
	return b.setString(attr, v)
}

func (b *updateBuilder) name(attr string) string {
	b.names["#"+attr] = attr
	return "#" + attr
}

func (b *updateBuilder) value(placeholder string, v types.AttributeValue) string {
	b.values[":"+placeholder] = v
	return ":" + placeholder
}

func (b *updateBuilder) expression() string {
	return "SET " + strings.Join(b.sets, ", ")
}
