package repository

import (
	"context"
	"time"

	"globalpartner_checkout/internal/domain/entities"
	"globalpartner_checkout/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
)

const defaultFunnelEventsTableName = "funnel_events"

type funnelEventItem struct {
	ID        string                 `dynamodbav:"id"`
	SellerID  string                 `dynamodbav:"seller_id"`
	OrderID   string                 `dynamodbav:"order_id"`
	EventType string                 `dynamodbav:"event_type"`
	AmountUSD float64                `dynamodbav:"amount_usd"`
	Metadata  map[string]interface{} `dynamodbav:"metadata,omitempty"`
	CreatedAt string                 `dynamodbav:"created_at"`
}

// FunnelEventDynamoRepository appends seller funnel events.
//
// Table requirements:
//   - PK: id (string)
type FunnelEventDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IFunnelEventRepository = (*FunnelEventDynamoRepository)(nil)

func NewFunnelEventDynamoRepository(ddb DynamoDBAPI) *FunnelEventDynamoRepository {
	return &FunnelEventDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("FUNNEL_EVENTS_TABLE", defaultFunnelEventsTableName),
	}
}

func (r *FunnelEventDynamoRepository) Record(ctx context.Context, e entities.FunnelEvent) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	av, err := attributevalue.MarshalMap(funnelEventItem{
		ID:        e.ID,
		SellerID:  e.SellerID,
		OrderID:   e.OrderID,
		EventType: e.EventType,
		AmountUSD: e.AmountUSD,
		Metadata:  e.Metadata,
		CreatedAt: formatTime(e.CreatedAt),
	})
	if err != nil {
		return err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	return err
}
