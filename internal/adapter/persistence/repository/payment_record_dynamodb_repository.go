package repository

import (
	"context"
	"encoding/json"

	"globalpartner_checkout/internal/domain/entities"
	"globalpartner_checkout/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentsTableName = "payments"
	paymentsOrderIDIndex     = "order_id-index"
	paymentRecordPaid        = "paid"
)

type paymentRecordItem struct {
	ID              string `dynamodbav:"id"`
	OrderID         string `dynamodbav:"order_id"`
	Status          string `dynamodbav:"status"`
	PaidAt          string `dynamodbav:"paid_at,omitempty"`
	WebhookSnapshot string `dynamodbav:"webhook_snapshot,omitempty"`
}

// PaymentRecordDynamoRepository updates the payment ledger rows of an order.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: order_id-index (PK: order_id)
type PaymentRecordDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IPaymentRecordRepository = (*PaymentRecordDynamoRepository)(nil)

func NewPaymentRecordDynamoRepository(ddb DynamoDBAPI) *PaymentRecordDynamoRepository {
	return &PaymentRecordDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
	}
}

func (r *PaymentRecordDynamoRepository) listByOrderID(ctx context.Context, orderID string) ([]paymentRecordItem, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsOrderIDIndex),
		KeyConditionExpression: aws.String("order_id = :oid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":oid": &types.AttributeValueMemberS{Value: orderID},
		},
	})

	var items []paymentRecordItem
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it paymentRecordItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			items = append(items, it)
		}
	}
	return items, nil
}

func (r *PaymentRecordDynamoRepository) MarkPaidByOrderID(ctx context.Context, orderID string, snapshot entities.PaymentSnapshot) (int, error) {
	items, err := r.listByOrderID(ctx, orderID)
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, nil
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, it := range items {
		now := nowString()
		b := newUpdateBuilder().
			setString("status", paymentRecordPaid).
			setString("paid_at", now).
			setString("webhook_snapshot", string(raw)).
			setString("updated_at", now)

		_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
			TableName: aws.String(r.tableName),
			Key: map[string]types.AttributeValue{
				"id": &types.AttributeValueMemberS{Value: it.ID},
			},
			UpdateExpression:          aws.String(b.expression()),
			ExpressionAttributeNames:  b.names,
			ExpressionAttributeValues: b.values,
		})
		if err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}
