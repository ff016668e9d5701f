package repository

import (
	"context"
	"errors"
	"log"

	"globalpartner_checkout/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultServiceRequestsTableName = "service_requests"
	serviceRequestPaid              = "paid"
)

// ServiceRequestDynamoRepository updates the service_requests table.
//
// Table requirements:
//   - PK: id (string)
type ServiceRequestDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IServiceRequestRepository = (*ServiceRequestDynamoRepository)(nil)

func NewServiceRequestDynamoRepository(ddb DynamoDBAPI) *ServiceRequestDynamoRepository {
	return &ServiceRequestDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("SERVICE_REQUESTS_TABLE", defaultServiceRequestsTableName),
	}
}

func (r *ServiceRequestDynamoRepository) MarkPaid(ctx context.Context, serviceRequestID string) error {
	now := nowString()
	b := newUpdateBuilder().
		setString("payment_status", serviceRequestPaid).
		setString("paid_at", now).
		setString("updated_at", now)

	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: serviceRequestID},
		},
		UpdateExpression:          aws.String(b.expression()),
		ConditionExpression:       aws.String("attribute_exists(" + b.name("id") + ")"),
		ExpressionAttributeNames:  b.names,
		ExpressionAttributeValues: b.values,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			log.Printf("[service_request][repository] not found service_request_id=%s", serviceRequestID)
			return nil
		}
		return err
	}
	return nil
}
