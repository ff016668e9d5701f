package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"globalpartner_checkout/internal/domain/entities"
	"globalpartner_checkout/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const (
	defaultOrdersTableName     = "orders"
	ordersOrderNumberIndex     = "order_number-index"
	ordersParcelowOrderIDIndex = "parcelow_order_id-index"
	ordersWiseTransferIDIndex  = "wise_transfer_id-index"
)

type addressItem struct {
	Street       string `dynamodbav:"street,omitempty"`
	Number       string `dynamodbav:"number,omitempty"`
	Complement   string `dynamodbav:"complement,omitempty"`
	Neighborhood string `dynamodbav:"neighborhood,omitempty"`
	City         string `dynamodbav:"city,omitempty"`
	State        string `dynamodbav:"state,omitempty"`
	PostalCode   string `dynamodbav:"postal_code,omitempty"`
	Country      string `dynamodbav:"country,omitempty"`
}

type orderItem struct {
	ID               string       `dynamodbav:"id"`
	OrderNumber      string       `dynamodbav:"order_number,omitempty"`
	ProductSlug      string       `dynamodbav:"product_slug,omitempty"`
	ProductName      string       `dynamodbav:"product_name,omitempty"`
	TotalPriceUSD    string       `dynamodbav:"total_price_usd"`
	PaymentStatus    string       `dynamodbav:"payment_status"`
	PaymentMethod    string       `dynamodbav:"payment_method,omitempty"`
	ClientName       string       `dynamodbav:"client_name,omitempty"`
	ClientEmail      string       `dynamodbav:"client_email,omitempty"`
	ClientPhone      string       `dynamodbav:"client_phone,omitempty"`
	ClientCPF        string       `dynamodbav:"client_cpf,omitempty"`
	ClientBirthDate  string       `dynamodbav:"client_birth_date,omitempty"`
	ClientAddress    *addressItem `dynamodbav:"client_address,omitempty"`
	DependentNames   []string     `dynamodbav:"dependent_names,omitempty"`
	ServiceRequestID string       `dynamodbav:"service_request_id,omitempty"`
	SellerID         string       `dynamodbav:"seller_id,omitempty"`

	ParcelowOrderID     string `dynamodbav:"parcelow_order_id,omitempty"`
	ParcelowCheckoutURL string `dynamodbav:"parcelow_checkout_url,omitempty"`
	ParcelowStatus      string `dynamodbav:"parcelow_status,omitempty"`
	ParcelowStatusCode  string `dynamodbav:"parcelow_status_code,omitempty"`

	WiseTransferID  string `dynamodbav:"wise_transfer_id,omitempty"`
	WiseQuoteID     string `dynamodbav:"wise_quote_id,omitempty"`
	WiseRecipientID string `dynamodbav:"wise_recipient_id,omitempty"`
	WisePaymentURL  string `dynamodbav:"wise_payment_url,omitempty"`
	WiseStatus      string `dynamodbav:"wise_status,omitempty"`

	PaymentMetadata map[string]interface{} `dynamodbav:"payment_metadata,omitempty"`
	PaidAt          string                 `dynamodbav:"paid_at,omitempty"`
	CreatedAt       string                 `dynamodbav:"created_at,omitempty"`
	UpdatedAt       string                 `dynamodbav:"updated_at,omitempty"`
}

// OrderDynamoRepository persists orders in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: order_number-index (PK: order_number)
//   - GSI: parcelow_order_id-index (PK: parcelow_order_id)
//   - GSI: wise_transfer_id-index (PK: wise_transfer_id)
type OrderDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb DynamoDBAPI) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ORDERS_TABLE", defaultOrdersTableName),
	}
}

// Create stores a new pending order. Checkout never creates orders; this is
// used by seeding and tests.
func (r *OrderDynamoRepository) Create(ctx context.Context, o entities.Order) error {
	av, err := attributevalue.MarshalMap(toOrderItem(o))
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

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	if id == "" {
		return entities.Order{}, nil
	}
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Item) == 0 {
		return entities.Order{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func (r *OrderDynamoRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (entities.Order, error) {
	return r.queryOne(ctx, ordersOrderNumberIndex, "order_number", orderNumber)
}

func (r *OrderDynamoRepository) GetByParcelowOrderID(ctx context.Context, parcelowOrderID string) (entities.Order, error) {
	return r.queryOne(ctx, ordersParcelowOrderIDIndex, "parcelow_order_id", parcelowOrderID)
}

func (r *OrderDynamoRepository) GetByWiseTransferID(ctx context.Context, transferID string) (entities.Order, error) {
	return r.queryOne(ctx, ordersWiseTransferIDIndex, "wise_transfer_id", transferID)
}

// queryOne resolves the order through a GSI and re-reads it by key, since
// index reads are eventually consistent.
func (r *OrderDynamoRepository) queryOne(ctx context.Context, index, attr, value string) (entities.Order, error) {
	if value == "" {
		return entities.Order{}, nil
	}
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#k = :v"),
		ExpressionAttributeNames: map[string]string{
			"#k": attr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Items) == 0 {
		return entities.Order{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Order{}, err
	}
	order, err := r.GetByID(ctx, it.ID)
	if err != nil {
		return entities.Order{}, err
	}
	if order.ID == "" {
		return fromOrderItem(it), nil
	}
	return order, nil
}

func (r *OrderDynamoRepository) LinkProvider(ctx context.Context, orderID string, link entities.ProviderLink) (bool, error) {
	b := newUpdateBuilder()
	b.setString("payment_method", string(link.Provider))
	switch {
	case link.Parcelow != nil:
		b.setString("parcelow_order_id", link.Parcelow.OrderID).
			setIfNotEmpty("parcelow_checkout_url", link.Parcelow.CheckoutURL).
			setIfNotEmpty("parcelow_status", link.Parcelow.Status).
			setIfNotEmpty("parcelow_status_code", link.Parcelow.StatusCode)
	case link.Wise != nil:
		b.setString("wise_transfer_id", link.Wise.TransferID).
			setIfNotEmpty("wise_quote_id", link.Wise.QuoteID).
			setIfNotEmpty("wise_recipient_id", link.Wise.RecipientID).
			setIfNotEmpty("wise_payment_url", link.Wise.PaymentURL).
			setIfNotEmpty("wise_status", link.Wise.Status)
	default:
		return false, errors.New("provider link without provider data")
	}
	b.setString("updated_at", nowString())

	cond := "attribute_exists(" + b.name("id") + ")" +
		" AND attribute_not_exists(" + b.name("parcelow_order_id") + ")" +
		" AND attribute_not_exists(" + b.name("wise_transfer_id") + ")" +
		" AND " + b.name("payment_status") + " = " + b.value("pending", &types.AttributeValueMemberS{Value: string(entities.PaymentStatusPending)})

	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: orderID},
		},
		UpdateExpression:          aws.String(b.expression()),
		ConditionExpression:       aws.String(cond),
		ExpressionAttributeNames:  b.names,
		ExpressionAttributeValues: b.values,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			log.Printf("[order][repository] link refused order_id=%s provider=%s", orderID, link.Provider)
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *OrderDynamoRepository) ApplyTransition(ctx context.Context, orderID string, t interfaces.StatusTransition) (bool, error) {
	if t.Status == "" {
		return true, r.writeMirror(ctx, orderID, t)
	}

	b := mirrorUpdate(t)
	b.setString("payment_status", string(t.Status))
	if t.Status == entities.PaymentStatusCompleted {
		if len(t.Metadata) > 0 {
			meta, err := attributevalue.Marshal(t.Metadata)
			if err != nil {
				return false, err
			}
			b.set("payment_metadata", meta)
		}
		paidAt := time.Now()
		if t.PaidAt != nil {
			paidAt = *t.PaidAt
		}
		b.setString("paid_at", formatTime(paidAt))
	}

	cond := "attribute_exists(" + b.name("id") + ") AND " + b.name("payment_status") + " <> " +
		b.value("completed", &types.AttributeValueMemberS{Value: string(entities.PaymentStatusCompleted)})

	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: orderID},
		},
		UpdateExpression:          aws.String(b.expression()),
		ConditionExpression:       aws.String(cond),
		ExpressionAttributeNames:  b.names,
		ExpressionAttributeValues: b.values,
	})
	if err == nil {
		return true, nil
	}
	var cfe *types.ConditionalCheckFailedException
	if !errors.As(err, &cfe) {
		return false, err
	}

	log.Printf("[order][repository] status change lost to completed order order_id=%s status=%s", orderID, t.Status)
	return false, r.writeMirror(ctx, orderID, t)
}

func (r *OrderDynamoRepository) writeMirror(ctx context.Context, orderID string, t interfaces.StatusTransition) error {
	b := mirrorUpdate(t)
	cond := "attribute_exists(" + b.name("id") + ")"
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: orderID},
		},
		UpdateExpression:          aws.String(b.expression()),
		ConditionExpression:       aws.String(cond),
		ExpressionAttributeNames:  b.names,
		ExpressionAttributeValues: b.values,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			log.Printf("[order][repository] mirror update on missing order order_id=%s", orderID)
			return nil
		}
		return err
	}
	return nil
}

func mirrorUpdate(t interfaces.StatusTransition) *updateBuilder {
	b := newUpdateBuilder()
	switch t.Provider {
	case entities.ProviderParcelow:
		b.setIfNotEmpty("parcelow_status", t.StatusText).
			setIfNotEmpty("parcelow_status_code", t.StatusCode)
	case entities.ProviderWise:
		b.setIfNotEmpty("wise_status", t.StatusText)
	}
	b.setString("updated_at", nowString())
	return b
}

func toOrderItem(o entities.Order) orderItem {
	it := orderItem{
		ID:                  o.ID,
		OrderNumber:         o.OrderNumber,
		ProductSlug:         o.ProductSlug,
		ProductName:         o.ProductName,
		TotalPriceUSD:       o.TotalPriceUSD.String(),
		PaymentStatus:       string(o.PaymentStatus),
		PaymentMethod:       string(o.PaymentMethod),
		ClientName:          o.Client.Name,
		ClientEmail:         o.Client.Email,
		ClientPhone:         o.Client.Phone,
		ClientCPF:           o.Client.CPF,
		ClientBirthDate:     o.Client.BirthDate,
		DependentNames:      o.DependentNames,
		ServiceRequestID:    o.ServiceRequestID,
		SellerID:            o.SellerID,
		ParcelowOrderID:     o.Parcelow.OrderID,
		ParcelowCheckoutURL: o.Parcelow.CheckoutURL,
		ParcelowStatus:      o.Parcelow.Status,
		ParcelowStatusCode:  o.Parcelow.StatusCode,
		WiseTransferID:      o.Wise.TransferID,
		WiseQuoteID:         o.Wise.QuoteID,
		WiseRecipientID:     o.Wise.RecipientID,
		WisePaymentURL:      o.Wise.PaymentURL,
		WiseStatus:          o.Wise.Status,
		PaymentMetadata:     o.PaymentMetadata,
	}
	if it.PaymentStatus == "" {
		it.PaymentStatus = string(entities.PaymentStatusPending)
	}
	if a := o.Client.Address; a != (entities.Address{}) {
		it.ClientAddress = &addressItem{
			Street:       a.Street,
			Number:       a.Number,
			Complement:   a.Complement,
			Neighborhood: a.Neighborhood,
			City:         a.City,
			State:        a.State,
			PostalCode:   a.PostalCode,
			Country:      a.Country,
		}
	}
	if o.PaidAt != nil {
		it.PaidAt = formatTime(*o.PaidAt)
	}
	if !o.CreatedAt.IsZero() {
		it.CreatedAt = formatTime(o.CreatedAt)
	}
	if !o.UpdatedAt.IsZero() {
		it.UpdatedAt = formatTime(o.UpdatedAt)
	}
	return it
}

func fromOrderItem(it orderItem) entities.Order {
	price, err := decimal.NewFromString(it.TotalPriceUSD)
	if err != nil {
		log.Printf("[order][repository] invalid total_price_usd order_id=%s value=%q", it.ID, it.TotalPriceUSD)
	}
	o := entities.Order{
		ID:            it.ID,
		OrderNumber:   it.OrderNumber,
		ProductSlug:   it.ProductSlug,
		ProductName:   it.ProductName,
		TotalPriceUSD: price,
		PaymentStatus: entities.PaymentStatus(it.PaymentStatus),
		PaymentMethod: entities.Provider(it.PaymentMethod),
		Client: entities.Client{
			Name:      it.ClientName,
			Email:     it.ClientEmail,
			Phone:     it.ClientPhone,
			CPF:       it.ClientCPF,
			BirthDate: it.ClientBirthDate,
		},
		DependentNames:   it.DependentNames,
		ServiceRequestID: it.ServiceRequestID,
		SellerID:         it.SellerID,
		Parcelow: entities.ParcelowLink{
			OrderID:     it.ParcelowOrderID,
			CheckoutURL: it.ParcelowCheckoutURL,
			Status:      it.ParcelowStatus,
			StatusCode:  it.ParcelowStatusCode,
		},
		Wise: entities.WiseLink{
			TransferID:  it.WiseTransferID,
			QuoteID:     it.WiseQuoteID,
			RecipientID: it.WiseRecipientID,
			PaymentURL:  it.WisePaymentURL,
			Status:      it.WiseStatus,
		},
		PaymentMetadata: it.PaymentMetadata,
		CreatedAt:       parseTime(it.CreatedAt),
		UpdatedAt:       parseTime(it.UpdatedAt),
	}
	if a := it.ClientAddress; a != nil {
		o.Client.Address = entities.Address{
			Street:       a.Street,
			Number:       a.Number,
			Complement:   a.Complement,
			Neighborhood: a.Neighborhood,
			City:         a.City,
			State:        a.State,
			PostalCode:   a.PostalCode,
			Country:      a.Country,
		}
	}
	if it.PaidAt != "" {
		paidAt := parseTime(it.PaidAt)
		o.PaidAt = &paidAt
	}
	return o
}
