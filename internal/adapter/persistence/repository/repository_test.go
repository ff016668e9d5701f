package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"globalpartner_checkout/internal/domain/entities"
	"globalpartner_checkout/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

type fakeDynamo struct {
	items   map[string]map[string]types.AttributeValue
	query   []map[string]types.AttributeValue
	updates []*dynamodb.UpdateItemInput
	puts    []*dynamodb.PutItemInput

	// updateErrs is consumed in order, one per UpdateItem call.
	updateErrs []error
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	id := in.Key["id"].(*types.AttributeValueMemberS).Value
	return &dynamodb.GetItemOutput{Item: f.items[id]}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.puts = append(f.puts, in)
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.updates = append(f.updates, in)
	if len(f.updateErrs) > 0 {
		err := f.updateErrs[0]
		f.updateErrs = f.updateErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return &dynamodb.UpdateItemOutput{}, nil
}

func (f *fakeDynamo) Query(_ context.Context, _ *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	return &dynamodb.QueryOutput{Items: f.query}, nil
}

func mustMarshal(t *testing.T, v any) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return av
}

func TestOrderItemMapping(t *testing.T) {
	paidAt := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	o := entities.Order{
		ID:             "ord-1",
		OrderNumber:    "GP-1001",
		TotalPriceUSD:  decimal.RequireFromString("600.10"),
		PaymentStatus:  entities.PaymentStatusCompleted,
		Client:         entities.Client{Name: "Ana", CPF: "123", Address: entities.Address{City: "Sao Paulo"}},
		DependentNames: []string{"Bruno"},
		Parcelow:       entities.ParcelowLink{OrderID: "555"},
		PaidAt:         &paidAt,
	}

	av := mustMarshal(t, toOrderItem(o))
	if _, ok := av["wise_transfer_id"]; ok {
		t.Fatalf("empty linkage must not be stored")
	}
	if s, ok := av["total_price_usd"].(*types.AttributeValueMemberS); !ok || s.Value != "600.1" {
		t.Fatalf("expected price stored as string, got %#v", av["total_price_usd"])
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := fromOrderItem(it)
	if !got.TotalPriceUSD.Equal(o.TotalPriceUSD) || got.Parcelow.OrderID != "555" || got.Client.Address.City != "Sao Paulo" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if got.PaidAt == nil || !got.PaidAt.Equal(paidAt) {
		t.Fatalf("unexpected paid_at: %v", got.PaidAt)
	}
}

func TestOrderRepository_LinkProvider(t *testing.T) {
	t.Run("linked", func(t *testing.T) {
		ddb := &fakeDynamo{}
		repo := NewOrderDynamoRepository(ddb)

		linked, err := repo.LinkProvider(context.Background(), "ord-1", entities.ProviderLink{
			Provider: entities.ProviderWise,
			Wise:     &entities.WiseLink{TransferID: "9001", QuoteID: "q-1", PaymentURL: "https://pay"},
		})
		if err != nil || !linked {
			t.Fatalf("expected linked, got linked=%v err=%v", linked, err)
		}
		in := ddb.updates[0]
		cond := *in.ConditionExpression
		for _, want := range []string{"attribute_not_exists(#parcelow_order_id)", "attribute_not_exists(#wise_transfer_id)", "#payment_status = :pending"} {
			if !strings.Contains(cond, want) {
				t.Fatalf("condition %q missing %q", cond, want)
			}
		}
		if _, ok := in.ExpressionAttributeValues[":wise_recipient_id"]; ok {
			t.Fatalf("empty recipient id must not be written")
		}
	})

	t.Run("already linked", func(t *testing.T) {
		ddb := &fakeDynamo{updateErrs: []error{&types.ConditionalCheckFailedException{}}}
		repo := NewOrderDynamoRepository(ddb)

		linked, err := repo.LinkProvider(context.Background(), "ord-1", entities.ProviderLink{
			Provider: entities.ProviderParcelow,
			Parcelow: &entities.ParcelowLink{OrderID: "555"},
		})
		if err != nil || linked {
			t.Fatalf("expected refused link, got linked=%v err=%v", linked, err)
		}
	})

	t.Run("no provider data", func(t *testing.T) {
		repo := NewOrderDynamoRepository(&fakeDynamo{})
		if _, err := repo.LinkProvider(context.Background(), "ord-1", entities.ProviderLink{Provider: entities.ProviderWise}); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestOrderRepository_ApplyTransition(t *testing.T) {
	t.Run("completion writes metadata under condition", func(t *testing.T) {
		ddb := &fakeDynamo{}
		repo := NewOrderDynamoRepository(ddb)
		paidAt := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

		applied, err := repo.ApplyTransition(context.Background(), "ord-1", interfaces.StatusTransition{
			Provider:   entities.ProviderParcelow,
			StatusText: "Paid",
			StatusCode: "2",
			Status:     entities.PaymentStatusCompleted,
			Metadata:   map[string]any{"fee_amount": 20.0},
			PaidAt:     &paidAt,
		})
		if err != nil || !applied {
			t.Fatalf("expected applied, got %v err=%v", applied, err)
		}
		in := ddb.updates[0]
		if !strings.Contains(*in.ConditionExpression, "#payment_status <> :completed") {
			t.Fatalf("unexpected condition %q", *in.ConditionExpression)
		}
		for _, key := range []string{":payment_metadata", ":paid_at", ":parcelow_status", ":parcelow_status_code"} {
			if _, ok := in.ExpressionAttributeValues[key]; !ok {
				t.Fatalf("expected %s in update", key)
			}
		}
	})

	t.Run("lost race still mirrors", func(t *testing.T) {
		ddb := &fakeDynamo{updateErrs: []error{&types.ConditionalCheckFailedException{}, nil}}
		repo := NewOrderDynamoRepository(ddb)

		applied, err := repo.ApplyTransition(context.Background(), "ord-1", interfaces.StatusTransition{
			Provider:   entities.ProviderWise,
			StatusText: "outgoing_payment_sent",
			Status:     entities.PaymentStatusCompleted,
		})
		if err != nil || applied {
			t.Fatalf("expected not applied, got %v err=%v", applied, err)
		}
		if len(ddb.updates) != 2 {
			t.Fatalf("expected mirror update after lost race, got %d updates", len(ddb.updates))
		}
		if _, ok := ddb.updates[1].ExpressionAttributeValues[":payment_status"]; ok {
			t.Fatalf("mirror update must not touch payment_status")
		}
	})

	t.Run("mirror only", func(t *testing.T) {
		ddb := &fakeDynamo{}
		repo := NewOrderDynamoRepository(ddb)

		applied, err := repo.ApplyTransition(context.Background(), "ord-1", interfaces.StatusTransition{
			Provider:   entities.ProviderWise,
			StatusText: "processing",
		})
		if err != nil || !applied || len(ddb.updates) != 1 {
			t.Fatalf("unexpected result applied=%v err=%v updates=%d", applied, err, len(ddb.updates))
		}
	})
}

func TestOrderRepository_GetByParcelowOrderID(t *testing.T) {
	stored := mustMarshal(t, toOrderItem(entities.Order{ID: "ord-1", TotalPriceUSD: decimal.NewFromInt(600), Parcelow: entities.ParcelowLink{OrderID: "555"}}))
	ddb := &fakeDynamo{
		items: map[string]map[string]types.AttributeValue{"ord-1": stored},
		query: []map[string]types.AttributeValue{stored},
	}
	repo := NewOrderDynamoRepository(ddb)

	o, err := repo.GetByParcelowOrderID(context.Background(), "555")
	if err != nil || o.ID != "ord-1" {
		t.Fatalf("unexpected result %+v err=%v", o, err)
	}

	o, err = repo.GetByWiseTransferID(context.Background(), "")
	if err != nil || o.ID != "" {
		t.Fatalf("empty id must resolve to no order, got %+v err=%v", o, err)
	}
}

func TestPaymentRecordRepository_MarkPaidByOrderID(t *testing.T) {
	ddb := &fakeDynamo{query: []map[string]types.AttributeValue{
		mustMarshal(t, paymentRecordItem{ID: "p-1", OrderID: "ord-1", Status: "pending"}),
		mustMarshal(t, paymentRecordItem{ID: "p-2", OrderID: "ord-1", Status: "pending"}),
	}}
	repo := NewPaymentRecordDynamoRepository(ddb)

	n, err := repo.MarkPaidByOrderID(context.Background(), "ord-1", entities.PaymentSnapshot{Provider: entities.ProviderParcelow, Event: "event_order_paid"})
	if err != nil || n != 2 {
		t.Fatalf("expected 2 updates, got %d err=%v", n, err)
	}
	snap := ddb.updates[0].ExpressionAttributeValues[":webhook_snapshot"].(*types.AttributeValueMemberS).Value
	if !strings.Contains(snap, `"event":"event_order_paid"`) {
		t.Fatalf("unexpected snapshot %s", snap)
	}
}

func TestDirectoryRepository_ListAdmins(t *testing.T) {
	ddb := &fakeDynamo{query: []map[string]types.AttributeValue{
		mustMarshal(t, profileItem{ID: "a-1", FullName: "Admin", Email: "admin@test.com", Role: "admin"}),
		mustMarshal(t, profileItem{ID: "a-2", Role: "admin"}),
	}}
	repo := NewDirectoryDynamoRepository(ddb)

	admins, err := repo.ListAdmins(context.Background())
	if err != nil || len(admins) != 1 || admins[0].Email != "admin@test.com" {
		t.Fatalf("unexpected admins %+v err=%v", admins, err)
	}
}

func TestFunnelEventRepository_Record(t *testing.T) {
	ddb := &fakeDynamo{}
	repo := NewFunnelEventDynamoRepository(ddb)

	err := repo.Record(context.Background(), entities.FunnelEvent{SellerID: "s-1", OrderID: "ord-1", EventType: entities.FunnelEventPaymentCompleted, AmountUSD: 600})
	if err != nil || len(ddb.puts) != 1 {
		t.Fatalf("unexpected result err=%v puts=%d", err, len(ddb.puts))
	}
	if id, ok := ddb.puts[0].Item["id"].(*types.AttributeValueMemberS); !ok || id.Value == "" {
		t.Fatalf("expected generated id")
	}
}
