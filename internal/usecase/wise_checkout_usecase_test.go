package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"globalpartner_checkout/internal/config"
	"globalpartner_checkout/internal/domain/entities"
	"globalpartner_checkout/internal/infrastructure/payments"
	mock_interfaces "globalpartner_checkout/internal/usecase/interfaces/mocks"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func abaAccount() config.BankAccount {
	return config.BankAccount{
		Type:          "aba",
		Currency:      "USD",
		HolderName:    "Global Partner LLC",
		LegalType:     "BUSINESS",
		RoutingNumber: "026009593",
		AccountNumber: "12345678",
		Country:       "US",
		City:          "Miami",
		PostCode:      "33131",
		AddressLine:   "1 Brickell Ave",
	}
}

func TestWiseCheckoutUseCase_AccountValidatedBeforeNetwork(t *testing.T) {
	cases := []struct {
		name    string
		account config.BankAccount
	}{
		{"aba without routing number", config.BankAccount{Type: "aba", Currency: "USD", HolderName: "X", AccountNumber: "1"}},
		{"swift without swift code", config.BankAccount{Type: "swift", Currency: "USD", HolderName: "X", AccountNumber: "1"}},
		{"iban without iban", config.BankAccount{Type: "iban", Currency: "EUR", HolderName: "X"}},
		{"sort code without account", config.BankAccount{Type: "sort_code", Currency: "GBP", HolderName: "X", SortCode: "231470"}},
		{"unknown type", config.BankAccount{Type: "pix", Currency: "BRL", HolderName: "X"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			orders := mock_interfaces.NewMockIOrderRepository(ctrl)
			// no expectations: any gateway call fails the test
			gateway := mock_interfaces.NewMockIWiseGateway(ctrl)
			uc := NewWiseCheckoutUseCase(orders, gateway, nil, tc.account, "https://wise.test")

			order := pendingOrder()
			orders.EXPECT().GetByID(gomock.Any(), order.ID).Return(order, nil)

			_, err := uc.CreateCheckout(context.Background(), WiseCheckoutInput{OrderID: order.ID})
			if !errors.Is(err, config.ErrInvalidBankAccount) {
				t.Fatalf("expected ErrInvalidBankAccount, got %v", err)
			}
		})
	}
}

func TestWiseCheckoutUseCase_CreateCheckout(t *testing.T) {
	t.Run("success creates and caches recipient", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIWiseGateway(ctrl)
		cache := mock_interfaces.NewMockIRecipientCache(ctrl)
		uc := NewWiseCheckoutUseCase(orders, gateway, cache, abaAccount(), "https://wise.test/")

		order := pendingOrder()
		orders.EXPECT().GetByID(gomock.Any(), order.ID).Return(order, nil)
		gateway.EXPECT().CreateQuote(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req entities.WiseQuoteRequest) (entities.WiseQuote, error) {
				if req.SourceCurrency != "BRL" || req.TargetCurrency != "USD" || !req.TargetAmount.Equal(decimal.NewFromInt(600)) {
					t.Fatalf("unexpected quote request %+v", req)
				}
				return entities.WiseQuote{ID: "q-1"}, nil
			})
		cache.EXPECT().Get(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, key string) (string, error) {
			if !strings.HasPrefix(key, "USD:aba:") {
				t.Fatalf("unexpected cache key %s", key)
			}
			return "", nil
		})
		gateway.EXPECT().CreateRecipient(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req entities.WiseRecipientRequest) (entities.WiseRecipient, error) {
				if req.Details["abartn"] != "026009593" || req.Details["accountType"] != "CHECKING" {
					t.Fatalf("unexpected recipient details %+v", req.Details)
				}
				if _, ok := req.Details["address"]; !ok {
					t.Fatalf("expected address in recipient details")
				}
				return entities.WiseRecipient{ID: "rcp-1"}, nil
			})
		cache.EXPECT().Set(gomock.Any(), gomock.Any(), "rcp-1").Return(nil)
		gateway.EXPECT().CreateTransfer(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req entities.WiseTransferRequest) (entities.WiseTransfer, error) {
				if req.TargetAccount != "rcp-1" || req.QuoteID != "q-1" || req.CustomerTransactionID != order.ID || req.Reference != "GP-1001" {
					t.Fatalf("unexpected transfer request %+v", req)
				}
				return entities.WiseTransfer{ID: "9001", Status: "incoming_payment_waiting", PayinSessionID: "sess-1"}, nil
			})
		orders.EXPECT().LinkProvider(gomock.Any(), order.ID, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, link entities.ProviderLink) (bool, error) {
				if link.Wise == nil || link.Wise.TransferID != "9001" || link.Wise.RecipientID != "rcp-1" || link.Parcelow != nil {
					t.Fatalf("unexpected link %+v", link)
				}
				return true, nil
			})

		res, err := uc.CreateCheckout(context.Background(), WiseCheckoutInput{OrderID: order.ID, ClientCurrency: "brl"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.PaymentURL != "https://wise.test/pay/session/sess-1" || res.TransferID != "9001" {
			t.Fatalf("unexpected result %+v", res)
		}
	})

	t.Run("cached recipient and non uuid order id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIWiseGateway(ctrl)
		cache := mock_interfaces.NewMockIRecipientCache(ctrl)
		uc := NewWiseCheckoutUseCase(orders, gateway, cache, abaAccount(), "https://wise.test")

		order := pendingOrder()
		order.ID = "legacy-42"
		orders.EXPECT().GetByID(gomock.Any(), order.ID).Return(order, nil)
		gateway.EXPECT().CreateQuote(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req entities.WiseQuoteRequest) (entities.WiseQuote, error) {
				if req.SourceCurrency != "USD" {
					t.Fatalf("expected default source currency, got %s", req.SourceCurrency)
				}
				return entities.WiseQuote{ID: "q-2"}, nil
			})
		cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return("rcp-cached", nil)
		gateway.EXPECT().CreateTransfer(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req entities.WiseTransferRequest) (entities.WiseTransfer, error) {
				if req.TargetAccount != "rcp-cached" {
					t.Fatalf("expected cached recipient, got %s", req.TargetAccount)
				}
				if _, err := uuid.Parse(req.CustomerTransactionID); err != nil || req.CustomerTransactionID == order.ID {
					t.Fatalf("expected fresh uuid, got %s", req.CustomerTransactionID)
				}
				return entities.WiseTransfer{ID: "9002", PaymentURL: "https://wise.test/pay/9002"}, nil
			})
		orders.EXPECT().LinkProvider(gomock.Any(), order.ID, gomock.Any()).Return(true, nil)

		res, err := uc.CreateCheckout(context.Background(), WiseCheckoutInput{OrderID: order.ID})
		if err != nil || res.PaymentURL != "https://wise.test/pay/9002" {
			t.Fatalf("unexpected result %+v err=%v", res, err)
		}
	})

	t.Run("parcelow linked order refused", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIWiseGateway(ctrl)
		uc := NewWiseCheckoutUseCase(orders, gateway, nil, abaAccount(), "https://wise.test")

		order := pendingOrder()
		order.Parcelow.OrderID = "555"
		orders.EXPECT().GetByID(gomock.Any(), order.ID).Return(order, nil)

		if _, err := uc.CreateCheckout(context.Background(), WiseCheckoutInput{OrderID: order.ID}); !errors.Is(err, ErrOrderAlreadyLinked) {
			t.Fatalf("expected ErrOrderAlreadyLinked, got %v", err)
		}
	})

	t.Run("concurrent checkout wins, transfer cancelled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIWiseGateway(ctrl)
		uc := NewWiseCheckoutUseCase(orders, gateway, nil, abaAccount(), "https://wise.test")

		order := pendingOrder()
		orders.EXPECT().GetByID(gomock.Any(), order.ID).Return(order, nil)
		gateway.EXPECT().CreateQuote(gomock.Any(), gomock.Any()).Return(entities.WiseQuote{ID: "q-1"}, nil)
		gateway.EXPECT().CreateRecipient(gomock.Any(), gomock.Any()).Return(entities.WiseRecipient{ID: "rcp-1"}, nil)
		gateway.EXPECT().CreateTransfer(gomock.Any(), gomock.Any()).Return(entities.WiseTransfer{ID: "9001"}, nil)
		orders.EXPECT().LinkProvider(gomock.Any(), order.ID, gomock.Any()).Return(false, nil)
		gateway.EXPECT().CancelTransfer(gomock.Any(), "9001").Return(nil)

		if _, err := uc.CreateCheckout(context.Background(), WiseCheckoutInput{OrderID: order.ID}); !errors.Is(err, ErrOrderAlreadyLinked) {
			t.Fatalf("expected ErrOrderAlreadyLinked, got %v", err)
		}
	})

	t.Run("recipient failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIWiseGateway(ctrl)
		cache := mock_interfaces.NewMockIRecipientCache(ctrl)
		uc := NewWiseCheckoutUseCase(orders, gateway, cache, abaAccount(), "https://wise.test")

		order := pendingOrder()
		orders.EXPECT().GetByID(gomock.Any(), order.ID).Return(order, nil)
		gateway.EXPECT().CreateQuote(gomock.Any(), gomock.Any()).Return(entities.WiseQuote{ID: "q-1"}, nil)
		cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", errors.New("redis down"))
		gateway.EXPECT().CreateRecipient(gomock.Any(), gomock.Any()).Return(entities.WiseRecipient{}, errors.New("400 invalid"))

		if _, err := uc.CreateCheckout(context.Background(), WiseCheckoutInput{OrderID: order.ID}); !errors.Is(err, ErrPaymentProvider) {
			t.Fatalf("expected ErrPaymentProvider, got %v", err)
		}
	})

	t.Run("rejected cached recipient is evicted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIWiseGateway(ctrl)
		cache := mock_interfaces.NewMockIRecipientCache(ctrl)
		uc := NewWiseCheckoutUseCase(orders, gateway, cache, abaAccount(), "https://wise.test")

		order := pendingOrder()
		key := accountFingerprint(abaAccount())
		orders.EXPECT().GetByID(gomock.Any(), order.ID).Return(order, nil)
		gateway.EXPECT().CreateQuote(gomock.Any(), gomock.Any()).Return(entities.WiseQuote{ID: "q-1"}, nil)
		cache.EXPECT().Get(gomock.Any(), key).Return("rcp-gone", nil)
		gateway.EXPECT().CreateTransfer(gomock.Any(), gomock.Any()).Return(entities.WiseTransfer{},
			&payments.ProviderError{Provider: "wise", Status: 422, Message: "targetAccount is invalid"})
		cache.EXPECT().Delete(gomock.Any(), key).Return(nil)

		if _, err := uc.CreateCheckout(context.Background(), WiseCheckoutInput{OrderID: order.ID}); !errors.Is(err, ErrPaymentProvider) {
			t.Fatalf("expected ErrPaymentProvider, got %v", err)
		}
	})

	t.Run("temporary transfer failure keeps cached recipient", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIWiseGateway(ctrl)
		cache := mock_interfaces.NewMockIRecipientCache(ctrl)
		uc := NewWiseCheckoutUseCase(orders, gateway, cache, abaAccount(), "https://wise.test")

		order := pendingOrder()
		orders.EXPECT().GetByID(gomock.Any(), order.ID).Return(order, nil)
		gateway.EXPECT().CreateQuote(gomock.Any(), gomock.Any()).Return(entities.WiseQuote{ID: "q-1"}, nil)
		cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return("rcp-cached", nil)
		gateway.EXPECT().CreateTransfer(gomock.Any(), gomock.Any()).Return(entities.WiseTransfer{},
			&payments.ProviderError{Provider: "wise", Status: 503, Message: "unavailable"})
		cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)

		if _, err := uc.CreateCheckout(context.Background(), WiseCheckoutInput{OrderID: order.ID}); !errors.Is(err, ErrPaymentProvider) {
			t.Fatalf("expected ErrPaymentProvider, got %v", err)
		}
	})

	t.Run("gateway not configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := NewWiseCheckoutUseCase(orders, nil, nil, abaAccount(), "https://wise.test")

		order := pendingOrder()
		orders.EXPECT().GetByID(gomock.Any(), order.ID).Return(order, nil)

		if _, err := uc.CreateCheckout(context.Background(), WiseCheckoutInput{OrderID: order.ID}); !errors.Is(err, ErrProviderNotConfigured) {
			t.Fatalf("expected ErrProviderNotConfigured, got %v", err)
		}
	})
}

func TestResolveWisePaymentURL(t *testing.T) {
	cases := []struct {
		name     string
		transfer entities.WiseTransfer
		quote    entities.WiseQuote
		want     string
	}{
		{"transfer url", entities.WiseTransfer{ID: "1", PaymentURL: "https://a.test/pay"}, entities.WiseQuote{PaymentURL: "https://b.test/pay"}, "https://a.test/pay"},
		{"quote url", entities.WiseTransfer{ID: "1"}, entities.WiseQuote{PaymentURL: "https://b.test/pay"}, "https://b.test/pay"},
		{"malformed url falls through", entities.WiseTransfer{ID: "1", PaymentURL: "not a url"}, entities.WiseQuote{}, "https://wise.test/transactions/activities/by-resource/TRANSFER/1"},
		{"payin session", entities.WiseTransfer{ID: "1"}, entities.WiseQuote{PayinSessionID: "s-9"}, "https://wise.test/pay/session/s-9"},
		{"activity page", entities.WiseTransfer{ID: "77"}, entities.WiseQuote{}, "https://wise.test/transactions/activities/by-resource/TRANSFER/77"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveWisePaymentURL("https://wise.test", tc.transfer, tc.quote); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestAccountFingerprint(t *testing.T) {
	a := abaAccount()
	b := abaAccount()
	if accountFingerprint(a) != accountFingerprint(b) {
		t.Fatalf("same account must share a fingerprint")
	}
	b.AccountNumber = "87654321"
	if accountFingerprint(a) == accountFingerprint(b) {
		t.Fatalf("edited account must change the fingerprint")
	}
}
