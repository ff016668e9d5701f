package payments

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"globalpartner_checkout/internal/config"
	"globalpartner_checkout/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func TestNewParcelowGateway_RequiresConfig(t *testing.T) {
	_, err := NewParcelowGateway(config.ParcelowConfig{Environment: "sandbox"}, nil)
	if !errors.Is(err, config.ErrMissingVariable) {
		t.Fatalf("expected ErrMissingVariable, got %v", err)
	}
}

func TestParcelowGateway_CreateOrder(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth/token" {
			writeToken(w, "tok")
			return
		}
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"order_id":98765,"url_checkout":"https://pay.example/98765"}}`))
	}))
	defer srv.Close()

	g := NewParcelowGatewayWithClient(newTestClient(t, srv, CredentialsJSON, nil, nil))
	out, err := g.CreateOrder(context.Background(), entities.ParcelowOrderRequest{
		Reference: "GP-1001",
		Currency:  "BRL",
		Client:    entities.ParcelowClient{CPF: "12345678900", Name: "Ana", Email: "ana@test.com", PostalCode: "01001000"},
		Items:     []entities.ParcelowItem{{Reference: "GP-1001", Description: "Visa", Quantity: 1, AmountInCents: 60000}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.OrderID != "98765" || out.CheckoutURL != "https://pay.example/98765" {
		t.Fatalf("unexpected checkout: %+v", out)
	}
	if gotPath != "/api/orders/brl" {
		t.Fatalf("expected BRL endpoint, got %s", gotPath)
	}
	items := gotBody["items"].([]any)
	if items[0].(map[string]any)["amount_in_cents"].(float64) != 60000 {
		t.Fatalf("unexpected items: %v", items)
	}
	if gotBody["client"].(map[string]any)["cep"] != "01001000" {
		t.Fatalf("unexpected client: %v", gotBody["client"])
	}
}

func TestParcelowGateway_CreateOrderRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth/token" {
			writeToken(w, "tok")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":false,"message":"invalid cpf"}`))
	}))
	defer srv.Close()

	g := NewParcelowGatewayWithClient(newTestClient(t, srv, CredentialsJSON, nil, nil))
	_, err := g.CreateOrder(context.Background(), entities.ParcelowOrderRequest{Reference: "GP-1"})
	if !errors.Is(err, ErrParcelowRejected) {
		t.Fatalf("expected ErrParcelowRejected, got %v", err)
	}
}

func TestParcelowGateway_GetOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth/token" {
			writeToken(w, "tok")
			return
		}
		if r.URL.Path != "/api/order/555" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":555,"reference":"GP-1001","status":"2","status_text":"Paid",
			"order_amount":"60000","total_usd":58000,"total_brl":320000,"installments":3,
			"payments":[{"total_brl":"330000","installments":3}]}}`))
	}))
	defer srv.Close()

	g := NewParcelowGatewayWithClient(newTestClient(t, srv, CredentialsJSON, nil, nil))
	snap, err := g.GetOrder(context.Background(), "555")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.ID != "555" || snap.StatusText != "Paid" || snap.StatusCode != "2" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.OrderAmountCents != 60000 || snap.TotalUSDCents != 58000 || snap.Installments != 3 {
		t.Fatalf("unexpected amounts: %+v", snap)
	}
	if len(snap.Payments) != 1 || snap.Payments[0].TotalBRLCents != 330000 {
		t.Fatalf("unexpected payments: %+v", snap.Payments)
	}
}

func TestParcelowGateway_Simulate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth/token" {
			writeToken(w, "tok")
			return
		}
		if r.URL.Query().Get("amount") != "60000" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"total_usd":600,"dollar":5.5,
			"installments":[{"installment":1,"monthly":3300,"total":3300},{"installment":2,"monthly":1700,"total":3400}]}}`))
	}))
	defer srv.Close()

	g := NewParcelowGatewayWithClient(newTestClient(t, srv, CredentialsJSON, nil, nil))
	sim, err := g.Simulate(context.Background(), 60000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sim.AmountUSD.Equal(decimal.NewFromInt(600)) || len(sim.Options) != 2 {
		t.Fatalf("unexpected simulation: %+v", sim)
	}
	if sim.Options[1].Installments != 2 || !sim.Options[1].TotalBRL.Equal(decimal.NewFromInt(3400)) {
		t.Fatalf("unexpected option: %+v", sim.Options[1])
	}
}

func TestWiseGateway_QuoteRecipientTransfer(t *testing.T) {
	var transferBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/oauth/token":
			writeToken(w, "tok")
		case "/v3/profiles/42/quotes":
			_, _ = w.Write([]byte(`{"id":"q-1","sourceCurrency":"EUR","targetCurrency":"USD","sourceAmount":560.25,
				"targetAmount":600,"rate":1.0709,"expirationTime":"2025-01-10T12:30:00Z","paymentOptions":[{"fee":{"total":4.1}}]}`))
		case "/v1/accounts":
			_, _ = w.Write([]byte(`{"id":777,"currency":"USD","type":"aba"}`))
		case "/v1/transfers":
			b, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(b, &transferBody)
			_, _ = w.Write([]byte(`{"id":9001,"status":"incoming_payment_waiting","quoteUuid":"q-1",
				"sourceCurrency":"EUR","targetCurrency":"USD","sourceValue":560.25,"targetValue":600,"rate":1.0709,
				"payinSessionId":"sess-1"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	g := NewWiseGatewayWithClient(newTestClient(t, srv, CredentialsBasicForm, nil, nil), "42")
	ctx := context.Background()

	quote, err := g.CreateQuote(ctx, entities.WiseQuoteRequest{SourceCurrency: "eur", TargetCurrency: "usd", TargetAmount: decimal.NewFromInt(600)})
	if err != nil {
		t.Fatalf("quote: unexpected error: %v", err)
	}
	if quote.ID != "q-1" || !quote.Fee.Equal(decimal.RequireFromString("4.1")) || quote.ExpiresAt.IsZero() {
		t.Fatalf("unexpected quote: %+v", quote)
	}

	recipient, err := g.CreateRecipient(ctx, entities.WiseRecipientRequest{Currency: "USD", Type: "aba", AccountHolderName: "GP", LegalType: "BUSINESS"})
	if err != nil || recipient.ID != "777" {
		t.Fatalf("recipient: unexpected result %+v err=%v", recipient, err)
	}

	transfer, err := g.CreateTransfer(ctx, entities.WiseTransferRequest{TargetAccount: recipient.ID, QuoteID: quote.ID, CustomerTransactionID: "c-1", Reference: "GP-1"})
	if err != nil {
		t.Fatalf("transfer: unexpected error: %v", err)
	}
	if transfer.ID != "9001" || transfer.PayinSessionID != "sess-1" || transfer.PaymentURL != "" {
		t.Fatalf("unexpected transfer: %+v", transfer)
	}
	if transferBody["quoteUuid"] != "q-1" || transferBody["customerTransactionId"] != "c-1" {
		t.Fatalf("unexpected transfer body: %v", transferBody)
	}
}

func TestPaymentURLFrom(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"top level", `{"paymentUrl":"https://a"}`, "https://a"},
		{"pay in url", `{"payInUrl":"https://b"}`, "https://b"},
		{"links string", `{"links":{"payment":"https://c"}}`, "https://c"},
		{"links href", `{"links":{"payment":{"href":"https://d"}}}`, "https://d"},
		{"none", `{"id":1}`, ""},
		{"invalid", `[`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := paymentURLFrom(json.RawMessage(tc.raw)); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
