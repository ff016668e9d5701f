package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"globalpartner_checkout/internal/config"
	"globalpartner_checkout/internal/domain/entities"
)

func TestFunctionsClient(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/generate-contract-pdf":
			_, _ = w.Write([]byte(`{"success":true,"pdf_url":"https://files/contract.pdf"}`))
		case "/generate-annex-pdf":
			_, _ = w.Write([]byte(`{"success":true,"file_path":"annex/ord-1.pdf"}`))
		case "/send-seller-payment-notification":
			_, _ = w.Write([]byte(`{"success":false,"error":"seller has no email"}`))
		case "/send-admin-payment-notification":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			_, _ = w.Write([]byte(`{"success":true}`))
		}
	}))
	defer srv.Close()

	c := NewFunctionsClient(config.FunctionsConfig{BaseURL: srv.URL + "/", APIKey: "k"}, srv.Client())
	ctx := context.Background()

	url, err := c.GenerateContractPDF(ctx, "ord-1")
	if err != nil || url != "https://files/contract.pdf" {
		t.Fatalf("contract: got %q err=%v", url, err)
	}
	if gotAuth != "Bearer k" || gotBody["order_id"] != "ord-1" {
		t.Fatalf("unexpected request auth=%q body=%v", gotAuth, gotBody)
	}

	path, err := c.GenerateAnnexPDF(ctx, "ord-1")
	if err != nil || path != "annex/ord-1.pdf" {
		t.Fatalf("annex: got %q err=%v", path, err)
	}

	if err := c.SendClientConfirmation(ctx, "ord-1"); err != nil || gotPath != "/send-payment-confirmation-email" {
		t.Fatalf("client email: path=%s err=%v", gotPath, err)
	}

	err = c.SendSellerNotification(ctx, "ord-1", entities.Seller{ID: "s-1"})
	if !errors.Is(err, ErrFunctionFailed) {
		t.Fatalf("expected ErrFunctionFailed for success=false, got %v", err)
	}

	err = c.SendAdminNotification(ctx, "ord-1", entities.Admin{Email: "admin@test.com"})
	if !errors.Is(err, ErrFunctionFailed) {
		t.Fatalf("expected ErrFunctionFailed for 500, got %v", err)
	}
}

func TestFunctionsClient_NotConfigured(t *testing.T) {
	c := NewFunctionsClient(config.FunctionsConfig{}, nil)
	if _, err := c.GenerateInvoicePDF(context.Background(), "ord-1"); !errors.Is(err, ErrFunctionsNotConfigured) {
		t.Fatalf("expected ErrFunctionsNotConfigured, got %v", err)
	}
}
