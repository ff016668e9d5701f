package cache

import (
	"context"
	"testing"

	"globalpartner_checkout/internal/config"
)

func TestNewRecipientCache_DisabledWithoutAddr(t *testing.T) {
	if c := NewRecipientCache(config.RedisConfig{}, "checkout"); c != nil {
		t.Fatalf("expected nil cache without address")
	}
}

func TestRecipientCache_GenerateKey(t *testing.T) {
	c := NewRecipientCache(config.RedisConfig{Addr: "127.0.0.1:6379"}, "checkout")
	defer c.Close()

	got := c.GenerateKey("wise-recipient", "USD:aba:abc123")
	if got != "checkout:wise-recipient:USD:aba:abc123" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestRecipientCache_DeleteSurfacesConnectionErrors(t *testing.T) {
	c := NewRecipientCache(config.RedisConfig{Addr: "127.0.0.1:1"}, "checkout")
	defer c.Close()

	if err := c.Delete(context.Background(), "USD:aba:abc123"); err == nil {
		t.Fatalf("expected error from unreachable redis")
	}
}
