package webhooksig

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"strings"
	"testing"
)

func TestHMACVerifier(t *testing.T) {
	v := NewHMACVerifier("s3cret")
	body := []byte(`{"event":"event_order_paid"}`)
	sig := v.Sign(body)

	tests := []struct {
		name      string
		signature string
		wantErr   error
	}{
		{"valid", sig, nil},
		{"valid with prefix", "sha256=" + sig, nil},
		{"missing", "", ErrMissingSignature},
		{"not hex", "zz", ErrInvalidSignature},
		{"wrong", strings.Repeat("0", 64), ErrInvalidSignature},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Verify(body, tt.signature)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRSAVerifier(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("marshal key: %v", err)
	}
	pemKey := string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))

	// single-line env var form
	v, err := NewRSAVerifier(strings.ReplaceAll(pemKey, "\n", `\n`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := []byte(`{"event_type":"transfers#state-change"}`)
	digest := sha256.Sum256(body)
	raw, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, digest[:])
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	sig := base64.StdEncoding.EncodeToString(raw)

	if err := v.Verify(body, sig); err != nil {
		t.Fatalf("expected valid signature, got %v", err)
	}
	if err := v.Verify([]byte(`{"tampered":true}`), sig); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
	if err := v.Verify(body, ""); !errors.Is(err, ErrMissingSignature) {
		t.Fatalf("expected ErrMissingSignature, got %v", err)
	}
}

func TestNewRSAVerifier_InvalidKey(t *testing.T) {
	if _, err := NewRSAVerifier("not a key"); !errors.Is(err, ErrInvalidPublicKey) {
		t.Fatalf("expected ErrInvalidPublicKey, got %v", err)
	}
}
