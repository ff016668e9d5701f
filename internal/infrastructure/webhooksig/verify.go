// Package webhooksig verifies the signatures providers attach to webhook
// deliveries.
package webhooksig

import (
	"crypto"
	"crypto/hmac"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingSignature = errors.New("missing webhook signature")
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrInvalidPublicKey = errors.New("invalid webhook public key")
)

// Verifier checks a raw request body against its signature header value.
type Verifier interface {
	Verify(body []byte, signature string) error
}

// HMACVerifier expects a hex encoded HMAC-SHA256 of the body, optionally
// prefixed with "sha256=".
type HMACVerifier struct {
	secret []byte
}

func NewHMACVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{secret: []byte(secret)}
}

func (v *HMACVerifier) Verify(body []byte, signature string) error {
	signature = strings.TrimPrefix(strings.TrimSpace(signature), "sha256=")
	if signature == "" {
		return ErrMissingSignature
	}
	got, err := hex.DecodeString(signature)
	if err != nil {
		return ErrInvalidSignature
	}
	mac := hmac.New(sha256.New, v.secret)
	mac.Write(body)
	if !hmac.Equal(got, mac.Sum(nil)) {
		return ErrInvalidSignature
	}
	return nil
}

// Sign is the counterpart of Verify, used by tests and local tooling.
func (v *HMACVerifier) Sign(body []byte) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// RSAVerifier checks a base64 RSA-SHA256 (PKCS#1 v1.5) signature, the scheme
// Wise uses for X-Signature-SHA256.
type RSAVerifier struct {
	key *rsa.PublicKey
}

// NewRSAVerifier parses a PEM public key. Literal "\n" sequences are
// accepted so the key can live in a single-line env var.
func NewRSAVerifier(publicKeyPEM string) (*RSAVerifier, error) {
	publicKeyPEM = strings.ReplaceAll(strings.TrimSpace(publicKeyPEM), `\n`, "\n")
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block", ErrInvalidPublicKey)
	}

	if pub, err := x509.ParsePKIXPublicKey(block.Bytes); err == nil {
		if key, ok := pub.(*rsa.PublicKey); ok {
			return &RSAVerifier{key: key}, nil
		}
		return nil, fmt.Errorf("%w: not an RSA key", ErrInvalidPublicKey)
	}
	key, err := x509.ParsePKCS1PublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return &RSAVerifier{key: key}, nil
}

func (v *RSAVerifier) Verify(body []byte, signature string) error {
	signature = strings.TrimSpace(signature)
	if signature == "" {
		return ErrMissingSignature
	}
	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return ErrInvalidSignature
	}
	digest := sha256.Sum256(body)
	if err := rsa.VerifyPKCS1v15(v.key, crypto.SHA256, digest[:], sig); err != nil {
		return ErrInvalidSignature
	}
	return nil
}
