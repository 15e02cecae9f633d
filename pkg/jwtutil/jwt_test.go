package jwtutil

import (
	"testing"

	"propertyhub-api/pkg/config"
)

// Tests mutate the package-level signing state via Initialize, so they run
// sequentially and restore the default configuration when done.

func restoreDefaults() {
	Initialize(&config.JWTConfig{SigningKey: "your-secret-key", ExpirationDays: 7})
}

func TestGenerateAndValidate_Success(t *testing.T) {
	defer restoreDefaults()
	Initialize(&config.JWTConfig{SigningKey: "super-secret", ExpirationDays: 1})

	tok, err := GenerateToken("64f0c1a2b3c4d5e6f7a8b9c0", "a@b.com", "buyer")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := ValidateToken(tok)
	if err != nil {
		t.Fatalf("ValidateToken error: %v", err)
	}
	if claims.UserID != "64f0c1a2b3c4d5e6f7a8b9c0" {
		t.Fatalf("userId mismatch: got %q", claims.UserID)
	}
	if claims.Email != "a@b.com" {
		t.Fatalf("email mismatch: got %q", claims.Email)
	}
	if claims.UserType != "buyer" {
		t.Fatalf("userType mismatch: got %q", claims.UserType)
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatalf("expected issued/expiry timestamps to be set")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	defer restoreDefaults()
	Initialize(&config.JWTConfig{SigningKey: "secret", ExpirationDays: -1})

	tok, err := GenerateToken("u1", "u1@example.com", "seller")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := ValidateToken(tok); err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	defer restoreDefaults()

	Initialize(&config.JWTConfig{SigningKey: "right-secret", ExpirationDays: 1})
	tok, err := GenerateToken("u2", "u2@example.com", "agent")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	Initialize(&config.JWTConfig{SigningKey: "wrong-secret", ExpirationDays: 1})
	if _, err := ValidateToken(tok); err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
}

func TestValidateToken_Malformed(t *testing.T) {
	defer restoreDefaults()

	if _, err := ValidateToken("not.a.jwt"); err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}
