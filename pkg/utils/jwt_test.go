package utils

import (
	"testing"

	"github.com/google/uuid"
)

const testSecret = "test-secret-key"

func TestTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateToken(userID, "alice", "alice@example.com", testSecret)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	userCtx, err := ValidateTokenStringToUUID(token, testSecret)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if userCtx.ID != userID {
		t.Errorf("ID = %v, want %v", userCtx.ID, userID)
	}
	if userCtx.Username != "alice" || userCtx.Email != "alice@example.com" {
		t.Errorf("claims = %+v", userCtx)
	}
}

func TestValidateTokenErrors(t *testing.T) {
	userID := uuid.New()
	token, err := GenerateToken(userID, "alice", "alice@example.com", testSecret)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"wrong secret", token, "other-secret"},
		{"garbage token", "not.a.jwt", testSecret},
		{"empty token", "", testSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateTokenStringToUUID(tt.token, tt.secret); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"bearer token", "Bearer abc123", "abc123"},
		{"missing prefix", "abc123", ""},
		{"empty", "", ""},
		{"prefix only", "Bearer ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractTokenFromHeader(tt.header); got != tt.want {
				t.Errorf("ExtractTokenFromHeader(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}
