package static

import (
	"context"
	"net/http/httptest"
	"testing"
)

func TestAuthenticate(t *testing.T) {
	p, err := New("secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		header string
		valid  bool
	}{
		{"valid token", "Bearer secret", true},
		{"missing header", "", false},
		{"wrong scheme", "Basic secret", false},
		{"wrong token", "Bearer guess", false},
		{"case differs", "Bearer SECRET", false},
		{"token prefix", "Bearer secre", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)

			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			_, err := p.Authenticate(context.Background(), r)

			if tt.valid && err != nil {
				t.Errorf("expected success, got %v", err)
			}

			if !tt.valid && err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNewRequiresToken(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Error("expected error for empty token")
	}
}
