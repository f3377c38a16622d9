package auth

import (
	"errors"
	"testing"
	"time"
)

func TestNewJWTManager_RequiresSecret(t *testing.T) {
	if _, err := NewJWTManager("", time.Hour); !errors.Is(err, ErrNoSecret) {
		t.Errorf("error = %v, want ErrNoSecret", err)
	}
}

func TestGenerateValidate(t *testing.T) {
	m, err := NewJWTManager("secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	token, err := m.Generate("kitchen-tablet")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.Subject != "kitchen-tablet" {
		t.Errorf("Subject = %q", claims.Subject)
	}
	if claims.Issuer != issuer {
		t.Errorf("Issuer = %q", claims.Issuer)
	}
}

func TestValidate_Rejects(t *testing.T) {
	m, _ := NewJWTManager("secret", time.Hour)
	other, _ := NewJWTManager("other-secret", time.Hour)

	foreign, err := other.Generate("x")
	if err != nil {
		t.Fatal(err)
	}

	expiring, _ := NewJWTManager("secret", time.Minute)
	expiring.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiring.Generate("x")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", foreign},
		{"expired", expired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Validate(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Validate() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr error
	}{
		{"", "", ErrMissingToken},
		{"Bearer abc", "abc", nil},
		{"bearer abc", "abc", nil},
		{"Basic abc", "", ErrInvalidToken},
		{"Bearer", "", ErrInvalidToken},
		{"Bearer   ", "", ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := BearerToken(tt.header)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("token = %q, want %q", got, tt.want)
			}
		})
	}
}
