package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TestCodec_RoundTrip は発行直後のトークンが検証に成功し、埋め込まれたアカウントIDが返ることを検証します。
func TestCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		accountID uint
	}{
		{"account id 1", 1},
		{"account id 42", 42},
		{"large account id", 999999},
	}

	codec := NewCodec("test-secret", time.Hour)

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tok, err := codec.Issue(tt.accountID)
			if err != nil {
				t.Fatalf("unexpected error issuing token: %v", err)
			}
			if tok == "" {
				t.Fatal("expected non-empty token")
			}

			got, err := codec.Validate(tok)
			if err != nil {
				t.Fatalf("unexpected error validating token: %v", err)
			}
			if got != tt.accountID {
				t.Errorf("expected account id %d, got %d", tt.accountID, got)
			}
		})
	}
}

// TestCodec_Validate_Expired はmax_ageを超えたトークンが拒否されることを検証します。
// max_age=0のトークンは、発行から1秒でも経過していれば無効でなければなりません。
func TestCodec_Validate_Expired(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	codec := NewCodec("test-secret", time.Hour)
	codec.now = func() time.Time { return issuedAt }

	tok, err := codec.Issue(7)
	if err != nil {
		t.Fatalf("unexpected error issuing token: %v", err)
	}

	tests := []struct {
		name    string
		elapsed time.Duration
		maxAge  time.Duration
		wantErr bool
	}{
		{"fresh token within max age", time.Minute, time.Hour, false},
		{"exactly at max age", time.Hour, time.Hour, false},
		{"one second past max age", time.Hour + time.Second, time.Hour, true},
		{"max age zero after one second", time.Second, 0, true},
		{"max age zero after a day", 24 * time.Hour, 0, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			codec.now = func() time.Time { return issuedAt.Add(tt.elapsed) }

			got, err := codec.ValidateWithMaxAge(tok, tt.maxAge)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalid) {
					t.Fatalf("expected ErrInvalid, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != 7 {
				t.Errorf("expected account id 7, got %d", got)
			}
		})
	}
}

// TestCodec_Validate_WrongSecret は別のシークレットで署名されたトークンが決して検証されないことを検証します。
func TestCodec_Validate_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewCodec("secret-k1", time.Hour)
	verifier := NewCodec("secret-k2", time.Hour)

	tok, err := issuer.Issue(1)
	if err != nil {
		t.Fatalf("unexpected error issuing token: %v", err)
	}

	if _, err := verifier.Validate(tok); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for token signed with another secret, got %v", err)
	}
}

// TestCodec_Validate_WrongPurpose verifies that an otherwise valid token minted
// for another purpose is rejected.
func TestCodec_Validate_WrongPurpose(t *testing.T) {
	t.Parallel()

	const secret = "test-secret"
	codec := NewCodec(secret, time.Hour)

	tests := []struct {
		name    string
		purpose any
	}{
		{"different purpose", "password-reset"},
		{"empty purpose", ""},
		{"missing purpose", nil},
		{"non-string purpose", 123},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			claims := jwt.MapClaims{
				"sub": 1,
				"iat": time.Now().Unix(),
			}
			if tt.purpose != nil {
				claims["purpose"] = tt.purpose
			}
			tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
			if err != nil {
				t.Fatalf("failed to sign test token: %v", err)
			}

			if _, err := codec.Validate(tok); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

// TestCodec_Validate_Malformed verifies that garbage input never validates and
// never panics.
func TestCodec_Validate_Malformed(t *testing.T) {
	t.Parallel()

	codec := NewCodec("test-secret", time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"empty string", ""},
		{"garbage", "garbage-token"},
		{"not base64", "!!!.###.$$$"},
		{"truncated jwt", "eyJhbGciOiJIUzI1NiJ9"},
		{"random three segments", "aaaa.bbbb.cccc"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := codec.Validate(tt.token); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

// TestCodec_Validate_NoneAlgorithm verifies that unsigned (alg=none) tokens
// are rejected even when the payload is well-formed.
func TestCodec_Validate_NoneAlgorithm(t *testing.T) {
	t.Parallel()

	codec := NewCodec("test-secret", time.Hour)

	claims := jwt.MapClaims{
		"sub":     1,
		"purpose": "email-verification",
		"iat":     time.Now().Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to create unsigned token: %v", err)
	}

	if _, err := codec.Validate(tok); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for alg=none token, got %v", err)
	}
}

// TestCodec_Validate_MissingSubject verifies that tokens without a usable
// subject claim are rejected.
func TestCodec_Validate_MissingSubject(t *testing.T) {
	t.Parallel()

	const secret = "test-secret"
	codec := NewCodec(secret, time.Hour)

	tests := []struct {
		name string
		sub  any
	}{
		{"missing sub", nil},
		{"zero sub", 0},
		{"string sub", "1"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			claims := jwt.MapClaims{
				"purpose": "email-verification",
				"iat":     time.Now().Unix(),
			}
			if tt.sub != nil {
				claims["sub"] = tt.sub
			}
			tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
			if err != nil {
				t.Fatalf("failed to sign test token: %v", err)
			}

			if _, err := codec.Validate(tok); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

// TestCodec_Issue_IndependentTokens verifies that reissuing does not
// invalidate earlier tokens; each one validates on its own until its age
// exceeds the limit.
func TestCodec_Issue_IndependentTokens(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	codec := NewCodec("test-secret", time.Hour)

	codec.now = func() time.Time { return base }
	first, err := codec.Issue(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	codec.now = func() time.Time { return base.Add(10 * time.Minute) }
	second, err := codec.Issue(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	codec.now = func() time.Time { return base.Add(20 * time.Minute) }
	for _, tok := range []string{first, second} {
		got, err := codec.Validate(tok)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 5 {
			t.Errorf("expected account id 5, got %d", got)
		}
	}
}
