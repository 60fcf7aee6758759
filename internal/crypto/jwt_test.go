package crypto

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssue(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	token, err := m.Issue("a@b.com")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("Issue() returned empty string")
	}
}

func TestIssueEmptyIdentity(t *testing.T) {
	_, err := NewTokenManager("test-secret", time.Hour).Issue("")
	if err != ErrEmptyIdentity {
		t.Errorf("Issue() error = %v, want ErrEmptyIdentity", err)
	}
}

func TestVerifyRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	for _, identity := range []string{"a@b.com", "Mixed.Case@Example.org", "x"} {
		token, err := m.Issue(identity)
		if err != nil {
			t.Fatalf("Issue(%q) unexpected error: %v", identity, err)
		}

		claims, err := m.Verify(token)
		if err != nil {
			t.Fatalf("Verify() unexpected error: %v", err)
		}
		if claims.Identity() != identity {
			t.Errorf("Verify() identity = %q, want %q", claims.Identity(), identity)
		}
		if claims.Email != identity {
			t.Errorf("Verify() email = %q, want %q", claims.Email, identity)
		}
	}
}

func TestVerifyExpiryBoundary(t *testing.T) {
	issuer := NewTokenManager("test-secret", time.Hour, WithClock(fixedClock(t0)))
	token, err := issuer.Issue("a@b.com")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	tests := []struct {
		name    string
		at      time.Time
		wantErr error
	}{
		{"fresh", t0, nil},
		{"before expiry", t0.Add(59 * time.Minute), nil},
		{"at expiry", t0.Add(time.Hour), ErrTokenExpired},
		{"after expiry", t0.Add(61 * time.Minute), ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := NewTokenManager("test-secret", time.Hour, WithClock(fixedClock(tt.at)))
			_, err := verifier.Verify(token)
			if err != tt.wantErr {
				t.Errorf("Verify() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestVerifyMalformed(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	for _, token := range []string{"", "not-a-valid-token", "a.b.c"} {
		if _, err := m.Verify(token); err != ErrTokenInvalid {
			t.Errorf("Verify(%q) error = %v, want ErrTokenInvalid", token, err)
		}
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := NewTokenManager("correct-secret", time.Hour).Issue("a@b.com")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	_, err = NewTokenManager("wrong-secret", time.Hour).Verify(token)
	if err != ErrTokenInvalid {
		t.Errorf("Verify() error = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyTamperedPayload(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	token, err := m.Issue("a@b.com")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}
	other, err := m.Issue("mallory@b.com")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	parts := strings.Split(token, ".")
	forged := strings.Split(other, ".")
	parts[1] = forged[1]

	if _, err := m.Verify(strings.Join(parts, ".")); err != ErrTokenInvalid {
		t.Errorf("Verify() error = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyExpiredAndBadSignatureIsInvalid(t *testing.T) {
	token, err := NewTokenManager("other-secret", time.Hour, WithClock(fixedClock(t0))).Issue("a@b.com")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	m := NewTokenManager("test-secret", time.Hour, WithClock(fixedClock(t0.Add(2*time.Hour))))
	if _, err := m.Verify(token); err != ErrTokenInvalid {
		t.Errorf("Verify() error = %v, want ErrTokenInvalid", err)
	}
}

func signClaims(t *testing.T, claims jwt.Claims, method jwt.SigningMethod, key interface{}) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}
	return s
}

func TestVerifyRejectsForeignClaims(t *testing.T) {
	secret := "test-secret"
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	tests := []struct {
		name  string
		token string
	}{
		{
			name: "wrong issuer",
			token: signClaims(t, Claims{RegisteredClaims: jwt.RegisteredClaims{
				Issuer: "wrong-issuer", Subject: "a@b.com", Audience: jwt.ClaimStrings{tokenAudience}, ExpiresAt: exp,
			}}, jwt.SigningMethodHS256, []byte(secret)),
		},
		{
			name: "wrong audience",
			token: signClaims(t, Claims{RegisteredClaims: jwt.RegisteredClaims{
				Issuer: tokenIssuer, Subject: "a@b.com", Audience: jwt.ClaimStrings{"wrong-audience"}, ExpiresAt: exp,
			}}, jwt.SigningMethodHS256, []byte(secret)),
		},
		{
			name: "missing expiry",
			token: signClaims(t, Claims{RegisteredClaims: jwt.RegisteredClaims{
				Issuer: tokenIssuer, Subject: "a@b.com", Audience: jwt.ClaimStrings{tokenAudience},
			}}, jwt.SigningMethodHS256, []byte(secret)),
		},
		{
			name: "missing subject",
			token: signClaims(t, Claims{RegisteredClaims: jwt.RegisteredClaims{
				Issuer: tokenIssuer, Audience: jwt.ClaimStrings{tokenAudience}, ExpiresAt: exp,
			}}, jwt.SigningMethodHS256, []byte(secret)),
		},
		{
			name: "other hmac method",
			token: signClaims(t, Claims{RegisteredClaims: jwt.RegisteredClaims{
				Issuer: tokenIssuer, Subject: "a@b.com", Audience: jwt.ClaimStrings{tokenAudience}, ExpiresAt: exp,
			}}, jwt.SigningMethodHS512, []byte(secret)),
		},
	}

	m := NewTokenManager(secret, time.Hour)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Verify(tt.token); err != ErrTokenInvalid {
				t.Errorf("Verify() error = %v, want ErrTokenInvalid", err)
			}
		})
	}
}

func TestDecodeIgnoresSignature(t *testing.T) {
	token, err := NewTokenManager("server-only-secret", time.Hour, WithClock(fixedClock(t0))).Issue("a@b.com")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	claims, err := Decode(token)
	if err != nil {
		t.Fatalf("Decode() unexpected error: %v", err)
	}
	if claims.Identity() != "a@b.com" {
		t.Errorf("Decode() identity = %q, want %q", claims.Identity(), "a@b.com")
	}
	if !claims.ExpiresAt.Time.Equal(t0.Add(time.Hour)) {
		t.Errorf("Decode() exp = %v, want %v", claims.ExpiresAt.Time, t0.Add(time.Hour))
	}
}

func TestDecodeMalformed(t *testing.T) {
	if _, err := Decode("garbage"); err != ErrTokenInvalid {
		t.Errorf("Decode() error = %v, want ErrTokenInvalid", err)
	}
}
