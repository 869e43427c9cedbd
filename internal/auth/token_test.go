package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenValidityWindow(t *testing.T) {
	issuedAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	clock := issuedAt
	tokens, err := NewTokenIssuer("window-secret", WithClock(func() time.Time { return clock }))
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}

	signed, exp, err := tokens.IssueFor(Principal{ID: "p1", Kind: KindUser, Role: RoleAdmin})
	if err != nil {
		t.Fatalf("IssueFor: %v", err)
	}
	if !exp.Equal(issuedAt.Add(24 * time.Hour)) {
		t.Fatalf("unexpected expiry: %v", exp)
	}

	clock = issuedAt.Add(23*time.Hour + 59*time.Minute)
	if _, err := tokens.ParseAndValidate(signed); err != nil {
		t.Fatalf("token should still be valid at T+23h59m: %v", err)
	}

	clock = issuedAt.Add(24*time.Hour + 1*time.Minute)
	if _, err := tokens.ParseAndValidate(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("token should be expired at T+24h01m, got %v", err)
	}
}

func TestClaimShapesDifferByKind(t *testing.T) {
	tokens, err := NewTokenIssuer("shape-secret")
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}

	userToken, _, err := tokens.IssueFor(Principal{ID: "u1", Kind: KindUser, Role: RoleEvaluator, Email: "u@x.com"})
	if err != nil {
		t.Fatalf("issue user token: %v", err)
	}
	claims, err := tokens.ParseAndValidate(userToken)
	if err != nil {
		t.Fatalf("parse user token: %v", err)
	}
	if claims.Role != RoleEvaluator {
		t.Fatalf("unexpected role: %q", claims.Role)
	}
	if claims.Tipo != "" || claims.Email != "" || claims.FullName != "" {
		t.Fatalf("user token must carry role only, got %+v", claims)
	}

	profile := validOwnerProfile()
	ownerToken, _, err := tokens.IssueFor(Principal{
		ID: "o1", Kind: KindOwner, Email: "o@x.com", Profile: &profile,
	})
	if err != nil {
		t.Fatalf("issue owner token: %v", err)
	}
	claims, err = tokens.ParseAndValidate(ownerToken)
	if err != nil {
		t.Fatalf("parse owner token: %v", err)
	}
	if claims.Tipo != string(KindOwner) {
		t.Fatalf("unexpected tipo: %q", claims.Tipo)
	}
	if claims.Email != "o@x.com" || claims.FullName != profile.FullName {
		t.Fatalf("owner claims incomplete: %+v", claims)
	}
	if claims.Role != "" {
		t.Fatalf("owner token must not carry a role, got %q", claims.Role)
	}
}

func TestParseRejectsForeignAndEmptyTokens(t *testing.T) {
	tokens, err := NewTokenIssuer("right-secret")
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	other, err := NewTokenIssuer("wrong-secret")
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}

	foreign, _, err := other.IssueFor(Principal{ID: "x", Kind: KindUser, Role: RoleAdmin})
	if err != nil {
		t.Fatalf("IssueFor: %v", err)
	}
	if _, err := tokens.ParseAndValidate(foreign); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign signature, got %v", err)
	}
	if _, err := tokens.ParseAndValidate(""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for empty token, got %v", err)
	}
	if _, err := tokens.ParseAndValidate("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}
}

func TestNewTokenIssuerRequiresSecret(t *testing.T) {
	if _, err := NewTokenIssuer("   "); err == nil {
		t.Fatal("expected error for blank secret")
	}
}
