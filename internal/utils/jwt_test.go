package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func parseClaims(t *testing.T, secret, raw string) jwt.MapClaims {
	t.Helper()
	tok, err := jwt.Parse(raw, func(tok *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("unexpected claims type %T", tok.Claims)
	}
	return claims
}

func TestNewAccessTokenClaims(t *testing.T) {
	role := uint64(3)
	at, err := NewAccessToken("unit-secret", IdentityClaims{
		Email:     "jdoe@example.com",
		Firstname: "Jane",
		Lastname:  "Doe",
		RoleID:    &role,
	}, 30)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	claims := parseClaims(t, "unit-secret", at.Token)
	if claims["sub"] != "jdoe@example.com" {
		t.Errorf("sub = %v, want jdoe@example.com", claims["sub"])
	}
	if claims["firstname"] != "Jane" || claims["lastname"] != "Doe" {
		t.Errorf("name claims = %v %v", claims["firstname"], claims["lastname"])
	}
	if got := claims["role"].(float64); got != 3 {
		t.Errorf("role = %v, want 3", got)
	}
	wantExp := time.Now().UTC().Add(30 * time.Minute)
	if diff := at.Exp.Sub(wantExp); diff < -time.Minute || diff > time.Minute {
		t.Errorf("exp %v too far from %v", at.Exp, wantExp)
	}
}

func TestNewAccessTokenOmitsRoleWhenUnset(t *testing.T) {
	at, err := NewAccessToken("unit-secret", IdentityClaims{Email: "a@b.c"}, 5)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	claims := parseClaims(t, "unit-secret", at.Token)
	if _, present := claims["role"]; present {
		t.Error("role claim should be absent for users without one")
	}
}

func TestAccessTokenRejectsWrongSecret(t *testing.T) {
	at, err := NewAccessToken("right-secret", IdentityClaims{Email: "a@b.c"}, 5)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	_, err = jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("wrong-secret"), nil
	})
	if err == nil {
		t.Error("token verified with the wrong secret")
	}
}
