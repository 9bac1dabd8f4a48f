package auth

import (
	"errors"
	"testing"
	"time"

	"realty-marketplace/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

func TestSignAndParse(t *testing.T) {
	svc := NewService("test-secret", time.Hour)
	profile := &models.Profile{ID: "user-1", Role: models.RoleAgent}

	token, err := svc.Sign(profile)
	if err != nil {
		t.Fatalf("Sign() = %v", err)
	}

	claims, err := svc.Parse(token)
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("Subject = %q, want user-1", claims.Subject)
	}
	if claims.Role != string(models.RoleAgent) {
		t.Errorf("Role = %q, want agent", claims.Role)
	}
}

func TestParseBearerPrefix(t *testing.T) {
	svc := NewService("test-secret", time.Hour)
	token, err := svc.Sign(&models.Profile{ID: "user-1", Role: models.RoleSeeker})
	if err != nil {
		t.Fatalf("Sign() = %v", err)
	}

	claims, err := svc.Parse("Bearer " + token)
	if err != nil {
		t.Fatalf("Parse() with prefix = %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("Subject = %q, want user-1", claims.Subject)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := NewService("secret-a", time.Hour).Sign(&models.Profile{ID: "u", Role: models.RoleSeeker})
	if err != nil {
		t.Fatalf("Sign() = %v", err)
	}

	if _, err := NewService("secret-b", time.Hour).Parse(token); err == nil {
		t.Fatal("token signed with another secret should be rejected")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	svc := NewService("test-secret", -time.Minute)
	token, err := svc.Sign(&models.Profile{ID: "u", Role: models.RoleSeeker})
	if err != nil {
		t.Fatalf("Sign() = %v", err)
	}

	_, err = svc.Parse(token)
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("Parse() = %v, want ErrTokenExpired", err)
	}
}

func TestParseRejectsEmpty(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	for _, input := range []string{"", "Bearer ", "garbage"} {
		if _, err := svc.Parse(input); err == nil {
			t.Errorf("Parse(%q) should fail", input)
		}
	}
}
