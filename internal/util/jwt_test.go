package util

import (
	"eamcetpro_backend/internal/model"
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	secret := "0123456789abcdef0123456789abcdef"
	user := &model.User{
		BaseModel: model.BaseModel{ID: 42},
		Phone:     "9876543210",
		Role:      model.Student,
	}

	token, err := GenerateJWT(user, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(token, secret)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Phone != "9876543210" {
		t.Errorf("Phone = %q", claims.Phone)
	}
	if claims.Role != model.Student {
		t.Errorf("Role = %q", claims.Role)
	}
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	user := &model.User{BaseModel: model.BaseModel{ID: 1}, Phone: "1", Role: model.Student}
	token, err := GenerateJWT(user, "0123456789abcdef0123456789abcdef", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ParseJWT(token, "another-secret-another-secret-ab"); err == nil {
		t.Fatal("ParseJWT accepted a token signed with a different secret")
	}
}

func TestParseJWTRejectsExpired(t *testing.T) {
	user := &model.User{BaseModel: model.BaseModel{ID: 1}, Phone: "1", Role: model.Student}
	token, err := GenerateJWT(user, "0123456789abcdef0123456789abcdef", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ParseJWT(token, "0123456789abcdef0123456789abcdef"); err == nil {
		t.Fatal("ParseJWT accepted an expired token")
	}
}

func TestParseJWTRejectsGarbage(t *testing.T) {
	if _, err := ParseJWT("not-a-token", "0123456789abcdef0123456789abcdef"); err == nil {
		t.Fatal("ParseJWT accepted garbage")
	}
}
