package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func signPayment(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	secret := "test_key_secret"
	orderID := "order_MkWq2vL9XhT1Ab"
	paymentID := "pay_MkWrF3nQz8Yc5d"

	valid := signPayment(orderID, paymentID, secret)

	cases := []struct {
		name      string
		orderID   string
		paymentID string
		signature string
		secret    string
		want      bool
	}{
		{"valid", orderID, paymentID, valid, secret, true},
		{"wrong secret", orderID, paymentID, valid, "other_secret", false},
		{"tampered order", "order_other", paymentID, valid, secret, false},
		{"tampered payment", orderID, "pay_other", valid, secret, false},
		{"empty signature", orderID, paymentID, "", secret, false},
		{"garbage signature", orderID, paymentID, "deadbeef", secret, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := VerifySignature(tc.orderID, tc.paymentID, tc.signature, tc.secret); got != tc.want {
				t.Errorf("VerifySignature = %v, want %v", got, tc.want)
			}
		})
	}
}
