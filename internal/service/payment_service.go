package service

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"eamcetpro_backend/internal/config"
	"eamcetpro_backend/internal/model"
	"eamcetpro_backend/internal/repository"
	"eamcetpro_backend/internal/util"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// PaymentService wraps the Razorpay order API and its signature handshake.
// Orders are rows in payment_orders from creation; a row flips to paid only
// after the HMAC of "orderID|paymentID" verifies against the key secret.
type PaymentService struct {
	Orders *repository.PaymentRepository
	Users  *repository.UserRepository
	cfg    *config.RazorpayConfig
	client *http.Client
}

func NewPaymentService(orders *repository.PaymentRepository, users *repository.UserRepository, cfg *config.Config) *PaymentService {
	return &PaymentService{
		Orders: orders,
		Users:  users,
		cfg:    &cfg.Razorpay,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type gatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateOrder opens a gateway order for the premium plan and records it.
func (s *PaymentService) CreateOrder(ctx context.Context, userID uint) (*model.PaymentOrder, error) {
	receipt := "rcpt_" + uuid.New().String()[:13]

	payload, err := json.Marshal(map[string]interface{}{
		"amount":   s.cfg.PlanAmount,
		"currency": "INR",
		"receipt":  receipt,
		"notes":    map[string]string{"user_id": fmt.Sprintf("%d", userID)},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/orders", bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(s.cfg.KeyID, s.cfg.KeySecret)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway order creation failed: status %d", resp.StatusCode)
	}

	var created gatewayOrder
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, err
	}

	order := &model.PaymentOrder{
		UserID:      userID,
		OrderID:     created.ID,
		Receipt:     receipt,
		AmountPaise: created.Amount,
		Currency:    created.Currency,
		Status:      "created",
	}
	if err := s.Orders.Create(order); err != nil {
		return nil, err
	}
	return order, nil
}

// VerifyPayment checks the checkout callback signature and, on success, marks
// the order paid and upgrades the user to premium.
func (s *PaymentService) VerifyPayment(userID uint, orderID, paymentID, signature string) error {
	order, err := s.Orders.FindByOrderID(orderID)
	if err != nil {
		return util.ErrOrderNotFound
	}
	if order.UserID != userID {
		return util.ErrOrderNotFound
	}

	if !VerifySignature(orderID, paymentID, signature, s.cfg.KeySecret) {
		s.Orders.MarkFailed(orderID)
		return util.ErrInvalidSignature
	}

	if err := s.Orders.MarkPaid(orderID, paymentID); err != nil {
		return err
	}

	until := time.Now().AddDate(0, 0, s.cfg.PlanDurationDays)
	return s.Users.SetPremium(userID, until)
}

// VerifySignature recomputes HMAC-SHA256 over "orderID|paymentID" and
// compares in constant time.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}
