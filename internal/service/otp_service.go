package service

import (
	"context"
	"eamcetpro_backend/internal/config"
	"eamcetpro_backend/internal/util"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
)

// OTPService fronts the SMS verification provider. The provider hands back a
// verification id on send; we park it in Redis keyed by phone so the verify
// call can find it without the client round-tripping provider internals.
type OTPService struct {
	cfg    *config.OTPConfig
	client *http.Client
	rdb    *redis.Client
}

func NewOTPService(cfg *config.Config, rdb *redis.Client) *OTPService {
	return &OTPService{
		cfg:    &cfg.OTP,
		client: &http.Client{Timeout: 10 * time.Second},
		rdb:    rdb,
	}
}

type otpResponse struct {
	ResponseCode int    `json:"responseCode"`
	Message      string `json:"message"`
	Data         struct {
		VerificationID     string `json:"verificationId"`
		VerificationStatus string `json:"verificationStatus"`
	} `json:"data"`
}

func (s *OTPService) verificationKey(phone string) string {
	return fmt.Sprintf("otp:verification:%s", phone)
}

// Send requests a code for the phone number and remembers the provider's
// verification id for ten minutes.
func (s *OTPService) Send(ctx context.Context, phone string) error {
	url := fmt.Sprintf("%s/send?countryCode=%s&customerId=%s&flowType=SMS&mobileNumber=%s",
		s.cfg.BaseURL, s.cfg.CountryCode, s.cfg.CustomerID, phone)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("authToken", s.cfg.AuthToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var body otpResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return err
	}
	if body.ResponseCode != 200 || body.Data.VerificationID == "" {
		return util.ErrOTPFailed
	}

	return s.rdb.Set(ctx, s.verificationKey(phone), body.Data.VerificationID, 10*time.Minute).Err()
}

// Verify checks the code against the pending verification for the phone.
func (s *OTPService) Verify(ctx context.Context, phone, code string) error {
	verificationID, err := s.rdb.Get(ctx, s.verificationKey(phone)).Result()
	if err != nil {
		return util.ErrOTPFailed
	}

	url := fmt.Sprintf("%s/validateOtp?countryCode=%s&mobileNumber=%s&verificationId=%s&customerId=%s&code=%s",
		s.cfg.BaseURL, s.cfg.CountryCode, phone, verificationID, s.cfg.CustomerID, code)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("authToken", s.cfg.AuthToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var body otpResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return err
	}
	if body.ResponseCode != 200 || body.Data.VerificationStatus != "VERIFICATION_COMPLETED" {
		return util.ErrOTPFailed
	}

	s.rdb.Del(ctx, s.verificationKey(phone))
	return nil
}
