package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrPhoneRegistered    = errors.New("phone number already registered")
	ErrInvalidCredentials = errors.New("invalid phone number or password")
	ErrOTPFailed          = errors.New("otp verification failed")

	ErrTestNotFound     = errors.New("test not found")
	ErrTestNotPublished = errors.New("test not published or not accessible")
	ErrDataIntegrity    = errors.New("section and question numbering are inconsistent")
	ErrInvalidOption    = errors.New("answer references an option the question does not have")

	ErrSessionNotFound   = errors.New("exam session not found")
	ErrSessionSubmitted  = errors.New("exam session already submitted")
	ErrAnalyticsConflict = errors.New("analytics update lost a concurrent race")

	ErrOrderNotFound        = errors.New("payment order not found")
	ErrInvalidSignature     = errors.New("payment signature verification failed")
	ErrAlreadyAffiliate     = errors.New("already registered as an affiliate")
	ErrAffiliateNotFound    = errors.New("affiliate code not found")
	ErrMissingPayoutDetails = errors.New("payout details are incomplete")
)
