package service

import (
	"crypto/rand"
	"eamcetpro_backend/internal/config"
	"eamcetpro_backend/internal/model"
	"eamcetpro_backend/internal/repository"
	"eamcetpro_backend/internal/util"
	"math/big"
	"time"

	"gorm.io/gorm"
)

type AffiliateService struct {
	Repo *repository.AffiliateRepository
	cfg  *config.AffiliateConfig
}

func NewAffiliateService(repo *repository.AffiliateRepository, cfg *config.Config) *AffiliateService {
	return &AffiliateService{Repo: repo, cfg: &cfg.Affiliate}
}

type AffiliateRegisterRequest struct {
	PaymentMethod string `json:"paymentMethod" binding:"required,oneof=upi bank"`
	UPIID         string `json:"upiId"`
	AccountNumber string `json:"accountNumber"`
	IFSCCode      string `json:"ifscCode"`
}

// Register enrolls a user as an affiliate with a fresh referral code.
func (s *AffiliateService) Register(userID uint, req AffiliateRegisterRequest) (*model.Affiliate, error) {
	existing, err := s.Repo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, util.ErrAlreadyAffiliate
	}

	var details map[string]string
	switch req.PaymentMethod {
	case "upi":
		if req.UPIID == "" {
			return nil, util.ErrMissingPayoutDetails
		}
		details = map[string]string{"upi_id": req.UPIID}
	case "bank":
		if req.AccountNumber == "" || req.IFSCCode == "" {
			return nil, util.ErrMissingPayoutDetails
		}
		details = map[string]string{"account_number": req.AccountNumber, "ifsc_code": req.IFSCCode}
	}

	code, err := newReferralCode(s.cfg.CodeLength)
	if err != nil {
		return nil, err
	}

	affiliate := &model.Affiliate{
		UserID:          userID,
		Code:            code,
		PaymentMethod:   req.PaymentMethod,
		PaymentDetails:  details,
		Status:          "active",
		TermsAcceptedAt: time.Now(),
	}
	if err := s.Repo.Create(affiliate); err != nil {
		return nil, err
	}
	return affiliate, nil
}

// RecordVisit attributes a referred visit to the affiliate owning the code.
// Returns the affiliate id so the handler can set the attribution cookie.
func (s *AffiliateService) RecordVisit(code string, userID *uint, visitorIP, referrer, userAgent string) (uint, error) {
	affiliate, err := s.Repo.FindByCode(code)
	if err == gorm.ErrRecordNotFound {
		return 0, util.ErrAffiliateNotFound
	}
	if err != nil {
		return 0, err
	}

	visit := &model.AffiliateVisit{
		AffiliateID: affiliate.ID,
		UserID:      userID,
		VisitorIP:   visitorIP,
		Referrer:    referrer,
		UserAgent:   userAgent,
	}
	if err := s.Repo.CreateVisit(visit); err != nil {
		return 0, err
	}
	return affiliate.ID, nil
}

func (s *AffiliateService) AttributionWindow() time.Duration {
	return s.cfg.AttributionWindow
}

type AffiliateDashboard struct {
	Code        string `json:"code"`
	Status      string `json:"status"`
	TotalVisits int64  `json:"totalVisits"`
	Signups     int64  `json:"signups"`
}

func (s *AffiliateService) Dashboard(userID uint) (*AffiliateDashboard, error) {
	affiliate, err := s.Repo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if affiliate == nil {
		return nil, util.ErrAffiliateNotFound
	}

	visits, err := s.Repo.CountVisits(affiliate.ID)
	if err != nil {
		return nil, err
	}
	signups, err := s.Repo.CountSignups(affiliate.ID)
	if err != nil {
		return nil, err
	}

	return &AffiliateDashboard{
		Code:        affiliate.Code,
		Status:      affiliate.Status,
		TotalVisits: visits,
		Signups:     signups,
	}, nil
}

const codeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// newReferralCode draws each character uniformly from the alphabet. A plain
// byte%62 mapping would skew toward the front of the alphabet.
func newReferralCode(length int) (string, error) {
	max := big.NewInt(int64(len(codeAlphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return string(buf), nil
}
