package service

import (
	"context"
	"eamcetpro_backend/internal/config"
	"eamcetpro_backend/internal/model"
	"eamcetpro_backend/internal/repository"
	"eamcetpro_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	Users *repository.UserRepository
	OTP   *OTPService
	cfg   *config.Config
}

func NewAuthService(users *repository.UserRepository, otp *OTPService, cfg *config.Config) *AuthService {
	return &AuthService{Users: users, OTP: otp, cfg: cfg}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required,min=8"`
	OTPCode  string `json:"otpCode" binding:"required"`
}

// RequestOTP begins registration (or password reset) for a phone number.
func (s *AuthService) RequestOTP(ctx context.Context, phone string) error {
	return s.OTP.Send(ctx, phone)
}

// Register creates the account once the phone number is OTP-verified.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, string, error) {
	if _, err := s.Users.FindByPhone(req.Phone); err == nil {
		return nil, "", util.ErrPhoneRegistered
	} else if err != gorm.ErrRecordNotFound {
		return nil, "", err
	}

	if err := s.OTP.Verify(ctx, req.Phone, req.OTPCode); err != nil {
		return nil, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: string(hashed),
		Role:     model.Student,
	}
	if err := s.Users.Create(user); err != nil {
		return nil, "", err
	}

	token, err := util.GenerateJWT(user, s.cfg.JWT.Secret, s.cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies phone+password and issues a session token.
func (s *AuthService) Login(phone, password string) (*model.User, string, error) {
	user, err := s.Users.FindByPhone(phone)
	if err == gorm.ErrRecordNotFound {
		return nil, "", util.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.cfg.JWT.Secret, s.cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ResetPassword replaces the password after OTP verification of the phone.
func (s *AuthService) ResetPassword(ctx context.Context, phone, code, newPassword string) error {
	user, err := s.Users.FindByPhone(phone)
	if err == gorm.ErrRecordNotFound {
		return util.ErrUserNotFound
	}
	if err != nil {
		return err
	}

	if err := s.OTP.Verify(ctx, phone, code); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.Users.UpdatePassword(user.ID, string(hashed))
}

func (s *AuthService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.Users.FindByID(userID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrUserNotFound
	}
	return user, err
}
