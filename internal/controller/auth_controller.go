package controller

import (
	"eamcetpro_backend/internal/config"
	"eamcetpro_backend/internal/service"
	"eamcetpro_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Service *service.AuthService
	cfg     *config.Config
}

func NewAuthController(svc *service.AuthService, cfg *config.Config) *AuthController {
	return &AuthController{Service: svc, cfg: cfg}
}

type otpRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// RequestOTP sends a verification code to a phone number; used by both
// registration and forgot-password.
func (c *AuthController) RequestOTP(ctx *gin.Context) {
	var req otpRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Service.RequestOTP(ctx.Request.Context(), req.Phone); err != nil {
		util.Error(ctx, 502, "Failed to send OTP")
		return
	}
	util.Success(ctx, gin.H{"sent": true})
}

func (c *AuthController) setSessionCookie(ctx *gin.Context, token string) {
	secure := c.cfg.Server.Mode == "release"
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie("session", token, int(c.cfg.JWT.ExpireTime.Seconds()), "/", "", secure, true)
}

func (c *AuthController) Register(ctx *gin.Context) {
	var req service.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, token, err := c.Service.Register(ctx.Request.Context(), req)
	switch err {
	case nil:
	case util.ErrPhoneRegistered:
		util.Conflict(ctx, err.Error())
		return
	case util.ErrOTPFailed:
		util.BadRequest(ctx, err.Error())
		return
	default:
		util.LogInternalError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, token)
	util.Created(ctx, gin.H{"user": user, "token": token})
}

type loginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (c *AuthController) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, token, err := c.Service.Login(req.Phone, req.Password)
	if err == util.ErrInvalidCredentials {
		util.Error(ctx, 401, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, token)
	util.Success(ctx, gin.H{"user": user, "token": token})
}

func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.SetCookie("session", "", -1, "/", "", false, true)
	util.Success(ctx, gin.H{"loggedOut": true})
}

type resetPasswordRequest struct {
	Phone       string `json:"phone" binding:"required"`
	OTPCode     string `json:"otpCode" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req resetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.Service.ResetPassword(ctx.Request.Context(), req.Phone, req.OTPCode, req.NewPassword)
	switch err {
	case nil:
		util.Success(ctx, gin.H{"reset": true})
	case util.ErrUserNotFound:
		util.NotFound(ctx)
	case util.ErrOTPFailed:
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// CheckSession reports whether the request carries a valid session; the app
// shell calls it before opening the exam screen.
func (c *AuthController) CheckSession(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	util.Success(ctx, gin.H{"authenticated": user != nil})
}

func (c *AuthController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.Service.GetProfile(claims.UserID)
	if err == util.ErrUserNotFound {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, user)
}
