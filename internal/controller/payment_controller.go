package controller

import (
	"eamcetpro_backend/internal/service"
	"eamcetpro_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	Service *service.PaymentService
}

func NewPaymentController(svc *service.PaymentService) *PaymentController {
	return &PaymentController{Service: svc}
}

// POST /api/payments/orders opens a gateway order for the premium plan.
func (c *PaymentController) CreateOrder(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	order, err := c.Service.CreateOrder(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, order)
}

type verifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id" binding:"required"`
	PaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature string `json:"razorpay_signature" binding:"required"`
}

// POST /api/payments/verify is the checkout callback. A valid signature marks
// the order paid and upgrades the user.
func (c *PaymentController) VerifyPayment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req verifyPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.Service.VerifyPayment(claims.UserID, req.OrderID, req.PaymentID, req.Signature)
	switch err {
	case nil:
		util.Success(ctx, gin.H{"verified": true})
	case util.ErrOrderNotFound:
		util.NotFound(ctx)
	case util.ErrInvalidSignature:
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
