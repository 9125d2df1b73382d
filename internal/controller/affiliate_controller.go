package controller

import (
	"eamcetpro_backend/internal/service"
	"eamcetpro_backend/internal/util"
	"fmt"

	"github.com/gin-gonic/gin"
)

type AffiliateController struct {
	Service *service.AffiliateService
}

func NewAffiliateController(svc *service.AffiliateService) *AffiliateController {
	return &AffiliateController{Service: svc}
}

// POST /api/affiliates enrolls the logged-in user as an affiliate.
func (c *AffiliateController) Register(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.AffiliateRegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	affiliate, err := c.Service.Register(claims.UserID, req)
	switch err {
	case nil:
		util.Created(ctx, affiliate)
	case util.ErrAlreadyAffiliate:
		util.Conflict(ctx, err.Error())
	case util.ErrMissingPayoutDetails:
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// GET /api/affiliates/visit/:code records a referred visit and sets the
// attribution cookie so a later signup credits the affiliate.
func (c *AffiliateController) RecordVisit(ctx *gin.Context) {
	var userID *uint
	if claims := util.GetUserFromContext(ctx); claims != nil {
		userID = &claims.UserID
	}

	affiliateID, err := c.Service.RecordVisit(
		ctx.Param("code"),
		userID,
		ctx.ClientIP(),
		ctx.GetHeader("Referer"),
		ctx.GetHeader("User-Agent"),
	)
	switch err {
	case nil:
	case util.ErrAffiliateNotFound:
		util.NotFound(ctx)
		return
	default:
		util.LogInternalError(ctx, err)
		return
	}

	maxAge := int(c.Service.AttributionWindow().Seconds())
	ctx.SetCookie("ref_affiliate", fmt.Sprintf("%d", affiliateID), maxAge, "/", "", false, true)
	util.Success(ctx, gin.H{"recorded": true})
}

// GET /api/affiliates/dashboard
func (c *AffiliateController) Dashboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	dashboard, err := c.Service.Dashboard(claims.UserID)
	if err == util.ErrAffiliateNotFound {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, dashboard)
}
