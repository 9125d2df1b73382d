package controller

import (
	"eamcetpro_backend/internal/model"
	"eamcetpro_backend/internal/service"
	"eamcetpro_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AnalyticsController struct {
	Analytics *service.AnalyticsService
	Exam      *service.ExamService
}

func NewAnalyticsController(analytics *service.AnalyticsService, exam *service.ExamService) *AnalyticsController {
	return &AnalyticsController{Analytics: analytics, Exam: exam}
}

// GET /api/analytics is the dashboard aggregate for the logged-in user.
func (c *AnalyticsController) GetUserAnalytics(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	analytics, err := c.Analytics.GetUserAnalytics(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if analytics == nil {
		// No submissions yet; the dashboard renders an empty state.
		util.Success(ctx, nil)
		return
	}
	util.Success(ctx, analytics)
}

// GET /api/results
func (c *AnalyticsController) ListResults(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	results, total, err := c.Exam.ListResults(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: results, Total: total, Page: page, Limit: limit})
}

// GET /api/results/:id
func (c *AnalyticsController) GetResult(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.Exam.GetResult(ctx.Param("id"))
	if err == gorm.ErrRecordNotFound {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if result.UserID != claims.UserID && claims.Role != model.Admin {
		util.Forbidden(ctx)
		return
	}
	util.Success(ctx, result)
}
