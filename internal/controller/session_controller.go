package controller

import (
	"eamcetpro_backend/internal/service"
	"eamcetpro_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	Service *service.SessionService
}

func NewSessionController(svc *service.SessionService) *SessionController {
	return &SessionController{Service: svc}
}

type startSessionRequest struct {
	TestID uint `json:"testId" binding:"required"`
}

// POST /api/sessions opens an attempt and starts its countdown.
func (c *SessionController) Start(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req startSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	id, tracker, err := c.Service.Start(ctx.Request.Context(), claims.UserID, req.TestID)
	switch err {
	case nil:
	case util.ErrTestNotFound, util.ErrTestNotPublished:
		util.NotFound(ctx)
		return
	case util.ErrDataIntegrity:
		util.Error(ctx, 500, err.Error())
		return
	default:
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{
		"sessionId": id,
		"snapshot":  tracker.Snapshot(),
	})
}

func (c *SessionController) tracker(ctx *gin.Context) (*service.SessionTracker, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return nil, false
	}
	tracker, err := c.Service.Get(ctx.Param("id"), claims.UserID)
	if err != nil {
		util.NotFound(ctx)
		return nil, false
	}
	return tracker, true
}

// GET /api/sessions/:id returns the palette/header state for rendering.
func (c *SessionController) Snapshot(ctx *gin.Context) {
	tracker, ok := c.tracker(ctx)
	if !ok {
		return
	}
	util.Success(ctx, tracker.Snapshot())
}

// POST /api/sessions/:id/navigate/:number
func (c *SessionController) Navigate(ctx *gin.Context) {
	tracker, ok := c.tracker(ctx)
	if !ok {
		return
	}

	number, err := strconv.Atoi(ctx.Param("number"))
	if err != nil {
		util.BadRequest(ctx, "invalid question number")
		return
	}
	tracker.Navigate(number)
	util.Success(ctx, tracker.Snapshot())
}

func (c *SessionController) Advance(ctx *gin.Context) {
	tracker, ok := c.tracker(ctx)
	if !ok {
		return
	}
	tracker.Advance()
	util.Success(ctx, tracker.Snapshot())
}

func (c *SessionController) Retreat(ctx *gin.Context) {
	tracker, ok := c.tracker(ctx)
	if !ok {
		return
	}
	tracker.Retreat()
	util.Success(ctx, tracker.Snapshot())
}

type answerRequest struct {
	Option string `json:"option" binding:"required,oneof=a b c d e f"`
}

// POST /api/sessions/:id/answer records a choice for the current question.
func (c *SessionController) Answer(ctx *gin.Context) {
	tracker, ok := c.tracker(ctx)
	if !ok {
		return
	}

	var req answerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	tracker.SelectAnswer(req.Option)
	util.Success(ctx, tracker.Snapshot())
}

func (c *SessionController) ClearResponse(ctx *gin.Context) {
	tracker, ok := c.tracker(ctx)
	if !ok {
		return
	}
	tracker.ClearResponse()
	util.Success(ctx, tracker.Snapshot())
}

func (c *SessionController) ToggleMark(ctx *gin.Context) {
	tracker, ok := c.tracker(ctx)
	if !ok {
		return
	}
	tracker.ToggleMarkForReview()
	util.Success(ctx, tracker.Snapshot())
}

// POST /api/sessions/:id/submit is the manual submission path.
func (c *SessionController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.Service.Submit(ctx.Request.Context(), ctx.Param("id"), claims.UserID)
	switch err {
	case nil:
		util.Success(ctx, result)
	case util.ErrSessionNotFound:
		util.NotFound(ctx)
	case util.ErrSessionSubmitted:
		util.Conflict(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
