package controller

import (
	"eamcetpro_backend/internal/model"
	"eamcetpro_backend/internal/service"
	"eamcetpro_backend/internal/util"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
)

type TestController struct {
	Tests   *service.TestService
	Catalog *service.CatalogService
	Exam    *service.ExamService
	Storage *service.StorageService
}

func NewTestController(tests *service.TestService, catalog *service.CatalogService, exam *service.ExamService, storage *service.StorageService) *TestController {
	return &TestController{Tests: tests, Catalog: catalog, Exam: exam, Storage: storage}
}

// GET /api/tests
func (c *TestController) ListTests(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	tests, total, err := c.Tests.ListPublished(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: tests, Total: total, Page: page, Limit: limit})
}

// studentQuestion strips the answer key from a catalog question.
type studentQuestion struct {
	Number    int            `json:"number"`
	SectionID uint           `json:"sectionId"`
	Text      string         `json:"text"`
	Options   []model.Option `json:"options"`
	FigureURL string         `json:"figureUrl,omitempty"`
}

// GET /api/tests/:id
func (c *TestController) GetCatalog(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid test id")
		return
	}

	catalog, err := c.Catalog.LoadCatalog(ctx.Request.Context(), uint(id))
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

	questions := make([]studentQuestion, len(catalog.Questions))
	for i, q := range catalog.Questions {
		questions[i] = studentQuestion{
			Number:    q.Number,
			SectionID: q.SectionID,
			Text:      q.Text,
			Options:   q.Options(),
			FigureURL: q.FigureURL,
		}
	}

	util.Success(ctx, gin.H{
		"test":      catalog.Test,
		"sections":  catalog.Sections,
		"questions": questions,
	})
}

type submitTestRequest struct {
	Answers          map[int]string `json:"answers" binding:"required"`
	TimeTakenSeconds int            `json:"timeTaken" binding:"required,min=1"`
}

// POST /api/tests/:id/submit is the direct submission path for clients that
// track attempt state locally.
func (c *TestController) SubmitTest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid test id")
		return
	}

	var req submitTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Exam.SubmitResult(ctx.Request.Context(), claims.UserID, uint(id), req.Answers, req.TimeTakenSeconds)
	switch err {
	case nil:
	case util.ErrTestNotFound, util.ErrTestNotPublished:
		util.NotFound(ctx)
		return
	case util.ErrInvalidOption:
		util.BadRequest(ctx, err.Error())
		return
	case util.ErrDataIntegrity:
		util.Error(ctx, 500, err.Error())
		return
	default:
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, result)
}

// Admin handlers.

func (c *TestController) CreateTest(ctx *gin.Context) {
	var req service.TestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	test, err := c.Tests.CreateTest(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, test)
}

func (c *TestController) AddSection(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid test id")
		return
	}

	var req service.SectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	section, err := c.Tests.AddSection(uint(id), req)
	switch err {
	case nil:
		util.Created(ctx, section)
	case util.ErrTestNotFound:
		util.NotFound(ctx)
	case util.ErrTestNotPublished:
		util.Conflict(ctx, "test is already published")
	default:
		util.LogInternalError(ctx, err)
	}
}

func (c *TestController) AddQuestion(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid section id")
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Tests.AddQuestion(uint(id), req)
	switch err {
	case nil:
		util.Created(ctx, question)
	case util.ErrTestNotFound:
		util.NotFound(ctx)
	case util.ErrDataIntegrity:
		util.BadRequest(ctx, "question number exceeds the section's configured size")
	default:
		util.LogInternalError(ctx, err)
	}
}

func (c *TestController) PublishTest(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid test id")
		return
	}

	test, err := c.Tests.Publish(uint(id))
	switch err {
	case nil:
		util.Success(ctx, test)
	case util.ErrTestNotFound:
		util.NotFound(ctx)
	case util.ErrDataIntegrity:
		util.Conflict(ctx, "sections are not completely filled")
	default:
		util.LogInternalError(ctx, err)
	}
}

// UploadFigure stores a question diagram or syllabus file and returns its URL.
func (c *TestController) UploadFigure(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	filename := fmt.Sprintf("figures/%s%s", model.GenerateUUID(), filepath.Ext(file.Filename))
	url, err := c.Storage.Upload(ctx.Request.Context(), filename, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"url": url})
}
