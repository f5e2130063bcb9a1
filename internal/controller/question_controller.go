package controller

import (
	"fmt"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/repository"
	"interview_prep_backend/internal/service"
	"interview_prep_backend/internal/util"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type QuestionController struct {
	QuestionService *service.QuestionService
	LinkerService   *service.LinkerService
	StorageService  *service.StorageService
}

func NewQuestionController(
	questionService *service.QuestionService,
	linkerService *service.LinkerService,
	storageService *service.StorageService,
) *QuestionController {
	return &QuestionController{
		QuestionService: questionService,
		LinkerService:   linkerService,
		StorageService:  storageService,
	}
}

// ListQuestions godoc
// @Summary 题库列表
// @Tags 题库
// @Produce json
// @Security ApiKeyAuth
// @Param category query string false "类别"
// @Param learningPath query string false "学习路线"
// @Param difficulty query string false "难度 (easy/medium/hard)"
// @Param active query bool false "是否启用"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	filter := repository.QuestionFilter{
		Category:     ctx.Query("category"),
		LearningPath: ctx.Query("learningPath"),
		Difficulty:   model.QuestionDifficulty(ctx.Query("difficulty")),
	}
	if activeStr := ctx.Query("active"); activeStr != "" {
		active := activeStr == "true"
		filter.IsActive = &active
	}

	questions, total, err := c.QuestionService.ListQuestions(filter, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: questions, Total: total, Page: page, Limit: limit})
}

// GetQuestion godoc
// @Summary 题目详情
// @Tags 题库
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "题目ID"
// @Success 200 {object} util.Response{data=model.Question}
// @Router /api/questions/{id} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	q, err := c.QuestionService.GetQuestion(ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, q)
}

// CreateQuestion godoc
// @Summary 创建题目并自动匹配结构节点
// @Tags 题库管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateQuestionRequest true "题目信息"
// @Success 201 {object} util.Response{data=object}
// @Router /api/admin/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, link, err := c.QuestionService.CreateQuestion(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"question": q, "link": link})
}

// UpdateQuestion godoc
// @Summary 更新题目
// @Tags 题库管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "题目ID"
// @Param body body service.CreateQuestionRequest true "题目信息"
// @Success 200 {object} util.Response{data=model.Question}
// @Router /api/admin/questions/{id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	var req service.CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.QuestionService.UpdateQuestion(ctx.Param("id"), req)
	if err == gorm.ErrRecordNotFound {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, q)
}

// SetActiveRequest 启停请求
type SetActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// SetQuestionActive godoc
// @Summary 启用/停用题目
// @Tags 题库管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "题目ID"
// @Param body body SetActiveRequest true "启停标志"
// @Success 200 {object} util.Response
// @Router /api/admin/questions/{id}/active [patch]
func (c *QuestionController) SetQuestionActive(ctx *gin.Context) {
	var req SetActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.QuestionService.SetActive(ctx.Param("id"), *req.IsActive); err != nil {
		if err == gorm.ErrRecordNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// DeleteQuestion godoc
// @Summary 删除题目
// @Tags 题库管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/admin/questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	if err := c.QuestionService.DeleteQuestion(ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ImportRequest 批量导入请求
type ImportRequest struct {
	Items []service.ImportItem `json:"items" binding:"required"`
}

// ImportQuestions godoc
// @Summary 批量导入题目
// @Description 逐题建档并匹配结构节点，返回链接去向与孤儿题清单
// @Tags 题库管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body ImportRequest true "题目列表"
// @Success 200 {object} util.Response{data=service.ImportReport}
// @Router /api/admin/questions/import [post]
func (c *QuestionController) ImportQuestions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ImportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	report, err := c.LinkerService.ImportQuestions(claims.UserID, req.Items)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, report)
}

// UploadAttachment godoc
// @Summary 上传题目附件
// @Tags 题库管理
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "附件文件"
// @Success 200 {object} util.Response{data=object}
// @Router /api/admin/questions/attachments [post]
func (c *QuestionController) UploadAttachment(ctx *gin.Context) {
	file, header, err := ctx.Request.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowed := false
	for _, e := range util.AllowedAttachmentExtensions {
		if e == ext {
			allowed = true
			break
		}
	}
	if !allowed {
		util.BadRequest(ctx, "unsupported file type")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !allowedAttachmentType(contentType) {
		util.BadRequest(ctx, "unsupported content type")
		return
	}
	if contentType == "" {
		contentType = util.MimeOctetStream
	}

	filename := fmt.Sprintf("attachments/%d%s", time.Now().UnixNano(), ext)
	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, file, header.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"url": url})
}

// allowedAttachmentType 按声明的 Content-Type 做二次校验。
// 浏览器可能不带类型或报 octet-stream，此时放行交由扩展名白名单把关。
func allowedAttachmentType(contentType string) bool {
	switch {
	case contentType == "", contentType == util.MimeOctetStream:
		return true
	case strings.HasPrefix(contentType, util.MimeImage):
		return true
	case contentType == util.MimePDF, contentType == util.MimeJSON:
		return true
	}
	return false
}
