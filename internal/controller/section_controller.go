package controller

import (
	"interview_prep_backend/internal/service"
	"interview_prep_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SectionController struct {
	SectionService *service.SectionService
	LinkerService  *service.LinkerService
}

func NewSectionController(sectionService *service.SectionService, linkerService *service.LinkerService) *SectionController {
	return &SectionController{
		SectionService: sectionService,
		LinkerService:  linkerService,
	}
}

// ListSections godoc
// @Summary 章节列表
// @Tags 章节
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/sections [get]
func (c *SectionController) ListSections(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	sections, total, err := c.SectionService.ListSections(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: sections, Total: total, Page: page, Limit: limit})
}

// GetSection godoc
// @Summary 章节详情（含有效题目）
// @Tags 章节
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "章节ID"
// @Success 200 {object} util.Response{data=service.SectionDetail}
// @Router /api/sections/{id} [get]
func (c *SectionController) GetSection(ctx *gin.Context) {
	detail, err := c.SectionService.GetSectionDetail(ctx.Param("id"))
	if err == gorm.ErrRecordNotFound {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// CreateSection godoc
// @Summary 创建章节并收录已有同类题目
// @Tags 章节管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateSectionRequest true "章节信息"
// @Success 201 {object} util.Response{data=model.Section}
// @Router /api/admin/sections [post]
func (c *SectionController) CreateSection(ctx *gin.Context) {
	var req service.CreateSectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sec, err := c.SectionService.CreateSection(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, sec)
}

// UpdateSection godoc
// @Summary 更新章节
// @Tags 章节管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "章节ID"
// @Param body body service.CreateSectionRequest true "章节信息"
// @Success 200 {object} util.Response{data=model.Section}
// @Router /api/admin/sections/{id} [put]
func (c *SectionController) UpdateSection(ctx *gin.Context) {
	var req service.CreateSectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sec, err := c.SectionService.UpdateSection(ctx.Param("id"), req)
	if err == gorm.ErrRecordNotFound {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sec)
}

// SetSectionActive godoc
// @Summary 启用/停用章节
// @Tags 章节管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "章节ID"
// @Param body body SetActiveRequest true "启停标志"
// @Success 200 {object} util.Response
// @Router /api/admin/sections/{id}/active [patch]
func (c *SectionController) SetSectionActive(ctx *gin.Context) {
	var req SetActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.SectionService.SetActive(ctx.Param("id"), *req.IsActive); err != nil {
		if err == gorm.ErrRecordNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// RelinkSection godoc
// @Summary 对章节重新执行题目匹配
// @Tags 章节管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "章节ID"
// @Success 200 {object} util.Response{data=object}
// @Router /api/admin/sections/{id}/relink [post]
func (c *SectionController) RelinkSection(ctx *gin.Context) {
	added, err := c.LinkerService.RelinkSection(ctx.Param("id"))
	if err == gorm.ErrRecordNotFound {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"added": added})
}

// DeleteSection godoc
// @Summary 删除章节
// @Tags 章节管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "章节ID"
// @Success 200 {object} util.Response
// @Router /api/admin/sections/{id} [delete]
func (c *SectionController) DeleteSection(ctx *gin.Context) {
	if err := c.SectionService.DeleteSection(ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
