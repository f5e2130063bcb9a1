package controller

import (
	"interview_prep_backend/internal/service"
	"interview_prep_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PlanController struct {
	PlanService *service.PlanService
}

func NewPlanController(planService *service.PlanService) *PlanController {
	return &PlanController{PlanService: planService}
}

// ListPlans godoc
// @Summary 可用计划列表
// @Tags 学习计划
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.PlanSummary}
// @Router /api/plans [get]
func (c *PlanController) ListPlans(ctx *gin.Context) {
	plans, err := c.PlanService.ListPlans()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, plans)
}

// GetPlan godoc
// @Summary 计划详情（完整计划树）
// @Tags 学习计划
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "计划ID"
// @Success 200 {object} util.Response{data=service.PlanDetail}
// @Router /api/plans/{id} [get]
func (c *PlanController) GetPlan(ctx *gin.Context) {
	detail, err := c.PlanService.GetPlanDetail(ctx.Param("id"))
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

// CreateTemplate godoc
// @Summary 创建计划模板
// @Tags 计划管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateTemplateRequest true "模板信息"
// @Success 201 {object} util.Response{data=model.PlanTemplate}
// @Router /api/admin/plan-templates [post]
func (c *PlanController) CreateTemplate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateTemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tpl, err := c.PlanService.CreateTemplate(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, tpl)
}

// ListTemplates godoc
// @Summary 计划模板列表
// @Tags 计划管理
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/plan-templates [get]
func (c *PlanController) ListTemplates(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	templates, total, err := c.PlanService.ListTemplates(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: templates, Total: total, Page: page, Limit: limit})
}

// GetTemplate godoc
// @Summary 计划模板详情
// @Tags 计划管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "模板ID"
// @Success 200 {object} util.Response{data=model.PlanTemplate}
// @Router /api/admin/plan-templates/{id} [get]
func (c *PlanController) GetTemplate(ctx *gin.Context) {
	tpl, err := c.PlanService.GetTemplate(ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, tpl)
}

// UpdateTemplate godoc
// @Summary 更新计划模板
// @Tags 计划管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "模板ID"
// @Param body body service.CreateTemplateRequest true "模板信息"
// @Success 200 {object} util.Response{data=model.PlanTemplate}
// @Router /api/admin/plan-templates/{id} [put]
func (c *PlanController) UpdateTemplate(ctx *gin.Context) {
	var req service.CreateTemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tpl, err := c.PlanService.UpdateTemplate(ctx.Param("id"), req)
	if err == gorm.ErrRecordNotFound {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, tpl)
}

// DeleteTemplate godoc
// @Summary 删除计划模板
// @Tags 计划管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "模板ID"
// @Success 200 {object} util.Response
// @Router /api/admin/plan-templates/{id} [delete]
func (c *PlanController) DeleteTemplate(ctx *gin.Context) {
	if err := c.PlanService.DeleteTemplate(ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// GeneratePlan godoc
// @Summary 按模板生成计划
// @Description 从题库组装完整计划树；seed 参数可复现同一次组装
// @Tags 计划管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "模板ID"
// @Param seed query int false "随机种子（0为随机）"
// @Success 201 {object} util.Response{data=model.Plan}
// @Router /api/admin/plan-templates/{id}/generate [post]
func (c *PlanController) GeneratePlan(ctx *gin.Context) {
	seed := util.MustParseInt64(ctx.DefaultQuery("seed", "0"))

	plan, err := c.PlanService.GeneratePlan(ctx.Param("id"), seed)
	if err == gorm.ErrRecordNotFound {
		util.NotFound(ctx)
		return
	}
	if err == util.ErrTemplateNoCards {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, plan)
}

// DeletePlan godoc
// @Summary 删除计划
// @Tags 计划管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "计划ID"
// @Success 200 {object} util.Response
// @Router /api/admin/plans/{id} [delete]
func (c *PlanController) DeletePlan(ctx *gin.Context) {
	if err := c.PlanService.DeletePlan(ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
