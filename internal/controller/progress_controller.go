package controller

import (
	"errors"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/service"
	"interview_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// GetPlanProgress godoc
// @Summary 计划进度（逐节点完成度）
// @Tags 进度
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "计划ID"
// @Success 200 {object} util.Response{data=service.PlanProgressView}
// @Router /api/plans/{id}/progress [get]
func (c *ProgressController) GetPlanProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.ProgressService.GetPlanProgress(claims.UserID, ctx.Param("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// RecordAnswersRequest 答题完成上报
type RecordAnswersRequest struct {
	QuestionIDs []string `json:"questionIds" binding:"required"`
}

// RecordAnswers godoc
// @Summary 上报已完成题目
// @Tags 进度
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "计划ID"
// @Param body body RecordAnswersRequest true "题目ID列表"
// @Success 200 {object} util.Response
// @Router /api/plans/{id}/progress/answers [post]
func (c *ProgressController) RecordAnswers(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req RecordAnswersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.ProgressService.RecordAnswers(claims.UserID, ctx.Param("id"), req.QuestionIDs)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.NotFound(ctx)
		return
	}
	if errors.Is(err, util.ErrQuestionNotInPlan) {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// MarkCompleteRequest 显式完成标记
type MarkCompleteRequest struct {
	NodeID string `json:"nodeId" binding:"required"`
}

// MarkNodeComplete godoc
// @Summary 显式标记节点完成
// @Description 卡片/类别/主题级的手动完成标记，与按题计算的结果取或
// @Tags 进度
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "计划ID"
// @Param body body MarkCompleteRequest true "节点ID"
// @Success 200 {object} util.Response
// @Router /api/plans/{id}/progress/complete [post]
func (c *ProgressController) MarkNodeComplete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req MarkCompleteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.ProgressService.MarkNodeComplete(claims.UserID, ctx.Param("id"), req.NodeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.NotFound(ctx)
		return
	}
	if errors.Is(err, util.ErrNodeNotInPlan) || errors.Is(err, util.ErrInvalidNodeKind) {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// UpdatePosition godoc
// @Summary 更新当前学习位置
// @Tags 进度
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "计划ID"
// @Param body body model.CurrentPosition true "位置指针"
// @Success 200 {object} util.Response
// @Router /api/plans/{id}/progress/position [put]
func (c *ProgressController) UpdatePosition(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var pos model.CurrentPosition
	if err := ctx.ShouldBindJSON(&pos); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.ProgressService.UpdatePosition(claims.UserID, ctx.Param("id"), pos)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// GetOverview godoc
// @Summary 进度概览（所有计划）
// @Tags 进度
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.PlanProgressSummary}
// @Router /api/progress/overview [get]
func (c *ProgressController) GetOverview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	overview, err := c.ProgressService.GetOverview(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}

// ResetProgress godoc
// @Summary 清空计划进度
// @Tags 进度
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "计划ID"
// @Success 200 {object} util.Response
// @Router /api/plans/{id}/progress [delete]
func (c *ProgressController) ResetProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.ProgressService.ResetProgress(claims.UserID, ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
