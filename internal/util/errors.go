package util

import "errors"

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrPermissionDenied   = errors.New("没有操作权限")
	ErrQuestionNotFound   = errors.New("题目不存在")
	ErrSectionNotFound    = errors.New("章节不存在")
	ErrPlanNotFound       = errors.New("计划不存在")
	ErrTemplateNotFound   = errors.New("计划模板不存在")
	ErrQuestionIncomplete = errors.New("题目缺少类别或学习路线")
	ErrTemplateNoCards    = errors.New("计划模板没有卡片")
	ErrQuestionNotInPlan  = errors.New("题目不属于该计划")
	ErrNodeNotInPlan      = errors.New("节点不属于该计划")
	ErrInvalidNodeKind    = errors.New("不支持的节点类型")
)
