package service

import (
	"encoding/json"
	"interview_prep_backend/internal/config"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/repository"
	"interview_prep_backend/pkg/logger"
	"interview_prep_backend/pkg/monitoring"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

type PlanService struct {
	PlanRepo     *repository.PlanRepository
	TemplateRepo *repository.PlanTemplateRepository
	QuestionRepo *repository.QuestionRepository
	Cfg          *config.Config
}

func NewPlanService(
	planRepo *repository.PlanRepository,
	templateRepo *repository.PlanTemplateRepository,
	questionRepo *repository.QuestionRepository,
	cfg *config.Config,
) *PlanService {
	return &PlanService{
		PlanRepo:     planRepo,
		TemplateRepo: templateRepo,
		QuestionRepo: questionRepo,
		Cfg:          cfg,
	}
}

type CreateTemplateRequest struct {
	Name              string                       `json:"name" binding:"required"`
	DurationDays      int                          `json:"durationDays" binding:"required"`
	Lineage           string                       `json:"lineage"`
	LearningPathScope string                       `json:"learningPathScope" binding:"required"`
	Cards             []model.CardTemplate         `json:"cards" binding:"required"`
	Distribution      map[string]DifficultyTargets `json:"distribution"`
}

func (s *PlanService) CreateTemplate(creatorID uint, req CreateTemplateRequest) (*model.PlanTemplate, error) {
	cards, err := json.Marshal(req.Cards)
	if err != nil {
		return nil, err
	}
	tpl := &model.PlanTemplate{
		Name:              req.Name,
		DurationDays:      req.DurationDays,
		Lineage:           req.Lineage,
		LearningPathScope: req.LearningPathScope,
		Cards:             cards,
		IsActive:          true,
		CreatorID:         creatorID,
	}
	if len(req.Distribution) > 0 {
		dist, err := json.Marshal(req.Distribution)
		if err != nil {
			return nil, err
		}
		tpl.Distribution = dist
	}
	if err := s.TemplateRepo.Create(tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

func (s *PlanService) UpdateTemplate(id string, req CreateTemplateRequest) (*model.PlanTemplate, error) {
	tpl, err := s.TemplateRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	cards, err := json.Marshal(req.Cards)
	if err != nil {
		return nil, err
	}
	tpl.Name = req.Name
	tpl.DurationDays = req.DurationDays
	tpl.Lineage = req.Lineage
	tpl.LearningPathScope = req.LearningPathScope
	tpl.Cards = cards
	if len(req.Distribution) > 0 {
		dist, err := json.Marshal(req.Distribution)
		if err != nil {
			return nil, err
		}
		tpl.Distribution = dist
	}
	if err := s.TemplateRepo.Update(tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

func (s *PlanService) ListTemplates(page, limit int) ([]model.PlanTemplate, int64, error) {
	return s.TemplateRepo.List(page, limit)
}

func (s *PlanService) GetTemplate(id string) (*model.PlanTemplate, error) {
	return s.TemplateRepo.FindByID(id)
}

func (s *PlanService) DeleteTemplate(id string) error {
	return s.TemplateRepo.Delete(id)
}

// GeneratePlan 按模板组装并保存一份计划。seed 为 0 时取当前时间，
// 传入固定 seed 可复现同一棵树。
func (s *PlanService) GeneratePlan(templateID string, seed int64) (*model.Plan, error) {
	tpl, err := s.TemplateRepo.FindByID(templateID)
	if err != nil {
		return nil, err
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	assembler := NewPlanAssembler(s.QuestionRepo, s.Cfg.Plan.MinQuestionMinutes, s.Cfg.Plan.MaxQuestionMinutes)
	root, err := assembler.Assemble(tpl, rng)
	if err != nil {
		return nil, err
	}

	plan := &model.Plan{
		TemplateID:        tpl.ID,
		Name:              tpl.Name,
		DurationDays:      tpl.DurationDays,
		Difficulty:        model.DifficultyForDuration(tpl.DurationDays),
		Lineage:           tpl.Lineage,
		LearningPathScope: tpl.LearningPathScope,
		TotalQuestions:    root.TotalQuestions,
		EstimatedTime:     root.EstimatedTime,
		Seed:              seed,
		IsActive:          true,
	}
	if err := plan.SetRoot(root); err != nil {
		return nil, err
	}

	// 累积题数 = 自身 + 同系列中天数更小的计划总题数（纯算术，不合并树）
	plan.CumulativeQuestions = root.TotalQuestions
	lower, err := s.PlanRepo.FindLineageBelow(tpl.Lineage, tpl.DurationDays)
	if err != nil {
		return nil, err
	}
	for _, p := range lower {
		plan.CumulativeQuestions += p.TotalQuestions
	}

	if err := s.PlanRepo.Create(plan); err != nil {
		return nil, err
	}

	monitoring.PlanAssembleCounter.WithLabelValues(tpl.Name).Inc()
	logger.Log.Info("plan assembled",
		zap.String("planId", plan.ID),
		zap.String("template", tpl.Name),
		zap.Int("totalQuestions", plan.TotalQuestions),
		zap.Int64("seed", seed))

	return plan, nil
}

type PlanSummary struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	DurationDays        int    `json:"durationDays"`
	Difficulty          string `json:"difficulty"`
	TotalQuestions      int    `json:"totalQuestions"`
	CumulativeQuestions int    `json:"cumulativeQuestions"`
	EstimatedTime       int    `json:"estimatedTime"`
}

func (s *PlanService) ListPlans() ([]PlanSummary, error) {
	plans, err := s.PlanRepo.ListActive()
	if err != nil {
		return nil, err
	}
	out := make([]PlanSummary, len(plans))
	for i, p := range plans {
		out[i] = PlanSummary{
			ID:                  p.ID,
			Name:                p.Name,
			DurationDays:        p.DurationDays,
			Difficulty:          p.Difficulty,
			TotalQuestions:      p.TotalQuestions,
			CumulativeQuestions: p.CumulativeQuestions,
			EstimatedTime:       p.EstimatedTime,
		}
	}
	return out, nil
}

// PlanDetail 计划树加上树内仍然有效的题目详情
type PlanDetail struct {
	Plan      *model.Plan               `json:"plan"`
	Tree      *model.PlanNode           `json:"tree"`
	Questions map[string]model.Question `json:"questions"`
}

// GetPlanDetail 返回计划树。已停用或已删除的题目不出现在详情里，
// 树中残留的引用由进度计算侧按悬空引用忽略（读时惰性清理）。
func (s *PlanService) GetPlanDetail(id string) (*PlanDetail, error) {
	plan, err := s.PlanRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	root, err := plan.Root()
	if err != nil {
		return nil, err
	}

	detail := &PlanDetail{
		Plan:      plan,
		Tree:      root,
		Questions: map[string]model.Question{},
	}
	if root == nil {
		return detail, nil
	}

	questions, err := s.QuestionRepo.FindByIDs(root.AllQuestionIDs())
	if err != nil {
		return nil, err
	}
	for _, q := range questions {
		if q.IsActive {
			detail.Questions[q.ID] = q
		}
	}
	return detail, nil
}

func (s *PlanService) DeletePlan(id string) error {
	return s.PlanRepo.Delete(id)
}
