package service

import (
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/repository"
	"interview_prep_backend/internal/util"
	"math"
)

// ComputeProgress 自底向上计算节点完成度，纯函数，不修改任何入参。
//   - valid: 可计入统计的题目ID（题目存在、启用且至少有一个选项）。
//     树中引用了但不在 valid 里的ID是悬空引用，分子分母都不计。
//   - completed: 用户已完成的题目ID。
//   - explicit: 用户显式标记完成的节点ID，与计算结果做或运算。
//
// 复合节点直接累加子节点的 completed/total，而不是重新推导，
// 配合匹配器的 topic 唯一性约束避免重复计数。
func ComputeProgress(node *model.PlanNode, valid, completed, explicit map[string]bool) model.NodeProgress {
	var p model.NodeProgress

	if node.IsLeaf() {
		for _, id := range node.QuestionIDs {
			if !valid[id] {
				continue
			}
			p.Total++
			if completed[id] {
				p.Completed++
			}
		}
	} else {
		for _, child := range node.Children {
			cp := ComputeProgress(child, valid, completed, explicit)
			p.Total += cp.Total
			p.Completed += cp.Completed
		}
	}

	if p.Total > 0 {
		p.Percentage = int(math.Round(100 * float64(p.Completed) / float64(p.Total)))
	}
	p.IsComplete = (p.Total > 0 && p.Completed == p.Total) || explicit[node.ID]
	return p
}

// ProgressNode 附带完成度的计划树节点
type ProgressNode struct {
	ID       string             `json:"id"`
	Kind     model.NodeKind     `json:"kind"`
	Name     string             `json:"name"`
	Order    int                `json:"order"`
	Progress model.NodeProgress `json:"progress"`
	Children []*ProgressNode    `json:"children,omitempty"`
}

// AnnotateProgress 为整棵树生成带完成度的镜像树
func AnnotateProgress(node *model.PlanNode, valid, completed, explicit map[string]bool) *ProgressNode {
	out := &ProgressNode{
		ID:       node.ID,
		Kind:     node.Kind,
		Name:     node.Name,
		Order:    node.Order,
		Progress: ComputeProgress(node, valid, completed, explicit),
	}
	for _, child := range node.Children {
		out.Children = append(out.Children, AnnotateProgress(child, valid, completed, explicit))
	}
	return out
}

type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	PlanRepo     *repository.PlanRepository
	QuestionRepo *repository.QuestionRepository
}

func NewProgressService(
	progressRepo *repository.ProgressRepository,
	planRepo *repository.PlanRepository,
	questionRepo *repository.QuestionRepository,
) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		PlanRepo:     planRepo,
		QuestionRepo: questionRepo,
	}
}

// PlanProgressView 计划进度视图
type PlanProgressView struct {
	PlanID  string                `json:"planId"`
	Summary model.NodeProgress    `json:"summary"`
	Tree    *ProgressNode         `json:"tree"`
	Record  *model.ProgressRecord `json:"record"`
}

// GetPlanProgress 读取进度记录并对整棵计划树计算完成度
func (s *ProgressService) GetPlanProgress(userID uint, planID string) (*PlanProgressView, error) {
	plan, err := s.PlanRepo.FindByID(planID)
	if err != nil {
		return nil, err
	}
	root, err := plan.Root()
	if err != nil {
		return nil, err
	}
	record, err := s.ProgressRepo.Load(userID, planID)
	if err != nil {
		return nil, err
	}

	view := &PlanProgressView{PlanID: planID, Record: record}
	if root == nil {
		return view, nil
	}

	valid, err := s.validQuestionSet(root)
	if err != nil {
		return nil, err
	}
	completed := toSet(record.CompletedQuestionIDs)
	explicit := toSet(record.CompletedTopicIDs)
	for _, id := range record.CompletedCategoryIDs {
		explicit[id] = true
	}
	for _, id := range record.CompletedCardIDs {
		explicit[id] = true
	}

	view.Tree = AnnotateProgress(root, valid, completed, explicit)
	view.Summary = view.Tree.Progress
	return view, nil
}

// RecordAnswers 记录已完成的题目，题目必须属于该计划树
func (s *ProgressService) RecordAnswers(userID uint, planID string, questionIDs []string) error {
	plan, err := s.PlanRepo.FindByID(planID)
	if err != nil {
		return err
	}
	root, err := plan.Root()
	if err != nil {
		return err
	}
	if root == nil {
		return util.ErrQuestionNotInPlan
	}

	inPlan := toSet(root.AllQuestionIDs())
	for _, id := range questionIDs {
		if !inPlan[id] {
			return util.ErrQuestionNotInPlan
		}
	}
	return s.ProgressRepo.AddCompletedQuestions(userID, planID, questionIDs...)
}

// MarkNodeComplete 显式标记节点完成（topic/category/card）
func (s *ProgressService) MarkNodeComplete(userID uint, planID, nodeID string) error {
	plan, err := s.PlanRepo.FindByID(planID)
	if err != nil {
		return err
	}
	root, err := plan.Root()
	if err != nil {
		return err
	}
	if root == nil {
		return util.ErrNodeNotInPlan
	}
	node := root.Find(nodeID)
	if node == nil {
		return util.ErrNodeNotInPlan
	}
	if node.Kind == model.NodeKindPlan {
		return util.ErrInvalidNodeKind
	}
	return s.ProgressRepo.AddCompletedNode(userID, planID, node.Kind, nodeID)
}

func (s *ProgressService) UpdatePosition(userID uint, planID string, pos model.CurrentPosition) error {
	if _, err := s.PlanRepo.FindByID(planID); err != nil {
		return err
	}
	return s.ProgressRepo.SetPosition(userID, planID, pos)
}

// PlanProgressSummary 概览中单个计划的进度
type PlanProgressSummary struct {
	PlanID   string             `json:"planId"`
	PlanName string             `json:"planName"`
	Progress model.NodeProgress `json:"progress"`
}

// GetOverview 用户所有有进度记录的计划的根节点完成度
func (s *ProgressService) GetOverview(userID uint) ([]PlanProgressSummary, error) {
	planIDs, err := s.ProgressRepo.ListPlanIDs(userID)
	if err != nil {
		return nil, err
	}

	var out []PlanProgressSummary
	for _, planID := range planIDs {
		view, err := s.GetPlanProgress(userID, planID)
		if err != nil {
			// 计划可能已被删除，跳过而不是让整个概览失败
			continue
		}
		plan, err := s.PlanRepo.FindByID(planID)
		if err != nil {
			continue
		}
		out = append(out, PlanProgressSummary{
			PlanID:   planID,
			PlanName: plan.Name,
			Progress: view.Summary,
		})
	}
	return out, nil
}

func (s *ProgressService) ResetProgress(userID uint, planID string) error {
	return s.ProgressRepo.Clear(userID, planID)
}

// validQuestionSet 树下可计入进度的题目：存在、启用且有选项。
// 已停用或已删除题目的残留引用在这里被惰性过滤掉。
func (s *ProgressService) validQuestionSet(root *model.PlanNode) (map[string]bool, error) {
	questions, err := s.QuestionRepo.FindByIDs(root.AllQuestionIDs())
	if err != nil {
		return nil, err
	}
	valid := make(map[string]bool, len(questions))
	for i := range questions {
		q := &questions[i]
		if q.IsActive && q.HasOptions() {
			valid[q.ID] = true
		}
	}
	return valid, nil
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
