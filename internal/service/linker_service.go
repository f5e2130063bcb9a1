package service

import (
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/repository"
	"interview_prep_backend/internal/util"
	"interview_prep_backend/pkg/logger"
	"interview_prep_backend/pkg/monitoring"
	"sort"

	"go.uber.org/zap"
)

// LinkerService 负责把题目按属性匹配到结构节点：
// 章节是多对多（一题可进多个章节），计划树内的 topic 是一对一
// （同一计划中一道题最多出现在一个 topic 下）。
type LinkerService struct {
	QuestionRepo *repository.QuestionRepository
	SectionRepo  *repository.SectionRepository
	PlanRepo     *repository.PlanRepository
}

func NewLinkerService(
	questionRepo *repository.QuestionRepository,
	sectionRepo *repository.SectionRepository,
	planRepo *repository.PlanRepository,
) *LinkerService {
	return &LinkerService{
		QuestionRepo: questionRepo,
		SectionRepo:  sectionRepo,
		PlanRepo:     planRepo,
	}
}

// MatchSections 返回与题目属性完全匹配的所有启用章节。
// 类别或学习路线缺失视为非法题目；属性不匹配是正常的零匹配结果。
func MatchSections(q *model.Question, sections []model.Section) ([]model.Section, error) {
	if q.Category == "" || q.LearningPath == "" {
		return nil, util.ErrQuestionIncomplete
	}
	var matched []model.Section
	for _, s := range sections {
		if !s.IsActive {
			continue
		}
		if s.Category == q.Category && s.LearningPathScope == q.LearningPath {
			matched = append(matched, s)
		}
	}
	return matched, nil
}

// MatchTopic 在一棵计划树内为题目挑选唯一的 topic 节点。
// 题目已在树中任一 topic 下时返回 nil（幂等，避免重复计数）。
// 多个候选时先选当前题数最少的，再按 order 最小，防止批量导入时题目堆到同一个 topic。
func MatchTopic(q *model.Question, root *model.PlanNode) (*model.PlanNode, error) {
	if q.Category == "" || q.LearningPath == "" {
		return nil, util.ErrQuestionIncomplete
	}
	if root == nil {
		return nil, nil
	}

	var candidates []*model.PlanNode
	alreadyLinked := false
	root.Walk(func(n *model.PlanNode) bool {
		if !n.IsLeaf() {
			return true
		}
		if n.QuestionIDs.Contains(q.ID) {
			alreadyLinked = true
			return false
		}
		if n.IsActive && n.Category == q.Category && n.LearningPathScope == q.LearningPath {
			candidates = append(candidates, n)
		}
		return true
	})

	if alreadyLinked || len(candidates) == 0 {
		return nil, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if len(candidates[i].QuestionIDs) != len(candidates[j].QuestionIDs) {
			return len(candidates[i].QuestionIDs) < len(candidates[j].QuestionIDs)
		}
		return candidates[i].Order < candidates[j].Order
	})
	return candidates[0], nil
}

// LinkResult 单道题目的链接结果
type LinkResult struct {
	QuestionID string            `json:"questionId"`
	SectionIDs []string          `json:"sectionIds"`
	PlanTopics map[string]string `json:"planTopics"` // planID -> topicID
	Orphaned   bool              `json:"orphaned"`
}

// LinkQuestion 将一道题匹配并写入所有匹配的章节，以及每个启用计划中唯一的 topic。
// 写入通过存储层的原子并集完成，重复调用不会产生重复条目。
func (s *LinkerService) LinkQuestion(q *model.Question) (*LinkResult, error) {
	sections, err := s.SectionRepo.ListActive()
	if err != nil {
		return nil, err
	}

	matched, err := MatchSections(q, sections)
	if err != nil {
		return nil, err
	}

	result := &LinkResult{
		QuestionID: q.ID,
		PlanTopics: map[string]string{},
	}
	for _, sec := range matched {
		if err := s.SectionRepo.AppendQuestionIDs(sec.ID, []string{q.ID}); err != nil {
			return nil, err
		}
		result.SectionIDs = append(result.SectionIDs, sec.ID)
	}

	plans, err := s.PlanRepo.ListActive()
	if err != nil {
		return nil, err
	}
	for i := range plans {
		plan := &plans[i]
		root, err := plan.Root()
		if err != nil {
			logger.Log.Error("plan tree unmarshal failed", zap.String("planId", plan.ID), zap.Error(err))
			continue
		}
		topic, err := MatchTopic(q, root)
		if err != nil {
			return nil, err
		}
		if topic == nil {
			continue
		}
		if err := s.PlanRepo.AppendTopicQuestionIDs(plan.ID, topic.ID, []string{q.ID}); err != nil {
			return nil, err
		}
		result.PlanTopics[plan.ID] = topic.ID
	}

	result.Orphaned = len(result.SectionIDs) == 0 && len(result.PlanTopics) == 0
	return result, nil
}

// ImportItem 批量导入中的一条记录
type ImportItem struct {
	Title        string                   `json:"title" binding:"required"`
	Content      string                   `json:"content"`
	Category     string                   `json:"category"`
	LearningPath string                   `json:"learningPath"`
	Difficulty   model.QuestionDifficulty `json:"difficulty"`
	Options      []model.Option           `json:"options"`
	Explanation  string                   `json:"explanation"`
	Tags         []string                 `json:"tags"`
}

// InvalidItem 需人工处理的导入记录及原因。
// 记录建题成功后才发现问题的（如属性不全无法链接），QuestionID 指向已落库的待补全题目。
type InvalidItem struct {
	Index      int    `json:"index"`
	Title      string `json:"title"`
	Reason     string `json:"reason"`
	QuestionID string `json:"questionId,omitempty"`
}

// ImportReport 批量导入结果：逐题给出链接去向，孤儿题单独列出供人工处理
type ImportReport struct {
	Created  int           `json:"created"`
	Linked   []LinkResult  `json:"linked"`
	Orphaned []string      `json:"orphaned"` // 未匹配到任何节点的题目ID
	Invalid  []InvalidItem `json:"invalid"`
}

// ImportQuestions 批量建题并逐题执行匹配。
// 先整批落库再链接：属性不全的题同样入库（未链接，记入报告待人工补全），
// 只有结构性错误（如选项无法序列化）才拒绝单条记录。零匹配不是错误。
func (s *LinkerService) ImportQuestions(creatorID uint, items []ImportItem) (*ImportReport, error) {
	report := &ImportReport{}

	type pending struct {
		index    int
		question *model.Question
	}
	var batch []pending

	for i, item := range items {
		q, err := buildQuestion(creatorID, item)
		if err != nil {
			report.Invalid = append(report.Invalid, InvalidItem{Index: i, Title: item.Title, Reason: err.Error()})
			continue
		}
		batch = append(batch, pending{index: i, question: q})
	}

	if len(batch) == 0 {
		return report, nil
	}

	qs := make([]*model.Question, len(batch))
	for i, p := range batch {
		qs[i] = p.question
	}
	if err := s.QuestionRepo.CreateBatch(qs); err != nil {
		return nil, err
	}
	report.Created = len(batch)

	for _, p := range batch {
		q := p.question
		link, err := s.LinkQuestion(q)
		if err == util.ErrQuestionIncomplete {
			// 已落库但类别或路线缺失，保留为未链接的题等待人工补全
			report.Invalid = append(report.Invalid, InvalidItem{
				Index:      p.index,
				Title:      q.Title,
				Reason:     err.Error(),
				QuestionID: q.ID,
			})
			continue
		}
		if err != nil {
			return nil, err
		}
		if link.Orphaned {
			report.Orphaned = append(report.Orphaned, q.ID)
			monitoring.OrphanQuestionCounter.Inc()
			logger.Log.Warn("question not linked to any node",
				zap.String("questionId", q.ID),
				zap.String("category", q.Category),
				zap.String("learningPath", q.LearningPath))
		} else {
			report.Linked = append(report.Linked, *link)
		}
	}

	return report, nil
}

// RelinkSection 对单个章节重新执行匹配，扫描整个题库
func (s *LinkerService) RelinkSection(sectionID string) (int, error) {
	sec, err := s.SectionRepo.FindByID(sectionID)
	if err != nil {
		return 0, err
	}

	active := true
	questions, err := s.QuestionRepo.Query(repository.QuestionFilter{
		Category:     sec.Category,
		LearningPath: sec.LearningPathScope,
		IsActive:     &active,
	})
	if err != nil {
		return 0, err
	}

	ids := make([]string, 0, len(questions))
	for _, q := range questions {
		if !sec.QuestionIDs.Contains(q.ID) {
			ids = append(ids, q.ID)
		}
	}
	if err := s.SectionRepo.AppendQuestionIDs(sectionID, ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}

// buildQuestion 不校验类别和路线：属性不全的题照常构建，
// 由后续链接阶段识别并记入报告，而不是在入库前丢弃。
func buildQuestion(creatorID uint, item ImportItem) (*model.Question, error) {
	q := &model.Question{
		Title:        item.Title,
		Content:      item.Content,
		Category:     item.Category,
		LearningPath: item.LearningPath,
		Difficulty:   item.Difficulty,
		Explanation:  item.Explanation,
		Tags:         model.IDList(item.Tags),
		IsActive:     true,
		CreatorID:    creatorID,
	}
	q.ID = model.GenerateUUID()
	if len(item.Options) > 0 {
		if err := setOptions(q, item.Options); err != nil {
			return nil, err
		}
	}
	return q, nil
}
