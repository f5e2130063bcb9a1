package service

import (
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/repository"
)

type SectionService struct {
	SectionRepo  *repository.SectionRepository
	QuestionRepo *repository.QuestionRepository
	Linker       *LinkerService
}

func NewSectionService(
	sectionRepo *repository.SectionRepository,
	questionRepo *repository.QuestionRepository,
	linker *LinkerService,
) *SectionService {
	return &SectionService{
		SectionRepo:  sectionRepo,
		QuestionRepo: questionRepo,
		Linker:       linker,
	}
}

type CreateSectionRequest struct {
	Name              string `json:"name" binding:"required"`
	Category          string `json:"category" binding:"required"`
	LearningPathScope string `json:"learningPathScope" binding:"required"`
	Order             int    `json:"order"`
	Weight            int    `json:"weight"`
}

// CreateSection 建章节后立即对题库执行一次匹配，把已有的同类题收进来
func (s *SectionService) CreateSection(req CreateSectionRequest) (*model.Section, error) {
	sec := &model.Section{
		Name:              req.Name,
		Category:          req.Category,
		LearningPathScope: req.LearningPathScope,
		Order:             req.Order,
		Weight:            req.Weight,
		IsActive:          true,
		QuestionIDs:       model.IDList{},
	}
	if err := s.SectionRepo.Create(sec); err != nil {
		return nil, err
	}
	if _, err := s.Linker.RelinkSection(sec.ID); err != nil {
		return nil, err
	}
	return s.SectionRepo.FindByID(sec.ID)
}

func (s *SectionService) UpdateSection(id string, req CreateSectionRequest) (*model.Section, error) {
	sec, err := s.SectionRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	sec.Name = req.Name
	sec.Category = req.Category
	sec.LearningPathScope = req.LearningPathScope
	sec.Order = req.Order
	sec.Weight = req.Weight
	if err := s.SectionRepo.Update(sec); err != nil {
		return nil, err
	}
	return sec, nil
}

func (s *SectionService) ListSections(page, limit int) ([]model.Section, int64, error) {
	return s.SectionRepo.List(page, limit)
}

// SectionDetail 章节及其当前有效的题目
type SectionDetail struct {
	Section   *model.Section   `json:"section"`
	Questions []model.Question `json:"questions"`
}

// GetSectionDetail 读取章节详情。已删除或停用的题目被过滤，
// 发现失效引用时顺手压缩一次存储的ID列表。
func (s *SectionService) GetSectionDetail(id string) (*SectionDetail, error) {
	sec, err := s.SectionRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	questions, err := s.QuestionRepo.FindByIDs(sec.QuestionIDs)
	if err != nil {
		return nil, err
	}

	live := make([]model.Question, 0, len(questions))
	liveSet := make(map[string]bool, len(questions))
	for _, q := range questions {
		if q.IsActive {
			live = append(live, q)
			liveSet[q.ID] = true
		}
	}

	// 只摘除确认失效的ID，不整体覆盖，避免吞掉并发追加的新题
	var stale []string
	kept := make(model.IDList, 0, len(sec.QuestionIDs))
	for _, qid := range sec.QuestionIDs {
		if liveSet[qid] {
			kept = append(kept, qid)
		} else {
			stale = append(stale, qid)
		}
	}
	if len(stale) > 0 {
		if err := s.SectionRepo.RemoveQuestionIDs(id, stale); err != nil {
			return nil, err
		}
		sec.QuestionIDs = kept
	}

	return &SectionDetail{Section: sec, Questions: live}, nil
}

func (s *SectionService) SetActive(id string, active bool) error {
	sec, err := s.SectionRepo.FindByID(id)
	if err != nil {
		return err
	}
	sec.IsActive = active
	return s.SectionRepo.Update(sec)
}

func (s *SectionService) DeleteSection(id string) error {
	return s.SectionRepo.Delete(id)
}
