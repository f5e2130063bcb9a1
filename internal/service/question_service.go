package service

import (
	"encoding/json"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/repository"
)

type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
	Linker       *LinkerService
}

func NewQuestionService(questionRepo *repository.QuestionRepository, linker *LinkerService) *QuestionService {
	return &QuestionService{
		QuestionRepo: questionRepo,
		Linker:       linker,
	}
}

type CreateQuestionRequest struct {
	Title        string                   `json:"title" binding:"required"`
	Content      string                   `json:"content"`
	Category     string                   `json:"category" binding:"required"`
	LearningPath string                   `json:"learningPath" binding:"required"`
	Difficulty   model.QuestionDifficulty `json:"difficulty" binding:"required"`
	Options      []model.Option           `json:"options"`
	Explanation  string                   `json:"explanation"`
	Tags         []string                 `json:"tags"`
}

// CreateQuestion 建题并立即执行节点匹配
func (s *QuestionService) CreateQuestion(creatorID uint, req CreateQuestionRequest) (*model.Question, *LinkResult, error) {
	q := &model.Question{
		Title:        req.Title,
		Content:      req.Content,
		Category:     req.Category,
		LearningPath: req.LearningPath,
		Difficulty:   req.Difficulty,
		Explanation:  req.Explanation,
		Tags:         model.IDList(req.Tags),
		IsActive:     true,
		CreatorID:    creatorID,
	}
	if err := setOptions(q, req.Options); err != nil {
		return nil, nil, err
	}
	if err := s.QuestionRepo.Create(q); err != nil {
		return nil, nil, err
	}

	link, err := s.Linker.LinkQuestion(q)
	if err != nil {
		return nil, nil, err
	}
	return q, link, nil
}

func (s *QuestionService) UpdateQuestion(id string, req CreateQuestionRequest) (*model.Question, error) {
	q, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	q.Title = req.Title
	q.Content = req.Content
	q.Category = req.Category
	q.LearningPath = req.LearningPath
	q.Difficulty = req.Difficulty
	q.Explanation = req.Explanation
	q.Tags = model.IDList(req.Tags)
	if err := setOptions(q, req.Options); err != nil {
		return nil, err
	}
	if err := s.QuestionRepo.Update(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) GetQuestion(id string) (*model.Question, error) {
	return s.QuestionRepo.FindByID(id)
}

func (s *QuestionService) ListQuestions(filter repository.QuestionFilter, page, limit int) ([]model.Question, int64, error) {
	return s.QuestionRepo.List(filter, page, limit)
}

// SetActive 启停题目。停用不回写结构节点，残留引用由读取侧惰性过滤
func (s *QuestionService) SetActive(id string, active bool) error {
	if _, err := s.QuestionRepo.FindByID(id); err != nil {
		return err
	}
	return s.QuestionRepo.SetActive(id, active)
}

func (s *QuestionService) DeleteQuestion(id string) error {
	return s.QuestionRepo.Delete(id)
}

func setOptions(q *model.Question, opts []model.Option) error {
	for i := range opts {
		if opts[i].ID == "" {
			opts[i].ID = model.GenerateUUID()
		}
	}
	b, err := json.Marshal(opts)
	if err != nil {
		return err
	}
	q.Options = b
	return nil
}
