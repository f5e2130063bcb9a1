package repository

import (
	"interview_prep_backend/internal/model"

	"gorm.io/gorm"
)

// QuestionFilter 按属性查询题库的过滤条件，零值字段不参与过滤
type QuestionFilter struct {
	Category     string
	LearningPath string
	Difficulty   model.QuestionDifficulty
	IsActive     *bool
}

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *QuestionRepository) CreateBatch(qs []*model.Question) error {
	if len(qs) == 0 {
		return nil
	}
	return r.DB.Create(qs).Error
}

func (r *QuestionRepository) FindByID(id string) (*model.Question, error) {
	var q model.Question
	err := r.DB.Where("id = ?", id).First(&q).Error
	return &q, err
}

func (r *QuestionRepository) FindByIDs(ids []string) ([]model.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var qs []model.Question
	err := r.DB.Where("id IN ?", ids).Find(&qs).Error
	return qs, err
}

// Query 题库的按属性过滤读取
func (r *QuestionRepository) Query(filter QuestionFilter) ([]model.Question, error) {
	var qs []model.Question
	err := r.applyFilter(filter).Find(&qs).Error
	return qs, err
}

// List 带分页的过滤查询，供内容管理页使用
func (r *QuestionRepository) List(filter QuestionFilter, page, limit int) ([]model.Question, int64, error) {
	var qs []model.Question
	var total int64
	query := r.applyFilter(filter)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&qs).Error
	return qs, total, err
}

func (r *QuestionRepository) applyFilter(filter QuestionFilter) *gorm.DB {
	query := r.DB.Model(&model.Question{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.LearningPath != "" {
		query = query.Where("learning_path = ?", filter.LearningPath)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	return query
}

func (r *QuestionRepository) Update(q *model.Question) error {
	return r.DB.Save(q).Error
}

func (r *QuestionRepository) SetActive(id string, active bool) error {
	return r.DB.Model(&model.Question{}).Where("id = ?", id).
		Update("is_active", active).Error
}

func (r *QuestionRepository) Delete(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.Question{}).Error
}
