package repository

import (
	"interview_prep_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlanRepository struct {
	DB *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{DB: db}
}

func (r *PlanRepository) Create(p *model.Plan) error {
	return r.DB.Create(p).Error
}

func (r *PlanRepository) FindByID(id string) (*model.Plan, error) {
	var p model.Plan
	err := r.DB.Where("id = ?", id).First(&p).Error
	return &p, err
}

func (r *PlanRepository) ListActive() ([]model.Plan, error) {
	var ps []model.Plan
	err := r.DB.Where("is_active = ?", true).Order("duration_days asc").Find(&ps).Error
	return ps, err
}

func (r *PlanRepository) List(page, limit int) ([]model.Plan, int64, error) {
	var ps []model.Plan
	var total int64
	query := r.DB.Model(&model.Plan{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("duration_days asc").Offset(offset).Limit(limit).Find(&ps).Error
	return ps, total, err
}

// FindLineageBelow 查找同系列中天数严格小于 days 的计划，用于累积题数计算
func (r *PlanRepository) FindLineageBelow(lineage string, days int) ([]model.Plan, error) {
	if lineage == "" {
		return nil, nil
	}
	var ps []model.Plan
	err := r.DB.Where("lineage = ? AND duration_days < ?", lineage, days).
		Order("duration_days asc").Find(&ps).Error
	return ps, err
}

func (r *PlanRepository) Update(p *model.Plan) error {
	return r.DB.Save(p).Error
}

func (r *PlanRepository) Delete(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.Plan{}).Error
}

// AppendTopicQuestionIDs 向计划树中指定 topic 节点追加题目ID。
// 与章节追加同理：行锁内读-并集-写，保证并发导入下不丢链接。
func (r *PlanRepository) AppendTopicQuestionIDs(planID, topicID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var p model.Plan
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", planID).First(&p).Error; err != nil {
			return err
		}

		root, err := p.Root()
		if err != nil || root == nil {
			return err
		}
		topic := root.Find(topicID)
		if topic == nil || !topic.IsLeaf() {
			return nil
		}

		changed := false
		for _, id := range ids {
			if !topic.QuestionIDs.Contains(id) {
				topic.QuestionIDs = append(topic.QuestionIDs, id)
				changed = true
			}
		}
		if !changed {
			return nil
		}
		if err := p.SetRoot(root); err != nil {
			return err
		}
		return tx.Model(&model.Plan{}).Where("id = ?", planID).
			Update("tree", p.Tree).Error
	})
}
