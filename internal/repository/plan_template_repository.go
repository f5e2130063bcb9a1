package repository

import (
	"interview_prep_backend/internal/model"

	"gorm.io/gorm"
)

type PlanTemplateRepository struct {
	DB *gorm.DB
}

func NewPlanTemplateRepository(db *gorm.DB) *PlanTemplateRepository {
	return &PlanTemplateRepository{DB: db}
}

func (r *PlanTemplateRepository) Create(t *model.PlanTemplate) error {
	return r.DB.Create(t).Error
}

func (r *PlanTemplateRepository) FindByID(id string) (*model.PlanTemplate, error) {
	var t model.PlanTemplate
	err := r.DB.Where("id = ?", id).First(&t).Error
	return &t, err
}

func (r *PlanTemplateRepository) List(page, limit int) ([]model.PlanTemplate, int64, error) {
	var ts []model.PlanTemplate
	var total int64
	query := r.DB.Model(&model.PlanTemplate{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("duration_days asc").Offset(offset).Limit(limit).Find(&ts).Error
	return ts, total, err
}

func (r *PlanTemplateRepository) Update(t *model.PlanTemplate) error {
	return r.DB.Save(t).Error
}

func (r *PlanTemplateRepository) Delete(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.PlanTemplate{}).Error
}
