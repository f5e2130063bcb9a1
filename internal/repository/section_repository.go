package repository

import (
	"interview_prep_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SectionRepository struct {
	DB *gorm.DB
}

func NewSectionRepository(db *gorm.DB) *SectionRepository {
	return &SectionRepository{DB: db}
}

func (r *SectionRepository) Create(s *model.Section) error {
	return r.DB.Create(s).Error
}

func (r *SectionRepository) FindByID(id string) (*model.Section, error) {
	var s model.Section
	err := r.DB.Where("id = ?", id).First(&s).Error
	return &s, err
}

func (r *SectionRepository) ListActive() ([]model.Section, error) {
	var ss []model.Section
	err := r.DB.Where("is_active = ?", true).Order("`order` asc").Find(&ss).Error
	return ss, err
}

func (r *SectionRepository) List(page, limit int) ([]model.Section, int64, error) {
	var ss []model.Section
	var total int64
	query := r.DB.Model(&model.Section{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("`order` asc, created_at desc").Offset(offset).Limit(limit).Find(&ss).Error
	return ss, total, err
}

func (r *SectionRepository) Update(s *model.Section) error {
	return r.DB.Save(s).Error
}

func (r *SectionRepository) Delete(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.Section{}).Error
}

// AppendQuestionIDs 向章节追加题目ID。
// 并发批量导入会同时写同一章节，必须在行锁内做读-并集-写，
// 否则先写的链接会被后写覆盖丢失。追加已存在的ID是幂等空操作。
func (r *SectionRepository) AppendQuestionIDs(sectionID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var s model.Section
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", sectionID).First(&s).Error; err != nil {
			return err
		}

		merged := s.QuestionIDs
		changed := false
		for _, id := range ids {
			if !merged.Contains(id) {
				merged = append(merged, id)
				changed = true
			}
		}
		if !changed {
			return nil
		}
		return tx.Model(&model.Section{}).Where("id = ?", sectionID).
			Update("question_ids", merged).Error
	})
}

// RemoveQuestionIDs 从章节中摘除指定的题目ID（惰性清理失效引用时使用）。
// 与追加同理必须在行锁内做读-差集-写：拿未加锁快照做整体覆盖，
// 会把并发导入在两步之间刚追加的ID一并抹掉。
func (r *SectionRepository) RemoveQuestionIDs(sectionID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var s model.Section
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", sectionID).First(&s).Error; err != nil {
			return err
		}

		kept, changed := subtractIDs(s.QuestionIDs, ids)
		if !changed {
			return nil
		}
		return tx.Model(&model.Section{}).Where("id = ?", sectionID).
			Update("question_ids", kept).Error
	})
}

// subtractIDs 从 current 中去掉 remove 中出现的ID，其余条目原序保留
func subtractIDs(current model.IDList, remove []string) (model.IDList, bool) {
	drop := make(map[string]bool, len(remove))
	for _, id := range remove {
		drop[id] = true
	}
	kept := make(model.IDList, 0, len(current))
	for _, id := range current {
		if !drop[id] {
			kept = append(kept, id)
		}
	}
	return kept, len(kept) != len(current)
}
