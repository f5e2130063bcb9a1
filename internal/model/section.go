package model

// Section 按类别聚合题目的结构节点，一道题可同时属于多个章节
// swagger:model Section
type Section struct {
	UUIDBase
	Name              string `gorm:"size:255;not null" json:"name"`
	Category          string `gorm:"size:100;index;not null" json:"category"`
	LearningPathScope string `gorm:"size:100;index;not null" json:"learningPathScope"`
	Order             int    `gorm:"default:0" json:"order"`
	Weight            int    `gorm:"default:0" json:"weight"` // 展示用百分比，不强制求和为100
	IsActive          bool   `gorm:"default:true;index" json:"isActive"`
	QuestionIDs       IDList `gorm:"type:json" json:"questionIds"`
}

func (Section) TableName() string {
	return "sections"
}
