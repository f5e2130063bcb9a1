package model

import "encoding/json"

// CategoryTemplate 卡片下声明的类别及其主题名
type CategoryTemplate struct {
	Name   string   `json:"name"`
	Topics []string `json:"topics"`
}

// CardTemplate 计划模板中声明的顶层卡片
type CardTemplate struct {
	Name       string             `json:"name"`
	Type       string             `json:"type"` // core / framework / advanced
	Weight     int                `json:"weight"`
	Categories []CategoryTemplate `json:"categories"`
}

// PlanTemplate 生成学习计划所用的模板
// swagger:model PlanTemplate
type PlanTemplate struct {
	UUIDBase
	Name              string          `gorm:"size:255;not null" json:"name"`
	DurationDays      int             `gorm:"not null;index" json:"durationDays"`
	Lineage           string          `gorm:"size:100;index" json:"lineage"` // 同一系列的累积计划共享该值
	LearningPathScope string          `gorm:"size:100;index;not null" json:"learningPathScope"`
	Cards             json.RawMessage `gorm:"type:json" json:"cards"`        // JSON: []CardTemplate
	Distribution      json.RawMessage `gorm:"type:json" json:"distribution"` // 可选，覆盖默认难度分布表
	IsActive          bool            `gorm:"default:true" json:"isActive"`
	CreatorID         uint            `gorm:"index;type:bigint unsigned" json:"creatorId"`
}

func (PlanTemplate) TableName() string {
	return "plan_templates"
}

func (t *PlanTemplate) CardTemplates() ([]CardTemplate, error) {
	if len(t.Cards) == 0 {
		return nil, nil
	}
	var cards []CardTemplate
	err := json.Unmarshal(t.Cards, &cards)
	return cards, err
}
