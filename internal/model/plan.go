package model

import "encoding/json"

const (
	PlanLevelBeginner     = "beginner"     // 30天以内
	PlanLevelIntermediate = "intermediate" // 60天以内
	PlanLevelAdvanced     = "advanced"
)

// DifficultyForDuration 由计划天数推导难度档位
func DifficultyForDuration(days int) string {
	switch {
	case days <= 30:
		return PlanLevelBeginner
	case days <= 60:
		return PlanLevelIntermediate
	default:
		return PlanLevelAdvanced
	}
}

// Plan 已生成的多日学习计划，树结构以JSON形式整体存储
// swagger:model Plan
type Plan struct {
	UUIDBase
	TemplateID          string          `gorm:"size:36;index" json:"templateId"`
	Name                string          `gorm:"size:255;not null" json:"name"`
	DurationDays        int             `gorm:"not null;index" json:"durationDays"`
	Difficulty          string          `gorm:"size:20" json:"difficulty"`
	Lineage             string          `gorm:"size:100;index" json:"lineage"`
	LearningPathScope   string          `gorm:"size:100;index" json:"learningPathScope"`
	Tree                json.RawMessage `gorm:"type:json" json:"tree"` // JSON: PlanNode
	TotalQuestions      int             `gorm:"default:0" json:"totalQuestions"`
	CumulativeQuestions int             `gorm:"default:0" json:"cumulativeQuestions"`
	EstimatedTime       int             `gorm:"default:0" json:"estimatedTime"` // 分钟
	Seed                int64           `gorm:"default:0" json:"seed"`          // 生成时使用的随机种子，便于复现
	IsActive            bool            `gorm:"default:true" json:"isActive"`
}

func (Plan) TableName() string {
	return "plans"
}

func (p *Plan) Root() (*PlanNode, error) {
	if len(p.Tree) == 0 {
		return nil, nil
	}
	var root PlanNode
	if err := json.Unmarshal(p.Tree, &root); err != nil {
		return nil, err
	}
	return &root, nil
}

func (p *Plan) SetRoot(root *PlanNode) error {
	b, err := json.Marshal(root)
	if err != nil {
		return err
	}
	p.Tree = b
	return nil
}
