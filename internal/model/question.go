package model

import "encoding/json"

type QuestionDifficulty string

const (
	DifficultyEasy   QuestionDifficulty = "easy"
	DifficultyMedium QuestionDifficulty = "medium"
	DifficultyHard   QuestionDifficulty = "hard"
)

var AllDifficulties = []QuestionDifficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Option 题目的可选项
type Option struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// Question 题库中的一道面试题
// swagger:model Question
type Question struct {
	UUIDBase
	Title        string             `gorm:"size:255;not null" json:"title"`
	Content      string             `gorm:"type:text" json:"content"`
	Category     string             `gorm:"size:100;index;not null" json:"category"`     // 例如 JavaScript / CSS
	LearningPath string             `gorm:"size:100;index;not null" json:"learningPath"` // 所属学习路线，例如 frontend
	Difficulty   QuestionDifficulty `gorm:"type:enum('easy','medium','hard')" json:"difficulty"`
	Options      json.RawMessage    `gorm:"type:json" json:"options"` // JSON: []Option
	Explanation  string             `gorm:"type:text" json:"explanation"`
	Tags         IDList             `gorm:"type:json" json:"tags"`
	IsActive     bool               `gorm:"default:true;index" json:"isActive"`
	CreatorID    uint               `gorm:"index;type:bigint unsigned" json:"creatorId"`
}

func (Question) TableName() string {
	return "questions"
}

func (q *Question) OptionList() []Option {
	if len(q.Options) == 0 {
		return nil
	}
	var opts []Option
	if err := json.Unmarshal(q.Options, &opts); err != nil {
		return nil
	}
	return opts
}

// HasOptions 是否为可作答题目（进度统计只计入有选项的题）
func (q *Question) HasOptions() bool {
	return len(q.OptionList()) > 0
}
