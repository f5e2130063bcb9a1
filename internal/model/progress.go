package model

import "time"

// CurrentPosition 用户在计划树中的当前位置指针
type CurrentPosition struct {
	CardIndex     int `json:"cardIndex"`
	CategoryIndex int `json:"categoryIndex"`
	TopicIndex    int `json:"topicIndex"`
	QuestionIndex int `json:"questionIndex"`
}

// ProgressRecord 按 (用户, 计划) 维度存储的进度记录。
// 各完成集合在Redis中以原生Set保存，多端写入通过集合并集收敛。
type ProgressRecord struct {
	PlanID               string          `json:"planId"`
	CompletedQuestionIDs []string        `json:"completedQuestionIds"`
	CompletedTopicIDs    []string        `json:"completedTopicIds"`
	CompletedCategoryIDs []string        `json:"completedCategoryIds"`
	CompletedCardIDs     []string        `json:"completedCardIds"`
	CurrentPosition      CurrentPosition `json:"currentPosition"`
	LastUpdated          time.Time       `json:"lastUpdated"`
}

// NodeProgress 单个节点的完成度
type NodeProgress struct {
	Completed  int  `json:"completed"`
	Total      int  `json:"total"`
	Percentage int  `json:"percentage"`
	IsComplete bool `json:"isComplete"`
}
