package model

type NodeKind string

const (
	NodeKindPlan     NodeKind = "plan"
	NodeKindCard     NodeKind = "card"
	NodeKindCategory NodeKind = "category"
	NodeKindTopic    NodeKind = "topic"
)

// PlanNode 学习计划树的统一节点类型（plan → card → category → topic）。
// 只有 topic 级节点直接引用题目ID，上层节点通过 Children 递归。
// swagger:model PlanNode
type PlanNode struct {
	ID                string      `json:"id"`
	Kind              NodeKind    `json:"kind"`
	Name              string      `json:"name"`
	Category          string      `json:"category,omitempty"`
	LearningPathScope string      `json:"learningPathScope,omitempty"`
	Order             int         `json:"order"`
	Weight            int         `json:"weight,omitempty"`
	IsActive          bool        `json:"isActive"`
	QuestionIDs       IDList      `json:"questionIds,omitempty"`
	Children          []*PlanNode `json:"children,omitempty"`
	TotalQuestions    int         `json:"totalQuestions"`
	EstimatedTime     int         `json:"estimatedTime"` // 分钟
}

func (n *PlanNode) IsLeaf() bool {
	return n.Kind == NodeKindTopic
}

// Walk 先序遍历整棵子树，fn 返回 false 时停止
func (n *PlanNode) Walk(fn func(*PlanNode) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Topics 收集子树下所有 topic 级节点
func (n *PlanNode) Topics() []*PlanNode {
	var topics []*PlanNode
	n.Walk(func(node *PlanNode) bool {
		if node.IsLeaf() {
			topics = append(topics, node)
		}
		return true
	})
	return topics
}

// Find 按ID查找子树中的节点
func (n *PlanNode) Find(id string) *PlanNode {
	var found *PlanNode
	n.Walk(func(node *PlanNode) bool {
		if node.ID == id {
			found = node
			return false
		}
		return true
	})
	return found
}

// AllQuestionIDs 收集子树下全部题目ID（按遍历顺序）
func (n *PlanNode) AllQuestionIDs() []string {
	var ids []string
	n.Walk(func(node *PlanNode) bool {
		ids = append(ids, node.QuestionIDs...)
		return true
	})
	return ids
}
