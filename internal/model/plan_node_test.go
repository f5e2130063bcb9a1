package model

import (
	"reflect"
	"testing"
)

func sampleTree() *PlanNode {
	return &PlanNode{
		ID:   "root",
		Kind: NodeKindPlan,
		Children: []*PlanNode{
			{
				ID:   "card-1",
				Kind: NodeKindCard,
				Children: []*PlanNode{
					{
						ID:   "cat-1",
						Kind: NodeKindCategory,
						Children: []*PlanNode{
							{ID: "t1", Kind: NodeKindTopic, QuestionIDs: IDList{"q1", "q2"}},
							{ID: "t2", Kind: NodeKindTopic, QuestionIDs: IDList{"q3"}},
						},
					},
				},
			},
			{
				ID:   "card-2",
				Kind: NodeKindCard,
				Children: []*PlanNode{
					{
						ID:   "cat-2",
						Kind: NodeKindCategory,
						Children: []*PlanNode{
							{ID: "t3", Kind: NodeKindTopic, QuestionIDs: IDList{"q4"}},
						},
					},
				},
			},
		},
	}
}

func TestWalkPreOrder(t *testing.T) {
	var visited []string
	sampleTree().Walk(func(n *PlanNode) bool {
		visited = append(visited, n.ID)
		return true
	})
	want := []string{"root", "card-1", "cat-1", "t1", "t2", "card-2", "cat-2", "t3"}
	if !reflect.DeepEqual(visited, want) {
		t.Errorf("visit order = %v, want %v", visited, want)
	}
}

func TestWalkEarlyStop(t *testing.T) {
	var visited []string
	sampleTree().Walk(func(n *PlanNode) bool {
		visited = append(visited, n.ID)
		return n.ID != "t1"
	})
	want := []string{"root", "card-1", "cat-1", "t1"}
	if !reflect.DeepEqual(visited, want) {
		t.Errorf("visit order = %v, want %v", visited, want)
	}
}

func TestTopics(t *testing.T) {
	topics := sampleTree().Topics()
	var ids []string
	for _, tp := range topics {
		ids = append(ids, tp.ID)
	}
	want := []string{"t1", "t2", "t3"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("Topics() = %v, want %v", ids, want)
	}
}

func TestFind(t *testing.T) {
	tree := sampleTree()
	tests := []struct {
		id    string
		found bool
	}{
		{"root", true},
		{"cat-2", true},
		{"t2", true},
		{"nope", false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got := tree.Find(tt.id)
			if (got != nil) != tt.found {
				t.Errorf("Find(%s) = %v, want found=%v", tt.id, got, tt.found)
			}
			if got != nil && got.ID != tt.id {
				t.Errorf("Find(%s) returned node %s", tt.id, got.ID)
			}
		})
	}
}

func TestAllQuestionIDs(t *testing.T) {
	got := sampleTree().AllQuestionIDs()
	want := []string{"q1", "q2", "q3", "q4"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AllQuestionIDs() = %v, want %v", got, want)
	}
}

func TestDifficultyForDuration(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{7, PlanLevelBeginner},
		{30, PlanLevelBeginner},
		{31, PlanLevelIntermediate},
		{60, PlanLevelIntermediate},
		{90, PlanLevelAdvanced},
	}
	for _, tt := range tests {
		if got := DifficultyForDuration(tt.days); got != tt.want {
			t.Errorf("DifficultyForDuration(%d) = %s, want %s", tt.days, got, tt.want)
		}
	}
}
