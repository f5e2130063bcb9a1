package service

import (
	"interview_prep_backend/internal/model"
	"reflect"
	"testing"
)

func topicNode(id string, questionIDs ...string) *model.PlanNode {
	return &model.PlanNode{
		ID:          id,
		Kind:        model.NodeKindTopic,
		Name:        id,
		QuestionIDs: model.IDList(questionIDs),
		IsActive:    true,
	}
}

func setOf(ids ...string) map[string]bool {
	m := map[string]bool{}
	for _, id := range ids {
		m[id] = true
	}
	return m
}

func TestComputeProgressLeaf(t *testing.T) {
	tests := []struct {
		name      string
		node      *model.PlanNode
		valid     map[string]bool
		completed map[string]bool
		explicit  map[string]bool
		want      model.NodeProgress
	}{
		{
			name:      "三题完成两题",
			node:      topicNode("t1", "q1", "q2", "q3"),
			valid:     setOf("q1", "q2", "q3"),
			completed: setOf("q1", "q2"),
			want:      model.NodeProgress{Completed: 2, Total: 3, Percentage: 67, IsComplete: false},
		},
		{
			name:      "全部完成",
			node:      topicNode("t1", "q1", "q2"),
			valid:     setOf("q1", "q2"),
			completed: setOf("q1", "q2"),
			want:      model.NodeProgress{Completed: 2, Total: 2, Percentage: 100, IsComplete: true},
		},
		{
			name:      "悬空引用不计入分母",
			node:      topicNode("t1", "q1", "q2", "ghost"),
			valid:     setOf("q1", "q2"),
			completed: setOf("q1", "q2"),
			want:      model.NodeProgress{Completed: 2, Total: 2, Percentage: 100, IsComplete: true},
		},
		{
			name:      "已完成的悬空引用同样不计入分子",
			node:      topicNode("t1", "q1", "ghost"),
			valid:     setOf("q1"),
			completed: setOf("q1", "ghost"),
			want:      model.NodeProgress{Completed: 1, Total: 1, Percentage: 100, IsComplete: true},
		},
		{
			name:      "空节点不会自动完成",
			node:      topicNode("t1"),
			valid:     setOf(),
			completed: setOf(),
			want:      model.NodeProgress{Completed: 0, Total: 0, Percentage: 0, IsComplete: false},
		},
		{
			name:     "空节点显式标记后视为完成",
			node:     topicNode("t1"),
			valid:    setOf(),
			explicit: setOf("t1"),
			want:     model.NodeProgress{Completed: 0, Total: 0, Percentage: 0, IsComplete: true},
		},
		{
			name:      "四舍五入",
			node:      topicNode("t1", "q1", "q2", "q3", "q4", "q5", "q6"),
			valid:     setOf("q1", "q2", "q3", "q4", "q5", "q6"),
			completed: setOf("q1"),
			want:      model.NodeProgress{Completed: 1, Total: 6, Percentage: 17, IsComplete: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeProgress(tt.node, tt.valid, tt.completed, tt.explicit)
			if got != tt.want {
				t.Errorf("ComputeProgress() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeProgressComposite(t *testing.T) {
	category := &model.PlanNode{
		ID:   "c1",
		Kind: model.NodeKindCategory,
		Children: []*model.PlanNode{
			topicNode("t1", "q1", "q2"),
			topicNode("t2", "q3", "q4", "q5"),
		},
	}
	valid := setOf("q1", "q2", "q3", "q4", "q5")

	t.Run("部分完成", func(t *testing.T) {
		got := ComputeProgress(category, valid, setOf("q1", "q2", "q3"), nil)
		want := model.NodeProgress{Completed: 3, Total: 5, Percentage: 60, IsComplete: false}
		if got != want {
			t.Errorf("ComputeProgress() = %+v, want %+v", got, want)
		}
	})

	t.Run("全部完成向上传播", func(t *testing.T) {
		got := ComputeProgress(category, valid, valid, nil)
		if !got.IsComplete || got.Percentage != 100 {
			t.Errorf("ComputeProgress() = %+v, want complete", got)
		}
	})

	t.Run("显式标记不影响计数", func(t *testing.T) {
		got := ComputeProgress(category, valid, setOf("q1"), setOf("c1"))
		want := model.NodeProgress{Completed: 1, Total: 5, Percentage: 20, IsComplete: true}
		if got != want {
			t.Errorf("ComputeProgress() = %+v, want %+v", got, want)
		}
	})
}

func TestComputeProgressMonotonic(t *testing.T) {
	// 完成集合增大时各节点百分比不得下降
	root := &model.PlanNode{
		ID:   "p1",
		Kind: model.NodeKindPlan,
		Children: []*model.PlanNode{
			{
				ID:   "c1",
				Kind: model.NodeKindCard,
				Children: []*model.PlanNode{
					topicNode("t1", "q1", "q2"),
					topicNode("t2", "q3", "q4"),
				},
			},
		},
	}
	valid := setOf("q1", "q2", "q3", "q4")
	order := []string{"q3", "q1", "q4", "q2"}

	completed := map[string]bool{}
	prev := -1
	for _, id := range order {
		completed[id] = true
		got := ComputeProgress(root, valid, completed, nil)
		if got.Percentage < prev {
			t.Fatalf("percentage dropped from %d to %d after completing %s", prev, got.Percentage, id)
		}
		prev = got.Percentage
	}
	if prev != 100 {
		t.Errorf("final percentage = %d, want 100", prev)
	}
}

func TestComputeProgressPurity(t *testing.T) {
	node := topicNode("t1", "q1", "q2")
	before := append(model.IDList{}, node.QuestionIDs...)
	valid := setOf("q1", "q2")
	completed := setOf("q1")

	ComputeProgress(node, valid, completed, nil)

	if !reflect.DeepEqual(node.QuestionIDs, before) {
		t.Error("ComputeProgress modified the node")
	}
	if len(completed) != 1 || !completed["q1"] {
		t.Error("ComputeProgress modified the completed set")
	}
}

func TestAnnotateProgress(t *testing.T) {
	root := &model.PlanNode{
		ID:   "p1",
		Kind: model.NodeKindPlan,
		Children: []*model.PlanNode{
			{
				ID:   "card1",
				Kind: model.NodeKindCard,
				Children: []*model.PlanNode{
					topicNode("t1", "q1", "q2"),
				},
			},
		},
	}
	valid := setOf("q1", "q2")

	out := AnnotateProgress(root, valid, setOf("q1"), nil)

	if out.ID != "p1" || len(out.Children) != 1 || len(out.Children[0].Children) != 1 {
		t.Fatalf("annotated tree shape mismatch: %+v", out)
	}
	topic := out.Children[0].Children[0]
	if topic.Progress.Completed != 1 || topic.Progress.Total != 2 {
		t.Errorf("topic progress = %+v, want 1/2", topic.Progress)
	}
	if out.Progress.Percentage != 50 {
		t.Errorf("root percentage = %d, want 50", out.Progress.Percentage)
	}
}
