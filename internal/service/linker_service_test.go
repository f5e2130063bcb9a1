package service

import (
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/util"
	"testing"
)

func makeQuestion(id, category, path string) *model.Question {
	q := &model.Question{
		Title:        id,
		Category:     category,
		LearningPath: path,
		Difficulty:   model.DifficultyEasy,
		IsActive:     true,
	}
	q.ID = id
	return q
}

func makeSection(id, category, scope string, active bool) model.Section {
	s := model.Section{
		Name:              id,
		Category:          category,
		LearningPathScope: scope,
		IsActive:          active,
	}
	s.ID = id
	return s
}

func TestMatchSections(t *testing.T) {
	sections := []model.Section{
		makeSection("s1", "go", "backend", true),
		makeSection("s2", "go", "backend", true),
		makeSection("s3", "go", "frontend", true),
		makeSection("s4", "mysql", "backend", true),
		makeSection("s5", "go", "backend", false),
	}

	tests := []struct {
		name    string
		q       *model.Question
		wantIDs []string
		wantErr error
	}{
		{
			name:    "命中所有同属性的启用章节",
			q:       makeQuestion("q1", "go", "backend"),
			wantIDs: []string{"s1", "s2"},
		},
		{
			name:    "零匹配不是错误",
			q:       makeQuestion("q2", "redis", "backend"),
			wantIDs: nil,
		},
		{
			name:    "缺类别视为非法题目",
			q:       makeQuestion("q3", "", "backend"),
			wantErr: util.ErrQuestionIncomplete,
		},
		{
			name:    "缺学习路线视为非法题目",
			q:       makeQuestion("q4", "go", ""),
			wantErr: util.ErrQuestionIncomplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MatchSections(tt.q, sections)
			if err != tt.wantErr {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("matched %d sections, want %d", len(got), len(tt.wantIDs))
			}
			for i, s := range got {
				if s.ID != tt.wantIDs[i] {
					t.Errorf("matched[%d] = %s, want %s", i, s.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func planTree(topics ...*model.PlanNode) *model.PlanNode {
	return &model.PlanNode{
		ID:   "plan-root",
		Kind: model.NodeKindPlan,
		Children: []*model.PlanNode{
			{
				ID:   "card-1",
				Kind: model.NodeKindCard,
				Children: []*model.PlanNode{
					{
						ID:       "cat-1",
						Kind:     model.NodeKindCategory,
						Children: topics,
					},
				},
			},
		},
	}
}

func treeTopic(id, category, scope string, order int, questionIDs ...string) *model.PlanNode {
	return &model.PlanNode{
		ID:                id,
		Kind:              model.NodeKindTopic,
		Name:              id,
		Category:          category,
		LearningPathScope: scope,
		Order:             order,
		IsActive:          true,
		QuestionIDs:       model.IDList(questionIDs),
	}
}

func TestMatchTopic(t *testing.T) {
	q := makeQuestion("q1", "go", "backend")

	t.Run("选题数最少的候选", func(t *testing.T) {
		root := planTree(
			treeTopic("t1", "go", "backend", 0, "a", "b"),
			treeTopic("t2", "go", "backend", 1, "a"),
		)
		got, err := MatchTopic(q, root)
		if err != nil {
			t.Fatalf("MatchTopic: %v", err)
		}
		if got == nil || got.ID != "t2" {
			t.Errorf("matched %v, want t2 (fewest questions)", got)
		}
	})

	t.Run("题数相同时取 order 最小", func(t *testing.T) {
		root := planTree(
			treeTopic("t1", "go", "backend", 1, "a"),
			treeTopic("t2", "go", "backend", 0, "b"),
		)
		got, err := MatchTopic(q, root)
		if err != nil {
			t.Fatalf("MatchTopic: %v", err)
		}
		if got == nil || got.ID != "t2" {
			t.Errorf("matched %v, want t2 (lowest order)", got)
		}
	})

	t.Run("题已在树中时返回空（幂等）", func(t *testing.T) {
		root := planTree(
			treeTopic("t1", "go", "backend", 0, "q1"),
			treeTopic("t2", "go", "backend", 1),
		)
		got, err := MatchTopic(q, root)
		if err != nil {
			t.Fatalf("MatchTopic: %v", err)
		}
		if got != nil {
			t.Errorf("matched %s, want nil for already linked question", got.ID)
		}
	})

	t.Run("属性不匹配返回空", func(t *testing.T) {
		root := planTree(
			treeTopic("t1", "mysql", "backend", 0),
			treeTopic("t2", "go", "frontend", 1),
		)
		got, err := MatchTopic(q, root)
		if err != nil {
			t.Fatalf("MatchTopic: %v", err)
		}
		if got != nil {
			t.Errorf("matched %s, want nil", got.ID)
		}
	})

	t.Run("跳过停用的 topic", func(t *testing.T) {
		disabled := treeTopic("t1", "go", "backend", 0)
		disabled.IsActive = false
		root := planTree(
			disabled,
			treeTopic("t2", "go", "backend", 1),
		)
		got, err := MatchTopic(q, root)
		if err != nil {
			t.Fatalf("MatchTopic: %v", err)
		}
		if got == nil || got.ID != "t2" {
			t.Errorf("matched %v, want t2", got)
		}
	})

	t.Run("空树返回空", func(t *testing.T) {
		got, err := MatchTopic(q, nil)
		if err != nil {
			t.Fatalf("MatchTopic: %v", err)
		}
		if got != nil {
			t.Errorf("matched %s, want nil", got.ID)
		}
	})

	t.Run("属性缺失报错", func(t *testing.T) {
		bad := makeQuestion("q2", "", "backend")
		if _, err := MatchTopic(bad, planTree()); err != util.ErrQuestionIncomplete {
			t.Errorf("err = %v, want ErrQuestionIncomplete", err)
		}
	})
}

func TestBuildQuestionKeepsIncompleteAttributes(t *testing.T) {
	item := ImportItem{
		Title:        "未填类别的题",
		Content:      "内容",
		LearningPath: "backend",
		Difficulty:   model.DifficultyEasy,
	}

	q, err := buildQuestion(7, item)
	if err != nil {
		t.Fatalf("buildQuestion: %v", err)
	}
	if q.ID == "" {
		t.Error("expected generated ID")
	}
	if q.Category != "" || q.LearningPath != "backend" {
		t.Errorf("attributes = (%q, %q), want (\"\", \"backend\")", q.Category, q.LearningPath)
	}
	if !q.IsActive {
		t.Error("imported question should be active")
	}
	if q.CreatorID != 7 {
		t.Errorf("creatorID = %d, want 7", q.CreatorID)
	}

	// 构建放行，链接阶段才识别属性不全
	if _, err := MatchSections(q, nil); err != util.ErrQuestionIncomplete {
		t.Errorf("MatchSections err = %v, want ErrQuestionIncomplete", err)
	}
	if _, err := MatchTopic(q, planTree()); err != util.ErrQuestionIncomplete {
		t.Errorf("MatchTopic err = %v, want ErrQuestionIncomplete", err)
	}
}
