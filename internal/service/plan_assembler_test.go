package service

import (
	"encoding/json"
	"fmt"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/repository"
	"interview_prep_backend/internal/util"
	"math/rand"
	"reflect"
	"testing"
)

// fakePool 按 (类别|难度) 返回预置题目，不依赖数据库
type fakePool struct {
	questions map[string][]model.Question
	queries   int
}

func (p *fakePool) Query(f repository.QuestionFilter) ([]model.Question, error) {
	p.queries++
	key := f.Category + "|" + string(f.Difficulty)
	out := make([]model.Question, len(p.questions[key]))
	copy(out, p.questions[key])
	return out, nil
}

func makeQuestions(category string, difficulty model.QuestionDifficulty, n int) []model.Question {
	qs := make([]model.Question, 0, n)
	for i := 0; i < n; i++ {
		q := model.Question{
			Title:        fmt.Sprintf("%s-%s-%d", category, difficulty, i),
			Category:     category,
			LearningPath: "backend",
			Difficulty:   difficulty,
			IsActive:     true,
		}
		q.ID = fmt.Sprintf("q-%s-%s-%d", category, difficulty, i)
		qs = append(qs, q)
	}
	return qs
}

func poolWith(counts map[string]int) *fakePool {
	p := &fakePool{questions: map[string][]model.Question{}}
	for key, n := range counts {
		var category string
		var difficulty model.QuestionDifficulty
		for i, c := range key {
			if c == '|' {
				category = key[:i]
				difficulty = model.QuestionDifficulty(key[i+1:])
				break
			}
		}
		p.questions[key] = makeQuestions(category, difficulty, n)
	}
	return p
}

func makeTemplate(t *testing.T, days int, cards []model.CardTemplate) *model.PlanTemplate {
	t.Helper()
	raw, err := json.Marshal(cards)
	if err != nil {
		t.Fatalf("marshal cards: %v", err)
	}
	tpl := &model.PlanTemplate{
		Name:              "测试计划",
		DurationDays:      days,
		LearningPathScope: "backend",
		Cards:             raw,
	}
	tpl.ID = "tpl-1"
	return tpl
}

func TestDistributionForDuration(t *testing.T) {
	tests := []struct {
		name     string
		days     int
		cardType string
		want     DifficultyTargets
	}{
		{
			name:     "30天取基准值",
			days:     30,
			cardType: "core",
			want:     DifficultyTargets{model.DifficultyEasy: 12, model.DifficultyMedium: 10, model.DifficultyHard: 4},
		},
		{
			name:     "60天翻倍",
			days:     60,
			cardType: "core",
			want:     DifficultyTargets{model.DifficultyEasy: 24, model.DifficultyMedium: 20, model.DifficultyHard: 8},
		},
		{
			name:     "不足30天不缩小",
			days:     7,
			cardType: "advanced",
			want:     DifficultyTargets{model.DifficultyEasy: 4, model.DifficultyMedium: 8, model.DifficultyHard: 10},
		},
		{
			name:     "非整倍数向上取整",
			days:     45,
			cardType: "framework",
			want:     DifficultyTargets{model.DifficultyEasy: 12, model.DifficultyMedium: 15, model.DifficultyHard: 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistributionForDuration(tt.days)[tt.cardType]
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DistributionForDuration(%d)[%s] = %v, want %v", tt.days, tt.cardType, got, tt.want)
			}
		})
	}
}

func TestAssembleNoDuplicateQuestions(t *testing.T) {
	// 两个 topic 共用同一类别的题池，抽取不得重复
	pool := poolWith(map[string]int{
		"go|easy":   20,
		"go|medium": 20,
		"go|hard":   20,
	})
	tpl := makeTemplate(t, 30, []model.CardTemplate{
		{Name: "基础", Type: "core", Categories: []model.CategoryTemplate{
			{Name: "go", Topics: []string{"语法", "并发"}},
		}},
	})

	a := NewPlanAssembler(pool, 3, 8)
	root, err := a.Assemble(tpl, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	seen := map[string]bool{}
	for _, id := range root.AllQuestionIDs() {
		if seen[id] {
			t.Errorf("question %s assigned to more than one topic", id)
		}
		seen[id] = true
	}
}

func TestAssemblePartialFulfillment(t *testing.T) {
	// 题池只有3题，目标远大于可得数量，组装降级而不报错
	pool := poolWith(map[string]int{
		"go|easy": 3,
	})
	tpl := makeTemplate(t, 30, []model.CardTemplate{
		{Name: "基础", Type: "core", Categories: []model.CategoryTemplate{
			{Name: "go", Topics: []string{"语法"}},
		}},
	})

	a := NewPlanAssembler(pool, 3, 8)
	root, err := a.Assemble(tpl, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if root.TotalQuestions != 3 {
		t.Errorf("TotalQuestions = %d, want 3", root.TotalQuestions)
	}
}

func TestAssembleEmptyPool(t *testing.T) {
	pool := &fakePool{questions: map[string][]model.Question{}}
	tpl := makeTemplate(t, 30, []model.CardTemplate{
		{Name: "基础", Type: "core", Categories: []model.CategoryTemplate{
			{Name: "go", Topics: []string{"语法"}},
		}},
	})

	a := NewPlanAssembler(pool, 3, 8)
	root, err := a.Assemble(tpl, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if root.TotalQuestions != 0 {
		t.Errorf("TotalQuestions = %d, want 0", root.TotalQuestions)
	}
	if len(root.Children) != 1 {
		t.Fatalf("plan should keep its card even with empty pool, got %d children", len(root.Children))
	}
}

func TestAssembleNoCards(t *testing.T) {
	tpl := makeTemplate(t, 30, []model.CardTemplate{})
	a := NewPlanAssembler(&fakePool{questions: map[string][]model.Question{}}, 3, 8)

	_, err := a.Assemble(tpl, rand.New(rand.NewSource(1)))
	if err != util.ErrTemplateNoCards {
		t.Errorf("err = %v, want ErrTemplateNoCards", err)
	}
}

func TestAssembleSeedDeterminism(t *testing.T) {
	counts := map[string]int{
		"go|easy": 30, "go|medium": 30, "go|hard": 30,
		"mysql|easy": 30, "mysql|medium": 30, "mysql|hard": 30,
	}
	cards := []model.CardTemplate{
		{Name: "基础", Type: "core", Categories: []model.CategoryTemplate{
			{Name: "go", Topics: []string{"语法", "并发"}},
			{Name: "mysql", Topics: []string{"索引"}},
		}},
	}

	assemble := func(seed int64) []string {
		tpl := makeTemplate(t, 30, cards)
		a := NewPlanAssembler(poolWith(counts), 3, 8)
		root, err := a.Assemble(tpl, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("Assemble: %v", err)
		}
		return root.AllQuestionIDs()
	}

	first := assemble(7)
	second := assemble(7)
	if !reflect.DeepEqual(first, second) {
		t.Error("same seed should produce identical question assignment")
	}

	other := assemble(8)
	if reflect.DeepEqual(first, other) {
		t.Error("different seeds should shuffle differently")
	}
}

func TestAssemblePerTopicCeiling(t *testing.T) {
	// 目标4题分给3个 topic：ceil(4/3)=2，但全局目标仍受题池与抽取上限约束
	pool := poolWith(map[string]int{
		"go|hard": 10,
	})
	raw, _ := json.Marshal(DistributionTable{
		"core": {model.DifficultyHard: 4},
	})
	tpl := makeTemplate(t, 30, []model.CardTemplate{
		{Name: "基础", Type: "core", Categories: []model.CategoryTemplate{
			{Name: "go", Topics: []string{"a", "b", "c"}},
		}},
	})
	tpl.Distribution = raw

	a := NewPlanAssembler(pool, 3, 8)
	root, err := a.Assemble(tpl, rand.New(rand.NewSource(9)))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	for _, topic := range root.Topics() {
		if got := len(topic.QuestionIDs); got != 2 {
			t.Errorf("topic %s got %d questions, want 2 (ceil(4/3))", topic.Name, got)
		}
	}
}

func TestAssembleBottomUpTotals(t *testing.T) {
	pool := poolWith(map[string]int{
		"go|easy": 30, "go|medium": 30, "go|hard": 30,
	})
	tpl := makeTemplate(t, 30, []model.CardTemplate{
		{Name: "基础", Type: "core", Categories: []model.CategoryTemplate{
			{Name: "go", Topics: []string{"语法", "并发"}},
		}},
	})

	a := NewPlanAssembler(pool, 3, 8)
	root, err := a.Assemble(tpl, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	var walk func(n *model.PlanNode)
	walk = func(n *model.PlanNode) {
		if n.IsLeaf() {
			if n.TotalQuestions != len(n.QuestionIDs) {
				t.Errorf("topic %s TotalQuestions = %d, want %d", n.Name, n.TotalQuestions, len(n.QuestionIDs))
			}
			return
		}
		sumQ, sumT := 0, 0
		for _, c := range n.Children {
			walk(c)
			sumQ += c.TotalQuestions
			sumT += c.EstimatedTime
		}
		if n.TotalQuestions != sumQ {
			t.Errorf("node %s TotalQuestions = %d, want sum of children %d", n.Name, n.TotalQuestions, sumQ)
		}
		if n.EstimatedTime != sumT {
			t.Errorf("node %s EstimatedTime = %d, want sum of children %d", n.Name, n.EstimatedTime, sumT)
		}
	}
	walk(root)
}

func TestAssembleQueriesOncePerBucket(t *testing.T) {
	// 同一 (类别, 难度) 只查询一次题库，多个 topic 共享洗牌结果
	pool := poolWith(map[string]int{
		"go|easy": 30, "go|medium": 30, "go|hard": 30,
	})
	tpl := makeTemplate(t, 30, []model.CardTemplate{
		{Name: "基础", Type: "core", Categories: []model.CategoryTemplate{
			{Name: "go", Topics: []string{"a", "b", "c", "d"}},
		}},
	})

	a := NewPlanAssembler(pool, 3, 8)
	if _, err := a.Assemble(tpl, rand.New(rand.NewSource(5))); err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if pool.queries != 3 {
		t.Errorf("pool queried %d times, want 3 (one per difficulty)", pool.queries)
	}
}
