package service

import (
	"encoding/json"
	"fmt"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/repository"
	"interview_prep_backend/internal/util"
	"math"
	"math/rand"
)

// QuestionPool 组装计划时的题目来源，只做按属性过滤的读取
type QuestionPool interface {
	Query(filter repository.QuestionFilter) ([]model.Question, error)
}

// DifficultyTargets 各难度的目标题数
type DifficultyTargets map[model.QuestionDifficulty]int

// DistributionTable 按卡片类型给出各难度目标题数（已按计划天数缩放）
type DistributionTable map[string]DifficultyTargets

// 30天计划的基准分布，更长的计划按天数比例放大
var baseDistribution = DistributionTable{
	"core": {
		model.DifficultyEasy:   12,
		model.DifficultyMedium: 10,
		model.DifficultyHard:   4,
	},
	"framework": {
		model.DifficultyEasy:   8,
		model.DifficultyMedium: 10,
		model.DifficultyHard:   6,
	},
	"advanced": {
		model.DifficultyEasy:   4,
		model.DifficultyMedium: 8,
		model.DifficultyHard:   10,
	},
}

// DistributionForDuration 由天数缩放出完整分布表。未知卡片类型按 core 处理。
func DistributionForDuration(days int) DistributionTable {
	scale := float64(days) / 30.0
	if scale < 1 {
		scale = 1
	}
	table := DistributionTable{}
	for cardType, targets := range baseDistribution {
		scaled := DifficultyTargets{}
		for d, n := range targets {
			scaled[d] = int(math.Ceil(float64(n) * scale))
		}
		table[cardType] = scaled
	}
	return table
}

func (t DistributionTable) targetsFor(cardType string) DifficultyTargets {
	if targets, ok := t[cardType]; ok {
		return targets
	}
	return t["core"]
}

// PlanAssembler 由模板和题库组装完整的计划树。
// 随机源由调用方注入，同一种子产生相同的计划。
type PlanAssembler struct {
	Pool               QuestionPool
	MinQuestionMinutes int
	MaxQuestionMinutes int
}

func NewPlanAssembler(pool QuestionPool, minMinutes, maxMinutes int) *PlanAssembler {
	if minMinutes <= 0 {
		minMinutes = 3
	}
	if maxMinutes < minMinutes {
		maxMinutes = minMinutes + 5
	}
	return &PlanAssembler{
		Pool:               pool,
		MinQuestionMinutes: minMinutes,
		MaxQuestionMinutes: maxMinutes,
	}
}

// bucket 是某 (类别, 难度) 下洗牌后的候选队列，整次组装共用游标，
// 保证一道题不会被两个 topic 重复抽走。
type bucket struct {
	questions []model.Question
	cursor    int
}

func (b *bucket) take(n int, drawn map[string]bool) []model.Question {
	var out []model.Question
	for b.cursor < len(b.questions) && len(out) < n {
		q := b.questions[b.cursor]
		b.cursor++
		if drawn[q.ID] {
			continue
		}
		drawn[q.ID] = true
		out = append(out, q)
	}
	return out
}

// Assemble 组装计划树。题库不足时按实际可得数量降级，绝不因单个
// 空桶让整次组装失败；各节点的题数和预估耗时都来自实际分配结果。
func (a *PlanAssembler) Assemble(tpl *model.PlanTemplate, rng *rand.Rand) (*model.PlanNode, error) {
	cards, err := tpl.CardTemplates()
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, util.ErrTemplateNoCards
	}

	table := DistributionForDuration(tpl.DurationDays)
	if len(tpl.Distribution) > 0 {
		var override DistributionTable
		if err := json.Unmarshal(tpl.Distribution, &override); err != nil {
			return nil, fmt.Errorf("invalid distribution override: %w", err)
		}
		for cardType, targets := range override {
			table[cardType] = targets
		}
	}

	root := &model.PlanNode{
		ID:                model.GenerateUUID(),
		Kind:              model.NodeKindPlan,
		Name:              tpl.Name,
		LearningPathScope: tpl.LearningPathScope,
		IsActive:          true,
	}

	drawn := map[string]bool{}
	buckets := map[string]*bucket{}

	for ci, cardTpl := range cards {
		card := &model.PlanNode{
			ID:                model.GenerateUUID(),
			Kind:              model.NodeKindCard,
			Name:              cardTpl.Name,
			LearningPathScope: tpl.LearningPathScope,
			Order:             ci,
			Weight:            cardTpl.Weight,
			IsActive:          true,
		}
		targets := table.targetsFor(cardTpl.Type)

		for gi, catTpl := range cardTpl.Categories {
			category := &model.PlanNode{
				ID:                model.GenerateUUID(),
				Kind:              model.NodeKindCategory,
				Name:              catTpl.Name,
				Category:          catTpl.Name,
				LearningPathScope: tpl.LearningPathScope,
				Order:             gi,
				IsActive:          true,
			}
			topicCount := len(catTpl.Topics)
			if topicCount == 0 {
				card.Children = append(card.Children, category)
				continue
			}

			for ti, topicName := range catTpl.Topics {
				topic := &model.PlanNode{
					ID:                model.GenerateUUID(),
					Kind:              model.NodeKindTopic,
					Name:              topicName,
					Category:          catTpl.Name,
					LearningPathScope: tpl.LearningPathScope,
					Order:             ti,
					IsActive:          true,
				}

				for _, difficulty := range model.AllDifficulties {
					target := targets[difficulty]
					if target <= 0 {
						continue
					}
					perTopic := int(math.Ceil(float64(target) / float64(topicCount)))

					b, err := a.bucketFor(buckets, catTpl.Name, tpl.LearningPathScope, difficulty, rng)
					if err != nil {
						return nil, err
					}
					for _, q := range b.take(perTopic, drawn) {
						topic.QuestionIDs = append(topic.QuestionIDs, q.ID)
						topic.EstimatedTime += a.estimateMinutes(rng)
					}
				}

				topic.TotalQuestions = len(topic.QuestionIDs)
				category.Children = append(category.Children, topic)
				category.TotalQuestions += topic.TotalQuestions
				category.EstimatedTime += topic.EstimatedTime
			}

			card.Children = append(card.Children, category)
			card.TotalQuestions += category.TotalQuestions
			card.EstimatedTime += category.EstimatedTime
		}

		root.Children = append(root.Children, card)
		root.TotalQuestions += card.TotalQuestions
		root.EstimatedTime += card.EstimatedTime
	}

	return root, nil
}

func (a *PlanAssembler) bucketFor(buckets map[string]*bucket, category, path string, difficulty model.QuestionDifficulty, rng *rand.Rand) (*bucket, error) {
	key := category + "|" + string(difficulty)
	if b, ok := buckets[key]; ok {
		return b, nil
	}

	active := true
	questions, err := a.Pool.Query(repository.QuestionFilter{
		Category:     category,
		LearningPath: path,
		Difficulty:   difficulty,
		IsActive:     &active,
	})
	if err != nil {
		return nil, err
	}

	rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})

	b := &bucket{questions: questions}
	buckets[key] = b
	return b, nil
}

// estimateMinutes 单题预估耗时，仅用于前端展示
func (a *PlanAssembler) estimateMinutes(rng *rand.Rand) int {
	span := a.MaxQuestionMinutes - a.MinQuestionMinutes + 1
	return a.MinQuestionMinutes + rng.Intn(span)
}
