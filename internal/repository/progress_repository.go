package repository

import (
	"context"
	"fmt"
	"interview_prep_backend/internal/model"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// ProgressRepository 进度存储。
// 完成集合使用Redis原生Set，追加即SADD（原子并集），多端并发写入
// 只会收敛为并集而不会互相覆盖；位置指针与更新时间放在Hash中。
type ProgressRepository struct {
	Redis *redis.Client
	ctx   context.Context
}

func NewProgressRepository(rdb *redis.Client) *ProgressRepository {
	return &ProgressRepository{
		Redis: rdb,
		ctx:   context.Background(),
	}
}

func progressKey(userID uint, planID, suffix string) string {
	return fmt.Sprintf("progress:%d:%s:%s", userID, planID, suffix)
}

func planIndexKey(userID uint) string {
	return fmt.Sprintf("progress:%d:plans", userID)
}

func suffixForKind(kind model.NodeKind) (string, bool) {
	switch kind {
	case model.NodeKindTopic:
		return "topics", true
	case model.NodeKindCategory:
		return "categories", true
	case model.NodeKindCard:
		return "cards", true
	}
	return "", false
}

// AddCompletedQuestions 记录答完的题目ID集合
func (r *ProgressRepository) AddCompletedQuestions(userID uint, planID string, questionIDs ...string) error {
	if len(questionIDs) == 0 {
		return nil
	}
	members := make([]interface{}, len(questionIDs))
	for i, id := range questionIDs {
		members[i] = id
	}
	pipe := r.Redis.TxPipeline()
	pipe.SAdd(r.ctx, progressKey(userID, planID, "questions"), members...)
	pipe.SAdd(r.ctx, planIndexKey(userID), planID)
	pipe.HSet(r.ctx, progressKey(userID, planID, "meta"), "lastUpdated", time.Now().Format(time.RFC3339))
	_, err := pipe.Exec(r.ctx)
	return err
}

// AddCompletedNode 记录显式完成标记（topic/category/card 级）
func (r *ProgressRepository) AddCompletedNode(userID uint, planID string, kind model.NodeKind, nodeID string) error {
	suffix, ok := suffixForKind(kind)
	if !ok {
		return fmt.Errorf("progress: node kind %q cannot be explicitly completed", kind)
	}
	pipe := r.Redis.TxPipeline()
	pipe.SAdd(r.ctx, progressKey(userID, planID, suffix), nodeID)
	pipe.SAdd(r.ctx, planIndexKey(userID), planID)
	pipe.HSet(r.ctx, progressKey(userID, planID, "meta"), "lastUpdated", time.Now().Format(time.RFC3339))
	_, err := pipe.Exec(r.ctx)
	return err
}

// SetPosition 更新当前位置指针
func (r *ProgressRepository) SetPosition(userID uint, planID string, pos model.CurrentPosition) error {
	key := progressKey(userID, planID, "meta")
	pipe := r.Redis.TxPipeline()
	pipe.HSet(r.ctx, key, map[string]interface{}{
		"cardIndex":     pos.CardIndex,
		"categoryIndex": pos.CategoryIndex,
		"topicIndex":    pos.TopicIndex,
		"questionIndex": pos.QuestionIndex,
		"lastUpdated":   time.Now().Format(time.RFC3339),
	})
	pipe.SAdd(r.ctx, planIndexKey(userID), planID)
	_, err := pipe.Exec(r.ctx)
	return err
}

// Load 读取完整进度记录，不存在时返回空记录而非错误
func (r *ProgressRepository) Load(userID uint, planID string) (*model.ProgressRecord, error) {
	record := &model.ProgressRecord{PlanID: planID}

	var err error
	if record.CompletedQuestionIDs, err = r.Redis.SMembers(r.ctx, progressKey(userID, planID, "questions")).Result(); err != nil {
		return nil, err
	}
	if record.CompletedTopicIDs, err = r.Redis.SMembers(r.ctx, progressKey(userID, planID, "topics")).Result(); err != nil {
		return nil, err
	}
	if record.CompletedCategoryIDs, err = r.Redis.SMembers(r.ctx, progressKey(userID, planID, "categories")).Result(); err != nil {
		return nil, err
	}
	if record.CompletedCardIDs, err = r.Redis.SMembers(r.ctx, progressKey(userID, planID, "cards")).Result(); err != nil {
		return nil, err
	}

	meta, err := r.Redis.HGetAll(r.ctx, progressKey(userID, planID, "meta")).Result()
	if err != nil {
		return nil, err
	}
	record.CurrentPosition = model.CurrentPosition{
		CardIndex:     atoiOrZero(meta["cardIndex"]),
		CategoryIndex: atoiOrZero(meta["categoryIndex"]),
		TopicIndex:    atoiOrZero(meta["topicIndex"]),
		QuestionIndex: atoiOrZero(meta["questionIndex"]),
	}
	if ts, ok := meta["lastUpdated"]; ok {
		record.LastUpdated, _ = time.Parse(time.RFC3339, ts)
	}

	return record, nil
}

// ListPlanIDs 返回用户有进度记录的计划ID
func (r *ProgressRepository) ListPlanIDs(userID uint) ([]string, error) {
	return r.Redis.SMembers(r.ctx, planIndexKey(userID)).Result()
}

// Clear 清空某计划下的全部进度
func (r *ProgressRepository) Clear(userID uint, planID string) error {
	pipe := r.Redis.TxPipeline()
	for _, suffix := range []string{"questions", "topics", "categories", "cards", "meta"} {
		pipe.Del(r.ctx, progressKey(userID, planID, suffix))
	}
	pipe.SRem(r.ctx, planIndexKey(userID), planID)
	_, err := pipe.Exec(r.ctx)
	return err
}

func atoiOrZero(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}
