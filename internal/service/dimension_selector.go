package service

import (
	"context"

	"practice_backend/pkg/logger"

	"go.uber.org/zap"
)

const (
	// MasteryThreshold 上一题得分达到该值后转向新的知识维度
	MasteryThreshold = 8
	// DefaultDimensionID 目录为空时的兜底维度
	DefaultDimensionID uint = 1
)

// DimensionCatalog 知识维度目录快照
type DimensionCatalog interface {
	ListIDs(ctx context.Context) ([]uint, error)
}

type DimensionSelector struct {
	catalog DimensionCatalog
	rng     RandSource
}

func NewDimensionSelector(catalog DimensionCatalog, rng RandSource) *DimensionSelector {
	return &DimensionSelector{catalog: catalog, rng: rng}
}

// Select 读取目录后按策略选出本次出题的维度。
// 目录读取失败按空目录处理，最终落到默认维度。
func (s *DimensionSelector) Select(ctx context.Context, priorScore *int, requested []uint) []uint {
	log := logger.WithContext(ctx)

	catalog, err := s.catalog.ListIDs(ctx)
	if err != nil {
		log.Warn("读取知识维度目录失败，按空目录处理", zap.Error(err))
		catalog = nil
	}

	dims := selectDimensions(priorScore, requested, catalog, s.rng)
	log.Info("维度选择完成",
		zap.Uints("requested", requested),
		zap.Uints("selected", dims),
		zap.Int("catalog_size", len(catalog)),
	)
	return dims
}

// selectDimensions 按优先级：
//  1. 上一题高分：从全目录随机抽 2-4 个
//  2. 请求维度中存在于目录的部分（目录顺序）
//  3. 从目录随机抽 2 个
//  4. 默认维度
func selectDimensions(priorScore *int, requested, catalog []uint, rng RandSource) []uint {
	if priorScore != nil && *priorScore >= MasteryThreshold {
		k := 2 + rng.IntN(3)
		if picked := sampleIDs(catalog, k, rng); len(picked) > 0 {
			return picked
		}
	}

	if filtered := filterByCatalog(requested, catalog); len(filtered) > 0 {
		return filtered
	}

	if picked := sampleIDs(catalog, 2, rng); len(picked) > 0 {
		return picked
	}

	return []uint{DefaultDimensionID}
}

// sampleIDs 无放回抽取至多 k 个
func sampleIDs(catalog []uint, k int, rng RandSource) []uint {
	if len(catalog) == 0 || k <= 0 {
		return nil
	}
	pool := make([]uint, len(catalog))
	copy(pool, catalog)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if k > len(pool) {
		k = len(pool)
	}
	return pool[:k]
}

func filterByCatalog(requested, catalog []uint) []uint {
	if len(requested) == 0 {
		return nil
	}
	want := make(map[uint]struct{}, len(requested))
	for _, id := range requested {
		want[id] = struct{}{}
	}
	var out []uint
	for _, id := range catalog {
		if _, ok := want[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
