// Package idgen 进程级默认ID生成器
//
// 使用方式：
//
//	if err := idgen.Init(workerID, regionID); err != nil { ... }
//	id, err := idgen.NextID(ctx)
package idgen

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"katydid-common-idgen/pkg/idgen/core"
	"katydid-common-idgen/pkg/idgen/domain"
	"katydid-common-idgen/pkg/idgen/registry"
	"katydid-common-idgen/pkg/idgen/snowflake"
)

// Init 使用指定节点初始化默认生成器
// 说明：重复调用返回 core.ErrGeneratorAlreadyExists
func Init(workerID, regionID int64) error {
	return InitWithConfig(&snowflake.Config{
		WorkerID: workerID,
		RegionID: regionID,
		Logger:   zap.L(),
	})
}

// InitWithConfig 使用完整配置初始化默认生成器
func InitWithConfig(config *snowflake.Config) error {
	if _, err := registry.InitDefault(config); err != nil {
		return fmt.Errorf("init default generator: %w", err)
	}
	return nil
}

// Default 获取默认生成器，未初始化时返回错误
func Default() (core.Generator, error) {
	return registry.GetDefault()
}

// Reset 移除默认生成器，之后可重新 Init
func Reset() {
	registry.ResetDefault()
}

// NextID 使用默认生成器生成ID
func NextID(ctx context.Context) (domain.ID, error) {
	gen, err := Default()
	if err != nil {
		return 0, err
	}
	id, err := gen.NextID(ctx)
	if err != nil {
		return 0, err
	}
	return domain.NewID(id), nil
}

// NextIDs 使用默认生成器批量生成ID
// 说明：出错时返回已生成的部分和错误
func NextIDs(ctx context.Context, count int) (domain.IDSlice, error) {
	gen, err := Default()
	if err != nil {
		return nil, err
	}
	ids, err := gen.NextIDBatch(ctx, count)
	return domain.NewIDSlice(ids...), err
}
