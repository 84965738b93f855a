package core

import "context"

// IDGenerator ID生成器基础接口
type IDGenerator interface {
	// NextID 生成下一个唯一ID（线程安全）
	// ctx 仅用于中断序列号耗尽时的等待
	NextID(ctx context.Context) (uint64, error)
}

// BatchGenerator 批量ID生成接口
type BatchGenerator interface {
	IDGenerator

	// NextIDBatch 批量生成指定数量的ID（线程安全）
	NextIDBatch(ctx context.Context, n int) ([]uint64, error)
}

// NodeIdentity 生成器所属节点的身份信息
type NodeIdentity interface {
	// GetWorkerID 获取工作机器ID（0-1023）
	GetWorkerID() int64

	// GetRegionID 获取区域ID（0-7）
	GetRegionID() int64
}

// MonitorableGenerator 可监控的生成器接口
type MonitorableGenerator interface {
	// GetMetrics 获取性能监控指标
	GetMetrics() map[string]uint64

	// ResetMetrics 重置性能监控指标
	ResetMetrics()

	// GetIDCount 获取已生成的ID总数
	GetIDCount() uint64
}

// ParseableGenerator 可解析+验证的生成器接口
type ParseableGenerator interface {
	// ParseID 解析ID，提取其中的时间戳、区域、机器等元信息
	ParseID(id uint64) (*IDInfo, error)

	// ValidateID 验证ID的有效性
	ValidateID(id uint64) error
}

// Generator 完整功能的生成器接口
type Generator interface {
	BatchGenerator
	NodeIdentity
	MonitorableGenerator
	ParseableGenerator
}

// GeneratorFactory 生成器工厂接口
type GeneratorFactory interface {
	// Create 根据配置创建生成器实例
	Create(config any) (Generator, error)
}

// IDParser ID解析器接口
type IDParser interface {
	// Parse 解析ID，提取完整的元信息
	Parse(id uint64) (*IDInfo, error)
}

// IDValidator ID验证器接口
type IDValidator interface {
	// Validate 验证ID的有效性
	Validate(id uint64) error

	// ValidateBatch 批量验证ID
	ValidateBatch(ids []uint64) error
}
