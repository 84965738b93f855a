package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWorkerID 工作机器ID超出有效范围
	ErrInvalidWorkerID = errors.New("invalid worker id: must be between 0 and 1023")

	// ErrInvalidRegionID 区域ID超出有效范围
	ErrInvalidRegionID = errors.New("invalid region id: must be between 0 and 7")

	// ErrInvalidConfig 配置项不合法
	ErrInvalidConfig = errors.New("invalid generator config")

	// ErrClockMovedBackwards 检测到时钟回拨
	ErrClockMovedBackwards = errors.New("clock moved backwards: refusing to generate id")

	// ErrTimestampOverflow 时间戳超出41位可表示范围（或早于Epoch）
	ErrTimestampOverflow = errors.New("timestamp overflow: outside the 41-bit range since epoch")

	// ErrInvalidSnowflakeID 无效的Snowflake ID
	ErrInvalidSnowflakeID = errors.New("invalid snowflake id")

	// ErrInvalidBatchSize 批量生成数量无效
	ErrInvalidBatchSize = errors.New("invalid batch size")

	// ErrNilConfig 配置为nil
	ErrNilConfig = errors.New("config cannot be nil")

	// ErrGeneratorNotFound 生成器未找到
	ErrGeneratorNotFound = errors.New("generator not found")

	// ErrGeneratorAlreadyExists 生成器已存在
	ErrGeneratorAlreadyExists = errors.New("generator already exists")

	// ErrDuplicateNode 同一进程内已存在相同 region/worker 的生成器
	ErrDuplicateNode = errors.New("generator with the same region and worker already registered")

	// ErrInvalidGeneratorType 无效的生成器类型
	ErrInvalidGeneratorType = errors.New("invalid generator type")

	// ErrInvalidKey 无效的键
	ErrInvalidKey = errors.New("invalid key")

	// ErrFactoryNotFound 工厂未找到
	ErrFactoryNotFound = errors.New("factory not found")

	// ErrMaxGeneratorsReached 达到最大生成器数量
	ErrMaxGeneratorsReached = errors.New("maximum number of generators reached")
)

// ConfigurationError 构造生成器时的配置错误
// 说明：worker/region 超出位宽范围时返回，构造失败，不会产生任何生成器
type ConfigurationError struct {
	Field string // 字段名（worker_id / region_id / ...）
	Value int64  // 实际传入的值
	Max   int64  // 允许的最大值
	Err   error  // 对应的哨兵错误
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%v: %s=%d, valid range [0, %d]", e.Err, e.Field, e.Value, e.Max)
}

// Unwrap 支持 errors.Is(err, ErrInvalidWorkerID) 等判断
func (e *ConfigurationError) Unwrap() error {
	if e.Err == nil {
		return ErrInvalidConfig
	}
	return e.Err
}

// ClockBackwardError 时钟回拨错误
// 说明：本次调用不会返回ID，调用方可稍后重试
type ClockBackwardError struct {
	Regression int64 // 回拨量（毫秒）
	Last       int64 // 上次成功使用的时间戳（Unix毫秒）
	Now        int64 // 本次读取到的时间戳（Unix毫秒）
}

func (e *ClockBackwardError) Error() string {
	return fmt.Sprintf("%v: clock regressed by %d ms (last %d, now %d)",
		ErrClockMovedBackwards, e.Regression, e.Last, e.Now)
}

// Unwrap 支持 errors.Is(err, ErrClockMovedBackwards)
func (e *ClockBackwardError) Unwrap() error {
	return ErrClockMovedBackwards
}
