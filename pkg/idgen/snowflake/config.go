package snowflake

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"katydid-common-idgen/pkg/idgen/core"
)

// validate 配置校验器（validator.Validate 并发安全，且会缓存结构体信息）
var validate = validator.New()

// Config Snowflake生成器配置
type Config struct {
	// RegionID 区域（机房）ID
	// 范围：0-7（3位二进制）
	// 用途：标识不同的区域，避免跨区域ID冲突
	RegionID int64 `validate:"gte=0,lte=7"`

	// WorkerID 工作机器ID
	// 范围：0-1023（10位二进制）
	// 用途：标识同一区域内的不同机器，避免同区域内ID冲突
	WorkerID int64 `validate:"gte=0,lte=1023"`

	// EnableMetrics 是否启用性能监控
	// 默认值：false
	EnableMetrics bool

	// SpinInterval 序列号耗尽、等待下一毫秒时两次读时钟之间的休眠时间
	// 0 表示只让出调度（runtime.Gosched），最大 1ms
	SpinInterval time.Duration

	// Clock 时间源，默认 SystemClock
	Clock Clock `validate:"-"`

	// SeedFunc 新毫秒的序列号起始值，默认在 [1, 10] 内随机
	// 返回值会与 SequenceMask 相与
	SeedFunc func() int64 `validate:"-"`

	// Logger 日志，默认 zap.NewNop()
	Logger *zap.Logger `validate:"-"`
}

// Validate 验证配置的有效性
// 说明：region/worker 越界返回 *core.ConfigurationError
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
			return fmt.Errorf("%w: %v", core.ErrInvalidConfig, err)
		}
		return c.toConfigurationError(fieldErrs[0])
	}

	if c.SpinInterval < 0 || c.SpinInterval > maxSpinInterval {
		return fmt.Errorf("%w: spin interval must be within [0, %s], got %s",
			core.ErrInvalidConfig, maxSpinInterval, c.SpinInterval)
	}

	return nil
}

// toConfigurationError 将 validator 的字段错误转换为 ConfigurationError
func (c *Config) toConfigurationError(fe validator.FieldError) error {
	switch fe.StructField() {
	case "RegionID":
		return &core.ConfigurationError{
			Field: "region_id",
			Value: c.RegionID,
			Max:   MaxRegionID,
			Err:   core.ErrInvalidRegionID,
		}
	case "WorkerID":
		return &core.ConfigurationError{
			Field: "worker_id",
			Value: c.WorkerID,
			Max:   MaxWorkerID,
			Err:   core.ErrInvalidWorkerID,
		}
	default:
		return fmt.Errorf("%w: field %s failed on %q", core.ErrInvalidConfig, fe.StructField(), fe.Tag())
	}
}

// SetDefaults 设置配置的默认值
func (c *Config) SetDefaults() {
	if c.Clock == nil {
		c.Clock = SystemClock{}
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	// SeedFunc 为nil时由生成器使用自带的随机源
}

// Clone 克隆配置对象
func (c *Config) Clone() *Config {
	return &Config{
		RegionID:      c.RegionID,
		WorkerID:      c.WorkerID,
		EnableMetrics: c.EnableMetrics,
		SpinInterval:  c.SpinInterval,
		Clock:         c.Clock,
		SeedFunc:      c.SeedFunc,
		Logger:        c.Logger,
	}
}
