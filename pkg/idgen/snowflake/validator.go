package snowflake

import (
	"fmt"

	"katydid-common-idgen/pkg/idgen/core"
)

// Validator Snowflake ID验证器
type Validator struct {
	clock Clock
}

// ValidateID 全局验证函数
func ValidateID(id uint64) error {
	return NewValidator().Validate(id)
}

// NewValidator 创建使用系统时钟的验证器
func NewValidator() core.IDValidator {
	return NewValidatorWithClock(SystemClock{})
}

// NewValidatorWithClock 创建使用指定时钟判断“未来时间”的验证器
// 生成器使用自己的时钟构建验证器，时钟超前时不会拒绝自己生成的ID
func NewValidatorWithClock(clock Clock) core.IDValidator {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Validator{clock: clock}
}

// Validate 验证Snowflake ID的有效性
func (v *Validator) Validate(id uint64) error {
	// 验证1：零值不是任何生成器能产生的ID
	if id == 0 {
		return fmt.Errorf("%w: id must be non-zero", core.ErrInvalidSnowflakeID)
	}

	// 验证2：时间戳不能太超前
	// 说明：允许一定的时钟误差（maxFutureTimeTolerance = 1分钟）
	timestamp := ExtractTimestamp(id)
	now := v.clock.NowMillis()
	if timestamp > now+maxFutureTimeTolerance {
		return fmt.Errorf("%w: timestamp %d is too far in the future (current: %d, max tolerance: %d ms)",
			core.ErrInvalidSnowflakeID, timestamp, now, maxFutureTimeTolerance)
	}

	return nil
}

// ValidateBatch 批量验证ID，遇到第一个错误立即返回
func (v *Validator) ValidateBatch(ids []uint64) error {
	if ids == nil {
		return fmt.Errorf("ids slice cannot be nil")
	}

	for i, id := range ids {
		if err := v.Validate(id); err != nil {
			return fmt.Errorf("invalid ID at index %d: %w", i, err)
		}
	}

	return nil
}
