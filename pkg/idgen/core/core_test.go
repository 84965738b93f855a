package core

import (
	"errors"
	"fmt"
	"testing"
)

// TestGeneratorType 测试生成器类型
func TestGeneratorType(t *testing.T) {
	tests := []struct {
		name     string
		genType  GeneratorType
		expected string
		isValid  bool
	}{
		{"Snowflake类型", GeneratorTypeSnowflake, "snowflake", true},
		{"空类型", GeneratorType(""), "", false},
		{"无效类型", GeneratorType("uuid"), "uuid", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.genType.String(); got != tt.expected {
				t.Errorf("String() = %s, 期望 %s", got, tt.expected)
			}
			if got := tt.genType.IsValid(); got != tt.isValid {
				t.Errorf("IsValid() = %v, 期望 %v", got, tt.isValid)
			}
		})
	}
}

// TestConfigurationError 测试配置错误
func TestConfigurationError(t *testing.T) {
	err := fmt.Errorf("create generator: %w", &ConfigurationError{
		Field: "worker_id",
		Value: 1024,
		Max:   1023,
		Err:   ErrInvalidWorkerID,
	})

	if !errors.Is(err, ErrInvalidWorkerID) {
		t.Error("errors.Is(err, ErrInvalidWorkerID) 应为 true")
	}

	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatal("errors.As 应能取出 *ConfigurationError")
	}
	if cfgErr.Value != 1024 || cfgErr.Max != 1023 {
		t.Errorf("Value/Max = %d/%d, 期望 1024/1023", cfgErr.Value, cfgErr.Max)
	}

	want := "invalid worker id: must be between 0 and 1023: worker_id=1024, valid range [0, 1023]"
	if cfgErr.Error() != want {
		t.Errorf("Error() = %q, 期望 %q", cfgErr.Error(), want)
	}

	// 未指定哨兵错误时归类为 ErrInvalidConfig
	if !errors.Is(&ConfigurationError{Field: "x"}, ErrInvalidConfig) {
		t.Error("未指定Err时应 unwrap 为 ErrInvalidConfig")
	}
}

// TestClockBackwardError 测试时钟回拨错误
func TestClockBackwardError(t *testing.T) {
	var err error = &ClockBackwardError{Regression: 5, Last: 1005, Now: 1000}

	if !errors.Is(err, ErrClockMovedBackwards) {
		t.Error("errors.Is(err, ErrClockMovedBackwards) 应为 true")
	}

	var backward *ClockBackwardError
	if !errors.As(err, &backward) {
		t.Fatal("errors.As 应能取出 *ClockBackwardError")
	}
	if backward.Regression != 5 {
		t.Errorf("Regression = %d, 期望 5", backward.Regression)
	}

	want := "clock moved backwards: refusing to generate id: clock regressed by 5 ms (last 1005, now 1000)"
	if err.Error() != want {
		t.Errorf("Error() = %q, 期望 %q", err.Error(), want)
	}
}

// TestErrors 测试错误定义
func TestErrors(t *testing.T) {
	errorList := []error{
		ErrInvalidWorkerID,
		ErrInvalidRegionID,
		ErrInvalidConfig,
		ErrClockMovedBackwards,
		ErrTimestampOverflow,
		ErrInvalidSnowflakeID,
		ErrInvalidBatchSize,
		ErrNilConfig,
		ErrGeneratorNotFound,
		ErrGeneratorAlreadyExists,
		ErrDuplicateNode,
		ErrInvalidGeneratorType,
		ErrInvalidKey,
		ErrFactoryNotFound,
		ErrMaxGeneratorsReached,
	}

	seen := make(map[string]bool)
	for _, err := range errorList {
		if err == nil || err.Error() == "" {
			t.Fatal("错误不应为nil或空消息")
		}
		if seen[err.Error()] {
			t.Errorf("错误消息重复: %s", err.Error())
		}
		seen[err.Error()] = true
	}
}
