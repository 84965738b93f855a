package snowflake

import (
	"fmt"

	"katydid-common-idgen/pkg/idgen/core"
)

var _ core.GeneratorFactory = (*Factory)(nil)

// Factory Snowflake生成器工厂
type Factory struct{}

// NewFactory 创建Snowflake工厂实例
func NewFactory() *Factory {
	return &Factory{}
}

// Create 创建Snowflake生成器实例
// 实现core.GeneratorFactory接口，接受 *Config 或 Config
func (f *Factory) Create(config any) (core.Generator, error) {
	var sfConfig *Config
	switch cfg := config.(type) {
	case *Config:
		sfConfig = cfg
	case Config:
		sfConfig = &cfg
	default:
		return nil, fmt.Errorf("%w: expected *snowflake.Config, got %T", core.ErrInvalidConfig, config)
	}

	generator, err := NewWithConfig(sfConfig)
	if err != nil {
		return nil, err
	}
	return generator, nil
}
