package registry

import (
	"fmt"

	"katydid-common-idgen/pkg/idgen/core"
	"katydid-common-idgen/pkg/idgen/snowflake"
)

const (
	// DefaultGeneratorKey 默认生成器的键
	DefaultGeneratorKey = "default"
)

// InitDefault 在全局注册表中创建默认生成器
// 说明：默认生成器已存在时返回 core.ErrGeneratorAlreadyExists，需先 ResetDefault
func InitDefault(config *snowflake.Config) (core.Generator, error) {
	if config == nil {
		return nil, core.ErrNilConfig
	}
	return GetRegistry().Create(DefaultGeneratorKey, core.GeneratorTypeSnowflake, config)
}

// GetDefault 获取默认生成器
func GetDefault() (core.Generator, error) {
	generator, err := GetRegistry().Get(DefaultGeneratorKey)
	if err != nil {
		return nil, fmt.Errorf("default generator not initialized: %w", err)
	}
	return generator, nil
}

// ResetDefault 移除默认生成器，释放其节点
func ResetDefault() {
	_ = GetRegistry().Remove(DefaultGeneratorKey)
}
