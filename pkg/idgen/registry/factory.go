package registry

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"katydid-common-idgen/pkg/idgen/core"
	"katydid-common-idgen/pkg/idgen/snowflake"
)

// FactoryRegistry 工厂注册表
type FactoryRegistry struct {
	factories map[core.GeneratorType]core.GeneratorFactory // 工厂映射表
	mu        sync.RWMutex
}

var (
	// globalFactoryRegistry 全局工厂注册表实例（单例）
	globalFactoryRegistry *FactoryRegistry
	factoryRegistryOnce   sync.Once
)

// NewFactoryRegistry 创建空的工厂注册表
func NewFactoryRegistry() *FactoryRegistry {
	return &FactoryRegistry{
		factories: make(map[core.GeneratorType]core.GeneratorFactory),
	}
}

// GetFactoryRegistry 获取全局工厂注册表
// 说明：首次调用时注册内置的Snowflake工厂
func GetFactoryRegistry() *FactoryRegistry {
	factoryRegistryOnce.Do(func() {
		globalFactoryRegistry = NewFactoryRegistry()
		_ = globalFactoryRegistry.Register(core.GeneratorTypeSnowflake, snowflake.NewFactory())
	})
	return globalFactoryRegistry
}

// Register 注册工厂（允许覆盖已有工厂）
func (r *FactoryRegistry) Register(generatorType core.GeneratorType, factory core.GeneratorFactory) error {
	if !generatorType.IsValid() {
		return fmt.Errorf("%w: %s", core.ErrInvalidGeneratorType, generatorType)
	}
	if factory == nil {
		return fmt.Errorf("%w: factory cannot be nil", core.ErrInvalidConfig)
	}

	r.mu.Lock()
	r.factories[generatorType] = factory
	r.mu.Unlock()

	zap.L().Debug("工厂已注册", zap.String("type", generatorType.String()))
	return nil
}

// Get 获取工厂
func (r *FactoryRegistry) Get(generatorType core.GeneratorType) (core.GeneratorFactory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.factories[generatorType]
	if !exists {
		return nil, fmt.Errorf("%w: %s", core.ErrFactoryNotFound, generatorType)
	}
	return factory, nil
}

// Has 检查工厂是否存在
func (r *FactoryRegistry) Has(generatorType core.GeneratorType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[generatorType]
	return exists
}

// List 列出所有已注册的工厂类型（按名称排序）
func (r *FactoryRegistry) List() []core.GeneratorType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]core.GeneratorType, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
