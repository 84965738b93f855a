package registry

import (
	"fmt"
	"regexp"
	"sort"
	"sync"

	"go.uber.org/zap"

	"katydid-common-idgen/pkg/idgen/core"
	"katydid-common-idgen/pkg/idgen/snowflake"
)

const (
	// defaultMaxGenerators 默认最大生成器数量
	defaultMaxGenerators = 100

	// absoluteMaxGenerators 绝对最大生成器数量（硬性上限）
	// 说明：即使通过SetMaxGenerators也不能超过此限制
	absoluteMaxGenerators = 100_000

	// maxKeyLength 键的最大长度
	maxKeyLength = 256
)

// keyFormatRegex 键的合法字符正则表达式
// 允许字符：字母（a-z, A-Z）、数字（0-9）、下划线(_)、连字符(-)、点(.)
var keyFormatRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-.]+$`)

// nodeKey 节点标识（区域ID + 工作机器ID）
type nodeKey struct {
	regionID int64
	workerID int64
}

// Registry 生成器注册表
// 同一注册表内不允许两个生成器使用相同的 (region, worker)，否则会产生重复ID
type Registry struct {
	generators    map[string]core.Generator // 生成器映射表
	nodes         map[nodeKey]string        // 节点 -> 占用该节点的key
	factories     *FactoryRegistry
	maxGenerators int
	logger        *zap.Logger // 为nil时使用 zap.L()
	mu            sync.RWMutex
}

// Option 注册表选项
type Option func(*Registry)

// WithLogger 设置日志
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithFactories 设置工厂注册表，默认使用全局工厂注册表
func WithFactories(factories *FactoryRegistry) Option {
	return func(r *Registry) {
		if factories != nil {
			r.factories = factories
		}
	}
}

// NewRegistry 创建新的生成器注册表
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		generators:    make(map[string]core.Generator),
		nodes:         make(map[nodeKey]string),
		factories:     GetFactoryRegistry(),
		maxGenerators: defaultMaxGenerators,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var (
	// globalRegistry 全局生成器注册表实例（单例）
	globalRegistry *Registry
	registryOnce   sync.Once
)

// GetRegistry 获取全局生成器注册表
func GetRegistry() *Registry {
	registryOnce.Do(func() {
		globalRegistry = NewRegistry()
	})
	return globalRegistry
}

// Create 创建并注册一个新的生成器
func (r *Registry) Create(key string, generatorType core.GeneratorType, config any) (core.Generator, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if !generatorType.IsValid() {
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidGeneratorType, generatorType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.generators[key]; exists {
		return nil, fmt.Errorf("%w: key '%s'", core.ErrGeneratorAlreadyExists, key)
	}
	return r.createLocked(key, generatorType, config)
}

// GetOrCreate 获取生成器，如果不存在则创建
func (r *Registry) GetOrCreate(key string, generatorType core.GeneratorType, config any) (core.Generator, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if !generatorType.IsValid() {
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidGeneratorType, generatorType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if generator, exists := r.generators[key]; exists {
		return generator, nil
	}
	return r.createLocked(key, generatorType, config)
}

// createLocked 创建生成器并登记节点，调用方需持有写锁
func (r *Registry) createLocked(key string, generatorType core.GeneratorType, config any) (core.Generator, error) {
	if len(r.generators) >= r.maxGenerators {
		return nil, fmt.Errorf("%w: current %d, max %d",
			core.ErrMaxGeneratorsReached, len(r.generators), r.maxGenerators)
	}

	// 能从配置读出节点时先检查占用，避免创建注定被丢弃的生成器
	if node, ok := configNode(config); ok {
		if err := r.checkNodeLocked(key, node); err != nil {
			return nil, err
		}
	}

	factory, err := r.factories.Get(generatorType)
	if err != nil {
		return nil, err
	}

	generator, err := factory.Create(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	node := nodeKey{regionID: generator.GetRegionID(), workerID: generator.GetWorkerID()}
	if err := r.checkNodeLocked(key, node); err != nil {
		return nil, err
	}

	r.generators[key] = generator
	r.nodes[node] = key

	r.log().Info("生成器创建成功",
		zap.String("key", key),
		zap.String("type", generatorType.String()),
		zap.Int64("region_id", node.regionID),
		zap.Int64("worker_id", node.workerID))

	return generator, nil
}

// checkNodeLocked 检查节点是否已被其他key占用，调用方需持有锁
func (r *Registry) checkNodeLocked(key string, node nodeKey) error {
	owner, taken := r.nodes[node]
	if !taken {
		return nil
	}
	r.log().Warn("节点已被占用，拒绝创建生成器",
		zap.String("key", key),
		zap.String("owner", owner),
		zap.Int64("region_id", node.regionID),
		zap.Int64("worker_id", node.workerID))
	return fmt.Errorf("%w: region %d worker %d already used by key '%s'",
		core.ErrDuplicateNode, node.regionID, node.workerID, owner)
}

// configNode 从已知的配置类型中读取节点
func configNode(config any) (nodeKey, bool) {
	switch cfg := config.(type) {
	case *snowflake.Config:
		if cfg == nil {
			return nodeKey{}, false
		}
		return nodeKey{regionID: cfg.RegionID, workerID: cfg.WorkerID}, true
	case snowflake.Config:
		return nodeKey{regionID: cfg.RegionID, workerID: cfg.WorkerID}, true
	default:
		return nodeKey{}, false
	}
}

// Get 获取已注册的生成器
func (r *Registry) Get(key string) (core.Generator, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	generator, exists := r.generators[key]
	if !exists {
		return nil, fmt.Errorf("%w: key '%s'", core.ErrGeneratorNotFound, key)
	}
	return generator, nil
}

// Has 检查生成器是否存在
func (r *Registry) Has(key string) bool {
	if err := validateKey(key); err != nil {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.generators[key]
	return exists
}

// Remove 移除生成器，释放其占用的节点
func (r *Registry) Remove(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	generator, exists := r.generators[key]
	if !exists {
		return fmt.Errorf("%w: key '%s'", core.ErrGeneratorNotFound, key)
	}

	delete(r.generators, key)
	delete(r.nodes, nodeKey{regionID: generator.GetRegionID(), workerID: generator.GetWorkerID()})

	r.log().Info("生成器已移除", zap.String("key", key))
	return nil
}

// Clear 清空所有生成器
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.generators = make(map[string]core.Generator)
	r.nodes = make(map[nodeKey]string)

	r.log().Info("注册表已清空")
}

// Count 获取生成器数量
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.generators)
}

// Keys 列出所有生成器的键（按字典序）
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.generators))
	for key := range r.generators {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// SetMaxGenerators 设置最大生成器数量
func (r *Registry) SetMaxGenerators(max int) error {
	if max <= 0 {
		return fmt.Errorf("%w: max generators must be positive, got %d", core.ErrInvalidConfig, max)
	}
	if max > absoluteMaxGenerators {
		return fmt.Errorf("%w: max generators cannot exceed absolute limit %d, got %d",
			core.ErrInvalidConfig, absoluteMaxGenerators, max)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.generators) > max {
		return fmt.Errorf("%w: current generator count %d exceeds new max %d",
			core.ErrInvalidConfig, len(r.generators), max)
	}

	r.maxGenerators = max
	r.log().Info("注册表容量已调整", zap.Int("new_max", max), zap.Int("current_count", len(r.generators)))
	return nil
}

// GetMaxGenerators 获取最大生成器数量
func (r *Registry) GetMaxGenerators() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.maxGenerators
}

func (r *Registry) log() *zap.Logger {
	if r.logger != nil {
		return r.logger
	}
	return zap.L()
}

// validateKey 验证键的有效性
func validateKey(key string) error {
	if len(key) == 0 {
		return fmt.Errorf("%w: key cannot be empty", core.ErrInvalidKey)
	}
	if len(key) > maxKeyLength {
		return fmt.Errorf("%w: key too long (max %d), got %d",
			core.ErrInvalidKey, maxKeyLength, len(key))
	}
	if !keyFormatRegex.MatchString(key) {
		return fmt.Errorf("%w: key '%s' contains invalid characters", core.ErrInvalidKey, key)
	}
	return nil
}
