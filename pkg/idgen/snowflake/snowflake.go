package snowflake

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"katydid-common-idgen/pkg/idgen/core"
)

var _ core.Generator = (*Generator)(nil)

// Generator Snowflake算法的ID生成器实现
// 每个实例独占自己的 lastTimestamp/sequence，同一进程内多个实例互不影响
type Generator struct {
	// ========== 核心状态 ==========
	lastTimestamp int64 // 上次生成ID的时间戳（Unix毫秒），-1 表示尚未生成
	regionID      int64 // 区域ID（0-7）
	workerID      int64 // 工作机器ID（0-1023）
	sequence      int64 // 当前毫秒内的序列号（0-1023）

	// ========== 配置和依赖 ==========
	config *Config
	clock  Clock
	seed   func() int64 // 新毫秒的序列号起始值

	// ========== 性能优化 ==========
	precomputedPart uint64 // 预计算的 region/worker 部分

	// ========== 监控和工具 ==========
	metrics   *Metrics // 性能监控指标（可选，nil时不收集）
	logger    *zap.Logger
	validator core.IDValidator
	parser    core.IDParser

	// ========== 并发控制 ==========
	mu sync.Mutex // 保护 lastTimestamp/sequence 及读时钟到组装ID的整个过程
}

// New 创建一个新的Snowflake ID生成器
// 说明：workerID 取值 [0, 1023]，regionID 取值 [0, 7]，越界返回 *core.ConfigurationError
func New(workerID, regionID int64) (*Generator, error) {
	return NewWithConfig(&Config{
		WorkerID: workerID,
		RegionID: regionID,
	})
}

// NewWithConfig 使用配置创建Snowflake ID生成器
func NewWithConfig(config *Config) (*Generator, error) {
	if config == nil {
		return nil, core.ErrNilConfig
	}

	// 步骤1：验证配置（越界直接失败，不做截断）
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// 步骤2：复制配置并设置默认值，调用方后续修改不影响生成器
	cfg := config.Clone()
	cfg.SetDefaults()

	// 步骤3：预先计算 region/worker 部分
	precomputedPart := uint64(cfg.RegionID)<<RegionIDShift | uint64(cfg.WorkerID)<<WorkerIDShift

	var metrics *Metrics
	if cfg.EnableMetrics {
		metrics = NewMetrics()
	}

	seed := cfg.SeedFunc
	if seed == nil {
		seed = newSequenceSeed()
	}

	generator := &Generator{
		lastTimestamp:   -1,
		regionID:        cfg.RegionID,
		workerID:        cfg.WorkerID,
		sequence:        0,
		config:          cfg,
		clock:           cfg.Clock,
		seed:            seed,
		precomputedPart: precomputedPart,
		metrics:         metrics,
		logger:          cfg.Logger,
		validator:       NewValidatorWithClock(cfg.Clock),
		parser:          NewParserWithClock(cfg.Clock),
	}

	generator.logger.Info("Snowflake生成器创建成功",
		zap.Int64("region_id", cfg.RegionID),
		zap.Int64("worker_id", cfg.WorkerID),
		zap.Bool("metrics_enabled", cfg.EnableMetrics))

	return generator, nil
}

// newSequenceSeed 默认的序列号起始值：[SequenceSeedMin, SequenceSeedMax] 内随机
// 返回的函数只在持有生成器锁时调用，rand.Rand 无需额外同步
func newSequenceSeed() func() int64 {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return func() int64 {
		return SequenceSeedMin + r.Int63n(SequenceSeedMax-SequenceSeedMin+1)
	}
}

// Generate 生成下一个唯一ID
// 时钟回拨时返回 *core.ClockBackwardError，不返回ID
func (g *Generator) Generate() (uint64, error) {
	return g.NextID(context.Background())
}

// NextID 生成下一个唯一ID（线程安全）
// ctx 可中断序列号耗尽时对下一毫秒的等待
func (g *Generator) NextID(ctx context.Context) (uint64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.nextIDLocked(ctx)
}

// NextIDBatch 批量生成ID（线程安全）
// 出错时返回已生成的ID和错误
func (g *Generator) NextIDBatch(ctx context.Context, n int) ([]uint64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: batch size must be positive, got %d",
			core.ErrInvalidBatchSize, n)
	}
	if n > maxBatchSize {
		return nil, fmt.Errorf("%w: batch size too large (max %d), got %d",
			core.ErrInvalidBatchSize, maxBatchSize, n)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	ids := make([]uint64, 0, n)
	for len(ids) < n {
		id, err := g.nextIDLocked(ctx)
		if err != nil {
			return ids, fmt.Errorf("%w (generated %d/%d IDs)", err, len(ids), n)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// GetWorkerID 获取工作机器ID
func (g *Generator) GetWorkerID() int64 {
	return g.workerID
}

// GetRegionID 获取区域ID
func (g *Generator) GetRegionID() int64 {
	return g.regionID
}

// GetMetrics 获取性能监控指标
func (g *Generator) GetMetrics() map[string]uint64 {
	return g.metrics.ToMap()
}

// ResetMetrics 重置性能监控指标
func (g *Generator) ResetMetrics() {
	g.metrics.Reset()
}

// GetIDCount 获取已生成的ID总数
func (g *Generator) GetIDCount() uint64 {
	return g.metrics.IDCount()
}

// ParseID 解析ID
func (g *Generator) ParseID(id uint64) (*core.IDInfo, error) {
	return g.parser.Parse(id)
}

// ValidateID 验证ID
func (g *Generator) ValidateID(id uint64) error {
	return g.validator.Validate(id)
}

// nextIDLocked 不加锁版本的ID生成方法
// 说明：调用者必须已持有锁；返回错误时 lastTimestamp/sequence 保持调用前的值
func (g *Generator) nextIDLocked(ctx context.Context) (uint64, error) {
	// 步骤1：读取当前时间戳（毫秒）
	timestamp := g.clock.NowMillis()

	// 步骤2：时钟回拨检测，本次调用直接失败
	if timestamp < g.lastTimestamp {
		err := &core.ClockBackwardError{
			Regression: g.lastTimestamp - timestamp,
			Last:       g.lastTimestamp,
			Now:        timestamp,
		}
		g.metrics.observeClockBackward()
		g.logger.Warn("时钟回拨，拒绝生成ID",
			zap.Int64("last_timestamp", g.lastTimestamp),
			zap.Int64("current_timestamp", timestamp),
			zap.Int64("regression_ms", err.Regression))
		return 0, err
	}

	// 步骤3：序列号管理
	prevSequence := g.sequence
	if timestamp == g.lastTimestamp {
		// 同一毫秒内递增，回绕到0说明本毫秒的1024个序列号已用完
		g.sequence = (g.sequence + 1) & SequenceMask
		if g.sequence == 0 {
			next, err := g.waitNextMillis(ctx)
			if err != nil {
				// 保持耗尽状态，后续同毫秒调用会再次进入等待，不会重复使用序列号
				g.sequence = prevSequence
				return 0, err
			}
			timestamp = next
		}
	} else {
		// 新的毫秒，序列号从随机起始值开始
		g.sequence = g.seed() & SequenceMask
	}

	// 步骤4：时间戳范围检查（早于Epoch或超出41位）
	elapsed := timestamp - Epoch
	if elapsed < 0 || elapsed > MaxTimestamp {
		g.sequence = prevSequence
		g.logger.Error("时间戳超出可编码范围",
			zap.Int64("current_timestamp", timestamp),
			zap.Int64("epoch", Epoch))
		return 0, fmt.Errorf("%w: timestamp %d, epoch %d", core.ErrTimestampOverflow, timestamp, Epoch)
	}

	// 步骤5：更新状态并组装ID
	// ID结构：时间戳(41位) | 区域ID(3位) | 工作机器ID(10位) | 序列号(10位)
	g.lastTimestamp = timestamp
	id := uint64(elapsed)<<TimestampShift | g.precomputedPart | uint64(g.sequence)

	g.metrics.observeIssued()

	return id, nil
}

// waitNextMillis 序列号耗尽时等待下一毫秒
// 等待期间发现时钟回拨时返回 *core.ClockBackwardError，不继续等待
func (g *Generator) waitNextMillis(ctx context.Context) (int64, error) {
	startTime := time.Now()
	timestamp, rounds, err := spinWait(ctx, g.clock, g.lastTimestamp, g.config.SpinInterval)
	g.metrics.observeSpin(time.Since(startTime), rounds, err)
	if err != nil {
		g.logger.Warn("等待下一毫秒被中断",
			zap.Int64("last_timestamp", g.lastTimestamp),
			zap.Int("spin_rounds", rounds),
			zap.Error(err))
		return 0, err
	}
	return timestamp, nil
}
