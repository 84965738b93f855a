package snowflake

import (
	"errors"
	"sync/atomic"
	"time"

	"katydid-common-idgen/pkg/idgen/core"
)

// Metrics 生成器运行指标，所有方法对 nil 接收者安全（未启用监控时为 nil）
type Metrics struct {
	issued        atomic.Uint64 // 已生成ID数
	clockBackward atomic.Uint64 // 时钟回拨拒绝次数（含等待期间发现的回拨）

	// 序列号耗尽后的等待
	overflows   atomic.Uint64 // 耗尽次数，每次耗尽对应一次等待
	waitAborted atomic.Uint64 // 等待因 ctx 或回拨中止的次数
	spinRounds  atomic.Uint64 // 等待期间读时钟的总轮数
	totalWaitNs atomic.Uint64
	maxWaitNs   atomic.Uint64
}

// NewMetrics 创建监控指标
func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) observeIssued() {
	if m != nil {
		m.issued.Add(1)
	}
}

func (m *Metrics) observeClockBackward() {
	if m != nil {
		m.clockBackward.Add(1)
	}
}

// observeSpin 记录一次序列号耗尽后的等待
func (m *Metrics) observeSpin(wait time.Duration, rounds int, err error) {
	if m == nil {
		return
	}
	m.overflows.Add(1)
	m.spinRounds.Add(uint64(rounds))

	ns := uint64(wait.Nanoseconds())
	m.totalWaitNs.Add(ns)
	for {
		cur := m.maxWaitNs.Load()
		if ns <= cur || m.maxWaitNs.CompareAndSwap(cur, ns) {
			break
		}
	}

	if err != nil {
		m.waitAborted.Add(1)
		var backward *core.ClockBackwardError
		if errors.As(err, &backward) {
			m.clockBackward.Add(1)
		}
	}
}

// IDCount 已生成ID数
func (m *Metrics) IDCount() uint64 {
	if m == nil {
		return 0
	}
	return m.issued.Load()
}

// Reset 重置所有指标
func (m *Metrics) Reset() {
	if m == nil {
		return
	}
	m.issued.Store(0)
	m.clockBackward.Store(0)
	m.overflows.Store(0)
	m.waitAborted.Store(0)
	m.spinRounds.Store(0)
	m.totalWaitNs.Store(0)
	m.maxWaitNs.Store(0)
}

// ToMap 导出为map，avg_wait_time_ns 按耗尽次数平均
func (m *Metrics) ToMap() map[string]uint64 {
	if m == nil {
		return map[string]uint64{"metrics_enabled": 0}
	}

	overflows := m.overflows.Load()
	var avgWait uint64
	if overflows > 0 {
		avgWait = m.totalWaitNs.Load() / overflows
	}

	return map[string]uint64{
		"metrics_enabled":   1,
		"id_count":          m.issued.Load(),
		"clock_backward":    m.clockBackward.Load(),
		"sequence_overflow": overflows,
		"wait_aborted":      m.waitAborted.Load(),
		"spin_rounds":       m.spinRounds.Load(),
		"avg_wait_time_ns":  avgWait,
		"max_wait_time_ns":  m.maxWaitNs.Load(),
	}
}
