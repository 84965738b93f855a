package snowflake

import "time"

// Clock 时间源
// 返回自 Unix 纪元起的毫秒数（不是ID的Epoch，Epoch只在编码时扣除）
type Clock interface {
	NowMillis() int64
}

// ClockFunc 函数适配为Clock
type ClockFunc func() int64

// NowMillis 实现Clock接口
func (f ClockFunc) NowMillis() int64 {
	return f()
}

// SystemClock 系统时钟
type SystemClock struct{}

// NowMillis 实现Clock接口
func (SystemClock) NowMillis() int64 {
	return time.Now().UnixMilli()
}
