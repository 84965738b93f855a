package core

import "time"

// GeneratorType 生成器类型枚举
type GeneratorType string

const (
	// GeneratorTypeSnowflake Snowflake算法生成器（41位时间戳 | 3位区域 | 10位机器 | 10位序列号）
	GeneratorTypeSnowflake GeneratorType = "snowflake"
)

// String 实现Stringer接口
func (t GeneratorType) String() string {
	return string(t)
}

// IsValid 验证生成器类型是否有效
func (t GeneratorType) IsValid() bool {
	switch t {
	case GeneratorTypeSnowflake:
		return true
	default:
		return false
	}
}

// IDInfo ID解析后的信息
type IDInfo struct {
	ID        uint64    `json:"id,string"` // 原始ID值
	Timestamp int64     `json:"timestamp"` // 时间戳（Unix毫秒）
	Time      time.Time `json:"time"`      // 时间对象（UTC）
	RegionID  int64     `json:"region_id"` // 区域ID（0-7）
	WorkerID  int64     `json:"worker_id"` // 工作机器ID（0-1023）
	Sequence  int64     `json:"sequence"`  // 序列号（0-1023，同一毫秒内的序号）
}
