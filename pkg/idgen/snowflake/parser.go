package snowflake

import (
	"fmt"
	"time"

	"katydid-common-idgen/pkg/idgen/core"
)

// Parser Snowflake ID解析器
type Parser struct {
	validator core.IDValidator // 解析前先验证ID
}

// NewParser 创建使用系统时钟验证的解析器
func NewParser() *Parser {
	return NewParserWithClock(SystemClock{})
}

// NewParserWithClock 创建使用指定时钟验证的解析器
func NewParserWithClock(clock Clock) *Parser {
	return &Parser{
		validator: NewValidatorWithClock(clock),
	}
}

// Parse 解析Snowflake ID，提取完整的元信息
func (p *Parser) Parse(id uint64) (*core.IDInfo, error) {
	if err := p.validator.Validate(id); err != nil {
		return nil, fmt.Errorf("parse snowflake id: %w", err)
	}

	info := Decompose(id)
	return &info, nil
}

// Decompose 按固定位布局拆解ID，不做有效性校验
func Decompose(id uint64) core.IDInfo {
	timestamp := ExtractTimestamp(id)
	return core.IDInfo{
		ID:        id,
		Timestamp: timestamp,
		Time:      ExtractTime(id),
		RegionID:  ExtractRegionID(id),
		WorkerID:  ExtractWorkerID(id),
		Sequence:  ExtractSequence(id),
	}
}

// Compose 按固定位布局组装ID
// 说明：timestamp 为 Unix 毫秒；各字段按位宽截断，调用方负责保证取值合法
func Compose(timestamp, regionID, workerID, sequence int64) uint64 {
	return uint64(timestamp-Epoch)&MaxTimestamp<<TimestampShift |
		uint64(regionID&MaxRegionID)<<RegionIDShift |
		uint64(workerID&MaxWorkerID)<<WorkerIDShift |
		uint64(sequence&SequenceMask)
}

// ExtractTimestamp 提取时间戳（Unix毫秒）
func ExtractTimestamp(id uint64) int64 {
	return int64(id>>TimestampShift) + Epoch
}

// ExtractTime 提取时间戳并转换为UTC的time.Time
func ExtractTime(id uint64) time.Time {
	return time.UnixMilli(ExtractTimestamp(id)).UTC()
}

// ExtractRegionID 提取区域ID（右移20位，取低3位）
func ExtractRegionID(id uint64) int64 {
	return int64(id>>RegionIDShift) & MaxRegionID
}

// ExtractWorkerID 提取工作机器ID（右移10位，取低10位）
func ExtractWorkerID(id uint64) int64 {
	return int64(id>>WorkerIDShift) & MaxWorkerID
}

// ExtractSequence 提取序列号（取低10位）
func ExtractSequence(id uint64) int64 {
	return int64(id) & SequenceMask
}
