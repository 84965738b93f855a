package snowflake

import "time"

const (
	// Epoch 起始时间戳 (2010-11-04 01:42:54.657 UTC)
	// 一经发布不可修改，解析ID时依赖该值
	Epoch int64 = 1288834974657 // 毫秒时间戳

	// 位数分配（高位 -> 低位：时间戳41 | 区域3 | 机器10 | 序列号10）
	TimestampBits = 41 // 时间戳位数
	RegionIDBits  = 3  // 区域ID位数
	WorkerIDBits  = 10 // 工作机器ID位数
	SequenceBits  = 10 // 序列号位数

	// 最大值计算(切记不是个数)
	MaxRegionID  = -1 ^ (-1 << RegionIDBits)  // 7 (2^3 - 1) [0, 7]
	MaxWorkerID  = -1 ^ (-1 << WorkerIDBits)  // 1023 (2^10 - 1) [0, 1023]
	SequenceMask = -1 ^ (-1 << SequenceBits)  // 1023 (2^10 - 1) [0, 1023]
	MaxTimestamp = -1 ^ (-1 << TimestampBits) // 2^41 - 1

	// 位移量
	WorkerIDShift  = SequenceBits                               // 10
	RegionIDShift  = SequenceBits + WorkerIDBits                // 20
	TimestampShift = SequenceBits + WorkerIDBits + RegionIDBits // 23

	// 新毫秒的序列号起始值取 [SequenceSeedMin, SequenceSeedMax] 内的随机数，降低低位可预测性
	SequenceSeedMin = 1
	SequenceSeedMax = 10

	// 批量生成最大数量（支持跨毫秒生成）
	maxBatchSize = 100_000

	// 允许的未来时间容差（毫秒）
	maxFutureTimeTolerance = 60 * 1000 // 1分钟

	// SpinInterval 的上限，等待下一毫秒时单次休眠不应超过1毫秒
	maxSpinInterval = time.Millisecond
)
