package snowflake

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"katydid-common-idgen/pkg/idgen/core"
)

// spinWait 等待直到时钟读数严格大于 lastTimestamp，返回新时间戳和读时钟的轮数
// 说明：
//   - 时钟读数小于 lastTimestamp 时立即返回 *core.ClockBackwardError，不等待回拨恢复
//   - 每轮检查 ctx 是否已取消/超时
//   - interval 为0时只让出调度，否则休眠 interval
func spinWait(ctx context.Context, clock Clock, lastTimestamp int64, interval time.Duration) (int64, int, error) {
	for rounds := 1; ; rounds++ {
		timestamp := clock.NowMillis()
		if timestamp > lastTimestamp {
			return timestamp, rounds, nil
		}
		if timestamp < lastTimestamp {
			return 0, rounds, &core.ClockBackwardError{
				Regression: lastTimestamp - timestamp,
				Last:       lastTimestamp,
				Now:        timestamp,
			}
		}

		if err := ctx.Err(); err != nil {
			return 0, rounds, fmt.Errorf("waiting for next millisecond after %d: %w", lastTimestamp, err)
		}

		if interval <= 0 {
			runtime.Gosched()
			continue
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return 0, rounds, fmt.Errorf("waiting for next millisecond after %d: %w", lastTimestamp, ctx.Err())
		case <-timer.C:
		}
	}
}
