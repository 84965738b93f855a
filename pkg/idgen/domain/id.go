package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"katydid-common-idgen/pkg/idgen/core"
	"katydid-common-idgen/pkg/idgen/snowflake"
)

const (
	// maxSafeInteger JavaScript最大安全整数 (2^53 - 1)
	// 说明：超过此值的整数在JavaScript中会丢失精度，因此JSON中统一使用字符串
	maxSafeInteger = 9007199254740991

	// maxParseIDStringLength 解析ID字符串的最大长度
	// 说明：66个字符足以表示带0b前缀的64位二进制
	maxParseIDStringLength = 100
)

// ID Snowflake ID（41位时间戳 | 3位区域 | 10位机器 | 10位序列号）
type ID uint64

// NewID 创建新的ID
func NewID(val uint64) ID {
	return ID(val)
}

// ParseID 从字符串解析ID
// 说明：支持多种进制格式（十进制、十六进制0x、二进制0b）
func ParseID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return 0, fmt.Errorf("ID string cannot be empty")
	}

	// 防止超长字符串导致的资源消耗
	if len(s) > maxParseIDStringLength {
		return 0, fmt.Errorf("ID string too long: max %d characters, got %d",
			maxParseIDStringLength, len(s))
	}

	var val uint64
	var err error

	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		if len(s) <= 2 {
			return 0, fmt.Errorf("invalid hexadecimal format: missing digits after 0x")
		}
		val, err = strconv.ParseUint(s[2:], 16, 64)
	case strings.HasPrefix(s, "0b") || strings.HasPrefix(s, "0B"):
		if len(s) <= 2 {
			return 0, fmt.Errorf("invalid binary format: missing digits after 0b")
		}
		val, err = strconv.ParseUint(s[2:], 2, 64)
	default:
		val, err = strconv.ParseUint(s, 10, 64)
	}

	if err != nil {
		return 0, fmt.Errorf("failed to parse ID: %w", err)
	}

	return ID(val), nil
}

// Uint64 转换为uint64类型
func (id ID) Uint64() uint64 {
	return uint64(id)
}

// String 转换为十进制字符串
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Hex 转换为十六进制字符串（带0x前缀）
func (id ID) Hex() string {
	return fmt.Sprintf("0x%x", uint64(id))
}

// Binary 转换为二进制字符串（带0b前缀）
func (id ID) Binary() string {
	return fmt.Sprintf("0b%b", uint64(id))
}

// MarshalJSON 序列化为字符串，避免JavaScript精度丢失
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

// UnmarshalJSON 支持从字符串或数字反序列化
func (id *ID) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty JSON data")
	}
	if len(data) > maxParseIDStringLength {
		return fmt.Errorf("JSON data too large: max %d bytes, got %d",
			maxParseIDStringLength, len(data))
	}

	// 优先按字符串解析
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		val, err := strconv.ParseUint(str, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID string format: %w", err)
		}
		*id = ID(val)
		return nil
	}

	var num uint64
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("invalid ID format: expected string or number, got %s", string(data))
	}
	*id = ID(num)
	return nil
}

// Value 实现 driver.Valuer
// 说明：数据库列为有符号 BIGINT，按位转换为int64存储，Scan时再按位还原
func (id ID) Value() (driver.Value, error) {
	return int64(id), nil
}

// Scan 实现 sql.Scanner
func (id *ID) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*id = 0
	case int64:
		*id = ID(uint64(v))
	case uint64:
		*id = ID(v)
	case []byte:
		parsed, err := ParseID(string(v))
		if err != nil {
			return err
		}
		*id = parsed
	case string:
		parsed, err := ParseID(v)
		if err != nil {
			return err
		}
		*id = parsed
	default:
		return fmt.Errorf("cannot scan %T into domain.ID", value)
	}
	return nil
}

// IsZero 检查ID是否为零值
func (id ID) IsZero() bool {
	return id == 0
}

// IsSafeForJavaScript 检查ID是否在JavaScript安全整数范围内
func (id ID) IsSafeForJavaScript() bool {
	return uint64(id) <= maxSafeInteger
}

// Validate 验证ID的有效性
func (id ID) Validate() error {
	return snowflake.ValidateID(uint64(id))
}

// Info 解析ID，提取元信息（会先验证）
func (id ID) Info() (*core.IDInfo, error) {
	return snowflake.NewParser().Parse(uint64(id))
}

// Time 提取生成时间
func (id ID) Time() time.Time {
	if id.IsZero() {
		return time.Time{}
	}
	return snowflake.ExtractTime(uint64(id))
}

// RegionID 提取区域ID
func (id ID) RegionID() int64 {
	return snowflake.ExtractRegionID(uint64(id))
}

// WorkerID 提取工作机器ID
func (id ID) WorkerID() int64 {
	return snowflake.ExtractWorkerID(uint64(id))
}

// Sequence 提取序列号
func (id ID) Sequence() int64 {
	return snowflake.ExtractSequence(uint64(id))
}
