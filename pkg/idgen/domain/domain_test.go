package domain_test

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"katydid-common-idgen/pkg/idgen/core"
	"katydid-common-idgen/pkg/idgen/domain"
	"katydid-common-idgen/pkg/idgen/snowflake"
)

// sampleID 构造一个当前时间附近的合法ID
func sampleID(region, worker, seq int64) domain.ID {
	return domain.NewID(snowflake.Compose(time.Now().UnixMilli(), region, worker, seq))
}

// TestParseID 测试从字符串解析ID
func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    domain.ID
		wantErr bool
	}{
		{"十进制_正常", "123456789", 123456789, false},
		{"十进制_最大值", "18446744073709551615", domain.ID(^uint64(0)), false},
		{"十进制_前后空格", "  42  ", 42, false},
		{"十六进制_小写", "0xff", 255, false},
		{"十六进制_大写前缀", "0XFF", 255, false},
		{"二进制", "0b1010", 10, false},
		{"空字符串", "", 0, true},
		{"负数", "-1", 0, true},
		{"溢出", "18446744073709551616", 0, true},
		{"非数字", "abc", 0, true},
		{"超长字符串", strings.Repeat("1", 101), 0, true},
		{"十六进制_无数字", "0x", 0, true},
		{"二进制_无数字", "0b", 0, true},
		{"二进制_非法字符", "0b102", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseID(%q) = %d, 期望 %d", tt.input, got, tt.want)
			}
		})
	}
}

// TestIDFormat 测试字符串格式化
func TestIDFormat(t *testing.T) {
	id := domain.NewID(255)

	if id.String() != "255" {
		t.Errorf("String() = %s, 期望 255", id.String())
	}
	if id.Hex() != "0xff" {
		t.Errorf("Hex() = %s, 期望 0xff", id.Hex())
	}
	if id.Binary() != "0b11111111" {
		t.Errorf("Binary() = %s, 期望 0b11111111", id.Binary())
	}

	// 各格式应能被 ParseID 还原
	for _, s := range []string{id.String(), id.Hex(), id.Binary()} {
		parsed, err := domain.ParseID(s)
		if err != nil || parsed != id {
			t.Errorf("ParseID(%q) = %d, %v; 期望 %d", s, parsed, err, id)
		}
	}
}

// TestIDJSON 测试JSON序列化
func TestIDJSON(t *testing.T) {
	type payload struct {
		ID domain.ID `json:"id"`
	}

	// 超出 JavaScript 安全整数的值也以字符串输出
	big := domain.ID(1<<63 + 5)
	data, err := json.Marshal(payload{ID: big})
	if err != nil {
		t.Fatalf("Marshal 失败: %v", err)
	}
	want := `{"id":"9223372036854775813"}`
	if string(data) != want {
		t.Errorf("Marshal = %s, 期望 %s", data, want)
	}

	tests := []struct {
		name    string
		input   string
		want    domain.ID
		wantErr bool
	}{
		{"字符串", `{"id":"9223372036854775813"}`, big, false},
		{"数字", `{"id":12345}`, 12345, false},
		{"非法字符串", `{"id":"abc"}`, 0, true},
		{"负数", `{"id":-1}`, 0, true},
		{"布尔", `{"id":true}`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			err := json.Unmarshal([]byte(tt.input), &p)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && p.ID != tt.want {
				t.Errorf("Unmarshal(%s) = %d, 期望 %d", tt.input, p.ID, tt.want)
			}
		})
	}
}

// TestIDSQL 测试数据库读写
func TestIDSQL(t *testing.T) {
	// 最高位为1的ID按位存为负的 int64，读回后不变
	id := domain.ID(1<<63 | 42)
	v, err := id.Value()
	if err != nil {
		t.Fatalf("Value 失败: %v", err)
	}
	stored, ok := v.(int64)
	if !ok {
		t.Fatalf("Value 类型 = %T, 期望 int64", v)
	}
	if stored >= 0 {
		t.Errorf("存储值 = %d, 期望为负数", stored)
	}

	var back domain.ID
	if err := back.Scan(stored); err != nil {
		t.Fatalf("Scan 失败: %v", err)
	}
	if back != id {
		t.Errorf("Scan = %d, 期望 %d", back, id)
	}

	scanTests := []struct {
		name    string
		value   any
		want    domain.ID
		wantErr bool
	}{
		{"nil", nil, 0, false},
		{"字节", []byte("100"), 100, false},
		{"字符串", "0x10", 16, false},
		{"uint64", uint64(7), 7, false},
		{"非法字节", []byte("x"), 0, true},
		{"不支持的类型", 1.5, 0, true},
	}
	for _, tt := range scanTests {
		t.Run(tt.name, func(t *testing.T) {
			var got domain.ID
			err := got.Scan(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Scan(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Scan(%v) = %d, 期望 %d", tt.value, got, tt.want)
			}
		})
	}
}

// TestIDFields 测试字段提取
func TestIDFields(t *testing.T) {
	id := sampleID(6, 900, 77)

	if id.RegionID() != 6 {
		t.Errorf("RegionID() = %d, 期望 6", id.RegionID())
	}
	if id.WorkerID() != 900 {
		t.Errorf("WorkerID() = %d, 期望 900", id.WorkerID())
	}
	if id.Sequence() != 77 {
		t.Errorf("Sequence() = %d, 期望 77", id.Sequence())
	}
	if d := time.Since(id.Time()); d < 0 || d > time.Minute {
		t.Errorf("Time() = %v, 与当前时间相差过大", id.Time())
	}
	if !domain.ID(0).Time().IsZero() {
		t.Error("零值ID的 Time() 应为零值时间")
	}

	info, err := id.Info()
	if err != nil {
		t.Fatalf("Info 失败: %v", err)
	}
	if info.ID != id.Uint64() || info.RegionID != 6 || info.WorkerID != 900 || info.Sequence != 77 {
		t.Errorf("Info() = %+v, 与ID字段不一致", info)
	}
}

// TestIDValidate 测试ID验证
func TestIDValidate(t *testing.T) {
	if err := sampleID(1, 1, 1).Validate(); err != nil {
		t.Errorf("合法ID验证失败: %v", err)
	}

	if err := domain.ID(0).Validate(); !errors.Is(err, core.ErrInvalidSnowflakeID) {
		t.Errorf("零值ID应返回 ErrInvalidSnowflakeID, got %v", err)
	}

	future := domain.NewID(snowflake.Compose(time.Now().Add(time.Hour).UnixMilli(), 0, 0, 1))
	if err := future.Validate(); !errors.Is(err, core.ErrInvalidSnowflakeID) {
		t.Errorf("未来时间的ID应返回 ErrInvalidSnowflakeID, got %v", err)
	}
	if _, err := future.Info(); err == nil {
		t.Error("未来时间的ID Info() 应返回错误")
	}
}

// TestIDSafeForJavaScript 测试JavaScript安全范围判断
func TestIDSafeForJavaScript(t *testing.T) {
	if !domain.ID(9007199254740991).IsSafeForJavaScript() {
		t.Error("2^53-1 应在安全范围内")
	}
	if domain.ID(9007199254740992).IsSafeForJavaScript() {
		t.Error("2^53 不应在安全范围内")
	}
}

// TestIDSlice 测试ID切片
func TestIDSlice(t *testing.T) {
	ids := domain.NewIDSlice(30, 10, 20, 10)

	if ids.Len() != 4 {
		t.Fatalf("Len() = %d, 期望 4", ids.Len())
	}
	if !ids.Contains(20) || ids.Contains(99) {
		t.Error("Contains 结果错误")
	}

	dedup := ids.Deduplicate()
	want := []uint64{30, 10, 20}
	if got := dedup.Uint64Slice(); !equalUint64s(got, want) {
		t.Errorf("Deduplicate() = %v, 期望 %v", got, want)
	}

	dedup.Sort()
	if !sort.IsSorted(dedup) {
		t.Error("Sort() 后应为升序")
	}
	if got := strings.Join(dedup.StringSlice(), ","); got != "10,20,30" {
		t.Errorf("StringSlice() = %s, 期望 10,20,30", got)
	}

	// 原切片不受 Deduplicate 影响
	if ids.Len() != 4 || ids[0] != 30 {
		t.Error("Deduplicate 不应修改原切片")
	}
}

// TestIDSliceValidateAll 测试批量验证
func TestIDSliceValidateAll(t *testing.T) {
	valid := domain.IDSlice{sampleID(0, 1, 1), sampleID(0, 1, 2)}
	if err := valid.ValidateAll(); err != nil {
		t.Errorf("合法切片验证失败: %v", err)
	}

	invalid := domain.IDSlice{sampleID(0, 1, 1), 0}
	err := invalid.ValidateAll()
	if !errors.Is(err, core.ErrInvalidSnowflakeID) {
		t.Fatalf("应返回 ErrInvalidSnowflakeID, got %v", err)
	}
	if !strings.Contains(err.Error(), "index 1") {
		t.Errorf("错误信息应包含下标, got %v", err)
	}
}

func equalUint64s(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
