package domain

import (
	"fmt"
	"sort"
)

// IDSlice ID切片类型
// 同一节点生成的ID按数值排序即按生成时间排序
type IDSlice []ID

// NewIDSlice 从 uint64 切片创建
func NewIDSlice(vals ...uint64) IDSlice {
	result := make(IDSlice, len(vals))
	for i, v := range vals {
		result[i] = ID(v)
	}
	return result
}

// Len 实现 sort.Interface
func (ids IDSlice) Len() int { return len(ids) }

// Less 实现 sort.Interface
func (ids IDSlice) Less(i, j int) bool { return ids[i] < ids[j] }

// Swap 实现 sort.Interface
func (ids IDSlice) Swap(i, j int) { ids[i], ids[j] = ids[j], ids[i] }

// Sort 原地升序排序
func (ids IDSlice) Sort() {
	sort.Sort(ids)
}

// Uint64Slice 转换为uint64切片
func (ids IDSlice) Uint64Slice() []uint64 {
	result := make([]uint64, len(ids))
	for i, id := range ids {
		result[i] = uint64(id)
	}
	return result
}

// StringSlice 转换为字符串切片
func (ids IDSlice) StringSlice() []string {
	result := make([]string, len(ids))
	for i, id := range ids {
		result[i] = id.String()
	}
	return result
}

// Contains 检查是否包含指定ID
func (ids IDSlice) Contains(id ID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Deduplicate 去重，保持首次出现的顺序
func (ids IDSlice) Deduplicate() IDSlice {
	seen := make(map[ID]struct{}, len(ids))
	result := make(IDSlice, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

// ValidateAll 验证所有ID
func (ids IDSlice) ValidateAll() error {
	for i, id := range ids {
		if err := id.Validate(); err != nil {
			return fmt.Errorf("invalid ID at index %d: %w", i, err)
		}
	}
	return nil
}
