package catalog

import (
	"sync"

	"skillup_backend/internal/model"
)

type filterKey struct {
	version  uint64
	keyword  string
	category string
}

// FilterCache 以 (关键字, 分类) 为键缓存 Filter 的结果，目录版本变化后旧结果自然失效
type FilterCache struct {
	mu      sync.Mutex
	size    int
	entries map[filterKey][]model.Course
	order   []filterKey

	// OnLookup 命中/未命中回调，用于指标统计
	OnLookup func(hit bool)
}

func NewFilterCache(size int) *FilterCache {
	if size <= 0 {
		size = 1
	}
	return &FilterCache{
		size:    size,
		entries: make(map[filterKey][]model.Course, size),
	}
}

// Filter 返回 snapshot 中 section 列表的筛选结果
func (fc *FilterCache) Filter(c *Catalog, section model.CourseSection, searchText, category string) []model.Course {
	key := filterKey{version: c.Version, keyword: string(section) + "\x00" + normalize(searchText), category: category}

	fc.mu.Lock()
	cached, ok := fc.entries[key]
	fc.mu.Unlock()

	if fc.OnLookup != nil {
		fc.OnLookup(ok)
	}
	if ok {
		return clone(cached)
	}

	result := Filter(c.Section(section), searchText, category)

	fc.mu.Lock()
	if _, exists := fc.entries[key]; !exists {
		if len(fc.order) >= fc.size {
			oldest := fc.order[0]
			fc.order = fc.order[1:]
			delete(fc.entries, oldest)
		}
		fc.entries[key] = result
		fc.order = append(fc.order, key)
	}
	fc.mu.Unlock()

	return clone(result)
}

func (fc *FilterCache) Len() int {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return len(fc.entries)
}

func clone(in []model.Course) []model.Course {
	out := make([]model.Course, len(in))
	copy(out, in)
	return out
}
