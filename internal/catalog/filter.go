// Package catalog 课程目录：搜索筛选、联想建议与学习计划
package catalog

import (
	"strings"

	"skillup_backend/internal/model"
)

// MaxSuggestions 搜索联想最多返回的条数
const MaxSuggestions = 5

// matchesText 标题或分类包含关键字（忽略大小写），keyword 需已 trim 并转小写
func matchesText(c model.Course, keyword string) bool {
	if keyword == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Title), keyword) ||
		strings.Contains(strings.ToLower(c.Category), keyword)
}

func matchesCategory(c model.Course, category string) bool {
	return category == model.CategoryAll || c.Category == category
}

func normalize(searchText string) string {
	return strings.ToLower(strings.TrimSpace(searchText))
}

// Matches 判断课程是否出现在筛选结果中
func Matches(c model.Course, searchText, category string) bool {
	return matchesCategory(c, category) && matchesText(c, normalize(searchText))
}

// Filter 按分类和关键字筛选课程，保持原有顺序，不修改入参
func Filter(courses []model.Course, searchText, category string) []model.Course {
	keyword := normalize(searchText)
	out := make([]model.Course, 0, len(courses))
	for _, c := range courses {
		if matchesCategory(c, category) && matchesText(c, keyword) {
			out = append(out, c)
		}
	}
	return out
}

// Suggest 搜索框下方的联想：忽略分类，按标题去重，最多 MaxSuggestions 条
func Suggest(courses []model.Course, searchText string) []model.Course {
	keyword := normalize(searchText)
	out := make([]model.Course, 0, MaxSuggestions)
	if keyword == "" {
		return out
	}

	seen := make(map[string]struct{}, len(courses))
	for _, c := range courses {
		if len(out) == MaxSuggestions {
			break
		}
		if _, dup := seen[c.Title]; dup {
			continue
		}
		seen[c.Title] = struct{}{}
		if matchesText(c, keyword) {
			out = append(out, c)
		}
	}
	return out
}
