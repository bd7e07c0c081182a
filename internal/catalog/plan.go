package catalog

import (
	"encoding/json"

	"skillup_backend/internal/model"
)

// PlanList 用户保存的课程（My Plan），按标题唯一，保持添加顺序
type PlanList struct {
	items []model.Course
}

func NewPlanList(courses ...model.Course) *PlanList {
	p := &PlanList{}
	for _, c := range courses {
		p.Add(c)
	}
	return p
}

func (p *PlanList) indexOf(title string) int {
	for i, c := range p.items {
		if c.Title == title {
			return i
		}
	}
	return -1
}

// Add 追加课程，返回 true 表示是新加入的；已存在时不做任何修改
func (p *PlanList) Add(c model.Course) bool {
	if p.indexOf(c.Title) >= 0 {
		return false
	}
	p.items = append(p.items, c)
	return true
}

// Remove 按标题删除，不存在时返回 false
func (p *PlanList) Remove(c model.Course) bool {
	return p.RemoveTitle(c.Title)
}

func (p *PlanList) RemoveTitle(title string) bool {
	i := p.indexOf(title)
	if i < 0 {
		return false
	}
	p.items = append(p.items[:i], p.items[i+1:]...)
	return true
}

func (p *PlanList) Contains(title string) bool {
	return p.indexOf(title) >= 0
}

func (p *PlanList) Len() int {
	return len(p.items)
}

// Items 返回副本
func (p *PlanList) Items() []model.Course {
	out := make([]model.Course, len(p.items))
	copy(out, p.items)
	return out
}

func (p *PlanList) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Items())
}

// UnmarshalJSON 读入时同样去重
func (p *PlanList) UnmarshalJSON(data []byte) error {
	var courses []model.Course
	if err := json.Unmarshal(data, &courses); err != nil {
		return err
	}
	p.items = nil
	for _, c := range courses {
		p.Add(c)
	}
	return nil
}
