package model

import (
	"strings"
	"time"
)

const (
	DefaultDisplayName = "Learner"
	DefaultEmail       = "learner@email.com"
)

// Session 登录成功后得到的用户上下文，由中间件放入请求上下文
type Session struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Provider    string    `json:"provider"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Name 返回展示用名称，没有则回落到 Learner
func (s *Session) Name() string {
	if s == nil || strings.TrimSpace(s.DisplayName) == "" {
		return DefaultDisplayName
	}
	return s.DisplayName
}

func (s *Session) EmailOrDefault() string {
	if s == nil || s.Email == "" {
		return DefaultEmail
	}
	return s.Email
}

// Initial 头像上显示的首字母
func (s *Session) Initial() string {
	name := []rune(s.Name())
	return strings.ToUpper(string(name[:1]))
}

// FilterState 首页搜索框与分类选择
type FilterState struct {
	SearchText string `json:"searchText"`
	Category   string `json:"category"`
}

func DefaultFilterState() FilterState {
	return FilterState{Category: CategoryAll}
}
