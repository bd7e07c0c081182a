package model

// Screen 客户端页面
type Screen string

const (
	ScreenSplash       Screen = "splash"
	ScreenSignIn       Screen = "signin"
	ScreenSignUp       Screen = "signup"
	ScreenHome         Screen = "home"
	ScreenCourseDetail Screen = "course_detail"
)

// SplashDurationMillis 启动页展示 2.5s 后淡出 0.5s
const SplashDurationMillis = 3000

// Navigation 告诉客户端下一步跳转到哪个页面
type Navigation struct {
	Screen Screen            `json:"screen"`
	Params map[string]string `json:"params,omitempty"`
	// Finish 为 true 时客户端需要关闭当前页面
	Finish bool `json:"finish"`
}

func NavigateTo(screen Screen, finish bool) *Navigation {
	return &Navigation{Screen: screen, Finish: finish}
}

func CourseDetailNavigation(c Course) *Navigation {
	return &Navigation{
		Screen: ScreenCourseDetail,
		Params: map[string]string{
			"title":       c.Title,
			"category":    c.Category,
			"level":       string(c.Level),
			"duration":    c.Duration,
			"description": c.Description(),
		},
	}
}
