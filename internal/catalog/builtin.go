package catalog

import "skillup_backend/internal/model"

// DefaultSeed 内置示例数据，catalog.source 为 builtin 时使用
func DefaultSeed() *Seed {
	s := &Seed{
		Categories: []string{"Programming", "Design", "Marketing", "Business", "AI & Data", "Languages"},
		Achievements: []model.Achievement{
			{Title: "First Course Completed", Description: "You finished your first SkillUp course"},
			{Title: "3-Day Streak", Description: "You’ve learned 3 days in a row"},
			{Title: "Goal Setter", Description: "You set your first weekly goal"},
		},
		Stats: Stats{EnrolledCourses: 6, DailyGoalMinutes: 20, DailyGoalProgress: 0.65},
	}

	s.Courses.Continue = []model.Course{
		model.NewCourse("Kotlin Basics", model.LevelBeginner, "12 mins left", "Programming"),
		model.NewCourse("UI Design Fundamentals", model.LevelIntermediate, "25 mins left", "Design"),
	}
	s.Courses.Popular = []model.Course{
		model.NewCourse("Android Jetpack Compose", model.LevelIntermediate, "4h 20m", "Programming"),
		model.NewCourse("Intro to Machine Learning", model.LevelBeginner, "3h 05m", "AI & Data"),
		model.NewCourse("UX for Mobile Apps", model.LevelBeginner, "2h 15m", "Design"),
	}

	// 示例数据只有一份榜单，三个周期共用
	for _, period := range model.LeaderboardPeriods {
		s.Leaderboard = append(s.Leaderboard,
			model.LeaderboardEntry{Period: period, Rank: 1, Name: "Aarav", Points: 4520, Streak: 15, Level: model.LevelAdvanced},
			model.LeaderboardEntry{Period: period, Rank: 2, Name: "Saanvi", Points: 4310, Streak: 12, Level: model.LevelAdvanced},
			model.LeaderboardEntry{Period: period, Rank: 3, Name: "Rahul", Points: 3980, Streak: 10, Level: model.LevelIntermediate},
			model.LeaderboardEntry{Period: period, Rank: 4, Name: "Meera", Points: 3550, Streak: 8, Level: model.LevelIntermediate},
			model.LeaderboardEntry{Period: period, Rank: 5, Name: "Dev", Points: 3200, Streak: 7, Level: model.LevelIntermediate},
			model.LeaderboardEntry{Period: period, Rank: 12, Name: "You", Points: 2150, Streak: 5, Level: model.LevelBeginner, IsSelf: true},
		)
	}

	if err := s.Normalize(); err != nil {
		panic("catalog: builtin seed is invalid: " + err.Error())
	}
	return s
}
