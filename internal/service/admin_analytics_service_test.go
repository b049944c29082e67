package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"quizforge/internal/model"
	"quizforge/internal/repository"
)

func newAdminServiceForTest(userRepo *fakeUserRepo, quizRepo *fakeQuizRepo, resultRepo *fakeResultRepo, now time.Time) *adminAnalyticsService {
	return &adminAnalyticsService{
		userRepo:   userRepo,
		quizRepo:   quizRepo,
		resultRepo: resultRepo,
		now:        func() time.Time { return now },
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestPlatformAnalytics(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	userRepo := newFakeUserRepo()
	userRepo.users = []*model.User{
		{ID: 1, Role: model.RoleAdmin, CreatedAt: now.AddDate(0, -6, 0)},
		{ID: 2, Role: model.RoleUser, CreatedAt: now.AddDate(0, -1, 0)},
		{ID: 3, Role: model.RoleUser, CreatedAt: now.AddDate(0, 0, -2)},
	}
	userRepo.signups = []repository.SignupDay{
		{SignupDate: now.AddDate(0, 0, -2), NewUsers: 1},
	}

	quizRepo := newFakeQuizRepo()
	quizRepo.counts = repository.QuizCounts{
		TotalQuizzes:     10,
		AIQuizzes:        6,
		ManualQuizzes:    4,
		PendingQuizzes:   2,
		PublishedQuizzes: 7,
		RejectedQuizzes:  1,
	}

	resultRepo := newFakeResultRepo()
	resultRepo.attemptStats = repository.AttemptStats{
		TotalAttempts:          40,
		UniqueQuizzesTaken:     8,
		UniqueUsers:            2,
		PlatformAvgScore:       floatPtr(72.348),
		TotalTimeSpent:         3600,
		TotalCorrectAnswers:    290,
		TotalQuestionsAnswered: 400,
	}
	resultRepo.activeUsers = 2
	resultRepo.popularTopics = []repository.TopicPopularity{
		{Topic: "math", UniqueQuizzes: 3, AttemptCount: 25, AvgScore: floatPtr(68.04)},
	}
	resultRepo.activityDays = []repository.ActivityDay{
		{ActivityDate: now.AddDate(0, 0, -1), DailyAttempts: 5, DailyUsers: 2, DailyQuizzes: 3},
	}
	resultRepo.topUsers = []repository.TopUserRow{
		{ID: 2, Name: "Alice", Email: "alice@example.com", TotalAttempts: 30, AvgScore: floatPtr(81.25), BestScore: floatPtr(100), TotalTime: 2400},
	}

	svc := newAdminServiceForTest(userRepo, quizRepo, resultRepo, now)
	analytics, err := svc.PlatformAnalytics()
	require.NoError(t, err)
	require.True(t, analytics.Success)

	assert.Equal(t, 2, analytics.Users.TotalUsers) // admin excluded
	assert.Equal(t, 2, analytics.Users.ActiveUsers)
	assert.Equal(t, 1, analytics.Users.NewUsersWeek)

	assert.Equal(t, 10, analytics.Quizzes.TotalQuizzes)
	assert.Equal(t, 6, analytics.Quizzes.AIQuizzes)
	assert.Equal(t, 2, analytics.Quizzes.PendingQuizzes)

	assert.Equal(t, 40, analytics.Attempts.TotalAttempts)
	assert.InDelta(t, 72.3, analytics.Attempts.PlatformAvgScore, 0.001)
	assert.InDelta(t, 72.5, analytics.Attempts.AccuracyRate, 0.001) // 290/400

	require.Len(t, analytics.PopularTopics, 1)
	assert.InDelta(t, 68.0, analytics.PopularTopics[0].AvgScore, 0.001)

	require.Len(t, analytics.RecentActivity, 1)
	assert.Equal(t, "2026-03-09", analytics.RecentActivity[0].Date)

	require.Len(t, analytics.UserGrowth, 1)
	assert.Equal(t, "2026-03-08", analytics.UserGrowth[0].Date)

	require.Len(t, analytics.TopUsers, 1)
	assert.InDelta(t, 81.3, analytics.TopUsers[0].AvgScore, 0.001)
	assert.InDelta(t, 100.0, analytics.TopUsers[0].BestScore, 0.001)
}

func TestPlatformAnalyticsQueryLimitsAndWindows(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	userRepo := newFakeUserRepo()
	resultRepo := newFakeResultRepo()

	svc := newAdminServiceForTest(userRepo, newFakeQuizRepo(), resultRepo, now)
	_, err := svc.PlatformAnalytics()
	require.NoError(t, err)

	// Top-10 boards, 7-day activity feed, 30-day active-user and growth windows.
	assert.Equal(t, 10, resultRepo.popularTopicsLimit)
	assert.Equal(t, 10, resultRepo.topUsersLimit)
	assert.True(t, resultRepo.activitySince.Equal(now.AddDate(0, 0, -7)))
	assert.True(t, resultRepo.activeUsersSince.Equal(now.AddDate(0, 0, -30)))
	assert.True(t, userRepo.signupsSince.Equal(now.AddDate(0, 0, -30)))
}

func TestPlatformAnalyticsEmptyPlatform(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	svc := newAdminServiceForTest(newFakeUserRepo(), newFakeQuizRepo(), newFakeResultRepo(), now)

	analytics, err := svc.PlatformAnalytics()
	require.NoError(t, err)

	assert.True(t, analytics.Success)
	assert.Zero(t, analytics.Users.TotalUsers)
	assert.Zero(t, analytics.Attempts.PlatformAvgScore)
	assert.Zero(t, analytics.Attempts.AccuracyRate)
	assert.Empty(t, analytics.PopularTopics)
}

func TestListUsersMarksActivity(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	lastSeen := now.AddDate(0, 0, -3)

	userRepo := newFakeUserRepo()
	userRepo.activityRows = []repository.UserActivityRow{
		{ID: 2, Name: "Alice", Email: "alice@example.com", Role: model.RoleUser, TotalAttempts: 12, LastActivity: &lastSeen, AvgScore: floatPtr(77.77)},
		{ID: 3, Name: "Bob", Email: "bob@example.com", Role: model.RoleUser, TotalAttempts: 0},
	}

	svc := newAdminServiceForTest(userRepo, newFakeQuizRepo(), newFakeResultRepo(), now)
	list, err := svc.ListUsers()
	require.NoError(t, err)

	assert.Equal(t, 2, list.TotalCount)
	assert.True(t, list.Success)

	alice := list.Users[0]
	assert.Equal(t, "Active", alice.Status)
	assert.InDelta(t, 77.8, alice.AvgScore, 0.001)
	require.NotNil(t, alice.LastActivity)

	bob := list.Users[1]
	assert.Equal(t, "Inactive", bob.Status)
	assert.Zero(t, bob.AvgScore)
	assert.Nil(t, bob.LastActivity)
}

func TestUserActivityDetail(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	userRepo := newFakeUserRepo()
	userRepo.users = []*model.User{
		{ID: 2, Name: "Alice", Email: "alice@example.com", Role: model.RoleUser, CreatedAt: now.AddDate(0, -1, 0)},
	}

	quizA := model.Quiz{ID: 1, Title: "Algebra Basics", Topic: "math"}
	quizB := model.Quiz{ID: 2, Title: "World Capitals", Topic: "geography"}
	resultRepo := newFakeResultRepo()
	resultRepo.results = []model.Result{
		{ID: 1, UserID: 2, QuizID: 1, Quiz: quizA, Score: 8, TotalQuestions: 10, TimeTaken: 100, CreatedAt: now.AddDate(0, 0, -5)},
		{ID: 2, UserID: 2, QuizID: 1, Quiz: quizA, Score: 10, TotalQuestions: 10, TimeTaken: 80, CreatedAt: now.AddDate(0, 0, -4)},
		{ID: 3, UserID: 2, QuizID: 2, Quiz: quizB, Score: 3, TotalQuestions: 5, TimeTaken: 50, CreatedAt: now.AddDate(0, 0, -1)},
	}

	svc := newAdminServiceForTest(userRepo, newFakeQuizRepo(), resultRepo, now)
	activity, err := svc.UserActivity(2)
	require.NoError(t, err)

	assert.Equal(t, "Alice", activity.User.Name)
	assert.Equal(t, 3, activity.Stats.TotalAttempts)
	assert.Equal(t, 2, activity.Stats.UniqueQuizzes)
	assert.InDelta(t, 80.0, activity.Stats.AvgScore, 0.001) // (80+100+60)/3
	assert.InDelta(t, 100.0, activity.Stats.BestScore, 0.001)
	assert.Equal(t, 230, activity.Stats.TotalTime)
	require.NotNil(t, activity.Stats.FirstActivity)
	require.NotNil(t, activity.Stats.LastActivity)
	assert.True(t, activity.Stats.FirstActivity.Before(*activity.Stats.LastActivity))

	require.Len(t, activity.Attempts, 3)
	assert.Equal(t, uint(3), activity.Attempts[0].ID) // newest first

	// Topics ordered by attempt count descending.
	require.Len(t, activity.Topics, 2)
	assert.Equal(t, "math", activity.Topics[0].Topic)
	assert.Equal(t, 2, activity.Topics[0].Attempts)
	assert.InDelta(t, 90.0, activity.Topics[0].AvgScore, 0.001)
}

func TestUserActivityUnknownUser(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	svc := newAdminServiceForTest(newFakeUserRepo(), newFakeQuizRepo(), newFakeResultRepo(), now)

	activity, err := svc.UserActivity(404)
	assert.Nil(t, activity)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
