package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"quizforge/internal/dto"
	"quizforge/internal/model"
	"quizforge/internal/repository"
)

const (
	popularTopicsLimit       = 10
	topUsersLimit            = 10
	recentActivityWindowDays = 7
	activityWindowDays       = 30
	growthWindowDays         = 30
	userAttemptsLimit        = 50
)

// AdminAnalyticsService serves the platform-wide views behind /admin.
// Counts and averages come from SQL aggregates; the per-user activity
// detail reuses the same in-memory aggregation as user analytics.
type AdminAnalyticsService interface {
	PlatformAnalytics() (*dto.AdminAnalyticsDTO, error)
	ListUsers() (*dto.AdminUserListDTO, error)
	UserActivity(userID uint) (*dto.UserActivityDTO, error)
}

type adminAnalyticsService struct {
	userRepo   repository.UserRepository
	quizRepo   repository.QuizRepository
	resultRepo repository.ResultRepository
	now        func() time.Time
}

func NewAdminAnalyticsService(userRepo repository.UserRepository, quizRepo repository.QuizRepository, resultRepo repository.ResultRepository) AdminAnalyticsService {
	return &adminAnalyticsService{
		userRepo:   userRepo,
		quizRepo:   quizRepo,
		resultRepo: resultRepo,
		now:        time.Now,
	}
}

func (s *adminAnalyticsService) PlatformAnalytics() (*dto.AdminAnalyticsDTO, error) {
	now := s.now()

	users, err := s.userCounts(now)
	if err != nil {
		return nil, err
	}

	quizCounts, err := s.quizRepo.CountsBySourceAndStatus()
	if err != nil {
		log.Error().Err(err).Msg("PlatformAnalytics: quiz counts query failed")
		return nil, fmt.Errorf("error fetching quiz statistics: %w", err)
	}
	var quizzes dto.AdminQuizCountsDTO
	if err := copier.Copy(&quizzes, &quizCounts); err != nil {
		return nil, fmt.Errorf("failed to map quiz counts: %w", err)
	}

	attempts, err := s.attemptStats()
	if err != nil {
		return nil, err
	}

	topics, err := s.popularTopics()
	if err != nil {
		return nil, err
	}

	activity, err := s.recentActivity(now)
	if err != nil {
		return nil, err
	}

	growth, err := s.userGrowth(now)
	if err != nil {
		return nil, err
	}

	topUsers, err := s.topUsers()
	if err != nil {
		return nil, err
	}

	return &dto.AdminAnalyticsDTO{
		Users:          users,
		Quizzes:        quizzes,
		Attempts:       attempts,
		PopularTopics:  topics,
		RecentActivity: activity,
		UserGrowth:     growth,
		TopUsers:       topUsers,
		Success:        true,
	}, nil
}

func (s *adminAnalyticsService) userCounts(now time.Time) (dto.AdminUserCountsDTO, error) {
	var counts dto.AdminUserCountsDTO

	total, err := s.userRepo.CountByRole(model.RoleUser)
	if err != nil {
		log.Error().Err(err).Msg("PlatformAnalytics: user count query failed")
		return counts, fmt.Errorf("error fetching user statistics: %w", err)
	}
	active, err := s.resultRepo.CountActiveUsersSince(now.AddDate(0, 0, -activityWindowDays))
	if err != nil {
		log.Error().Err(err).Msg("PlatformAnalytics: active user query failed")
		return counts, fmt.Errorf("error fetching user statistics: %w", err)
	}
	newWeek, err := s.userRepo.CountNewSince(model.RoleUser, now.AddDate(0, 0, -weekWindowDays))
	if err != nil {
		log.Error().Err(err).Msg("PlatformAnalytics: new user query failed")
		return counts, fmt.Errorf("error fetching user statistics: %w", err)
	}

	counts.TotalUsers = int(total)
	counts.ActiveUsers = int(active)
	counts.NewUsersWeek = int(newWeek)
	return counts, nil
}

func (s *adminAnalyticsService) attemptStats() (dto.AdminAttemptStatsDTO, error) {
	var out dto.AdminAttemptStatsDTO

	stats, err := s.resultRepo.AttemptStats()
	if err != nil {
		log.Error().Err(err).Msg("PlatformAnalytics: attempt stats query failed")
		return out, fmt.Errorf("error fetching attempt statistics: %w", err)
	}

	out.TotalAttempts = stats.TotalAttempts
	out.UniqueQuizzesTaken = stats.UniqueQuizzesTaken
	out.UniqueUsers = stats.UniqueUsers
	out.TotalTimeSpent = stats.TotalTimeSpent
	out.TotalCorrectAnswers = stats.TotalCorrectAnswers
	out.TotalQuestionsAnswered = stats.TotalQuestionsAnswered
	if stats.PlatformAvgScore != nil {
		out.PlatformAvgScore = round1(*stats.PlatformAvgScore)
	}
	if stats.TotalQuestionsAnswered > 0 {
		out.AccuracyRate = round1(float64(stats.TotalCorrectAnswers) * 100 / float64(stats.TotalQuestionsAnswered))
	}
	return out, nil
}

func (s *adminAnalyticsService) popularTopics() ([]dto.PopularTopicDTO, error) {
	rows, err := s.resultRepo.PopularTopics(popularTopicsLimit)
	if err != nil {
		log.Error().Err(err).Msg("PlatformAnalytics: popular topics query failed")
		return nil, fmt.Errorf("error fetching popular topics: %w", err)
	}
	topics := make([]dto.PopularTopicDTO, 0, len(rows))
	for _, row := range rows {
		t := dto.PopularTopicDTO{
			Topic:         row.Topic,
			UniqueQuizzes: row.UniqueQuizzes,
			AttemptCount:  row.AttemptCount,
		}
		if row.AvgScore != nil {
			t.AvgScore = round1(*row.AvgScore)
		}
		topics = append(topics, t)
	}
	return topics, nil
}

func (s *adminAnalyticsService) recentActivity(now time.Time) ([]dto.DailyActivityDTO, error) {
	rows, err := s.resultRepo.ActivityPerDaySince(now.AddDate(0, 0, -recentActivityWindowDays))
	if err != nil {
		log.Error().Err(err).Msg("PlatformAnalytics: daily activity query failed")
		return nil, fmt.Errorf("error fetching recent activity: %w", err)
	}
	activity := make([]dto.DailyActivityDTO, 0, len(rows))
	for _, row := range rows {
		activity = append(activity, dto.DailyActivityDTO{
			Date:          row.ActivityDate.Format("2006-01-02"),
			Attempts:      row.DailyAttempts,
			UniqueUsers:   row.DailyUsers,
			UniqueQuizzes: row.DailyQuizzes,
		})
	}
	return activity, nil
}

func (s *adminAnalyticsService) userGrowth(now time.Time) ([]dto.UserGrowthPointDTO, error) {
	rows, err := s.userRepo.SignupsPerDay(model.RoleUser, now.AddDate(0, 0, -growthWindowDays))
	if err != nil {
		log.Error().Err(err).Msg("PlatformAnalytics: user growth query failed")
		return nil, fmt.Errorf("error fetching user growth: %w", err)
	}
	growth := make([]dto.UserGrowthPointDTO, 0, len(rows))
	for _, row := range rows {
		growth = append(growth, dto.UserGrowthPointDTO{
			Date:     row.SignupDate.Format("2006-01-02"),
			NewUsers: row.NewUsers,
		})
	}
	return growth, nil
}

func (s *adminAnalyticsService) topUsers() ([]dto.TopUserDTO, error) {
	rows, err := s.resultRepo.TopUsers(topUsersLimit)
	if err != nil {
		log.Error().Err(err).Msg("PlatformAnalytics: top users query failed")
		return nil, fmt.Errorf("error fetching top performers: %w", err)
	}
	users := make([]dto.TopUserDTO, 0, len(rows))
	for _, row := range rows {
		u := dto.TopUserDTO{
			ID:            row.ID,
			Name:          row.Name,
			Email:         row.Email,
			TotalAttempts: row.TotalAttempts,
			TotalTime:     row.TotalTime,
		}
		if row.AvgScore != nil {
			u.AvgScore = round1(*row.AvgScore)
		}
		if row.BestScore != nil {
			u.BestScore = round1(*row.BestScore)
		}
		users = append(users, u)
	}
	return users, nil
}

func (s *adminAnalyticsService) ListUsers() (*dto.AdminUserListDTO, error) {
	rows, err := s.userRepo.ListWithActivity(model.RoleUser)
	if err != nil {
		log.Error().Err(err).Msg("ListUsers: query failed")
		return nil, fmt.Errorf("error fetching users: %w", err)
	}

	users := make([]dto.AdminUserRowDTO, 0, len(rows))
	for _, row := range rows {
		u := dto.AdminUserRowDTO{
			ID:            row.ID,
			Name:          row.Name,
			Email:         row.Email,
			Role:          row.Role,
			CreatedAt:     row.CreatedAt,
			TotalAttempts: row.TotalAttempts,
			LastActivity:  row.LastActivity,
			Status:        "Inactive",
		}
		if row.AvgScore != nil {
			u.AvgScore = round1(*row.AvgScore)
		}
		if row.TotalAttempts > 0 {
			u.Status = "Active"
		}
		users = append(users, u)
	}

	return &dto.AdminUserListDTO{
		Users:      users,
		TotalCount: len(users),
		Success:    true,
	}, nil
}

func (s *adminAnalyticsService) UserActivity(userID uint) (*dto.UserActivityDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	results, err := s.resultRepo.FindByUserWithQuizLimit(userID, userAttemptsLimit)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("UserActivity: failed to load results")
		return nil, fmt.Errorf("error fetching user activity: %w", err)
	}

	var userDTO dto.UserDTO
	if err := copier.Copy(&userDTO, user); err != nil {
		return nil, fmt.Errorf("failed to map user: %w", err)
	}

	return &dto.UserActivityDTO{
		User:     userDTO,
		Stats:    computeActivityStats(results),
		Attempts: recentResults(results, userAttemptsLimit),
		Topics:   computeTopicAttempts(results),
		Success:  true,
	}, nil
}

func computeActivityStats(results []model.Result) dto.UserActivityStatsDTO {
	stats := dto.UserActivityStatsDTO{TotalAttempts: len(results)}

	quizzes := make(map[uint]struct{})
	var percentageSum float64
	var scored int
	var first, last time.Time

	for _, r := range results {
		quizzes[r.QuizID] = struct{}{}
		stats.TotalTime += r.TimeTaken
		if first.IsZero() || r.CreatedAt.Before(first) {
			first = r.CreatedAt
		}
		if r.CreatedAt.After(last) {
			last = r.CreatedAt
		}
		if r.TotalQuestions > 0 {
			pct := r.Percentage()
			percentageSum += pct
			scored++
			if pct > stats.BestScore {
				stats.BestScore = pct
			}
		}
	}

	stats.UniqueQuizzes = len(quizzes)
	if scored > 0 {
		stats.AvgScore = round1(percentageSum / float64(scored))
	}
	stats.BestScore = round1(stats.BestScore)
	if !first.IsZero() {
		f, l := first, last
		stats.FirstActivity = &f
		stats.LastActivity = &l
	}
	return stats
}

func computeTopicAttempts(results []model.Result) []dto.TopicAttemptsDTO {
	type acc struct {
		attempts      int
		percentageSum float64
		scored        int
	}
	byTopic := make(map[string]*acc)
	order := make([]string, 0)

	for _, r := range results {
		topic := r.Quiz.Topic
		a, ok := byTopic[topic]
		if !ok {
			a = &acc{}
			byTopic[topic] = a
			order = append(order, topic)
		}
		a.attempts++
		if r.TotalQuestions > 0 {
			a.percentageSum += r.Percentage()
			a.scored++
		}
	}

	rows := make([]dto.TopicAttemptsDTO, 0, len(order))
	for _, topic := range order {
		a := byTopic[topic]
		row := dto.TopicAttemptsDTO{Topic: topic, Attempts: a.attempts}
		if a.scored > 0 {
			row.AvgScore = round1(a.percentageSum / float64(a.scored))
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Attempts > rows[j].Attempts })
	return rows
}
