package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"quizforge/internal/dto"
	"quizforge/internal/model"
	"quizforge/internal/repository"
)

const (
	recentResultsLimit = 10
	progressWindowDays = 30
	weekWindowDays     = 7
)

// AnalyticsService assembles the per-user analytics payload. Every section is
// recomputed from the user's results on each call; a failure anywhere aborts
// the whole response.
type AnalyticsService interface {
	UserAnalytics(userID uint) (*dto.UserAnalyticsDTO, error)
}

type analyticsService struct {
	resultRepo repository.ResultRepository
	streaks    StreakCalculatorService
	now        func() time.Time
}

func NewAnalyticsService(resultRepo repository.ResultRepository, streaks StreakCalculatorService) AnalyticsService {
	return &analyticsService{
		resultRepo: resultRepo,
		streaks:    streaks,
		now:        time.Now,
	}
}

func (s *analyticsService) UserAnalytics(userID uint) (*dto.UserAnalyticsDTO, error) {
	results, err := s.resultRepo.FindByUserWithQuiz(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("UserAnalytics: failed to load results")
		return nil, fmt.Errorf("error fetching analytics data: %w", err)
	}

	now := s.now()

	activityDates := make([]time.Time, 0, len(results))
	for _, r := range results {
		activityDates = append(activityDates, r.CreatedAt)
	}

	return &dto.UserAnalyticsDTO{
		Stats:            computeUserStats(results, now),
		TopicPerformance: computeTopicPerformance(results),
		RecentResults:    recentResults(results, recentResultsLimit),
		ProgressOverTime: progressOverTime(results, now, progressWindowDays),
		StreakData:       s.streaks.Calculate(activityDates, now),
		Success:          true,
	}, nil
}

func computeUserStats(results []model.Result, now time.Time) dto.UserStatsDTO {
	stats := dto.UserStatsDTO{}
	stats.TotalAttempts = len(results)

	quizzes := make(map[uint]struct{})
	quizzesThisWeek := make(map[uint]struct{})
	weekStart := now.AddDate(0, 0, -weekWindowDays)

	var percentageSum float64
	var scored int
	var lastAttempt time.Time

	for _, r := range results {
		quizzes[r.QuizID] = struct{}{}
		if !r.CreatedAt.Before(weekStart) {
			quizzesThisWeek[r.QuizID] = struct{}{}
		}
		stats.TotalTimeSpent += r.TimeTaken
		if r.CreatedAt.After(lastAttempt) {
			lastAttempt = r.CreatedAt
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

	stats.TotalQuizzesTaken = len(quizzes)
	stats.QuizzesThisWeek = len(quizzesThisWeek)
	if scored > 0 {
		stats.AverageScore = round1(percentageSum / float64(scored))
	}
	stats.BestScore = round1(stats.BestScore)
	if !lastAttempt.IsZero() {
		t := lastAttempt
		stats.LastAttempt = &t
	}
	return stats
}

type topicAccumulator struct {
	topic         string
	quizzes       map[uint]struct{}
	attempts      int
	percentageSum float64
	scored        int
	best          float64
	totalTime     int
}

func computeTopicPerformance(results []model.Result) []dto.TopicPerformanceDTO {
	byTopic := make(map[string]*topicAccumulator)
	order := make([]string, 0)

	for _, r := range results {
		topic := r.Quiz.Topic
		acc, ok := byTopic[topic]
		if !ok {
			acc = &topicAccumulator{topic: topic, quizzes: make(map[uint]struct{})}
			byTopic[topic] = acc
			order = append(order, topic)
		}
		acc.quizzes[r.QuizID] = struct{}{}
		acc.attempts++
		acc.totalTime += r.TimeTaken
		if r.TotalQuestions > 0 {
			pct := r.Percentage()
			acc.percentageSum += pct
			acc.scored++
			if pct > acc.best {
				acc.best = pct
			}
		}
	}

	rows := make([]dto.TopicPerformanceDTO, 0, len(order))
	for _, topic := range order {
		acc := byTopic[topic]
		row := dto.TopicPerformanceDTO{
			Topic:         acc.topic,
			UniqueQuizzes: len(acc.quizzes),
			TotalAttempts: acc.attempts,
			BestScore:     round1(acc.best),
			TotalTime:     acc.totalTime,
		}
		if acc.scored > 0 {
			row.AvgScore = round1(acc.percentageSum / float64(acc.scored))
		}
		rows = append(rows, row)
	}

	// Descending by average score; insertion order breaks ties.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].AvgScore > rows[j].AvgScore })
	return rows
}

func recentResults(results []model.Result, limit int) []dto.RecentResultDTO {
	sorted := make([]model.Result, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	recent := make([]dto.RecentResultDTO, 0, len(sorted))
	for _, r := range sorted {
		recent = append(recent, dto.RecentResultDTO{
			ID:             r.ID,
			QuizTitle:      r.Quiz.Title,
			Topic:          r.Quiz.Topic,
			Score:          r.Score,
			TotalQuestions: r.TotalQuestions,
			Percentage:     round1(r.Percentage()),
			TimeTaken:      r.TimeTaken,
			CreatedAt:      r.CreatedAt,
		})
	}
	return recent
}

type progressAccumulator struct {
	date          string
	quizzes       map[uint]struct{}
	attempts      int
	percentageSum float64
	scored        int
}

func progressOverTime(results []model.Result, now time.Time, days int) []dto.ProgressPointDTO {
	windowStart := now.AddDate(0, 0, -days)
	byDate := make(map[string]*progressAccumulator)

	for _, r := range results {
		if r.CreatedAt.Before(windowStart) {
			continue
		}
		date := r.CreatedAt.Format("2006-01-02")
		acc, ok := byDate[date]
		if !ok {
			acc = &progressAccumulator{date: date, quizzes: make(map[uint]struct{})}
			byDate[date] = acc
		}
		acc.quizzes[r.QuizID] = struct{}{}
		acc.attempts++
		if r.TotalQuestions > 0 {
			acc.percentageSum += r.Percentage()
			acc.scored++
		}
	}

	points := make([]dto.ProgressPointDTO, 0, len(byDate))
	for _, acc := range byDate {
		point := dto.ProgressPointDTO{
			Date:          acc.date,
			UniqueQuizzes: len(acc.quizzes),
			Attempts:      acc.attempts,
		}
		if acc.scored > 0 {
			point.AverageScore = round1(acc.percentageSum / float64(acc.scored))
		}
		points = append(points, point)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
