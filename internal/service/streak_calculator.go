package service

import (
	"sort"
	"time"

	"quizforge/internal/dto"
)

// StreakCalculatorService derives activity streaks from the set of calendar
// days on which a user submitted at least one result.
type StreakCalculatorService interface {
	Calculate(dates []time.Time, today time.Time) dto.StreakDataDTO
}

type streakCalculator struct{}

func NewStreakCalculatorService() StreakCalculatorService {
	return &streakCalculator{}
}

// Calculate computes the current streak (consecutive days ending today), the
// longest streak over all history, and the count of distinct active days.
// Input dates may carry a time component and duplicates; both are normalized
// away. A current streak only exists when today itself is an active day.
func (c *streakCalculator) Calculate(dates []time.Time, today time.Time) dto.StreakDataDTO {
	days := distinctDaysDesc(dates)
	if len(days) == 0 {
		return dto.StreakDataDTO{}
	}

	todayDay := truncateToDay(today)

	currentStreak := 0
	expected := todayDay
	for _, d := range days {
		if !d.Equal(expected) {
			break
		}
		currentStreak++
		expected = expected.AddDate(0, 0, -1)
	}

	longestStreak := 1
	run := 1
	for i := 1; i < len(days); i++ {
		// days is sorted descending, so days[i-1] is the later date.
		if days[i].AddDate(0, 0, 1).Equal(days[i-1]) {
			run++
		} else {
			if run > longestStreak {
				longestStreak = run
			}
			run = 1
		}
	}
	if run > longestStreak {
		longestStreak = run
	}

	return dto.StreakDataDTO{
		CurrentStreak:   currentStreak,
		LongestStreak:   longestStreak,
		TotalActiveDays: len(days),
	}
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func distinctDaysDesc(dates []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, t := range dates {
		day := truncateToDay(t)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	return days
}
