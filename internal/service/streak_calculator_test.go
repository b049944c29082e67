package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"quizforge/internal/dto"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func TestStreakCalculator(t *testing.T) {
	calc := NewStreakCalculatorService()

	tests := []struct {
		name  string
		dates []string
		today string
		want  dto.StreakDataDTO
	}{
		{
			name:  "no activity",
			dates: nil,
			today: "2026-03-10",
			want:  dto.StreakDataDTO{},
		},
		{
			name:  "single active day today",
			dates: []string{"2026-03-10"},
			today: "2026-03-10",
			want:  dto.StreakDataDTO{CurrentStreak: 1, LongestStreak: 1, TotalActiveDays: 1},
		},
		{
			name:  "three consecutive days ending today",
			dates: []string{"2026-03-10", "2026-03-09", "2026-03-08"},
			today: "2026-03-10",
			want:  dto.StreakDataDTO{CurrentStreak: 3, LongestStreak: 3, TotalActiveDays: 3},
		},
		{
			name:  "today plus an isolated older day",
			dates: []string{"2026-03-10", "2026-03-05"},
			today: "2026-03-10",
			want:  dto.StreakDataDTO{CurrentStreak: 1, LongestStreak: 1, TotalActiveDays: 2},
		},
		{
			name: "ten consecutive days ending three days ago",
			dates: []string{
				"2026-03-07", "2026-03-06", "2026-03-05", "2026-03-04", "2026-03-03",
				"2026-03-02", "2026-03-01", "2026-02-28", "2026-02-27", "2026-02-26",
			},
			today: "2026-03-10",
			want:  dto.StreakDataDTO{CurrentStreak: 0, LongestStreak: 10, TotalActiveDays: 10},
		},
		{
			name:  "activity yesterday but not today breaks current streak",
			dates: []string{"2026-03-09", "2026-03-08", "2026-03-07"},
			today: "2026-03-10",
			want:  dto.StreakDataDTO{CurrentStreak: 0, LongestStreak: 3, TotalActiveDays: 3},
		},
		{
			name:  "current streak ends at first gap",
			dates: []string{"2026-03-10", "2026-03-09", "2026-03-07", "2026-03-06", "2026-03-05", "2026-03-04"},
			today: "2026-03-10",
			want:  dto.StreakDataDTO{CurrentStreak: 2, LongestStreak: 4, TotalActiveDays: 6},
		},
		{
			name:  "longest streak in the middle of history",
			dates: []string{"2026-03-10", "2026-02-20", "2026-02-19", "2026-02-18", "2026-02-01"},
			today: "2026-03-10",
			want:  dto.StreakDataDTO{CurrentStreak: 1, LongestStreak: 3, TotalActiveDays: 5},
		},
		{
			name:  "longest run at the oldest end is still counted",
			dates: []string{"2026-03-10", "2026-01-03", "2026-01-02", "2026-01-01"},
			today: "2026-03-10",
			want:  dto.StreakDataDTO{CurrentStreak: 1, LongestStreak: 3, TotalActiveDays: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates := make([]time.Time, 0, len(tt.dates))
			for _, d := range tt.dates {
				dates = append(dates, day(t, d))
			}
			got := calc.Calculate(dates, day(t, tt.today))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStreakCalculatorNormalizesTimesAndDuplicates(t *testing.T) {
	calc := NewStreakCalculatorService()
	today := time.Date(2026, 3, 10, 18, 45, 0, 0, time.UTC)

	// Three submissions on the same two calendar days, at different times.
	dates := []time.Time{
		time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 10, 22, 30, 0, 0, time.UTC),
		time.Date(2026, 3, 9, 1, 15, 0, 0, time.UTC),
	}

	got := calc.Calculate(dates, today)
	assert.Equal(t, dto.StreakDataDTO{CurrentStreak: 2, LongestStreak: 2, TotalActiveDays: 2}, got)
}

func TestStreakCalculatorIsIdempotent(t *testing.T) {
	calc := NewStreakCalculatorService()
	today := day(t, "2026-03-10")
	dates := []time.Time{day(t, "2026-03-10"), day(t, "2026-03-09"), day(t, "2026-03-05")}

	first := calc.Calculate(dates, today)
	second := calc.Calculate(dates, today)
	assert.Equal(t, first, second)
}
