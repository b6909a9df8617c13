package domain

import "time"

// Stats holds advisory usage counters. No invariant beyond
// non-negativity; counters are best effort.
type Stats struct {
	// TotalClicks counts every link open/copy since install.
	TotalClicks int `json:"totalClicks"`

	// TodayClicks counts clicks for the current day.
	TodayClicks int `json:"todayClicks"`

	// WeeklyUsage holds one counter per weekday, Sunday first.
	WeeklyUsage [7]int `json:"weeklyUsage"`
}

// RecordClick bumps the counters for a click happening at t.
func (s *Stats) RecordClick(t time.Time) {
	s.TotalClicks++
	s.TodayClicks++
	s.WeeklyUsage[int(t.Weekday())]++
}
