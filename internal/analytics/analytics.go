package analytics

import (
	"sort"
	"time"

	"tempo/internal/models"
)

// TaskBreakdown aggregates the sealed sessions of one task
type TaskBreakdown struct {
	TaskName       string
	TotalSeconds   float64
	Sessions       int
	AverageSeconds float64
	Days           int // distinct days with at least one session
}

// DayTotal is one day's tracked total, for the stats chart
type DayTotal struct {
	Date    time.Time // midnight, local
	Seconds float64
}

// Summary aggregates the whole session history relative to now
type Summary struct {
	TotalSeconds   float64
	TotalSessions  int
	UniqueTasks    int
	AverageSeconds float64

	TodaySeconds  float64
	TodaySessions int
	WeekSeconds   float64 // last 7 days
	WeekSessions  int
	MonthSeconds  float64 // last 30 days

	// MostProductiveDay is the weekday with the highest total, valid
	// only when HasMostProductive is set
	MostProductiveDay  time.Weekday
	HasMostProductive  bool
	MostProductiveHour int // 0-23, start-hour with the highest total

	Tasks []TaskBreakdown // sorted by total, descending
}

// Summarize computes productivity metrics over sealed sessions.
// Pure aggregation: no I/O, stable for a fixed now.
func Summarize(sessions []models.Session, now time.Time) Summary {
	s := Summary{}
	if len(sessions) == 0 {
		return s
	}

	today := startOfDay(now)
	weekAgo := today.AddDate(0, 0, -7)
	monthAgo := today.AddDate(0, 0, -30)

	byTask := make(map[string]*TaskBreakdown)
	taskDays := make(map[string]map[string]bool)
	weekdayTotals := make(map[time.Weekday]float64)
	hourTotals := make(map[int]float64)

	for _, sess := range sessions {
		s.TotalSeconds += sess.DurationSeconds
		s.TotalSessions++

		day := startOfDay(sess.StartTime)
		if day.Equal(today) {
			s.TodaySeconds += sess.DurationSeconds
			s.TodaySessions++
		}
		if !day.Before(weekAgo) {
			s.WeekSeconds += sess.DurationSeconds
			s.WeekSessions++
		}
		if !day.Before(monthAgo) {
			s.MonthSeconds += sess.DurationSeconds
		}

		weekdayTotals[sess.StartTime.Weekday()] += sess.DurationSeconds
		hourTotals[sess.StartTime.Hour()] += sess.DurationSeconds

		b, ok := byTask[sess.TaskName]
		if !ok {
			b = &TaskBreakdown{TaskName: sess.TaskName}
			byTask[sess.TaskName] = b
			taskDays[sess.TaskName] = make(map[string]bool)
		}
		b.TotalSeconds += sess.DurationSeconds
		b.Sessions++
		taskDays[sess.TaskName][day.Format("2006-01-02")] = true
	}

	s.UniqueTasks = len(byTask)
	s.AverageSeconds = s.TotalSeconds / float64(s.TotalSessions)

	for name, b := range byTask {
		b.AverageSeconds = b.TotalSeconds / float64(b.Sessions)
		b.Days = len(taskDays[name])
		s.Tasks = append(s.Tasks, *b)
	}
	sort.Slice(s.Tasks, func(i, j int) bool {
		if s.Tasks[i].TotalSeconds != s.Tasks[j].TotalSeconds {
			return s.Tasks[i].TotalSeconds > s.Tasks[j].TotalSeconds
		}
		return s.Tasks[i].TaskName < s.Tasks[j].TaskName
	})

	s.HasMostProductive = true
	s.MostProductiveDay = maxWeekday(weekdayTotals)
	s.MostProductiveHour = maxHour(hourTotals)

	return s
}

// DailyTotals returns one entry per day for the last days days ending
// at now, including zero days, oldest first
func DailyTotals(sessions []models.Session, days int, now time.Time) []DayTotal {
	totals := make(map[string]float64)
	for _, sess := range sessions {
		day := startOfDay(sess.StartTime)
		totals[day.Format("2006-01-02")] += sess.DurationSeconds
	}

	out := make([]DayTotal, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := startOfDay(now).AddDate(0, 0, -i)
		out = append(out, DayTotal{
			Date:    day,
			Seconds: totals[day.Format("2006-01-02")],
		})
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func maxWeekday(totals map[time.Weekday]float64) time.Weekday {
	best := time.Sunday
	bestTotal := -1.0
	for d := time.Sunday; d <= time.Saturday; d++ {
		if totals[d] > bestTotal {
			best = d
			bestTotal = totals[d]
		}
	}
	return best
}

func maxHour(totals map[int]float64) int {
	best := 0
	bestTotal := -1.0
	for h := 0; h < 24; h++ {
		if totals[h] > bestTotal {
			best = h
			bestTotal = totals[h]
		}
	}
	return best
}
