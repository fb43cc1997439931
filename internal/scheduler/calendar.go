package scheduler

import "time"

func isWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// addWorkdays moves forward n working days, skipping Saturdays and Sundays.
func addWorkdays(day time.Time, n int) time.Time {
	for n > 0 {
		day = day.AddDate(0, 0, 1)
		if !isWeekend(day) {
			n--
		}
	}
	return day
}

// startOfDay truncates t to midnight UTC of its calendar date.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
