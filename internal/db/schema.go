package db

import "time"

// ScheduleRun is one stored POST /upload result. Result holds the schedule
// as JSON.
type ScheduleRun struct {
	ID        string    `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	StartDate time.Time `db:"start_date"`
	Result    []byte    `db:"result"`
}
