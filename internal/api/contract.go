package api

import (
	"team-timeline/internal/report"
	"team-timeline/internal/timeline"
)

// Multipart field names expected by POST /upload, with the label used in the
// "Missing <label> file" error.
var uploadFields = []struct {
	Field string
	Label string
}{
	{Field: "roles.csv", Label: "roles"},
	{Field: "tasks.csv", Label: "tasks"},
	{Field: "developers.csv", Label: "developers"},
	{Field: "oncalls.csv", Label: "oncalls"},
	{Field: "leaves.csv", Label: "leaves"},
}

const ScheduleIDHeader = "X-Schedule-ID"

type ErrorResponse struct {
	Error string `json:"error"`
}

type GetScheduleResponse struct {
	ID          string          `json:"id"`
	CreatedAt   string          `json:"created_at"`
	StartDate   string          `json:"start_date"`
	Items       []timeline.Item `json:"items"`
	Summary     report.Summary  `json:"summary"`
	Unscheduled []string        `json:"unscheduled"`
}

type ScheduleListEntry struct {
	ID           string  `json:"id"`
	CreatedAt    string  `json:"created_at"`
	StartDate    string  `json:"start_date"`
	TaskCount    int     `json:"task_count"`
	ItemCount    int     `json:"item_count"`
	MakespanDays float64 `json:"makespan_days"`
}

type ListSchedulesResponse struct {
	Schedules []ScheduleListEntry `json:"schedules"`
}
