package report

import (
	"team-timeline/internal/scheduler"

	"github.com/montanaflynn/stats"
)

type Summary struct {
	TaskCount          int     `json:"task_count"`
	CompletedTaskCount int     `json:"completed_task_count"`
	AssignmentCount    int     `json:"assignment_count"`
	UnscheduledCount   int     `json:"unscheduled_count"`
	MeanDurationDays   float64 `json:"mean_duration_days"`
	MedianDurationDays float64 `json:"median_duration_days"`
	P90DurationDays    float64 `json:"p90_duration_days"`
	MakespanDays       float64 `json:"makespan_days"`
}

func spanDays(a scheduler.Assignment) float64 {
	return a.End.Sub(a.Start).Hours() / 24
}

// Summarize computes duration statistics over the task assignments of a
// schedule. Durations are calendar days between start and end.
func Summarize(res *scheduler.Result) Summary {
	sum := Summary{
		AssignmentCount:  len(res.Assignments),
		UnscheduledCount: len(res.Unscheduled),
	}

	tasks := make(map[string]bool)
	var durations []float64
	for _, a := range res.Assignments {
		if _, seen := tasks[a.Task]; !seen {
			sum.TaskCount++
			if a.Completed {
				sum.CompletedTaskCount++
			}
		}
		tasks[a.Task] = a.Completed
		durations = append(durations, spanDays(a))
		if end := a.End.Sub(res.Start).Hours() / 24; end > sum.MakespanDays {
			sum.MakespanDays = end
		}
	}
	if len(durations) == 0 {
		return sum
	}

	// Errors only come back for empty input, ruled out above.
	sum.MeanDurationDays, _ = stats.Mean(durations)
	sum.MedianDurationDays, _ = stats.Median(durations)
	sum.P90DurationDays, _ = stats.Percentile(durations, 90)
	return sum
}
