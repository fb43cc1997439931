package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"team-timeline/internal/roster"
	"team-timeline/internal/scheduler"
)

var ErrWriteCSV = errors.New("failed to write schedule csv")

var csvHeader = []string{"Task", "Start Date", "End Date", "Assigned Developers", "Effort Per Developer"}

// WriteCSV exports on-call duty, leaves and completed task assignments, one
// row per developer.
func WriteCSV(w io.Writer, res *scheduler.Result) error {
	const fn = "Report:WriteCSV"
	writer := csv.NewWriter(w)

	records := [][]string{csvHeader}
	for _, p := range res.OnCalls {
		records = append(records, periodRecord("On-Call Duty", p))
	}
	for _, p := range res.Leaves {
		records = append(records, periodRecord("Leave", p))
	}
	for _, a := range res.Assignments {
		if !a.Completed {
			continue
		}
		records = append(records, []string{
			a.Task,
			a.Start.Format(roster.DateLayout),
			a.End.Format(roster.DateLayout),
			strings.TrimSpace(a.Developer),
			fmt.Sprintf("%.2f", spanDays(a)),
		})
	}

	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrWriteCSV, err)
	}
	return nil
}

func periodRecord(label string, p roster.Period) []string {
	return []string{
		label,
		p.Start.Format(roster.DateLayout),
		p.End.Format(roster.DateLayout),
		p.Developer,
		fmt.Sprintf("%.2f", p.End.Sub(p.Start).Hours()/24),
	}
}
