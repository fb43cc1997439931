package timeline

import (
	"fmt"

	"team-timeline/internal/roster"
	"team-timeline/internal/scheduler"
)

// Item is one entry of the timeline payload served by POST /upload.
type Item struct {
	ID      string `json:"id"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Content string `json:"content"`
}

// FromResult flattens a schedule into timeline items: task assignments first,
// then on-call periods, then leaves.
func FromResult(res *scheduler.Result) []Item {
	items := []Item{}
	for _, a := range res.Assignments {
		if a.Start.IsZero() || a.End.IsZero() {
			continue
		}
		items = append(items, Item{
			ID:      fmt.Sprintf("task_%s_%s", a.Task, a.Developer),
			Start:   a.Start.Format(roster.DateLayout),
			End:     a.End.Format(roster.DateLayout),
			Content: fmt.Sprintf("Task: %s (Assigned to: %s)", a.Task, a.Developer),
		})
	}
	for i, p := range res.OnCalls {
		items = append(items, Item{
			ID:      fmt.Sprintf("oncall_%d", i),
			Start:   p.Start.Format(roster.DateLayout),
			End:     p.End.Format(roster.DateLayout),
			Content: fmt.Sprintf("On-call: %s", p.Developer),
		})
	}
	for i, p := range res.Leaves {
		items = append(items, Item{
			ID:      fmt.Sprintf("leave_%d", i),
			Start:   p.Start.Format(roster.DateLayout),
			End:     p.End.Format(roster.DateLayout),
			Content: fmt.Sprintf("Leave: %s", p.Developer),
		})
	}
	return items
}
