package roster

import "time"

const DateLayout = "2006-01-02"

const (
	TypeFrontend = "Frontend"
	TypeQA       = "QA"
)

type Role struct {
	Name         string  `json:"name"`
	Availability float64 `json:"availability"`
}

type Task struct {
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	Priority       int      `json:"priority"`
	Effort         float64  `json:"effort"`
	ParallelFactor int      `json:"parallel_factor"`
	Dependencies   []string `json:"dependencies"`
}

type Developer struct {
	Name      string   `json:"name"`
	Role      string   `json:"role"`
	TaskTypes []string `json:"task_types"`
}

// Period is an inclusive day range during which a developer cannot take work.
type Period struct {
	Developer string    `json:"developer"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

// Covers reports whether day falls inside the period, both ends included.
func (p Period) Covers(day time.Time) bool {
	return !day.Before(p.Start) && !day.After(p.End)
}

type Roster struct {
	Roles      map[string]Role
	Tasks      []Task
	Developers []Developer
	OnCalls    []Period
	Leaves     []Period
}
