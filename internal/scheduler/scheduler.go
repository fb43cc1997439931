package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"time"

	"team-timeline/internal/roster"
)

const (
	maxScheduleIterations = 3650
	maxEndDateDays        = 365
)

type Assignment struct {
	Task      string    `json:"task"`
	TaskType  string    `json:"task_type"`
	Developer string    `json:"developer"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Completed bool      `json:"completed"`
}

type Result struct {
	Start       time.Time       `json:"start"`
	Assignments []Assignment    `json:"assignments"`
	OnCalls     []roster.Period `json:"oncalls"`
	Leaves      []roster.Period `json:"leaves"`
	Unscheduled []string        `json:"unscheduled"`
}

type task struct {
	roster.Task
	assigned  []*developer
	devStart  map[string]time.Time
	started   bool
	start     time.Time
	end       time.Time
	completed bool
}

type developer struct {
	roster.Developer
	nextFree time.Time
}

type Scheduler struct {
	tasks      []*task
	byName     map[string]*task
	dropped    []string
	developers []*developer
	roles      map[string]roster.Role
	oncalls    []roster.Period
	leaves     []roster.Period
}

func New(r *roster.Roster) *Scheduler {
	s := &Scheduler{
		byName:  make(map[string]*task, len(r.Tasks)),
		roles:   r.Roles,
		oncalls: r.OnCalls,
		leaves:  r.Leaves,
	}
	for _, d := range r.Developers {
		s.developers = append(s.developers, &developer{Developer: d})
	}
	for _, t := range r.Tasks {
		if !s.hasMatchingDeveloper(t.Type) {
			s.dropped = append(s.dropped, t.Name)
			continue
		}
		tt := &task{Task: t}
		s.tasks = append(s.tasks, tt)
		s.byName[t.Name] = tt
	}
	sort.SliceStable(s.tasks, func(i, j int) bool {
		return s.tasks[i].Priority < s.tasks[j].Priority
	})
	return s
}

// Schedule assigns developers to tasks one working day at a time, starting on
// the calendar day of start, until every task is completed or the iteration
// limit is hit.
func (s *Scheduler) Schedule(ctx context.Context, start time.Time) (*Result, error) {
	day := startOfDay(start)
	for _, dev := range s.developers {
		dev.nextFree = day
	}
	slog.DebugContext(ctx, "Starting scheduling...", "start", day, "tasks", len(s.tasks))

	done := false
	for i := 0; i < maxScheduleIterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if s.step(ctx, day) {
			done = true
			break
		}
		day = addWorkdays(day, 1)
	}
	if !done {
		slog.WarnContext(ctx, "Max scheduling iterations reached", "last_day", day)
	}
	return s.result(startOfDay(start)), nil
}

func (s *Scheduler) step(ctx context.Context, day time.Time) bool {
	all := true
	for _, t := range s.tasks {
		if !s.process(ctx, t, day) {
			all = false
		}
	}
	return all
}

func (s *Scheduler) process(ctx context.Context, t *task, day time.Time) bool {
	if t.completed {
		return true
	}
	if !s.dependenciesCompleted(ctx, t) {
		return false
	}

	if available := s.availableDevelopers(ctx, t, day); len(available) > 0 {
		s.assign(ctx, t, available, day)
	}
	if t.started && !day.Before(t.end) {
		t.completed = true
		slog.DebugContext(ctx, "Task completed", "task", t.Name, "end", t.end)
	}
	return t.completed
}

func (s *Scheduler) dependenciesCompleted(ctx context.Context, t *task) bool {
	for _, dep := range t.Dependencies {
		d, ok := s.byName[dep]
		if !ok || !d.completed {
			slog.DebugContext(ctx, "Dependency not completed", "task", t.Name, "dependency", dep)
			return false
		}
	}
	return true
}

func (s *Scheduler) availableDevelopers(ctx context.Context, t *task, day time.Time) []*developer {
	var available []*developer
	for _, dev := range s.developers {
		switch {
		case !slices.Contains(dev.TaskTypes, t.Type):
		case day.Before(dev.nextFree):
		case s.onCall(dev.Name, day), s.onLeave(dev.Name, day):
		case slices.Contains(t.assigned, dev):
		default:
			available = append(available, dev)
		}
	}
	slog.DebugContext(ctx, "Found available developers", "task", t.Name, "day", day, "count", len(available))
	return available
}

func (s *Scheduler) assign(ctx context.Context, t *task, available []*developer, day time.Time) {
	if !t.started {
		t.started = true
		t.start = day
		t.devStart = make(map[string]time.Time)
	}

	slots := t.ParallelFactor - len(t.assigned)
	if slots <= 0 {
		return
	}
	fresh := available[:min(len(available), slots)]
	previous := t.assigned
	t.assigned = append(slices.Clone(previous), fresh...)
	for _, dev := range fresh {
		t.devStart[dev.Name] = day
		slog.DebugContext(ctx, "Assigned developer", "task", t.Name, "developer", dev.Name, "day", day)
	}

	// Effort already burnt by the developers that were on the task before today.
	daysWorked := day.Sub(t.start).Hours() / 24
	progressPerDay := 0.0
	for _, dev := range previous {
		if role, ok := s.roles[dev.Role]; ok {
			progressPerDay += role.Availability
		}
	}
	remaining := t.Effort - progressPerDay*daysWorked

	t.end = s.endDate(ctx, t.assigned, day, remaining)
	for _, dev := range t.assigned {
		dev.nextFree = t.end
	}
}

// endDate walks working days from day until the assigned developers have
// burnt through effort. Each day contributes the availability of every
// developer who is neither on call nor on leave.
func (s *Scheduler) endDate(ctx context.Context, devs []*developer, day time.Time, effort float64) time.Time {
	current := day
	remaining := effort
	walked := 0
	for remaining > 0 && walked < maxEndDateDays {
		if isWeekend(current) {
			current = current.AddDate(0, 0, 1)
			continue
		}
		remaining -= s.dailyProgress(devs, current)
		if remaining > 0 {
			current = current.AddDate(0, 0, 1)
		}
		walked++
	}
	if remaining > 0 {
		slog.WarnContext(ctx, "Effort not burnt within a year, capping end date", "from", day, "remaining", remaining)
		return day.AddDate(1, 0, 0)
	}
	return current
}

func (s *Scheduler) dailyProgress(devs []*developer, day time.Time) float64 {
	progress := 0.0
	for _, dev := range devs {
		if s.onCall(dev.Name, day) || s.onLeave(dev.Name, day) {
			continue
		}
		if role, ok := s.roles[dev.Role]; ok {
			progress += role.Availability
		}
	}
	return progress
}

func (s *Scheduler) onCall(name string, day time.Time) bool {
	return covered(s.oncalls, name, day)
}

func (s *Scheduler) onLeave(name string, day time.Time) bool {
	return covered(s.leaves, name, day)
}

func covered(periods []roster.Period, name string, day time.Time) bool {
	for _, p := range periods {
		if p.Developer == name && p.Covers(day) {
			return true
		}
	}
	return false
}

func (s *Scheduler) hasMatchingDeveloper(taskType string) bool {
	for _, dev := range s.developers {
		if slices.Contains(dev.TaskTypes, taskType) {
			return true
		}
	}
	return false
}

func (s *Scheduler) result(start time.Time) *Result {
	res := &Result{
		Start:       start,
		Assignments: []Assignment{},
		OnCalls:     slices.Clone(s.oncalls),
		Leaves:      slices.Clone(s.leaves),
		Unscheduled: slices.Clone(s.dropped),
	}
	if res.Unscheduled == nil {
		res.Unscheduled = []string{}
	}
	for _, t := range s.tasks {
		if !t.started {
			res.Unscheduled = append(res.Unscheduled, t.Name)
			continue
		}
		for _, dev := range t.assigned {
			res.Assignments = append(res.Assignments, Assignment{
				Task:      t.Name,
				TaskType:  t.Type,
				Developer: dev.Name,
				Start:     t.devStart[dev.Name],
				End:       t.end,
				Completed: t.completed,
			})
		}
	}
	return res
}

// Summary line used in logs.
func (r *Result) String() string {
	return fmt.Sprintf("start=%s assignments=%d unscheduled=%d",
		r.Start.Format(roster.DateLayout), len(r.Assignments), len(r.Unscheduled))
}
