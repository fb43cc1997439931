package scheduler

import (
	"context"
	"testing"
	"time"

	"team-timeline/internal/roster"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func baseRoster() *roster.Roster {
	return &roster.Roster{
		Roles: map[string]roster.Role{
			"Senior": {Name: "Senior", Availability: 1.0},
		},
		Developers: []roster.Developer{
			{Name: "Dev1", Role: "Senior", TaskTypes: []string{"Backend"}},
		},
	}
}

func Test_Schedule(t *testing.T) {
	cases := []struct {
		name                string
		setup               func(*roster.Roster)
		start               time.Time
		expectedAssignments []Assignment
		expectedUnscheduled []string
	}{
		{
			name: "single task",
			setup: func(r *roster.Roster) {
				r.Tasks = []roster.Task{{Name: "API", Type: "Backend", Priority: 1, Effort: 2, ParallelFactor: 1}}
			},
			start: day(1).Add(15 * time.Hour),
			expectedAssignments: []Assignment{
				{Task: "API", TaskType: "Backend", Developer: "Dev1", Start: day(1), End: day(2), Completed: true},
			},
			expectedUnscheduled: []string{},
		},
		{
			name: "dependency waits and end date skips the weekend",
			setup: func(r *roster.Roster) {
				r.Tasks = []roster.Task{
					{Name: "B", Type: "Backend", Priority: 2, Effort: 1, ParallelFactor: 1, Dependencies: []string{"A"}},
					{Name: "A", Type: "Backend", Priority: 1, Effort: 3, ParallelFactor: 1},
				}
			},
			start: day(4),
			expectedAssignments: []Assignment{
				{Task: "A", TaskType: "Backend", Developer: "Dev1", Start: day(4), End: day(8), Completed: true},
				{Task: "B", TaskType: "Backend", Developer: "Dev1", Start: day(8), End: day(8), Completed: true},
			},
			expectedUnscheduled: []string{},
		},
		{
			name: "leave delays the start",
			setup: func(r *roster.Roster) {
				r.Tasks = []roster.Task{{Name: "API", Type: "Backend", Priority: 1, Effort: 1, ParallelFactor: 1}}
				r.Leaves = []roster.Period{{Developer: "Dev1", Start: day(1), End: day(2)}}
			},
			start: day(1),
			expectedAssignments: []Assignment{
				{Task: "API", TaskType: "Backend", Developer: "Dev1", Start: day(3), End: day(3), Completed: true},
			},
			expectedUnscheduled: []string{},
		},
		{
			name: "parallel developers share the effort",
			setup: func(r *roster.Roster) {
				r.Developers = append(r.Developers, roster.Developer{Name: "Dev2", Role: "Senior", TaskTypes: []string{"Backend"}})
				r.Tasks = []roster.Task{{Name: "API", Type: "Backend", Priority: 1, Effort: 4, ParallelFactor: 2}}
			},
			start: day(1),
			expectedAssignments: []Assignment{
				{Task: "API", TaskType: "Backend", Developer: "Dev1", Start: day(1), End: day(2), Completed: true},
				{Task: "API", TaskType: "Backend", Developer: "Dev2", Start: day(1), End: day(2), Completed: true},
			},
			expectedUnscheduled: []string{},
		},
		{
			name: "on call blocks the assignment",
			setup: func(r *roster.Roster) {
				r.Tasks = []roster.Task{{Name: "API", Type: "Backend", Priority: 1, Effort: 1, ParallelFactor: 1}}
				r.OnCalls = []roster.Period{{Developer: "Dev1", Start: day(1), End: day(3)}}
			},
			start: day(1),
			expectedAssignments: []Assignment{
				{Task: "API", TaskType: "Backend", Developer: "Dev1", Start: day(4), End: day(4), Completed: true},
			},
			expectedUnscheduled: []string{},
		},
		{
			name: "late joiner keeps the task start and shares the remaining effort",
			setup: func(r *roster.Roster) {
				r.Developers = append(r.Developers, roster.Developer{Name: "Dev2", Role: "Senior", TaskTypes: []string{"Backend"}})
				r.Tasks = []roster.Task{{Name: "API", Type: "Backend", Priority: 1, Effort: 4, ParallelFactor: 2}}
				r.Leaves = []roster.Period{{Developer: "Dev2", Start: day(1), End: day(1)}}
			},
			start: day(1),
			expectedAssignments: []Assignment{
				{Task: "API", TaskType: "Backend", Developer: "Dev1", Start: day(1), End: day(3), Completed: true},
				{Task: "API", TaskType: "Backend", Developer: "Dev2", Start: day(2), End: day(3), Completed: true},
			},
			expectedUnscheduled: []string{},
		},
		{
			name: "zero availability caps the end date at one year",
			setup: func(r *roster.Roster) {
				r.Roles["Senior"] = roster.Role{Name: "Senior", Availability: 0}
				r.Tasks = []roster.Task{{Name: "API", Type: "Backend", Priority: 1, Effort: 1, ParallelFactor: 1}}
			},
			start: day(1),
			expectedAssignments: []Assignment{
				{Task: "API", TaskType: "Backend", Developer: "Dev1", Start: day(1), End: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Completed: true},
			},
			expectedUnscheduled: []string{},
		},
		{
			name: "unmatched type and unknown dependency stay unscheduled",
			setup: func(r *roster.Roster) {
				r.Tasks = []roster.Task{
					{Name: "Design", Type: "Frontend", Priority: 1, Effort: 1, ParallelFactor: 1},
					{Name: "API", Type: "Backend", Priority: 1, Effort: 1, ParallelFactor: 1, Dependencies: []string{"Ghost"}},
				}
			},
			start:               day(1),
			expectedAssignments: []Assignment{},
			expectedUnscheduled: []string{"Design", "API"},
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			r := baseRoster()
			tt.setup(r)

			res, err := New(r).Schedule(context.Background(), tt.start)
			require.NoError(t, err)
			assert.Equal(t, startOfDay(tt.start), res.Start)
			assert.Equal(t, tt.expectedAssignments, res.Assignments)
			assert.Equal(t, tt.expectedUnscheduled, res.Unscheduled)
		})
	}
}

func Test_Schedule_Cancelled(t *testing.T) {
	r := baseRoster()
	r.Tasks = []roster.Task{{Name: "API", Type: "Backend", Priority: 1, Effort: 1, ParallelFactor: 1}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(r).Schedule(ctx, day(1))
	assert.ErrorIs(t, err, context.Canceled)
}

func Test_DetectCycle(t *testing.T) {
	cases := []struct {
		name        string
		tasks       []roster.Task
		expectedErr error
		expectedMsg string
	}{
		{
			name: "acyclic",
			tasks: []roster.Task{
				{Name: "A"},
				{Name: "B", Dependencies: []string{"A"}},
				{Name: "C", Dependencies: []string{"A", "B", "Missing"}},
			},
		},
		{
			name: "two task loop",
			tasks: []roster.Task{
				{Name: "A", Dependencies: []string{"B"}},
				{Name: "B", Dependencies: []string{"A"}},
				{Name: "C"},
			},
			expectedErr: ErrCyclicDependencies,
			expectedMsg: "A, B",
		},
		{
			name: "self dependency",
			tasks: []roster.Task{
				{Name: "A", Dependencies: []string{"A"}},
			},
			expectedErr: ErrCyclicDependencies,
			expectedMsg: "A",
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			err := DetectCycle(tt.tasks)
			if tt.expectedErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Contains(t, err.Error(), tt.expectedMsg)
		})
	}
}

func Test_addWorkdays(t *testing.T) {
	// 2024-01-05 is a Friday.
	assert.Equal(t, day(8), addWorkdays(day(5), 1))
	assert.Equal(t, day(2), addWorkdays(day(1), 1))
	assert.True(t, isWeekend(day(6)))
	assert.False(t, isWeekend(day(8)))
}
