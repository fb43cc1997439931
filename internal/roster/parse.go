package roster

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidRow     = errors.New("invalid row")
	ErrMissingColumns = errors.New("missing columns")
	ErrDuplicateTask  = errors.New("duplicate task name")
	ErrParallelFactor = errors.New("parallel factor must be at least 1")
)

// Task columns: name, type, priority, effort, parallel factor, dependencies,
// needs frontend, needs qa. The last three are optional.
const (
	minRoleColumns      = 2
	minTaskColumns      = 5
	minDeveloperColumns = 3
	minPeriodColumns    = 3
)

func rowError(fn, file string, index int, err error) error {
	// +2: one for the header, one for 1-based numbering.
	return fmt.Errorf("%s:%w:%s row %d: %w", fn, ErrInvalidRow, file, index+2, err)
}

func ParseRoles(file string, rows [][]string) (map[string]Role, error) {
	const fn = "Roster:ParseRoles"
	roles := make(map[string]Role, len(rows))
	for i, row := range rows {
		if len(row) < minRoleColumns {
			return nil, rowError(fn, file, i, ErrMissingColumns)
		}
		availability, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, rowError(fn, file, i, err)
		}
		name := strings.TrimSpace(row[0])
		roles[name] = Role{Name: name, Availability: availability}
	}
	return roles, nil
}

// ParseTasks builds the task list, inflating effort by (10*parallel+40)% and
// appending the derived Frontend and QA tasks a row asks for.
func ParseTasks(file string, rows [][]string) ([]Task, error) {
	const fn = "Roster:ParseTasks"
	var tasks []Task
	seen := make(map[string]bool)
	add := func(i int, t Task) error {
		if seen[t.Name] {
			return rowError(fn, file, i, fmt.Errorf("%w: %s", ErrDuplicateTask, t.Name))
		}
		seen[t.Name] = true
		tasks = append(tasks, t)
		return nil
	}

	for i, row := range rows {
		if len(row) < minTaskColumns {
			return nil, rowError(fn, file, i, ErrMissingColumns)
		}
		priority, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil {
			return nil, rowError(fn, file, i, err)
		}
		effort, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
		if err != nil {
			return nil, rowError(fn, file, i, err)
		}
		parallel, err := strconv.Atoi(strings.TrimSpace(row[4]))
		if err != nil {
			return nil, rowError(fn, file, i, err)
		}
		if parallel < 1 {
			return nil, rowError(fn, file, i, ErrParallelFactor)
		}

		name := strings.TrimSpace(row[0])
		inflation := 1.0 + float64(10*parallel+40)/100.0
		main := Task{
			Name:           name,
			Type:           strings.TrimSpace(row[1]),
			Priority:       priority,
			Effort:         math.Round(effort * inflation),
			ParallelFactor: parallel,
			Dependencies:   splitList(cell(row, 5)),
		}
		if err := add(i, main); err != nil {
			return nil, err
		}

		needsFE := flag(cell(row, 6))
		needsQA := flag(cell(row, 7))
		sideEffort := math.Round(effort * 0.25 * inflation)

		var feName string
		if needsFE {
			feName = name + "_" + TypeFrontend
			if err := add(i, Task{
				Name:           feName,
				Type:           TypeFrontend,
				Priority:       priority,
				Effort:         sideEffort,
				ParallelFactor: 1,
				Dependencies:   []string{name},
			}); err != nil {
				return nil, err
			}
		}
		if needsQA {
			deps := []string{name}
			if needsFE {
				deps = append(deps, feName)
			}
			if err := add(i, Task{
				Name:           name + "_" + TypeQA,
				Type:           TypeQA,
				Priority:       priority,
				Effort:         sideEffort,
				ParallelFactor: 1,
				Dependencies:   deps,
			}); err != nil {
				return nil, err
			}
		}
	}
	return tasks, nil
}

func ParseDevelopers(file string, rows [][]string) ([]Developer, error) {
	const fn = "Roster:ParseDevelopers"
	developers := make([]Developer, 0, len(rows))
	for i, row := range rows {
		if len(row) < minDeveloperColumns {
			return nil, rowError(fn, file, i, ErrMissingColumns)
		}
		developers = append(developers, Developer{
			Name:      strings.TrimSpace(row[0]),
			Role:      strings.TrimSpace(row[1]),
			TaskTypes: splitList(row[2]),
		})
	}
	return developers, nil
}

// ParsePeriods reads developer, start, end rows as used by the on-call and
// leave uploads.
func ParsePeriods(file string, rows [][]string) ([]Period, error) {
	const fn = "Roster:ParsePeriods"
	periods := make([]Period, 0, len(rows))
	for i, row := range rows {
		if len(row) < minPeriodColumns {
			return nil, rowError(fn, file, i, ErrMissingColumns)
		}
		start, err := time.Parse(DateLayout, strings.TrimSpace(row[1]))
		if err != nil {
			return nil, rowError(fn, file, i, err)
		}
		end, err := time.Parse(DateLayout, strings.TrimSpace(row[2]))
		if err != nil {
			return nil, rowError(fn, file, i, err)
		}
		periods = append(periods, Period{
			Developer: strings.TrimSpace(row[0]),
			Start:     start,
			End:       end,
		})
	}
	return periods, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func flag(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
