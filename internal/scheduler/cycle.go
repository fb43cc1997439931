package scheduler

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"team-timeline/internal/roster"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

var ErrCyclicDependencies = errors.New("cyclic dependencies found")

// DetectCycle returns ErrCyclicDependencies naming every task that sits on a
// dependency cycle. Dependencies on unknown tasks are ignored.
func DetectCycle(tasks []roster.Task) error {
	const fn = "Scheduler:DetectCycle"

	g := simple.NewDirectedGraph()
	ids := make(map[string]int64, len(tasks))
	names := make(map[int64]string, len(tasks))
	for i, t := range tasks {
		if _, ok := ids[t.Name]; ok {
			continue
		}
		id := int64(i)
		ids[t.Name] = id
		names[id] = t.Name
		g.AddNode(simple.Node(id))
	}

	cyclic := make(map[string]bool)
	for _, t := range tasks {
		to := ids[t.Name]
		for _, dep := range t.Dependencies {
			from, ok := ids[dep]
			if !ok {
				continue
			}
			if from == to {
				cyclic[t.Name] = true
				continue
			}
			g.SetEdge(g.NewEdge(simple.Node(from), simple.Node(to)))
		}
	}

	if _, err := topo.Sort(g); err != nil {
		var unorderable topo.Unorderable
		if !errors.As(err, &unorderable) {
			return fmt.Errorf("%s:%w", fn, err)
		}
		for _, component := range unorderable {
			for _, n := range component {
				cyclic[names[n.ID()]] = true
			}
		}
	}
	if len(cyclic) == 0 {
		return nil
	}

	members := make([]string, 0, len(cyclic))
	for name := range cyclic {
		members = append(members, name)
	}
	sort.Strings(members)
	return fmt.Errorf("%s:%w: %s", fn, ErrCyclicDependencies, strings.Join(members, ", "))
}
