package roster

import (
	"context"
	"io"

	"golang.org/x/sync/errgroup"
)

// Source is one uploaded table. Name carries the original file name so the
// table format can be picked from its extension.
type Source struct {
	Name   string
	Reader io.Reader
}

type Sources struct {
	Roles      Source
	Tasks      Source
	Developers Source
	OnCalls    Source
	Leaves     Source
}

// Load parses the five roster tables concurrently and returns the first error.
func Load(ctx context.Context, src Sources) (*Roster, error) {
	r := &Roster{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := readSource(ctx, src.Roles)
		if err != nil {
			return err
		}
		r.Roles, err = ParseRoles(src.Roles.Name, rows)
		return err
	})
	g.Go(func() error {
		rows, err := readSource(ctx, src.Tasks)
		if err != nil {
			return err
		}
		r.Tasks, err = ParseTasks(src.Tasks.Name, rows)
		return err
	})
	g.Go(func() error {
		rows, err := readSource(ctx, src.Developers)
		if err != nil {
			return err
		}
		r.Developers, err = ParseDevelopers(src.Developers.Name, rows)
		return err
	})
	g.Go(func() error {
		rows, err := readSource(ctx, src.OnCalls)
		if err != nil {
			return err
		}
		r.OnCalls, err = ParsePeriods(src.OnCalls.Name, rows)
		return err
	})
	g.Go(func() error {
		rows, err := readSource(ctx, src.Leaves)
		if err != nil {
			return err
		}
		r.Leaves, err = ParsePeriods(src.Leaves.Name, rows)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return r, nil
}

func readSource(ctx context.Context, s Source) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadTable(s.Name, s.Reader)
}
