package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/pgxscan"
)

var (
	ErrInsertFailed = errors.New("insert operation failed")
	ErrSelectFailed = errors.New("select operation failed")
	ErrNotFound     = errors.New("schedule run not found")
)

func (db *DB) SaveRun(ctx context.Context, run ScheduleRun) error {
	const fn = "DB:SaveRun"
	_, err := db.pool.Exec(ctx, `
		INSERT INTO schedule_runs (
			id,
			created_at,
			start_date,
			result
		) VALUES ($1, $2, $3, $4)
	`, run.ID, run.CreatedAt, run.StartDate, run.Result)
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrInsertFailed, err)
	}
	return nil
}

func (db *DB) LoadRun(ctx context.Context, id string) (*ScheduleRun, error) {
	const fn = "DB:LoadRun"
	var run ScheduleRun
	err := pgxscan.Get(ctx, db.pool, &run, `
		SELECT
			id,
			created_at,
			start_date,
			result
		FROM schedule_runs
		WHERE id = $1
	`, id)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("%s:%w", fn, ErrNotFound)
		}
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrSelectFailed, err)
	}
	return &run, nil
}
