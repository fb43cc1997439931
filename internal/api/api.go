package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"team-timeline/internal/cache"
	"team-timeline/internal/db"
	k "team-timeline/internal/kafka"
	"team-timeline/internal/report"
	"team-timeline/internal/roster"
	"team-timeline/internal/scheduler"
	"team-timeline/internal/timeline"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	DefaultMaxUploadBytes = 32 << 20
	multipartMemory       = 8 << 20
	defaultListLimit      = 20
)

type repository interface {
	SaveRun(ctx context.Context, run db.ScheduleRun) error
	LoadRun(ctx context.Context, id string) (*db.ScheduleRun, error)
}

type publisher interface {
	Publish(ctx context.Context, event k.ScheduleEvent) error
}

type API struct {
	DB             repository
	publisher      publisher
	cache          cache.Cache
	maxUploadBytes int64
	now            func() time.Time
	newID          func() string
}

type Config struct {
	// DB stores schedule runs. Defaults to an in-memory store.
	DB repository
	// Publisher announces new schedules. Nil disables events.
	Publisher      publisher
	Cache          cache.Cache
	MaxUploadBytes int64
	Now            func() time.Time
	NewID          func() string
}

func New(cfg Config) *API {
	a := &API{
		DB:             cfg.DB,
		publisher:      cfg.Publisher,
		cache:          cfg.Cache,
		maxUploadBytes: cfg.MaxUploadBytes,
		now:            cfg.Now,
		newID:          cfg.NewID,
	}
	if a.DB == nil {
		a.DB = db.NewMemory()
	}
	if a.cache == nil {
		a.cache = cache.New(cache.Config{})
	}
	if a.maxUploadBytes <= 0 {
		a.maxUploadBytes = DefaultMaxUploadBytes
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.newID == nil {
		a.newID = uuid.NewString
	}
	return a
}

// Upload schedules the uploaded roster and answers with the timeline items.
func (a *API) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if r.ContentLength > a.maxUploadBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "Upload too large")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, a.maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Upload too large")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	sources, closeAll, err := formSources(r)
	defer closeAll()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rost, err := roster.Load(ctx, sources)
	if err != nil {
		slog.InfoContext(ctx, "Rejected roster upload", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := scheduler.DetectCycle(rost.Tasks); err != nil {
		slog.InfoContext(ctx, "Rejected roster upload", "error", err)
		writeError(w, http.StatusBadRequest, "Cyclic dependencies found")
		return
	}

	res, err := scheduler.New(rost).Schedule(ctx, a.now())
	if err != nil {
		slog.ErrorContext(ctx, "Scheduling aborted", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to schedule tasks")
		return
	}
	items := timeline.FromResult(res)

	id, err := a.record(ctx, res, items)
	if err != nil {
		slog.ErrorContext(ctx, "Error storing schedule", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to store schedule")
		return
	}
	slog.InfoContext(ctx, "Schedule generated", "schedule_id", id, "result", res.String())

	w.Header().Set(ScheduleIDHeader, id)
	writeJSON(w, http.StatusOK, items)
}

func formSources(r *http.Request) (roster.Sources, func(), error) {
	var closers []func() error
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	found := make([]roster.Source, 0, len(uploadFields))
	for _, f := range uploadFields {
		file, header, err := r.FormFile(f.Field)
		if err != nil {
			return roster.Sources{}, closeAll, fmt.Errorf("Missing %s file", f.Label)
		}
		closers = append(closers, file.Close)
		found = append(found, roster.Source{Name: header.Filename, Reader: file})
	}
	return roster.Sources{
		Roles:      found[0],
		Tasks:      found[1],
		Developers: found[2],
		OnCalls:    found[3],
		Leaves:     found[4],
	}, closeAll, nil
}

// record stores the run, refreshes the cache and publishes the event. Only a
// storage failure is fatal.
func (a *API) record(ctx context.Context, res *scheduler.Result, items []timeline.Item) (string, error) {
	const fn = "API:record"
	payload, err := json.Marshal(res)
	if err != nil {
		return "", fmt.Errorf("%s:%w", fn, err)
	}

	createdAt := a.now().UTC()
	run := db.ScheduleRun{
		ID:        a.newID(),
		CreatedAt: createdAt,
		StartDate: res.Start,
		Result:    payload,
	}
	if err := a.DB.SaveRun(ctx, run); err != nil {
		return "", fmt.Errorf("%s:%w", fn, err)
	}

	sum := report.Summarize(res)
	event := k.ScheduleEvent{
		ScheduleID:   run.ID,
		CreatedAt:    createdAt.UnixMilli(),
		StartDate:    res.Start.Format(roster.DateLayout),
		TaskCount:    sum.TaskCount,
		ItemCount:    len(items),
		MakespanDays: sum.MakespanDays,
	}
	a.cache.Set(event)
	if a.publisher != nil {
		if err := a.publisher.Publish(ctx, event); err != nil {
			slog.ErrorContext(ctx, "Error publishing schedule event", "schedule_id", run.ID, "error", err)
		}
	}
	return run.ID, nil
}

func (a *API) ListSchedules(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	resp := ListSchedulesResponse{Schedules: []ScheduleListEntry{}}
	for _, event := range a.cache.List(limit) {
		resp.Schedules = append(resp.Schedules, ScheduleListEntry{
			ID:           event.ScheduleID,
			CreatedAt:    time.UnixMilli(event.CreatedAt).UTC().Format(time.RFC3339),
			StartDate:    event.StartDate,
			TaskCount:    event.TaskCount,
			ItemCount:    event.ItemCount,
			MakespanDays: event.MakespanDays,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) GetSchedule(w http.ResponseWriter, r *http.Request) {
	run, res, ok := a.loadSchedule(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, GetScheduleResponse{
		ID:          run.ID,
		CreatedAt:   run.CreatedAt.UTC().Format(time.RFC3339),
		StartDate:   res.Start.Format(roster.DateLayout),
		Items:       timeline.FromResult(res),
		Summary:     report.Summarize(res),
		Unscheduled: res.Unscheduled,
	})
}

func (a *API) GetScheduleReport(w http.ResponseWriter, r *http.Request) {
	run, res, ok := a.loadSchedule(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(report.HTML("Schedule "+run.ID, res))
}

func (a *API) ExportSchedule(w http.ResponseWriter, r *http.Request) {
	run, res, ok := a.loadSchedule(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="schedule-%s.csv"`, run.ID))
	if err := report.WriteCSV(w, res); err != nil {
		slog.ErrorContext(r.Context(), "Error writing schedule export", "schedule_id", run.ID, "error", err)
	}
}

func (a *API) loadSchedule(w http.ResponseWriter, r *http.Request) (*db.ScheduleRun, *scheduler.Result, bool) {
	id := chi.URLParam(r, "schedule_id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid schedule id")
		return nil, nil, false
	}

	run, err := a.DB.LoadRun(r.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "schedule not found")
			return nil, nil, false
		}
		slog.ErrorContext(r.Context(), "Error loading schedule", "schedule_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, nil, false
	}

	var res scheduler.Result
	if err := json.Unmarshal(run.Result, &res); err != nil {
		slog.ErrorContext(r.Context(), "Stored schedule is unreadable", "schedule_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "stored schedule is unreadable")
		return nil, nil, false
	}
	return run, &res, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
