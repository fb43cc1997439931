package api

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed web
var webFiles embed.FS

// Routes mounts the upload page, the upload endpoint and the schedule history.
func (a *API) Routes() http.Handler {
	site, err := fs.Sub(webFiles, "web")
	if err != nil {
		panic(err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	index := func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, site, "index.html")
	}
	r.Get("/", index)
	r.Get("/index", index)
	r.Handle("/static/*", http.FileServerFS(site))

	r.Post("/upload", a.Upload)
	r.Route("/schedules", func(r chi.Router) {
		r.Get("/", a.ListSchedules)
		r.Get("/{schedule_id}", a.GetSchedule)
		r.Get("/{schedule_id}/report", a.GetScheduleReport)
		r.Get("/{schedule_id}/schedule.csv", a.ExportSchedule)
	})
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.InfoContext(r.Context(), "Request served",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
