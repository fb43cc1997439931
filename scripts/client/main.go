package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"team-timeline/internal/api"
	"team-timeline/internal/client"
	"team-timeline/internal/roster"
)

// Writes the demo roster to -out and, unless -write-only is set, uploads it
// to a running server and fetches the stored schedule back.
func main() {
	baseURL := flag.String("server", "http://localhost:8080", "server base URL")
	outDir := flag.String("out", "sample", "directory for the generated roster files")
	writeOnly := flag.Bool("write-only", false, "only write the roster files")
	flag.Parse()

	files := roster.SampleFiles(time.Now())
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		panic(err)
	}
	for name, content := range files {
		path := filepath.Join(*outDir, name)
		if err := os.WriteFile(path, content, 0o644); err != nil {
			panic(err)
		}
		fmt.Println("Wrote", path)
	}
	if *writeOnly {
		return
	}

	// 1. POST /upload
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	form := client.Form{}
	for _, name := range names {
		form.Files = append(form.Files, client.FormFile{Field: name, Name: name, Content: bytes.NewReader(files[name])})
	}

	h := client.New(client.Config{
		BaseURL:  *baseURL,
		Renderer: client.TextRenderer{Out: os.Stdout},
		Notifier: client.NotifierFunc(func(msg string) {
			fmt.Println("Alert:", msg)
		}),
	})
	res := h.Submit(context.Background(), form)
	fmt.Println("POST /upload status:", res.StatusCode, "result:", res.Kind)
	if res.Kind != client.Success {
		return
	}
	scheduleID := res.Header.Get(api.ScheduleIDHeader)
	fmt.Printf("Timeline items: %d, schedule id: %s\n", res.Widget.Items.Len(), scheduleID)

	// 2. GET /schedules/{id}
	resp, err := http.Get(fmt.Sprintf("%s/schedules/%s", *baseURL, scheduleID))
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()
	var schedule struct {
		ID          string         `json:"id"`
		StartDate   string         `json:"start_date"`
		Summary     map[string]any `json:"summary"`
		Unscheduled []string       `json:"unscheduled"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&schedule); err != nil {
		panic(err)
	}
	fmt.Println("GET /schedules/"+scheduleID, "summary:", schedule.Summary, "unscheduled:", schedule.Unscheduled)
	fmt.Printf("Report: %s/schedules/%s/report\n", *baseURL, scheduleID)
}
