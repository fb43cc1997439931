package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"team-timeline/internal/api"
	"team-timeline/internal/client"
	k "team-timeline/internal/kafka"
	"team-timeline/internal/roster"

	"github.com/segmentio/kafka-go"
)

// Steps:
// 1. Upload the demo roster to POST /upload
// 2. Read the schedules topic until the event for the new schedule shows up
// 3. Fetch GET /schedules/{id} and compare it with the upload response and the event
// 4. Check GET /schedules lists the schedule

const (
	baseURL = "http://localhost:8080"
	broker  = "localhost:9092"
	topic   = "schedules_generated"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	scheduleID, items := upload(ctx)
	fmt.Printf("Uploaded roster, schedule %s with %d timeline items\n", scheduleID, items)

	event, err := awaitEvent(ctx, scheduleID)
	if err != nil {
		panic(fmt.Errorf("schedule event not seen: %w", err))
	}
	fmt.Printf("Event: %+v\n", event)

	var schedule struct {
		ID    string           `json:"id"`
		Items []map[string]any `json:"items"`
	}
	getJSON(fmt.Sprintf("%s/schedules/%s", baseURL, scheduleID), &schedule)

	failed := false
	if len(schedule.Items) != items {
		fmt.Printf("Item count mismatch: upload returned %d, stored schedule has %d\n", items, len(schedule.Items))
		failed = true
	}
	if event.ItemCount != items {
		fmt.Printf("Item count mismatch: upload returned %d, event says %d\n", items, event.ItemCount)
		failed = true
	}

	var list struct {
		Schedules []struct {
			ID string `json:"id"`
		} `json:"schedules"`
	}
	getJSON(baseURL+"/schedules?limit=50", &list)
	listed := false
	for _, s := range list.Schedules {
		if s.ID == scheduleID {
			listed = true
		}
	}
	if !listed {
		fmt.Printf("Schedule %s missing from GET /schedules\n", scheduleID)
		failed = true
	}

	if failed {
		fmt.Println("E2E test FAILED")
		return
	}
	fmt.Println("E2E test completed")
}

func upload(ctx context.Context) (string, int) {
	form := client.Form{}
	for name, content := range roster.SampleFiles(time.Now()) {
		form.Files = append(form.Files, client.FormFile{Field: name, Name: name, Content: bytes.NewReader(content)})
	}

	h := client.New(client.Config{BaseURL: baseURL})
	res := h.Submit(ctx, form)
	if res.Kind != client.Success || res.StatusCode != http.StatusOK {
		panic(fmt.Errorf("POST /upload: HTTP %d: %s: %w", res.StatusCode, res.Kind, res.Err))
	}
	return res.Header.Get(api.ScheduleIDHeader), res.Widget.Items.Len()
}

func awaitEvent(ctx context.Context, scheduleID string) (k.ScheduleEvent, error) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       topic,
		StartOffset: kafka.FirstOffset,
	})
	defer reader.Close()

	for {
		m, err := reader.ReadMessage(ctx)
		if err != nil {
			return k.ScheduleEvent{}, err
		}
		if string(m.Key) != scheduleID {
			continue
		}
		var record k.StructuredRecord
		if err := json.Unmarshal(m.Value, &record); err != nil {
			return k.ScheduleEvent{}, err
		}
		if record.Payload.ScheduleID != scheduleID {
			return k.ScheduleEvent{}, errors.New("record key and payload disagree")
		}
		return record.Payload, nil
	}
}

func getJSON(url string, v any) {
	resp, err := http.Get(url)
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		panic(fmt.Errorf("GET %s: HTTP %d: %s", url, resp.StatusCode, raw))
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		panic(err)
	}
}
