package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	k "team-timeline/internal/kafka"

	"github.com/segmentio/kafka-go"
)

var (
	ErrReadMessage  = errors.New("error reading message")
	ErrParseMessage = errors.New("error parsing message")
)

const hydrateReadTimeout = 5 * time.Second

type Config struct {
	Brokers       string
	ConsumerTopic string
}

type Cache interface {
	Get(scheduleID string) (k.ScheduleEvent, bool)
	Set(event k.ScheduleEvent)
	List(limit int) []k.ScheduleEvent
}

// ScheduleCache keeps the latest event per schedule. It is filled from the
// compacted schedules topic and by the API after each upload.
type ScheduleCache struct {
	mu      sync.RWMutex
	brokers string
	store   map[string]k.ScheduleEvent
	reader  k.Reader
}

// New returns a cache. Without brokers it stays purely in memory.
func New(cfg Config) *ScheduleCache {
	c := &ScheduleCache{
		store:   make(map[string]k.ScheduleEvent),
		brokers: cfg.Brokers,
	}
	if cfg.Brokers != "" {
		c.reader = kafka.NewReader(kafka.ReaderConfig{
			Brokers:     []string{cfg.Brokers},
			Topic:       cfg.ConsumerTopic,
			StartOffset: kafka.FirstOffset,
			// No consumer group: every instance reads the whole topic.
		})
	}
	return c
}

func (c *ScheduleCache) Get(scheduleID string) (k.ScheduleEvent, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	event, exists := c.store[scheduleID]
	return event, exists
}

func (c *ScheduleCache) Set(event k.ScheduleEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[event.ScheduleID] = event
}

// List returns up to limit events, newest first. A limit of zero or less
// returns everything.
func (c *ScheduleCache) List(limit int) []k.ScheduleEvent {
	c.mu.RLock()
	events := make([]k.ScheduleEvent, 0, len(c.store))
	for _, event := range c.store {
		events = append(events, event)
	}
	c.mu.RUnlock()

	sort.Slice(events, func(i, j int) bool {
		if events[i].CreatedAt == events[j].CreatedAt {
			return events[i].ScheduleID < events[j].ScheduleID
		}
		return events[i].CreatedAt > events[j].CreatedAt
	})
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events
}

func (c *ScheduleCache) Close(ctx context.Context) {
	if c.reader == nil {
		return
	}
	slog.InfoContext(ctx, "Closing cache resources...")
	c.reader.Close()
}

func (c *ScheduleCache) waitForBroker(ctx context.Context, maxWait time.Duration, interval time.Duration) error {
	deadline := time.Now().Add(maxWait)
	for time.Now().Before(deadline) {
		dialCtx, cancel := context.WithTimeout(ctx, interval)
		conn, err := kafka.DialContext(dialCtx, "tcp", c.brokers)
		cancel()
		if err == nil {
			conn.Close()
			slog.InfoContext(ctx, "Broker is ready", "broker", c.brokers)
			return nil
		}
		slog.InfoContext(ctx, "Broker not ready", "broker", c.brokers, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
	return fmt.Errorf("broker not reachable after %s", maxWait)
}

// Hydrate replays the topic until the reader has caught up. Blocking.
func (c *ScheduleCache) Hydrate(ctx context.Context) {
	if c.reader == nil {
		return
	}

	slog.InfoContext(ctx, "Pinging broker to ensure connectivity...")
	if err := c.waitForBroker(ctx, time.Second*30, time.Second*5); err != nil {
		slog.ErrorContext(ctx, "Broker failed to respond", "error", err)
		return
	}

	slog.InfoContext(ctx, "Starting cache hydration...")
	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Cache hydrate stopped...")
			return
		default:
			done, err := c.ReadMessage(ctx)
			if errors.Is(err, ErrParseMessage) {
				slog.ErrorContext(ctx, "Skipping unreadable record", "error", err)
				continue
			}
			if err != nil {
				slog.ErrorContext(ctx, "Cache hydration aborted", "error", err)
				return
			}
			if done {
				slog.InfoContext(ctx, "Cache hydration complete", "schedules", len(c.List(0)))
				return
			}
		}
	}
}

// ReadMessage consumes one record during hydration. done is true once the
// reader has no lag left or no record arrives within the read timeout.
func (c *ScheduleCache) ReadMessage(ctx context.Context) (bool, error) {
	const fn = "ScheduleCache:ReadMessage"
	readCtx, cancel := context.WithTimeout(ctx, hydrateReadTimeout)
	defer cancel()

	m, err := c.reader.ReadMessage(readCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return true, nil
		}
		return false, fmt.Errorf("%s:%w:%w", fn, ErrReadMessage, err)
	}
	if err := c.apply(m); err != nil {
		return false, fmt.Errorf("%s:%w", fn, err)
	}
	return c.reader.Lag() == 0, nil
}

// ProcessMessage blocks for the next record and applies it. It lets a worker
// keep the cache current after hydration.
func (c *ScheduleCache) ProcessMessage(ctx context.Context) error {
	const fn = "ScheduleCache:ProcessMessage"
	m, err := c.reader.ReadMessage(ctx)
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrReadMessage, err)
	}
	if err := c.apply(m); err != nil {
		return fmt.Errorf("%s:%w", fn, err)
	}
	return nil
}

func (c *ScheduleCache) apply(m kafka.Message) error {
	var record k.StructuredRecord
	if err := json.Unmarshal(m.Value, &record); err != nil {
		return fmt.Errorf("%w:%w", ErrParseMessage, err)
	}
	c.Set(record.Payload)
	return nil
}
