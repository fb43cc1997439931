package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"

	"github.com/segmentio/kafka-go"
)

var (
	ErrDialBroker  = errors.New("error dialing broker")
	ErrCreateTopic = errors.New("error creating topic")
)

type topicCreator interface {
	CreateTopics(topics ...kafka.TopicConfig) error
}

// CompactedTopic describes the schedules topic. The cache rebuilds itself
// from this topic, so it must keep the latest record per key.
func CompactedTopic(name string) kafka.TopicConfig {
	return kafka.TopicConfig{
		Topic:             name,
		NumPartitions:     1,
		ReplicationFactor: 1,
		ConfigEntries: []kafka.ConfigEntry{
			{ConfigName: "cleanup.policy", ConfigValue: "compact"},
		},
	}
}

// EnsureTopic creates the topic with cleanup.policy=compact through the
// cluster controller. An existing topic is left untouched.
func EnsureTopic(ctx context.Context, cfg Config) error {
	const fn = "Kafka:EnsureTopic"

	broker, _, _ := strings.Cut(cfg.Brokers, ",")
	conn, err := kafka.DialContext(ctx, "tcp", strings.TrimSpace(broker))
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrDialBroker, err)
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrDialBroker, err)
	}
	ctrlConn, err := kafka.DialContext(ctx, "tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrDialBroker, err)
	}
	defer ctrlConn.Close()

	if err := createTopic(ctrlConn, CompactedTopic(cfg.Topic)); err != nil {
		return fmt.Errorf("%s:%w", fn, err)
	}
	slog.InfoContext(ctx, "Topic ready", "topic", cfg.Topic, "cleanup_policy", "compact")
	return nil
}

func createTopic(c topicCreator, topic kafka.TopicConfig) error {
	err := c.CreateTopics(topic)
	if err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		return fmt.Errorf("%w:%w", ErrCreateTopic, err)
	}
	return nil
}
