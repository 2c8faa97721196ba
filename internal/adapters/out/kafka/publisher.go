// Package kafka publishes committed domain events to Kafka topics.
//
// Events are routed by the prefix of their type: "order.*" events go to the
// order topic and "stock.*" events to the stock topic. Every write passes
// through a circuit breaker so a dead broker fails fast instead of stalling
// each request after commit.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"printfarm/internal/core/domain/model/kernel"

	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker"
)

var (
	ErrUnavailable   = errors.New("event broker is unavailable")
	ErrUnroutedEvent = errors.New("no topic for event type")
)

type Config struct {
	Brokers    []string
	OrderTopic string
	StockTopic string

	BatchTimeout     time.Duration
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

func (c Config) withDefaults() Config {
	if c.BatchTimeout == 0 {
		c.BatchTimeout = 10 * time.Millisecond
	}
	if c.FailureThreshold == 0 {
		c.FailureThreshold = 5
	}
	if c.OpenTimeout == 0 {
		c.OpenTimeout = 30 * time.Second
	}
	return c
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Publisher struct {
	mu      sync.Mutex
	writers map[string]messageWriter
	routes  map[string]string
	breaker *gobreaker.CircuitBreaker
	logger  *slog.Logger
	newW    func(topic string) messageWriter
}

func NewPublisher(cfg Config, logger *slog.Logger) *Publisher {
	cfg = cfg.withDefaults()
	return newPublisher(cfg, logger, func(topic string) messageWriter {
		return &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: cfg.BatchTimeout,
			RequiredAcks: kafka.RequireOne,
		}
	})
}

func newPublisher(cfg Config, logger *slog.Logger, newWriter func(topic string) messageWriter) *Publisher {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "kafka-publisher"))

	settings := gobreaker.Settings{
		Name:    "kafka",
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				slog.String("name", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}

	return &Publisher{
		writers: make(map[string]messageWriter),
		routes: map[string]string{
			"order": cfg.OrderTopic,
			"stock": cfg.StockTopic,
		},
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
		newW:    newWriter,
	}
}

// envelope is the message value.
type envelope struct {
	ID          string             `json:"id"`
	Type        string             `json:"type"`
	AggregateID kernel.UUID        `json:"aggregateId"`
	OccurredAt  time.Time          `json:"occurredAt"`
	Data        kernel.DomainEvent `json:"data"`
}

// Publish writes the events, one batch per topic, keyed by aggregate id so
// events of one aggregate stay ordered within a partition.
func (p *Publisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	batches := make(map[string][]kafka.Message)
	topics := make([]string, 0, 2)

	var errList []error
	for _, e := range events {
		topic, err := p.topicFor(e.EventType())
		if err != nil {
			errList = append(errList, err)
			continue
		}
		msg, err := encode(e)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		if _, seen := batches[topic]; !seen {
			topics = append(topics, topic)
		}
		batches[topic] = append(batches[topic], msg)
	}

	for _, topic := range topics {
		if err := p.write(ctx, topic, batches[topic]); err != nil {
			errList = append(errList, err)
		}
	}

	return errors.Join(errList...)
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errList []error
	for topic, w := range p.writers {
		if err := w.Close(); err != nil {
			errList = append(errList, fmt.Errorf("close writer for %s: %w", topic, err))
		}
	}
	p.writers = make(map[string]messageWriter)
	return errors.Join(errList...)
}

func (p *Publisher) State() gobreaker.State {
	return p.breaker.State()
}

func (p *Publisher) topicFor(eventType string) (string, error) {
	prefix, _, _ := strings.Cut(eventType, ".")
	topic := p.routes[prefix]
	if topic == "" {
		return "", fmt.Errorf("%w: %s", ErrUnroutedEvent, eventType)
	}
	return topic, nil
}

func (p *Publisher) write(ctx context.Context, topic string, msgs []kafka.Message) error {
	w := p.writer(topic)
	_, err := p.breaker.Execute(func() (any, error) {
		return nil, w.WriteMessages(ctx, msgs...)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %s dropped %d messages: %w", ErrUnavailable, topic, len(msgs), err)
	}
	if err != nil {
		return fmt.Errorf("publish to topic %s: %w", topic, err)
	}
	return nil
}

func (p *Publisher) writer(topic string) messageWriter {
	p.mu.Lock()
	defer p.mu.Unlock()

	if w, ok := p.writers[topic]; ok {
		return w
	}
	w := p.newW(topic)
	p.writers[topic] = w
	return w
}

func encode(e kernel.DomainEvent) (kafka.Message, error) {
	value, err := json.Marshal(envelope{
		ID:          kernel.NewUUID().String(),
		Type:        e.EventType(),
		AggregateID: e.AggregateID(),
		OccurredAt:  e.OccurredAt(),
		Data:        e,
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal %s event: %w", e.EventType(), err)
	}

	return kafka.Message{
		Key:   []byte(e.AggregateID().String()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(e.EventType())},
			{Key: "content-type", Value: []byte("application/json")},
		},
		Time: e.OccurredAt(),
	}, nil
}
