package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gilboash/printlink/internal/metrics"
	"github.com/gilboash/printlink/internal/store"
)

// WatchSource is the store-side half the publisher consumes.
type WatchSource interface {
	Watch(fn func(store.Event)) func()
}

type Config struct {
	Topic       string
	BufferSize  int
	MaxAttempts int
	RetryDelay  time.Duration
}

// ChangeEvent is the wire shape of one document mutation on the feed.
type ChangeEvent struct {
	Type       store.EventType `json:"type"`
	Collection string          `json:"collection"`
	Path       string          `json:"path"`
	ID         string          `json:"id"`
	Data       store.Document  `json:"data"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Publisher bridges the store's change feed onto the event broker. Events
// buffer in a channel between the watch callback and the send loop; a full
// buffer drops the event rather than stalling store writes.
type Publisher struct {
	source   WatchSource
	producer Producer
	config   Config
	log      *zap.Logger

	events     chan store.Event
	shutdownCh chan struct{}
	stopOnce   sync.Once
}

func NewPublisher(source WatchSource, producer Producer, config Config, log *zap.Logger) *Publisher {
	if config.BufferSize <= 0 {
		config.BufferSize = 256
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 3
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = 200 * time.Millisecond
	}
	return &Publisher{
		source:     source,
		producer:   producer,
		config:     config,
		log:        log,
		events:     make(chan store.Event, config.BufferSize),
		shutdownCh: make(chan struct{}),
	}
}

// Run blocks until the context is cancelled or Shutdown is called, then
// drains the buffer and closes the producer.
func (p *Publisher) Run(ctx context.Context) error {
	cancelWatch := p.source.Watch(p.enqueue)
	p.log.Info("change event publisher started", zap.String("topic", p.config.Topic))

	for {
		select {
		case evt := <-p.events:
			p.publish(ctx, evt)
		case <-ctx.Done():
			cancelWatch()
			p.drain()
			return p.producer.Close()
		case <-p.shutdownCh:
			cancelWatch()
			p.drain()
			return p.producer.Close()
		}
	}
}

// Shutdown stops Run; safe to call more than once.
func (p *Publisher) Shutdown() {
	p.stopOnce.Do(func() {
		close(p.shutdownCh)
	})
}

func (p *Publisher) enqueue(evt store.Event) {
	select {
	case p.events <- evt:
	default:
		metrics.EventPublishFailuresTotal.Inc()
		p.log.Warn("change event buffer full, dropping event", zap.String("path", evt.Path))
	}
}

func (p *Publisher) drain() {
	for {
		select {
		case evt := <-p.events:
			p.publish(context.Background(), evt)
		default:
			return
		}
	}
}

func (p *Publisher) publish(ctx context.Context, evt store.Event) {
	payload, err := json.Marshal(ChangeEvent{
		Type:       evt.Type,
		Collection: evt.Collection,
		Path:       evt.Path,
		ID:         evt.ID,
		Data:       evt.Snapshot.Data,
		UpdatedAt:  evt.Snapshot.UpdatedAt,
	})
	if err != nil {
		p.log.Error("failed to marshal change event", zap.String("path", evt.Path), zap.Error(err))
		return
	}

	key := []byte(evt.Path)
	for attempt := 1; attempt <= p.config.MaxAttempts; attempt++ {
		err = p.producer.SendMessage(ctx, p.config.Topic, key, payload)
		if err == nil {
			metrics.EventsPublishedTotal.Inc()
			return
		}
		p.log.Warn("failed to publish change event",
			zap.String("path", evt.Path),
			zap.Int("attempt", attempt),
			zap.Error(err))

		select {
		case <-time.After(p.config.RetryDelay):
		case <-ctx.Done():
			return
		}
	}

	metrics.EventPublishFailuresTotal.Inc()
	p.log.Error("dropping change event after max attempts",
		zap.String("path", evt.Path),
		zap.Int("attempts", p.config.MaxAttempts))
}
