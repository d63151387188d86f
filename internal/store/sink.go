package store

import (
	"context" // Context for Redis operations
	"errors"  // Sentinel for a refused enqueue
	"strconv" // Integer field formatting
	"time"    // Publish attempt timeout

	"github.com/Jimmyweng006/User-Points-Service-Backend-Homework/internal/domain"  // Importing domain models
	"github.com/Jimmyweng006/User-Points-Service-Backend-Homework/internal/metrics" // Prometheus counters

	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// Per-event budget for one XADD attempt
const publishTimeout = 2 * time.Second

// ErrQueueFull is returned when the publish queue has no room; the caller logs
// and drops the event rather than blocking a grant on downstream delivery
var ErrQueueFull = errors.New("event queue full")

// RedisEventSink publishes accepted grants to a Redis stream. Publishing is
// asynchronous: Publish enqueues onto a bounded queue and a worker goroutine
// performs the XADD, so the grant path never waits on the stream.
type RedisEventSink struct {
	rdb    *redis.Client            // Redis client
	stream string                   // Target stream name
	queue  chan *domain.PointRecord // Bounded publish queue
	done   chan struct{}            // Closed when the worker has drained the queue
}

// NewRedisEventSink starts a sink publishing to the given stream with the
// given queue capacity
func NewRedisEventSink(rdb *redis.Client, stream string, capacity int) *RedisEventSink {
	s := &RedisEventSink{
		rdb:    rdb,
		stream: stream,
		queue:  make(chan *domain.PointRecord, capacity),
		done:   make(chan struct{}),
	}
	go s.worker() // Drain the queue in the background
	return s
}

// Publish enqueues a grant for delivery; it never blocks. A full queue returns
// ErrQueueFull so the caller can log the drop.
func (s *RedisEventSink) Publish(ctx context.Context, rec *domain.PointRecord) error {
	select {
	case s.queue <- rec:
		return nil
	default:
		metrics.EventPublishFailuresTotal.Inc() // Count the refused enqueue
		return ErrQueueFull
	}
}

// Close stops accepting events and waits for queued ones to be delivered
func (s *RedisEventSink) Close() {
	close(s.queue)
	<-s.done
}

// worker delivers queued grants one at a time with a bounded attempt each;
// a failed XADD is logged and dropped, never retried synchronously
func (s *RedisEventSink) worker() {
	defer close(s.done)
	for rec := range s.queue {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		err := s.rdb.XAdd(ctx, &redis.XAddArgs{
			Stream: s.stream, // Target stream
			Values: map[string]interface{}{
				"id":        strconv.FormatUint(rec.ID, 10),       // Ledger id
				"userId":    rec.UserID,                           // Owner of the grant
				"amount":    strconv.FormatInt(rec.Amount, 10),    // Signed amount
				"reason":    rec.Reason,                           // Free text
				"createdAt": strconv.FormatInt(rec.CreatedAt, 10), // Creation timestamp in milliseconds
			},
		}).Err()
		cancel()
		if err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"record_id": rec.ID,      // Ledger id
				"user_id":   rec.UserID,  // Owner of the grant
				"stream":    s.stream,    // Target stream
				"error":     err.Error(), // Error message
			}).Error("Event publish failed") // Log publish failure
			metrics.EventPublishFailuresTotal.Inc()
			continue
		}
		metrics.EventsPublishedTotal.Inc()
	}
}
