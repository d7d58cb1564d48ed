package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/visitorgate/visitor-admin/internal/api/metrics"
	"github.com/visitorgate/visitor-admin/internal/core/domain"
	"github.com/visitorgate/visitor-admin/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// ErrQueueFull is returned by Enqueue when the target worker is saturated.
var ErrQueueFull = errors.New("presence queue full")

// Dispatcher routes heartbeats to a fixed set of workers using consistent
// hashing on the uid, so heartbeats for one user are stored in arrival order
// and a late "online" cannot overwrite a newer "offline".
type Dispatcher struct {
	workers []chan ports.HeartbeatInput
	service ports.PresenceService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.PresenceService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.HeartbeatInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.HeartbeatInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a heartbeat to the worker responsible for its uid without
// blocking. A full worker yields ErrQueueFull; the client resends on its next
// heartbeat.
func (d *Dispatcher) Enqueue(hb ports.HeartbeatInput) error {
	idx := d.shardIndex(hb.UID)
	select {
	case d.workers[idx] <- hb:
		metrics.PresenceQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return nil
	default:
		return ErrQueueFull
	}
}

// shardIndex maps a uid deterministically to a worker index.
func (d *Dispatcher) shardIndex(uid string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(uid))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.HeartbeatInput) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case hb, ok := <-ch:
			if !ok {
				return
			}
			metrics.PresenceQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))

			start := time.Now()
			err := d.service.Record(ctx, hb)
			metrics.HeartbeatProcessingDuration.Observe(time.Since(start).Seconds())
			if err != nil {
				reason := "store_failed"
				if errors.Is(err, domain.ErrInvalidHeartbeat) {
					reason = "invalid"
				}
				metrics.HeartbeatsErrorsTotal.WithLabelValues(reason).Inc()
				d.log.Error().Err(err).
					Str("uid", hb.UID).
					Int("worker_id", id).
					Msg("heartbeat processing failed")
				continue
			}
			metrics.HeartbeatsProcessedTotal.WithLabelValues(strings.ToLower(hb.State)).Inc()
		}
	}
}
