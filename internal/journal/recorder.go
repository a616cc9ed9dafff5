// Package journal records gate motion events and angle traces of a scene run.
package journal

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash"
	"log/slog"
	"math"
	"sync"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/udisondev/gatekeep/internal/gate"
)

const (
	// DefaultBatchSize is number of events forwarded to the sink at once.
	DefaultBatchSize = 64
	// queueDepth is number of batches buffered between tick loop and sink.
	queueDepth = 32
)

// Sink persists event batches.
type Sink interface {
	SaveEvents(ctx context.Context, events []gate.Event) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, events []gate.Event) error

// SaveEvents calls f(ctx, events).
func (f SinkFunc) SaveEvents(ctx context.Context, events []gate.Event) error { return f(ctx, events) }

// Option configures a Recorder.
type Option func(*Recorder)

// WithSink forwards events to s in batches of batchSize.
// Non-positive batchSize uses DefaultBatchSize.
func WithSink(s Sink, batchSize int) Option {
	return func(r *Recorder) {
		if batchSize <= 0 {
			batchSize = DefaultBatchSize
		}
		r.sink = s
		r.batchSize = batchSize
	}
}

// Recorder collects gate events and trace samples.
// OnGateEvent and Sample are called from the tick goroutine, Run from another.
type Recorder struct {
	mu     sync.Mutex
	events []gate.Event
	traces map[string]*Trace
	order  []string
	digest hash.Hash
	closed bool

	sink      Sink
	batchSize int
	batch     []gate.Event
	tail      []gate.Event // last batch, handed over by Close outside the queue
	queue     chan []gate.Event
	dropped   int
}

var _ gate.Observer = (*Recorder)(nil)

// NewRecorder creates an empty recorder.
func NewRecorder(opts ...Option) *Recorder {
	// blake2b.New256 fails only for keys longer than 64 bytes
	digest, _ := blake2b.New256(nil)
	r := &Recorder{
		traces: make(map[string]*Trace),
		digest: digest,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.sink != nil {
		r.queue = make(chan []gate.Event, queueDepth)
	}
	return r
}

// OnGateEvent records e.
func (r *Recorder) OnGateEvent(e gate.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, e)
	r.hashEvent(e)

	if r.queue == nil || r.closed {
		return
	}
	r.batch = append(r.batch, e)
	if len(r.batch) >= r.batchSize {
		r.enqueue()
	}
}

// hashEvent feeds a fixed binary encoding of e into the digest.
func (r *Recorder) hashEvent(e gate.Event) {
	var buf [8 + 8 + 4 + 4 + 8]byte
	binary.BigEndian.PutUint64(buf[0:], uint64(len(e.Gate)))
	binary.BigEndian.PutUint64(buf[8:], uint64(e.At))
	binary.BigEndian.PutUint32(buf[16:], uint32(e.Kind))
	binary.BigEndian.PutUint32(buf[20:], uint32(e.Motion))
	binary.BigEndian.PutUint64(buf[24:], math.Float64bits(e.Target))
	r.digest.Write(buf[:])
	r.digest.Write([]byte(e.Gate))
}

// enqueue hands the current batch to Run. Caller holds r.mu.
func (r *Recorder) enqueue() {
	if len(r.batch) == 0 {
		return
	}
	select {
	case r.queue <- r.batch:
	default:
		r.dropped += len(r.batch)
		slog.Warn("journal queue full, batch dropped", "events", len(r.batch), "dropped_total", r.dropped)
	}
	r.batch = nil
}

// Sample appends a trace point for gate.
func (r *Recorder) Sample(gateName string, at time.Duration, target, angle float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tr, ok := r.traces[gateName]
	if !ok {
		tr = &Trace{Gate: gateName}
		r.traces[gateName] = tr
		r.order = append(r.order, gateName)
	}
	tr.Samples = append(tr.Samples, Sample{At: at, Target: target, Angle: angle})
}

// Events returns a copy of all recorded events.
func (r *Recorder) Events() []gate.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]gate.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Traces returns recorded traces in first-sample order.
func (r *Recorder) Traces() []Trace {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Trace, 0, len(r.order))
	for _, name := range r.order {
		tr := r.traces[name]
		out = append(out, Trace{Gate: tr.Gate, Samples: append([]Sample(nil), tr.Samples...)})
	}
	return out
}

// Digest returns the blake2b-256 fingerprint of the event stream so far.
// Two runs with the same seed and configuration produce the same digest.
func (r *Recorder) Digest() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return hex.EncodeToString(r.digest.Sum(nil))
}

// Dropped returns number of events not delivered to the sink.
func (r *Recorder) Dropped() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// Close ends Run once the queued batches are drained. The pending batch
// bypasses the queue, so a full queue never loses it. Safe to call more than once.
func (r *Recorder) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	if r.queue == nil {
		return
	}
	r.tail, r.batch = r.batch, nil
	close(r.queue)
}

func (r *Recorder) takeTail() []gate.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	tail := r.tail
	r.tail = nil
	return tail
}

// Run drains batches into the sink until Close is called or ctx is canceled.
// Without a sink it returns immediately.
func (r *Recorder) Run(ctx context.Context) error {
	if r.queue == nil {
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case batch, ok := <-r.queue:
			if !ok {
				batch = r.takeTail()
				if len(batch) == 0 {
					return nil
				}
				if err := r.sink.SaveEvents(ctx, batch); err != nil {
					return fmt.Errorf("saving %d journal events: %w", len(batch), err)
				}
				return nil
			}
			if err := r.sink.SaveEvents(ctx, batch); err != nil {
				return fmt.Errorf("saving %d journal events: %w", len(batch), err)
			}
		}
	}
}
