package workload

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/eapache/queue"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/momentics/hioload-ring/affinity"
	"github.com/momentics/hioload-ring/api"
	"github.com/momentics/hioload-ring/control"
	"github.com/momentics/hioload-ring/ring"
)

// ErrOrderViolation reports an item delivered out of FIFO order.
var ErrOrderViolation = errors.New("fifo order violated")

// pollEvery bounds how often tight loops look at the context.
const pollEvery = 1024

// Result summarizes one run.
type Result struct {
	Mode       string
	Capacity   int
	Enqueued   uint64
	Rejected   uint64
	Dequeued   uint64
	EmptyPolls uint64
	Duration   time.Duration
}

// token is the value moved through shared rings.
type token struct {
	producer int
	seq      uint64
}

// counters is per-goroutine bookkeeping merged into Result at the end.
type counters struct {
	enqueued, rejected, dequeued, emptyPolls uint64
}

func (c *counters) merge(into *Result) {
	into.Enqueued += c.enqueued
	into.Rejected += c.rejected
	into.Dequeued += c.dequeued
	into.EmptyPolls += c.emptyPolls
}

// Runner executes workloads described by control.Config.
type Runner struct {
	cfg     control.Config
	log     *zap.Logger
	metrics *Metrics
	rings   *control.RingRegistry
}

// Option configures a Runner.
type Option func(*Runner)

// WithMetrics records run counters into m.
func WithMetrics(m *Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// WithRingRegistry exposes shared rings to the registry while they run.
func WithRingRegistry(rr *control.RingRegistry) Option {
	return func(r *Runner) { r.rings = rr }
}

// NewRunner validates cfg and returns a Runner.
func NewRunner(cfg control.Config, log *zap.Logger, opts ...Option) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	r := &Runner{cfg: cfg, log: log}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run executes the configured workload until every item has been delivered,
// an order violation is found, or ctx is done.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	res := &Result{Mode: r.cfg.Mode, Capacity: r.cfg.Capacity}
	r.log.Info("workload starting",
		zap.String("mode", r.cfg.Mode),
		zap.Int("capacity", r.cfg.Capacity),
		zap.Int("items", r.cfg.Items),
		zap.Int("producers", r.cfg.Producers),
		zap.Int("consumers", r.cfg.Consumers),
	)

	start := time.Now()
	var err error
	switch r.cfg.Mode {
	case control.ModeSingle:
		err = r.runSingle(ctx, res)
	case control.ModeLocked:
		err = r.runShared(ctx, ring.NewLocked[token](r.cfg.Capacity), res)
	case control.ModeSPSC:
		err = r.runShared(ctx, ring.NewSPSC[token](r.cfg.Capacity), res)
	default:
		err = fmt.Errorf("unknown mode %q: %w", r.cfg.Mode, api.ErrInvalidArgument)
	}
	res.Duration = time.Since(start)

	if err != nil {
		r.log.Error("workload failed", zap.Error(err), zap.Uint64("dequeued", res.Dequeued))
		return res, err
	}
	r.metrics.observe(res)
	r.log.Info("workload finished",
		zap.Uint64("enqueued", res.Enqueued),
		zap.Uint64("rejected", res.Rejected),
		zap.Uint64("dequeued", res.Dequeued),
		zap.Uint64("empty_polls", res.EmptyPolls),
		zap.Duration("duration", res.Duration),
	)
	return res, nil
}

// runSingle owns one Buffer and alternates random-length enqueue and dequeue
// bursts, checking every dequeued value against an unbounded FIFO oracle.
func (r *Runner) runSingle(ctx context.Context, res *Result) error {
	buf := ring.New[uint64](r.cfg.Capacity)
	oracle := queue.New()
	rng := rand.New(rand.NewPCG(r.cfg.Seed, r.cfg.Seed^0x9e3779b97f4a7c15))
	items := uint64(r.cfg.Items)
	var next uint64
	var c counters
	defer c.merge(res)

	for next < items || !buf.IsEmpty() {
		if err := ctx.Err(); err != nil {
			return err
		}
		burst := 1 + rng.IntN(2*r.cfg.Capacity)
		if next < items && rng.IntN(2) == 0 {
			for i := 0; i < burst && next < items; i++ {
				if err := buf.Enqueue(next); err != nil {
					c.rejected++
					break
				}
				oracle.Add(next)
				next++
				c.enqueued++
			}
			continue
		}
		for i := 0; i < burst; i++ {
			v, ok := buf.Dequeue()
			if !ok {
				c.emptyPolls++
				break
			}
			c.dequeued++
			if want := oracle.Remove().(uint64); v != want {
				return fmt.Errorf("got %d, want %d: %w", v, want, ErrOrderViolation)
			}
		}
	}
	if oracle.Length() != 0 {
		return fmt.Errorf("%d items never delivered: %w", oracle.Length(), ErrOrderViolation)
	}
	return nil
}

// runShared spreads items across producers and drains them with consumers.
// Each consumer requires strictly increasing sequence numbers per producer.
func (r *Runner) runShared(ctx context.Context, q api.Ring[token], res *Result) error {
	if r.rings != nil {
		name := "workload." + r.cfg.Mode
		if err := r.rings.Register(name, q); err != nil {
			return err
		}
		defer func() { _ = r.rings.Unregister(name) }()
	}

	total := uint64(r.cfg.Items)
	var delivered atomic.Uint64
	perProducer := make([]counters, r.cfg.Producers)
	perConsumer := make([]counters, r.cfg.Consumers)
	defer func() {
		for i := range perProducer {
			perProducer[i].merge(res)
		}
		for i := range perConsumer {
			perConsumer[i].merge(res)
		}
	}()

	g, ctx := errgroup.WithContext(ctx)
	for p := 0; p < r.cfg.Producers; p++ {
		share := total / uint64(r.cfg.Producers)
		if uint64(p) < total%uint64(r.cfg.Producers) {
			share++
		}
		c := &perProducer[p]
		g.Go(func() error {
			defer r.pin(p)()
			return produce(ctx, q, p, share, c)
		})
	}
	for i := 0; i < r.cfg.Consumers; i++ {
		c := &perConsumer[i]
		g.Go(func() error {
			defer r.pin(r.cfg.Producers + i)()
			return consume(ctx, q, r.cfg.Producers, total, &delivered, c)
		})
	}
	return g.Wait()
}

// pin binds the calling goroutine to a core when pinning is enabled.
// Failure only costs locality, so it is logged and ignored.
func (r *Runner) pin(slot int) (release func()) {
	if !r.cfg.Pin {
		return func() {}
	}
	release, err := affinity.PinGoroutine(slot)
	if err != nil {
		r.log.Warn("cpu pinning unavailable", zap.Int("slot", slot), zap.Error(err))
	}
	return release
}

func produce(ctx context.Context, q api.Ring[token], producer int, share uint64, c *counters) error {
	for seq, spins := uint64(0), 0; seq < share; spins++ {
		if spins%pollEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := q.Enqueue(token{producer: producer, seq: seq}); err != nil {
			c.rejected++
			runtime.Gosched()
			continue
		}
		c.enqueued++
		seq++
	}
	return nil
}

func consume(ctx context.Context, q api.Ring[token], producers int, total uint64, delivered *atomic.Uint64, c *counters) error {
	last := make([]int64, producers)
	for i := range last {
		last[i] = -1
	}
	for spins := 0; delivered.Load() < total; spins++ {
		if spins%pollEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		t, ok := q.Dequeue()
		if !ok {
			c.emptyPolls++
			runtime.Gosched()
			continue
		}
		c.dequeued++
		delivered.Add(1)
		if int64(t.seq) <= last[t.producer] {
			return fmt.Errorf("producer %d: seq %d after %d: %w", t.producer, t.seq, last[t.producer], ErrOrderViolation)
		}
		last[t.producer] = int64(t.seq)
	}
	return nil
}
