package internal

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const DefaultTracerName = "github.com/AnatoleLucet/vars"

type Options struct {
	// Logger receives apply cycle diagnostics (default: log.Default() with a "vars" prefix).
	Logger *log.Logger

	// MaxApplyPasses bounds how many times one apply cycle drains the queue.
	// 0 disables the check.
	MaxApplyPasses int

	// AutoApply applies every write made outside a batch immediately.
	AutoApply bool

	// Metrics records Prometheus metrics, nil disables them.
	Metrics *Metrics

	// TracerName names the OpenTelemetry tracer used for apply spans.
	TracerName string
}

func DefaultOptions() Options {
	return Options{
		MaxApplyPasses: 1000,
		TracerName:     DefaultTracerName,
	}
}

type Runtime struct {
	optsMu  sync.RWMutex
	opts    Options
	logger  *log.Logger
	tracer  trace.Tracer
	metrics *Metrics

	scheduler  *Scheduler
	batcher    *Batcher
	queue      *UpdateQueue
	tracker    *Tracker
	animations *Animations

	applyMu  sync.Mutex
	applying atomic.Int64 // goroutine id running Apply, 0 if none
}

func NewRuntime(opts Options) *Runtime {
	r := &Runtime{
		scheduler:  NewScheduler(),
		batcher:    NewBatcher(),
		queue:      NewUpdateQueue(),
		tracker:    NewTracker(),
		animations: NewAnimations(),
	}
	r.Configure(opts)

	return r
}

var (
	once          sync.Once
	globalRuntime *Runtime
)

// GetRuntime returns the process-wide runtime.
func GetRuntime() *Runtime {
	once.Do(func() {
		globalRuntime = NewRuntime(DefaultOptions())
	})

	return globalRuntime
}

func (r *Runtime) Configure(opts Options) {
	if opts.Logger == nil {
		opts.Logger = log.Default().WithPrefix("vars")
	}
	if opts.TracerName == "" {
		opts.TracerName = DefaultTracerName
	}

	r.optsMu.Lock()
	defer r.optsMu.Unlock()

	r.opts = opts
	r.logger = opts.Logger
	r.metrics = opts.Metrics
	r.tracer = otel.Tracer(opts.TracerName)
}

func (r *Runtime) Options() Options {
	r.optsMu.RLock()
	defer r.optsMu.RUnlock()

	return r.opts
}

func (r *Runtime) Logger() *log.Logger {
	r.optsMu.RLock()
	defer r.optsMu.RUnlock()

	return r.logger
}

func (r *Runtime) Time() Tick {
	return r.scheduler.Time()
}

func (r *Runtime) NextImportance() uint64 {
	return r.scheduler.NextImportance()
}

func (r *Runtime) Tracker() *Tracker {
	return r.tracker
}

// IsApplying reports whether the calling goroutine is inside Apply.
func (r *Runtime) IsApplying() bool {
	return r.applying.Load() == goroutineID()
}

// Pending returns the number of writes waiting for the next apply.
func (r *Runtime) Pending() int {
	return r.queue.Len()
}

// Schedule queues a write, applying it right away in auto apply mode.
// A write made while another goroutine applies is left to that goroutine,
// which checks the queue again once it releases the cycle.
func (r *Runtime) Schedule(req *Request) {
	r.queue.Enqueue(req)

	if r.autoApply() && r.applying.Load() == 0 {
		r.Apply()
	}
}

func (r *Runtime) autoApply() bool {
	return r.Options().AutoApply && !r.batcher.IsBatching()
}

func (r *Runtime) Apply() Tick {
	return r.ApplyContext(context.Background())
}

// ApplyContext runs one apply cycle: it commits every pending write and runs the hooks,
// looping until hooks stop producing writes. All of it happens under a single tick.
// In auto apply mode it runs another cycle for writes other goroutines queued meanwhile.
func (r *Runtime) ApplyContext(ctx context.Context) Tick {
	gid := goroutineID()
	if r.applying.Load() == gid {
		// called from a hook, the running cycle drains the queue
		return r.scheduler.Time()
	}

	tick := r.applyCycle(ctx, gid)
	for r.autoApply() && r.queue.Len() > 0 {
		tick = r.applyCycle(ctx, gid)
	}

	return tick
}

func (r *Runtime) applyCycle(ctx context.Context, gid int64) Tick {
	r.applyMu.Lock()
	r.applying.Store(gid)
	defer func() {
		r.applying.Store(0)
		r.applyMu.Unlock()
	}()

	opts := r.Options()
	r.optsMu.RLock()
	logger, metrics, tracer := r.logger, r.metrics, r.tracer
	r.optsMu.RUnlock()

	start := time.Now()
	stats := applyStats{tick: r.scheduler.Advance()}

	_, span := r.startApplySpan(ctx, tracer)

	for {
		batch := r.queue.Drain()
		if len(batch) == 0 {
			r.queue.Recycle(batch)
			break
		}

		stats.passes++
		if opts.MaxApplyPasses > 0 && stats.passes > opts.MaxApplyPasses {
			r.queue.Recycle(batch)
			r.queue.Recycle(r.queue.Drain())

			err := &FeedbackLoopError{Tick: stats.tick, Passes: stats.passes - 1}
			logger.Error("apply cycle did not settle", "tick", stats.tick, "passes", stats.passes-1)
			endApplySpan(span, stats, err)
			panic(err)
		}

		committed := r.applyPass(batch, stats.tick, &stats, metrics)
		r.queue.Recycle(batch)

		for _, c := range committed {
			n := c.node.hooks.Notify(&HookArgs{
				Value:     c.value,
				Tags:      c.tags,
				Animation: c.animating,
			})
			stats.hooks += n
			metrics.hookCalls(n)
		}
	}

	elapsed := time.Since(start)
	metrics.observeApply(stats.passes, elapsed)
	endApplySpan(span, stats, nil)

	if stats.passes > 0 {
		logger.Debug("applied updates",
			"tick", stats.tick,
			"passes", stats.passes,
			"writes", stats.writes,
			"rejected", stats.rejected,
			"hooks", stats.hooks,
			"duration", elapsed)
	}

	return stats.tick
}

type pendingNode struct {
	node       *Node
	prev       *nodeState
	mod        Modify
	importance uint64
	animating  bool
}

type committedNode struct {
	node      *Node
	value     any
	tags      []any
	animating bool
}

// applyPass runs one drained batch. Every node is committed before any hook runs,
// so hooks observe a consistent snapshot of the pass.
func (r *Runtime) applyPass(batch []*Request, tick Tick, stats *applyStats, metrics *Metrics) []committedNode {
	var order []*pendingNode
	byNode := make(map[*Node]*pendingNode, len(batch))

	for _, req := range batch {
		p, ok := byNode[req.node]
		if !ok {
			prev := req.node.state.Load()
			p = &pendingNode{
				node:       req.node,
				prev:       prev,
				mod:        Modify{Value: prev.value},
				importance: prev.importance,
				animating:  prev.animating,
			}
			byNode[req.node] = p
			order = append(order, p)
		}

		stats.writes++
		if req.info.Importance < p.importance {
			// a running animation owns this node
			stats.rejected++
			metrics.write(WriteRejected)
			continue
		}

		changed := p.mod.Changed
		req.apply(&p.mod)
		if p.mod.Changed != changed || p.mod.Forced {
			metrics.write(WriteAccepted)
		} else {
			metrics.write(WriteUnchanged)
		}

		switch {
		case req.info.Final:
			p.importance = 0
			p.animating = false
		case req.info.Animation:
			p.importance = req.info.Importance
			p.animating = true
		}
	}

	committed := make([]committedNode, 0, len(order))
	for _, p := range order {
		notify := p.mod.Changed || p.mod.Forced

		next := &nodeState{
			value:      p.prev.value,
			tick:       p.prev.tick,
			version:    p.prev.version,
			animating:  p.animating,
			importance: p.importance,
		}
		if notify {
			next.value = p.mod.Value
			next.tick = tick
			next.version++
		} else if next.animating == p.prev.animating && next.importance == p.prev.importance {
			continue
		}

		p.node.state.Store(next)

		if notify {
			committed = append(committed, committedNode{
				node:      p.node,
				value:     next.value,
				tags:      p.mod.Tags,
				animating: next.animating,
			})
		}
	}

	return committed
}
