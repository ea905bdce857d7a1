package count

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tw93/dircount/internal/logging"
)

// Worker pool sizing for I/O-bound scans.
const (
	minWorkers    = 8
	maxWorkers    = 64
	cpuMultiplier = 2
)

// DefaultWorkers returns the pool size used when none is configured.
func DefaultWorkers() int {
	n := runtime.NumCPU() * cpuMultiplier
	if n < minWorkers {
		n = minWorkers
	}
	if n > maxWorkers {
		n = maxWorkers
	}
	return n
}

// Task is one accepted scan waiting for a worker.
type Task struct {
	Path string
	Seq  uint64
}

// Completion is emitted once per finished Task, in the order workers finish.
type Completion struct {
	Path   string
	Result Result
	Seq    uint64
}

// Dispatcher runs scans on a fixed number of workers. Requests are queued
// FIFO without bound, so RequestScan never blocks its caller.
type Dispatcher struct {
	cache   *Cache
	scanner Scanner
	workers int
	logger  *zap.Logger

	mu    sync.Mutex
	queue []Task
	wake  chan struct{}

	seq      atomic.Uint64
	inFlight atomic.Int64

	completions chan Completion
	cancel      context.CancelFunc
	group       *errgroup.Group
	startOnce   sync.Once
	closeOnce   sync.Once
}

// NewDispatcher creates a dispatcher. workers <= 0 selects DefaultWorkers.
// A nil logger selects the global logger.
func NewDispatcher(cache *Cache, scanner Scanner, workers int, logger *zap.Logger) *Dispatcher {
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	if logger == nil {
		logger = logging.L()
	}
	return &Dispatcher{
		cache:       cache,
		scanner:     scanner,
		workers:     workers,
		logger:      logger,
		wake:        make(chan struct{}, 1),
		completions: make(chan Completion, workers*4),
	}
}

// Workers returns the fixed pool size.
func (d *Dispatcher) Workers() int { return d.workers }

// Completions delivers finished scans. It is closed by Close.
func (d *Dispatcher) Completions() <-chan Completion { return d.completions }

// Queued returns the number of accepted tasks no worker has picked up yet.
func (d *Dispatcher) Queued() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

// InFlight returns the number of scans currently running.
func (d *Dispatcher) InFlight() int { return int(d.inFlight.Load()) }

// RequestScan queues path for counting if its cache entry is Pending.
// It returns false, doing nothing, for any other state.
func (d *Dispatcher) RequestScan(path string) bool {
	if !d.cache.MarkInProgress(path) {
		return false
	}
	task := Task{Path: path, Seq: d.seq.Add(1)}

	d.mu.Lock()
	d.queue = append(d.queue, task)
	d.mu.Unlock()
	d.signal()

	d.logger.Debug("scan queued", zap.String("path", path), zap.Uint64("seq", task.Seq))
	return true
}

func (d *Dispatcher) signal() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *Dispatcher) pop() (Task, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.queue) == 0 {
		return Task{}, false
	}
	task := d.queue[0]
	d.queue[0] = Task{}
	d.queue = d.queue[1:]
	if len(d.queue) > 0 {
		// Hand the wakeup on to the next idle worker.
		d.signal()
	}
	return task, true
}

// Start launches the workers. Subsequent calls are no-ops.
func (d *Dispatcher) Start(ctx context.Context) {
	d.startOnce.Do(func() {
		ctx, d.cancel = context.WithCancel(ctx)
		g, ctx := errgroup.WithContext(ctx)
		d.group = g
		for i := 0; i < d.workers; i++ {
			id := i
			g.Go(func() error {
				d.work(ctx, id)
				return nil
			})
		}
		d.logger.Info("dispatcher started", zap.Int("workers", d.workers))
	})
}

// Close stops the workers, waits for them and closes Completions. Scans
// already running finish first; queued tasks are abandoned.
func (d *Dispatcher) Close() error {
	var err error
	d.closeOnce.Do(func() {
		if d.cancel != nil {
			d.cancel()
			err = d.group.Wait()
		}
		close(d.completions)
		d.logger.Info("dispatcher stopped", zap.Int("abandoned", d.Queued()))
	})
	return err
}

func (d *Dispatcher) work(ctx context.Context, id int) {
	for {
		task, ok := d.pop()
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-d.wake:
				continue
			}
		}

		res := d.run(task, id)
		d.cache.Complete(task.Path, res)

		select {
		case d.completions <- Completion{Path: task.Path, Result: res, Seq: task.Seq}:
		case <-ctx.Done():
			return
		}
	}
}

func (d *Dispatcher) run(task Task, id int) (res Result) {
	d.inFlight.Add(1)
	defer d.inFlight.Add(-1)
	defer func() {
		if r := recover(); r != nil {
			d.logger.Warn("scan panicked",
				zap.String("path", task.Path),
				zap.Int("worker", id),
				zap.Any("panic", r))
			res = Result{Err: ErrIO}
		}
	}()

	res = d.scanner.Scan(task.Path)
	if res.Err != ErrNone {
		d.logger.Debug("scan failed",
			zap.String("path", task.Path),
			zap.Stringer("kind", res.Err),
			zap.Int("worker", id))
		return res
	}
	d.logger.Debug("scan done",
		zap.String("path", task.Path),
		zap.Int("files", res.Files),
		zap.Int("subdirs", res.Subdirs),
		zap.Uint64("seq", task.Seq),
		zap.Int("worker", id))
	return res
}
