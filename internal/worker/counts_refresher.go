package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/polkiloo/storeadmin/internal/domain/model"
)

// StatusCounter exposes the subset of application functionality required by the worker.
type StatusCounter interface {
	CountStatus(ctx context.Context, status model.OrderStatus) (int64, error)
}

// CountsRefresher periodically recomputes dashboard status counts with a pool of workers.
type CountsRefresher struct {
	counter  StatusCounter
	interval time.Duration
	workers  int
	statuses []model.OrderStatus
	logger   *zap.Logger
	now      func() time.Time

	jobs   chan countJob
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex

	snapMu    sync.RWMutex
	snapshot  model.StatusCounts
	refreshed time.Time
}

type countJob struct {
	status model.OrderStatus
	round  *round
}

// round gathers the counts of one refresh and publishes them once all statuses report.
type round struct {
	mu      sync.Mutex
	counts  map[model.OrderStatus]int64
	pending int
	failed  bool
}

// NewCountsRefresher constructs the counts worker pool.
func NewCountsRefresher(counter StatusCounter, interval time.Duration, workers int, logger *zap.Logger) *CountsRefresher {
	if workers <= 0 {
		workers = 1
	}
	if interval <= 0 {
		interval = 30 * time.Second
	}
	statuses := model.DashboardStatuses
	return &CountsRefresher{
		counter:  counter,
		interval: interval,
		workers:  workers,
		statuses: statuses,
		logger:   logger.Named("counts"),
		now:      time.Now,
		jobs:     make(chan countJob, len(statuses)),
	}
}

// Start launches background refreshing. The first refresh runs immediately.
func (r *CountsRefresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *CountsRefresher) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

// Snapshot returns the last complete counts and when they were computed.
func (r *CountsRefresher) Snapshot() (model.StatusCounts, time.Time, bool) {
	r.snapMu.RLock()
	defer r.snapMu.RUnlock()
	if r.refreshed.IsZero() {
		return model.StatusCounts{}, time.Time{}, false
	}
	byStatus := make(map[model.OrderStatus]int64, len(r.snapshot.ByStatus))
	for k, v := range r.snapshot.ByStatus {
		byStatus[k] = v
	}
	return model.StatusCounts{ByStatus: byStatus, All: r.snapshot.All}, r.refreshed, true
}

func (r *CountsRefresher) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.dispatchRound(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.dispatchRound(ctx)
		}
	}
}

func (r *CountsRefresher) dispatchRound(ctx context.Context) {
	rd := &round{counts: make(map[model.OrderStatus]int64, len(r.statuses)), pending: len(r.statuses)}
	for _, status := range r.statuses {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- countJob{status: status, round: rd}:
		}
	}
}

func (r *CountsRefresher) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-r.jobs:
			if !ok {
				return
			}
			r.handle(ctx, job)
		}
	}
}

func (r *CountsRefresher) handle(ctx context.Context, job countJob) {
	n, err := r.counter.CountStatus(ctx, job.status)
	if err != nil && ctx.Err() == nil {
		r.logger.Error("count orders failed", zap.String("status", string(job.status)), zap.Error(err))
	}

	rd := job.round
	rd.mu.Lock()
	if err != nil {
		rd.failed = true
	} else {
		rd.counts[job.status] = n
	}
	rd.pending--
	done := rd.pending == 0
	rd.mu.Unlock()

	if done && !rd.failed {
		r.publish(rd.counts)
	}
}

func (r *CountsRefresher) publish(byStatus map[model.OrderStatus]int64) {
	var all int64
	for _, n := range byStatus {
		all += n
	}
	r.snapMu.Lock()
	r.snapshot = model.StatusCounts{ByStatus: byStatus, All: all}
	r.refreshed = r.now()
	r.snapMu.Unlock()
	r.logger.Debug("status counts refreshed", zap.Int64("all", all))
}
