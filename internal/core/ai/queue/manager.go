package queue

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"recipe-finder/internal/core/ai/provider"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
)

// Job one queued upstream request
type Job struct {
	ctx     context.Context
	request *provider.Request
	result  chan Result
}

// Result outcome of a job
type Result struct {
	Response *provider.Response
	Error    error
}

// Status queue counters
type Status struct {
	QueueLength    int `json:"queue_length"`
	ProcessedCount int `json:"processed_count"`
	FailedCount    int `json:"failed_count"`
	Active         int `json:"active"`
	MaxQueueSize   int `json:"max_queue_size"`
	Workers        int `json:"workers"`
}

// Manager bounds concurrent calls to the provider with a fixed worker pool
type Manager struct {
	config    config.QueueConfig
	provider  provider.Provider
	queue     chan *Job
	done      chan struct{}
	wg        sync.WaitGroup
	startOnce sync.Once
	closeOnce sync.Once

	processed int64
	failed    int64
	active    int64
}

// NewManager creates a queue in front of p. Call Start before enqueuing.
func NewManager(cfg config.QueueConfig, p provider.Provider) *Manager {
	return &Manager{
		config:   cfg,
		provider: p,
		queue:    make(chan *Job, cfg.MaxSize),
		done:     make(chan struct{}),
	}
}

// Start launches the workers
func (m *Manager) Start() {
	m.startOnce.Do(func() {
		for i := 0; i < m.config.Workers; i++ {
			m.wg.Add(1)
			go m.worker()
		}
		common.LogInfo("AI queue started",
			zap.Int("workers", m.config.Workers),
			zap.Int("max_queue_size", m.config.MaxSize),
		)
	})
}

// Enqueue adds a job without blocking; a full queue fails fast with ErrQueueFull
func (m *Manager) Enqueue(ctx context.Context, req *provider.Request) (<-chan Result, error) {
	select {
	case <-m.done:
		return nil, common.ErrServiceUnavailable
	default:
	}

	job := &Job{ctx: ctx, request: req, result: make(chan Result, 1)}
	select {
	case m.queue <- job:
		common.LogDebug("Request enqueued",
			zap.Int("queue_length", len(m.queue)),
			zap.Int("max_queue_size", m.config.MaxSize),
		)
		return job.result, nil
	default:
		common.LogWarn("AI queue full", zap.Int("max_queue_size", m.config.MaxSize))
		return nil, common.ErrQueueFull
	}
}

// Submit enqueues req and waits for its result
func (m *Manager) Submit(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	ch, err := m.Enqueue(ctx, req)
	if err != nil {
		return nil, err
	}

	select {
	case res := <-ch:
		return res.Response, res.Error
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-m.done:
		return nil, common.ErrServiceUnavailable
	}
}

func (m *Manager) worker() {
	defer m.wg.Done()
	for {
		select {
		case <-m.done:
			return
		case job := <-m.queue:
			job.result <- m.process(job)
		}
	}
}

func (m *Manager) process(job *Job) Result {
	if err := job.ctx.Err(); err != nil {
		return Result{Error: err}
	}

	atomic.AddInt64(&m.active, 1)
	defer atomic.AddInt64(&m.active, -1)

	ctx := job.ctx
	if timeout := m.provider.GetTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := m.provider.Generate(ctx, job.request)
	common.LogAICall(m.provider.GetModel(), time.Since(start), err, common.RequestIDFromContext(job.ctx))

	if err != nil {
		atomic.AddInt64(&m.failed, 1)
		return Result{Error: err}
	}
	atomic.AddInt64(&m.processed, 1)
	return Result{Response: resp}
}

// Status snapshot of the queue counters
func (m *Manager) Status() Status {
	return Status{
		QueueLength:    len(m.queue),
		ProcessedCount: int(atomic.LoadInt64(&m.processed)),
		FailedCount:    int(atomic.LoadInt64(&m.failed)),
		Active:         int(atomic.LoadInt64(&m.active)),
		MaxQueueSize:   m.config.MaxSize,
		Workers:        m.config.Workers,
	}
}

// Close stops the workers after their current job
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		close(m.done)
		m.wg.Wait()
		common.LogInfo("AI queue stopped", zap.Int("processed", int(atomic.LoadInt64(&m.processed))))
	})
}
