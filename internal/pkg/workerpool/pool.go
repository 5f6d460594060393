package workerpool

import (
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

var ErrPoolClosed = errors.New("worker pool is closed")

// TaskResult carries a task's outcome
type TaskResult struct {
	Data  interface{}
	Error error
}

// Config holds pool settings
type Config struct {
	Workers int // max concurrently running tasks
}

// DefaultConfig returns default pool settings
func DefaultConfig() *Config {
	return &Config{Workers: 8}
}

// Statistics tracks task counters
type Statistics struct {
	mu sync.RWMutex

	Submitted int64
	Completed int64
	Failed    int64
}

func (s *Statistics) incSubmitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Submitted++
}

func (s *Statistics) done(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.Failed++
	} else {
		s.Completed++
	}
}

func (s *Statistics) Get() Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Statistics{
		Submitted: s.Submitted,
		Completed: s.Completed,
		Failed:    s.Failed,
	}
}

// Pool is a bounded worker pool built on ants
type Pool struct {
	pool   *ants.Pool
	stats  *Statistics
	logger *zap.Logger
}

// New creates a worker pool
func New(config *Config, logger *zap.Logger) (*Pool, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Workers <= 0 {
		return nil, fmt.Errorf("workerpool: workers must be > 0, got %d", config.Workers)
	}

	antsPool, err := ants.NewPool(config.Workers,
		ants.WithPanicHandler(func(err interface{}) {
			logger.Error("worker panic", zap.Any("error", err))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ants pool: %w", err)
	}

	return &Pool{
		pool:   antsPool,
		stats:  &Statistics{},
		logger: logger,
	}, nil
}

// Submit schedules a task; blocks while all workers are busy
func (p *Pool) Submit(task func()) error {
	if p.pool.IsClosed() {
		return ErrPoolClosed
	}
	p.stats.incSubmitted()
	return p.pool.Submit(task)
}

// SubmitWithResult schedules a task and returns a channel for its result
func (p *Pool) SubmitWithResult(task func() (interface{}, error)) (<-chan TaskResult, error) {
	ch := make(chan TaskResult, 1)
	err := p.Submit(func() {
		data, err := task()
		p.stats.done(err)
		ch <- TaskResult{Data: data, Error: err}
	})
	if err != nil {
		return nil, err
	}
	return ch, nil
}

// Running returns the number of tasks currently executing
func (p *Pool) Running() int {
	return p.pool.Running()
}

// Stats returns a snapshot of task counters
func (p *Pool) Stats() Statistics {
	return p.stats.Get()
}

// Release shuts down the pool
func (p *Pool) Release() {
	p.pool.Release()
}
