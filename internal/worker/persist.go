package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/jvorcak/este/internal/domain"
	"github.com/jvorcak/este/internal/events"
	"github.com/jvorcak/este/internal/store"
)

// PersistTask carries an identity snapshot to be saved.
type PersistTask struct {
	Identity *domain.Identity
}

// Persister is the storage operation executed by the pool.
type Persister interface {
	SaveUser(ctx context.Context, identity *domain.Identity) error
}

// PersistWorkerPool executes user-record writes off the identity-change
// listener path with a buffered channel and a pool of worker goroutines.
// Failures are logged, never retried; a write rejected by the store's
// security rules additionally emits a permission-denied domain event.
type PersistWorkerPool struct {
	taskQueue chan PersistTask
	persister Persister
	events    events.Publisher
	logger    *zap.Logger
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewPersistWorkerPool creates a new persist worker pool
func NewPersistWorkerPool(workerCount, queueSize int, persister Persister, publisher events.Publisher, logger *zap.Logger) *PersistWorkerPool {
	ctx, cancel := context.WithCancel(context.Background())

	pool := &PersistWorkerPool{
		taskQueue: make(chan PersistTask, queueSize),
		persister: persister,
		events:    publisher,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}

	// Start worker goroutines
	for i := 0; i < workerCount; i++ {
		pool.wg.Add(1)
		go pool.worker(i)
	}

	logger.Info("persist worker pool started", zap.Int("workers", workerCount))
	return pool
}

// Stop gracefully stops the worker pool
func (p *PersistWorkerPool) Stop() {
	p.logger.Info("stopping persist worker pool")
	p.cancel()
	close(p.taskQueue)
	p.wg.Wait()
	p.logger.Info("persist worker pool stopped")
}

// Enqueue schedules a user save (non-blocking, will log if pool is shutting down)
func (p *PersistWorkerPool) Enqueue(identity *domain.Identity) {
	if p.ctx.Err() != nil {
		p.logger.Warn("worker pool is shutting down, discarding task")
		return
	}
	select {
	case p.taskQueue <- PersistTask{Identity: identity}:
		// Task enqueued successfully
	case <-p.ctx.Done():
		p.logger.Warn("worker pool is shutting down, discarding task")
	}
}

// Private helper methods

func (p *PersistWorkerPool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case task, ok := <-p.taskQueue:
			if !ok {
				return
			}

			p.handleTask(id, task)

		case <-p.ctx.Done():
			return
		}
	}
}

func (p *PersistWorkerPool) handleTask(workerID int, task PersistTask) {
	err := p.persister.SaveUser(p.ctx, task.Identity)
	if err != nil {
		if store.IsPermissionDenied(err) {
			p.events.Publish(domain.Event{
				Type: domain.EventAuthPermissionDenied,
				Err:  err,
			})
		}
		p.logger.Error("failed to save user",
			zap.Int("worker_id", workerID),
			zap.String("user_id", task.Identity.ID),
			zap.Error(err))
		return
	}

	p.logger.Info("user saved", zap.Int("worker_id", workerID), zap.String("user_id", task.Identity.ID))
}
