package mirror

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

const queueSize = 64

var ErrPoolStopped = errors.New("mirror pool stopped")

type (
	job struct {
		localPath    string
		folder       string
		resourceType string
		resp         chan result
	}
	result struct {
		res Result
		err error
	}
)

// Pool runs mirror uploads on a fixed set of workers so slow third-party
// calls cannot grow goroutines unbounded under load. Excess calls queue.
// Each call gets its own timeout, distinct from the request's.
type Pool struct {
	uploader Uploader
	workers  int
	timeout  time.Duration
	jobs     chan job
	log      *zap.Logger
}

func NewPool(uploader Uploader, workers int, timeout time.Duration, logger *zap.Logger) *Pool {
	if workers <= 0 {
		workers = 1
	}

	return &Pool{
		uploader: uploader,
		workers:  workers,
		timeout:  timeout,
		jobs:     make(chan job, queueSize),
		log:      logger,
	}
}

// Run blocks until ctx is cancelled. Workers drain the job queue.
func (p *Pool) Run(ctx context.Context) {
	p.log.Info("starting mirror workers", zap.Int("workers", p.workers))

	defer func() {
		p.log.Info("mirror workers gracefully stopped")
	}()

	done := make(chan struct{})
	for i := 0; i < p.workers; i++ {
		go p.worker(ctx, done)
	}

	<-ctx.Done()
	close(done)
}

func (p *Pool) worker(ctx context.Context, done <-chan struct{}) {
	for {
		select {
		case j := <-p.jobs:
			callCtx, cancel := context.WithTimeout(ctx, p.timeout)
			res, err := p.uploader.Upload(callCtx, j.localPath, j.folder, j.resourceType)
			cancel()
			j.resp <- result{res: res, err: err}
		case <-done:
			return
		}
	}
}

// Upload enqueues a mirror call and waits for its outcome. The caller's ctx
// bounds the wait; the pool's timeout bounds the outbound call itself.
func (p *Pool) Upload(ctx context.Context, localPath, folder, resourceType string) (Result, error) {
	j := job{
		localPath:    localPath,
		folder:       folder,
		resourceType: resourceType,
		resp:         make(chan result, 1),
	}

	select {
	case p.jobs <- j:
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}

	select {
	case r := <-j.resp:
		return r.res, r.err
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}
