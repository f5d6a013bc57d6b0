package renderer

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkerCount returns the number of logical CPUs
func DefaultWorkerCount() int {
	return WorkerCount(false)
}

// WorkerCount returns the number of physical cores when physical is set, otherwise the
// number of logical CPUs. It never exceeds runtime.NumCPU.
func WorkerCount(physical bool) int {
	count, err := cpu.Counts(!physical)
	if err != nil || count <= 0 {
		logger.Debugf("cpu count (physical=%t) unavailable, using runtime.NumCPU: %v", physical, err)
		return runtime.NumCPU()
	}
	return min(count, runtime.NumCPU())
}

// WorkerPool runs indexed tasks with bounded parallelism
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers (0 = CPU count)
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = DefaultWorkerCount()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run calls task once for every index in [0, n) and waits for all of them.
// It returns the first task error, or ctx.Err() if ctx was cancelled before all tasks started.
func (wp *WorkerPool) Run(ctx context.Context, n int, task func(ctx context.Context, index int) error) error {
	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(wp.numWorkers)

	for i := 0; i < n; i++ {
		if groupCtx.Err() != nil {
			break
		}
		index := i
		g.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			return task(groupCtx, index)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
