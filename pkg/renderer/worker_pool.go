package renderer

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/jiamingluuu/RayTracer2D/pkg/core"
)

// batchesPerWorker controls how finely samples are split for load balancing
const batchesPerWorker = 8

// SceneFactory builds a private scene for one worker. Scenes from
// different seeds must not share materials or lights.
type SceneFactory func(seed int64) Scene

// BatchTask asks a worker to trace a number of light samples
type BatchTask struct {
	TaskID  int
	Samples int
}

// BatchResult contains the result from tracing a batch
type BatchResult struct {
	TaskID   int
	WorkerID int
	Stats    RenderStats
	Error    error
}

// WorkerPool traces samples in parallel. Every worker owns its scene and
// image, so no state is shared until the images are merged.
type WorkerPool struct {
	taskQueue   chan BatchTask
	resultQueue chan BatchResult
	workers     []*Worker
	numWorkers  int
	batches     []int
	wg          sync.WaitGroup

	width, height int
	window        core.Window
	logger        core.Logger
}

// Worker handles individual batch tasks
type Worker struct {
	ID          int
	raytracer   *Raytracer
	taskQueue   chan BatchTask
	resultQueue chan BatchResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// Worker i renders a scene built by factory(seed+i).
func NewWorkerPool(factory SceneFactory, seed int64, width, height int, config SamplingConfig, numWorkers int, logger core.Logger) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	batches := splitSamples(config.NumRays, numWorkers*batchesPerWorker)

	wp := &WorkerPool{
		taskQueue:   make(chan BatchTask, len(batches)),   // Buffer for all batches
		resultQueue: make(chan BatchResult, len(batches)), // Buffer for all results
		numWorkers:  numWorkers,
		batches:     batches,
		width:       width,
		height:      height,
		logger:      logger,
	}

	for i := 0; i < numWorkers; i++ {
		scene := factory(seed + int64(i))
		if i == 0 {
			wp.window = scene.GetWindow()
		}
		raytracer := NewRaytracer(scene, width, height, logger)
		raytracer.SetSamplingConfig(config)

		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			raytracer:   raytracer,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// splitSamples divides total samples into at most parts non-empty batches
// whose sizes differ by at most one
func splitSamples(total, parts int) []int {
	if total <= 0 {
		return nil
	}
	if parts > total {
		parts = total
	}
	batches := make([]int, parts)
	for i := range batches {
		batches[i] = total / parts
		if i < total%parts {
			batches[i]++
		}
	}
	return batches
}

// Start begins all workers
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, &wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a batch to the worker pool
func (wp *WorkerPool) SubmitTask(task BatchTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed batch result
func (wp *WorkerPool) GetResult() (BatchResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Render traces all samples and returns the merged image. The pool cannot
// be reused afterwards.
func (wp *WorkerPool) Render(ctx context.Context) (*Image, RenderStats, error) {
	start := time.Now()
	wp.logger.Printf("Tracing %d batches on %d workers\n", len(wp.batches), wp.numWorkers)

	wp.Start(ctx)
	for i, samples := range wp.batches {
		wp.SubmitTask(BatchTask{TaskID: i, Samples: samples})
	}

	var stats RenderStats
	var firstErr error
	nextReport := 1
	for done := 1; done <= len(wp.batches); done++ {
		result, _ := wp.GetResult()
		stats.Merge(result.Stats)
		if result.Error != nil && firstErr == nil {
			firstErr = result.Error
		}
		if done*10 >= nextReport*len(wp.batches) {
			wp.logger.Printf("Progress=%f\n", float64(done)/float64(len(wp.batches)))
			nextReport = done*10/len(wp.batches) + 1
		}
	}
	wp.Stop()
	stats.Duration = time.Since(start)

	if firstErr != nil {
		return nil, stats, firstErr
	}

	// Merge in worker order
	merged := NewImage(wp.width, wp.height, wp.window, wp.logger)
	for _, worker := range wp.workers {
		if err := merged.Merge(worker.raytracer.Image()); err != nil {
			return nil, stats, err
		}
	}
	return merged, stats, nil
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		stats, err := w.raytracer.RenderSamples(ctx, task.Samples)
		w.resultQueue <- BatchResult{
			TaskID:   task.TaskID,
			WorkerID: w.ID,
			Stats:    stats,
			Error:    err,
		}
	}
}

// RenderScene renders on the calling goroutine when numWorkers is at most
// one and on a WorkerPool otherwise
func RenderScene(ctx context.Context, factory SceneFactory, seed int64, width, height int, config SamplingConfig, numWorkers int, logger core.Logger) (*Image, RenderStats, error) {
	if numWorkers > 1 {
		return NewWorkerPool(factory, seed, width, height, config, numWorkers, logger).Render(ctx)
	}

	rt := NewRaytracer(factory(seed), width, height, logger)
	rt.SetSamplingConfig(config)
	stats, err := rt.Render(ctx)
	if err != nil {
		return nil, stats, err
	}
	return rt.Image(), stats, nil
}
