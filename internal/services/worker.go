package services

import (
	"context"
	"log"
	"sync"
)

// Worker runs resume generation off the request path. Generation holds no
// database transaction while the LLM call is in flight; the job row is only
// touched when the result lands.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(jobID int) bool
}

type worker struct {
	generator   GeneratorService
	jobQueue    chan int
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
}

func NewWorker(generator GeneratorService, concurrency int) Worker {
	return &worker{
		generator:   generator,
		jobQueue:    make(chan int, 100),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

// EnqueueJob implements Worker. Returns false when the worker is stopped or
// the queue is full.
func (w *worker) EnqueueJob(jobID int) bool {
	// Checked on its own first: a combined select could pick the send case
	// even after Stop, accepting a job nothing will ever process.
	select {
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue job %d\n", jobID)
		return false
	default:
	}

	select {
	case w.jobQueue <- jobID:
		log.Printf("📥 Job %d enqueued\n", jobID)
		return true
	default:
		log.Printf("⚠️  Job queue full, cannot enqueue job %d\n", jobID)
		return false
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case jobID := <-w.jobQueue:
			log.Printf("👷 Worker #%d processing job %d\n", workerID, jobID)
			if _, err := w.generator.GenerateResume(ctx, jobID); err != nil {
				log.Printf("❌ Worker #%d failed to process job %d: %v\n", workerID, jobID, err)
			} else {
				log.Printf("✅ Worker #%d completed job %d\n", workerID, jobID)
			}
		}
	}
}
