package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-tailor/internal/models"
)

// fakeGenerator signals processed job IDs on a channel.
type fakeGenerator struct {
	processed chan int
}

func (f *fakeGenerator) GenerateResume(ctx context.Context, jobID int) (*models.Resume, error) {
	f.processed <- jobID
	return &models.Resume{Name: "Jane Doe"}, nil
}

func TestWorkerProcessesEnqueuedJob(t *testing.T) {
	generator := &fakeGenerator{processed: make(chan int, 1)}
	w := NewWorker(generator, 1)

	w.Start(context.Background())
	defer w.Stop()

	require.True(t, w.EnqueueJob(42))

	select {
	case jobID := <-generator.processed:
		assert.Equal(t, 42, jobID)
	case <-time.After(2 * time.Second):
		t.Fatal("job was never processed")
	}
}

func TestEnqueueJobAfterStop(t *testing.T) {
	w := NewWorker(&fakeGenerator{processed: make(chan int, 1)}, 0)
	w.Stop()

	// the queue has space, but a stopped worker must still refuse the job
	for i := 0; i < 10; i++ {
		assert.False(t, w.EnqueueJob(i))
	}
}

func TestEnqueueJobQueueFull(t *testing.T) {
	// no goroutines started, so the queue only drains on Stop
	w := NewWorker(&fakeGenerator{processed: make(chan int, 1)}, 0)

	accepted := 0
	for i := 0; i < 200; i++ {
		if !w.EnqueueJob(i) {
			break
		}
		accepted++
	}

	assert.Greater(t, accepted, 0)
	assert.Less(t, accepted, 200)
	assert.False(t, w.EnqueueJob(999))
}
