package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"recipe-finder/internal/core/ai/provider"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	release  chan struct{}
	err      error
	calls    int64
	inFlight int64
	maxSeen  int64
}

func (f *fakeProvider) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	atomic.AddInt64(&f.calls, 1)
	n := atomic.AddInt64(&f.inFlight, 1)
	defer atomic.AddInt64(&f.inFlight, -1)
	for {
		seen := atomic.LoadInt64(&f.maxSeen)
		if n <= seen || atomic.CompareAndSwapInt64(&f.maxSeen, seen, n) {
			break
		}
	}

	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &provider.Response{Content: "answer: " + req.Messages[0].Content}, nil
}

func (f *fakeProvider) GetModel() string           { return "fake" }
func (f *fakeProvider) GetTimeout() time.Duration { return time.Second }
func (f *fakeProvider) Close() error              { return nil }

func TestSubmit(t *testing.T) {
	m := NewManager(config.QueueConfig{Workers: 2, MaxSize: 4}, &fakeProvider{})
	m.Start()
	defer m.Close()

	resp, err := m.Submit(context.Background(), provider.UserPrompt("rice"))
	require.NoError(t, err)
	assert.Equal(t, "answer: rice", resp.Content)

	status := m.Status()
	assert.Equal(t, 1, status.ProcessedCount)
	assert.Equal(t, 2, status.Workers)
	assert.Equal(t, 4, status.MaxQueueSize)
}

func TestSubmitPropagatesProviderError(t *testing.T) {
	m := NewManager(config.QueueConfig{Workers: 1, MaxSize: 1}, &fakeProvider{err: errors.New("boom")})
	m.Start()
	defer m.Close()

	_, err := m.Submit(context.Background(), provider.UserPrompt("rice"))
	assert.EqualError(t, err, "boom")
	assert.Equal(t, 1, m.Status().FailedCount)
}

func TestEnqueueFailsFastWhenFull(t *testing.T) {
	// no workers started, so nothing drains the queue
	m := NewManager(config.QueueConfig{Workers: 1, MaxSize: 1}, &fakeProvider{})
	defer m.Close()

	_, err := m.Enqueue(context.Background(), provider.UserPrompt("a"))
	require.NoError(t, err)

	_, err = m.Enqueue(context.Background(), provider.UserPrompt("b"))
	assert.True(t, errors.Is(err, common.ErrQueueFull))
}

func TestWorkersBoundConcurrency(t *testing.T) {
	fp := &fakeProvider{release: make(chan struct{})}
	m := NewManager(config.QueueConfig{Workers: 2, MaxSize: 10}, fp)
	m.Start()
	defer m.Close()

	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Submit(context.Background(), provider.UserPrompt("x"))
			assert.NoError(t, err)
		}()
	}

	require.Eventually(t, func() bool { return atomic.LoadInt64(&fp.inFlight) == 2 }, time.Second, 5*time.Millisecond)
	close(fp.release)
	wg.Wait()

	assert.Equal(t, int64(2), atomic.LoadInt64(&fp.maxSeen))
	assert.Equal(t, int64(6), atomic.LoadInt64(&fp.calls))
}

func TestSubmitHonoursContext(t *testing.T) {
	fp := &fakeProvider{release: make(chan struct{})}
	m := NewManager(config.QueueConfig{Workers: 1, MaxSize: 1}, fp)
	m.Start()
	defer func() {
		close(fp.release)
		m.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := m.Submit(ctx, provider.UserPrompt("slow"))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestEnqueueAfterClose(t *testing.T) {
	m := NewManager(config.QueueConfig{Workers: 1, MaxSize: 1}, &fakeProvider{})
	m.Start()
	m.Close()

	_, err := m.Enqueue(context.Background(), provider.UserPrompt("late"))
	assert.True(t, errors.Is(err, common.ErrServiceUnavailable))
}
