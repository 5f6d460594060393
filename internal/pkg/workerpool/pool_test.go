package workerpool

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestPool(t *testing.T, workers int) *Pool {
	t.Helper()
	p, err := New(&Config{Workers: workers}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(p.Release)
	return p
}

func TestSubmit(t *testing.T) {
	p := newTestPool(t, 2)

	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := 0

	for i := 0; i < 10; i++ {
		wg.Add(1)
		err := p.Submit(func() {
			defer wg.Done()
			mu.Lock()
			seen++
			mu.Unlock()
		})
		require.NoError(t, err)
	}
	wg.Wait()

	assert.Equal(t, 10, seen)
	assert.Equal(t, int64(10), p.Stats().Submitted)
}

func TestSubmitWithResult(t *testing.T) {
	p := newTestPool(t, 1)

	ch, err := p.SubmitWithResult(func() (interface{}, error) {
		return 42, nil
	})
	require.NoError(t, err)
	res := <-ch
	assert.NoError(t, res.Error)
	assert.Equal(t, 42, res.Data)

	wantErr := errors.New("boom")
	ch, err = p.SubmitWithResult(func() (interface{}, error) {
		return nil, wantErr
	})
	require.NoError(t, err)
	res = <-ch
	assert.ErrorIs(t, res.Error, wantErr)

	stats := p.Stats()
	assert.Equal(t, int64(1), stats.Completed)
	assert.Equal(t, int64(1), stats.Failed)
}

func TestSubmitAfterRelease(t *testing.T) {
	p, err := New(&Config{Workers: 1}, zap.NewNop())
	require.NoError(t, err)
	p.Release()

	assert.ErrorIs(t, p.Submit(func() {}), ErrPoolClosed)
}

func TestInvalidConfig(t *testing.T) {
	_, err := New(&Config{Workers: 0}, zap.NewNop())
	assert.Error(t, err)
}
