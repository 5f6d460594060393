package biz

import (
	"context"
	"fmt"
	"sync"
	"testing"

	apperrors "github.com/sightline-ai/people-search-backend/internal/pkg/errors"
	"github.com/sightline-ai/people-search-backend/internal/pkg/logger"
	"github.com/sightline-ai/people-search-backend/internal/pkg/workerpool"
	"github.com/sightline-ai/people-search-backend/internal/search/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSynthesizer struct {
	queries []types.StructuredQuery
	err     error
	calls   int
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, q string) ([]types.StructuredQuery, error) {
	f.calls++
	return f.queries, f.err
}

type fakeExecutor struct {
	mu      sync.Mutex
	seen    []types.StructuredQuery
	pages   map[types.StructuredQuery]*types.ResultPage
	failing map[types.StructuredQuery]error
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{
		pages:   make(map[types.StructuredQuery]*types.ResultPage),
		failing: make(map[types.StructuredQuery]error),
	}
}

func (f *fakeExecutor) Search(ctx context.Context, query types.StructuredQuery) (*types.ResultPage, error) {
	f.mu.Lock()
	f.seen = append(f.seen, query)
	f.mu.Unlock()

	if err, ok := f.failing[query]; ok {
		return nil, err
	}
	if page, ok := f.pages[query]; ok {
		return page, nil
	}
	return types.NewResultPage(nil), nil
}

func (f *fakeExecutor) ID() types.ProviderID { return "fake" }
func (f *fakeExecutor) Validate() error      { return nil }

func (f *fakeExecutor) calls() []types.StructuredQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]types.StructuredQuery(nil), f.seen...)
}

type fakeQuota struct {
	count       int
	increments  int
	countErr    error
	incrementEr error
}

func (f *fakeQuota) SearchCount(ctx context.Context, userID string) (int, error) {
	return f.count, f.countErr
}

func (f *fakeQuota) IncrementSearches(ctx context.Context, userID string) error {
	if f.incrementEr != nil {
		return f.incrementEr
	}
	f.increments++
	return nil
}

func newTestUseCase(t *testing.T, synth Synthesizer, exec *fakeExecutor, quota QuotaStore, cfg Config, workers int) *SearchUseCase {
	t.Helper()
	pool, err := workerpool.New(&workerpool.Config{Workers: workers}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(pool.Release)

	log, err := logger.New(logger.DefaultConfig())
	require.NoError(t, err)

	return NewSearchUseCase(synth, exec, quota, pool, cfg, log)
}

func page(results ...types.RawResult) *types.ResultPage {
	return types.NewResultPage(results)
}

func TestRunExecutesEveryQueryInOrder(t *testing.T) {
	queries := []types.StructuredQuery{"q1", "q2", "q3", "q4"}
	exec := newFakeExecutor()

	// one worker serializes execution, so observed order is submission order
	uc := newTestUseCase(t, &fakeSynthesizer{queries: queries}, exec, &fakeQuota{}, Config{}, 1)

	out, err := uc.Run(context.Background(), "user-1", "find people")
	require.NoError(t, err)

	assert.Equal(t, queries, exec.calls())
	require.Len(t, out.Bundle.Entries, 4)
	for i, entry := range out.Bundle.Entries {
		assert.Equal(t, fmt.Sprintf("query_%d", i+1), entry.Label)
		assert.Equal(t, queries[i], entry.Query)
	}
}

func TestRunMergePreservesGenerationOrder(t *testing.T) {
	exec := newFakeExecutor()
	exec.pages["q1"] = page(
		types.RawResult{Title: "Alice A", Link: "https://example.com/alice"},
	)
	exec.pages["q2"] = page(
		types.RawResult{Title: "Bob B", Link: "https://example.com/bob"},
		types.RawResult{Title: "Carol C", Link: "https://example.com/carol"},
	)

	// several workers so completions can interleave; order must not change
	uc := newTestUseCase(t, &fakeSynthesizer{queries: []types.StructuredQuery{"q1", "q2"}}, exec, &fakeQuota{}, Config{}, 4)

	out, err := uc.Run(context.Background(), "user-1", "find people")
	require.NoError(t, err)

	require.Len(t, out.Results, 3)
	assert.Equal(t, "Alice A", out.Results[0].Name)
	assert.Equal(t, "Bob B", out.Results[1].Name)
	assert.Equal(t, "Carol C", out.Results[2].Name)
}

func TestRunCapsAtTenResults(t *testing.T) {
	exec := newFakeExecutor()
	var queries []types.StructuredQuery
	for q := 0; q < 3; q++ {
		query := fmt.Sprintf("q%d", q+1)
		queries = append(queries, query)
		var results []types.RawResult
		for r := 0; r < 5; r++ {
			results = append(results, types.RawResult{
				Title: fmt.Sprintf("Person %d-%d", q, r),
				Link:  fmt.Sprintf("https://example.com/p/%d/%d", q, r),
			})
		}
		exec.pages[query] = page(results...)
	}

	uc := newTestUseCase(t, &fakeSynthesizer{queries: queries}, exec, &fakeQuota{}, Config{}, 2)

	out, err := uc.Run(context.Background(), "user-1", "find people")
	require.NoError(t, err)
	assert.Len(t, out.Results, 10)
}

func TestRunEmptyPagesYieldEmptyOutput(t *testing.T) {
	uc := newTestUseCase(t, &fakeSynthesizer{queries: []types.StructuredQuery{"q1", "q2"}}, newFakeExecutor(), &fakeQuota{}, Config{}, 2)

	out, err := uc.Run(context.Background(), "user-1", "find people")
	require.NoError(t, err)
	assert.Empty(t, out.Results)
}

func TestRunQuotaGate(t *testing.T) {
	t.Run("rejects at limit before any work", func(t *testing.T) {
		synth := &fakeSynthesizer{queries: []types.StructuredQuery{"q1"}}
		exec := newFakeExecutor()
		quota := &fakeQuota{count: 5}
		uc := newTestUseCase(t, synth, exec, quota, Config{}, 1)

		_, err := uc.Run(context.Background(), "user-1", "find people")
		assert.True(t, apperrors.Is(err, apperrors.ErrSearchQuotaExceeded))
		assert.Zero(t, synth.calls)
		assert.Empty(t, exec.calls())
		assert.Zero(t, quota.increments)
	})

	t.Run("increments once under limit", func(t *testing.T) {
		quota := &fakeQuota{count: 4}
		uc := newTestUseCase(t, &fakeSynthesizer{queries: nil}, newFakeExecutor(), quota, Config{}, 1)

		_, err := uc.Run(context.Background(), "user-1", "find people")
		require.NoError(t, err)
		assert.Equal(t, 1, quota.increments)
	})
}

func TestRunSynthesisFailureSkipsExecution(t *testing.T) {
	exec := newFakeExecutor()
	synth := &fakeSynthesizer{err: fmt.Errorf("%w: not an array", types.ErrSynthesisParse)}
	uc := newTestUseCase(t, synth, exec, &fakeQuota{}, Config{}, 1)

	_, err := uc.Run(context.Background(), "user-1", "find people")
	assert.True(t, apperrors.Is(err, apperrors.ErrSearchSynthesisParse))
	assert.Empty(t, exec.calls(), "no executor calls after a synthesis failure")
}

func TestRunStrictModeFailsWhole(t *testing.T) {
	exec := newFakeExecutor()
	exec.pages["q1"] = page(types.RawResult{Title: "A", Link: "https://example.com/a"})
	exec.failing["q2"] = &types.ProviderError{Provider: "fake", Code: "HTTP_500", Message: "boom"}

	uc := newTestUseCase(t, &fakeSynthesizer{queries: []types.StructuredQuery{"q1", "q2"}}, exec, &fakeQuota{}, Config{}, 1)

	out, err := uc.Run(context.Background(), "user-1", "find people")
	assert.Nil(t, out)
	assert.True(t, apperrors.Is(err, apperrors.ErrSearchUpstream))
}

func TestRunBestEffortKeepsSuccessfulSubset(t *testing.T) {
	exec := newFakeExecutor()
	exec.pages["q1"] = page(types.RawResult{Title: "A", Link: "https://example.com/a"})
	exec.failing["q2"] = &types.ProviderError{Provider: "fake", Code: "HTTP_500", Message: "boom"}
	exec.pages["q3"] = page(types.RawResult{Title: "C", Link: "https://example.com/c"})

	uc := newTestUseCase(t, &fakeSynthesizer{queries: []types.StructuredQuery{"q1", "q2", "q3"}}, exec, &fakeQuota{}, Config{BestEffort: true}, 1)

	out, err := uc.Run(context.Background(), "user-1", "find people")
	require.NoError(t, err)

	require.Len(t, out.Results, 2)
	assert.Equal(t, "A", out.Results[0].Name)
	assert.Equal(t, "C", out.Results[1].Name)
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "query_2:")
}

func TestRunDeterministic(t *testing.T) {
	exec := newFakeExecutor()
	exec.pages["q1"] = page(
		types.RawResult{Title: "Jane Doe - Software Engineer", Link: "https://linkedin.com/in/janedoe"},
	)
	exec.pages["q2"] = page(
		types.RawResult{Title: "John Roe | Designer", Link: "https://linkedin.com/in/johnroe"},
	)
	synth := &fakeSynthesizer{queries: []types.StructuredQuery{"q1", "q2"}}

	uc := newTestUseCase(t, synth, exec, &fakeQuota{}, Config{}, 4)

	first, err := uc.Run(context.Background(), "user-1", "find people")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := uc.Run(context.Background(), "user-1", "find people")
		require.NoError(t, err)
		assert.Equal(t, first.Results, again.Results)
	}
}

func TestRunEndToEndShape(t *testing.T) {
	exec := newFakeExecutor()
	exec.pages["q1"] = page(types.RawResult{
		Title:   "John Smith - Software Engineer",
		Link:    "https://linkedin.com/in/johnsmith",
		Snippet: "John Smith is a software engineer",
	})

	uc := newTestUseCase(t, &fakeSynthesizer{queries: []types.StructuredQuery{"q1"}}, exec, &fakeQuota{}, Config{}, 1)

	out, err := uc.Run(context.Background(), "user-1", "Find John Smith")
	require.NoError(t, err)

	require.Len(t, out.Results, 1)
	got := out.Results[0]
	assert.Equal(t, "0-ohnsmith", got.ID)
	assert.Equal(t, "John Smith", got.Name)
	assert.Equal(t, "https://ui-avatars.com/api/?name=John+Smith&background=random", got.ProfileImage)
	assert.Equal(t, "https://linkedin.com/in/johnsmith", got.LinkUrl)
	assert.Equal(t, "View Profile", got.LinkText)
}
