package biz

import (
	"context"
	"errors"
	"fmt"
	"sync"

	apperrors "github.com/sightline-ai/people-search-backend/internal/pkg/errors"
	"github.com/sightline-ai/people-search-backend/internal/pkg/logger"
	"github.com/sightline-ai/people-search-backend/internal/pkg/workerpool"
	"github.com/sightline-ai/people-search-backend/internal/search/provider"
	"github.com/sightline-ai/people-search-backend/internal/search/types"
	"go.uber.org/zap"
)

// searchLimit is the per-user lifetime search allowance
const searchLimit = 5

// Synthesizer generates structured queries from a natural-language query
type Synthesizer interface {
	Synthesize(ctx context.Context, naturalQuery string) ([]types.StructuredQuery, error)
}

// QuotaStore reads and advances a user's search counter
type QuotaStore interface {
	SearchCount(ctx context.Context, userID string) (int, error)
	IncrementSearches(ctx context.Context, userID string) error
}

// Config tunes the pipeline
type Config struct {
	// BestEffort aggregates the successful sub-queries and reports the
	// failed ones as warnings instead of failing the whole request
	BestEffort bool
}

// SearchOutput is the pipeline result
type SearchOutput struct {
	Results  []types.AggregatedResult
	Warnings []string
	Bundle   *types.QueryBundle
}

// SearchUseCase runs the quota gate, query synthesis, fan-out execution
// and result aggregation
type SearchUseCase struct {
	synthesizer Synthesizer
	executor    provider.Provider
	quota       QuotaStore
	pool        *workerpool.Pool
	config      Config
	logger      *logger.Logger
}

// NewSearchUseCase wires the pipeline
func NewSearchUseCase(
	synthesizer Synthesizer,
	executor provider.Provider,
	quota QuotaStore,
	pool *workerpool.Pool,
	config Config,
	log *logger.Logger,
) *SearchUseCase {
	return &SearchUseCase{
		synthesizer: synthesizer,
		executor:    executor,
		quota:       quota,
		pool:        pool,
		config:      config,
		logger:      log,
	}
}

// Run executes one people search for userID
func (uc *SearchUseCase) Run(ctx context.Context, userID, naturalQuery string) (*SearchOutput, error) {
	if err := uc.gateQuota(ctx, userID); err != nil {
		return nil, err
	}

	queries, err := uc.synthesizer.Synthesize(ctx, naturalQuery)
	if err != nil {
		return nil, mapSynthesisError(err)
	}

	bundle, warnings, err := uc.execute(ctx, queries)
	if err != nil {
		return nil, err
	}

	results := aggregate(bundle)
	uc.logger.Info("search pipeline finished",
		zap.String("user_id", userID),
		zap.Int("queries", len(queries)),
		zap.Int("results", len(results)),
		zap.Int("warnings", len(warnings)),
	)

	return &SearchOutput{
		Results:  results,
		Warnings: warnings,
		Bundle:   bundle,
	}, nil
}

// gateQuota rejects over-limit users before advancing the counter
func (uc *SearchUseCase) gateQuota(ctx context.Context, userID string) error {
	count, err := uc.quota.SearchCount(ctx, userID)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrInternalServer, "quota lookup failed")
	}
	if count >= searchLimit {
		return apperrors.New(apperrors.ErrSearchQuotaExceeded)
	}
	if err := uc.quota.IncrementSearches(ctx, userID); err != nil {
		return apperrors.Wrap(err, apperrors.ErrInternalServer, "quota update failed")
	}
	return nil
}

// execute fans the structured queries out over the worker pool. Tasks are
// submitted in generation order and each writes into its own slot, so the
// merged bundle keeps that order no matter how completions interleave.
func (uc *SearchUseCase) execute(ctx context.Context, queries []types.StructuredQuery) (*types.QueryBundle, []string, error) {
	pages := make([]*types.ResultPage, len(queries))
	errs := make([]error, len(queries))

	execCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	for i, query := range queries {
		i, query := i, query
		wg.Add(1)
		submitErr := uc.pool.Submit(func() {
			defer wg.Done()
			page, err := uc.executor.Search(execCtx, query)
			if err != nil {
				errs[i] = err
				if !uc.config.BestEffort {
					// strict mode: first failure stops the rest
					cancel()
				}
				return
			}
			pages[i] = page
		})
		if submitErr != nil {
			wg.Done()
			errs[i] = submitErr
			if !uc.config.BestEffort {
				cancel()
			}
		}
	}
	wg.Wait()

	var warnings []string
	for i, err := range errs {
		if err == nil {
			continue
		}
		if !uc.config.BestEffort {
			return nil, nil, apperrors.Wrapf(err, apperrors.ErrSearchUpstream, "query_%d failed", i+1)
		}
		warnings = append(warnings, fmt.Sprintf("query_%d: %v", i+1, err))
	}

	bundle := &types.QueryBundle{Entries: make([]types.BundleEntry, 0, len(queries))}
	for i, query := range queries {
		bundle.Entries = append(bundle.Entries, types.BundleEntry{
			Label:   fmt.Sprintf("query_%d", i+1),
			Query:   query,
			Results: pages[i],
		})
	}
	return bundle, warnings, nil
}

// mapSynthesisError converts synthesizer failures to coded errors
func mapSynthesisError(err error) error {
	switch {
	case errors.Is(err, types.ErrEmptyQuery):
		return apperrors.Wrap(err, apperrors.ErrSearchEmptyQuery)
	case errors.Is(err, types.ErrPromptTooLarge):
		return apperrors.Wrap(err, apperrors.ErrSearchPromptTooLarge)
	case errors.Is(err, types.ErrSynthesisParse):
		return apperrors.Wrap(err, apperrors.ErrSearchSynthesisParse)
	default:
		return apperrors.Wrap(err, apperrors.ErrSearchUpstream, "query synthesis failed")
	}
}
