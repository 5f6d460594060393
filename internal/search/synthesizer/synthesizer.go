package synthesizer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sightline-ai/people-search-backend/internal/ai"
	"github.com/sightline-ai/people-search-backend/internal/pkg/logger"
	"github.com/sightline-ai/people-search-backend/internal/search/types"
	"go.uber.org/zap"
)

const (
	// completion settings, deterministic output
	maxCompletionTokens = 4096
	temperature         = 0

	// promptTokenBudget bounds the rendered prompt well below the model
	// context window
	promptTokenBudget = 16384

	tokenEncoding = "cl100k_base"
)

// Synthesizer turns a natural-language person query into structured
// search-engine queries via a single deterministic model call
type Synthesizer struct {
	completer ai.Completer
	logger    *logger.Logger

	encOnce sync.Once
	enc     *tiktoken.Tiktoken
}

// New creates a synthesizer on top of a completion provider
func New(completer ai.Completer, log *logger.Logger) *Synthesizer {
	return &Synthesizer{
		completer: completer,
		logger:    log,
	}
}

// Synthesize generates structured queries for naturalQuery. The model
// response must be a JSON array of strings, optionally inside a ```json
// fence; anything else fails with ErrSynthesisParse.
func (s *Synthesizer) Synthesize(ctx context.Context, naturalQuery string) ([]types.StructuredQuery, error) {
	if strings.TrimSpace(naturalQuery) == "" {
		return nil, types.ErrEmptyQuery
	}

	prompt := buildPrompt(naturalQuery)
	if err := s.checkPromptBudget(prompt); err != nil {
		return nil, err
	}

	response, err := s.completer.Complete(ctx, prompt, maxCompletionTokens, temperature)
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	queries, err := parseQueries(response)
	if err != nil {
		s.logger.Error("synthesis output rejected",
			zap.String("provider", s.completer.Name()),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Debug("synthesized structured queries",
		zap.Int("count", len(queries)),
	)
	return queries, nil
}

// checkPromptBudget counts prompt tokens when an encoder is available.
// Encoder setup needs the BPE ranks; when they cannot be loaded the
// check is skipped rather than failing the request.
func (s *Synthesizer) checkPromptBudget(prompt string) error {
	s.encOnce.Do(func() {
		enc, err := tiktoken.GetEncoding(tokenEncoding)
		if err != nil {
			s.logger.Warn("token encoder unavailable, skipping prompt budget check",
				zap.Error(err),
			)
			return
		}
		s.enc = enc
	})

	if s.enc == nil {
		return nil
	}

	count := len(s.enc.Encode(prompt, nil, nil))
	if count > promptTokenBudget {
		return fmt.Errorf("%w: %d tokens, budget %d", types.ErrPromptTooLarge, count, promptTokenBudget)
	}
	return nil
}

// parseQueries extracts the JSON array of queries from the model response
func parseQueries(response string) ([]types.StructuredQuery, error) {
	jsonStr := response
	if idx := strings.Index(response, "```json"); idx >= 0 {
		rest := response[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			rest = rest[:end]
		}
		jsonStr = rest
	}
	jsonStr = strings.TrimSpace(jsonStr)

	// json.Unmarshal accepts the literal null for a slice; require an
	// actual array so a degenerate response cannot pass as zero queries
	if !strings.HasPrefix(jsonStr, "[") {
		return nil, fmt.Errorf("%w: top-level value is not an array", types.ErrSynthesisParse)
	}

	var queries []types.StructuredQuery
	if err := json.Unmarshal([]byte(jsonStr), &queries); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrSynthesisParse, err)
	}
	return queries, nil
}
