package synthesizer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sightline-ai/people-search-backend/internal/pkg/logger"
	"github.com/sightline-ai/people-search-backend/internal/search/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	response string
	err      error

	calls     int
	gotPrompt string
	gotMax    int
	gotTemp   float32
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string, maxTokens int, temp float32) (string, error) {
	f.calls++
	f.gotPrompt = prompt
	f.gotMax = maxTokens
	f.gotTemp = temp
	return f.response, f.err
}

func (f *fakeCompleter) Name() string { return "fake" }

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New(logger.DefaultConfig())
	require.NoError(t, err)
	return l
}

func TestSynthesizeParsesBareArray(t *testing.T) {
	fake := &fakeCompleter{response: `["site:linkedin.com/in \"Jane Doe\"", "site:twitter.com \"Jane Doe\""]`}
	s := New(fake, testLogger(t))

	queries, err := s.Synthesize(context.Background(), "Find Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, []types.StructuredQuery{
		`site:linkedin.com/in "Jane Doe"`,
		`site:twitter.com "Jane Doe"`,
	}, queries)

	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, 4096, fake.gotMax)
	assert.Equal(t, float32(0), fake.gotTemp)
	assert.Contains(t, fake.gotPrompt, "User Query: Find Jane Doe")
	assert.NotContains(t, fake.gotPrompt, "{query}")
}

func TestSynthesizeParsesFencedArray(t *testing.T) {
	fake := &fakeCompleter{response: "Here are the dorks:\n```json\n[\"site:linkedin.com/in \\\"John\\\"\"]\n```\nDone."}
	s := New(fake, testLogger(t))

	queries, err := s.Synthesize(context.Background(), "Find John")
	require.NoError(t, err)
	assert.Equal(t, []types.StructuredQuery{`site:linkedin.com/in "John"`}, queries)
}

func TestSynthesizeRejectsNonArray(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"prose", "I could not generate any queries for that."},
		{"json object", `{"dorks": ["a"]}`},
		{"array of objects", `[{"dork": "a"}]`},
		{"empty response", ""},
		{"bare string", `"just a string"`},
		{"number", `42`},
		{"null", `null`},
		{"fenced null", "```json\nnull\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(&fakeCompleter{response: tt.response}, testLogger(t))
			_, err := s.Synthesize(context.Background(), "Find someone")
			assert.ErrorIs(t, err, types.ErrSynthesisParse)
		})
	}
}

func TestSynthesizeEmptyInput(t *testing.T) {
	fake := &fakeCompleter{}
	s := New(fake, testLogger(t))

	_, err := s.Synthesize(context.Background(), "   ")
	assert.ErrorIs(t, err, types.ErrEmptyQuery)
	assert.Zero(t, fake.calls, "no completion call for an empty query")
}

func TestSynthesizePropagatesCompleterError(t *testing.T) {
	wantErr := errors.New("model down")
	s := New(&fakeCompleter{err: wantErr}, testLogger(t))

	_, err := s.Synthesize(context.Background(), "Find someone")
	assert.ErrorIs(t, err, wantErr)
}

func TestSynthesizeEmptyArrayAllowed(t *testing.T) {
	s := New(&fakeCompleter{response: `[]`}, testLogger(t))

	queries, err := s.Synthesize(context.Background(), "Find nobody")
	require.NoError(t, err)
	assert.Empty(t, queries)
}

func TestBuildPromptKeepsTemplate(t *testing.T) {
	prompt := buildPrompt("Find Jane")
	assert.True(t, strings.Contains(prompt, "Google Dork Syntax Reference"))
	assert.True(t, strings.Contains(prompt, "Return ONLY the JSON with dorks, nothing else."))
}
