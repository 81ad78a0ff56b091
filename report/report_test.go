package report

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/debatemesh/model"
)

const validPayload = `{"rating":"buy","score":7,"key_points":["margins","catalysts"],"risks":["valuation"],"summary":"Constructive setup."}`

func TestSynthesize_CleanPayload(t *testing.T) {
	gen := model.NewMockModel("mock", "test")
	gen.Queue(validPayload)

	s := New(gen)
	res, err := s.Synthesize(context.Background(), "Acme Corp", "record")
	require.NoError(t, err)
	require.NotNil(t, res.Artifact)
	assert.False(t, res.Failed)
	assert.Equal(t, "buy", res.Artifact.Rating)
	assert.Equal(t, 7, res.Artifact.Score)
	assert.Equal(t, []string{"margins", "catalysts"}, res.Artifact.KeyPoints)
}

func TestSynthesize_RepairsProseWrappedPayload(t *testing.T) {
	gen := model.NewMockModel("mock", "test")
	gen.Queue("Here is the report you asked for:\n\n" + validPayload + "\n\nLet me know if you need anything else.")

	s := New(gen)
	res, err := s.Synthesize(context.Background(), "Acme Corp", "record")
	require.NoError(t, err)
	require.NotNil(t, res.Artifact)
	assert.Equal(t, "buy", res.Artifact.Rating)
}

func TestSynthesize_NoBracesIsTaggedFailure(t *testing.T) {
	gen := model.NewMockModel("mock", "test")
	gen.Queue("I cannot produce a report for this debate.")

	s := New(gen)
	res, err := s.Synthesize(context.Background(), "Acme Corp", "record")
	require.NoError(t, err)
	assert.True(t, res.Failed)
	assert.Nil(t, res.Artifact)
	assert.Contains(t, res.Reason, "no structured payload")
	assert.Contains(t, res.RawPrefix, "I cannot produce")
}

func TestSynthesize_InvalidJSONIsTaggedFailure(t *testing.T) {
	gen := model.NewMockModel("mock", "test")
	gen.Queue(`{"rating": "buy", "score": }`)

	s := New(gen)
	res, err := s.Synthesize(context.Background(), "Acme Corp", "record")
	require.NoError(t, err)
	assert.True(t, res.Failed)
	assert.Contains(t, res.Reason, "not valid JSON")
}

func TestSynthesize_RawPrefixIsBounded(t *testing.T) {
	gen := model.NewMockModel("mock", "test")
	gen.Queue(strings.Repeat("x", 5000))

	s := New(gen, func(o *Options) { o.RawPrefixLen = 100 })
	res, err := s.Synthesize(context.Background(), "Acme Corp", "record")
	require.NoError(t, err)
	assert.True(t, res.Failed)
	assert.Len(t, res.RawPrefix, 100)
}

func TestSynthesize_GenerationErrorPropagates(t *testing.T) {
	gen := model.NewMockModel("mock", "test")
	gen.QueueError(errors.New("backend down"))

	s := New(gen)
	res, err := s.Synthesize(context.Background(), "Acme Corp", "record")
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Contains(t, err.Error(), "report generation failed")
}

func TestExtractBraced(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
		found bool
	}{
		{
			name:  "bare object",
			in:    `{"a":1}`,
			want:  `{"a":1}`,
			found: true,
		},
		{
			name:  "prose around object",
			in:    `noise {"field":"value"} more noise`,
			want:  `{"field":"value"}`,
			found: true,
		},
		{
			name:  "nested braces stay balanced",
			in:    `prefix {"outer":{"inner":[1,2]}} suffix`,
			want:  `{"outer":{"inner":[1,2]}}`,
			found: true,
		},
		{
			name:  "largest of several candidates wins",
			in:    `{"a":1} and then {"bigger":{"object":true}}`,
			want:  `{"bigger":{"object":true}}`,
			found: true,
		},
		{
			name:  "stray closer before opener is ignored",
			in:    `} junk {"ok":true}`,
			want:  `{"ok":true}`,
			found: true,
		},
		{
			name:  "no braces",
			in:    "plain prose only",
			found: false,
		},
		{
			name:  "unterminated opener",
			in:    `{"never": "closed"`,
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := extractBraced(tt.in)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}
