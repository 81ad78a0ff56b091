package moderator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/debatemesh/decision"
	"github.com/hupe1980/debatemesh/model"
)

func TestModerator_FacilitatePrompt(t *testing.T) {
	gen := model.NewMockModel("mock", "test")
	gen.Queue("STATUS: [CONTINUE]\nNEXT_SPEAKER: [news]\nINSTRUCTION: rebut the margin claim")

	m := New(gen)
	raw, err := m.Facilitate(context.Background(), "Acme Corp", []string{"finance", "news"}, "[finance]\nmargins are wide\n")
	require.NoError(t, err)

	reqs := gen.Requests()
	require.Len(t, reqs, 1)
	assert.Contains(t, reqs[0].Input, "The panel is debating Acme Corp")
	assert.Contains(t, reqs[0].Input, "margins are wide")
	assert.Contains(t, reqs[0].Input, "STATUS: [CONTINUE] or [TERMINATE]")
	assert.Contains(t, reqs[0].Input, "one of: finance, news")

	// The raw text must round-trip through the decision parser.
	d := decision.Parse(raw, []string{"finance", "news"})
	assert.Equal(t, decision.StatusContinue, d.Status)
	assert.Equal(t, "news", d.NextSpeaker)
}

func TestModerator_FacilitateErrorWrapped(t *testing.T) {
	gen := model.NewMockModel("mock", "test")
	gen.QueueError(errors.New("backend down"))

	m := New(gen)
	_, err := m.Facilitate(context.Background(), "Acme Corp", []string{"finance"}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "moderator decision failed")
}

func TestModerator_SummarizePrompt(t *testing.T) {
	gen := model.NewMockModel("mock", "test")
	gen.Queue("The analysts agreed on momentum, disagreed on valuation.")

	m := New(gen)
	summary, err := m.Summarize(context.Background(), "Acme Corp", "[finance]\nvaluation is stretched\n")
	require.NoError(t, err)
	assert.Equal(t, "The analysts agreed on momentum, disagreed on valuation.", summary)

	reqs := gen.Requests()
	require.Len(t, reqs, 1)
	assert.Contains(t, reqs[0].Input, "has concluded")
	assert.Contains(t, reqs[0].Input, "Do not pick a winner")
	assert.Contains(t, reqs[0].Instructions, "neutral summary")
}
