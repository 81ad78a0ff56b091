package decision

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var panelRoles = []string{"finance", "news", "chart"}

func TestParse_WellFormedContinue(t *testing.T) {
	raw := "STATUS: [CONTINUE]\nNEXT_SPEAKER: [news]\nINSTRUCTION: Challenge the valuation claim."

	d := Parse(raw, panelRoles)
	assert.Equal(t, StatusContinue, d.Status)
	assert.Equal(t, "news", d.NextSpeaker)
	assert.Equal(t, "Challenge the valuation claim.", d.Instruction)
}

func TestParse_TerminateShortCircuits(t *testing.T) {
	// Speaker and instruction fields after a TERMINATE are ignored, even
	// when they are complete garbage.
	raw := "STATUS: TERMINATE\nNEXT_SPEAKER: nobody in particular\nINSTRUCTION: n/a"

	d := Parse(raw, panelRoles)
	assert.Equal(t, StatusTerminate, d.Status)
	assert.Empty(t, d.NextSpeaker)
	assert.Empty(t, d.Instruction)
}

func TestParse_MissingStatusIsUnparseable(t *testing.T) {
	d := Parse("The debate should probably keep going with the news analyst.", panelRoles)
	assert.Equal(t, StatusUnparseable, d.Status)
}

func TestParse_ContinueWithoutKnownSpeakerIsUnparseable(t *testing.T) {
	raw := "STATUS: CONTINUE\nNEXT_SPEAKER: the audience\nINSTRUCTION: carry on"

	d := Parse(raw, panelRoles)
	assert.Equal(t, StatusUnparseable, d.Status)
}

func TestParse_ContinueWithoutSpeakerFieldIsUnparseable(t *testing.T) {
	d := Parse("STATUS: CONTINUE", panelRoles)
	assert.Equal(t, StatusUnparseable, d.Status)
}

func TestParse_ToleratesFormattingNoise(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Decision
	}{
		{
			name: "lowercase and unbracketed",
			raw:  "status: continue\nnext_speaker: chart\ninstruction: respond",
			want: Decision{Status: StatusContinue, NextSpeaker: "chart", Instruction: "respond"},
		},
		{
			name: "speaker wrapped in prose",
			raw:  "STATUS: [CONTINUE]\nNEXT_SPEAKER: I'd like to hear from the Finance analyst next\nINSTRUCTION: go",
			want: Decision{Status: StatusContinue, NextSpeaker: "finance", Instruction: "go"},
		},
		{
			name: "extra whitespace around fields",
			raw:  "STATUS :  [ TERMINATE ]",
			want: Decision{Status: StatusTerminate},
		},
		{
			name: "preamble before the fields",
			raw:  "After weighing the arguments carefully:\n\nSTATUS: [CONTINUE]\nNEXT_SPEAKER: news\nINSTRUCTION: rebut the chart case",
			want: Decision{Status: StatusContinue, NextSpeaker: "news", Instruction: "rebut the chart case"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.raw, panelRoles))
		})
	}
}

func TestParse_MultilineInstruction(t *testing.T) {
	raw := "STATUS: [CONTINUE]\nNEXT_SPEAKER: finance\nINSTRUCTION: The chart analyst claimed a breakout.\nAddress whether the fundamentals support it."

	d := Parse(raw, panelRoles)
	assert.Equal(t, StatusContinue, d.Status)
	assert.Contains(t, d.Instruction, "breakout")
	assert.Contains(t, d.Instruction, "fundamentals support it")
}

func TestParse_EmptyInputIsUnparseable(t *testing.T) {
	d := Parse("", panelRoles)
	assert.Equal(t, StatusUnparseable, d.Status)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "CONTINUE", StatusContinue.String())
	assert.Equal(t, "TERMINATE", StatusTerminate.String())
	assert.Equal(t, "UNPARSEABLE", StatusUnparseable.String())
}
