package script

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lueurxax/glint/internal/core/errors"
	"github.com/lueurxax/glint/internal/core/llm"
)

type fakeInvoker struct {
	calls       int
	instruction string
	reply       string
}

func (f *fakeInvoker) Invoke(_ context.Context, _ llm.Target, instruction string, _ llm.Schema) (llm.Output, error) {
	f.calls++
	f.instruction = instruction

	return llm.Output{"script": llm.RawText(f.reply)}, nil
}

func newGenerator(inv *fakeInvoker) *Generator {
	logger := zerolog.Nop()

	return New(inv, llm.Target{}, &logger)
}

func TestGenerateRequiresContent(t *testing.T) {
	inv := &fakeInvoker{}

	_, err := newGenerator(inv).Generate(context.Background(), Request{Weather: "sunny", Style: "calm"})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "Require at least news or analysis content")
	assert.Zero(t, inv.calls)
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		req      Request
		contains []string
	}{
		{
			name: "news only with default length",
			req:  Request{NewsSummary: "Important News:\nRates up", Weather: "Monday 9:00"},
			contains: []string{
				"Create a 10-minute engaging podcast script",
				"Rates up",
				"Monday 9:00",
				"4096 characters",
			},
		},
		{
			name:     "reflection only with custom length and style",
			req:      Request{Reflection: "Deep thoughts", Style: "relaxed", LengthMinutes: 3},
			contains: []string{"Create a 3-minute", "Deep thoughts", "Maintain relaxed tone throughout"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &fakeInvoker{reply: "Good morning! [PAUSE] Here is the news."}

			got, err := newGenerator(inv).Generate(context.Background(), tt.req)
			require.NoError(t, err)

			assert.Equal(t, "Good morning! [PAUSE] Here is the news.", got)
			assert.Equal(t, 1, inv.calls)

			for _, want := range tt.contains {
				assert.Contains(t, inv.instruction, want)
			}
		})
	}
}
