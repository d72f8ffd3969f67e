package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandListsSubcommands(t *testing.T) {
	cmd := newRootCommand()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "serve")
	assert.Contains(t, out.String(), "generate")
}

func TestGenerateFlagsParse(t *testing.T) {
	cmd := newGenerateCommand()

	require.NoError(t, cmd.ParseFlags([]string{"--category", "business,technology", "-c", "science", "--speed", "1.5", "--minutes", "5"}))

	cats, err := cmd.Flags().GetStringSlice("category")
	require.NoError(t, err)
	assert.Equal(t, []string{"business", "technology", "science"}, cats)

	speed, err := cmd.Flags().GetFloat64("speed")
	require.NoError(t, err)
	assert.InDelta(t, 1.5, speed, 1e-9)
}
