package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lueurxax/glint/internal/core/errors"
)

var testTwoFieldSchema = Schema{
	Task: "classify",
	Fields: []Field{
		{Name: "important_news", Kind: KindText},
		{Name: "mention_news", Kind: KindText},
	},
}

func TestAsList(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want []string
	}{
		{
			name: "structured list trims and drops blanks",
			in:   StructuredList{" one ", "", "two"},
			want: []string{"one", "two"},
		},
		{
			name: "raw text with mixed markers",
			in:   RawText("• first\n- second\n* third\n1. fourth\n2) fifth"),
			want: []string{"first", "second", "third", "fourth", "fifth"},
		},
		{
			name: "raw text without markers",
			in:   RawText("alpha\n\n  beta  \n"),
			want: []string{"alpha", "beta"},
		},
		{
			name: "empty raw text",
			in:   RawText("   "),
			want: []string{},
		},
		{
			name: "nil value",
			in:   nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AsList(tt.in))
		})
	}
}

func TestSchemaInstruct(t *testing.T) {
	s := Schema{Task: "bullets", Fields: []Field{
		{Name: "bullets", Kind: KindList, Description: "exactly 3 points"},
		{Name: "note", Kind: KindText},
	}}

	got := s.Instruct("## Key Points:\n")

	assert.Contains(t, got, "## Key Points:\n\n## Output Format\n")
	assert.Contains(t, got, "- bullets: array of strings - exactly 3 points\n")
	assert.Contains(t, got, "- note: string\n")
}

func TestSchemaParse(t *testing.T) {
	t.Run("plain json", func(t *testing.T) {
		out, err := testTwoFieldSchema.Parse(`{"important_news":"A","mention_news":"B"}`)
		require.NoError(t, err)

		assert.Equal(t, "A", out.Text("important_news"))
		assert.Equal(t, "B", out.Text("mention_news"))
	})

	t.Run("json inside code fence", func(t *testing.T) {
		out, err := testTwoFieldSchema.Parse("```json\n{\"important_news\":\"A\",\"mention_news\":\"\"}\n```")
		require.NoError(t, err)

		assert.Equal(t, "A", out.Text("important_news"))
		assert.Empty(t, out.Text("mention_news"))
	})

	t.Run("missing field is empty", func(t *testing.T) {
		out, err := testTwoFieldSchema.Parse(`{"important_news":"A"}`)
		require.NoError(t, err)

		assert.Empty(t, out.Text("mention_news"))
	})

	t.Run("multi field non json is upstream error", func(t *testing.T) {
		_, err := testTwoFieldSchema.Parse("I could not classify these.")
		require.Error(t, err)

		assert.ErrorIs(t, err, apperrors.ErrUpstream)
	})

	t.Run("empty reply", func(t *testing.T) {
		_, err := testTwoFieldSchema.Parse("  ")

		assert.ErrorIs(t, err, apperrors.ErrEmptyResponse)
	})

	t.Run("single field falls back to raw text", func(t *testing.T) {
		sig := TextSignature("summarize", "summary", "")

		out, err := sig.Schema.Parse("Just a plain summary.")
		require.NoError(t, err)

		assert.Equal(t, "Just a plain summary.", sig.Decode(out))
	})

	t.Run("single field json without the key falls back", func(t *testing.T) {
		sig := TextSignature("summarize", "summary", "")

		out, err := sig.Schema.Parse(`Here is {"other":"x"}`)
		require.NoError(t, err)

		assert.Equal(t, `Here is {"other":"x"}`, sig.Decode(out))
	})

	t.Run("list field as json array", func(t *testing.T) {
		sig := ListSignature("bullets", "bullets", "")

		out, err := sig.Schema.Parse(`{"bullets":["a","b",3]}`)
		require.NoError(t, err)

		assert.Equal(t, []string{"a", "b", "3"}, sig.Decode(out))
	})

	t.Run("list field as string falls back to splitting", func(t *testing.T) {
		sig := ListSignature("bullets", "bullets", "")

		out, err := sig.Schema.Parse(`{"bullets":"- a\n- b"}`)
		require.NoError(t, err)

		assert.Equal(t, []string{"a", "b"}, sig.Decode(out))
	})

	t.Run("list field as raw reply", func(t *testing.T) {
		sig := ListSignature("bullets", "bullets", "")

		out, err := sig.Schema.Parse("1. a\n2. b\n3. c")
		require.NoError(t, err)

		assert.Equal(t, []string{"a", "b", "c"}, sig.Decode(out))
	})
}

func TestOutputTextJoinsLists(t *testing.T) {
	out := Output{"x": StructuredList{"a", "b"}}

	assert.Equal(t, "a\nb", out.Text("x"))
	assert.Empty(t, out.Text("missing"))
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "pure_object", input: `{"key":"value"}`, want: `{"key":"value"}`},
		{name: "object_with_preamble", input: `Here: {"key":"value"} done.`, want: `{"key":"value"}`},
		{name: "nested_braces", input: `{"a":{"b":1}}`, want: `{"a":{"b":1}}`},
		{name: "no_json", input: "just some text", want: "just some text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.input))
		})
	}
}
