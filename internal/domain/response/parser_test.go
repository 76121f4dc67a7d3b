package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "guut.dev/pkg/guut/internal/model"
)

func newTestParser() Parser {
	return NewParser(DefaultTestLanguages, DefaultDebuggerLanguages)
}

func TestParser_Parse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want m.Action
	}{
		{
			name: "test section",
			text: "## Test\n```go\nfunc TestX(t *testing.T) {}\n```\n",
			want: m.Test{Code: "func TestX(t *testing.T) {}"},
		},
		{
			name: "closing fence on the code line",
			text: "## Test\n```go\ncode```",
			want: m.Test{Code: "code"},
		},
		{
			name: "experiment with debugger script",
			text: "## Experiment\n```go\nexp\n```\n\n```dlv\nbreak calc.go:3\ncontinue\n```\n",
			want: m.Experiment{Kind: m.KindExperiment, Code: "exp", DebuggerScript: "break calc.go:3\ncontinue"},
		},
		{
			name: "observation",
			text: "### Observation\n```go\nobs\n```\n",
			want: m.Experiment{Kind: m.KindObservation, Code: "obs"},
		},
		{
			name: "words before keyword",
			text: "## My First Experiment\n```go\nexp\n```\n",
			want: m.Experiment{Kind: m.KindExperiment, Code: "exp"},
		},
		{
			name: "test wins over experiment placed after it",
			text: "## Test\n```go\ntest\n```\n## Experiment\n```go\nexp\n```\n",
			want: m.Test{Code: "test"},
		},
		{
			name: "test wins over experiment placed before it",
			text: "## Experiment\n```go\nexp\n```\n## Test\n```go\ntest\n```\n",
			want: m.Test{Code: "test"},
		},
		{
			name: "experiment wins over observation",
			text: "## Observation\n```go\nobs\n```\n## Experiment\n```go\nexp\n```\n",
			want: m.Experiment{Kind: m.KindExperiment, Code: "exp"},
		},
		{
			name: "last block of a section wins",
			text: "## Test\n```go\nfirst\n```\nbetter:\n```go\nsecond\n```\n",
			want: m.Test{Code: "second"},
		},
		{
			name: "debugger script never attaches to tests",
			text: "## Test\n```go\ntest\n```\n```dlv\nbreak x\n```\n",
			want: m.Test{Code: "test"},
		},
		{
			name: "kindless code",
			text: "Let me try this:\n```go\ncode\n```\n",
			want: m.Code{Code: "code"},
		},
		{
			name: "untagged block in kindless section",
			text: "```\ncode\n```\n",
			want: m.Code{Code: "code"},
		},
		{
			name: "untagged block in test section is ignored",
			text: "## Test\n```\ncode\n```\n",
			want: nil,
		},
		{
			name: "unknown language ignored",
			text: "## Experiment\n```python\nprint(1)\n```\n",
			want: nil,
		},
		{
			name: "unterminated block",
			text: "## Test\n```go\nco",
			want: nil,
		},
		{
			name: "observation with only a debugger script",
			text: "## Observation\n```dlv\nbreak x\n```\n",
			want: nil,
		},
		{
			name: "headline inside code is not a headline",
			text: "## Experiment\n```go\n## Test\nexp\n```\n",
			want: m.Experiment{Kind: m.KindExperiment, Code: "## Test\nexp"},
		},
		{
			name: "plain prose",
			text: "I think the mutant changes the result.",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newTestParser().Parse(tt.text)
			assert.Equal(t, tt.want, got.Action)
			assert.Nil(t, got.Claim)
		})
	}
}

func TestParser_Sections(t *testing.T) {
	t.Run("deeper same-kind headline is swallowed", func(t *testing.T) {
		text := "## Experiment\n### Experiment details\n```go\nexp\n```\n"
		got := newTestParser().Parse(text)
		assert.Equal(t, m.Experiment{Kind: m.KindExperiment, Code: "exp"}, got.Action)
	})

	t.Run("same-depth headline starts a new section", func(t *testing.T) {
		// The debugger script belongs to the first section only.
		text := "## Experiment\n```dlv\nbreak x\n```\n## Experiment\n```go\nexp\n```\n"
		got := newTestParser().Parse(text)
		assert.Equal(t, m.Experiment{Kind: m.KindExperiment, Code: "exp"}, got.Action)
	})

	t.Run("deeper headline of another kind starts a new section", func(t *testing.T) {
		text := "## Experiment\n```dlv\nbreak x\n```\n### Test\n```go\ntest\n```\n"
		got := newTestParser().Parse(text)
		assert.Equal(t, m.Test{Code: "test"}, got.Action)
	})

	t.Run("kindless code before a headline", func(t *testing.T) {
		text := "```go\ncode\n```\n## Hypothesis\nnothing here\n"
		got := newTestParser().Parse(text)
		assert.Equal(t, m.Code{Code: "code"}, got.Action)
	})
}

func TestParser_EquivalenceClaim(t *testing.T) {
	t.Run("claim alone", func(t *testing.T) {
		got := newTestParser().Parse("## Equivalent Mutant\nThe mutant cannot be detected.\n")
		assert.Nil(t, got.Action)
		require.NotNil(t, got.Claim)
		assert.Contains(t, got.Claim.Text, "cannot be detected")
	})

	t.Run("claim alongside a test", func(t *testing.T) {
		text := "## Equivalent Mutant\nI believe it is equivalent.\n## Test\n```go\ntest\n```\n"
		got := newTestParser().Parse(text)
		assert.Equal(t, m.Test{Code: "test"}, got.Action)
		require.NotNil(t, got.Claim)
	})

	t.Run("claim inside code is ignored", func(t *testing.T) {
		got := newTestParser().Parse("```go\n## Equivalent\n```\n")
		assert.Nil(t, got.Claim)
	})
}

func TestParser_LastCode(t *testing.T) {
	p := newTestParser()

	code, ok := p.LastCode("## Test\n```go\na\n```\n## Conclusion\n```\nb\n```\n")
	require.True(t, ok)
	assert.Equal(t, "b", code)

	_, ok = p.LastCode("no code")
	assert.False(t, ok)
}

func TestRemoveStopWordResidue(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"nothing to strip", "## Test\n```go\nco", "## Test\n```go\nco"},
		{"trailing newline kept", "foo\n", "foo\n"},
		{"blank lines", "foo\n\n\n", "foo\n"},
		{"markdown marker", "```\n\n###", "```\n"},
		{"marker with spaces", "foo\n## \n", "foo\n"},
		{"go comment marker", "foo\n//\n", "foo\n"},
		{"only residue", "\n#\n", ""},
		{"code line is kept", "de```", "de```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemoveStopWordResidue(tt.in))
		})
	}
}
