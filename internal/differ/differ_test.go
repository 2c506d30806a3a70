package differ

import (
	"errors"
	"html"
	"regexp"
	"strings"
	"testing"

	"github.com/alansmodic/edit-ledger/internal/config"
	"github.com/alansmodic/edit-ledger/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	insPattern = regexp.MustCompile(`<ins class="[^"]*">([^<]*)</ins>`)
	delPattern = regexp.MustCompile(`<del class="[^"]*">([^<]*)</del>`)
)

// sides rebuilds the from and to texts out of rendered markup
func sides(markup string) (string, string) {
	from := insPattern.ReplaceAllString(markup, "")
	from = delPattern.ReplaceAllString(from, "$1")
	to := delPattern.ReplaceAllString(markup, "")
	to = insPattern.ReplaceAllString(to, "$1")
	return html.UnescapeString(from), html.UnescapeString(to)
}

func TestTokenize_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"word",
		"   ",
		"The cat sat.",
		"  leading and trailing  ",
		"tabs\tand\nnewlines\r\n",
		"ünïcödé  wörds nbsp",
		"a",
	}
	for _, s := range inputs {
		assert.Equal(t, s, strings.Join(Tokenize(s), ""), "input %q", s)
	}
}

func TestTokenize_MaximalRuns(t *testing.T) {
	assert.Equal(t, []string{"The", " ", "cat", "  \n", "sat."}, Tokenize("The cat  \nsat."))
	assert.Equal(t, []string{" ", "x"}, Tokenize(" x"))
	assert.Nil(t, Tokenize(""))
}

func TestDiff_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		want     string
	}{
		{
			name: "paragraph word swap",
			from: "The cat sat.",
			to:   "The dog sat.",
			want: `The <del class="edit-ledger-diff-del">cat</del><ins class="edit-ledger-diff-ins">dog</ins> sat.`,
		},
		{
			name: "full removal",
			from: "Some text",
			to:   "",
			want: `<del class="edit-ledger-diff-del">Some text</del>`,
		},
		{
			name: "full insertion",
			from: "",
			to:   "New text",
			want: `<ins class="edit-ledger-diff-ins">New text</ins>`,
		},
		{
			name: "identical",
			from: "same words",
			to:   "same words",
			want: "",
		},
		{
			name: "both empty",
			want: "",
		},
		{
			name: "appended words",
			from: "a b",
			to:   "a b c",
			want: `a b<ins class="edit-ledger-diff-ins"> c</ins>`,
		},
		{
			name: "markup is escaped",
			from: "x <b>",
			to:   `x "&"`,
			want: `x <del class="edit-ledger-diff-del">&lt;b&gt;</del><ins class="edit-ledger-diff-ins">&#34;&amp;&#34;</ins>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Diff(tt.from, tt.to))
		})
	}
}

func TestDiff_TieBreakPrefersInsertion(t *testing.T) {
	// "a" and "b" share nothing: the backtrack inserts first, so the deletion renders first
	assert.Equal(t,
		`<del class="edit-ledger-diff-del">a</del><ins class="edit-ledger-diff-ins">b</ins>`,
		Diff("a", "b"))

	ops := editScript([]string{"x", "y"}, []string{"y", "x"})
	assert.Equal(t, []models.ContentDiff{
		{Operation: models.DiffDelete, Text: "x"},
		{Operation: models.DiffEqual, Text: "y"},
		{Operation: models.DiffInsert, Text: "x"},
	}, ops)
}

func TestDiff_Reconstruction(t *testing.T) {
	pairs := [][2]string{
		{"The cat sat.", "The dog sat."},
		{"one two three four", "zero one three five four six"},
		{"Line one\nLine two\n\nLine three", "Line one\nLine 2\n\nLine three\nLine four"},
		{"a <tag> & 'quote'", "a <tag2> & \"quote\""},
		{"repeat repeat repeat", "repeat"},
		{"  spaced   out  ", "spaced out"},
	}
	for _, p := range pairs {
		from, to := sides(Diff(p[0], p[1]))
		assert.Equal(t, p[0], from)
		assert.Equal(t, p[1], to)
	}
}

func TestDiff_Identity(t *testing.T) {
	for _, s := range []string{"", " ", "text", "<p>markup</p>", "multi\nline"} {
		assert.Equal(t, "", Diff(s, s))
	}
}

func TestWordDiffer_SegmentsAreMerged(t *testing.T) {
	out := defaultDiffer.Analyze("keep drop drop keep", "keep add add keep")

	for i := 1; i < len(out.Segments); i++ {
		assert.NotEqual(t, out.Segments[i-1].Operation, out.Segments[i].Operation)
	}
	for _, seg := range out.Segments {
		assert.NotEmpty(t, seg.Text)
	}
	assert.False(t, out.Stats.IsIdentical)
	assert.Equal(t, 5, out.Stats.TokensEqual)
	assert.Equal(t, 2, out.Stats.TokensInserted)
	assert.Equal(t, 2, out.Stats.TokensDeleted)
}

func TestWordDiffer_CustomClasses(t *testing.T) {
	cfg := config.NewDefaultDiffConfig()
	cfg.InsertClass = "added"
	cfg.DeleteClass = "removed"

	d, err := NewWordDifferBuilder().WithDiffConfig(cfg).Build()
	require.NoError(t, err)

	assert.Equal(t, `<del class="removed">a</del><ins class="added">b</ins>`, d.Diff("a", "b"))
}

func TestWordDifferBuilder_RejectsEmptyClass(t *testing.T) {
	cfg := config.NewDefaultDiffConfig()
	cfg.DeleteClass = " "

	_, err := NewWordDifferBuilder().WithDiffConfig(cfg).Build()
	assert.Error(t, err)
}

func TestAnalyzeWithLimit(t *testing.T) {
	errTooBig := errors.New("too big")
	var seenM, seenN int
	admit := func(m, n int) error {
		seenM, seenN = m, n
		return errTooBig
	}

	_, err := defaultDiffer.AnalyzeWithLimit("a b c", "a b", admit)
	assert.ErrorIs(t, err, errTooBig)
	assert.Equal(t, 5, seenM)
	assert.Equal(t, 3, seenN)

	// shortcuts never build a table
	out, err := defaultDiffer.AnalyzeWithLimit("", "new", admit)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Stats.TokensInserted)
}

func TestCoarse(t *testing.T) {
	out := defaultDiffer.Coarse("old words", "new words")
	assert.Equal(t,
		`<del class="edit-ledger-diff-del">old words</del><ins class="edit-ledger-diff-ins">new words</ins>`,
		out.Markup)
	assert.Equal(t, 3, out.Stats.TokensDeleted)
	assert.Equal(t, 3, out.Stats.TokensInserted)

	assert.Equal(t, "", defaultDiffer.Coarse("same", "same").Markup)
}

func TestTableSizing(t *testing.T) {
	assert.Equal(t, int64(12), TableCells(2, 3))
	assert.Equal(t, uint64(48), TableBytes(2, 3))
}

func TestPatchRoundTrip(t *testing.T) {
	from := "The quick brown fox jumps over the lazy dog."
	to := "The quick red fox leaps over the sleepy dog!"

	patch := BuildPatch(from, to)
	require.NotEmpty(t, patch)

	got, err := ApplyPatch(from, patch)
	require.NoError(t, err)
	assert.Equal(t, to, got)

	assert.Empty(t, BuildPatch(from, from))
	same, err := ApplyPatch(from, "")
	require.NoError(t, err)
	assert.Equal(t, from, same)
}

func TestApplyPatch_Malformed(t *testing.T) {
	_, err := ApplyPatch("text", "not a patch")
	assert.Error(t, err)
}
