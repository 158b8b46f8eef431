package mdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riverfjs/openpen-go/internal/types"
)

func TestParse_Emphasis(t *testing.T) {
	doc := Parse([]byte("Hello **bold** and *it*"), nil)

	require.Len(t, doc.Blocks, 1)
	runs := doc.Blocks[0].Runs
	require.Len(t, runs, 4)
	assert.Equal(t, "Hello ", runs[0].Text)
	assert.True(t, runs[1].Format.Bold)
	assert.False(t, runs[1].Format.Italic)
	assert.Equal(t, " and ", runs[2].Text)
	assert.True(t, runs[3].Format.Italic)
}

func TestParse_Lists(t *testing.T) {
	doc := Parse([]byte("- a\n- b\n\n1. x\n2. y\n"), nil)

	require.Len(t, doc.Blocks, 4)
	want := []types.ListKind{types.ListBullet, types.ListBullet, types.ListNumbered, types.ListNumbered}
	for i, kind := range want {
		assert.Equal(t, kind, doc.Blocks[i].List, "block %d", i)
	}
	assert.Equal(t, "a\nb\nx\ny", doc.Text())
}

func TestParse_Heading(t *testing.T) {
	cfg := types.DefaultConfig()
	doc := Parse([]byte("# Title\n\nbody\n"), cfg)

	require.Len(t, doc.Blocks, 2)
	f := doc.Blocks[0].Runs[0].Format
	assert.True(t, f.Bold)
	assert.Equal(t, cfg.HeadingSize(1), f.FontSizePt)
	assert.False(t, doc.Blocks[1].Runs[0].Format.Bold)
}

func TestParse_CodeBlock(t *testing.T) {
	cfg := types.DefaultConfig()
	doc := Parse([]byte("```\nline1\nline2\n```\n"), cfg)

	require.Len(t, doc.Blocks, 2)
	for _, b := range doc.Blocks {
		assert.Equal(t, cfg.MonospaceFont, b.Runs[0].Format.FontFamily)
	}
	assert.Equal(t, "line1", doc.Blocks[0].Text())
}

func TestParse_HardBreakStaysInBlock(t *testing.T) {
	doc := Parse([]byte("one  \ntwo\n"), nil)

	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, "one"+types.LineSeparator+"two", doc.Blocks[0].Text())
}

func TestParse_Empty(t *testing.T) {
	doc := Parse(nil, nil)
	require.Len(t, doc.Blocks, 1)
	assert.True(t, doc.Blocks[0].IsEmpty())
}

func TestRender_ListPrefixes(t *testing.T) {
	doc := &types.Document{Blocks: []types.Block{
		{Runs: []types.Run{{Text: "a"}}, List: types.ListBullet},
		{Runs: []types.Run{{Text: "b"}}, List: types.ListBullet},
		{Runs: []types.Run{{Text: "x"}}, List: types.ListNumbered},
		{Runs: []types.Run{{Text: "y"}}, List: types.ListNumbered},
	}}

	assert.Equal(t, "- a\n- b\n\n1. x\n2. y\n", string(Render(doc)))
}

func TestRender_SkipsEmptyParagraphs(t *testing.T) {
	doc := &types.Document{Blocks: []types.Block{
		{Runs: []types.Run{{Text: "a"}}},
		{Runs: []types.Run{{}}},
		{Runs: []types.Run{{Text: "b"}}},
	}}

	assert.Equal(t, "a\n\nb\n", string(Render(doc)))
}

func TestRender_MarkersAvoidEdgeSpaces(t *testing.T) {
	doc := &types.Document{Blocks: []types.Block{{Runs: []types.Run{
		{Text: "x"},
		{Text: " bold ", Format: types.CharFormat{Bold: true}},
		{Text: "y"},
	}}}}

	assert.Equal(t, "x **bold** y\n", string(Render(doc)))
}

func TestRender_EscapesBlockStart(t *testing.T) {
	tests := []struct {
		text, want string
	}{
		{"# x", `\# x`},
		{"- x", `\- x`},
		{"+ x", `\+ x`},
		{"> x", `\> x`},
		{"12. x", `12\. x`},
		{"3) x", `3\) x`},
		{"2024 x", "2024 x"},
		{"a # b", "a # b"},
	}
	for _, tt := range tests {
		doc := &types.Document{Blocks: []types.Block{{Runs: []types.Run{{Text: tt.text}}}}}
		assert.Equal(t, tt.want+"\n", string(Render(doc)), tt.text)
	}
}

func TestRoundTrip_LeadingSpaces(t *testing.T) {
	doc := &types.Document{Blocks: []types.Block{
		{Runs: []types.Run{{Text: "    code?"}}},
		{Runs: []types.Run{{Text: "   "}}},
	}}

	out := Parse(Render(doc), nil)

	require.Len(t, out.Blocks, 2)
	assert.Equal(t, "    code?", out.Blocks[0].Text())
	assert.Equal(t, "   ", out.Blocks[1].Text())
	assert.Empty(t, out.Blocks[0].Runs[0].Format.FontFamily)
}

func TestRoundTrip(t *testing.T) {
	doc := &types.Document{Blocks: []types.Block{
		{Runs: []types.Run{
			{Text: "plain "},
			{Text: "bold", Format: types.CharFormat{Bold: true}},
			{Text: " "},
			{Text: "both", Format: types.CharFormat{Bold: true, Italic: true}},
			{Text: " "},
			{Text: "under", Format: types.CharFormat{Underline: true}},
		}},
		{Runs: []types.Run{{Text: "2 * 3 _ [x]"}}},
		{Runs: []types.Run{{Text: "first"}}, List: types.ListBullet},
		{Runs: []types.Run{{Text: "second"}}, List: types.ListNumbered},
		{Runs: []types.Run{{Text: "soft" + types.LineSeparator + "break"}}},
		{Runs: []types.Run{{Text: "# not a heading"}}},
		{Runs: []types.Run{{Text: "- not a list"}}},
		{Runs: []types.Run{{Text: "1. not numbered"}}},
		{Runs: []types.Run{{Text: "> not a quote"}}},
		{Runs: []types.Run{{Text: "# item"}}, List: types.ListBullet},
	}}

	out := Parse(Render(doc), nil)

	require.Len(t, out.Blocks, len(doc.Blocks))
	for i := range doc.Blocks {
		assert.Equal(t, doc.Blocks[i].Text(), out.Blocks[i].Text(), "block %d", i)
		assert.Equal(t, doc.Blocks[i].List, out.Blocks[i].List, "block %d", i)
	}

	runs := out.Blocks[0].Runs
	require.Len(t, runs, 6)
	assert.True(t, runs[1].Format.Bold)
	assert.True(t, runs[3].Format.Bold && runs[3].Format.Italic)
	assert.True(t, runs[5].Format.Underline)
}
