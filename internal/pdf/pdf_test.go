package pdf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riverfjs/openpen-go/internal/types"
)

func TestFontFor(t *testing.T) {
	tests := []struct {
		family, fallback, want string
	}{
		{"Courier New", "", "Courier"},
		{"DejaVu Sans Mono", "", "Courier"},
		{"Arial", "", "Helvetica"},
		{"Times New Roman", "", "Times"},
		{"", "Helvetica", "Helvetica"},
		{"", "", "Times"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FontFor(tt.family, tt.fallback), "%q/%q", tt.family, tt.fallback)
	}
}

func TestExport_WritesPDF(t *testing.T) {
	red := types.Color{R: 255}
	doc := &types.Document{Blocks: []types.Block{
		{Runs: []types.Run{
			{Text: "Title", Format: types.CharFormat{Bold: true, FontSizePt: 28}},
		}, Align: types.AlignCenter},
		{Runs: []types.Run{
			{Text: "plain "},
			{Text: "red italic", Format: types.CharFormat{Italic: true, Color: &red}},
			{Text: " under", Format: types.CharFormat{Underline: true, FontFamily: "Courier New"}},
		}},
		{Runs: []types.Run{{}}},
		{Runs: []types.Run{{Text: "bullet"}}, List: types.ListBullet},
		{Runs: []types.Run{{Text: "one"}}, List: types.ListNumbered},
		{Runs: []types.Run{{Text: "two"}}, List: types.ListNumbered},
		{Runs: []types.Run{{Text: "a" + types.LineSeparator + "b"}}, Align: types.AlignRight},
	}}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, doc, nil))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), "%%EOF")
}

func TestExport_EmptyAndNil(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, types.NewDocument(), nil))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	buf.Reset()
	require.NoError(t, Export(&buf, nil, nil))
	assert.NotZero(t, buf.Len())
}

func TestExport_PageSize(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.PageSize = "a4"
	doc := types.NewDocument()

	var a4, letter bytes.Buffer
	require.NoError(t, Export(&a4, doc, cfg))
	require.NoError(t, Export(&letter, doc, nil))

	// MediaBox 以点为单位：A4 为 595.28 x 841.89，Letter 为 612 x 792
	assert.Contains(t, a4.String(), "595.28")
	assert.Contains(t, letter.String(), "612.00")
}
