package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharFormat_Equal(t *testing.T) {
	red := Color{R: 255}
	red2 := Color{R: 255}

	assert.True(t, CharFormat{Color: &red}.Equal(CharFormat{Color: &red2}))
	assert.False(t, CharFormat{Color: &red}.Equal(CharFormat{}))
	// 非正字号都表示未设置
	assert.True(t, CharFormat{FontSizePt: -1}.Equal(CharFormat{}))
	assert.False(t, CharFormat{FontSizePt: 12}.Equal(CharFormat{FontSizePt: 14}))
}

func TestDocument_CloneIsDeep(t *testing.T) {
	c := Color{G: 1}
	doc := &Document{Blocks: []Block{{Runs: []Run{{Text: "x", Format: CharFormat{Color: &c}}}, List: ListBullet}}}

	cp := doc.Clone()
	cp.Blocks[0].Runs[0].Text = "y"
	cp.Blocks[0].Runs[0].Format.Color.G = 9

	assert.Equal(t, "x", doc.Blocks[0].Runs[0].Text)
	assert.Equal(t, uint8(1), doc.Blocks[0].Runs[0].Format.Color.G)
	assert.Equal(t, ListBullet, cp.Blocks[0].List)
}

func TestDocument_Text(t *testing.T) {
	doc := &Document{Blocks: []Block{
		{Runs: []Run{{Text: "a"}, {Text: "b"}}},
		{Runs: []Run{{}}},
		{Runs: []Run{{Text: "c"}}},
	}}
	assert.Equal(t, "ab\n\nc", doc.Text())
	assert.True(t, doc.Blocks[1].IsEmpty())
	assert.Equal(t, "\n", (&Document{Blocks: []Block{{}, {}}}).Text())
}

func TestColor_Hex(t *testing.T) {
	assert.Equal(t, "FF0A00", Color{R: 255, G: 10}.Hex())
}

func TestConfig_Defaults(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 28.0, cfg.HeadingSize(1))
	assert.Equal(t, 16.0, cfg.HeadingSize(99))
	assert.Equal(t, 28.0, cfg.HeadingSize(0))
	assert.Equal(t, Color{0xDD, 0xDD, 0xDD}, ThemeDark.Foreground())
	assert.Equal(t, Black, ThemeLight.Foreground())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(c *Config)
	}{
		{"zoom low", func(c *Config) { c.Zoom = 0.1 }},
		{"zoom high", func(c *Config) { c.Zoom = 5 }},
		{"theme", func(c *Config) { c.Theme = "neon" }},
		{"page", func(c *Config) { c.PageSize = "tabloid" }},
		{"heading", func(c *Config) { c.HeadingSizes = []float64{10, 0} }},
		{"font size", func(c *Config) { c.DefaultFontSize = -2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mod(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := DefaultConfig()
	cfg.PageSize = "A4"
	assert.NoError(t, cfg.Validate())
}
