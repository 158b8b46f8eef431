package types

import (
	"fmt"
	"strings"
)

// Theme 界面主题
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Foreground returns the default text color of the theme, used for runs
// that carry no explicit color.
func (t Theme) Foreground() Color {
	if t == ThemeDark {
		return Color{0xDD, 0xDD, 0xDD}
	}
	return Black
}

const (
	MinZoom = 0.25
	MaxZoom = 4.0
)

// Config 编辑器与转换器共享的配置
//
// 原先散落在窗口对象上的主题和缩放状态都收拢到这里，由调用方显式传递。
type Config struct {
	DefaultFont     string    `toml:"default_font"`
	DefaultFontSize float64   `toml:"default_font_size"`
	MonospaceFont   string    `toml:"monospace_font"`
	HeadingSizes    []float64 `toml:"heading_sizes"`
	Theme           Theme     `toml:"theme"`
	Zoom            float64   `toml:"zoom"`
	PageSize        string    `toml:"page_size"`
	LogLevel        string    `toml:"log_level"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults fills zero-valued fields with their defaults.
func (c *Config) SetDefaults() {
	if c.DefaultFont == "" {
		c.DefaultFont = "Times New Roman"
	}
	if c.DefaultFontSize <= 0 {
		c.DefaultFontSize = 16
	}
	if c.MonospaceFont == "" {
		c.MonospaceFont = "Courier New"
	}
	if len(c.HeadingSizes) == 0 {
		c.HeadingSizes = []float64{28, 24, 20, 18, 16, 16}
	}
	if c.Theme == "" {
		c.Theme = ThemeLight
	}
	if c.Zoom == 0 {
		c.Zoom = 1.0
	}
	if c.PageSize == "" {
		c.PageSize = "letter"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate checks field ranges. Zoom outside [MinZoom, MaxZoom] is rejected
// rather than clamped so a typo in a config file is noticed.
func (c *Config) Validate() error {
	if c.DefaultFontSize <= 0 {
		return fmt.Errorf("default_font_size must be positive, got %v", c.DefaultFontSize)
	}
	if c.Zoom < MinZoom || c.Zoom > MaxZoom {
		return fmt.Errorf("zoom must be between %v and %v, got %v", MinZoom, MaxZoom, c.Zoom)
	}
	switch c.Theme {
	case ThemeLight, ThemeDark:
	default:
		return fmt.Errorf("unknown theme %q", c.Theme)
	}
	switch strings.ToLower(c.PageSize) {
	case "letter", "a4", "legal":
	default:
		return fmt.Errorf("unknown page_size %q", c.PageSize)
	}
	for i, s := range c.HeadingSizes {
		if s <= 0 {
			return fmt.Errorf("heading_sizes[%d] must be positive", i)
		}
	}
	return nil
}

// HeadingSize returns the point size for a heading level (1-based),
// clamping out-of-range levels to the nearest configured entry.
func (c *Config) HeadingSize(level int) float64 {
	if len(c.HeadingSizes) == 0 {
		return c.DefaultFontSize
	}
	if level < 1 {
		level = 1
	}
	if level > len(c.HeadingSizes) {
		level = len(c.HeadingSizes)
	}
	return c.HeadingSizes[level-1]
}
