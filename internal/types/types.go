// Package types 富文本文档模型与配置
package types

import (
	"fmt"
	"strings"
)

// LineSeparator 段内软换行（不开启新段落）
const LineSeparator = "\u2028"

// ListKind 段落的列表类型，每个 Block 只有一种，不支持嵌套
type ListKind int

const (
	ListNone ListKind = iota
	ListBullet
	ListNumbered
)

// String returns the string representation of ListKind.
func (k ListKind) String() string {
	switch k {
	case ListNone:
		return "none"
	case ListBullet:
		return "bullet"
	case ListNumbered:
		return "numbered"
	default:
		return "unknown"
	}
}

// Alignment 段落对齐方式
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// String returns the string representation of Alignment.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "unknown"
	}
}

// Color 8 位 RGB 颜色（无 alpha 通道）
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Black is the fallback export color for runs without an explicit color.
var Black = Color{0, 0, 0}

// Hex returns the color as an upper-case RRGGBB string without a leading '#'.
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// CharFormat 字符级格式
//
// 空 FontFamily 和非正 FontSizePt 表示"未设置"，继承文档默认值。
// Color 为 nil 表示使用主题前景色。
type CharFormat struct {
	FontFamily string  `json:"font_family,omitempty"`
	FontSizePt float64 `json:"font_size_pt,omitempty"`
	Bold       bool    `json:"bold,omitempty"`
	Italic     bool    `json:"italic,omitempty"`
	Underline  bool    `json:"underline,omitempty"`
	Color      *Color  `json:"color,omitempty"`
}

// Equal reports whether two formats would render identically.
func (f CharFormat) Equal(o CharFormat) bool {
	if f.FontFamily != o.FontFamily || f.Bold != o.Bold || f.Italic != o.Italic || f.Underline != o.Underline {
		return false
	}
	if f.HasSize() != o.HasSize() || (f.HasSize() && f.FontSizePt != o.FontSizePt) {
		return false
	}
	if (f.Color == nil) != (o.Color == nil) {
		return false
	}
	return f.Color == nil || *f.Color == *o.Color
}

// HasSize reports whether the format carries an explicit point size.
func (f CharFormat) HasSize() bool {
	return f.FontSizePt > 0
}

// Clone returns a copy that shares no pointers with f.
func (f CharFormat) Clone() CharFormat {
	if f.Color != nil {
		c := *f.Color
		f.Color = &c
	}
	return f
}

// Run 共享同一格式的最大连续文本片段
type Run struct {
	Text   string     `json:"text"`
	Format CharFormat `json:"format"`
}

// Block 一个段落
//
// Runs 按视觉顺序排列，拼接后即为段落全文。空段落保留一个空 Run 作为占位。
type Block struct {
	Runs  []Run     `json:"runs"`
	List  ListKind  `json:"list"`
	Align Alignment `json:"align"`
}

// Text returns the paragraph text: the concatenation of every run in order.
func (b Block) Text() string {
	if len(b.Runs) == 1 {
		return b.Runs[0].Text
	}
	var sb strings.Builder
	for _, r := range b.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// IsEmpty reports whether the block has no text.
func (b Block) IsEmpty() bool {
	for _, r := range b.Runs {
		if r.Text != "" {
			return false
		}
	}
	return true
}

// Document 富文本文档：有序的 Block 序列
type Document struct {
	Blocks []Block `json:"blocks"`
}

// NewDocument returns a document holding a single empty paragraph,
// which is what a freshly cleared editing surface contains.
func NewDocument() *Document {
	return &Document{Blocks: []Block{{Runs: []Run{{}}}}}
}

// Text returns the document text with blocks joined by a single newline.
func (d *Document) Text() string {
	parts := make([]string, len(d.Blocks))
	for i, b := range d.Blocks {
		parts[i] = b.Text()
	}
	return strings.Join(parts, "\n")
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{Blocks: make([]Block, len(d.Blocks))}
	for i, b := range d.Blocks {
		runs := make([]Run, len(b.Runs))
		for j, r := range b.Runs {
			runs[j] = Run{Text: r.Text, Format: r.Format.Clone()}
		}
		out.Blocks[i] = Block{Runs: runs, List: b.List, Align: b.Align}
	}
	return out
}
