package openpen

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// 编辑命令
//
// 位置以 rune 计，坐标系与 Document.Text() 一致：相邻段落之间的分隔占一个位置。
// 所有命令都保持 Run 对段落文本的划分，并合并格式相同的相邻 Run。

// FormatChange 部分字符格式，nil 字段保持不变
type FormatChange struct {
	SetBold       *bool
	SetItalic     *bool
	SetUnderline  *bool
	SetFontFamily *string
	SetFontSize   *float64
	SetColor      *Color
}

func (c FormatChange) apply(f CharFormat) CharFormat {
	f = f.Clone()
	if c.SetBold != nil {
		f.Bold = *c.SetBold
	}
	if c.SetItalic != nil {
		f.Italic = *c.SetItalic
	}
	if c.SetUnderline != nil {
		f.Underline = *c.SetUnderline
	}
	if c.SetFontFamily != nil {
		f.FontFamily = *c.SetFontFamily
	}
	if c.SetFontSize != nil {
		f.FontSizePt = *c.SetFontSize
	}
	if c.SetColor != nil {
		col := *c.SetColor
		f.Color = &col
	}
	return f
}

// TextLen returns the length of Document.Text() in runes.
func TextLen(doc *Document) int {
	if doc == nil || len(doc.Blocks) == 0 {
		return 0
	}
	n := len(doc.Blocks) - 1
	for _, b := range doc.Blocks {
		n += utf8.RuneCountInString(b.Text())
	}
	return n
}

func checkRange(doc *Document, start, end int) error {
	if doc == nil || start < 0 || end < start || end > TextLen(doc) {
		return fmt.Errorf("%w: [%d, %d)", ErrOutOfRange, start, end)
	}
	return nil
}

// ApplyFormat 将部分格式合并到区间 [start, end) 内的所有文本
func ApplyFormat(doc *Document, start, end int, change FormatChange) error {
	return mapRange(doc, start, end, change.apply)
}

// AdjustFontSize 将区间内文本的字号增减 delta 磅，最小 1 磅。
// 未设置字号的 Run 以 cfg.DefaultFontSize 为基准。
func AdjustFontSize(doc *Document, start, end int, delta float64, cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return mapRange(doc, start, end, func(f CharFormat) CharFormat {
		f = f.Clone()
		size := f.FontSizePt
		if size <= 0 {
			size = cfg.DefaultFontSize
		}
		f.FontSizePt = max(size+delta, 1)
		return f
	})
}

// ToggleBold 区间第一个字符为粗体时整段取消，否则整段设为粗体
func ToggleBold(doc *Document, start, end int) error {
	return toggle(doc, start, end,
		func(f CharFormat) bool { return f.Bold },
		func(on bool) FormatChange { return FormatChange{SetBold: &on} })
}

// ToggleItalic 同 ToggleBold
func ToggleItalic(doc *Document, start, end int) error {
	return toggle(doc, start, end,
		func(f CharFormat) bool { return f.Italic },
		func(on bool) FormatChange { return FormatChange{SetItalic: &on} })
}

// ToggleUnderline 同 ToggleBold
func ToggleUnderline(doc *Document, start, end int) error {
	return toggle(doc, start, end,
		func(f CharFormat) bool { return f.Underline },
		func(on bool) FormatChange { return FormatChange{SetUnderline: &on} })
}

func toggle(doc *Document, start, end int, get func(CharFormat) bool, set func(bool) FormatChange) error {
	if err := checkRange(doc, start, end); err != nil {
		return err
	}
	if start == end {
		return nil
	}
	// 以区间内第一个字符的格式为准：已设置则取消，否则设置
	first, found := CharFormat{}, false
	eachRun(doc, start, end, func(r Run) {
		if !found {
			first, found = r.Format, true
		}
	})
	return ApplyFormat(doc, start, end, set(!get(first)))
}

// ToggleList 切换 pos 所在段落的列表类型：已在列表中则移出，否则设为 kind
func ToggleList(doc *Document, pos int, kind ListKind) error {
	i, err := blockAt(doc, pos)
	if err != nil {
		return err
	}
	b := &doc.Blocks[i]
	if b.List != ListNone {
		b.List = ListNone
	} else {
		b.List = kind
	}
	return nil
}

// SetAlignment 设置 pos 所在段落的对齐方式
func SetAlignment(doc *Document, pos int, a Alignment) error {
	i, err := blockAt(doc, pos)
	if err != nil {
		return err
	}
	doc.Blocks[i].Align = a
	return nil
}

// Find 从 from 开始查找 query（不区分大小写），找不到时从文档开头再找一次
func Find(doc *Document, query string, from int) (start, end int, ok bool) {
	if doc == nil || query == "" {
		return 0, 0, false
	}
	text := []rune(doc.Text())
	q := []rune(query)
	from = min(max(from, 0), len(text))

	for i := from; i+len(q) <= len(text); i++ {
		if matchAt(text, q, i) {
			return i, i + len(q), true
		}
	}
	for i := 0; i < from && i+len(q) <= len(text); i++ {
		if matchAt(text, q, i) {
			return i, i + len(q), true
		}
	}
	return 0, 0, false
}

func matchAt(text, q []rune, i int) bool {
	for j, r := range q {
		if !foldEqual(text[i+j], r) {
			return false
		}
	}
	return true
}

func foldEqual(a, b rune) bool {
	if a == b {
		return true
	}
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}

// --- Range helpers ---

func blockAt(doc *Document, pos int) (int, error) {
	if doc == nil || pos < 0 || pos > TextLen(doc) {
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, pos)
	}
	cur := 0
	for i, b := range doc.Blocks {
		n := utf8.RuneCountInString(b.Text())
		if pos <= cur+n {
			return i, nil
		}
		cur += n + 1
	}
	return len(doc.Blocks) - 1, nil
}

// eachRun calls fn for every run overlapping [start, end).
func eachRun(doc *Document, start, end int, fn func(Run)) {
	pos := 0
	for _, b := range doc.Blocks {
		for _, r := range b.Runs {
			n := utf8.RuneCountInString(r.Text)
			if n > 0 && pos < end && pos+n > start {
				fn(r)
			}
			pos += n
		}
		pos++
	}
}

func mapRange(doc *Document, start, end int, fn func(CharFormat) CharFormat) error {
	if err := checkRange(doc, start, end); err != nil {
		return err
	}
	pos := 0
	for i := range doc.Blocks {
		b := &doc.Blocks[i]
		n := utf8.RuneCountInString(b.Text())
		ls, le := max(start-pos, 0), min(end-pos, n)
		if ls < le {
			b.Runs = splitApply(b.Runs, ls, le, fn)
		}
		pos += n + 1
	}
	return nil
}

// splitApply splits runs at the local offsets ls and le and maps the format
// of the runs in between.
func splitApply(runs []Run, ls, le int, fn func(CharFormat) CharFormat) []Run {
	out := make([]Run, 0, len(runs)+2)
	off := 0
	for _, r := range runs {
		rs := []rune(r.Text)
		n := len(rs)
		a := min(max(ls-off, 0), n)
		z := min(max(le-off, 0), n)
		if a > 0 {
			out = append(out, Run{Text: string(rs[:a]), Format: r.Format.Clone()})
		}
		if z > a {
			out = append(out, Run{Text: string(rs[a:z]), Format: fn(r.Format)})
		}
		if n > z {
			out = append(out, Run{Text: string(rs[z:]), Format: r.Format.Clone()})
		}
		off += n
	}
	return coalesce(out)
}

func coalesce(runs []Run) []Run {
	out := runs[:0]
	for _, r := range runs {
		if r.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Format.Equal(r.Format) {
			out[n-1].Text += r.Text
			continue
		}
		out = append(out, r)
	}
	if len(out) == 0 {
		return []Run{{}}
	}
	return out
}
