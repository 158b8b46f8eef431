package markup

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/riverfjs/openpen-go/internal/buffer"
	"github.com/riverfjs/openpen-go/internal/types"
)

// fontSizes maps the legacy <font size=1..7> scale onto points.
var fontSizes = map[int]float64{1: 8, 2: 10, 3: 12, 4: 14, 5: 18, 6: 24, 7: 36}

// htmlParser 遍历 HTML 节点树并写入 DocBuffer
type htmlParser struct {
	buf *buffer.DocBuffer
	cfg *types.Config

	fresh     bool // current block was opened by a block element and is still empty
	needBlock bool // a block element just closed; inline content must open a new block
}

// Parse 解析 HTML 为文档
//
// p、div、h1-h6、li 开启新段落，li 的列表类型由最近的 ul/ol 决定；
// br 是段内软换行；未知标签透明处理，只遍历其子节点。
func Parse(r io.Reader, cfg *types.Config) (*types.Document, error) {
	if cfg == nil {
		cfg = types.DefaultConfig()
	}
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("markup: parse html: %w", err)
	}

	p := &htmlParser{buf: buffer.New(), cfg: cfg, fresh: true}
	p.walk(root, types.CharFormat{}, types.ListNone)
	return p.buf.Document(), nil
}

func (p *htmlParser) walk(n *html.Node, f types.CharFormat, list types.ListKind) {
	switch n.Type {
	case html.TextNode:
		p.onText(n, f)
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Head, atom.Script, atom.Style, atom.Title:
			return
		case atom.Br:
			p.write(types.LineSeparator, f)
			return
		case atom.Ul:
			list = types.ListBullet
		case atom.Ol:
			list = types.ListNumbered
		}
		f = p.elementFormat(n, f)
	}

	block := n.Type == html.ElementNode && isBlock(n.DataAtom)
	if block {
		p.startBlock(n, list)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c, f, list)
	}
	if block {
		p.fresh = false
		p.needBlock = true
	}
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Li, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Blockquote, atom.Pre:
		return true
	}
	return false
}

func (p *htmlParser) startBlock(n *html.Node, list types.ListKind) {
	isItem := n.DataAtom == atom.Li
	if !p.fresh {
		p.buf.InsertBlock()
		if isItem {
			p.buf.SetList(list)
		}
	} else if isItem {
		p.buf.SetList(list)
	}
	p.fresh = true
	p.needBlock = false

	if a, ok := alignmentOf(n); ok {
		p.buf.SetAlignment(a)
	}
}

func (p *htmlParser) onText(n *html.Node, f types.CharFormat) {
	text := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(n.Data)
	// 只跳过块元素之间的排版空白，块内的空白是正文
	if strings.TrimSpace(text) == "" && (isContainer(n.Parent) || nextToBlock(n)) {
		return
	}
	p.write(text, f)
}

// isContainer reports whether whitespace directly under n is source formatting.
func isContainer(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return true
	}
	switch n.DataAtom {
	case atom.Html, atom.Body, atom.Ul, atom.Ol, atom.Table, atom.Tbody, atom.Tr:
		return true
	}
	return false
}

func nextToBlock(n *html.Node) bool {
	for _, s := range []*html.Node{n.PrevSibling, n.NextSibling} {
		if s != nil && s.Type == html.ElementNode && (isBlock(s.DataAtom) || isContainer(s)) {
			return true
		}
	}
	return false
}

func (p *htmlParser) write(text string, f types.CharFormat) {
	if p.needBlock {
		p.buf.InsertBlock()
		p.needBlock = false
	}
	p.fresh = false
	p.buf.SetCharFormat(f)
	p.buf.InsertText(text)
}

// elementFormat 计算元素内文本的字符格式
func (p *htmlParser) elementFormat(n *html.Node, f types.CharFormat) types.CharFormat {
	f = f.Clone()
	switch n.DataAtom {
	case atom.B, atom.Strong:
		f.Bold = true
	case atom.I, atom.Em:
		f.Italic = true
	case atom.U, atom.Ins:
		f.Underline = true
	case atom.Code, atom.Pre, atom.Tt, atom.Kbd:
		f.FontFamily = p.cfg.MonospaceFont
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		f.Bold = true
		f.FontSizePt = p.cfg.HeadingSize(int(n.Data[1] - '0'))
	case atom.Font:
		if v, ok := attr(n, "color"); ok {
			if c, ok := ParseColor(v); ok {
				f.Color = &c
			}
		}
		if v, ok := attr(n, "face"); ok {
			f.FontFamily = firstFamily(v)
		}
		if v, ok := attr(n, "size"); ok {
			if sz, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				if pt, ok := fontSizes[sz]; ok {
					f.FontSizePt = pt
				}
			}
		}
	}
	if style, ok := attr(n, "style"); ok {
		f = applyStyle(style, f)
	}
	return f
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

// declarations splits an inline style attribute into lower-cased property/value pairs.
func declarations(style string) map[string]string {
	out := make(map[string]string)
	for _, decl := range strings.Split(style, ";") {
		prop, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		out[strings.ToLower(strings.TrimSpace(prop))] = strings.TrimSpace(value)
	}
	return out
}

func applyStyle(style string, f types.CharFormat) types.CharFormat {
	for prop, value := range declarations(style) {
		lower := strings.ToLower(value)
		switch prop {
		case "font-family":
			f.FontFamily = firstFamily(value)
		case "font-size":
			if pt, ok := parseFontSize(lower); ok {
				f.FontSizePt = pt
			}
		case "font-weight":
			f.Bold = isBoldWeight(lower)
		case "font-style":
			f.Italic = lower == "italic" || lower == "oblique"
		case "text-decoration", "text-decoration-line":
			f.Underline = strings.Contains(lower, "underline")
		case "color":
			if c, ok := ParseColor(value); ok {
				f.Color = &c
			}
		}
	}
	return f
}

func alignmentOf(n *html.Node) (types.Alignment, bool) {
	value := ""
	if v, ok := attr(n, "align"); ok {
		value = v
	}
	if style, ok := attr(n, "style"); ok {
		if v, ok := declarations(style)["text-align"]; ok {
			value = v
		}
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "left", "start", "justify":
		return types.AlignLeft, true
	case "center":
		return types.AlignCenter, true
	case "right", "end":
		return types.AlignRight, true
	}
	return types.AlignLeft, false
}

func firstFamily(v string) string {
	first, _, _ := strings.Cut(v, ",")
	return strings.Trim(strings.TrimSpace(first), `'"`)
}

func isBoldWeight(v string) bool {
	switch v {
	case "bold", "bolder":
		return true
	case "normal", "lighter":
		return false
	}
	n, err := strconv.Atoi(v)
	return err == nil && n >= 600
}

// parseFontSize accepts pt, px (at 96dpi) and unitless point values.
func parseFontSize(v string) (float64, bool) {
	scale := 1.0
	switch {
	case strings.HasSuffix(v, "pt"):
		v = strings.TrimSuffix(v, "pt")
	case strings.HasSuffix(v, "px"):
		v = strings.TrimSuffix(v, "px")
		scale = 0.75
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n * scale, true
}

// ParseColor 解析 CSS 颜色：#rgb、#rrggbb、rgb(r,g,b) 或颜色名
func ParseColor(v string) (types.Color, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch {
	case strings.HasPrefix(v, "#"):
		c, err := colorful.Hex(v)
		if err != nil {
			return types.Color{}, false
		}
		r, g, b := c.RGB255()
		return types.Color{R: r, G: g, B: b}, true
	case strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")"):
		parts := strings.Split(v[4:len(v)-1], ",")
		if len(parts) != 3 {
			return types.Color{}, false
		}
		var ch [3]uint8
		for i, part := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || n < 0 || n > 255 {
				return types.Color{}, false
			}
			ch[i] = uint8(n)
		}
		return types.Color{R: ch[0], G: ch[1], B: ch[2]}, true
	}
	if c, ok := colornames.Map[v]; ok {
		return types.Color{R: c.R, G: c.G, B: c.B}, true
	}
	return types.Color{}, false
}
