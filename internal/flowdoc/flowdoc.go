// Package flowdoc 定义可移植的段落/Run 流式文档模型及其 .docx 序列化
//
// 模型只保留转换器需要的部分：具名段落样式、以及带有字体、字号、
// 粗体/斜体/下划线和 RGB 颜色的内联 Run。页眉页脚、表格、图片等均不建模。
package flowdoc

import (
	"io"
	"os"
	"strings"

	"github.com/riverfjs/openpen-go/internal/fsutil"
)

// 内置段落样式名
const (
	StyleNormal     = "Normal"
	StyleListBullet = "List Bullet"
	StyleListNumber = "List Number"
)

// RGB is a foreground color with three 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// Run 内联 Run
//
// Bold/Italic/Underline 为三态：nil 表示源文档未指定。
// Font 为空、SizePt 为 0、Color 为 nil 同样表示未指定。
type Run struct {
	Text      string
	Font      string
	SizePt    float64
	Bold      *bool
	Italic    *bool
	Underline *bool
	Color     *RGB
}

// Paragraph 段落，Style 为样式的显示名（如 "List Bullet"）
type Paragraph struct {
	Style string
	Runs  []Run
}

// Text returns the concatenated run text.
func (p Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Document 流式文档
type Document struct {
	Paragraphs []Paragraph
}

// AddParagraph appends an empty paragraph with the given style and returns it.
func (d *Document) AddParagraph(style string) *Paragraph {
	if style == "" {
		style = StyleNormal
	}
	d.Paragraphs = append(d.Paragraphs, Paragraph{Style: style})
	return &d.Paragraphs[len(d.Paragraphs)-1]
}

// AddRun appends a run to the paragraph and returns it for further setup.
func (p *Paragraph) AddRun(text string) *Run {
	p.Runs = append(p.Runs, Run{Text: text})
	return &p.Runs[len(p.Runs)-1]
}

// Flag returns a pointer to v, for filling the tri-state run flags.
func Flag(v bool) *bool {
	return &v
}

// ReadFile opens and parses a .docx file.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return Read(f, info.Size())
}

// WriteFile serializes doc to path. The file is published atomically, so a
// failed write never leaves a truncated package behind.
func WriteFile(path string, doc *Document) error {
	return fsutil.AtomicWrite(path, 0o644, func(w io.Writer) error {
		return Write(w, doc)
	})
}
