// Package pdf 将富文本文档导出为 PDF（只写）
package pdf

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/riverfjs/openpen-go/internal/types"
)

const (
	marginPt     = 72
	lineSpacing  = 1.25
	bulletPrefix = "• "
)

var pageSizes = map[string]string{
	"letter": "Letter",
	"a4":     "A4",
	"legal":  "Legal",
}

// Export 将文档写为 PDF
//
// 只使用内置的 Times/Helvetica/Courier 字体；对齐方式在单行内生效，换行后的段落按左对齐排版。
func Export(w io.Writer, doc *types.Document, cfg *types.Config) error {
	if cfg == nil {
		cfg = types.DefaultConfig()
	}
	size, ok := pageSizes[strings.ToLower(cfg.PageSize)]
	if !ok {
		size = "Letter"
	}

	p := fpdf.New("P", "pt", size, "")
	p.SetMargins(marginPt, marginPt, marginPt)
	p.SetAutoPageBreak(true, marginPt)
	p.SetCreator("openpen", true)
	p.AddPage()

	e := &exporter{pdf: p, cfg: cfg, tr: p.UnicodeTranslatorFromDescriptor("")}
	if doc != nil {
		e.blocks(doc.Blocks)
	}

	if err := p.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

type exporter struct {
	pdf *fpdf.Fpdf
	cfg *types.Config
	tr  func(string) string
}

func (e *exporter) blocks(blocks []types.Block) {
	number := 0
	for _, b := range blocks {
		if b.List == types.ListNumbered {
			number++
		} else {
			number = 0
		}
		e.block(b, number)
	}
}

func (e *exporter) block(b types.Block, number int) {
	lh := e.lineHeight(b)
	if b.IsEmpty() && b.List == types.ListNone {
		e.pdf.Ln(lh)
		return
	}

	runs := b.Runs
	switch b.List {
	case types.ListBullet:
		runs = append([]types.Run{{Text: bulletPrefix, Format: firstFormat(b)}}, runs...)
	case types.ListNumbered:
		runs = append([]types.Run{{Text: strconv.Itoa(number) + ". ", Format: firstFormat(b)}}, runs...)
	}

	left, _, right, _ := e.pdf.GetMargins()
	pageW, _ := e.pdf.GetPageSize()
	avail := pageW - left - right
	if b.Align != types.AlignLeft {
		// 单行放得下时按总宽度计算起点
		if width := e.width(runs); width < avail {
			offset := avail - width
			if b.Align == types.AlignCenter {
				offset /= 2
			}
			e.pdf.SetX(left + offset)
		}
	}

	for _, r := range runs {
		e.apply(r.Format)
		for i, line := range strings.Split(r.Text, types.LineSeparator) {
			if i > 0 {
				e.pdf.Ln(lh)
			}
			if line != "" {
				e.pdf.Write(lh, e.tr(line))
			}
		}
	}
	e.pdf.Ln(lh)
}

func (e *exporter) width(runs []types.Run) float64 {
	var total float64
	for _, r := range runs {
		if strings.Contains(r.Text, types.LineSeparator) {
			return 1 << 30
		}
		e.apply(r.Format)
		total += e.pdf.GetStringWidth(e.tr(r.Text))
	}
	return total
}

func (e *exporter) apply(f types.CharFormat) {
	style := ""
	if f.Bold {
		style += "B"
	}
	if f.Italic {
		style += "I"
	}
	if f.Underline {
		style += "U"
	}
	e.pdf.SetFont(FontFor(f.FontFamily, e.cfg.DefaultFont), style, e.sizeOf(f))

	c := types.Black
	if f.Color != nil {
		c = *f.Color
	}
	e.pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
}

func (e *exporter) sizeOf(f types.CharFormat) float64 {
	if f.HasSize() {
		return f.FontSizePt
	}
	return e.cfg.DefaultFontSize
}

func (e *exporter) lineHeight(b types.Block) float64 {
	size := e.cfg.DefaultFontSize
	for i, r := range b.Runs {
		s := e.sizeOf(r.Format)
		if i == 0 || s > size {
			size = s
		}
	}
	return size * lineSpacing
}

func firstFormat(b types.Block) types.CharFormat {
	if len(b.Runs) == 0 {
		return types.CharFormat{}
	}
	return b.Runs[0].Format
}

// FontFor 将字体族名映射到 PDF 内置字体
func FontFor(family, fallback string) string {
	name := strings.ToLower(family)
	if name == "" {
		name = strings.ToLower(fallback)
	}
	switch {
	case strings.Contains(name, "courier"), strings.Contains(name, "mono"), strings.Contains(name, "consol"):
		return "Courier"
	case strings.Contains(name, "arial"), strings.Contains(name, "helvetica"),
		strings.Contains(name, "sans"), strings.Contains(name, "verdana"):
		return "Helvetica"
	default:
		return "Times"
	}
}
