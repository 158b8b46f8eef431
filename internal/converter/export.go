// Package converter 在富文本文档与流式文档之间双向转换
//
// 两个方向都是对段落和 Run 的线性扫描：导出时每个 Block 生成一个段落，
// 导入时每个段落生成一个 Block，列表类型通过样式名传递。
package converter

import (
	"strings"

	"github.com/riverfjs/openpen-go/internal/flowdoc"
	"github.com/riverfjs/openpen-go/internal/types"
)

// StyleFor 返回列表类型对应的段落样式名
func StyleFor(kind types.ListKind) string {
	switch kind {
	case types.ListBullet:
		return flowdoc.StyleListBullet
	case types.ListNumbered:
		return flowdoc.StyleListNumber
	default:
		return flowdoc.StyleNormal
	}
}

// Export 将 RichDocument 转换为流式文档
//
// 每个 Block 恰好生成一个段落；Run 的顺序与格式无损保留。
// 段落对齐不会写出（已知的保真度缺口）。
// 输入只读，不会被修改。
func Export(doc *types.Document, cfg *types.Config) *flowdoc.Document {
	if cfg == nil {
		cfg = types.DefaultConfig()
	}
	out := &flowdoc.Document{}
	if doc == nil {
		return out
	}

	out.Paragraphs = make([]flowdoc.Paragraph, 0, len(doc.Blocks))
	for _, block := range doc.Blocks {
		// 段落边界本身就是段落分隔，不再额外追加换行 Run
		para := out.AddParagraph(StyleFor(block.List))
		for _, run := range block.Runs {
			exportRun(para.AddRun(run.Text), run.Format, cfg)
		}
	}
	return out
}

// exportRun fills r with the run attributes, falling back to the configured
// font and size and to black.
func exportRun(r *flowdoc.Run, f types.CharFormat, cfg *types.Config) {
	r.Font = f.FontFamily
	if r.Font == "" {
		r.Font = cfg.DefaultFont
	}
	r.SizePt = f.FontSizePt
	if r.SizePt <= 0 {
		r.SizePt = cfg.DefaultFontSize
	}
	color := types.Black
	if f.Color != nil {
		color = *f.Color
	}

	// 段内软换行写回 <w:br/>
	r.Text = strings.ReplaceAll(r.Text, types.LineSeparator, "\n")
	r.Bold = flowdoc.Flag(f.Bold)
	r.Italic = flowdoc.Flag(f.Italic)
	r.Underline = flowdoc.Flag(f.Underline)
	r.Color = &flowdoc.RGB{R: color.R, G: color.G, B: color.B}
}
