package converter

import (
	"strings"

	"github.com/riverfjs/openpen-go/internal/buffer"
	"github.com/riverfjs/openpen-go/internal/flowdoc"
	"github.com/riverfjs/openpen-go/internal/types"
)

// ClassifyStyle 根据样式名判断列表类型
//
// 按子串匹配（区分大小写）："Bullet" 优先于 "Number"，其余一律视为普通段落。
// 宽松匹配用于兼容其它生成器的样式命名，如 "List Bullet 2"。
func ClassifyStyle(name string) types.ListKind {
	switch {
	case strings.Contains(name, "Bullet"):
		return types.ListBullet
	case strings.Contains(name, "Number"):
		return types.ListNumbered
	default:
		return types.ListNone
	}
}

// Import 将流式文档转换为新的 RichDocument
//
// 每个源段落生成一个 Block。对每个 Run 先设置格式再插入文本，
// 因此格式只作用于该 Run 自身，不会泄漏到下一个 Run。
func Import(fd *flowdoc.Document) *types.Document {
	buf := buffer.New()
	if fd == nil {
		return buf.Document()
	}

	for i, para := range fd.Paragraphs {
		// 第一个段落前不插入分隔，避免开头多出空 Block
		if i > 0 {
			buf.InsertBlock()
		}
		buf.SetList(ClassifyStyle(para.Style))

		for _, run := range para.Runs {
			buf.SetCharFormat(importFormat(run))
			// 段内换行保留为软换行，段落数与 Block 数一一对应
			buf.InsertText(strings.ReplaceAll(run.Text, "\n", types.LineSeparator))
		}
	}
	return buf.Document()
}

func importFormat(run flowdoc.Run) types.CharFormat {
	f := types.CharFormat{
		FontFamily: run.Font,
		Bold:       deref(run.Bold),
		Italic:     deref(run.Italic),
		Underline:  deref(run.Underline),
	}
	if run.SizePt > 0 {
		f.FontSizePt = run.SizePt
	}
	if run.Color != nil {
		f.Color = &types.Color{R: run.Color.R, G: run.Color.G, B: run.Color.B}
	}
	return f
}

// deref reads a tri-state flag, unspecified counts as false.
func deref(b *bool) bool {
	return b != nil && *b
}
