// Package openpen 富文本文档模型及其与 .docx、HTML、Markdown、纯文本、PDF 之间的转换
//
// 文档由有序的 Block（段落）组成，每个 Block 由若干共享同一字符格式的 Run 拼接而成，
// 并带有段落级的列表类型和对齐方式。
//
// 核心功能：
//   - ExportDOCX / ImportDOCX：与流式文档（.docx）互转
//   - Save / Open：按扩展名选择格式
//   - Session：持有当前文档，加载失败时保持原文档不变
//   - 编辑命令：ApplyFormat、ToggleBold、ToggleList、Find 等
//
// 示例：
//
//	doc, err := openpen.Open(ctx, "notes.docx")
//	if err != nil {
//	    var re *openpen.ReadError
//	    if errors.As(err, &re) {
//	        // 源文件缺失或损坏
//	    }
//	}
//	_ = openpen.ToggleBold(doc, 0, 5)
//	err = openpen.Save(ctx, doc, "notes.html")
package openpen

import "github.com/riverfjs/openpen-go/internal/types"

// 导出类型别名
type (
	Document   = types.Document
	Block      = types.Block
	Run        = types.Run
	CharFormat = types.CharFormat
	Color      = types.Color
	ListKind   = types.ListKind
	Alignment  = types.Alignment
	Theme      = types.Theme
)

const (
	ListNone     = types.ListNone
	ListBullet   = types.ListBullet
	ListNumbered = types.ListNumbered

	AlignLeft   = types.AlignLeft
	AlignCenter = types.AlignCenter
	AlignRight  = types.AlignRight

	ThemeLight = types.ThemeLight
	ThemeDark  = types.ThemeDark
)

// LineSeparator 段内换行符
const LineSeparator = types.LineSeparator

// NewDocument 返回只含一个空段落的文档
func NewDocument() *Document {
	return types.NewDocument()
}
