package openpen

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format 文件格式
type Format int

const (
	// FormatUnknown 无法识别的扩展名
	FormatUnknown Format = iota
	// FormatDOCX 流式文档，主要的导入导出格式
	FormatDOCX
	// FormatHTML 自描述的 HTML，保留对齐方式
	FormatHTML
	// FormatMarkdown Markdown，只保留粗体、斜体、下划线和列表
	FormatMarkdown
	// FormatText 纯文本
	FormatText
	// FormatPDF 只能导出
	FormatPDF
)

// String returns the string representation of Format.
func (f Format) String() string {
	switch f {
	case FormatDOCX:
		return "docx"
	case FormatHTML:
		return "html"
	case FormatMarkdown:
		return "markdown"
	case FormatText:
		return "text"
	case FormatPDF:
		return "pdf"
	default:
		return "unknown"
	}
}

var extFormats = map[string]Format{
	".docx":     FormatDOCX,
	".html":     FormatHTML,
	".htm":      FormatHTML,
	".rtf":      FormatHTML, // 旧版本以 .rtf 为名保存 HTML
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
	".txt":      FormatText,
	".pdf":      FormatPDF,
}

// FormatFromPath 根据扩展名（不区分大小写）判断文件格式
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extFormats[ext]; ok {
		return f, nil
	}
	return FormatUnknown, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}
