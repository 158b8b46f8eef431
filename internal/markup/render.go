// Package markup 以自描述的 HTML 保存和读取富文本文档
//
// 这是次要的保存路径：与 .docx 不同，对齐方式也会被保留。
package markup

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/riverfjs/openpen-go/internal/types"
)

// Render 将文档渲染为 HTML
//
// 连续的同类列表 Block 合并为一个 <ul>/<ol>；每个 Run 是一个带内联样式的 <span>。
func Render(doc *types.Document, cfg *types.Config) []byte {
	if cfg == nil {
		cfg = types.DefaultConfig()
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html>\n<head>\n")
	sb.WriteString("<meta charset=\"UTF-8\">\n")
	sb.WriteString("<meta name=\"generator\" content=\"openpen\">\n")
	// 默认字体和主题前景色写在 head 的样式表中，Parse 跳过 head
	fmt.Fprintf(&sb, "<style>body { font-family: %s; font-size: %spt; color: #%s; }</style>\n",
		quoteFamily(cfg.DefaultFont), formatPt(cfg.DefaultFontSize), cfg.Theme.Foreground().Hex())
	sb.WriteString("</head>\n<body>\n")

	openList := types.ListNone
	closeList := func() {
		switch openList {
		case types.ListBullet:
			sb.WriteString("</ul>\n")
		case types.ListNumbered:
			sb.WriteString("</ol>\n")
		}
		openList = types.ListNone
	}

	if doc != nil {
		for _, b := range doc.Blocks {
			if b.List != openList {
				closeList()
				switch b.List {
				case types.ListBullet:
					sb.WriteString("<ul>\n")
				case types.ListNumbered:
					sb.WriteString("<ol>\n")
				}
				openList = b.List
			}

			tag := "p"
			if b.List != types.ListNone {
				tag = "li"
			}
			sb.WriteString("<" + tag)
			if b.Align != types.AlignLeft {
				fmt.Fprintf(&sb, " style=\"text-align:%s\"", b.Align)
			}
			sb.WriteString(">")
			for _, r := range b.Runs {
				writeRun(&sb, r)
			}
			sb.WriteString("</" + tag + ">\n")
		}
	}
	closeList()

	sb.WriteString("</body>\n</html>\n")
	return []byte(sb.String())
}

func writeRun(sb *strings.Builder, r types.Run) {
	if r.Text == "" {
		return
	}
	style := spanStyle(r.Format)
	if style != "" {
		sb.WriteString("<span style=\"" + html.EscapeString(style) + "\">")
	}
	parts := strings.Split(r.Text, types.LineSeparator)
	for i, part := range parts {
		if i > 0 {
			sb.WriteString("<br>")
		}
		sb.WriteString(html.EscapeString(part))
	}
	if style != "" {
		sb.WriteString("</span>")
	}
}

func spanStyle(f types.CharFormat) string {
	var decls []string
	if f.FontFamily != "" {
		decls = append(decls, "font-family:"+quoteFamily(f.FontFamily))
	}
	if f.HasSize() {
		decls = append(decls, "font-size:"+formatPt(f.FontSizePt)+"pt")
	}
	if f.Bold {
		decls = append(decls, "font-weight:bold")
	}
	if f.Italic {
		decls = append(decls, "font-style:italic")
	}
	if f.Underline {
		decls = append(decls, "text-decoration:underline")
	}
	if f.Color != nil {
		decls = append(decls, "color:"+hexColor(*f.Color))
	}
	return strings.Join(decls, "; ")
}

func hexColor(c types.Color) string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

func quoteFamily(name string) string {
	if strings.ContainsAny(name, " ,") {
		return "'" + strings.ReplaceAll(name, "'", "") + "'"
	}
	return name
}

func formatPt(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
