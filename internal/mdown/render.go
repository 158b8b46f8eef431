package mdown

import (
	"strconv"
	"strings"

	"github.com/riverfjs/openpen-go/internal/types"
)

var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	`*`, `\*`,
	`_`, `\_`,
	"`", "\\`",
	`<`, `\<`,
	`[`, `\[`,
)

// Render 将文档渲染为 Markdown
//
// 粗体、斜体、下划线分别写成 **、*、<u></u>；字体、字号、颜色和对齐无法表示，会被丢弃。
// 空的普通段落在 Markdown 中没有对应写法，同样被跳过。
func Render(doc *types.Document) []byte {
	var sb strings.Builder
	if doc == nil {
		return nil
	}

	number := 0
	prevList := types.ListNone
	written := 0
	for _, b := range doc.Blocks {
		if b.List == types.ListNone && b.IsEmpty() {
			prevList = types.ListNone
			continue
		}
		if written > 0 {
			// 同一列表内的项目之间不留空行，保持为紧凑列表
			if b.List != types.ListNone && b.List == prevList {
				sb.WriteString("\n")
			} else {
				sb.WriteString("\n\n")
			}
		}
		if b.List != types.ListNumbered || prevList != types.ListNumbered {
			number = 0
		}

		switch b.List {
		case types.ListBullet:
			sb.WriteString("- ")
		case types.ListNumbered:
			number++
			sb.WriteString(strconv.Itoa(number) + ". ")
		}

		atStart := true
		for _, r := range b.Runs {
			atStart = writeRun(&sb, r, atStart)
		}
		prevList = b.List
		written++
	}
	sb.WriteString("\n")
	return []byte(sb.String())
}

// writeRun 写出一个 Run，返回写完后是否仍处于段首（只写了空白）
func writeRun(sb *strings.Builder, r types.Run, atStart bool) bool {
	if r.Text == "" {
		return atStart
	}
	// 标记不能包住首尾空白，否则不会被识别为强调
	body := r.Text
	lead := len(body) - len(strings.TrimLeft(body, " "))
	trail := len(body) - len(strings.TrimRight(body, " "))
	if lead == len(body) {
		writeSpaces(sb, body, atStart)
		return atStart
	}
	core := body[lead : len(body)-trail]

	var prefix, suffix string
	if r.Format.Underline {
		prefix, suffix = prefix+"<u>", "</u>"+suffix
	}
	if r.Format.Bold {
		prefix, suffix = prefix+"**", "**"+suffix
	}
	if r.Format.Italic {
		prefix, suffix = prefix+"*", "*"+suffix
	}

	writeSpaces(sb, body[:lead], atStart)
	sb.WriteString(prefix)
	escaped := mdEscaper.Replace(core)
	if atStart {
		escaped = escapeBlockStart(escaped)
	}
	sb.WriteString(strings.ReplaceAll(escaped, types.LineSeparator, "<br>"))
	sb.WriteString(suffix)
	sb.WriteString(body[len(body)-trail:])
	return false
}

// writeSpaces 段首空白会被 Markdown 吞掉（或变成代码块），写成字符引用
func writeSpaces(sb *strings.Builder, spaces string, atStart bool) {
	if atStart {
		sb.WriteString(strings.Repeat("&#32;", len(spaces)))
		return
	}
	sb.WriteString(spaces)
}

// escapeBlockStart 转义段首会被解析成标题、列表、引用或代码围栏的字符
func escapeBlockStart(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '#', '>', '-', '+', '=', '~':
		return `\` + s
	}
	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits < len(s) && (s[digits] == '.' || s[digits] == ')') {
		return s[:digits] + `\` + s[digits:]
	}
	return s
}
