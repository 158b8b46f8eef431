package openpen

import (
	"strings"
	"unicode/utf8"
)

// DocStats 文档统计
type DocStats struct {
	Words      int
	Characters int
	Blocks     int
}

// Stats 统计词数、字符数和段落数
//
// 字符数不含段落分隔和段内换行。
func Stats(doc *Document) DocStats {
	if doc == nil {
		return DocStats{}
	}
	st := DocStats{Blocks: len(doc.Blocks)}
	for _, b := range doc.Blocks {
		text := b.Text()
		st.Words += len(strings.Fields(text))
		st.Characters += utf8.RuneCountInString(text) - strings.Count(text, LineSeparator)
	}
	return st
}
