package mdown

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"

	"github.com/riverfjs/openpen-go/internal/buffer"
	"github.com/riverfjs/openpen-go/internal/types"
)

// EventWalker 遍历 goldmark AST 并生成文档
type EventWalker struct {
	buf    *buffer.DocBuffer
	source []byte
	cfg    *types.Config

	formatStack []types.CharFormat
	listStack   []types.ListKind

	// Block-level state
	blockCount int  // 已开启的段落数
	itemFresh  bool // 当前列表项的段落尚未写入内容
	cellIndex  int
}

// NewEventWalker 创建新的 EventWalker
func NewEventWalker(source []byte, cfg *types.Config) *EventWalker {
	return &EventWalker{
		buf:         buffer.New(),
		source:      source,
		cfg:         cfg,
		formatStack: make([]types.CharFormat, 0),
		listStack:   make([]types.ListKind, 0),
	}
}

// Walk 遍历 AST 节点
func (w *EventWalker) Walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n := node.(type) {
	// --- Inline elements ---
	case *ast.Text:
		if entering {
			w.write(unescape(n.Segment.Value(w.source)))
			if n.HardLineBreak() {
				w.write(types.LineSeparator)
			} else if n.SoftLineBreak() {
				w.write(" ")
			}
		}

	case *ast.String:
		if entering {
			w.write(string(n.Value))
		}

	case *ast.Emphasis:
		// Level 1 = italic, Level 2 = bold
		if entering {
			if n.Level >= 2 {
				w.push(func(f *types.CharFormat) { f.Bold = true })
			} else {
				w.push(func(f *types.CharFormat) { f.Italic = true })
			}
		} else {
			w.pop()
		}

	case *ast.CodeSpan:
		if entering {
			w.push(func(f *types.CharFormat) { f.FontFamily = w.cfg.MonospaceFont })
		} else {
			w.pop()
		}

	case *ast.AutoLink:
		if entering {
			w.write(string(n.URL(w.source)))
			return ast.WalkSkipChildren, nil
		}

	case *ast.RawHTML:
		if entering {
			w.onInlineHTML(n)
		}

	case *east.TaskCheckBox:
		if entering {
			if n.IsChecked {
				w.write("☑ ")
			} else {
				w.write("☐ ")
			}
		}

	// --- Block elements ---
	case *ast.Paragraph, *ast.TextBlock:
		if entering {
			w.onStartParagraph()
		}

	case *ast.Heading:
		if entering {
			w.startBlock(types.ListNone)
			size := w.cfg.HeadingSize(n.Level)
			w.push(func(f *types.CharFormat) {
				f.Bold = true
				f.FontSizePt = size
			})
		} else {
			w.pop()
		}

	case *ast.Blockquote:
		if entering {
			w.push(func(f *types.CharFormat) { f.Italic = true })
		} else {
			w.pop()
		}

	case *ast.List:
		if entering {
			kind := types.ListBullet
			if n.IsOrdered() {
				kind = types.ListNumbered
			}
			w.listStack = append(w.listStack, kind)
		} else {
			w.listStack = w.listStack[:len(w.listStack)-1]
		}

	case *ast.ListItem:
		if entering {
			w.onStartItem()
		} else {
			w.itemFresh = false
		}

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if entering {
			w.onCodeBlock(n)
			return ast.WalkSkipChildren, nil
		}

	case *ast.ThematicBreak:
		if entering {
			w.startBlock(types.ListNone)
		}

	case *ast.HTMLBlock:
		// Block HTML ignored
		return ast.WalkSkipChildren, nil

	// --- Table ---
	case *east.TableHeader:
		if entering {
			w.startBlock(types.ListNone)
			w.cellIndex = 0
			w.push(func(f *types.CharFormat) { f.Bold = true })
		} else {
			w.pop()
		}

	case *east.TableRow:
		if entering {
			w.startBlock(types.ListNone)
			w.cellIndex = 0
		}

	case *east.TableCell:
		if entering {
			if w.cellIndex > 0 {
				w.write(" | ")
			}
			w.cellIndex++
		}
	}

	return ast.WalkContinue, nil
}

// Result 返回转换结果
func (w *EventWalker) Result() *types.Document {
	return w.buf.Document()
}

// --- Format stack ---

func (w *EventWalker) current() types.CharFormat {
	if len(w.formatStack) == 0 {
		return types.CharFormat{}
	}
	return w.formatStack[len(w.formatStack)-1]
}

func (w *EventWalker) push(mod func(f *types.CharFormat)) {
	f := w.current().Clone()
	mod(&f)
	w.formatStack = append(w.formatStack, f)
}

func (w *EventWalker) pop() {
	if len(w.formatStack) > 0 {
		w.formatStack = w.formatStack[:len(w.formatStack)-1]
	}
}

func (w *EventWalker) listKind() types.ListKind {
	if len(w.listStack) == 0 {
		return types.ListNone
	}
	return w.listStack[len(w.listStack)-1]
}

// --- Blocks ---

func (w *EventWalker) startBlock(kind types.ListKind) {
	if w.itemFresh {
		// 列表项的第一个子块沿用列表项已开启的段落
		w.itemFresh = false
		return
	}
	if w.blockCount > 0 {
		w.buf.InsertBlock()
	}
	w.buf.SetList(kind)
	w.blockCount++
}

func (w *EventWalker) onStartParagraph() {
	w.startBlock(w.listKind())
}

func (w *EventWalker) onStartItem() {
	if w.itemFresh {
		// "- - x": 外层列表项为空，直接复用
		w.buf.SetList(w.listKind())
		return
	}
	w.startBlock(w.listKind())
	w.itemFresh = true
}

func (w *EventWalker) onCodeBlock(n ast.Node) {
	w.push(func(f *types.CharFormat) { f.FontFamily = w.cfg.MonospaceFont })
	defer w.pop()

	lines := n.Lines()
	if lines.Len() == 0 {
		w.startBlock(types.ListNone)
		return
	}
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		w.startBlock(types.ListNone)
		w.write(strings.TrimRight(string(line.Value(w.source)), "\r\n"))
	}
}

func (w *EventWalker) onInlineHTML(n *ast.RawHTML) {
	tag := strings.ToLower(strings.TrimSpace(string(n.Segments.Value(w.source))))
	switch tag {
	case "<u>", "<ins>":
		w.push(func(f *types.CharFormat) { f.Underline = true })
	case "</u>", "</ins>":
		w.pop()
	case "<br>", "<br/>", "<br />":
		w.write(types.LineSeparator)
	}
	// Other inline HTML is ignored
}

// --- Text ---

// unescape resolves backslash escapes and character references in a text segment.
func unescape(value []byte) string {
	value = util.UnescapePunctuations(value)
	value = util.ResolveNumericReferences(value)
	return string(util.ResolveEntityNames(value))
}

func (w *EventWalker) write(s string) {
	if s == "" {
		return
	}
	if w.blockCount == 0 {
		w.blockCount = 1
	}
	w.itemFresh = false
	w.buf.SetCharFormat(w.current())
	w.buf.InsertText(strings.ReplaceAll(s, "\n", " "))
}
