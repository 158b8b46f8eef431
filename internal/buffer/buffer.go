package buffer

import (
	"strings"

	"github.com/riverfjs/openpen-go/internal/types"
)

// DocBuffer accumulates a document the way an editing cursor does:
// set the current char format, then insert text under it.
type DocBuffer struct {
	blocks []types.Block
	format types.CharFormat
}

// New creates a DocBuffer holding one empty block.
func New() *DocBuffer {
	return &DocBuffer{
		blocks: []types.Block{{}},
	}
}

func (db *DocBuffer) current() *types.Block {
	return &db.blocks[len(db.blocks)-1]
}

// SetCharFormat sets the format applied to subsequently inserted text.
func (db *DocBuffer) SetCharFormat(f types.CharFormat) {
	db.format = f.Clone()
}

// SetList sets the list kind of the current block.
func (db *DocBuffer) SetList(kind types.ListKind) {
	db.current().List = kind
}

// SetAlignment sets the alignment of the current block.
func (db *DocBuffer) SetAlignment(a types.Alignment) {
	db.current().Align = a
}

// InsertText appends text under the current format. A newline inside text
// ends the current block, matching what typing Enter does.
func (db *DocBuffer) InsertText(text string) {
	for {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			db.write(text)
			return
		}
		db.write(text[:i])
		db.InsertBlock()
		text = text[i+1:]
	}
}

func (db *DocBuffer) write(text string) {
	if text == "" {
		return
	}
	b := db.current()
	if n := len(b.Runs); n > 0 && b.Runs[n-1].Format.Equal(db.format) {
		b.Runs[n-1].Text += text
	} else {
		b.Runs = append(b.Runs, types.Run{Text: text, Format: db.format.Clone()})
	}
}

// InsertBlock starts a new paragraph. The new block does not inherit the
// list kind or alignment of the previous one.
func (db *DocBuffer) InsertBlock() {
	db.blocks = append(db.blocks, types.Block{})
}

// Document returns a copy of the accumulated document. Blocks with no
// inserted text get one empty placeholder run.
func (db *DocBuffer) Document() *types.Document {
	doc := &types.Document{Blocks: make([]types.Block, len(db.blocks))}
	for i, b := range db.blocks {
		if len(b.Runs) == 0 {
			b.Runs = []types.Run{{}}
		}
		doc.Blocks[i] = b
	}
	return doc.Clone()
}
