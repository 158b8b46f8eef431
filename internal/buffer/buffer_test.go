package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riverfjs/openpen-go/internal/types"
)

func TestDocBuffer_CoalescesEqualFormats(t *testing.T) {
	db := New()
	db.InsertText("a")
	db.InsertText("b")
	db.SetCharFormat(types.CharFormat{Bold: true})
	db.InsertText("c")

	doc := db.Document()
	require.Len(t, doc.Blocks, 1)
	runs := doc.Blocks[0].Runs
	require.Len(t, runs, 2)
	assert.Equal(t, "ab", runs[0].Text)
	assert.Equal(t, "c", runs[1].Text)
	assert.True(t, runs[1].Format.Bold)
}

func TestDocBuffer_NewlineStartsBlock(t *testing.T) {
	db := New()
	db.SetList(types.ListBullet)
	db.InsertText("one\ntwo\n")

	doc := db.Document()
	require.Len(t, doc.Blocks, 3)
	assert.Equal(t, types.ListBullet, doc.Blocks[0].List)
	assert.Equal(t, types.ListNone, doc.Blocks[1].List)
	assert.Equal(t, "two", doc.Blocks[1].Text())
	// 空段落保留一个空 Run
	assert.Equal(t, []types.Run{{}}, doc.Blocks[2].Runs)
}

func TestDocBuffer_FormatDoesNotAlias(t *testing.T) {
	db := New()
	c := types.Color{R: 1}
	f := types.CharFormat{Color: &c}
	db.SetCharFormat(f)
	db.InsertText("x")
	c.R = 99

	doc := db.Document()
	assert.Equal(t, uint8(1), doc.Blocks[0].Runs[0].Format.Color.R)

	doc.Blocks[0].Runs[0].Format.Color.R = 50
	assert.Equal(t, uint8(1), db.Document().Blocks[0].Runs[0].Format.Color.R)
}

func TestDocBuffer_ListAndAlignmentNotInherited(t *testing.T) {
	db := New()
	db.SetList(types.ListNumbered)
	db.SetAlignment(types.AlignCenter)
	db.InsertText("a")
	db.InsertBlock()
	db.InsertText("b")

	doc := db.Document()
	require.Len(t, doc.Blocks, 2)
	assert.Equal(t, types.AlignCenter, doc.Blocks[0].Align)
	assert.Equal(t, types.ListNone, doc.Blocks[1].List)
	assert.Equal(t, types.AlignLeft, doc.Blocks[1].Align)
}
