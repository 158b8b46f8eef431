package openpen

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSession_LoadFailureKeepsDocument 从不存在的路径导入失败时当前文档保持不变
func TestSession_LoadFailureKeepsDocument(t *testing.T) {
	s := NewSession(quiet)
	s.Replace(sampleDoc())
	before := s.Document()

	err := s.Load(context.Background(), filepath.Join(t.TempDir(), "missing.docx"))

	var re *ReadError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, before, s.Document())
	assert.Empty(t, s.Path())
}

func TestSession_ExportLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "doc.docx")

	s := NewSession(quiet)
	s.Replace(sampleDoc())
	require.NoError(t, s.Export(ctx, path))
	assert.Equal(t, path, s.Path())

	other := NewSession(quiet)
	require.NoError(t, other.Load(ctx, path))
	assert.Equal(t, s.Document().Text(), other.Document().Text())
}

func TestSession_DocumentIsSnapshot(t *testing.T) {
	s := NewSession()
	doc := s.Document()
	doc.Blocks[0].Runs[0].Text = "mutated"

	assert.Equal(t, "", s.Document().Text())
}

func TestSession_Edit(t *testing.T) {
	s := NewSession()
	s.Replace(plainDoc("hello"))

	require.NoError(t, s.Edit(func(doc *Document) error {
		return ToggleBold(doc, 0, 5)
	}))
	assert.True(t, s.Document().Blocks[0].Runs[0].Format.Bold)

	// 失败的编辑不生效
	boom := errors.New("boom")
	err := s.Edit(func(doc *Document) error {
		doc.Blocks[0].Runs[0].Text = "partial"
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "hello", s.Document().Text())
}

func TestSession_New(t *testing.T) {
	s := NewSession()
	s.Replace(sampleDoc())
	s.New()

	doc := s.Document()
	require.Len(t, doc.Blocks, 1)
	assert.True(t, doc.Blocks[0].IsEmpty())
}
