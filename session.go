package openpen

import (
	"context"
	"sync"
)

// Session 持有当前正在编辑的文档
//
// 加载总是先生成新文档，成功后才替换；失败时原文档保持不变。
// 导出前先对文档做快照，转换过程中的编辑不会影响输出。
type Session struct {
	mu   sync.RWMutex
	doc  *Document
	path string
	opts []Option
}

// NewSession creates a session holding an empty document.
func NewSession(opts ...Option) *Session {
	return &Session{doc: NewDocument(), opts: opts}
}

// Document returns a snapshot of the active document.
func (s *Session) Document() *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// Path returns the path the active document was last loaded from or exported to.
func (s *Session) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// Replace installs a copy of doc as the active document.
func (s *Session) Replace(doc *Document) {
	if doc == nil {
		doc = NewDocument()
	} else {
		doc = doc.Clone()
	}
	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
}

// New clears the session back to a single empty paragraph.
func (s *Session) New() {
	s.mu.Lock()
	s.doc = NewDocument()
	s.path = ""
	s.mu.Unlock()
}

// Load 读取 path 并替换当前文档
func (s *Session) Load(ctx context.Context, path string) error {
	doc, err := Open(ctx, path, s.opts...)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.doc = doc
	s.path = path
	s.mu.Unlock()
	return nil
}

// Export 将当前文档的快照保存到 path
func (s *Session) Export(ctx context.Context, path string) error {
	if err := Save(ctx, s.Document(), path, s.opts...); err != nil {
		return err
	}
	s.mu.Lock()
	s.path = path
	s.mu.Unlock()
	return nil
}

// Edit 在文档副本上执行 fn，成功后才替换当前文档
func (s *Session) Edit(fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.doc.Clone()
	if err := fn(work); err != nil {
		return err
	}
	s.doc = work
	return nil
}
