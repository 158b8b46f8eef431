// Package mdown 在 Markdown 与富文本文档之间转换
package mdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/riverfjs/openpen-go/internal/types"
)

// StandardOptions goldmark 扩展配置
var StandardOptions = []goldmark.Option{
	goldmark.WithExtensions(
		extension.GFM, // GitHub Flavored Markdown (tables, strikethrough, tasklists)
	),
}

// Parse 解析 Markdown 并遍历 AST 生成文档
func Parse(source []byte, cfg *types.Config) *types.Document {
	if cfg == nil {
		cfg = types.DefaultConfig()
	}
	node := ParseAST(source)

	walker := NewEventWalker(source, cfg)
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		return walker.Walk(n, entering)
	})

	return walker.Result()
}

// ParseAST 仅解析为 AST，不遍历
func ParseAST(source []byte) ast.Node {
	md := goldmark.New(StandardOptions...)
	return md.Parser().Parse(text.NewReader(source))
}
