package openpen

import (
	"bytes"
	"context"
	"os"
	"strings"

	"github.com/riverfjs/openpen-go/internal/buffer"
	"github.com/riverfjs/openpen-go/internal/converter"
	"github.com/riverfjs/openpen-go/internal/flowdoc"
	"github.com/riverfjs/openpen-go/internal/fsutil"
	"github.com/riverfjs/openpen-go/internal/markup"
	"github.com/riverfjs/openpen-go/internal/mdown"
	"github.com/riverfjs/openpen-go/internal/pdf"
)

const filePerm = 0o644

// ExportDOCX 将文档导出为 .docx
//
// 每个 Block 生成一个段落；段落对齐不会写出。文件原子地发布，
// 失败时返回 *WriteError，目标路径保持原样。
func ExportDOCX(doc *Document, path string, opts ...Option) error {
	o := applyOptions(opts...)
	return exportDOCX(context.Background(), doc, path, o)
}

func exportDOCX(ctx context.Context, doc *Document, path string, o *Options) error {
	fd := converter.Export(doc, o.Config)
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := flowdoc.WriteFile(path, fd); err != nil {
		o.logger().Warn().Str("component", "docx").Str("path", path).Err(err).Msg("export failed")
		return &WriteError{Path: path, Err: err}
	}
	o.logger().Debug().Str("component", "docx").Str("path", path).
		Int("paragraphs", len(fd.Paragraphs)).Msg("exported")
	return nil
}

// ImportDOCX 读取 .docx 并生成新文档
//
// 文件缺失、不可读或结构无效时返回 *ReadError。
func ImportDOCX(path string, opts ...Option) (*Document, error) {
	o := applyOptions(opts...)
	return importDOCX(path, o)
}

func importDOCX(path string, o *Options) (*Document, error) {
	fd, err := flowdoc.ReadFile(path)
	if err != nil {
		o.logger().Warn().Str("component", "docx").Str("path", path).Err(err).Msg("import failed")
		return nil, &ReadError{Path: path, Err: err}
	}
	doc := converter.Import(fd)
	o.logger().Debug().Str("component", "docx").Str("path", path).
		Int("blocks", len(doc.Blocks)).Msg("imported")
	return doc, nil
}

// Save 按扩展名选择格式并保存文档
//
// ctx 只在开始前和写入前检查，转换本身不可中断。
func Save(ctx context.Context, doc *Document, path string, opts ...Option) error {
	o := applyOptions(opts...)
	if err := ctx.Err(); err != nil {
		return err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return &ConversionError{Format: format, Reason: "unknown extension " + path, Err: err}
	}
	if doc == nil {
		doc = NewDocument()
	}
	if format == FormatDOCX {
		return exportDOCX(ctx, doc, path, o)
	}

	data, err := encode(format, doc, o.Config)
	if err != nil {
		return &ConversionError{Format: format, Reason: err.Error(), Err: err}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fsutil.AtomicWriteFile(path, data, filePerm); err != nil {
		o.logger().Warn().Str("component", format.String()).Str("path", path).Err(err).Msg("save failed")
		return &WriteError{Path: path, Err: err}
	}
	o.logger().Debug().Str("component", format.String()).Str("path", path).
		Int("blocks", len(doc.Blocks)).Msg("saved")
	return nil
}

func encode(format Format, doc *Document, cfg *Config) ([]byte, error) {
	switch format {
	case FormatHTML:
		return markup.Render(doc, cfg), nil
	case FormatMarkdown:
		return mdown.Render(doc), nil
	case FormatText:
		return []byte(PlainText(doc)), nil
	case FormatPDF:
		var buf bytes.Buffer
		if err := pdf.Export(&buf, doc, cfg); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// Open 按扩展名选择格式读取文档
//
// PDF 只能导出，打开 PDF 返回 *ConversionError。
func Open(ctx context.Context, path string, opts ...Option) (*Document, error) {
	o := applyOptions(opts...)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, &ConversionError{Format: format, Reason: "unknown extension " + path, Err: err}
	}

	var doc *Document
	switch format {
	case FormatDOCX:
		doc, err = importDOCX(path, o)
		if err != nil {
			return nil, err
		}
	case FormatPDF:
		return nil, &ConversionError{Format: format, Reason: "pdf is export-only", Err: ErrUnsupportedFormat}
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			o.logger().Warn().Str("component", format.String()).Str("path", path).Err(err).Msg("open failed")
			return nil, &ReadError{Path: path, Err: err}
		}
		if doc, err = decode(format, data, o.Config); err != nil {
			return nil, &ReadError{Path: path, Err: err}
		}
		o.logger().Debug().Str("component", format.String()).Str("path", path).
			Int("blocks", len(doc.Blocks)).Msg("opened")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

func decode(format Format, data []byte, cfg *Config) (*Document, error) {
	switch format {
	case FormatHTML:
		return markup.Parse(bytes.NewReader(data), cfg)
	case FormatMarkdown:
		return mdown.Parse(data, cfg), nil
	case FormatText:
		return ParsePlainText(string(data)), nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// SaveAsync 在后台 goroutine 中执行一次 Save
//
// 文档先被复制，调用方可以立即继续编辑。返回的 channel 恰好收到一个结果后关闭。
func SaveAsync(ctx context.Context, doc *Document, path string, opts ...Option) <-chan error {
	snapshot := doc.Clone()
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- Save(ctx, snapshot, path, opts...)
	}()
	return done
}

// PlainText 返回文档的纯文本，段落以换行分隔，段内换行也写成换行
func PlainText(doc *Document) string {
	if doc == nil {
		return ""
	}
	return strings.ReplaceAll(doc.Text(), LineSeparator, "\n") + "\n"
}

// ParsePlainText 将纯文本按行拆成段落，所有 Run 都没有格式
func ParsePlainText(s string) *Document {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	buf := buffer.New()
	buf.InsertText(s)
	return buf.Document()
}
