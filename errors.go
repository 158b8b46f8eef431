package openpen

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat 无法识别或不支持该方向的文件格式
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrOutOfRange 位置或区间超出文档范围
	ErrOutOfRange = errors.New("position out of range")
)

// ReadError 源文件缺失、不可读或结构无效
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError 目标不可写（权限、磁盘空间、目录不存在等）
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ConversionError 源内容无法映射到目标格式
type ConversionError struct {
	Format Format
	Reason string
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert %s: %s", e.Format, e.Reason)
}

func (e *ConversionError) Unwrap() error { return e.Err }
