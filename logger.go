package openpen

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger 全局日志记录器
var Logger = NewLogger(zerolog.ConsoleWriter{Out: os.Stderr}, zerolog.InfoLevel)

// SetLogger 设置自定义日志记录器
func SetLogger(logger zerolog.Logger) {
	Logger = logger
}

// NewLogger 创建带时间戳的 zerolog 记录器
func NewLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// ParseLevel 解析配置中的日志级别，空字符串视为 info
func ParseLevel(s string) (zerolog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
}
