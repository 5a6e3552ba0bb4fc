// Package logger файловый логгер с уровнями
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level уровень логирования
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel парсит уровень логирования из строки конфигурации
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("logger: unknown log level %q", s)
	}
}

// Logger пишет в stdout и (опционально) в файл
type Logger struct {
	mu    sync.Mutex
	level Level
	out   *log.Logger
	file  *os.File
}

// New создает логгер. Если file пустой, пишет только в stdout
func New(file string, level string) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var w io.Writer = os.Stdout
	var f *os.File
	if file != "" {
		f, err = os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logger: open log file: %w", err)
		}
		w = io.MultiWriter(os.Stdout, f)
	}

	return &Logger{
		level: lvl,
		out:   log.New(w, "", log.LstdFlags|log.LUTC),
		file:  f,
	}, nil
}

// Close закрывает файл логов
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func (l *Logger) logf(lvl Level, prefix string, format string, v ...interface{}) {
	if lvl < l.level {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Printf(prefix+" "+format, v...)
}

// Debug логирует отладочное сообщение
func (l *Logger) Debug(format string, v ...interface{}) {
	l.logf(LevelDebug, "[DEBUG]", format, v...)
}

// Info логирует информационное сообщение
func (l *Logger) Info(format string, v ...interface{}) {
	l.logf(LevelInfo, "[INFO]", format, v...)
}

// Warn логирует предупреждение
func (l *Logger) Warn(format string, v ...interface{}) {
	l.logf(LevelWarn, "[WARN]", format, v...)
}

// Error логирует ошибку
func (l *Logger) Error(format string, v ...interface{}) {
	l.logf(LevelError, "[ERROR]", format, v...)
}

// Fatal логирует ошибку и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.logf(LevelError, "[FATAL]", format, v...)
	if l.file != nil {
		l.file.Close()
	}
	os.Exit(1)
}
