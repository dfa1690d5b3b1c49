/*
 * Copyright 2025 The FlowSift Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package logger provides leveled logging for FlowSift with a pluggable
// backend: a stdlib default and a zerolog adapter for structured output.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// Level defines log levels.
type Level int

const (
	// DEBUG displays detailed debug information.
	DEBUG Level = iota
	// INFO displays general information.
	INFO
	// WARN displays warning information.
	WARN
	// ERROR only displays error information.
	ERROR
	// OFF disables logging.
	OFF
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case OFF:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// Logger is the basic logging contract used throughout FlowSift.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	SetLevel(level Level)
}

type defaultLogger struct {
	level  Level
	logger *log.Logger
}

// New creates a logger writing to output at the given level.
func New(level Level, output io.Writer) Logger {
	return &defaultLogger{
		level:  level,
		logger: log.New(output, "", 0),
	}
}

func (l *defaultLogger) Debug(format string, args ...interface{}) {
	if l.level <= DEBUG {
		l.log(DEBUG, format, args...)
	}
}

func (l *defaultLogger) Info(format string, args ...interface{}) {
	if l.level <= INFO {
		l.log(INFO, format, args...)
	}
}

func (l *defaultLogger) Warn(format string, args ...interface{}) {
	if l.level <= WARN {
		l.log(WARN, format, args...)
	}
}

func (l *defaultLogger) Error(format string, args ...interface{}) {
	if l.level <= ERROR {
		l.log(ERROR, format, args...)
	}
}

func (l *defaultLogger) SetLevel(level Level) {
	l.level = level
}

func (l *defaultLogger) log(level Level, format string, args ...interface{}) {
	ts := time.Now().Format("2006-01-02 15:04:05.000")
	l.logger.Printf("[%s] [%s] %s", ts, level, fmt.Sprintf(format, args...))
}

var std Logger = New(INFO, os.Stderr)

// SetDefault replaces the package-level logger.
func SetDefault(l Logger) {
	if l != nil {
		std = l
	}
}

// Default returns the package-level logger.
func Default() Logger { return std }

// Debug logs at debug level on the default logger.
func Debug(format string, args ...interface{}) { std.Debug(format, args...) }

// Info logs at info level on the default logger.
func Info(format string, args ...interface{}) { std.Info(format, args...) }

// Warn logs at warn level on the default logger.
func Warn(format string, args ...interface{}) { std.Warn(format, args...) }

// Error logs at error level on the default logger.
func Error(format string, args ...interface{}) { std.Error(format, args...) }
