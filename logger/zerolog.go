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

package logger

import (
	"github.com/rs/zerolog"
)

// zerologAdapter implements Logger on top of a zerolog.Logger, used by the
// CLI for structured console output.
type zerologAdapter struct {
	zl zerolog.Logger
}

// NewZerolog wraps a zerolog.Logger as a Logger.
func NewZerolog(zl zerolog.Logger) Logger {
	return &zerologAdapter{zl: zl}
}

func (a *zerologAdapter) Debug(format string, args ...interface{}) {
	a.zl.Debug().Msgf(format, args...)
}

func (a *zerologAdapter) Info(format string, args ...interface{}) {
	a.zl.Info().Msgf(format, args...)
}

func (a *zerologAdapter) Warn(format string, args ...interface{}) {
	a.zl.Warn().Msgf(format, args...)
}

func (a *zerologAdapter) Error(format string, args ...interface{}) {
	a.zl.Error().Msgf(format, args...)
}

func (a *zerologAdapter) SetLevel(level Level) {
	a.zl = a.zl.Level(toZerologLevel(level))
}

func toZerologLevel(level Level) zerolog.Level {
	switch level {
	case DEBUG:
		return zerolog.DebugLevel
	case INFO:
		return zerolog.InfoLevel
	case WARN:
		return zerolog.WarnLevel
	case ERROR:
		return zerolog.ErrorLevel
	case OFF:
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
