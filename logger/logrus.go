/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package logger

import (
	"os"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

type logrusLogger struct {
	base   *logrus.Logger
	lvl    *atomic.Int32
	fields Fields
}

// New builds a Logger backed by logrus, writing to stderr with a text
// formatter.
func New(lvl Level) Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	a := &atomic.Int32{}
	a.Store(int32(lvl))

	return &logrusLogger{base: l, lvl: a}
}

// NewFromEnv reads the environment variable named envVar (FTS_LOG_LEVEL
// in this toolkit's binaries) to pick the initial level.
func NewFromEnv(envVar string) Logger {
	return New(ParseLevel(os.Getenv(envVar)))
}

func (l *logrusLogger) SetLevel(lvl Level) {
	l.lvl.Store(int32(lvl))
}

func (l *logrusLogger) GetLevel() Level {
	return Level(l.lvl.Load())
}

func (l *logrusLogger) WithFields(fields Fields) Logger {
	return &logrusLogger{base: l.base, lvl: l.lvl, fields: mergeFields(l.fields, fields)}
}

func mergeFields(a, b Fields) Fields {
	n := make(Fields, len(a)+len(b))
	for k, v := range a {
		n[k] = v
	}
	for k, v := range b {
		n[k] = v
	}
	return n
}

func (l *logrusLogger) entry(fields Fields) *logrus.Entry {
	return l.base.WithFields(logrus.Fields(mergeFields(l.fields, fields)))
}

func (l *logrusLogger) emit(lvl Level, message string, fields Fields) {
	if lvl < l.GetLevel() {
		return
	}
	e := l.entry(fields)
	switch lvl {
	case TraceLevel:
		e.Trace(message)
	case DebugLevel:
		e.Debug(message)
	case InfoLevel:
		e.Info(message)
	case WarnLevel:
		e.Warn(message)
	case ErrorLevel:
		e.Error(message)
	}
}

func (l *logrusLogger) Trace(message string, fields Fields) { l.emit(TraceLevel, message, fields) }
func (l *logrusLogger) Debug(message string, fields Fields) { l.emit(DebugLevel, message, fields) }
func (l *logrusLogger) Info(message string, fields Fields)  { l.emit(InfoLevel, message, fields) }
func (l *logrusLogger) Warn(message string, fields Fields)  { l.emit(WarnLevel, message, fields) }
func (l *logrusLogger) Error(message string, fields Fields) { l.emit(ErrorLevel, message, fields) }
