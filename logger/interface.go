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

// Package logger provides the structured logging currency shared by the
// server, service and workerpool packages: a Logger interface, a level
// type, chainable structured fields, and a logrus backend, without
// syslog/file-rotation hooks or gorm/hclog adapters that have no
// consumer in this toolkit.
package logger

// Fields is an immutable-by-convention set of structured key/value pairs
// attached to a log entry (peer address, worker id, pid, chunk index...).
type Fields map[string]interface{}

// With returns a new Fields with key/val added, leaving the receiver untouched.
func (f Fields) With(key string, val interface{}) Fields {
	n := make(Fields, len(f)+1)
	for k, v := range f {
		n[k] = v
	}
	n[key] = val
	return n
}

// Logger is the structured emitter used throughout this toolkit.
type Logger interface {
	// SetLevel changes the minimal level of message that will be emitted.
	SetLevel(lvl Level)
	// GetLevel returns the minimal level of message that will be emitted.
	GetLevel() Level

	Trace(message string, fields Fields)
	Debug(message string, fields Fields)
	Info(message string, fields Fields)
	Warn(message string, fields Fields)
	Error(message string, fields Fields)

	// WithFields returns a Logger that always includes the given fields.
	WithFields(fields Fields) Logger
}
