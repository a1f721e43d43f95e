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

// Package errors provides the error currency shared by every package in
// this toolkit: a small CodeError classification attached to a wrapped
// cause and a capture of the call site that raised it. It trades a
// typical HTTP-sized code table and framework integrations for the
// handful of kinds this toolkit actually distinguishes.
package errors

import "runtime"

// Error extends the standard error with a CodeError classification and
// compatibility with errors.Is/errors.As via Unwrap.
type Error interface {
	error

	// Unwrap returns the wrapped cause, or nil.
	Unwrap() error

	// Is reports whether target is an equivalent Error (same code and message)
	// or matches the wrapped cause.
	Is(target error) bool

	// GetCode returns this error's classification.
	GetCode() CodeError

	// IsCode reports whether this error's own code equals code.
	IsCode(code CodeError) bool

	// HasCode reports whether this error or any wrapped cause has code.
	HasCode(code CodeError) bool

	// GetFrame returns the call site where the error was constructed.
	GetFrame() runtime.Frame

	// String renders the error with its code and call site, for logging.
	String() string
}
