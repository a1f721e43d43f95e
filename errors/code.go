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

package errors

import "strconv"

// CodeError is a small, closed classification of the failure kinds this
// toolkit can produce: a numeric classification carried alongside the
// error chain, restricted to the kinds this repository actually
// distinguishes rather than a broad HTTP-like table.
type CodeError uint16

const (
	// UnknownError is the zero value, used only as a fallback.
	UnknownError CodeError = iota

	// InvalidInput: missing required argument, interior NULs, malformed address string.
	InvalidInput
	// NotFound: requested file (or resolver record) absent.
	NotFound
	// Unsupported: protocol version mismatch, or an address family the resolver cannot decode.
	Unsupported
	// InvalidData: framed message failed to decode.
	InvalidData
	// UnexpectedEOF: stream closed mid-message (chunk phase treats this as a normal end marker).
	UnexpectedEOF
	// IO wraps an OS-level error (permission, address-in-use, connection-refused, broken-pipe...).
	IO
	// Other: OS resolver text errors that do not map to a specific kind.
	Other
)

func (c CodeError) String() string {
	switch c {
	case InvalidInput:
		return "InvalidInput"
	case NotFound:
		return "NotFound"
	case Unsupported:
		return "Unsupported"
	case InvalidData:
		return "InvalidData"
	case UnexpectedEOF:
		return "UnexpectedEOF"
	case IO:
		return "IO"
	case Other:
		return "Other"
	default:
		return "Unknown(" + strconv.FormatUint(uint64(c), 10) + ")"
	}
}
