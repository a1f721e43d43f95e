/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
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

// Package service holds the connection handlers the server framework
// dispatches to: a delayed echo used for tests and baseline measurement,
// and the file-transfer protocol's server-side state machine and
// client-side driver.
package service

import "net"

// Handler is the capability every server strategy dispatches a newly
// accepted connection to. A Handler value is constructed once per
// process and shared, read-only, across every worker/child that serves
// a connection, so implementations must be safe for concurrent Handle
// calls.
type Handler interface {
	Handle(conn net.Conn) error
}

// HandlerFunc adapts a plain function to a Handler.
type HandlerFunc func(conn net.Conn) error

func (f HandlerFunc) Handle(conn net.Conn) error { return f(conn) }
