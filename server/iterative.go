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

package server

import (
	"net"

	"github.com/nabbar/fts-toolkit/logger"
	"github.com/nabbar/fts-toolkit/service"
)

// IterativeTCPServer handles one connection at a time on the goroutine
// that calls Serve: the simplest strategy, and the baseline every other
// strategy is measured against.
type IterativeTCPServer struct {
	base *BaseTCPServer
	svc  service.Handler
}

// NewIterativeTCPServer binds addr and returns a server that will
// dispatch every accepted connection to svc, one at a time.
func NewIterativeTCPServer(addr string, svc service.Handler, log logger.Logger) (*IterativeTCPServer, error) {
	base, err := BindTCP(addr, log)
	if err != nil {
		return nil, err
	}
	return &IterativeTCPServer{base: base, svc: svc}, nil
}

// Addr returns the bound local address.
func (s *IterativeTCPServer) Addr() net.Addr { return s.base.Addr() }

// Close stops accepting new connections.
func (s *IterativeTCPServer) Close() error { return s.base.Close() }

// Serve blocks, handling connections one at a time until Close is called.
func (s *IterativeTCPServer) Serve() error {
	s.base.Init()
	return s.base.RunAcceptLoop(func(conn *net.TCPConn) {
		handleOne(s.svc, conn, s.base.log)
	})
}
