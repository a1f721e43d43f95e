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
	"github.com/nabbar/fts-toolkit/workerpool"
)

// ThreadPoolTCPServer dispatches every accepted connection to a fixed
// pool of worker goroutines, bounding concurrency without bounding the
// accept loop itself.
type ThreadPoolTCPServer struct {
	base *BaseTCPServer
	svc  service.Handler
	pool *workerpool.Pool
}

// NewThreadPoolTCPServer binds addr and starts a worker pool of the
// given size (NewDefault sizing is used when numWorkers <= 0).
func NewThreadPoolTCPServer(addr string, svc service.Handler, numWorkers int, log logger.Logger) (*ThreadPoolTCPServer, error) {
	base, err := BindTCP(addr, log)
	if err != nil {
		return nil, err
	}

	var pool *workerpool.Pool
	if numWorkers > 0 {
		pool = workerpool.New(numWorkers, log)
	} else {
		pool = workerpool.NewDefault(log)
	}

	return &ThreadPoolTCPServer{base: base, svc: svc, pool: pool}, nil
}

// Addr returns the bound local address.
func (s *ThreadPoolTCPServer) Addr() net.Addr { return s.base.Addr() }

// Close stops accepting new connections and joins every worker.
func (s *ThreadPoolTCPServer) Close() error {
	err := s.base.Close()
	s.pool.Close()
	return err
}

// Serve blocks, handing each accepted connection to the worker pool.
func (s *ThreadPoolTCPServer) Serve() error {
	s.base.Init()
	return s.base.RunAcceptLoop(func(conn *net.TCPConn) {
		s.pool.Execute(func() {
			handleOne(s.svc, conn, s.base.log)
		})
	})
}
