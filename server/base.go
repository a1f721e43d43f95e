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

// Package server provides four TCP server strategies sharing one accept
// loop: iterative, worker-pool, fork-per-connection and prefork. Each
// wraps a BaseTCPServer and dispatches accepted connections to a
// service.Handler differently.
package server

import (
	"errors"
	"net"
	"os"

	ftserr "github.com/nabbar/fts-toolkit/errors"
	"github.com/nabbar/fts-toolkit/logger"
	"github.com/nabbar/fts-toolkit/service"
)

// BaseTCPServer binds one listener and runs a generic accept loop over
// it. It carries no dispatch policy of its own; that is layered on by
// each concrete server type below.
type BaseTCPServer struct {
	listener *net.TCPListener
	log      logger.Logger
}

// BindTCP listens on addr and wraps the resulting listener.
func BindTCP(addr string, log logger.Logger) (*BaseTCPServer, error) {
	if log == nil {
		log = logger.New(logger.InfoLevel)
	}

	a, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, ftserr.New(ftserr.InvalidInput, "failed to resolve listen address", err)
	}

	l, err := net.ListenTCP("tcp", a)
	if err != nil {
		return nil, ftserr.New(ftserr.IO, "failed to bind listener", err)
	}

	return &BaseTCPServer{listener: l, log: log}, nil
}

// newBoundBase wraps an already-open TCP listener, for servers that
// inherit their listening socket from a parent process (the prefork
// strategy's children) instead of binding one themselves.
func newBoundBase(l *net.TCPListener, log logger.Logger) *BaseTCPServer {
	if log == nil {
		log = logger.New(logger.InfoLevel)
	}
	return &BaseTCPServer{listener: l, log: log}
}

// Addr returns the bound local address.
func (b *BaseTCPServer) Addr() net.Addr {
	return b.listener.Addr()
}

// Init logs the address this server is about to accept connections on.
func (b *BaseTCPServer) Init() {
	b.log.Info("listening", logger.Fields{"addr": b.listener.Addr().String()})
}

// RunAcceptLoop accepts connections until the listener is closed,
// logging the peer address of each and handing it to dispatch. Any other
// accept error is logged and the loop continues; it returns nil once the
// listener has been closed by another goroutine (the ordinary shutdown
// path).
func (b *BaseTCPServer) RunAcceptLoop(dispatch func(conn *net.TCPConn)) error {
	for {
		conn, err := b.listener.AcceptTCP()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			b.log.Error("failed to accept connection", logger.Fields{"error": err.Error()})
			continue
		}

		b.log.Info("accepted connection", logger.Fields{"peer": conn.RemoteAddr().String()})
		dispatch(conn)
	}
}

// Close stops accepting new connections.
func (b *BaseTCPServer) Close() error {
	return b.listener.Close()
}

// File returns a duplicated file descriptor for the underlying listener,
// for servers that pass the socket to a child process (fork-per-connection,
// prefork, both implemented as re-exec of this same binary). The caller
// owns the returned *os.File and must close it once the child has
// inherited it.
func (b *BaseTCPServer) File() (*os.File, error) {
	f, err := b.listener.File()
	if err != nil {
		return nil, ftserr.New(ftserr.IO, "failed to duplicate listener fd", err)
	}
	return f, nil
}

func handleOne(svc service.Handler, conn *net.TCPConn, log logger.Logger) {
	if err := svc.Handle(conn); err != nil {
		log.Error("service failed to handle connection", logger.Fields{"error": err.Error()})
	}
}
