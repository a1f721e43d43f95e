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
	"context"
	"net"
	"os/exec"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/sys/unix"

	"github.com/nabbar/fts-toolkit/logger"
)

// ForkPerConnectionTCPServer re-execs a fresh child process for every
// accepted connection, bounding how many children may be outstanding at
// once. This is the Go re-exec analogue of a classic fork-per-connection
// Unix server: raw fork(2) is unsafe in a multi-threaded Go process (only
// the calling goroutine's OS thread survives into the child), so each
// "child" here is the same binary re-invoked with the accepted
// connection's descriptor inherited as fd 3.
type ForkPerConnectionTCPServer struct {
	base        *BaseTCPServer
	entrypoint  string
	maxChildren *semaphore.Weighted
	active      atomic.Int64
}

// NewForkPerConnectionTCPServer binds addr and prepares a server that
// re-execs itself (under entrypoint, previously registered with
// RegisterConnEntrypoint) for each connection, never running more than
// maxChildren re-exec'd processes concurrently.
func NewForkPerConnectionTCPServer(addr, entrypoint string, maxChildren int, log logger.Logger) (*ForkPerConnectionTCPServer, error) {
	base, err := BindTCP(addr, log)
	if err != nil {
		return nil, err
	}
	if maxChildren <= 0 {
		maxChildren = 1
	}
	return &ForkPerConnectionTCPServer{
		base:        base,
		entrypoint:  entrypoint,
		maxChildren: semaphore.NewWeighted(int64(maxChildren)),
	}, nil
}

// Addr returns the bound local address.
func (s *ForkPerConnectionTCPServer) Addr() net.Addr { return s.base.Addr() }

// Close stops accepting new connections. Already-spawned children are
// left to finish on their own.
func (s *ForkPerConnectionTCPServer) Close() error { return s.base.Close() }

// Serve blocks, re-exec'ing a child for every accepted connection, never
// exceeding the configured maxChildren concurrently.
func (s *ForkPerConnectionTCPServer) Serve() error {
	s.base.Init()

	return s.base.RunAcceptLoop(func(conn *net.TCPConn) {
		if err := s.maxChildren.Acquire(context.Background(), 1); err != nil {
			s.base.log.Error("failed to acquire child slot", logger.Fields{"error": err.Error()})
			_ = conn.Close()
			return
		}

		connFile, err := conn.File()
		if err != nil {
			s.base.log.Error("failed to duplicate connection fd", logger.Fields{"error": err.Error()})
			_ = conn.Close()
			s.maxChildren.Release(1)
			return
		}
		_ = conn.Close()

		cmd, err := spawnChild(s.entrypoint, connFile)
		_ = connFile.Close()
		if err != nil {
			s.base.log.Error("failed to spawn child process", logger.Fields{"error": err.Error()})
			s.maxChildren.Release(1)
			return
		}

		s.active.Add(1)
		s.base.log.Info("forked child", logger.Fields{"pid": cmd.Process.Pid, "active": s.active.Load()})

		go s.reap(cmd)
	})
}

// reap waits for one re-exec'd child without blocking the accept loop,
// releasing its slot and logging the exit status once it is reaped.
func (s *ForkPerConnectionTCPServer) reap(cmd *exec.Cmd) {
	var ws unix.WaitStatus
	_, err := unix.Wait4(cmd.Process.Pid, &ws, 0, nil)

	s.active.Add(-1)
	s.maxChildren.Release(1)

	if err != nil {
		s.base.log.Error("failed to wait for child", logger.Fields{"pid": cmd.Process.Pid, "error": err.Error()})
		return
	}
	s.base.log.Info("child exited", logger.Fields{"pid": cmd.Process.Pid, "status": int(ws), "active": s.active.Load()})
}
