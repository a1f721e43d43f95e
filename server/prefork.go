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
	"fmt"
	"net"
	"os"
	"os/exec"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sys/unix"

	"github.com/nabbar/fts-toolkit/logger"
	"github.com/nabbar/fts-toolkit/service"
)

// preforkListenerEntrypointSuffix namespaces the registry entry
// RegisterPreforkListenerEntrypoint installs, distinguishing it from a
// caller's own ForkPerConnectionTCPServer entrypoint registered under
// the same service name.
const preforkListenerEntrypointSuffix = ".prefork-listener"

// PreforkTCPServer spawns a fixed number of re-exec'd children at
// startup, each running its own accept loop against the same listening
// socket (inherited as fd 3). The kernel distributes incoming
// connections across every process blocked in accept(2) on that socket,
// so no coordination between children is required.
type PreforkTCPServer struct {
	base        *BaseTCPServer
	entrypoint  string
	numChildren int
	children    []*exec.Cmd
}

// NewPreforkTCPServer binds addr and prepares a server that will spawn
// numChildren re-exec'd copies of itself once Serve is called.
func NewPreforkTCPServer(addr, entrypoint string, numChildren int, log logger.Logger) (*PreforkTCPServer, error) {
	base, err := BindTCP(addr, log)
	if err != nil {
		return nil, err
	}
	if numChildren <= 0 {
		numChildren = 1
	}
	return &PreforkTCPServer{base: base, entrypoint: entrypoint, numChildren: numChildren}, nil
}

// RegisterPreforkListenerEntrypoint wires svc as the handler every
// prefork child will loop on, under an entrypoint name derived from
// baseName. Call this once at package init alongside
// RegisterConnEntrypoint; RunChildIfRequested dispatches to whichever
// entrypoint matches the environment this process was re-exec'd with.
func RegisterPreforkListenerEntrypoint(baseName string, svc service.Handler) {
	entrypointsMu.Lock()
	defer entrypointsMu.Unlock()
	entrypoints[preforkListenerName(baseName)] = func(_ net.Conn) error {
		return runPreforkChild(svc)
	}
}

func preforkListenerName(baseName string) string {
	return baseName + preforkListenerEntrypointSuffix
}

// Addr returns the bound local address.
func (s *PreforkTCPServer) Addr() net.Addr { return s.base.Addr() }

// Close stops accepting new connections in the parent. The pre-spawned
// children, each holding their own inherited listener fd, keep running
// independently; Shutdown should be used instead for a coordinated
// stop.
func (s *PreforkTCPServer) Close() error { return s.base.Close() }

// Shutdown stops the parent's listener and signals every pre-spawned
// child to exit.
func (s *PreforkTCPServer) Shutdown() error {
	err := s.base.Close()
	for _, cmd := range s.children {
		_ = cmd.Process.Kill()
	}
	return err
}

// Serve spawns numChildren re-exec'd processes, each given the
// listener's file descriptor, and then blocks waiting for all of them
// to exit (the parent itself never calls accept).
func (s *PreforkTCPServer) Serve() error {
	s.base.Init()

	listenerFile, err := s.base.File()
	if err != nil {
		return err
	}
	defer listenerFile.Close()

	name := preforkListenerName(s.entrypoint)
	for i := 0; i < s.numChildren; i++ {
		cmd, err := spawnChild(name, listenerFile)
		if err != nil {
			s.base.log.Error("failed to spawn prefork child", logger.Fields{"error": err.Error()})
			continue
		}
		s.base.log.Info("forked prefork child", logger.Fields{"pid": cmd.Process.Pid})
		s.children = append(s.children, cmd)
	}

	var result *multierror.Error
	for _, cmd := range s.children {
		if err := cmd.Wait(); err != nil {
			result = multierror.Append(result, fmt.Errorf("child pid %d: %w", cmd.Process.Pid, err))
		}
	}
	return result.ErrorOrNil()
}

// runPreforkChild is executed inside the re-exec'd child process. It
// installs a parent-death signal so an abruptly killed parent does not
// leave orphaned children behind, then runs the same shared accept loop
// every other strategy uses on the inherited listener: an accept error
// is logged and never fatal to the loop.
func runPreforkChild(svc service.Handler) error {
	if err := unix.Prctl(unix.PR_SET_PDEATHSIG, uintptr(unix.SIGTERM), 0, 0, 0); err != nil {
		fmt.Fprintf(os.Stderr, "fts-toolkit: failed to set parent-death signal: %v\n", err)
		os.Exit(1)
	}

	l, err := listenerFromEnv()
	if err != nil {
		return err
	}

	log := logger.NewFromEnv("FTS_LOG_LEVEL")
	base := newBoundBase(l, log)
	base.Init()

	return base.RunAcceptLoop(func(conn *net.TCPConn) {
		handleOne(svc, conn, log)
	})
}
