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
	"strings"
	"sync"

	"github.com/nabbar/fts-toolkit/service"
)

// childEntrypointEnv names the environment variable a re-exec'd child
// reads to find which registered entrypoint to run. Go's runtime cannot
// safely continue a multi-threaded process past fork(2) (only the
// calling thread survives into the child's address space, and the Go
// scheduler's other OS threads simply vanish), so every "child process"
// this package creates is a genuine re-exec of the running binary
// rather than a raw fork: os.Executable() run again with this variable
// set and the relevant socket passed as an inherited file descriptor.
const childEntrypointEnv = "FTS_SERVER_CHILD_ENTRYPOINT"

var (
	entrypointsMu sync.Mutex
	entrypoints   = map[string]func(net.Conn) error{}
)

// RegisterConnEntrypoint makes svc reachable by re-exec under name. A
// binary using ForkPerConnectionTCPServer must call this during init
// (PreforkTCPServer needs RegisterPreforkListenerEntrypoint instead),
// then call RunChildIfRequested at the top of main, before doing
// anything else.
func RegisterConnEntrypoint(name string, svc service.Handler) {
	entrypointsMu.Lock()
	defer entrypointsMu.Unlock()
	entrypoints[name] = svc.Handle
}

// RunChildIfRequested checks whether this process was launched as a
// re-exec'd child. If so, it runs the requested entrypoint against the
// inherited file descriptor and exits the process with a status
// reflecting success or failure; it never returns. If this process was
// not launched as a child, it returns immediately so the caller's
// ordinary main() can proceed.
func RunChildIfRequested() {
	name := os.Getenv(childEntrypointEnv)
	if name == "" {
		return
	}

	entrypointsMu.Lock()
	fn, ok := entrypoints[name]
	entrypointsMu.Unlock()
	if !ok {
		fmt.Fprintf(os.Stderr, "fts-toolkit: no child entrypoint registered for %q\n", name)
		os.Exit(1)
	}

	// A prefork child's fd 3 is the shared listener, which its entrypoint
	// reopens itself; wrapping it as a connection here would close it first.
	var conn net.Conn
	if !strings.HasSuffix(name, preforkListenerEntrypointSuffix) {
		c, err := connFromEnv()
		if err != nil {
			fmt.Fprintf(os.Stderr, "fts-toolkit: child could not recover connection: %v\n", err)
			os.Exit(1)
		}
		conn = c
	}

	if err := fn(conn); err != nil {
		fmt.Fprintf(os.Stderr, "fts-toolkit: child handler failed: %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}

// connFromEnv wraps fd 3 (the first ExtraFiles entry, the only one this
// package ever passes) as a net.Conn.
func connFromEnv() (net.Conn, error) {
	f := os.NewFile(3, "inherited-conn")
	if f == nil {
		return nil, fmt.Errorf("fd 3 is not open")
	}
	conn, err := net.FileConn(f)
	if err != nil {
		return nil, err
	}
	_ = f.Close()
	return conn, nil
}

// listenerFromEnv wraps fd 3 as a *net.TCPListener, for the prefork
// strategy where children share the parent's listening socket rather
// than a single accepted connection. The inherited socket is always TCP
// since BaseTCPServer.File only ever duplicates a *net.TCPListener's fd.
func listenerFromEnv() (*net.TCPListener, error) {
	f := os.NewFile(3, "inherited-listener")
	if f == nil {
		return nil, fmt.Errorf("fd 3 is not open")
	}
	l, err := net.FileListener(f)
	if err != nil {
		return nil, err
	}
	_ = f.Close()

	tl, ok := l.(*net.TCPListener)
	if !ok {
		return nil, fmt.Errorf("inherited listener is not TCP: %T", l)
	}
	return tl, nil
}

// spawnChild re-execs the current binary with childEntrypointEnv set to
// name and fd passed as its sole ExtraFiles entry (landing at fd 3 in
// the child). The caller owns fd and should close its own copy once
// Start returns.
func spawnChild(name string, fd *os.File) (*exec.Cmd, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(exe, os.Args[1:]...)
	cmd.Env = append(os.Environ(), childEntrypointEnv+"="+name)
	cmd.ExtraFiles = []*os.File{fd}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cmd, nil
}
