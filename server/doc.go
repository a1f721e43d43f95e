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

// Package server provides four TCP server strategies built on a shared
// BaseTCPServer accept loop:
//
//   - IterativeTCPServer handles one connection at a time.
//   - ThreadPoolTCPServer dispatches to a bounded workerpool.Pool.
//   - ForkPerConnectionTCPServer re-execs a fresh child process per
//     connection, bounded by a semaphore.
//   - PreforkTCPServer pre-spawns a fixed number of re-exec'd children
//     that each accept independently on the same listening socket.
//
// The fork-based strategies use a re-exec of the running binary rather
// than raw fork(2): Go's runtime distributes goroutines across several
// OS threads, and fork only duplicates the calling thread, so a forked
// Go process cannot safely resume normal execution. A binary that wants
// ForkPerConnectionTCPServer or PreforkTCPServer must call
// RegisterConnEntrypoint (for fork-per-connection) or
// RegisterPreforkListenerEntrypoint (for prefork) during initialization and call RunChildIfRequested at the
// very top of main, before flag parsing or any other setup.
package server
