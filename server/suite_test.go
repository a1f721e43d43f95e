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

package server_test

import (
	"os"
	"testing"

	"github.com/nabbar/fts-toolkit/server"
	"github.com/nabbar/fts-toolkit/service"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// echoConnEntrypoint and preforkEchoEntrypoint name the child
// entrypoints this suite registers so the test binary itself can be
// re-exec'd as a fork-per-connection or prefork child, exactly as a
// real cmd/ft-server binary would register its own.
const (
	echoConnEntrypoint  = "test-echo"
	preforkEchoBaseName = "test-prefork-echo"
)

func init() {
	server.RegisterConnEntrypoint(echoConnEntrypoint, service.NewEchoService(0))
	server.RegisterPreforkListenerEntrypoint(preforkEchoBaseName, service.NewEchoService(0))
}

// TestMain lets this test binary double as the re-exec'd child process:
// when launched with the child-entrypoint environment variable set, it
// runs the requested entrypoint and exits instead of running specs.
func TestMain(m *testing.M) {
	server.RunChildIfRequested()
	os.Exit(m.Run())
}

func TestServer(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Server Suite")
}
