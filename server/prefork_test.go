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
	"bufio"
	"net"
	"sync"
	"time"

	"github.com/nabbar/fts-toolkit/server"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("PreforkTCPServer", func() {
	It("spreads connections across pre-spawned children sharing one listener", func() {
		s, err := server.NewPreforkTCPServer("127.0.0.1:0", preforkEchoBaseName, 3, nil)
		Expect(err).ToNot(HaveOccurred())
		defer s.Shutdown()

		go s.Serve()
		time.Sleep(200 * time.Millisecond) // let the children start accepting

		const clients = 6
		var wg sync.WaitGroup
		wg.Add(clients)
		for i := 0; i < clients; i++ {
			go func() {
				defer wg.Done()
				defer GinkgoRecover()

				conn, err := net.DialTimeout("tcp", s.Addr().String(), 2*time.Second)
				Expect(err).ToNot(HaveOccurred())
				defer conn.Close()

				_, err = conn.Write([]byte("ping\n\n"))
				Expect(err).ToNot(HaveOccurred())

				reply, err := bufio.NewReader(conn).ReadString('\n')
				Expect(err).ToNot(HaveOccurred())
				Expect(reply).To(Equal("ping\n"))
			}()
		}
		wg.Wait()
	})
})
