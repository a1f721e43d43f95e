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

// filetransfer_test.go exercises the concrete scenarios named by this
// toolkit's own design notes: happy path, version mismatch, rejection,
// and not-found, each driven over a real loopback TCP connection.
package service_test

import (
	"bytes"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/nabbar/fts-toolkit/protocol"
	"github.com/nabbar/fts-toolkit/service"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func serveOnce(t testing.TB, svc service.Handler) (addr string, done chan error) {
	lstn, err := net.Listen("tcp", "127.0.0.1:0")
	Expect(err).ToNot(HaveOccurred())

	done = make(chan error, 1)
	go func() {
		conn, err := lstn.Accept()
		_ = lstn.Close()
		if err != nil {
			done <- err
			return
		}
		done <- svc.Handle(conn)
	}()

	return lstn.Addr().String(), done
}

var _ = Describe("FileTransferService", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "fts-test-*")
		Expect(err).ToNot(HaveOccurred())
		DeferCleanup(func() { _ = os.RemoveAll(dir) })
	})

	It("transfers a small file end to end (happy path)", func() {
		Expect(os.WriteFile(filepath.Join(dir, "a.bin"), []byte("abc"), 0o600)).To(Succeed())

		svc := service.NewFileTransferService(dir, 1, 2, nil)
		addr, done := serveOnce(GinkgoT(), svc)

		client, err := service.Connect(addr, 1)
		Expect(err).ToNot(HaveOccurred())
		defer client.Close()

		resp, err := client.RequestFile("a.bin")
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.IsError()).To(BeFalse())
		Expect(resp.Metadata.Status).To(Equal(protocol.StatusFound))
		Expect(resp.Metadata.FileSize).To(Equal(uint64(3)))

		Expect(client.SendAck(protocol.AckAccepted)).To(Succeed())

		var buf bytes.Buffer
		n, err := client.ReceiveFile(&buf)
		Expect(err).ToNot(HaveOccurred())
		Expect(n).To(Equal(uint64(3)))
		Expect(buf.String()).To(Equal("abc"))

		Expect(<-done).To(Succeed())
	})

	It("reports a version mismatch without streaming anything", func() {
		svc := service.NewFileTransferService(dir, 1, 1024, nil)
		addr, done := serveOnce(GinkgoT(), svc)

		client, err := service.Connect(addr, 99)
		Expect(err).ToNot(HaveOccurred())
		defer client.Close()

		resp, err := client.RequestFile("x")
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.IsError()).To(BeTrue())
		Expect(resp.Error.Kind).To(Equal(protocol.ErrUnsupportedVersion))

		<-done
	})

	It("supports client-side rejection with no chunks sent", func() {
		big := make([]byte, 10_000)
		Expect(os.WriteFile(filepath.Join(dir, "big.bin"), big, 0o600)).To(Succeed())

		svc := service.NewFileTransferService(dir, 1, 1024, nil)
		addr, done := serveOnce(GinkgoT(), svc)

		client, err := service.Connect(addr, 1)
		Expect(err).ToNot(HaveOccurred())
		defer client.Close()

		resp, err := client.RequestFile("big.bin")
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.Metadata.FileSize).To(Equal(uint64(10_000)))

		Expect(client.SendAck(protocol.AckRejected)).To(Succeed())

		var buf bytes.Buffer
		n, err := client.ReceiveFile(&buf)
		Expect(err).ToNot(HaveOccurred())
		Expect(n).To(Equal(uint64(0)))

		<-done
	})

	It("reports not-found for a missing file", func() {
		svc := service.NewFileTransferService(dir, 1, 1024, nil)
		addr, done := serveOnce(GinkgoT(), svc)

		client, err := service.Connect(addr, 1)
		Expect(err).ToNot(HaveOccurred())
		defer client.Close()

		resp, err := client.RequestFile("missing.bin")
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.IsError()).To(BeFalse())
		Expect(resp.Metadata.Status).To(Equal(protocol.StatusNotFound))

		<-done
	})

	It("rejects path traversal the same way as a missing file", func() {
		svc := service.NewFileTransferService(dir, 1, 1024, nil)
		addr, done := serveOnce(GinkgoT(), svc)

		client, err := service.Connect(addr, 1)
		Expect(err).ToNot(HaveOccurred())
		defer client.Close()

		resp, err := client.RequestFile("../../etc/passwd")
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.Metadata.Status).To(Equal(protocol.StatusNotFound))

		<-done
	})
})
