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

// resolve_test.go covers localhost+http lookup without hints, a
// service-only lookup forced to IPv4, numeric reverse resolution, and
// the degenerate-input rejection paths.
package resolver_test

import (
	"net/netip"

	"github.com/nabbar/fts-toolkit/errors"
	"github.com/nabbar/fts-toolkit/resolver"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func collect(seq *resolver.ResultSequence) []resolver.Result {
	var out []resolver.Result
	for {
		r, ok := seq.Next()
		if !ok {
			break
		}
		out = append(out, r)
	}
	return out
}

var _ = Describe("Resolve", func() {
	Context("degenerate input", func() {
		It("rejects when both host and service are absent", func() {
			_, err := resolver.Resolve(nil, nil, nil)
			Expect(err).To(HaveOccurred())
			Expect(err.(errors.Error).IsCode(errors.InvalidInput)).To(BeTrue())
		})

		It("rejects a host containing an interior NUL", func() {
			bad := "local\x00host"
			_, err := resolver.Resolve(&bad, nil, nil)
			Expect(err).To(HaveOccurred())
			Expect(err.(errors.Error).IsCode(errors.InvalidInput)).To(BeTrue())
		})

		It("rejects a service containing an interior NUL", func() {
			bad := "ht\x00tp"
			_, err := resolver.Resolve(nil, &bad, nil)
			Expect(err).To(HaveOccurred())
			Expect(err.(errors.Error).IsCode(errors.InvalidInput)).To(BeTrue())
		})
	})

	Context("localhost + http, no hints", func() {
		It("returns at least 4 records spanning IPv4 and IPv6", func() {
			seq, err := resolver.Resolve(strPtr("localhost"), strPtr("http"), nil)
			Expect(err).ToNot(HaveOccurred())
			defer seq.Close()

			results := collect(seq)
			Expect(len(results)).To(BeNumerically(">=", 4))

			var sawV4, sawV6 bool
			for _, r := range results {
				Expect(r.Err).ToNot(HaveOccurred())
				if r.Record.Family == resolver.FamilyInet && r.Record.SocketAddr == netip.MustParseAddrPort("127.0.0.1:80") {
					sawV4 = true
				}
				if r.Record.Family == resolver.FamilyInet6 && r.Record.SocketAddr == netip.MustParseAddrPort("[::1]:80") {
					sawV6 = true
				}
			}
			Expect(sawV4).To(BeTrue())
			Expect(sawV6).To(BeTrue())
		})
	})

	Context("service only, forced IPv4", func() {
		It("returns only IPv4 records on the expected port", func() {
			hints := &resolver.Hints{Family: resolver.FamilyInet}
			seq, err := resolver.Resolve(nil, strPtr("nfs"), hints)
			Expect(err).ToNot(HaveOccurred())
			defer seq.Close()

			results := collect(seq)
			Expect(len(results)).To(BeNumerically(">=", 2))
			for _, r := range results {
				Expect(r.Err).ToNot(HaveOccurred())
				Expect(r.Record.Family).To(Equal(resolver.FamilyInet))
				Expect(r.Record.SocketAddr.Port()).To(Equal(uint16(2049)))
			}
		})
	})

	Context("closing the sequence", func() {
		It("is safe to close part-way through iteration, more than once", func() {
			seq, err := resolver.Resolve(strPtr("localhost"), strPtr("http"), nil)
			Expect(err).ToNot(HaveOccurred())

			_, ok := seq.Next()
			Expect(ok).To(BeTrue())

			seq.Close()
			seq.Close() // idempotent: must not double-free

			_, ok = seq.Next()
			Expect(ok).To(BeFalse())
		})
	})
})

var _ = Describe("ReverseResolve", func() {
	It("round-trips a numeric IPv4 endpoint", func() {
		ep := netip.MustParseAddrPort("127.0.0.1:80")
		host, service, err := resolver.ReverseResolve(ep, resolver.FlagNumericHost|resolver.FlagNumericServ)
		Expect(err).ToNot(HaveOccurred())
		Expect(host).To(Equal("127.0.0.1"))
		Expect(service).To(Equal("80"))
	})

	It("round-trips a numeric IPv6 endpoint", func() {
		ep := netip.MustParseAddrPort("[::1]:443")
		host, service, err := resolver.ReverseResolve(ep, resolver.FlagNumericHost|resolver.FlagNumericServ)
		Expect(err).ToNot(HaveOccurred())
		Expect(host).To(Equal("::1"))
		Expect(service).To(Equal("443"))
	})
})
