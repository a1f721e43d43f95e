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

package resolver

/*
#include <string.h>
#include <sys/socket.h>
#include <netinet/in.h>
#include <netdb.h>

// Go cannot take the address of a C union member through cgo directly
// once it is embedded in a Go-allocated struct, so the two concrete
// sockaddr variants are built natively and only the final generic pointer
// crosses back into Go.
static int fts_getnameinfo_in(struct sockaddr_in *sa, char *host, size_t hostlen, char *serv, size_t servlen, int flags) {
	return getnameinfo((struct sockaddr *)sa, sizeof(*sa), host, hostlen, serv, servlen, flags);
}

static int fts_getnameinfo_in6(struct sockaddr_in6 *sa, char *host, size_t hostlen, char *serv, size_t servlen, int flags) {
	return getnameinfo((struct sockaddr *)sa, sizeof(*sa), host, hostlen, serv, servlen, flags);
}
*/
import "C"

import (
	"net/netip"
	"unsafe"

	"github.com/nabbar/fts-toolkit/errors"
)

// NI_MAXHOST and NI_MAXSERV per POSIX <netdb.h>: the buffer sizes
// getnameinfo(3) is guaranteed never to overrun.
const (
	maxHostLen = 1025
	maxServLen = 32
)

func htons(v uint16) uint16 {
	return v<<8 | v>>8
}

// ReverseResolve is the safe wrapper around getnameinfo(3): it resolves a
// concrete IPv4 or IPv6 endpoint back to a host name and a service name,
// honoring flags such as NumericHost/NumericService.
func ReverseResolve(endpoint netip.AddrPort, flags int32) (host string, service string, err error) {
	hostBuf := make([]byte, maxHostLen)
	servBuf := make([]byte, maxServLen)

	var ret C.int
	var errno error

	addr := endpoint.Addr()
	switch {
	case addr.Is4():
		var sa C.struct_sockaddr_in
		sa.sin_family = C.AF_INET
		sa.sin_port = C.in_port_t(htons(endpoint.Port()))
		b := addr.As4()
		copyBytes(unsafe.Pointer(&sa.sin_addr), b[:])

		ret, errno = C.fts_getnameinfo_in(
			&sa,
			(*C.char)(unsafe.Pointer(&hostBuf[0])), C.size_t(len(hostBuf)),
			(*C.char)(unsafe.Pointer(&servBuf[0])), C.size_t(len(servBuf)),
			C.int(flags),
		)
	case addr.Is6():
		var sa C.struct_sockaddr_in6
		sa.sin6_family = C.AF_INET6
		sa.sin6_port = C.in_port_t(htons(endpoint.Port()))
		b := addr.As16()
		copyBytes(unsafe.Pointer(&sa.sin6_addr), b[:])

		ret, errno = C.fts_getnameinfo_in6(
			&sa,
			(*C.char)(unsafe.Pointer(&hostBuf[0])), C.size_t(len(hostBuf)),
			(*C.char)(unsafe.Pointer(&servBuf[0])), C.size_t(len(servBuf)),
			C.int(flags),
		)
	default:
		return "", "", errors.New(errors.InvalidInput, "endpoint is neither IPv4 nor IPv6", nil)
	}

	if ret != 0 {
		return "", "", processGaiError(int(ret), errno)
	}

	return cStringFromBuf(hostBuf), cStringFromBuf(servBuf), nil
}

func copyBytes(dst unsafe.Pointer, src []byte) {
	d := unsafe.Slice((*byte)(dst), len(src))
	copy(d, src)
}

func cStringFromBuf(buf []byte) string {
	n := 0
	for n < len(buf) && buf[n] != 0 {
		n++
	}
	return string(buf[:n])
}
