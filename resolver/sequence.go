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
#include <stdlib.h>
#include <string.h>
#include <sys/socket.h>
#include <netdb.h>
*/
import "C"

import (
	"net/netip"
	"runtime"
	"strings"
	"sync"
	"unsafe"

	"github.com/nabbar/fts-toolkit/errors"
)

// Result is one step of a ResultSequence: either a successfully decoded
// AddressRecord, or an error confined to that single entry (an
// unrecognized address family). A per-item error does not stop iteration.
type Result struct {
	Record AddressRecord
	Err    error
}

// ResultSequence is a lazy, finite, non-restartable iterator over the
// addrinfo linked list returned by getaddrinfo(3). It is the sole owner
// of that list: Close (or, as a backstop, the garbage collector) calls
// freeaddrinfo exactly once, regardless of how much of the sequence was
// consumed.
type ResultSequence struct {
	orig *C.struct_addrinfo
	cur  *C.struct_addrinfo
	done bool
	once sync.Once
}

func newResultSequence(head *C.struct_addrinfo) *ResultSequence {
	s := &ResultSequence{orig: head, cur: head}
	runtime.SetFinalizer(s, func(s *ResultSequence) { s.Close() })
	return s
}

// Next advances the sequence by one entry. The second return value is
// false once the list is exhausted; a true with a non-nil Result.Err
// means this entry's family was not IPv4/IPv6 and was skipped, but the
// sequence is not yet exhausted.
func (s *ResultSequence) Next() (Result, bool) {
	if s.done || s.cur == nil {
		s.done = true
		return Result{}, false
	}

	cur := s.cur
	s.cur = cur.ai_next

	rec, err := addressRecordFromNative(cur)
	return Result{Record: rec, Err: err}, true
}

// Close releases the underlying OS list. It is idempotent: only the
// first call frees anything.
func (s *ResultSequence) Close() {
	s.once.Do(func() {
		runtime.SetFinalizer(s, nil)
		if s.orig != nil {
			C.freeaddrinfo(s.orig)
			s.orig = nil
		}
		s.cur = nil
		s.done = true
	})
}

func addressRecordFromNative(ai *C.struct_addrinfo) (AddressRecord, error) {
	family := ai.ai_family
	if family != C.AF_INET && family != C.AF_INET6 {
		return AddressRecord{}, errors.New(errors.Unsupported, "unsupported address family on resolver item", nil)
	}

	addr, err := sockaddrToAddrPort(ai.ai_addr, ai.ai_addrlen)
	if err != nil {
		return AddressRecord{}, err
	}

	rec := AddressRecord{
		Flags:      int32(ai.ai_flags),
		Family:     FamilyFromNumeric(int32(family)),
		SockType:   SockTypeFromNumeric(int32(ai.ai_socktype)),
		Protocol:   ProtocolFromNumeric(int32(ai.ai_protocol)),
		SocketAddr: addr,
	}

	if ai.ai_canonname != nil {
		rec.HasCanonical = true
		rec.CanonicalName = C.GoString(ai.ai_canonname)
	}

	return rec, nil
}

func sockaddrToAddrPort(sa *C.struct_sockaddr, salen C.socklen_t) (netip.AddrPort, error) {
	switch sa.sa_family {
	case C.AF_INET:
		in := (*C.struct_sockaddr_in)(unsafe.Pointer(sa))
		var b [4]byte
		copy(b[:], (*[4]byte)(unsafe.Pointer(&in.sin_addr))[:])
		port := ntohs(uint16(in.sin_port))
		return netip.AddrPortFrom(netip.AddrFrom4(b), port), nil
	case C.AF_INET6:
		in6 := (*C.struct_sockaddr_in6)(unsafe.Pointer(sa))
		var b [16]byte
		copy(b[:], (*[16]byte)(unsafe.Pointer(&in6.sin6_addr))[:])
		port := ntohs(uint16(in6.sin6_port))
		return netip.AddrPortFrom(netip.AddrFrom16(b), port), nil
	default:
		return netip.AddrPort{}, errors.New(errors.Unsupported, "unsupported socket address family", nil)
	}
}

func ntohs(v uint16) uint16 {
	return v<<8 | v>>8
}

// Resolve is the safe wrapper around getaddrinfo(3): given an optional
// host, an optional service and optional hints, it asks the OS resolver
// for matching endpoints and returns a lazily-iterable, exactly-once-freed
// ResultSequence.
func Resolve(host, service *string, hints *Hints) (*ResultSequence, error) {
	if host == nil && service == nil {
		return nil, errors.New(errors.InvalidInput, "either host or service must be specified", nil)
	}
	if host != nil && strings.ContainsRune(*host, 0) {
		return nil, errors.New(errors.InvalidInput, "invalid host string", nil)
	}
	if service != nil && strings.ContainsRune(*service, 0) {
		return nil, errors.New(errors.InvalidInput, "invalid service string", nil)
	}

	var hostPtr, servPtr *C.char
	if host != nil {
		hostPtr = C.CString(*host)
		defer C.free(unsafe.Pointer(hostPtr))
	}
	if service != nil {
		servPtr = C.CString(*service)
		defer C.free(unsafe.Pointer(servPtr))
	}

	h := Hints{}
	if hints != nil {
		h = *hints
	}

	var native C.struct_addrinfo
	native.ai_flags = C.int(h.Flags)
	native.ai_family = C.int(h.Family)
	native.ai_socktype = C.int(h.SockType)
	native.ai_protocol = C.int(h.Protocol)

	var res *C.struct_addrinfo
	ret, errno := C.getaddrinfo(hostPtr, servPtr, &native, &res)
	if ret != 0 {
		return nil, processGaiError(int(ret), errno)
	}

	return newResultSequence(res), nil
}
