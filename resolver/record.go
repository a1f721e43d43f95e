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

import (
	"fmt"
	"net/netip"
)

// AddressRecord is one entry of a ResultSequence: a single resolved
// socket endpoint plus the family/type/protocol the OS associated with
// it and, when AI_CANONNAME was requested and honored, the canonical
// host name.
type AddressRecord struct {
	Flags         int32
	Family        AddressFamily
	SockType      SocketType
	Protocol      Protocol
	SocketAddr    netip.AddrPort
	CanonicalName string
	HasCanonical  bool
}

// String renders a one-line summary of the record: endpoint first, then
// family/type/protocol, then any non-default flags and canonical name.
func (r AddressRecord) String() string {
	s := fmt.Sprintf("%s (Family: %s, Type: %s, Proto: %s", r.SocketAddr, r.Family, r.SockType, r.Protocol)
	if r.Flags != 0 {
		s += fmt.Sprintf(", Flags: %#x", uint32(r.Flags))
	}
	if r.HasCanonical {
		s += fmt.Sprintf(", Canonical name: %q", r.CanonicalName)
	}
	return s + ")"
}

// GoString renders the record field by field, for debugging.
func (r AddressRecord) GoString() string {
	canon := "None"
	if r.HasCanonical {
		canon = r.CanonicalName
	}
	return fmt.Sprintf(
		"AddressRecord{flags: %#x, family: %s, socktype: %s, protocol: %s, socket_addr: %s, canonname: %q}",
		uint32(r.Flags), r.Family.GoString(), r.SockType.GoString(), r.Protocol.GoString(), r.SocketAddr, canon,
	)
}
