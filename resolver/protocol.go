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
#include <netinet/in.h>
*/
import "C"

import "fmt"

// Protocol names the ai_protocol field of an AddressRecord or Hints value.
type Protocol int32

const (
	ProtoUnspecified Protocol = C.IPPROTO_IP
	ProtoTcp         Protocol = C.IPPROTO_TCP
	ProtoUdp         Protocol = C.IPPROTO_UDP
	ProtoSctp        Protocol = C.IPPROTO_SCTP
)

// ProtocolFromNumeric converts a raw IPPROTO_* value, panicking on values
// this toolkit does not model.
func ProtocolFromNumeric(v int32) Protocol {
	switch v {
	case int32(ProtoUnspecified), int32(ProtoTcp), int32(ProtoUdp), int32(ProtoSctp):
		return Protocol(v)
	default:
		panic("resolver: unsupported protocol")
	}
}

func (p Protocol) String() string {
	switch p {
	case ProtoUnspecified:
		return "Unspecified"
	case ProtoTcp:
		return "TCP"
	case ProtoUdp:
		return "UDP"
	case ProtoSctp:
		return "SCTP"
	default:
		return "Unspecified"
	}
}

func (p Protocol) GoString() string {
	switch p {
	case ProtoUnspecified:
		return fmt.Sprintf("IPPROTO_IP (%d)", int32(p))
	case ProtoTcp:
		return fmt.Sprintf("IPPROTO_TCP (%d)", int32(p))
	case ProtoUdp:
		return fmt.Sprintf("IPPROTO_UDP (%d)", int32(p))
	case ProtoSctp:
		return fmt.Sprintf("IPPROTO_SCTP (%d)", int32(p))
	default:
		return fmt.Sprintf("IPPROTO_IP (%d)", int32(p))
	}
}
