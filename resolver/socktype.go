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
#include <sys/socket.h>
*/
import "C"

import "fmt"

// SocketType names the ai_socktype field of an AddressRecord or Hints value.
type SocketType int32

const (
	SockUnspecified SocketType = 0
	SockStream      SocketType = C.SOCK_STREAM
	SockDatagram    SocketType = C.SOCK_DGRAM
	SockRaw         SocketType = C.SOCK_RAW
	SockSeqPacket   SocketType = C.SOCK_SEQPACKET
)

// SockTypeFromNumeric converts a raw ai_socktype value, panicking on
// values this toolkit does not model.
func SockTypeFromNumeric(v int32) SocketType {
	switch v {
	case int32(SockUnspecified), int32(SockStream), int32(SockDatagram), int32(SockRaw), int32(SockSeqPacket):
		return SocketType(v)
	default:
		panic("resolver: unsupported socket type")
	}
}

func (s SocketType) String() string {
	switch s {
	case SockUnspecified:
		return "Unspecified"
	case SockStream:
		return "Stream"
	case SockDatagram:
		return "Datagram"
	case SockRaw:
		return "Raw"
	case SockSeqPacket:
		return "SeqPacket"
	default:
		return "Unspecified"
	}
}

func (s SocketType) GoString() string {
	switch s {
	case SockUnspecified:
		return fmt.Sprintf("SOCK_UNSPEC (%d)", int32(s))
	case SockStream:
		return fmt.Sprintf("SOCK_STREAM (%d)", int32(s))
	case SockDatagram:
		return fmt.Sprintf("SOCK_DGRAM (%d)", int32(s))
	case SockRaw:
		return fmt.Sprintf("SOCK_RAW (%d)", int32(s))
	case SockSeqPacket:
		return fmt.Sprintf("SOCK_SEQPACKET (%d)", int32(s))
	default:
		return fmt.Sprintf("SOCK_UNSPEC (%d)", int32(s))
	}
}
