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

// AddressFamily names the protocol family of an AddressRecord or Hints
// value. The numeric value underlying each constant is the platform's
// AF_* constant, not an arbitrary index.
type AddressFamily int32

const (
	FamilyUnspecified AddressFamily = C.AF_UNSPEC
	FamilyInet        AddressFamily = C.AF_INET
	FamilyInet6       AddressFamily = C.AF_INET6
)

// FamilyFromNumeric converts a raw AF_* value, panicking on values this
// toolkit does not model: an unrecognized family is treated as a
// programming error, not user input.
func FamilyFromNumeric(v int32) AddressFamily {
	switch v {
	case int32(FamilyUnspecified), int32(FamilyInet), int32(FamilyInet6):
		return AddressFamily(v)
	default:
		panic("resolver: unsupported address family")
	}
}

func (f AddressFamily) String() string {
	switch f {
	case FamilyUnspecified:
		return "Unspecified"
	case FamilyInet:
		return "IPv4"
	case FamilyInet6:
		return "IPv6"
	default:
		return "Unspecified"
	}
}

// GoString renders the family for debugging: the symbolic constant name
// followed by its numeric value.
func (f AddressFamily) GoString() string {
	switch f {
	case FamilyUnspecified:
		return fmt.Sprintf("AF_UNSPEC (%d)", int32(f))
	case FamilyInet:
		return fmt.Sprintf("AF_INET (%d)", int32(f))
	case FamilyInet6:
		return fmt.Sprintf("AF_INET6 (%d)", int32(f))
	default:
		return fmt.Sprintf("AF_UNSPEC (%d)", int32(f))
	}
}
