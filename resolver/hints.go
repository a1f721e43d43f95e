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
#include <netdb.h>
*/
import "C"

// Flag bits accepted by Hints.Flags and ReverseResolve, taken straight
// from the platform's <netdb.h>.
const (
	// FlagPassive and FlagCanonName are accepted by Resolve's Hints.Flags.
	FlagPassive   int32 = C.AI_PASSIVE
	FlagCanonName int32 = C.AI_CANONNAME
	// FlagHintNumericHost restricts Resolve to hosts already in numeric form.
	FlagHintNumericHost int32 = C.AI_NUMERICHOST

	// FlagNumericHost and FlagNumericServ are accepted by ReverseResolve's flags.
	FlagNumericHost int32 = C.NI_NUMERICHOST
	FlagNumericServ int32 = C.NI_NUMERICSERV
)

// Hints narrows a Resolve call, mirroring the addrinfo struct passed as
// the fourth argument of getaddrinfo(3). The zero value resolves every
// family, socket type and protocol the OS is willing to return.
type Hints struct {
	Flags    int32
	Family   AddressFamily
	SockType SocketType
	Protocol Protocol
}
