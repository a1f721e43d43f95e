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

import (
	"github.com/nabbar/fts-toolkit/errors"
)

// processGaiError translates a non-zero getaddrinfo/getnameinfo return
// code into a structured error: EAI_SYSTEM means "consult errno" (errno
// is the error cgo captured from the same call, via its two-value return
// form), every other code has its own OS-supplied text via gai_strerror(3).
func processGaiError(ret int, errno error) error {
	if ret == C.EAI_SYSTEM {
		if errno != nil {
			return errors.New(errors.IO, errno.Error(), errno)
		}
		return errors.New(errors.IO, "system error during name resolution", nil)
	}
	msg := C.GoString(C.gai_strerror(C.int(ret)))
	return errors.New(errors.Other, msg, nil)
}
