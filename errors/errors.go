/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package errors

import (
	"errors"
	"fmt"
	"runtime"
)

type ers struct {
	c CodeError
	e string
	p error
	t runtime.Frame
}

// New builds an Error with the given code, message and optional parent.
// A nil parent is valid: the Error simply has no wrapped cause.
func New(code CodeError, message string, parent error) Error {
	return &ers{
		c: code,
		e: message,
		p: parent,
		t: getFrame(),
	}
}

// Wrap attaches a CodeError classification to an arbitrary error,
// without discarding its message or its place in an errors.Is/As chain.
func Wrap(code CodeError, parent error) Error {
	if parent == nil {
		return New(code, "", nil)
	}
	return New(code, parent.Error(), parent)
}

func (e *ers) Error() string {
	if e == nil {
		return ""
	}
	if e.e == "" && e.p != nil {
		return e.p.Error()
	}
	return e.e
}

func (e *ers) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.p
}

func (e *ers) Is(target error) bool {
	if e == nil || target == nil {
		return false
	}
	if o, ok := target.(*ers); ok {
		return e.c == o.c && e.Error() == o.Error()
	}
	return errors.Is(e.p, target)
}

func (e *ers) GetCode() CodeError {
	if e == nil {
		return UnknownError
	}
	return e.c
}

func (e *ers) IsCode(code CodeError) bool {
	return e != nil && e.c == code
}

func (e *ers) HasCode(code CodeError) bool {
	if e == nil {
		return false
	}
	if e.c == code {
		return true
	}
	var p Error
	if errors.As(e.p, &p) {
		return p.HasCode(code)
	}
	return false
}

func (e *ers) GetFrame() runtime.Frame {
	if e == nil {
		return runtime.Frame{}
	}
	return e.t
}

func (e *ers) String() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("[%s] %s (%s:%d)", e.c, e.Error(), e.t.File, e.t.Line)
}
