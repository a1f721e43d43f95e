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

package protocol

import (
	"encoding/binary"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/nabbar/fts-toolkit/errors"
)

// ReadFrame reads one length-delimited frame: 4 bytes big-endian length,
// followed by that many payload bytes. A clean EOF before any byte of the
// length prefix is read is returned as io.EOF, unchanged, so callers can
// tell "peer hung up between messages" from "peer hung up mid-message".
// Any other truncation is reported as UnexpectedEOF.
func ReadFrame(r io.Reader) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, errors.New(errors.UnexpectedEOF, "connection closed mid-frame", err)
		}
		if err == io.EOF {
			return nil, err
		}
		return nil, errors.New(errors.IO, "failed to read frame length", err)
	}

	n := binary.BigEndian.Uint32(lenBuf[:])
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, errors.New(errors.UnexpectedEOF, "connection closed mid-frame", err)
	}

	return payload, nil
}

// WriteFrame writes exactly 4+len(payload) bytes: the big-endian length
// prefix followed by payload, as a single Write when possible.
func WriteFrame(w io.Writer, payload []byte) error {
	buf := make([]byte, 4+len(payload))
	binary.BigEndian.PutUint32(buf[:4], uint32(len(payload)))
	copy(buf[4:], payload)

	if _, err := w.Write(buf); err != nil {
		return errors.New(errors.IO, "failed to write frame", err)
	}
	return nil
}

// WriteMessage encodes v with CBOR and writes it as one frame.
func WriteMessage(w io.Writer, v interface{}) error {
	b, err := cbor.Marshal(v)
	if err != nil {
		return errors.New(errors.InvalidData, "failed to encode message", err)
	}
	return WriteFrame(w, b)
}

// ReadMessage reads one frame and decodes it with CBOR into v.
func ReadMessage(r io.Reader, v interface{}) error {
	b, err := ReadFrame(r)
	if err != nil {
		return err
	}
	if err := cbor.Unmarshal(b, v); err != nil {
		return errors.New(errors.InvalidData, "failed to decode message", err)
	}
	return nil
}
