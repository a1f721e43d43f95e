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

// Default protocol parameters, carried over from the reference
// implementation's CLI defaults.
const (
	DefaultVersion     uint32 = 1
	DefaultChunkSize   int    = 1024
	DefaultMaxFileSize uint64 = 8 * 1024 * 1024
)

// FileStatus is carried by a Metadata response.
type FileStatus uint8

const (
	StatusFound FileStatus = iota
	StatusNotFound
)

// AckStatus is sent by the client after it has seen the file metadata.
type AckStatus uint8

const (
	AckAccepted AckStatus = iota
	AckRejected
)

// ErrorKind classifies the Error branch of a FileResponse.
type ErrorKind uint8

const (
	ErrUnsupportedVersion ErrorKind = iota
	ErrFileNotFound
	ErrInternal
)

// FileQuery is the first message sent by the client: the protocol
// version it speaks and the file it wants.
type FileQuery struct {
	Version  uint32 `cbor:"version"`
	Filename string `cbor:"filename"`
}

// ResponseMetadata is the success branch of a FileResponse.
type ResponseMetadata struct {
	Status   FileStatus `cbor:"status"`
	FileSize uint64     `cbor:"file_size"`
}

// ResponseError is the failure branch of a FileResponse.
type ResponseError struct {
	Kind    ErrorKind `cbor:"kind"`
	Message string    `cbor:"message"`
}

// FileResponse is a tagged union: exactly one of Metadata or Error is
// populated. CBOR has no native sum type, so - like most schema-driven
// codecs - the union is modeled as a struct with one optional field per
// variant.
type FileResponse struct {
	Metadata *ResponseMetadata `cbor:"metadata,omitempty"`
	Error    *ResponseError    `cbor:"error,omitempty"`
}

// NewMetadataResponse builds the success branch of a FileResponse.
func NewMetadataResponse(status FileStatus, fileSize uint64) FileResponse {
	return FileResponse{Metadata: &ResponseMetadata{Status: status, FileSize: fileSize}}
}

// NewErrorResponse builds the failure branch of a FileResponse.
func NewErrorResponse(kind ErrorKind, message string) FileResponse {
	return FileResponse{Error: &ResponseError{Kind: kind, Message: message}}
}

// IsError reports whether r is the error branch.
func (r FileResponse) IsError() bool { return r.Error != nil }

// TransferAck is sent by the client once it has inspected the metadata.
type TransferAck struct {
	Status AckStatus `cbor:"status"`
}

// FileChunk is one piece of file data; Index starts at 0 and increases
// by 1 per chunk within a single transfer.
type FileChunk struct {
	Index uint32 `cbor:"index"`
	Data  []byte `cbor:"data"`
}
