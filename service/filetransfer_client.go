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

package service

import (
	"io"
	"net"

	"github.com/nabbar/fts-toolkit/errors"
	"github.com/nabbar/fts-toolkit/protocol"
)

// FileTransferClient drives the client side of the file-transfer
// protocol against one connection.
type FileTransferClient struct {
	conn            net.Conn
	protocolVersion uint32
}

// Connect dials addr and returns a client speaking protocolVersion.
func Connect(addr string, protocolVersion uint32) (*FileTransferClient, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, errors.New(errors.IO, "failed to connect", err)
	}
	return &FileTransferClient{conn: conn, protocolVersion: protocolVersion}, nil
}

// Close releases the underlying connection.
func (c *FileTransferClient) Close() error {
	return c.conn.Close()
}

// RequestFile sends a FileQuery for name and returns the server's
// FileResponse for the caller to inspect.
func (c *FileTransferClient) RequestFile(name string) (protocol.FileResponse, error) {
	query := protocol.FileQuery{Version: c.protocolVersion, Filename: name}
	if err := protocol.WriteMessage(c.conn, &query); err != nil {
		return protocol.FileResponse{}, err
	}

	var resp protocol.FileResponse
	if err := protocol.ReadMessage(c.conn, &resp); err != nil {
		return protocol.FileResponse{}, err
	}
	return resp, nil
}

// SendAck tells the server whether to proceed with the transfer.
func (c *FileTransferClient) SendAck(status protocol.AckStatus) error {
	ack := protocol.TransferAck{Status: status}
	return protocol.WriteMessage(c.conn, &ack)
}

// ReceiveFile reads FileChunk messages until the stream ends, writing
// each chunk's data to sink in receipt order, then flushes sink and
// returns the total number of bytes written. Both a clean EOF between
// frames and a connection closed mid-frame (UnexpectedEOF) end the
// transfer without an error.
func (c *FileTransferClient) ReceiveFile(sink io.Writer) (uint64, error) {
	var total uint64

	for {
		var chunk protocol.FileChunk
		err := protocol.ReadMessage(c.conn, &chunk)
		if err != nil {
			if ferr, ok := err.(errors.Error); ok && (ferr.IsCode(errors.UnexpectedEOF)) {
				break
			}
			if err == io.EOF {
				break
			}
			return total, err
		}

		if _, err := sink.Write(chunk.Data); err != nil {
			return total, errors.New(errors.IO, "failed to write received chunk", err)
		}
		total += uint64(len(chunk.Data))
	}

	if f, ok := sink.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return total, errors.New(errors.IO, "failed to flush received file", err)
		}
	}

	return total, nil
}
