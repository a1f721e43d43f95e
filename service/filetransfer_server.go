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
	"bufio"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/nabbar/fts-toolkit/errors"
	"github.com/nabbar/fts-toolkit/internal/fsroot"
	"github.com/nabbar/fts-toolkit/logger"
	"github.com/nabbar/fts-toolkit/protocol"
)

// FileTransferService is the server side of the file-transfer protocol
// state machine (INITIAL -> QUERY_RECEIVED -> VERSION_OK ->
// METADATA_SENT -> ACK_RECEIVED), one instance shared read-only across
// every connection it serves.
type FileTransferService struct {
	baseDir         string
	protocolVersion uint32
	chunkSize       int
	log             logger.Logger
}

// NewFileTransferService builds a FileTransferService rooted at baseDir,
// speaking protocolVersion and streaming files in chunkSize pieces.
func NewFileTransferService(baseDir string, protocolVersion uint32, chunkSize int, log logger.Logger) *FileTransferService {
	if log == nil {
		log = logger.New(logger.InfoLevel)
	}
	return &FileTransferService{baseDir: baseDir, protocolVersion: protocolVersion, chunkSize: chunkSize, log: log}
}

func (s *FileTransferService) Handle(conn net.Conn) error {
	query, err := s.readFileQuery(conn)
	if err != nil {
		return err
	}
	s.log.Debug("received FileQuery", logger.Fields{"version": query.Version, "filename": query.Filename})

	if err := s.verifyProtocolVersion(conn, query); err != nil {
		return err
	}

	filePath, err := fsroot.Resolve(s.baseDir, query.Filename)
	notFound, err := s.writeFileResponse(conn, filePath, err != nil)
	if err != nil {
		return err
	}
	if notFound {
		return errors.New(errors.NotFound, fmt.Sprintf("file not found: %s", query.Filename), nil)
	}

	ack, err := s.readTransferAck(conn)
	if err != nil {
		return err
	}
	s.log.Debug("received TransferAck", logger.Fields{"status": ack.Status})

	if ack.Status == protocol.AckAccepted {
		if err := s.writeFileChunks(conn, filePath); err != nil {
			return err
		}
		s.log.Debug("file transfer complete", logger.Fields{"filename": query.Filename})
	}

	s.log.Debug("shutting down connection", nil)
	return s.shutdown(conn)
}

func (s *FileTransferService) readFileQuery(conn net.Conn) (protocol.FileQuery, error) {
	var q protocol.FileQuery
	if err := protocol.ReadMessage(conn, &q); err != nil {
		_ = s.shutdown(conn)
		return protocol.FileQuery{}, errors.New(errors.InvalidData, "failed to read FileQuery", err)
	}
	return q, nil
}

func (s *FileTransferService) verifyProtocolVersion(conn net.Conn, query protocol.FileQuery) error {
	if query.Version == s.protocolVersion {
		return nil
	}

	msg := fmt.Sprintf("protocol version mismatch: server=%d, client=%d", s.protocolVersion, query.Version)
	if err := s.writeErrorAndShutdown(conn, protocol.ErrUnsupportedVersion, msg); err != nil {
		return err
	}
	return errors.New(errors.Unsupported, msg, nil)
}

// writeFileResponse stats filePath (unless alreadyNotFound is already
// known, e.g. because fsroot rejected the query filename), sends the
// resulting FileResponse, and returns whether the file was found.
func (s *FileTransferService) writeFileResponse(conn net.Conn, filePath string, alreadyNotFound bool) (notFound bool, err error) {
	var resp protocol.FileResponse
	notFound = alreadyNotFound
	if notFound {
		resp = protocol.NewMetadataResponse(protocol.StatusNotFound, 0)
	} else {
		info, statErr := os.Stat(filePath)
		if statErr != nil {
			notFound = true
			resp = protocol.NewMetadataResponse(protocol.StatusNotFound, 0)
		} else {
			resp = protocol.NewMetadataResponse(protocol.StatusFound, uint64(info.Size()))
		}
	}

	if err := protocol.WriteMessage(conn, &resp); err != nil {
		return notFound, errors.New(errors.IO, "failed to write FileResponse", err)
	}

	if notFound {
		return notFound, s.shutdown(conn)
	}
	return notFound, nil
}

func (s *FileTransferService) readTransferAck(conn net.Conn) (protocol.TransferAck, error) {
	var ack protocol.TransferAck
	if err := protocol.ReadMessage(conn, &ack); err != nil {
		_ = s.shutdown(conn)
		return protocol.TransferAck{}, errors.New(errors.InvalidData, "failed to read TransferAck", err)
	}
	return ack, nil
}

func (s *FileTransferService) writeFileChunks(conn net.Conn, filePath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return errors.New(errors.IO, "failed to open file for transfer", err)
	}
	defer f.Close()

	w := bufio.NewWriter(conn)
	r := bufio.NewReader(f)
	buf := make([]byte, s.chunkSize)

	var index uint32
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := protocol.FileChunk{Index: index, Data: append([]byte(nil), buf[:n]...)}
			if err := protocol.WriteMessage(w, &chunk); err != nil {
				return err
			}
			index++
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.New(errors.IO, "failed to read file for transfer", err)
		}
	}

	if err := w.Flush(); err != nil {
		return errors.New(errors.IO, "failed to flush file chunks", err)
	}
	return nil
}

func (s *FileTransferService) writeErrorAndShutdown(conn net.Conn, kind protocol.ErrorKind, message string) error {
	resp := protocol.NewErrorResponse(kind, message)
	if err := protocol.WriteMessage(conn, &resp); err != nil {
		return errors.New(errors.IO, "failed to write error response", err)
	}
	return s.shutdown(conn)
}

func (s *FileTransferService) shutdown(conn net.Conn) error {
	return conn.Close()
}
