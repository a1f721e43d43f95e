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

// Command ft-client requests one file from an ft-server and writes it
// into a local download directory, rejecting transfers that exceed a
// configured size limit before any chunk is read.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nabbar/fts-toolkit/logger"
	"github.com/nabbar/fts-toolkit/protocol"
	"github.com/nabbar/fts-toolkit/service"

	"github.com/spf13/cobra"
)

var (
	flagAddr string
	flagFile string
	flagSize uint64
	flagDir  string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ft-client",
		Short: "Request one file from an ft-server",
		RunE:  runClient,
	}

	flags := cmd.Flags()
	flags.StringVarP(&flagAddr, "addr", "a", "127.0.0.1:7878", "server address")
	flags.StringVarP(&flagFile, "file", "f", "", "name of the file to request (required)")
	flags.Uint64VarP(&flagSize, "size", "s", protocol.DefaultMaxFileSize, "reject transfers larger than this many bytes")
	flags.StringVarP(&flagDir, "dir", "d", "downloads", "directory to write the downloaded file into")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runClient(_ *cobra.Command, _ []string) error {
	log := logger.NewFromEnv("FTS_LOG_LEVEL")

	client, err := service.Connect(flagAddr, protocol.DefaultVersion)
	if err != nil {
		return err
	}
	defer client.Close()

	resp, err := client.RequestFile(flagFile)
	if err != nil {
		return err
	}

	if resp.IsError() {
		return fmt.Errorf("server rejected request: %s", resp.Error.Message)
	}
	if resp.Metadata.Status == protocol.StatusNotFound {
		return fmt.Errorf("file not found: %s", flagFile)
	}
	if resp.Metadata.FileSize > flagSize {
		log.Warn("rejecting transfer: file exceeds configured size limit", logger.Fields{
			"file": flagFile, "file_size": resp.Metadata.FileSize, "max_size": flagSize,
		})
		return client.SendAck(protocol.AckRejected)
	}

	if err := client.SendAck(protocol.AckAccepted); err != nil {
		return err
	}

	if err := os.MkdirAll(flagDir, 0o755); err != nil {
		return err
	}
	dest := filepath.Join(flagDir, filepath.Base(flagFile))
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	n, err := client.ReceiveFile(out)
	if err != nil {
		return err
	}

	log.Info("file received", logger.Fields{"file": flagFile, "bytes": n, "dest": dest})
	return nil
}
