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

// Command ft-server serves files out of a directory using one of four
// concurrency strategies: iterative, threadpool, fork-per-connection or
// prefork.
package main

import (
	"fmt"
	"os"

	"github.com/nabbar/fts-toolkit/logger"
	"github.com/nabbar/fts-toolkit/protocol"
	"github.com/nabbar/fts-toolkit/server"
	"github.com/nabbar/fts-toolkit/service"

	"github.com/spf13/cobra"
)

const connEntrypoint = "ft-server-conn"
const preforkBaseName = "ft-server"

var (
	flagAddr         string
	flagDir          string
	flagStrategy     string
	flagWorkers      int
	flagMaxProcesses int
	flagProcesses    int
	flagLogLevel     string
)

func main() {
	// Every strategy that re-execs this binary needs its entrypoints
	// registered, and RunChildIfRequested must run before anything else
	// touches flags, sockets or stdout.
	registerEntrypoints()
	server.RunChildIfRequested()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func registerEntrypoints() {
	svc := service.NewFileTransferService(dirOrDefault(), protocol.DefaultVersion, protocol.DefaultChunkSize, nil)
	server.RegisterConnEntrypoint(connEntrypoint, svc)
	server.RegisterPreforkListenerEntrypoint(preforkBaseName, svc)
}

// dirOrDefault reads FTS_SERVER_DIR directly, since registerEntrypoints
// runs before cobra has parsed --dir; a re-exec'd child inherits this
// through its environment instead.
func dirOrDefault() string {
	if d := os.Getenv("FTS_SERVER_DIR"); d != "" {
		return d
	}
	return "data"
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ft-server",
		Short: "Serve files over the length-delimited file-transfer protocol",
		RunE:  runServe,
	}

	flags := cmd.Flags()
	flags.StringVarP(&flagAddr, "addr", "a", "127.0.0.1:7878", "address to listen on")
	flags.StringVarP(&flagDir, "dir", "d", "data", "directory to serve files from")
	flags.StringVar(&flagStrategy, "strategy", "iterative", "concurrency strategy: iterative|threadpool|fork|prefork")
	flags.IntVarP(&flagWorkers, "workers", "w", 4, "worker count for the threadpool strategy")
	flags.IntVarP(&flagMaxProcesses, "max-processes", "m", 4, "maximum concurrent children for the fork strategy")
	flags.IntVarP(&flagProcesses, "processes", "p", 4, "number of pre-spawned children for the prefork strategy")
	flags.StringVar(&flagLogLevel, "log-level", "", "overrides FTS_LOG_LEVEL for this process")

	return cmd
}

func runServe(_ *cobra.Command, _ []string) error {
	log := logger.NewFromEnv("FTS_LOG_LEVEL")
	if flagLogLevel != "" {
		log.SetLevel(logger.ParseLevel(flagLogLevel))
	}

	// Re-exec'd children read this instead of a --dir flag, since they
	// never reach cobra's flag parser.
	_ = os.Setenv("FTS_SERVER_DIR", flagDir)

	svc := service.NewFileTransferService(flagDir, protocol.DefaultVersion, protocol.DefaultChunkSize, log)

	switch flagStrategy {
	case "iterative":
		s, err := server.NewIterativeTCPServer(flagAddr, svc, log)
		if err != nil {
			return err
		}
		return s.Serve()

	case "threadpool":
		s, err := server.NewThreadPoolTCPServer(flagAddr, svc, flagWorkers, log)
		if err != nil {
			return err
		}
		return s.Serve()

	case "fork":
		s, err := server.NewForkPerConnectionTCPServer(flagAddr, connEntrypoint, flagMaxProcesses, log)
		if err != nil {
			return err
		}
		return s.Serve()

	case "prefork":
		s, err := server.NewPreforkTCPServer(flagAddr, preforkBaseName, flagProcesses, log)
		if err != nil {
			return err
		}
		return s.Serve()

	default:
		return fmt.Errorf("unknown strategy %q", flagStrategy)
	}
}
