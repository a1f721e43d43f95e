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

// Command ft-resolve is a CLI front end for the resolver package: it
// runs getaddrinfo with the requested hints and prints every record at
// the chosen verbosity.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/nabbar/fts-toolkit/resolver"

	"github.com/spf13/cobra"
)

var (
	flagHost      string
	flagService   string
	flagFamily    string
	flagSockType  string
	flagProtocol  string
	flagCanonname bool
	flagVerbose   uint8
)

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ft-resolve",
		Short: "Resolve network addresses and services via getaddrinfo",
		RunE:  runResolve,
	}

	flags := cmd.Flags()
	flags.StringVarP(&flagHost, "host", "H", "", "IPv4, IPv6, or domain name (e.g., 8.8.4.4, ::1, example.com)")
	flags.StringVarP(&flagService, "service", "S", "", "port number or service name (e.g., 80, http)")
	flags.StringVarP(&flagFamily, "family", "f", "unspecified", "filter by address family: unspecified|inet|inet6")
	flags.StringVarP(&flagSockType, "socktype", "t", "unspecified", "filter by socket type: unspecified|stream|datagram|raw|seqpacket")
	flags.StringVarP(&flagProtocol, "protocol", "p", "unspecified", "filter by transport protocol: unspecified|tcp|udp|sctp")
	flags.BoolVarP(&flagCanonname, "canonname", "c", false, "resolve canonical name (requires --host)")
	flags.Uint8VarP(&flagVerbose, "verbose", "v", 0, "output verbosity 0-2")

	return cmd
}

func runResolve(_ *cobra.Command, _ []string) error {
	if flagHost == "" && flagService == "" {
		return fmt.Errorf("at least one of --host or --service is required")
	}
	if flagCanonname && flagHost == "" {
		return fmt.Errorf("--canonname requires --host")
	}
	if flagVerbose > 2 {
		return fmt.Errorf("--verbose must be between 0 and 2")
	}

	family, err := parseFamily(flagFamily)
	if err != nil {
		return err
	}
	sockType, err := parseSockType(flagSockType)
	if err != nil {
		return err
	}
	protocol, err := parseProtocol(flagProtocol)
	if err != nil {
		return err
	}

	var hintFlags int32
	if flagCanonname {
		hintFlags |= resolver.FlagCanonName
	}

	hints := &resolver.Hints{Flags: hintFlags, Family: family, SockType: sockType, Protocol: protocol}

	var host, service *string
	if flagHost != "" {
		host = &flagHost
	}
	if flagService != "" {
		service = &flagService
	}

	seq, err := resolver.Resolve(host, service, hints)
	if err != nil {
		return err
	}
	defer seq.Close()

	for {
		res, ok := seq.Next()
		if !ok {
			break
		}
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "ft-resolve: %v\n", res.Err)
			continue
		}
		printRecord(res.Record)
	}
	return nil
}

func printRecord(rec resolver.AddressRecord) {
	switch flagVerbose {
	case 0:
		fmt.Println(rec.SocketAddr.String())
	case 1:
		fmt.Println(rec.String())
	default:
		fmt.Println(rec.GoString())
	}
}

func parseFamily(s string) (resolver.AddressFamily, error) {
	switch strings.ToLower(s) {
	case "unspecified", "":
		return resolver.FamilyUnspecified, nil
	case "inet":
		return resolver.FamilyInet, nil
	case "inet6":
		return resolver.FamilyInet6, nil
	default:
		return 0, fmt.Errorf("invalid family %q", s)
	}
}

func parseSockType(s string) (resolver.SocketType, error) {
	switch strings.ToLower(s) {
	case "unspecified", "":
		return resolver.SockUnspecified, nil
	case "stream":
		return resolver.SockStream, nil
	case "datagram":
		return resolver.SockDatagram, nil
	case "raw":
		return resolver.SockRaw, nil
	case "seqpacket":
		return resolver.SockSeqPacket, nil
	default:
		return 0, fmt.Errorf("invalid socktype %q", s)
	}
}

func parseProtocol(s string) (resolver.Protocol, error) {
	switch strings.ToLower(s) {
	case "unspecified", "":
		return resolver.ProtoUnspecified, nil
	case "tcp":
		return resolver.ProtoTcp, nil
	case "udp":
		return resolver.ProtoUdp, nil
	case "sctp":
		return resolver.ProtoSctp, nil
	default:
		return 0, fmt.Errorf("invalid protocol %q", s)
	}
}
