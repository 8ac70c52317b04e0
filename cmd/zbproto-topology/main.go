// Command zbproto-topology connects to a broker and prints its topology.
package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"

	"github.com/taskbroker/zbproto"
)

func main() {
	fs := flag.NewFlagSet("zbproto-topology", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "zbproto-topology — print a broker's topology\n\nUsage:\n  zbproto-topology [flags] [broker-address]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	requestID := fs.Uint64("request-id", 1, "request id to correlate the response")
	_ = fs.Parse(os.Args[1:])

	addr := "localhost:51015"
	if fs.NArg() > 0 {
		addr = fs.Arg(0)
	}

	if err := run(addr, *requestID); err != nil {
		log.Fatal(err)
	}
}

func run(addr string, requestID uint64) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect to broker %s: %w", addr, err)
	}
	defer func() { _ = conn.Close() }()
	log.Printf("connected to broker %s", addr)

	req, err := zbproto.TopologyRequest(requestID)
	if err != nil {
		return fmt.Errorf("build topology request: %w", err)
	}
	if _, err := conn.Write(req); err != nil {
		return fmt.Errorf("send topology request: %w", err)
	}

	wireBytes, err := zbproto.ReadMessage(conn)
	if err != nil {
		return fmt.Errorf("read topology response: %w", err)
	}
	topology, err := zbproto.ReadTopologyResponse(wireBytes)
	if err != nil {
		return fmt.Errorf("decode topology response: %w", err)
	}

	fmt.Printf("%+v\n", topology)
	return nil
}
