// Command zbproto-inspectd sits between a client and a broker, relaying
// every frame unmodified while decoding it for display: either in a
// terminal browser or over an HTTP/SSE endpoint for remote viewers.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskbroker/zbproto/inspector"
	"github.com/taskbroker/zbproto/tui"
)

var version = "dev"

func main() {
	fs := flag.NewFlagSet("zbproto-inspectd", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "zbproto-inspectd — transparent broker protocol inspector\n\nUsage:\n  zbproto-inspectd [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}

	listen := fs.String("listen", "", "client listen address (required)")
	upstream := fs.String("upstream", "", "upstream broker address (required)")
	httpAddr := fs.String("http", "", "HTTP server address for the SSE event feed (e.g. :8080)")
	tuiEnabled := fs.Bool("tui", true, "show the interactive terminal browser")
	showVersion := fs.Bool("version", false, "show version and exit")

	_ = fs.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("zbproto-inspectd %s\n", version)
		return
	}

	if *listen == "" || *upstream == "" {
		fs.Usage()
		os.Exit(1)
	}

	if err := run(*listen, *upstream, *httpAddr, *tuiEnabled); err != nil {
		log.Fatal(err)
	}
}

func run(listen, upstream, httpAddr string, tuiEnabled bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := inspector.NewHub()

	var lc net.ListenConfig
	clientLis, err := lc.Listen(ctx, "tcp", listen)
	if err != nil {
		return fmt.Errorf("listen %s: %w", listen, err)
	}

	if httpAddr != "" {
		httpLis, err := lc.Listen(ctx, "tcp", httpAddr)
		if err != nil {
			return fmt.Errorf("listen http %s: %w", httpAddr, err)
		}
		httpSrv := inspector.NewServer(hub)
		go func() {
			log.Printf("HTTP event feed listening on %s", httpAddr)
			if err := httpSrv.Serve(httpLis); err != nil {
				log.Printf("http serve: %v", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = httpSrv.Shutdown(shutdownCtx)
		}()
	}

	go acceptLoop(ctx, clientLis, upstream, hub)

	log.Printf("relaying %s -> %s", listen, upstream)

	if tuiEnabled {
		if _, err := tea.NewProgram(tui.NewModel(hub), tea.WithAltScreen()).Run(); err != nil {
			return fmt.Errorf("run tui: %w", err)
		}
		return nil
	}

	<-ctx.Done()
	return nil
}

func acceptLoop(ctx context.Context, lis net.Listener, upstream string, hub *inspector.Hub) {
	for {
		clientConn, err := lis.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("accept: %v", err)
			continue
		}

		go func() {
			defer func() { _ = clientConn.Close() }()

			var d net.Dialer
			upstreamConn, err := d.DialContext(ctx, "tcp", upstream)
			if err != nil {
				log.Printf("dial upstream %s: %v", upstream, err)
				return
			}
			defer func() { _ = upstreamConn.Close() }()

			relay := inspector.NewRelay(clientConn, upstreamConn, hub)
			if err := relay.Run(ctx); err != nil {
				log.Printf("relay: %v", err)
			}
		}()
	}
}
