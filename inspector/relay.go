package inspector

import (
	"context"
	"fmt"
	"io"
	"net"

	"github.com/google/uuid"

	"github.com/taskbroker/zbproto/frame"
	"github.com/taskbroker/zbproto/sbe"
	"github.com/taskbroker/zbproto/transport"
)

// Relay sits between a client and the upstream broker, forwarding bytes
// unmodified in both directions while decoding each frame that passes
// through for display in the Hub.
type Relay struct {
	clientConn   net.Conn
	upstreamConn net.Conn
	hub          *Hub
	session      string
}

// NewRelay returns a Relay that copies bytes between clientConn and
// upstreamConn, publishing a decoded Event to hub for every message frame
// seen (padding frames are forwarded but not published). Each
// Relay is tagged with its own session id so a subscriber watching several
// relayed connections at once can tell their events apart.
func NewRelay(clientConn, upstreamConn net.Conn, hub *Hub) *Relay {
	return &Relay{clientConn: clientConn, upstreamConn: upstreamConn, hub: hub, session: uuid.New().String()}
}

// Run relays bidirectionally until one side closes or ctx is canceled.
func (r *Relay) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() { errCh <- r.pump(ctx, "request", r.clientConn, r.upstreamConn) }()
	go func() { errCh <- r.pump(ctx, "response", r.upstreamConn, r.clientConn) }()

	err := <-errCh
	_ = r.clientConn.Close()
	_ = r.upstreamConn.Close()
	<-errCh

	return err
}

// pump copies length-prefixed frames from src to dst, decoding each one for
// the hub before forwarding the raw bytes onward.
func (r *Relay) pump(ctx context.Context, direction string, src, dst net.Conn) error {
	buf := make([]byte, 0, 4096)
	tmp := make([]byte, 4096)

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		n, err := src.Read(tmp)
		if n > 0 {
			buf = append(buf, tmp[:n]...)
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("inspector: read %s: %w", direction, err)
		}

		for {
			fr, consumed, derr := frame.Decode(buf)
			if derr != nil {
				break // not enough bytes yet; wait for more
			}

			if _, werr := dst.Write(buf[:consumed]); werr != nil {
				return fmt.Errorf("inspector: forward %s: %w", direction, werr)
			}
			buf = buf[consumed:]

			if fr.Header.Type != frame.TypePadding {
				ev := decodeEvent(direction, fr)
				ev.Session = r.session
				r.hub.Publish(ev)
			}
		}
	}
}

func decodeEvent(direction string, fr frame.Frame) Event {
	env, err := transport.DecodeBody(fr.Payload)
	if err != nil {
		return Event{Direction: direction, Label: "undecodable", Summary: err.Error()}
	}
	if env.Protocol == transport.ProtocolControlMessage {
		return Event{
			Direction: direction,
			Label:     "ControlMessage",
			Summary:   env.Control.String(),
		}
	}
	return Event{
		Direction: direction,
		Label:     describeSBE(env.Body),
		Summary:   fmt.Sprintf("%d bytes", len(env.Body)),
		Raw:       env.Body,
	}
}

// describeSBE peeks at the SBE message header without fully decoding the
// message, to label the event for display.
func describeSBE(body []byte) string {
	h, err := sbe.PeekHeader(body)
	if err != nil {
		return "unknown"
	}
	switch {
	case h.TemplateID == 0 && h.SchemaID == 0:
		return "ErrorResponse"
	case h.TemplateID == 10 && h.SchemaID == 0:
		return "ControlMessageRequest"
	case h.TemplateID == 11 && h.SchemaID == 0:
		return "ControlMessageResponse"
	case h.TemplateID == 20 && h.SchemaID == 0:
		return "ExecuteCommandRequest"
	case h.TemplateID == 21 && h.SchemaID == 0:
		return "ExecuteCommandResponse"
	case h.TemplateID == 30 && h.SchemaID == 0:
		return "SubscribedEvent"
	case h.TemplateID == 10 && h.SchemaID == 4:
		return "AppendRequest"
	case h.TemplateID == 200 && h.SchemaID == 0:
		return "BrokerEventMetadata"
	default:
		return fmt.Sprintf("template(%d,%d)", h.TemplateID, h.SchemaID)
	}
}
