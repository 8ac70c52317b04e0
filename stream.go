package zbproto

import (
	"fmt"
	"io"
	"net"

	"github.com/taskbroker/zbproto/frame"
)

// ReadMessage reads one complete frame's wire bytes off conn, transparently
// skipping any padding frames, the way a worker loop reading a TCP stream
// one message at a time needs to. The returned bytes are exactly what a
// caller should pass to ReadTopologyResponse, ReadTaskResponse,
// ReadSubscribedEvent, and friends.
func ReadMessage(conn net.Conn) ([]byte, error) {
	buf := make([]byte, 0, 4096)
	tmp := make([]byte, 4096)

	for {
		for {
			fr, consumed, derr := frame.Decode(buf)
			if derr != nil {
				break // not enough bytes yet; read more
			}
			wireBytes := buf[:consumed]
			buf = buf[consumed:]
			if fr.Header.Type == frame.TypePadding {
				continue
			}
			return wireBytes, nil
		}

		n, err := conn.Read(tmp)
		if n > 0 {
			buf = append(buf, tmp[:n]...)
		}
		if err != nil {
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("zbproto: read message: %w", err)
		}
	}
}
