package realtime

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"helpdesk/internal/shared/goroutine"
	"helpdesk/internal/shared/logger"
)

const (
	wsWriteWait   = 10 * time.Second
	wsPongWait    = 60 * time.Second
	wsPingPeriod  = 30 * time.Second
	wsMaxFrameLen = 1 << 20
)

// TokenSource yields the credential appended to the websocket URL.
type TokenSource interface {
	Token() string
}

// WebSocketSource reads push frames from the server's websocket endpoint.
type WebSocketSource struct {
	baseURL string
	path    string
	tokens  TokenSource
	dialer  *websocket.Dialer
	logger  logger.Interface
}

func NewWebSocketSource(baseURL, path string, tokens TokenSource, log logger.Interface) *WebSocketSource {
	return &WebSocketSource{
		baseURL: baseURL,
		path:    path,
		tokens:  tokens,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
		},
		logger: log,
	}
}

func (s *WebSocketSource) Name() string {
	return "websocket"
}

// buildURL converts the http(s) base into a ws(s) URL carrying the token.
func (s *WebSocketSource) buildURL() (string, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	switch u.Scheme {
	case "https", "wss":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + s.path

	if s.tokens != nil {
		if token := s.tokens.Token(); token != "" {
			q := u.Query()
			q.Set("token", token)
			u.RawQuery = q.Encode()
		}
	}

	return u.String(), nil
}

func (s *WebSocketSource) Run(ctx context.Context, onConnected func(), deliver func([]byte)) error {
	wsURL, err := s.buildURL()
	if err != nil {
		return fmt.Errorf("build websocket url: %w", err)
	}

	conn, resp, err := s.dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("websocket dial failed: status=%d, err=%w", resp.StatusCode, err)
		}
		return fmt.Errorf("websocket dial: %w", err)
	}

	if onConnected != nil {
		onConnected()
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var closeOnce sync.Once
	closeConn := func() {
		closeOnce.Do(func() { _ = conn.Close() })
	}
	defer closeConn()

	errChan := make(chan error, 2)
	goroutine.SafeGo(s.logger, "realtime-ws-write", func() {
		errChan <- s.writePump(runCtx, conn)
	})
	goroutine.SafeGo(s.logger, "realtime-ws-read", func() {
		errChan <- s.readPump(conn, deliver)
	})

	select {
	case err = <-errChan:
	case <-ctx.Done():
		err = ctx.Err()
	}
	cancel()
	closeConn()
	return err
}

// readPump reads frames until the connection fails.
func (s *WebSocketSource) readPump(conn *websocket.Conn, deliver func([]byte)) error {
	conn.SetReadLimit(wsMaxFrameLen)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read message: %w", err)
		}
		// Any traffic proves the peer is alive.
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		deliver(message)
	}
}

// writePump owns every write on the connection: keepalive pings and the
// closing handshake.
func (s *WebSocketSource) writePump(ctx context.Context, conn *websocket.Conn) error {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return ctx.Err()

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return fmt.Errorf("ping: %w", err)
			}
		}
	}
}
