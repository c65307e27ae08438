package httpapi

import (
	"context"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"github.com/riskibarqy/matchcentre/internal/domain/session"
	"github.com/riskibarqy/matchcentre/internal/platform/logging"
)

const (
	streamWriteWait      = 10 * time.Second
	streamPongWait       = 60 * time.Second
	streamPingPeriod     = (streamPongWait * 9) / 10
	streamMaxMessageSize = 512
	streamBufferSize     = 8

	streamMessageState = "session.state"
	streamMessageError = "session.error"
)

type streamMessage struct {
	Type  string         `json:"type"`
	Data  *session.State `json:"data,omitempty"`
	Error string         `json:"error,omitempty"`
}

// sessionStream pumps session states to one websocket peer. States are
// full replacements, so a slow peer only ever misses intermediate values.
type sessionStream struct {
	conn   *websocket.Conn
	send   chan session.State
	logger *logging.Logger
}

func newSessionStream(conn *websocket.Conn, logger *logging.Logger) *sessionStream {
	return &sessionStream{
		conn:   conn,
		send:   make(chan session.State, streamBufferSize),
		logger: logger,
	}
}

// push never blocks; it is called from the session store's notify loop.
func (s *sessionStream) push(state session.State) {
	for {
		select {
		case s.send <- state:
			return
		default:
		}
		select {
		case <-s.send:
		default:
		}
	}
}

func (s *sessionStream) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go s.readPump(cancel)
	s.writePump(ctx)
}

// readPump only watches for pongs and the peer closing; inbound messages
// are discarded.
func (s *sessionStream) readPump(cancel context.CancelFunc) {
	defer cancel()

	s.conn.SetReadLimit(streamMaxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(streamPongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})

	for {
		if _, _, err := s.conn.NextReader(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("session stream read failed", "error", err)
			}
			return
		}
	}
}

func (s *sessionStream) writePump(ctx context.Context) {
	ticker := time.NewTicker(streamPingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	var lastSent time.Time
	for {
		select {
		case <-ctx.Done():
			_ = s.conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			_ = s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return

		case state := <-s.send:
			if state.UpdatedAt.Before(lastSent) {
				continue
			}
			if err := s.write(streamMessage{Type: streamMessageState, Data: &state}); err != nil {
				s.logger.Warn("session stream write failed", "session_id", state.SessionID, "error", err)
				return
			}
			lastSent = state.UpdatedAt

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *sessionStream) write(msg streamMessage) error {
	payload, err := sonic.Marshal(msg)
	if err != nil {
		return err
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
	return s.conn.WriteMessage(websocket.TextMessage, payload)
}

// fail reports err to the peer and closes the connection.
func (s *sessionStream) fail(err error) {
	_ = s.write(streamMessage{Type: streamMessageError, Error: err.Error()})
	_ = s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseInternalServerErr, ""))
	_ = s.conn.Close()
}
