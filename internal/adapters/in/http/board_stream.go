package http

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"orderdesk/internal/core/application/liveview"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 4 * 1024
	maxReplies     = 8
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(*http.Request) bool {
		return true
	},
}

type filterMessage struct {
	Status string `json:"status"`
}

type streamError struct {
	Error string `json:"error"`
}

// boardConn is one websocket client of the live board. Only the newest
// board waits to be written; older unsent boards are dropped. Replies to
// client messages are queued separately and never dropped for a board.
type boardConn struct {
	conn    *websocket.Conn
	send    chan []byte
	replies chan []byte
	done    chan struct{}
	once    sync.Once
}

// StreamBoard handles GET /api/v1/board. The first board is sent as soon as
// the store delivers a snapshot; the client switches filters by sending
// {"status":"completed"}.
func (s *Server) StreamBoard(c echo.Context) error {
	filter, err := liveview.ParseFilter(c.QueryParam("status"))
	if err != nil {
		return writeError(c, err)
	}

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		s.logger.WarnContext(c.Request().Context(), "websocket upgrade failed", "error", err)
		return nil
	}

	bc := &boardConn{
		conn:    ws,
		send:    make(chan []byte, 1),
		replies: make(chan []byte, maxReplies),
		done:    make(chan struct{}),
	}

	viewer := liveview.NewViewer(s.store, filter, s.location, func(board liveview.Board) {
		data, marshalErr := json.Marshal(toBoardView(board))
		if marshalErr != nil {
			s.logger.Error("marshal board failed", "error", marshalErr)
			return
		}
		bc.offer(data)
	})
	s.viewers.ViewerAttached()

	go bc.writePump()
	bc.readPump(viewer)

	viewer.Close()
	s.viewers.ViewerDetached()
	return nil
}

// offer replaces any unsent board with data. A sender blocks only until the
// writer drains the slot or the connection closes.
func (bc *boardConn) offer(data []byte) {
	select {
	case <-bc.send:
	default:
	}
	select {
	case bc.send <- data:
	case <-bc.done:
	}
}

func (bc *boardConn) close() {
	bc.once.Do(func() {
		close(bc.done)
		_ = bc.conn.Close()
	})
}

func (bc *boardConn) readPump(viewer *liveview.Viewer) {
	defer bc.close()

	bc.conn.SetReadLimit(maxMessageSize)
	_ = bc.conn.SetReadDeadline(time.Now().Add(pongWait))
	bc.conn.SetPongHandler(func(string) error {
		return bc.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := bc.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg filterMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			bc.reject("invalid message")
			continue
		}
		filter, err := liveview.ParseFilter(msg.Status)
		if err != nil {
			bc.reject(err.Error())
			continue
		}
		viewer.SetFilter(filter)
	}
}

// reject queues an error reply. The read loop blocks while the queue is full.
func (bc *boardConn) reject(reason string) {
	data, _ := json.Marshal(streamError{Error: reason})
	select {
	case bc.replies <- data:
	case <-bc.done:
	}
}

func (bc *boardConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		bc.close()
	}()

	for {
		select {
		case <-bc.done:
			return
		case message := <-bc.replies:
			if err := bc.write(message); err != nil {
				return
			}
		case message := <-bc.send:
			if err := bc.write(message); err != nil {
				return
			}
		case <-ticker.C:
			_ = bc.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := bc.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (bc *boardConn) write(message []byte) error {
	_ = bc.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return bc.conn.WriteMessage(websocket.TextMessage, message)
}
