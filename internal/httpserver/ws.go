// internal/httpserver/ws.go
//
// Websocket channel for key-by-key play.
// The client sends one message per key press; the server answers each with
// the new state or an error. Every reply carries the full snapshot so the
// client never has to keep its own copy.
//
// Client → server: {"type":"key","key":"A"} | {"type":"guess","guess":"CRANE"}
//                  {"type":"reset"} | {"type":"state"} | {"type":"ping"}
// Server → client: {"type":"state",...} | {"type":"error",...} | {"type":"pong"}

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/internal/game"
	"github.com/robalobadob/wordle/internal/store"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512

	sendBufferSize = 16
)

type wsMessageType string

const (
	wsKey   wsMessageType = "key"
	wsGuess wsMessageType = "guess"
	wsReset wsMessageType = "reset"
	wsState wsMessageType = "state"
	wsPing  wsMessageType = "ping"
	wsError wsMessageType = "error"
	wsPong  wsMessageType = "pong"
)

type wsClientMessage struct {
	Type  wsMessageType `json:"type"`
	Key   string        `json:"key,omitempty"`
	Guess string        `json:"guess,omitempty"`
}

type wsServerMessage struct {
	Type      wsMessageType     `json:"type"`
	Guess     *game.ScoredGuess `json:"guess,omitempty"`
	State     *game.State       `json:"state,omitempty"`
	Error     string            `json:"error,omitempty"`
	Message   string            `json:"message,omitempty"`
	Timestamp string            `json:"timestamp"`
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	return origin == "" || origin == s.opts.ClientOrigin
}

// handleWS upgrades the connection and serves the game named in the URL.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.View(r.Context(), id, func(*store.Session) error { return nil }); err != nil {
		s.writeGameError(w, err, nil)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("gameId", id).Msg("websocket upgrade failed")
		return
	}
	log.Debug().Str("gameId", id).Msg("websocket connected")

	send := make(chan wsServerMessage, sendBufferSize)
	done := make(chan struct{})
	go s.wsWritePump(conn, send, done)
	s.wsReadPump(conn, id, send)
	close(send)
	<-done
	log.Debug().Str("gameId", id).Msg("websocket closed")
}

// wsReadPump handles client messages until the connection fails.
func (s *Server) wsReadPump(conn *websocket.Conn, id string, send chan<- wsServerMessage) {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("gameId", id).Msg("websocket read error")
			}
			return
		}
		msg, stop := s.handleWSMessage(id, data)
		send <- msg
		if stop {
			return
		}
	}
}

// handleWSMessage applies one client message. stop is set when the game no
// longer exists.
func (s *Server) handleWSMessage(id string, data []byte) (reply wsServerMessage, stop bool) {
	var in wsClientMessage
	if err := json.Unmarshal(data, &in); err != nil {
		return newWSMessage(wsServerMessage{Type: wsError, Error: "bad_json"}), false
	}

	var fn func(*game.Engine) (*game.ScoredGuess, error)
	switch in.Type {
	case wsPing:
		return newWSMessage(wsServerMessage{Type: wsPong}), false
	case wsState:
		fn = func(*game.Engine) (*game.ScoredGuess, error) { return nil, nil }
	case wsKey:
		fn = func(e *game.Engine) (*game.ScoredGuess, error) { return e.Key(in.Key) }
	case wsGuess:
		fn = func(e *game.Engine) (*game.ScoredGuess, error) {
			sg, err := e.Guess(in.Guess)
			if err != nil {
				return nil, err
			}
			return &sg, nil
		}
	case wsReset:
		fn = func(e *game.Engine) (*game.ScoredGuess, error) { return nil, e.Reset() }
	default:
		return newWSMessage(wsServerMessage{Type: wsError, Error: "unknown_type", Message: string(in.Type)}), false
	}

	res, moveErr, err := s.apply(context.Background(), id, fn)
	if err != nil {
		code := "internal"
		if errors.Is(err, store.ErrNotFound) {
			code = "not_found"
		}
		return newWSMessage(wsServerMessage{Type: wsError, Error: code}), true
	}
	if moveErr != nil {
		_, body := errorBody(moveErr)
		return newWSMessage(wsServerMessage{Type: wsError, Error: body.Error, Message: body.Message, State: &res.State}), false
	}
	return newWSMessage(wsServerMessage{Type: wsState, Guess: res.Guess, State: &res.State}), false
}

// wsWritePump writes queued replies and keeps the connection alive with pings.
func (s *Server) wsWritePump(conn *websocket.Conn, send <-chan wsServerMessage, done chan<- struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
		close(done)
	}()

	for {
		select {
		case msg, ok := <-send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				drain(conn, send)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				drain(conn, send)
				return
			}
		}
	}
}

// drain closes a broken connection, which unblocks the reader, and discards
// replies until the reader closes send.
func drain(conn *websocket.Conn, send <-chan wsServerMessage) {
	_ = conn.Close()
	for range send {
	}
}

func newWSMessage(m wsServerMessage) wsServerMessage {
	m.Timestamp = time.Now().UTC().Format(time.RFC3339)
	return m
}
