// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package serve

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"barista.dev/barista/core"
)

// Session is one connected page. It owns a [core.Tree], which is only
// used from the goroutine reading the connection.
type Session struct {

	// ID identifies the session in logs.
	ID uuid.UUID

	server *Server
	conn   *websocket.Conn
	tree   *core.Tree
	logger *slog.Logger
}

func newSession(s *Server, conn *websocket.Conn) *Session {
	id := uuid.New()
	logger := s.Logger.With("session", id.String())
	return &Session{
		ID:     id,
		server: s,
		conn:   conn,
		tree:   core.NewTree(s.App(), core.WithLogger(logger)),
		logger: logger,
	}
}

// run sends the first frame, and then dispatches events and sends a
// frame after every event that scheduled an update, until the
// connection closes.
func (sess *Session) run() error {
	sess.conn.SetReadLimit(sess.server.Config.MaxMessageSize)
	if err := sess.sendFrame(); err != nil {
		return err
	}
	for {
		_, msg, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}
		var ev core.Event
		if err := json.Unmarshal(msg, &ev); err != nil {
			sess.logger.Warn("serve: invalid event", "err", err)
			continue
		}
		if !sess.tree.DispatchEvent(ev.Type, ev.Target, ev.Data) || !sess.tree.NeedsFrame() {
			continue
		}
		if err := sess.sendFrame(); err != nil {
			return err
		}
	}
}

func (sess *Session) sendFrame() error {
	msg, err := sess.tree.RenderFrame()
	if err != nil {
		return err
	}
	if wt := sess.server.Config.WriteTimeout; wt > 0 {
		if err := sess.conn.SetWriteDeadline(time.Now().Add(time.Duration(wt) * time.Second)); err != nil {
			return err
		}
	}
	sess.logger.Debug("serve: sending frame", "bytes", len(msg))
	return sess.conn.WriteMessage(websocket.TextMessage, []byte(msg))
}

// close asks the page to close the connection, which ends run.
func (sess *Session) close() {
	deadline := time.Now().Add(time.Second)
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	if err := sess.conn.WriteControl(websocket.CloseMessage, msg, deadline); err != nil {
		sess.conn.Close()
	}
}
