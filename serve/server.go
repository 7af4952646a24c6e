// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package serve hosts barista applications in the browser. Every
// WebSocket connection gets its own [core.Tree]: frames are sent to the
// page as JSON text messages, and DOM events come back the same way.
package serve

import (
	"context"
	_ "embed"
	"html/template"
	"log/slog"
	"net/http"
	"sync"

	"cogentcore.org/core/base/errors"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"barista.dev/barista/core"
)

var (
	//go:embed client.js
	clientJS []byte

	//go:embed index.html
	indexHTML string

	indexTemplate = template.Must(template.New("index").Parse(indexHTML))
)

// Server serves an application to browsers.
type Server struct {

	// Config is the configuration of the server.
	Config *Config

	// App returns the top-level configuration for a new session.
	App func() core.Node

	// Logger is used for session events; it defaults to [slog.Default].
	Logger *slog.Logger

	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

// NewServer returns a new server for the given application.
func NewServer(cfg *Config, app func() core.Node) *Server {
	return &Server{
		Config: cfg,
		App:    app,
		Logger: slog.Default(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
		sessions: map[uuid.UUID]*Session{},
	}
}

// Handler returns the HTTP handler of the server, which serves the page
// at the root and the WebSocket endpoint at [Config.Path].
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.serveIndex)
	mux.HandleFunc("GET /client.js", s.serveClient)
	mux.HandleFunc("GET "+s.Config.Path, s.serveWebSocket)
	return mux
}

// ListenAndServe serves on [Config.Addr] until the context is done,
// and then closes all sessions.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if err := s.Config.Validate(); err != nil {
		return err
	}
	srv := &http.Server{Addr: s.Config.Addr, Handler: s.Handler()}
	go func() {
		<-ctx.Done()
		errors.Log(srv.Shutdown(context.Background()))
		s.closeAll()
	}()
	s.Logger.Info("serve: listening", "addr", s.Config.Addr, "path", s.Config.Path)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// NumSessions returns the number of open sessions.
func (s *Server) NumSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	errors.Log(indexTemplate.Execute(w, s.Config))
}

func (s *Server) serveClient(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	_, err := w.Write(clientJS)
	errors.Log(err)
}

func (s *Server) serveWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if errors.Log(err) != nil {
		return
	}
	sess := newSession(s, conn)
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.sessions, sess.ID)
		s.mu.Unlock()
		errors.Log(conn.Close())
		sess.logger.Info("serve: session closed", "frames", sess.tree.Frames())
	}()
	sess.logger.Info("serve: session opened", "remote", r.RemoteAddr)
	if err := sess.run(); err != nil {
		sess.logger.Error("serve: session failed", "err", err)
	}
}

func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range s.sessions {
		sess.close()
	}
}
