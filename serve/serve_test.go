// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package serve

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barista.dev/barista/base/websocket"
	"barista.dev/barista/core"
	"barista.dev/barista/dom"
	"barista.dev/barista/edits"
)

func TestDefaultConfig(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	tf := filepath.Join(dir, "barista.toml")
	require.NoError(t, os.WriteFile(tf, []byte("addr = \":9000\"\ntitle = \"Todos\"\n"), 0666))
	cfg, err := LoadConfig(tf)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "Todos", cfg.Title)
	assert.Equal(t, "/barista", cfg.Path)

	yf := filepath.Join(dir, "barista.yaml")
	require.NoError(t, os.WriteFile(yf, []byte("path: /ws\nmax_message_size: 1024\nwrite_timeout: 0\n"), 0666))
	cfg, err = LoadConfig(yf)
	require.NoError(t, err)
	assert.Equal(t, "/ws", cfg.Path)
	assert.Equal(t, int64(1024), cfg.MaxMessageSize)
	assert.Equal(t, 0, cfg.WriteTimeout)
	assert.Equal(t, "localhost:8080", cfg.Addr)

	bad := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("path: ws\n"), 0666))
	_, err = LoadConfig(bad)
	assert.ErrorContains(t, err, "invalid WebSocket path")

	_, err = LoadConfig(filepath.Join(dir, "barista.json"))
	assert.Error(t, err)
	ext := filepath.Join(dir, "barista.json")
	require.NoError(t, os.WriteFile(ext, []byte("{}"), 0666))
	_, err = LoadConfig(ext)
	assert.ErrorContains(t, err, "unsupported")
}

// clickCounter is a stateful widget with a button counting clicks.
type clickCounter struct {
	core.NodeBase
}

func (c *clickCounter) CreateState() core.State {
	return &clickCounterState{}
}

type clickCounterState struct {
	core.StateBase
	clicks int
}

func (s *clickCounterState) Build() core.Node {
	return dom.El("button").SetText(strings.Repeat("+", s.clicks+1)).OnClick(func(*core.Event) {
		s.clicks++
		s.ScheduleUpdate()
	})
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	s := NewServer(DefaultConfig(), func() core.Node { return &clickCounter{} })
	hs := httptest.NewServer(s.Handler())
	t.Cleanup(hs.Close)
	return s, hs
}

func TestIndex(t *testing.T) {
	_, hs := newTestServer(t)
	resp, err := http.Get(hs.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(b), "<title>Barista</title>")
	assert.Contains(t, string(b), `data-path="/barista"`)

	resp, err = http.Get(hs.URL + "/client.js")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/javascript; charset=utf-8", resp.Header.Get("Content-Type"))

	resp, err = http.Get(hs.URL + "/missing")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSession(t *testing.T) {
	s, hs := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := websocket.Connect(ctx, "ws"+strings.TrimPrefix(hs.URL, "http")+s.Config.Path)
	require.NoError(t, err)

	msgs := make(chan *edits.Message, 10)
	c.OnMessage(func(typ websocket.MessageTypes, b []byte) {
		m, err := edits.DecodeMessage(b)
		if assert.NoError(t, err) {
			msgs <- m
		}
	})
	closed := make(chan struct{})
	c.OnClose(func() { close(closed) })

	next := func() *edits.Message {
		select {
		case m := <-msgs:
			return m
		case <-ctx.Done():
			t.Fatal("timed out waiting for a frame")
			return nil
		}
	}

	m := next()
	require.NotNil(t, m.Create)
	assert.Equal(t, `<button _bid="1">+</button>`, *m.Create)
	assert.Eventually(t, func() bool { return s.NumSessions() == 1 }, time.Second, 10*time.Millisecond)

	// events that are not handled produce no frame
	require.NoError(t, c.SendJSON(&core.Event{Type: "click", Target: "7"}))
	require.NoError(t, c.Send(websocket.TextMessage, []byte("not json")))
	require.NoError(t, c.SendJSON(&core.Event{Type: "click", Target: "1"}))

	m = next()
	require.NotNil(t, m.Update)
	require.Len(t, m.Update.Children, 1)
	require.Len(t, m.Update.Children[0].Children, 1)
	text := m.Update.Children[0].Children[0].Text
	require.NotNil(t, text)
	assert.Equal(t, "++", *text)

	require.NoError(t, c.Close())
	select {
	case <-closed:
	case <-ctx.Done():
		t.Fatal("timed out waiting for close")
	}
	assert.Eventually(t, func() bool { return s.NumSessions() == 0 }, time.Second, 10*time.Millisecond)
}

func TestListenAndServe(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Addr = "127.0.0.1:0"
	s := NewServer(cfg, func() core.Node { return &clickCounter{} })
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- s.ListenAndServe(ctx) }()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	cfg.Path = "/"
	assert.Error(t, s.ListenAndServe(context.Background()))
}
