// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx configures the default [slog] logger: the level the user
// has selected, and level names colored for terminals.
package logx

import (
	"io"
	"log/slog"

	"github.com/muesli/termenv"
)

// UserLevel is the verbosity level that the user has selected for what
// logging and printing messages should be shown. Messages at levels at or
// above this level will be shown. It is [slog.LevelInfo] by default,
// [slog.LevelDebug] with the debug build tag and [slog.LevelWarn] with
// the release build tag.
var UserLevel = defaultUserLevel

// LevelFromFlags returns the [slog.Level] corresponding to the given
// user flag options:
//   - vv: [slog.LevelDebug]
//   - v: [slog.LevelInfo]
//   - q: [slog.LevelError]
//   - (default: [UserLevel])
//
// The flags are evaluated in that order.
func LevelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	default:
		return UserLevel
	}
}

// NewHandler returns a text handler writing to w at [UserLevel], with
// level names colored if w is a color terminal.
func NewHandler(w io.Writer) slog.Handler {
	out := termenv.NewOutput(w)
	colors := map[slog.Level]termenv.Color{
		slog.LevelDebug: out.Color("6"),
		slog.LevelInfo:  out.Color("2"),
		slog.LevelWarn:  out.Color("3"),
		slog.LevelError: out.Color("1"),
	}
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: UserLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key != slog.LevelKey || len(groups) > 0 {
				return a
			}
			lvl, ok := a.Value.Any().(slog.Level)
			if !ok {
				return a
			}
			c, ok := colors[lvl]
			if !ok {
				return a
			}
			return slog.String(a.Key, out.String(lvl.String()).Foreground(c).Bold().String())
		},
	})
}

// SetDefaultLogger sets the default [slog] logger to write to w
// using [NewHandler].
func SetDefaultLogger(w io.Writer) {
	slog.SetDefault(slog.New(NewHandler(w)))
}
