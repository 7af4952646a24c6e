// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromFlags(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, true, true))
	assert.Equal(t, slog.LevelInfo, LevelFromFlags(false, true, true))
	assert.Equal(t, slog.LevelError, LevelFromFlags(false, false, true))
	assert.Equal(t, UserLevel, LevelFromFlags(false, false, false))
}

func TestHandler(t *testing.T) {
	old := UserLevel
	defer func() { UserLevel = old }()
	UserLevel = slog.LevelInfo

	var b bytes.Buffer
	l := slog.New(NewHandler(&b))
	l.Debug("hidden")
	l.Info("shown", "frame", 1)
	s := b.String()
	assert.NotContains(t, s, "hidden")
	assert.Contains(t, s, "level=INFO")
	assert.Contains(t, s, "msg=shown frame=1")
}
