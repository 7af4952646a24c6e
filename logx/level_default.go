// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !debug && !release

package logx

import "log/slog"

// Frames and sessions log at debug, so a plain build shows
// only session lifecycle and problems.
var defaultUserLevel = slog.LevelInfo
