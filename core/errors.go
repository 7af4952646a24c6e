// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import (
	"fmt"

	"cogentcore.org/core/base/errors"
)

var (
	// ErrInvalidArgument is returned for configuration nodes that cannot be
	// used at all, such as nil nodes or nodes that are not pointers.
	ErrInvalidArgument = errors.New("core: invalid argument")

	// ErrIncompatible is returned when a render node is updated using a
	// configuration it cannot update from. It wraps [ErrInvalidArgument].
	ErrIncompatible = fmt.Errorf("%w: incompatible configuration", ErrInvalidArgument)

	// ErrFrameInProgress is returned by [Tree.Frame] when another frame of
	// the same tree has not finished yet.
	ErrFrameInProgress = errors.New("core: frame in progress")
)

// ConfigurationError reports a child list that cannot be reconciled
// because two siblings share a key.
type ConfigurationError struct {

	// Parent describes the node whose children are being reconciled.
	Parent string

	// Key is the duplicated key.
	Key Key

	// First and Index are the positions of the first and the
	// offending child with that key in the new child list.
	First, Index int
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("core: %s: duplicate key %s at children %d and %d", e.Parent, e.Key, e.First, e.Index)
}
