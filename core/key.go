// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import "strconv"

// Key identifies a configuration node among its siblings, so that the
// child-list differ can match it with the render node built from the
// previous configuration at any position. The zero Key is the absent key;
// two Keys are equal iff both are absent or both are present and hold
// the same value, which is exactly what == reports.
type Key struct {
	value string
	set   bool
}

// NewKey returns a present key with the given value.
func NewKey(value string) Key {
	return Key{value: value, set: true}
}

// IntKey returns a present key for the given integer, which is a common
// choice for items backed by numbered records.
func IntKey(i int) Key {
	return NewKey(strconv.Itoa(i))
}

// IsSet returns whether the key is present.
func (k Key) IsSet() bool { return k.set }

// Value returns the value of the key, which is "" for the absent key.
func (k Key) Value() string { return k.value }

func (k Key) String() string {
	if !k.set {
		return "<no key>"
	}
	return strconv.Quote(k.value)
}
