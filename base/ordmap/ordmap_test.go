// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ordmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	om := New[string, string]()
	om.Add("id", "foo")
	om.Add("type", "text")
	om.Add("value", "x")
	om.Add("id", "bar")
	assert.Equal(t, 3, om.Len())
	assert.Equal(t, []string{"id", "type", "value"}, om.Keys())
	v, ok := om.ValueByKeyTry("id")
	assert.True(t, ok)
	assert.Equal(t, "bar", v)

	assert.True(t, om.DeleteKey("type"))
	assert.False(t, om.DeleteKey("type"))
	assert.Equal(t, []string{"id", "value"}, om.Keys())
	v, ok = om.ValueByKeyTry("value")
	assert.True(t, ok)
	assert.Equal(t, "x", v)
}

func TestNilMap(t *testing.T) {
	var om *Map[string, int]
	assert.Equal(t, 0, om.Len())
	_, ok := om.ValueByKeyTry("a")
	assert.False(t, ok)
	for range om.All() {
		t.Fatal("nil map must not yield")
	}
}

func TestClone(t *testing.T) {
	om := New[string, int]()
	om.Add("a", 1)
	om.Add("b", 2)
	c := om.Clone()
	c.Add("a", 10)
	c.Add("c", 3)
	v, _ := om.ValueByKeyTry("a")
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, om.Len())
	var keys []string
	for k := range c.All() {
		keys = append(keys, k)
	}
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}
