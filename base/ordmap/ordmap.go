// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package ordmap implements an ordered map that retains the order of items
added to a slice, while also providing fast key-based map lookup of items.

It is used for element attributes, where the order in which attributes
were set determines the order in which they are printed and diffed, so
that markup and edit records are deterministic.
*/
package ordmap

import (
	"fmt"
	"iter"
	"slices"
)

// KeyValue represents a key-value pair.
type KeyValue[K comparable, V any] struct {
	Key   K
	Value V
}

// Map is a generic ordered map that combines the order of a slice
// and the fast key lookup of a map. A map stores an index
// into a slice that has the value and key associated with the value.
type Map[K comparable, V any] struct {

	// Order is an ordered list of values and associated keys, in the order added.
	Order []KeyValue[K, V]

	// Map is the key to index mapping.
	Map map[K]int
}

// New returns a new ordered map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		Map: make(map[K]int),
	}
}

// Init initializes the map if it isn't already.
func (om *Map[K, V]) Init() {
	if om.Map == nil {
		om.Map = make(map[K]int)
	}
}

// Add adds a new value for given key.
// If key already exists in map, it replaces the item at that existing index,
// otherwise it is added to the end.
func (om *Map[K, V]) Add(key K, val V) {
	om.Init()
	if idx, has := om.Map[key]; has {
		om.Order[idx].Value = val
		return
	}
	om.Map[key] = len(om.Order)
	om.Order = append(om.Order, KeyValue[K, V]{Key: key, Value: val})
}

// ValueByKeyTry returns the value corresponding to the given key,
// with false returned for a missing key.
func (om *Map[K, V]) ValueByKeyTry(key K) (V, bool) {
	if om != nil {
		if idx, ok := om.Map[key]; ok {
			return om.Order[idx].Value, true
		}
	}
	var zv V
	return zv, false
}

// Len returns the number of items in the map.
func (om *Map[K, V]) Len() int {
	if om == nil {
		return 0
	}
	return len(om.Order)
}

// DeleteKey deletes the item with the given key, returning false if it does not find it.
// This is relatively slow because it needs to renumber the index map above
// the deleted item.
func (om *Map[K, V]) DeleteKey(key K) bool {
	idx, ok := om.Map[key]
	if !ok {
		return false
	}
	for o := idx + 1; o < len(om.Order); o++ {
		om.Map[om.Order[o].Key] = o - 1
	}
	delete(om.Map, key)
	om.Order = slices.Delete(om.Order, idx, idx+1)
	return true
}

// All returns an iterator over the key-value pairs in order.
// It is safe to call on a nil map.
func (om *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if om == nil {
			return
		}
		for _, kv := range om.Order {
			if !yield(kv.Key, kv.Value) {
				return
			}
		}
	}
}

// Keys returns a slice of the keys in order.
func (om *Map[K, V]) Keys() []K {
	if om == nil {
		return nil
	}
	kl := make([]K, om.Len())
	for i, kv := range om.Order {
		kl[i] = kv.Key
	}
	return kl
}

// Clone returns a copy of the map that shares no storage with it.
func (om *Map[K, V]) Clone() *Map[K, V] {
	nm := &Map[K, V]{
		Order: slices.Clone(om.Order),
		Map:   make(map[K]int, om.Len()),
	}
	for i, kv := range nm.Order {
		nm.Map[kv.Key] = i
	}
	return nm
}

// String returns a string representation of the map.
func (om *Map[K, V]) String() string {
	return fmt.Sprintf("%v", om.Order)
}
