// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package keylist implements an ordered list (slice) of items,
with a map from a key to indexes, to support fast lookup by key.
Each item can be claimed once, which is how the child list differ
consumes matched previous children while walking the new ones.
*/
package keylist

import (
	"fmt"
	"iter"
)

// List implements an ordered list (slice) of Values,
// with a map from a key to indexes, to support fast lookup by key.
// The zero value is usable without initialization.
type List[K comparable, V any] struct {

	// Values is the ordered slice of items.
	Values []V

	// Keys is the ordered list of keys, in same order as [List.Values].
	Keys []K

	// indexes is the key-to-index mapping.
	indexes map[K]int

	// claimed records which items have been returned by [List.Claim].
	claimed []bool
}

// New returns a new [List] with room for n items.
func New[K comparable, V any](n int) *List[K, V] {
	return &List[K, V]{
		Values:  make([]V, 0, n),
		Keys:    make([]K, 0, n),
		indexes: make(map[K]int, n),
		claimed: make([]bool, 0, n),
	}
}

// Add adds an item to the end of the list with the given key.
// An error is returned if the key is already on the list,
// in which case the list is not modified.
func (kl *List[K, V]) Add(key K, val V) error {
	if kl.indexes == nil {
		kl.indexes = make(map[K]int)
	}
	if idx, ok := kl.indexes[key]; ok {
		return fmt.Errorf("keylist.Add: key %v is already on the list at index %d", key, idx)
	}
	kl.indexes[key] = len(kl.Values)
	kl.Values = append(kl.Values, val)
	kl.Keys = append(kl.Keys, key)
	kl.claimed = append(kl.claimed, false)
	return nil
}

// AtTry returns the value corresponding to the given key,
// with false returned for a missing key.
func (kl *List[K, V]) AtTry(key K) (V, bool) {
	idx, ok := kl.indexes[key]
	if ok {
		return kl.Values[idx], true
	}
	var zv V
	return zv, false
}

// IndexByKey returns the index of the given key, with a -1 for missing key.
func (kl *List[K, V]) IndexByKey(key K) int {
	idx, ok := kl.indexes[key]
	if !ok {
		return -1
	}
	return idx
}

// Claim returns the index and value of the item with the given key
// and marks it as claimed. It returns -1 and false if the key is not
// on the list or has already been claimed.
func (kl *List[K, V]) Claim(key K) (int, V, bool) {
	var zv V
	idx, ok := kl.indexes[key]
	if !ok || kl.claimed[idx] {
		return -1, zv, false
	}
	kl.claimed[idx] = true
	return idx, kl.Values[idx], true
}

// IsClaimed returns whether the item at the given index has been claimed.
func (kl *List[K, V]) IsClaimed(idx int) bool {
	return kl.claimed[idx]
}

// Unclaimed returns an iterator over the index and value of every item
// that has not been claimed, in list order.
func (kl *List[K, V]) Unclaimed() iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		for i, v := range kl.Values {
			if kl.claimed[i] {
				continue
			}
			if !yield(i, v) {
				return
			}
		}
	}
}

// Len returns the number of items in the list.
func (kl *List[K, V]) Len() int {
	if kl == nil {
		return 0
	}
	return len(kl.Values)
}

// String returns a string representation of the list.
func (kl *List[K, V]) String() string {
	sv := "{"
	for i, v := range kl.Values {
		sv += fmt.Sprintf("%v", kl.Keys[i]) + ": " + fmt.Sprintf("%v", v) + ", "
	}
	sv += "}"
	return sv
}
