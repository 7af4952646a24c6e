// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lis computes longest increasing subsequences of integer
// sequences. It is used by the child list differ to find the children
// that are already in the right relative order and therefore do not
// need to be moved.
package lis

import (
	"cmp"
	"slices"
)

// Indexes returns the positions in seq of one longest strictly increasing
// subsequence of seq, in ascending order. It runs in O(n log n) time
// using the patience sorting (tails) method. It returns nil for an
// empty sequence.
func Indexes(seq []int) []int {
	if len(seq) == 0 {
		return nil
	}
	// tails[j] is the position in seq of the smallest tail of any
	// increasing subsequence of length j+1 seen so far.
	tails := make([]int, 0, len(seq))
	prev := make([]int, len(seq))
	for i, v := range seq {
		j, _ := slices.BinarySearchFunc(tails, v, func(t, v int) int {
			return cmp.Compare(seq[t], v)
		})
		if j > 0 {
			prev[i] = tails[j-1]
		} else {
			prev[i] = -1
		}
		if j == len(tails) {
			tails = append(tails, i)
		} else {
			tails[j] = i
		}
	}
	r := make([]int, len(tails))
	k := tails[len(tails)-1]
	for i := len(r) - 1; i >= 0; i-- {
		r[i] = k
		k = prev[k]
	}
	return r
}

// Compute returns the values of one longest strictly increasing
// subsequence of seq, in the order they appear in seq.
// See [Indexes] for the positions instead of the values.
func Compute(seq []int) []int {
	idx := Indexes(seq)
	if idx == nil {
		return nil
	}
	r := make([]int, len(idx))
	for i, k := range idx {
		r[i] = seq[k]
	}
	return r
}
