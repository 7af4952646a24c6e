// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lis

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	assert.Equal(t, []int{1, 2}, Compute([]int{1, 3, 2}))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, Compute([]int{5, 0, 1, 2, 3, 4}))
	assert.Empty(t, Compute([]int{}))
	assert.Empty(t, Compute(nil))
	assert.Len(t, Compute([]int{3, 2, 1}), 1)
	assert.Equal(t, []int{7}, Compute([]int{7}))
	assert.Len(t, Compute([]int{2, 2, 2}), 1)
}

func TestIndexes(t *testing.T) {
	assert.Equal(t, []int{0, 2}, Indexes([]int{1, 3, 2}))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, Indexes([]int{5, 0, 1, 2, 3, 4}))
	assert.Nil(t, Indexes(nil))
}

// lisLength is the quadratic reference implementation.
func lisLength(seq []int) int {
	best := 0
	l := make([]int, len(seq))
	for i := range seq {
		l[i] = 1
		for j := 0; j < i; j++ {
			if seq[j] < seq[i] && l[j]+1 > l[i] {
				l[i] = l[j] + 1
			}
		}
		best = max(best, l[i])
	}
	return best
}

func TestComputeRandom(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for range 500 {
		n := r.IntN(40)
		seq := make([]int, n)
		for i := range seq {
			seq[i] = r.IntN(30)
		}
		idx := Indexes(seq)
		if !assert.Len(t, idx, lisLength(seq), "seq: %v", seq) {
			continue
		}
		for i := 1; i < len(idx); i++ {
			assert.Less(t, idx[i-1], idx[i], "positions must follow input order: %v", seq)
			assert.Less(t, seq[idx[i-1]], seq[idx[i]], "values must strictly increase: %v", seq)
		}
	}
}
