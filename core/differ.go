// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"barista.dev/barista/base/keylist"
	"barista.dev/barista/base/lis"
	"barista.dev/barista/edits"
)

// UpdateChildren reconciles the children of the node with the given new
// child configurations, retaining every compatible render node and
// recording the removes, moves and inserts that turn the old DOM child
// list into the new one. All indexes in the recorded edits refer to the
// old child list. The new child list is only committed once the whole
// list has been processed.
//
// When every old and new child has a key, children are matched by key and
// a longest increasing subsequence of matched children stays in place, so
// the number of moves is minimal. Otherwise children are matched by
// position from both ends, and the middle is reconciled first-fit;
// reordering unkeyed siblings is not detected as a move.
func (r *RenderMultiChild) UpdateChildren(nodes []Node, u *edits.ElementUpdate) error {
	for i, n := range nodes {
		if err := checkNode(n); err != nil {
			return fmt.Errorf("%s: child %d: %w", Describe(r.config), i, err)
		}
	}
	if err := r.checkKeys(nodes); err != nil {
		return err
	}
	var children []RenderNode
	var err error
	if allKeyed(r.children, nodes) {
		children, err = r.updateKeyed(nodes, u)
	} else {
		children, err = r.updateUnkeyed(nodes, u)
	}
	if err != nil {
		return err
	}
	r.children = children
	return nil
}

// checkKeys returns a [ConfigurationError] for every key that appears
// more than once among the given siblings.
func (r *RenderMultiChild) checkKeys(nodes []Node) error {
	var errs error
	kl := keylist.New[Key, int](len(nodes))
	for i, n := range nodes {
		k := n.AsNode().Key()
		if !k.IsSet() {
			continue
		}
		if kl.Add(k, i) != nil {
			first, _ := kl.AtTry(k)
			errs = multierror.Append(errs, &ConfigurationError{Parent: Describe(r.config), Key: k, First: first, Index: i})
		}
	}
	return errs
}

func allKeyed(old []RenderNode, nodes []Node) bool {
	for _, c := range old {
		if !c.AsRenderNode().config.AsNode().Key().IsSet() {
			return false
		}
	}
	for _, n := range nodes {
		if !n.AsNode().Key().IsSet() {
			return false
		}
	}
	return true
}

func (r *RenderMultiChild) updateKeyed(nodes []Node, u *edits.ElementUpdate) ([]RenderNode, error) {
	old := r.children
	kl := keylist.New[Key, RenderNode](len(old))
	for _, c := range old {
		if err := kl.Add(c.AsRenderNode().config.AsNode().Key(), c); err != nil {
			return nil, fmt.Errorf("%s: %w", Describe(r.config), err)
		}
	}

	// old index of each new child, or -1 if it needs a new render node
	matched := make([]int, len(nodes))
	removed := make([]bool, len(old))
	var seq []int
	for j, n := range nodes {
		matched[j] = -1
		i, c, ok := kl.Claim(n.AsNode().Key())
		if !ok {
			continue
		}
		if !c.CanUpdateUsing(n) {
			removed[i] = true
			continue
		}
		matched[j] = i
		seq = append(seq, i)
	}
	for i := range kl.Unclaimed() {
		removed[i] = true
	}
	for i, rm := range removed {
		if rm {
			u.RemoveChild(i)
		}
	}

	// matched children on the longest increasing run of old indexes stay
	// where they are and anchor everything else
	var anchors []int
	for _, p := range lis.Indexes(seq) {
		anchors = append(anchors, seq[p])
	}
	before := func(next int) int {
		if next < len(anchors) {
			return anchors[next]
		}
		return len(old)
	}

	children := make([]RenderNode, len(nodes))
	next := 0
	for j, n := range nodes {
		i := matched[j]
		if i < 0 {
			c, err := r.mount(n, u.InsertChild(before(next)))
			if err != nil {
				return nil, err
			}
			children[j] = c
			continue
		}
		if next < len(anchors) && anchors[next] == i {
			next++
		} else {
			u.MoveChild(before(next), i)
		}
		if err := old[i].Update(n, u.UpdateChild(i)); err != nil {
			return nil, err
		}
		children[j] = old[i]
	}
	for i, rm := range removed {
		if rm {
			discard(old[i])
		}
	}
	return children, nil
}

func (r *RenderMultiChild) updateUnkeyed(nodes []Node, u *edits.ElementUpdate) ([]RenderNode, error) {
	old := r.children
	children := make([]RenderNode, len(nodes))
	update := func(i, j int) error {
		children[j] = old[i]
		return old[i].Update(nodes[j], u.UpdateChild(i))
	}

	start := 0
	for start < len(old) && start < len(nodes) && old[start].CanUpdateUsing(nodes[start]) {
		if err := update(start, start); err != nil {
			return nil, err
		}
		start++
	}
	oldEnd, newEnd := len(old), len(nodes)
	for oldEnd > start && newEnd > start && old[oldEnd-1].CanUpdateUsing(nodes[newEnd-1]) {
		oldEnd--
		newEnd--
		if err := update(oldEnd, newEnd); err != nil {
			return nil, err
		}
	}

	// everything left in the middle goes before the first child matched
	// from the back, or at the end if there is none
	claimed := make([]bool, oldEnd-start)
	for j := start; j < newEnd; j++ {
		i := -1
		for k := start; k < oldEnd; k++ {
			if !claimed[k-start] && old[k].CanUpdateUsing(nodes[j]) {
				i = k
				break
			}
		}
		if i < 0 {
			c, err := r.mount(nodes[j], u.InsertChild(oldEnd))
			if err != nil {
				return nil, err
			}
			children[j] = c
			continue
		}
		claimed[i-start] = true
		u.MoveChild(oldEnd, i)
		if err := update(i, j); err != nil {
			return nil, err
		}
	}
	for k := start; k < oldEnd; k++ {
		if !claimed[k-start] {
			u.RemoveChild(k)
			discard(old[k])
		}
	}
	return children, nil
}
