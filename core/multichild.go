// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import (
	"fmt"

	"barista.dev/barista/edits"
)

// RenderMultiChild is the render node base of a [MultiChildNode]. Leaf
// vocabularies embed it in their own render node types and implement
// [PropertyUpdater] for the properties of the node itself.
type RenderMultiChild struct {
	RenderNodeBase
	children []RenderNode
}

// Children returns the child render nodes in order.
func (r *RenderMultiChild) Children() []RenderNode { return r.children }

// NumChildren returns the number of child render nodes.
func (r *RenderMultiChild) NumChildren() int { return len(r.children) }

// Child returns the child at the given index.
func (r *RenderMultiChild) Child(i int) RenderNode { return r.children[i] }

func (r *RenderMultiChild) VisitChildren(fun func(c RenderNode) bool) {
	for _, c := range r.children {
		if !fun(c) {
			return
		}
	}
}

// Update updates the node using the given [MultiChildNode]: properties
// are diffed through [PropertyUpdater] and children are reconciled by
// [RenderMultiChild.UpdateChildren]. When n is the current configuration
// and only descendants scheduled updates, just those children are
// walked again.
func (r *RenderMultiChild) Update(n Node, u *edits.ElementUpdate) error {
	skip, err := r.BeginUpdate(n)
	if err != nil || skip {
		return err
	}
	mc, ok := n.(MultiChildNode)
	if !ok {
		return fmt.Errorf("%w: %T is not a multi-child node", ErrInvalidArgument, n)
	}
	if r.NeedsRebuild(n) {
		if pu, ok := r.this.(PropertyUpdater); ok {
			var old Node
			if r.built {
				old = r.config
			}
			pu.UpdateProperties(old, n, u)
		}
		err = r.UpdateChildren(mc.ChildNodes(), u)
	} else {
		err = r.RefreshChildren(u)
	}
	if err != nil {
		return err
	}
	r.EndUpdate(n)
	return nil
}

// RefreshChildren walks down to the children that scheduled updates,
// using their current configurations.
func (r *RenderMultiChild) RefreshChildren(u *edits.ElementUpdate) error {
	for i, c := range r.children {
		cb := c.AsRenderNode()
		if !cb.descendantsNeedUpdate {
			continue
		}
		if err := c.Update(cb.config, u.UpdateChild(i)); err != nil {
			return err
		}
	}
	return nil
}
