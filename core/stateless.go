// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import "barista.dev/barista/edits"

// RenderStatelessWidget is the render node of a [StatelessWidget].
// It has exactly one child, built from the widget's Build result.
type RenderStatelessWidget struct {
	RenderNodeBase
	child RenderNode
}

// Child returns the render node built from the widget.
func (r *RenderStatelessWidget) Child() RenderNode { return r.child }

func (r *RenderStatelessWidget) VisitChildren(fun func(c RenderNode) bool) {
	if r.child != nil {
		fun(r.child)
	}
}

func (r *RenderStatelessWidget) Update(n Node, u *edits.ElementUpdate) error {
	skip, err := r.BeginUpdate(n)
	if err != nil || skip {
		return err
	}
	switch {
	case r.NeedsRebuild(n):
		child, err := r.updateChild(r.child, n.(StatelessWidget).Build(), u)
		r.child = child
		if err != nil {
			return err
		}
	case r.child != nil:
		if err := r.child.Update(r.child.AsRenderNode().Configuration(), u); err != nil {
			return err
		}
	}
	r.EndUpdate(n)
	return nil
}
