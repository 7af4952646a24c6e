// Copyright (c) 2020, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

// WalkUp calls the given function on the node and all of its parents,
// stopping if the function returns [Break]. It returns whether walking
// was finished (false if it was aborted with [Break]).
func (rb *RenderNodeBase) WalkUp(fun func(n RenderNode) bool) bool {
	cur := rb.this
	for {
		if !fun(cur) { // false return means stop
			return false
		}
		parent := cur.AsRenderNode().parent
		if parent == nil || parent == cur { // prevent loops
			return true
		}
		cur = parent
	}
}

// WalkUpParent calls the given function on all of the node's parents
// (but not the node itself). It stops walking if the function returns
// [Break] and returns whether walking was finished.
func (rb *RenderNodeBase) WalkUpParent(fun func(n RenderNode) bool) bool {
	cur := rb.parent
	for cur != nil {
		if !fun(cur) {
			return false
		}
		parent := cur.AsRenderNode().parent
		if parent == cur {
			break
		}
		cur = parent
	}
	return true
}

// Root returns the topmost ancestor of the node, which is the node
// itself if it has no parent.
func (rb *RenderNodeBase) Root() RenderNode {
	root := rb.this
	rb.WalkUpParent(func(p RenderNode) bool {
		root = p
		return Continue
	})
	return root
}

// WalkDown calls the given function on n and all of its descendants in
// depth-first pre-order. It stops walking the current branch of the tree
// if the function returns [Break] and keeps walking if it returns
// [Continue].
func WalkDown(n RenderNode, fun func(n RenderNode) bool) {
	if !fun(n) {
		return
	}
	n.VisitChildren(func(c RenderNode) bool {
		WalkDown(c, fun)
		return Continue
	})
}

// WalkDownPost calls fun on n and its descendants in depth-first
// post-order, so that children are visited before their parent.
// Branches for which shouldContinue returns [Break] are skipped.
func WalkDownPost(n RenderNode, shouldContinue func(n RenderNode) bool, fun func(n RenderNode) bool) {
	if !shouldContinue(n) {
		return
	}
	n.VisitChildren(func(c RenderNode) bool {
		WalkDownPost(c, shouldContinue, fun)
		return Continue
	})
	fun(n)
}

// IndexInParent returns the position of n among the children of its
// parent, or -1 if it has no parent.
func IndexInParent(n RenderNode) int {
	p := n.AsRenderNode().parent
	if p == nil {
		return -1
	}
	idx, i := -1, 0
	p.VisitChildren(func(c RenderNode) bool {
		if c == n {
			idx = i
			return Break
		}
		i++
		return Continue
	})
	return idx
}
