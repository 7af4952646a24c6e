// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import (
	"fmt"

	"golang.org/x/net/html"

	"barista.dev/barista/edits"
)

// RenderNode is a node of the render tree. Render nodes are long-lived:
// they are created from a configuration node, retained across frames as
// long as the configuration at their position stays compatible, and
// never replace themselves. All render node types must embed
// [RenderNodeBase].
type RenderNode interface {

	// AsRenderNode returns the embedded [RenderNodeBase].
	AsRenderNode() *RenderNodeBase

	// CanUpdateUsing returns whether this render node can be updated using
	// the given configuration. See [CanUpdate].
	CanUpdateUsing(n Node) bool

	// Update brings the render node in line with the given configuration,
	// recording the DOM changes in u. It returns an error wrapping
	// [ErrIncompatible] if CanUpdateUsing(n) is false.
	Update(n Node, u *edits.ElementUpdate) error

	// VisitChildren calls fun on each child in order, stopping
	// when fun returns [Break].
	VisitChildren(fun func(c RenderNode) bool)

	// DispatchEvent delivers the event to the node with the target id in
	// this subtree, returning whether a node handled it.
	DispatchEvent(ev *Event) bool

	// AppendHTML appends the DOM nodes for this subtree to parent.
	AppendHTML(parent *html.Node)
}

// PropertyUpdater is implemented by render nodes that own properties
// besides their children, such as the tag and attributes of an element.
type PropertyUpdater interface {

	// UpdateProperties records the changes to the node's own properties
	// going from old to n. old is nil on the first update.
	UpdateProperties(old, n Node, u *edits.ElementUpdate)
}

const (
	// Continue = true can be returned from tree iteration functions to continue
	// processing down the tree, as compared to Break = false which stops this branch.
	Continue = true

	// Break = false can be returned from tree iteration functions to stop processing
	// this branch of the tree.
	Break = false
)

// RenderNodeBase implements the parts of [RenderNode] shared by all
// render nodes.
type RenderNodeBase struct {
	tree   *Tree
	config Node

	// this is the render node as its true underlying type, so that
	// methods on the base can call methods of the outer type.
	this   RenderNode
	parent RenderNode

	// built is set after the first successful update.
	built bool

	// descendantsNeedUpdate is set by ScheduleUpdate on the scheduling
	// node and all of its ancestors, and cleared when an update of the
	// node begins, so that updates scheduled while building are kept
	// for the next frame.
	descendantsNeedUpdate bool
}

// AsRenderNode satisfies the [RenderNode] interface.
func (rb *RenderNodeBase) AsRenderNode() *RenderNodeBase { return rb }

func (rb *RenderNodeBase) init(t *Tree, n Node, this RenderNode) {
	rb.tree = t
	rb.config = n
	rb.this = this
	rb.descendantsNeedUpdate = true
}

// Tree returns the tree the node belongs to.
func (rb *RenderNodeBase) Tree() *Tree { return rb.tree }

// Configuration returns the configuration the node was last updated
// using, or the one it was created from before its first update.
func (rb *RenderNodeBase) Configuration() Node { return rb.config }

// This returns the node as its true underlying type.
func (rb *RenderNodeBase) This() RenderNode { return rb.this }

// Parent returns the parent of the node, or nil for the root
// and for detached nodes.
func (rb *RenderNodeBase) Parent() RenderNode { return rb.parent }

// Attach sets the parent of the node.
func (rb *RenderNodeBase) Attach(parent RenderNode) { rb.parent = parent }

// Detach clears the parent of the node.
func (rb *RenderNodeBase) Detach() { rb.parent = nil }

// IsBuilt returns whether the node has been successfully updated at least once.
func (rb *RenderNodeBase) IsBuilt() bool { return rb.built }

// HasDescendantsNeedingUpdate returns whether the node or one of its
// descendants has scheduled an update since the node was last updated.
func (rb *RenderNodeBase) HasDescendantsNeedingUpdate() bool {
	return rb.descendantsNeedUpdate
}

// ScheduleUpdate marks the node and all of its ancestors up to the root,
// so that the next frame walks down to this node again.
// It is idempotent.
func (rb *RenderNodeBase) ScheduleUpdate() {
	rb.descendantsNeedUpdate = true
	rb.WalkUpParent(func(p RenderNode) bool {
		p.AsRenderNode().descendantsNeedUpdate = true
		return Continue
	})
}

// CanUpdateUsing implements [RenderNode.CanUpdateUsing] using [CanUpdate].
func (rb *RenderNodeBase) CanUpdateUsing(n Node) bool {
	return CanUpdate(rb.config, n)
}

// VisitChildren does nothing by default, which is right for leaves.
func (rb *RenderNodeBase) VisitChildren(fun func(c RenderNode) bool) {}

// DispatchEvent delivers the event to the children in order,
// stopping at the first that handles it.
func (rb *RenderNodeBase) DispatchEvent(ev *Event) bool {
	handled := false
	rb.this.VisitChildren(func(c RenderNode) bool {
		handled = c.DispatchEvent(ev)
		return !handled
	})
	return handled
}

// AppendHTML appends the DOM nodes of the children, which is right
// for composites that do not have a DOM node of their own.
func (rb *RenderNodeBase) AppendHTML(parent *html.Node) {
	rb.this.VisitChildren(func(c RenderNode) bool {
		c.AppendHTML(parent)
		return Continue
	})
}

// BeginUpdate checks that the node can be updated using n and reports
// whether the update can be skipped altogether, which is the case when n
// is the configuration the node was last built from and no update has
// been scheduled underneath it. Implementations of [RenderNode.Update]
// call it first and call [RenderNodeBase.EndUpdate] when done.
// Unless the update is skipped, the scheduled update flag is cleared.
func (rb *RenderNodeBase) BeginUpdate(n Node) (skip bool, err error) {
	if err := checkNode(n); err != nil {
		return false, err
	}
	if !rb.this.CanUpdateUsing(n) {
		return false, fmt.Errorf("%w: %s cannot be updated using %s", ErrIncompatible, Describe(rb.config), Describe(n))
	}
	if rb.built && n == rb.config && !rb.descendantsNeedUpdate {
		return true, nil
	}
	rb.descendantsNeedUpdate = false
	return false, nil
}

// NeedsRebuild returns whether an update using n must rebuild the node
// from n, rather than only walk down to descendants that scheduled an
// update. It is true on the first update and whenever n is a new
// configuration.
func (rb *RenderNodeBase) NeedsRebuild(n Node) bool {
	return !rb.built || n != rb.config
}

// EndUpdate records n as the configuration of the node.
func (rb *RenderNodeBase) EndUpdate(n Node) {
	rb.config = n
	rb.built = true
}

// updateChild updates child using n, or replaces it with a new render
// node instantiated from n if it cannot be updated. The returned node is
// the one to keep. u is the record for the child's position; when an
// existing child is replaced, u is turned into a replace record.
func (rb *RenderNodeBase) updateChild(child RenderNode, n Node, u *edits.ElementUpdate) (RenderNode, error) {
	if err := checkNode(n); err != nil {
		return child, fmt.Errorf("building %s: %w", Describe(rb.config), err)
	}
	if child != nil && child.CanUpdateUsing(n) {
		return child, child.Update(n, u)
	}
	if child != nil {
		discard(child)
		u.Replace()
	}
	return rb.mount(n, u)
}

// mount instantiates a render node for n as a child of this node and
// builds it into u.
func (rb *RenderNodeBase) mount(n Node, u *edits.ElementUpdate) (RenderNode, error) {
	c, err := Instantiate(rb.tree, n)
	if err != nil {
		return nil, err
	}
	c.AsRenderNode().Attach(rb.this)
	if err := c.Update(n, u); err != nil {
		return nil, err
	}
	return c, nil
}

// Instantiate returns a new render node for the given configuration,
// which has not been updated yet.
func Instantiate(t *Tree, n Node) (RenderNode, error) {
	if err := checkNode(n); err != nil {
		return nil, err
	}
	var rn RenderNode
	switch w := n.(type) {
	case StatefulWidget:
		rn = &RenderStatefulWidget{}
	case StatelessWidget:
		rn = &RenderStatelessWidget{}
	case Instantiator:
		rn = w.Instantiate(t)
	}
	if rn == nil {
		return nil, fmt.Errorf("%w: %T cannot be instantiated", ErrInvalidArgument, n)
	}
	rn.AsRenderNode().init(t, n, rn)
	return rn, nil
}

// discard detaches a render node that is no longer part of the tree
// and unmounts the states in its subtree, deepest first.
func discard(rn RenderNode) {
	rn.AsRenderNode().Detach()
	WalkDownPost(rn, func(RenderNode) bool { return Continue }, func(c RenderNode) bool {
		if sw, ok := c.(*RenderStatefulWidget); ok {
			sw.unmount()
		}
		return Continue
	})
}
