// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import (
	"fmt"

	"barista.dev/barista/edits"
)

// State is the long-lived state of a [StatefulWidget]. All state types
// must embed [StateBase].
type State interface {

	// AsState returns the embedded [StateBase].
	AsState() *StateBase

	// Build returns the configuration for the current widget and state.
	// Use [StateBase.Widget] or [WidgetOf] to access the widget.
	Build() Node
}

// Disposer is optionally implemented by states that need to release
// resources when their render node leaves the tree.
type Disposer interface {
	Dispose()
}

// StateBase provides the state shared by all [State] types.
type StateBase struct {
	node   *RenderStatefulWidget
	widget StatefulWidget
}

// AsState satisfies the [State] interface.
func (sb *StateBase) AsState() *StateBase { return sb }

// Widget returns the widget the state was last built for.
func (sb *StateBase) Widget() StatefulWidget { return sb.widget }

// Mounted returns whether the state belongs to a render node that is
// still part of a tree.
func (sb *StateBase) Mounted() bool { return sb.node != nil }

// ScheduleUpdate marks the state dirty, so that the next frame calls
// Build again. Called from Build, it requests one more frame after the
// current one. It does nothing once the state has been unmounted.
func (sb *StateBase) ScheduleUpdate() {
	if sb.node != nil {
		sb.node.ScheduleUpdate()
	}
}

// WidgetOf returns the widget of the given state as its concrete type,
// or the zero value if it has another type.
func WidgetOf[T StatefulWidget](s State) T {
	w, _ := s.AsState().widget.(T)
	return w
}

// RenderStatefulWidget is the render node of a [StatefulWidget]. It owns
// the widget's [State] and has exactly one child, built from the state.
type RenderStatefulWidget struct {
	RenderNodeBase
	state State
	child RenderNode

	// isDirty is set when the state scheduled an update.
	isDirty bool
}

// State returns the state of the widget, which is nil before the first update.
func (r *RenderStatefulWidget) State() State { return r.state }

// Child returns the render node built from the state.
func (r *RenderStatefulWidget) Child() RenderNode { return r.child }

// IsDirty returns whether the state scheduled an update since the last build.
func (r *RenderStatefulWidget) IsDirty() bool { return r.isDirty }

// ScheduleUpdate marks the node dirty and schedules an update.
func (r *RenderStatefulWidget) ScheduleUpdate() {
	r.isDirty = true
	r.RenderNodeBase.ScheduleUpdate()
}

func (r *RenderStatefulWidget) VisitChildren(fun func(c RenderNode) bool) {
	if r.child != nil {
		fun(r.child)
	}
}

func (r *RenderStatefulWidget) Update(n Node, u *edits.ElementUpdate) error {
	skip, err := r.BeginUpdate(n)
	if err != nil || skip {
		return err
	}
	w := n.(StatefulWidget)
	switch {
	case r.NeedsRebuild(n) || r.isDirty:
		if r.state == nil {
			s := w.CreateState()
			if s == nil {
				return fmt.Errorf("%w: %T.CreateState returned nil", ErrInvalidArgument, n)
			}
			s.AsState().node = r
			r.state = s
		}
		r.state.AsState().widget = w
		r.isDirty = false
		child, err := r.updateChild(r.child, r.state.Build(), u)
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

// unmount disposes of the state once the node has left the tree.
func (r *RenderStatefulWidget) unmount() {
	if r.state == nil {
		return
	}
	sb := r.state.AsState()
	if sb.node == nil {
		return
	}
	sb.node = nil
	if d, ok := r.state.(Disposer); ok {
		d.Dispose()
	}
}
