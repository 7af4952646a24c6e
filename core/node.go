// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import (
	"fmt"
	"reflect"
)

// Node is a configuration node. Configuration nodes are immutable once
// handed to the reconciler and are always pointers, so that identity can
// be checked cheaply with ==. All node types must embed [NodeBase].
type Node interface {

	// AsNode returns the embedded [NodeBase].
	AsNode() *NodeBase
}

// NodeBase provides the state shared by all configuration nodes.
type NodeBase struct {
	key Key
}

// AsNode satisfies the [Node] interface.
func (nb *NodeBase) AsNode() *NodeBase { return nb }

// Key returns the key of the node, which is absent by default.
func (nb *NodeBase) Key() Key { return nb.key }

// SetKey sets the key of the node. It must be called before the node is
// handed to the reconciler.
func (nb *NodeBase) SetKey(k Key) { nb.key = k }

// StatelessWidget is a widget whose Build method is a pure function of
// its own fields.
type StatelessWidget interface {
	Node

	// Build returns the configuration this widget stands for.
	Build() Node
}

// StatefulWidget is a widget whose configuration depends on a [State]
// that is created once and retained across rebuilds.
type StatefulWidget interface {
	Node

	// CreateState returns a new state object for this widget. It is called
	// once per render node, on its first update.
	CreateState() State
}

// Instantiator is implemented by leaf and multi-child configuration
// nodes, which know how to create their own render node.
type Instantiator interface {
	Node

	// Instantiate returns a new, empty render node for this configuration.
	// The render node must embed [RenderNodeBase]; it is initialized and
	// updated by the caller.
	Instantiate(t *Tree) RenderNode
}

// MultiChildNode is an [Instantiator] with an ordered list of children.
type MultiChildNode interface {
	Instantiator

	// ChildNodes returns the children of the node.
	ChildNodes() []Node
}

// Shaper is optionally implemented by configuration nodes whose render
// node can only be updated from a node of the same shape, such as an
// element with the same tag.
type Shaper interface {
	Shape() string
}

// Kinds are the variants of configuration nodes.
type Kinds int32

const (
	// KindLeaf is an [Instantiator] without children.
	KindLeaf Kinds = iota

	// KindMultiChild is a [MultiChildNode].
	KindMultiChild

	// KindStateless is a [StatelessWidget].
	KindStateless

	// KindStateful is a [StatefulWidget].
	KindStateful
)

func (k Kinds) String() string {
	switch k {
	case KindLeaf:
		return "Leaf"
	case KindMultiChild:
		return "MultiChild"
	case KindStateless:
		return "Stateless"
	case KindStateful:
		return "Stateful"
	}
	return fmt.Sprintf("Kinds(%d)", int32(k))
}

// KindOf returns the kind of the given node. A node implementing more
// than one widget interface is classified as stateful first, then
// stateless.
func KindOf(n Node) Kinds {
	switch n.(type) {
	case StatefulWidget:
		return KindStateful
	case StatelessWidget:
		return KindStateless
	case MultiChildNode:
		return KindMultiChild
	}
	return KindLeaf
}

// CanUpdate returns whether a render node built from old can be updated
// using n: both must have the same kind, the same concrete type, the same
// shape if they are [Shaper]s, and equal keys.
func CanUpdate(old, n Node) bool {
	if isNil(old) || isNil(n) {
		return false
	}
	if reflect.TypeOf(old) != reflect.TypeOf(n) || KindOf(old) != KindOf(n) {
		return false
	}
	if sh, ok := old.(Shaper); ok {
		if sh.Shape() != n.(Shaper).Shape() {
			return false
		}
	}
	return old.AsNode().Key() == n.AsNode().Key()
}

// checkNode returns an error wrapping [ErrInvalidArgument] if n cannot be
// used as a configuration node.
func checkNode(n Node) error {
	if n == nil {
		return fmt.Errorf("%w: nil configuration node", ErrInvalidArgument)
	}
	v := reflect.ValueOf(n)
	if v.Kind() != reflect.Pointer {
		return fmt.Errorf("%w: configuration node %T is not a pointer", ErrInvalidArgument, n)
	}
	if v.IsNil() {
		return fmt.Errorf("%w: nil %T configuration node", ErrInvalidArgument, n)
	}
	return nil
}

func isNil(n Node) bool {
	return checkNode(n) != nil
}

// Describe returns a short description of the node for logs and errors.
func Describe(n Node) string {
	if isNil(n) {
		return "<nil>"
	}
	s := fmt.Sprintf("%T", n)
	if sh, ok := n.(Shaper); ok {
		s += "<" + sh.Shape() + ">"
	}
	if k := n.AsNode().Key(); k.IsSet() {
		s += " key=" + k.String()
	}
	return s
}
