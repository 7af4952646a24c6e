// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dom provides the HTML leaf vocabulary of the reconciler:
// [Element] and [Text] configuration nodes and their render nodes.
package dom

import (
	"log/slog"
	"strings"

	"github.com/jinzhu/copier"

	"barista.dev/barista/base/ordmap"
	"barista.dev/barista/core"
)

// Listener handles an event delivered to an element.
type Listener func(ev *core.Event)

// EventListener is a [Listener] registered for one event type.
type EventListener struct {
	Type string
	Func Listener
}

// Element is the configuration of an HTML element. It is a builder while
// it is being set up, and must not be modified once it has been returned
// from a Build method; use [Element.Clone] to derive a modified copy.
type Element struct {
	core.NodeBase `copier:"-"`

	// Tag is the HTML tag, such as "div" or "button".
	Tag string

	// Attributes are the HTML attributes, in the order they were set.
	Attributes *ordmap.Map[string, string] `copier:"-"`

	// Classes are the CSS class names, rendered as the class attribute.
	Classes []string

	// Text is the text content, rendered before the children.
	Text string

	// Listeners are the event listeners, in registration order.
	Listeners []EventListener

	// Children are the child nodes.
	Children []core.Node `copier:"-"`
}

// El returns a new element with the given tag.
func El(tag string) *Element {
	return &Element{Tag: tag}
}

// WithKey sets the key of the element and returns it.
func (e *Element) WithKey(key string) *Element {
	e.SetKey(core.NewKey(key))
	return e
}

// SetAttribute sets an attribute, replacing any previous value
// while keeping its position.
func (e *Element) SetAttribute(name, value string) *Element {
	if e.Attributes == nil {
		e.Attributes = ordmap.New[string, string]()
	}
	e.Attributes.Add(name, value)
	return e
}

// Attribute returns the value of an attribute and whether it is set.
func (e *Element) Attribute(name string) (string, bool) {
	return e.Attributes.ValueByKeyTry(name)
}

// AddClassName adds a CSS class name.
func (e *Element) AddClassName(name string) *Element {
	e.Classes = append(e.Classes, name)
	return e
}

// ClassName returns the value of the class attribute.
func (e *Element) ClassName() string {
	return strings.Join(e.Classes, " ")
}

// SetText sets the text content.
func (e *Element) SetText(text string) *Element {
	e.Text = text
	return e
}

// AddEventListener registers a listener for the given event type.
func (e *Element) AddEventListener(typ string, fun Listener) *Element {
	e.Listeners = append(e.Listeners, EventListener{Type: typ, Func: fun})
	return e
}

// OnClick registers a listener for click events.
func (e *Element) OnClick(fun Listener) *Element {
	return e.AddEventListener("click", fun)
}

// HasListeners returns whether the element has any event listener,
// in which case it gets a dispatch id.
func (e *Element) HasListeners() bool {
	return len(e.Listeners) > 0
}

// AddChild adds the given children.
func (e *Element) AddChild(children ...core.Node) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// Nest adds the given children and returns the element, which allows
// a tree to be written in one expression.
func (e *Element) Nest(children ...core.Node) *Element {
	return e.AddChild(children...)
}

// El adds a new child element with the given tag and returns it.
func (e *Element) El(tag string) *Element {
	c := El(tag)
	e.AddChild(c)
	return c
}

// Tx adds a new text child and returns the element.
func (e *Element) Tx(text string) *Element {
	return e.AddChild(Tx(text))
}

// Clone returns a deep copy of the element and of its element and text
// descendants. Other children are shared, as configuration nodes are
// immutable.
func (e *Element) Clone() *Element {
	c := &Element{}
	err := copier.CopyWithOption(c, e, copier.Option{CaseSensitive: true, DeepCopy: true})
	if err != nil {
		slog.Error("dom.Element.Clone", "err", err)
	}
	c.SetKey(e.Key())
	if e.Attributes != nil {
		c.Attributes = e.Attributes.Clone()
	}
	c.Children = make([]core.Node, len(e.Children))
	for i, ch := range e.Children {
		switch ch := ch.(type) {
		case *Element:
			c.Children[i] = ch.Clone()
		case *Text:
			c.Children[i] = ch.Clone()
		default:
			c.Children[i] = ch
		}
	}
	return c
}

// Shape returns the tag, so that elements only update elements
// with the same tag.
func (e *Element) Shape() string { return e.Tag }

// textKey keys the leading text child of an element, so that text does
// not force unkeyed matching of keyed children.
var textKey = core.NewKey("\x00text")

// ChildNodes returns the children, preceded by a text node for the
// text content, if any. Adjacent text nodes are merged and empty ones
// dropped, because markup cannot keep them apart: a browser parses
// them into a single text node, or none. A merged node keeps the key
// of the first text node it is made of.
func (e *Element) ChildNodes() []core.Node {
	nodes := make([]core.Node, 0, len(e.Children)+1)

	// index of a text node made here rather than taken from Children,
	// which can be extended in place
	own := -1
	if e.Text != "" {
		tx := Tx(e.Text)
		tx.SetKey(textKey)
		nodes = append(nodes, tx)
		own = 0
	}
	for _, c := range e.Children {
		tx, ok := c.(*Text)
		if !ok {
			nodes = append(nodes, c)
			continue
		}
		if tx.Value == "" {
			continue
		}
		prev, ok := lastText(nodes)
		if !ok {
			nodes = append(nodes, tx)
			continue
		}
		if last := len(nodes) - 1; own != last {
			prev = prev.Clone()
			nodes[last] = prev
			own = last
		}
		prev.Value += tx.Value
	}
	return nodes
}

func lastText(nodes []core.Node) (*Text, bool) {
	if len(nodes) == 0 {
		return nil, false
	}
	tx, ok := nodes[len(nodes)-1].(*Text)
	return tx, ok
}

func (e *Element) Instantiate(t *core.Tree) core.RenderNode {
	return &RenderElement{}
}

// Text is the configuration of a DOM text node.
type Text struct {
	core.NodeBase
	Value string
}

// Tx returns a new text node with the given value.
func Tx(value string) *Text {
	return &Text{Value: value}
}

// Clone returns a copy of the text node.
func (t *Text) Clone() *Text {
	c := Tx(t.Value)
	c.SetKey(t.Key())
	return c
}

func (t *Text) Instantiate(tr *core.Tree) core.RenderNode {
	return &RenderText{}
}
