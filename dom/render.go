// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dom

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"barista.dev/barista/core"
	"barista.dev/barista/edits"
)

// RenderElement is the render node of an [Element].
type RenderElement struct {
	core.RenderMultiChild

	// bid is the dispatch id of the element, set while it has listeners.
	bid string
}

// Bid returns the dispatch id of the element, or "" if it has no listeners.
func (r *RenderElement) Bid() string { return r.bid }

// Element returns the current configuration of the element.
func (r *RenderElement) Element() *Element {
	return r.Configuration().(*Element)
}

// UpdateProperties records the tag, key, attribute, class and
// dispatch id changes of the element itself.
func (r *RenderElement) UpdateProperties(old, n core.Node, u *edits.ElementUpdate) {
	e := n.(*Element)
	if old == nil {
		u.SetTag(e.Tag)
		if k := e.Key(); k.IsSet() {
			u.SetKey(k.Value())
		}
		for name, value := range e.Attributes.All() {
			u.SetAttribute(name, value)
		}
		if len(e.Classes) > 0 {
			u.SetAttribute("class", e.ClassName())
		}
		if e.HasListeners() {
			r.bid = r.Tree().NextBid()
			u.SetBid(r.bid)
		}
		return
	}
	oe := old.(*Element)
	for name, value := range e.Attributes.All() {
		if ov, ok := oe.Attributes.ValueByKeyTry(name); !ok || ov != value {
			u.SetAttribute(name, value)
		}
	}
	for name := range oe.Attributes.All() {
		if _, ok := e.Attributes.ValueByKeyTry(name); !ok {
			u.RemoveAttribute(name)
		}
	}
	if cn, ocn := e.ClassName(), oe.ClassName(); cn != ocn {
		if cn == "" {
			u.RemoveAttribute("class")
		} else {
			u.SetAttribute("class", cn)
		}
	}
	switch {
	case e.HasListeners() && r.bid == "":
		r.bid = r.Tree().NextBid()
		u.SetBid(r.bid)
	case !e.HasListeners() && r.bid != "":
		r.bid = ""
		u.RemoveAttribute(edits.BidAttr)
	}
}

// DispatchEvent calls the listeners of the element for the event type
// if the event targets this element, and otherwise delivers it to
// the children.
func (r *RenderElement) DispatchEvent(ev *core.Event) bool {
	if r.bid != "" && ev.Target == r.bid {
		for _, l := range r.Element().Listeners {
			if l.Type == ev.Type {
				l.Func(ev)
			}
		}
		return true
	}
	return r.RenderMultiChild.DispatchEvent(ev)
}

// AppendHTML appends the element and its subtree to parent.
func (r *RenderElement) AppendHTML(parent *html.Node) {
	e := r.Element()
	n := &html.Node{Type: html.ElementNode, Data: e.Tag, DataAtom: atom.Lookup([]byte(e.Tag))}
	for name, value := range e.Attributes.All() {
		n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
	}
	if len(e.Classes) > 0 {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: e.ClassName()})
	}
	if k := e.Key(); k.IsSet() {
		n.Attr = append(n.Attr, html.Attribute{Key: edits.KeyAttr, Val: k.Value()})
	}
	if r.bid != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: edits.BidAttr, Val: r.bid})
	}
	parent.AppendChild(n)
	r.RenderMultiChild.AppendHTML(n)
}

// RenderText is the render node of a [Text].
type RenderText struct {
	core.RenderNodeBase
}

// Value returns the current text.
func (r *RenderText) Value() string {
	return r.Configuration().(*Text).Value
}

func (r *RenderText) Update(n core.Node, u *edits.ElementUpdate) error {
	skip, err := r.BeginUpdate(n)
	if err != nil || skip {
		return err
	}
	t := n.(*Text)
	switch {
	case !r.IsBuilt():
		u.SetTextNode(t.Value)
	case t.Value != r.Value():
		u.SetText(t.Value)
	}
	r.EndUpdate(n)
	return nil
}

func (r *RenderText) AppendHTML(parent *html.Node) {
	parent.AppendChild(&html.Node{Type: html.TextNode, Data: r.Value()})
}
