// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package edits

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	// KeyAttr is the markup attribute that carries the key of a keyed element.
	KeyAttr = "_bkey"

	// BidAttr is the markup attribute that carries the dispatch identifier
	// of an element with event listeners.
	BidAttr = "_bid"
)

// HTMLNode returns a new detached [html.Node] for this insert or
// replace record, including all of its inserted children.
func (u *ElementUpdate) HTMLNode() (*html.Node, error) {
	if !u.IsFull() {
		return nil, fmt.Errorf("edits: cannot build markup for a %s record", u.mode)
	}
	if u.textNode {
		return &html.Node{Type: html.TextNode, Data: u.text}, nil
	}
	if u.tag == "" {
		return nil, fmt.Errorf("edits: cannot build markup for an element without a tag")
	}
	n := &html.Node{Type: html.ElementNode, Data: u.tag, DataAtom: atom.Lookup([]byte(u.tag))}
	for name, value := range u.attrs.All() {
		n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
	}
	if u.key != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: KeyAttr, Val: u.key})
	}
	if u.bid != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: BidAttr, Val: u.bid})
	}
	if err := u.appendInserted(n); err != nil {
		return nil, err
	}
	return n, nil
}

// appendInserted appends the nodes of all inserted children to n.
// Full records only ever contain insertions, so their order is the
// order of the children.
func (u *ElementUpdate) appendInserted(n *html.Node) error {
	for _, p := range u.placements {
		if p.IsMove() {
			return fmt.Errorf("edits: unexpected move of child %d in a full record", p.From)
		}
		c, err := p.Insert.HTMLNode()
		if err != nil {
			return err
		}
		n.AppendChild(c)
	}
	return nil
}

// PrintHTML writes the markup of this insert or replace record to w,
// depth-first in pre-order. For the host record of a [TreeUpdate] in
// create mode, only the markup of its children is written.
func (u *ElementUpdate) PrintHTML(w io.Writer) error {
	if u.host {
		for _, p := range u.placements {
			if p.IsMove() {
				return fmt.Errorf("edits: unexpected move of child %d in a created tree", p.From)
			}
			if err := p.Insert.PrintHTML(w); err != nil {
				return err
			}
		}
		return nil
	}
	n, err := u.HTMLNode()
	if err != nil {
		return err
	}
	return html.Render(w, n)
}

// HTML returns the markup written by [ElementUpdate.PrintHTML].
func (u *ElementUpdate) HTML() (string, error) {
	var b bytes.Buffer
	err := u.PrintHTML(&b)
	return b.String(), err
}
