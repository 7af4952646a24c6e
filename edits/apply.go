// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package edits

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Apply applies the update record u to the node n that it describes,
// following the ordering rules of the wire contract: nested child
// updates and replacements first, then removes, then placements in
// order, and finally the changes to n itself. It is the reference
// renderer that a remote host is expected to mirror. Inserted and
// replacing subtrees are parsed from their markup, as a browser does.
func Apply(n *html.Node, u *ElementUpdate) error {
	if u.IsFull() {
		return fmt.Errorf("edits: cannot apply a %s record to an existing node", u.mode)
	}
	var old []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		old = append(old, c)
	}
	childAt := func(i int) (*html.Node, error) {
		if i < 0 || i >= len(old) {
			return nil, fmt.Errorf("edits: child index %d out of range [0, %d) of <%s>", i, len(old), n.Data)
		}
		return old[i], nil
	}

	for _, cu := range u.updates {
		c, err := childAt(cu.index)
		if err != nil {
			return err
		}
		if cu.mode == Replace {
			nn, err := parseRecord(n, cu)
			if err != nil {
				return err
			}
			n.InsertBefore(nn, c)
			n.RemoveChild(c)
			old[cu.index] = nn
			continue
		}
		if err := Apply(c, cu); err != nil {
			return err
		}
	}

	for _, i := range u.removes {
		c, err := childAt(i)
		if err != nil {
			return err
		}
		n.RemoveChild(c)
	}

	for _, p := range u.placements {
		var anchor *html.Node
		if p.Before != len(old) {
			a, err := childAt(p.Before)
			if err != nil {
				return err
			}
			anchor = a
		}
		var c *html.Node
		if p.IsMove() {
			mc, err := childAt(p.From)
			if err != nil {
				return err
			}
			n.RemoveChild(mc)
			c = mc
		} else {
			nc, err := parseRecord(n, p.Insert)
			if err != nil {
				return err
			}
			c = nc
		}
		n.InsertBefore(c, anchor)
	}

	if u.hasText {
		if n.Type != html.TextNode {
			return fmt.Errorf("edits: cannot set text of non-text node <%s>", n.Data)
		}
		n.Data = u.text
	}
	for name, value := range u.attrs.All() {
		setAttr(n, name, value)
	}
	for _, name := range u.removeAttrs {
		n.Attr = slices.DeleteFunc(n.Attr, func(a html.Attribute) bool { return a.Key == name })
	}
	if u.bid != "" {
		setAttr(n, BidAttr, u.bid)
	}
	return nil
}

// ParseMarkup parses markup in the context of the element parent, which
// is how a browser builds nodes from assigned inner HTML.
func ParseMarkup(parent *html.Node, markup string) ([]*html.Node, error) {
	context := parent
	if context.Type != html.ElementNode {
		context = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("edits: parsing markup: %w", err)
	}
	return nodes, nil
}

// parseRecord returns the node parsed from the markup of the full
// record u, which must parse into exactly one node for the child
// indexes of parent to stay in line with the render tree.
func parseRecord(parent *html.Node, u *ElementUpdate) (*html.Node, error) {
	markup, err := u.HTML()
	if err != nil {
		return nil, err
	}
	nodes, err := ParseMarkup(parent, markup)
	if err != nil {
		return nil, err
	}
	if len(nodes) != 1 {
		return nil, fmt.Errorf("edits: markup %q parses into %d nodes", markup, len(nodes))
	}
	return nodes[0], nil
}

// setAttr sets the attribute with the given name on n, keeping its
// position if it already exists.
func setAttr(n *html.Node, name, value string) {
	for i, a := range n.Attr {
		if a.Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}
