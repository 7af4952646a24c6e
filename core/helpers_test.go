// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core_test

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	. "barista.dev/barista/core"
	"barista.dev/barista/dom"
	"barista.dev/barista/edits"
)

// host mirrors the frames of a tree into a parsed DOM, the way a remote
// host would, and checks after every frame that the patched DOM matches
// a fresh rendering of the render tree.
type host struct {
	t    *testing.T
	tree *Tree
	body *html.Node
}

func newHost(t *testing.T, top Node) *host {
	return &host{t: t, tree: NewTree(top), body: newBody()}
}

func newBody() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
}

// frame renders and applies a frame, and returns it.
func (h *host) frame() *edits.TreeUpdate {
	tu, err := h.tree.Frame()
	require.NoError(h.t, err)
	msg, err := tu.Render()
	require.NoError(h.t, err)
	_, err = edits.DecodeMessage([]byte(msg))
	require.NoError(h.t, err)
	require.NoError(h.t, tu.Apply(h.body))
	h.assertConverged()
	return tu
}

// set sets a new top-level configuration and renders a frame.
func (h *host) set(top Node) *edits.TreeUpdate {
	h.tree.SetTopLevel(top)
	return h.frame()
}

func (h *host) html() string {
	return renderNormalized(h.t, h.body)
}

func (h *host) assertConverged() {
	want := newBody()
	h.tree.Root().AppendHTML(want)
	assert.Equal(h.t, renderNormalized(h.t, want), renderNormalized(h.t, h.body))
}

// renderNormalized renders the children of n with sorted attributes.
func renderNormalized(t *testing.T, n *html.Node) string {
	var sortAttrs func(n *html.Node)
	sortAttrs = func(n *html.Node) {
		slices.SortFunc(n.Attr, func(a, b html.Attribute) int { return strings.Compare(a.Key, b.Key) })
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			sortAttrs(c)
		}
	}
	sortAttrs(n)
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		require.NoError(t, html.Render(&b, c))
	}
	return b.String()
}

// list is a stateless widget rendering a <ul> of items, keyed
// by the item text if keyed is set.
type list struct {
	NodeBase
	items []string
	keyed bool
}

func newList(keyed bool, items ...string) *list {
	return &list{items: items, keyed: keyed}
}

func (l *list) Build() Node {
	ul := dom.El("ul")
	for _, it := range l.items {
		li := ul.El("li").SetText(it)
		if l.keyed {
			li.WithKey(it)
		}
	}
	return ul
}

// listRecord returns the record of the <ul> of a [list] at the top level.
func listRecord(tu *edits.TreeUpdate) *edits.ElementUpdate {
	return tu.Root().Child(0)
}

// listChildren returns the render nodes of the items of a [list] at the top level.
func listChildren(tr *Tree) []RenderNode {
	ul := tr.Root().(*RenderStatelessWidget).Child().(*dom.RenderElement)
	return ul.Children()
}

// greeting is a stateless widget counting its builds.
type greeting struct {
	NodeBase
	name   string
	builds *int
}

func (g *greeting) Build() Node {
	*g.builds++
	return dom.El("p").SetText("hello " + g.name)
}

// counter is a stateful widget whose button counts clicks.
type counter struct {
	NodeBase
	label string
}

func (c *counter) CreateState() State {
	return &counterState{}
}

type counterState struct {
	StateBase
	clicks   int
	builds   int
	disposed bool
}

func (s *counterState) Build() Node {
	s.builds++
	w := WidgetOf[*counter](s)
	return dom.El("button").SetText(fmt.Sprintf("%s %d", w.label, s.clicks)).OnClick(func(*Event) {
		s.clicks++
		s.ScheduleUpdate()
	})
}

func (s *counterState) Dispose() {
	s.disposed = true
}

// toggle is a stateful widget whose root element changes tag when flipped.
type toggle struct {
	NodeBase
}

func (tg *toggle) CreateState() State {
	return &toggleState{}
}

type toggleState struct {
	StateBase
	on bool
}

func (s *toggleState) Build() Node {
	if s.on {
		return dom.El("span").SetText("on")
	}
	return dom.El("div").SetText("off")
}

func (s *toggleState) flip() {
	s.on = !s.on
	s.ScheduleUpdate()
}
