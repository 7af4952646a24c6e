// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package edits

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// createList fills a create mode record with <ul> containing the given items.
func createList(t *testing.T, items ...string) *TreeUpdate {
	tu := NewTreeUpdate()
	ul := tu.CreateRoot().InsertChild(0)
	ul.SetTag("ul")
	for _, it := range items {
		li := ul.InsertChild(0)
		li.SetTag("li")
		li.SetKey(it)
		li.InsertChild(0).SetTextNode(it)
	}
	return tu
}

// parseContainer parses the given markup into the children of a <body>.
func parseContainer(t *testing.T, markup string) *html.Node {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	require.NoError(t, err)
	for _, n := range nodes {
		body.AppendChild(n)
	}
	return body
}

func renderChildren(t *testing.T, n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		require.NoError(t, html.Render(&b, c))
	}
	return b.String()
}

func TestPrintHTML(t *testing.T) {
	tu := createList(t, "a", "b")
	h, err := tu.PrintHTML()
	require.NoError(t, err)
	assert.Equal(t, `<ul><li _bkey="a">a</li><li _bkey="b">b</li></ul>`, h)

	msg, err := tu.Render()
	require.NoError(t, err)
	assert.Equal(t, `{"create":"<ul><li _bkey=\"a\">a</li><li _bkey=\"b\">b</li></ul>"}`, msg)
}

func TestPrintAttributes(t *testing.T) {
	tu := NewTreeUpdate()
	d := tu.CreateRoot().InsertChild(0)
	d.SetTag("div")
	d.SetAttribute("id", "foo")
	d.SetAttribute("title", `a "quoted" <title>`)
	d.SetBid("7")
	d.InsertChild(0).SetTextNode("1 < 2")
	h, err := tu.PrintHTML()
	require.NoError(t, err)
	assert.Equal(t, `<div id="foo" title="a &#34;quoted&#34; &lt;title&gt;" _bid="7">1 &lt; 2</div>`, h)
}

func TestPrintErrors(t *testing.T) {
	tu := NewTreeUpdate()
	tu.CreateRoot().InsertChild(0)
	_, err := tu.PrintHTML()
	assert.Error(t, err, "elements need a tag")

	tu = NewTreeUpdate()
	tu.UpdateRoot()
	_, err = tu.PrintHTML()
	assert.Error(t, err)
}

func TestIsEmpty(t *testing.T) {
	tu := NewTreeUpdate()
	root := tu.UpdateRoot()
	assert.True(t, tu.IsEmpty())
	c := root.UpdateChild(0)
	c.UpdateChild(3)
	assert.True(t, tu.IsEmpty(), "nested empty records are empty")
	msg, err := tu.Render()
	require.NoError(t, err)
	assert.Equal(t, `{"noop":true}`, msg)

	c.Child(3).RemoveChild(1)
	assert.False(t, tu.IsEmpty())
}

func TestReplace(t *testing.T) {
	u := newElementUpdate(Update, 2)
	u.SetAttribute("id", "x")
	u.RemoveChild(0)
	r := u.Replace()
	assert.Same(t, u, r)
	assert.Equal(t, Replace, u.Mode())
	assert.Equal(t, 2, u.Index())
	assert.Nil(t, u.Removes())
	assert.Equal(t, 0, u.Attributes().Len())

	ins := newElementUpdate(Insert, 1)
	ins.SetTag("p")
	ins.Replace()
	assert.Equal(t, Insert, ins.Mode())
	assert.Equal(t, "", ins.Tag())
}

func TestAccessors(t *testing.T) {
	u := newElementUpdate(Update, 0)
	u.MoveChild(0, 2)
	u.InsertChild(0).SetTextNode("x")
	u.MoveChild(3, 1)
	assert.Equal(t, []Move{{Before: 0, From: 2}, {Before: 3, From: 1}}, u.Moves())
	assert.Len(t, u.Inserts(), 1)
	assert.Len(t, u.Placements(), 3)
	assert.Equal(t, -1, u.Placements()[1].From)
	assert.Equal(t, "update", Update.String())
	assert.Equal(t, "replace", Replace.String())
}

func TestWire(t *testing.T) {
	tu := NewTreeUpdate()
	ul := tu.UpdateRoot().UpdateChild(0)
	ul.RemoveChild(1)
	ul.MoveChild(0, 2)
	li := ul.InsertChild(3)
	li.SetTag("li")
	li.InsertChild(0).SetTextNode("d")
	first := ul.UpdateChild(0)
	first.SetAttribute("class", "done")
	first.RemoveAttribute("title")
	first.UpdateChild(0).SetText("A")
	ul.UpdateChild(2)
	rep := ul.UpdateChild(3).Replace()
	rep.SetTag("p")

	s, err := tu.Render()
	require.NoError(t, err)
	m, err := DecodeMessage([]byte(s))
	require.NoError(t, err)

	two := 2
	liHTML := "<li>d</li>"
	a := "A"
	want := &Message{Update: &WireUpdate{
		Index: 0,
		Children: []*WireUpdate{{
			Index:  0,
			Remove: []int{1},
			Place: []WirePlacement{
				{Before: 0, From: &two},
				{Before: 3, HTML: &liHTML},
			},
			Replace: []WireReplacement{{Index: 3, HTML: "<p></p>"}},
			Children: []*WireUpdate{{
				Index:       0,
				Attrs:       []WireAttr{{"class", "done"}},
				RemoveAttrs: []string{"title"},
				Children:    []*WireUpdate{{Index: 0, Text: &a}},
			}},
		}},
	}}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("wire message mismatch (-want +got):\n%s", diff)
	}
}

func TestWireAttributeOrder(t *testing.T) {
	tu := NewTreeUpdate()
	div := tu.UpdateRoot().UpdateChild(0)
	div.SetAttribute("title", "t")
	div.SetAttribute("id", "x")
	div.SetAttribute("class", "c")
	s, err := tu.Render()
	require.NoError(t, err)
	assert.Equal(t, `{"update":{"index":0,"children":[{"index":0,"attrs":[["title","t"],["id","x"],["class","c"]]}]}}`, s)
}

func TestApply(t *testing.T) {
	tu := createList(t, "a", "b", "c")
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	require.NoError(t, tu.Apply(body))
	assert.Equal(t, `<ul><li _bkey="a">a</li><li _bkey="b">b</li><li _bkey="c">c</li></ul>`, renderChildren(t, body))

	// [a b c] -> [c a d], with a's text changed
	up := NewTreeUpdate()
	ul := up.UpdateRoot().UpdateChild(0)
	ul.UpdateChild(0).UpdateChild(0).SetText("A")
	ul.RemoveChild(1)
	ul.MoveChild(0, 2)
	d := ul.InsertChild(3)
	d.SetTag("li")
	d.SetKey("d")
	d.InsertChild(0).SetTextNode("d")
	require.NoError(t, up.Apply(body))
	assert.Equal(t, `<ul><li _bkey="c">c</li><li _bkey="a">A</li><li _bkey="d">d</li></ul>`, renderChildren(t, body))
}

func TestApplyPlacementOrder(t *testing.T) {
	body := parseContainer(t, `<ul><li>a</li><li>b</li></ul>`)
	up := NewTreeUpdate()
	ul := up.UpdateRoot().UpdateChild(0)
	x := ul.InsertChild(0)
	x.SetTag("li")
	x.InsertChild(0).SetTextNode("x")
	ul.MoveChild(0, 1)
	require.NoError(t, up.Apply(body))
	assert.Equal(t, `<ul><li>x</li><li>b</li><li>a</li></ul>`, renderChildren(t, body))
}

func TestApplyReplaceThenMove(t *testing.T) {
	body := parseContainer(t, `<div><span>a</span><span>b</span></div>`)
	up := NewTreeUpdate()
	div := up.UpdateRoot().UpdateChild(0)
	p := div.UpdateChild(1).Replace()
	p.SetTag("p")
	p.InsertChild(0).SetTextNode("B")
	div.MoveChild(0, 1)
	require.NoError(t, up.Apply(body))
	assert.Equal(t, `<div><p>B</p><span>a</span></div>`, renderChildren(t, body))
}

func TestApplyAttributes(t *testing.T) {
	body := parseContainer(t, `<div id="a" title="t"></div>`)
	up := NewTreeUpdate()
	div := up.UpdateRoot().UpdateChild(0)
	div.SetAttribute("id", "b")
	div.SetAttribute("class", "c")
	div.RemoveAttribute("title")
	div.SetBid("3")
	require.NoError(t, up.Apply(body))
	assert.Equal(t, `<div id="b" class="c" _bid="3"></div>`, renderChildren(t, body))
}

func TestApplyErrors(t *testing.T) {
	body := parseContainer(t, `<div></div>`)
	up := NewTreeUpdate()
	up.UpdateRoot().UpdateChild(0).RemoveChild(4)
	assert.Error(t, up.Apply(body))

	up = NewTreeUpdate()
	up.UpdateRoot().UpdateChild(0).SetText("x")
	assert.Error(t, up.Apply(body), "elements have no text of their own")

	// an empty text node has no markup, so a browser would not get a node
	up = NewTreeUpdate()
	up.UpdateRoot().UpdateChild(0).InsertChild(0).SetTextNode("")
	assert.ErrorContains(t, up.Apply(body), "parses into 0 nodes")
}

func TestApplyParsesMarkup(t *testing.T) {
	tu := NewTreeUpdate()
	div := tu.CreateRoot().InsertChild(0)
	div.SetTag("div")
	div.InsertChild(0).SetTextNode("a")
	div.InsertChild(0).SetTextNode("b")
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	require.NoError(t, tu.Apply(body))
	require.NotNil(t, body.FirstChild)
	var n int
	for c := body.FirstChild.FirstChild; c != nil; c = c.NextSibling {
		n++
	}
	assert.Equal(t, 1, n, "adjacent text in markup is one node")
}
