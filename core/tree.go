// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/petermattis/goid"
	"github.com/xlab/treeprint"
	"golang.org/x/net/html"

	"barista.dev/barista/edits"
)

// Tree owns a render tree and produces a [edits.TreeUpdate] per frame.
// A Tree is not safe for concurrent use: frames, event dispatch and
// scheduled updates must all happen on one goroutine at a time.
type Tree struct {
	top  Node
	root RenderNode

	// bids is the last dispatch id handed out by NextBid.
	bids int64

	// frames counts the frames rendered so far.
	frames int

	// owner is the id of the goroutine rendering a frame, or 0.
	owner atomic.Int64

	logger *slog.Logger
}

// Option configures a [Tree].
type Option func(t *Tree)

// WithLogger sets the logger used by the tree, which defaults
// to [slog.Default].
func WithLogger(l *slog.Logger) Option {
	return func(t *Tree) {
		t.logger = l
	}
}

// NewTree returns a new tree for the given top-level configuration.
// Nothing is built until the first frame.
func NewTree(top Node, opts ...Option) *Tree {
	t := &Tree{top: top, logger: slog.Default()}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Root returns the root render node, which is nil before the first frame.
func (t *Tree) Root() RenderNode { return t.root }

// TopLevel returns the top-level configuration.
func (t *Tree) TopLevel() Node { return t.top }

// SetTopLevel sets a new top-level configuration, used from the next
// frame on. If the root render node cannot be updated using it, the
// whole tree is replaced.
func (t *Tree) SetTopLevel(top Node) { t.top = top }

// Frames returns the number of frames rendered so far.
func (t *Tree) Frames() int { return t.frames }

// NeedsFrame returns whether the next frame would do any work.
func (t *Tree) NeedsFrame() bool {
	if t.root == nil {
		return true
	}
	rb := t.root.AsRenderNode()
	return rb.descendantsNeedUpdate || rb.config != t.top
}

// Frame brings the render tree in line with the configuration and
// returns the edits for the host. The first frame builds the whole tree
// and returns a create update; later frames return incremental updates,
// which are empty if nothing changed. After a failed frame, the next
// frame returns a create update again.
func (t *Tree) Frame() (*edits.TreeUpdate, error) {
	id := goid.Get()
	if !t.owner.CompareAndSwap(0, id) {
		owner := t.owner.Load()
		if owner == id {
			return nil, fmt.Errorf("%w: frame requested from within a frame", ErrFrameInProgress)
		}
		return nil, fmt.Errorf("%w: frame requested by goroutine %d while goroutine %d renders", ErrFrameInProgress, id, owner)
	}
	defer t.owner.Store(0)

	var tu *edits.TreeUpdate
	var err error
	if t.root == nil {
		tu, err = t.create()
	} else {
		tu, err = t.update()
	}
	if err != nil {
		return nil, err
	}
	t.frames++
	t.logger.Debug("core.Tree: rendered frame", "frame", t.frames, "create", tu.IsCreate(), "empty", tu.IsEmpty())
	return tu, nil
}

func (t *Tree) create() (*edits.TreeUpdate, error) {
	tu := edits.NewTreeUpdate()
	root, err := Instantiate(t, t.top)
	if err != nil {
		return nil, err
	}
	if err := root.Update(t.top, tu.CreateRoot().InsertChild(0)); err != nil {
		discard(root)
		return nil, err
	}
	t.root = root
	return tu, nil
}

// update returns the edits of an incremental frame. A failed frame has
// already changed part of the render tree, and the host never sees those
// edits, so the tree is dropped and the next frame recreates it.
func (t *Tree) update() (*edits.TreeUpdate, error) {
	tu, err := t.updateRoot()
	if err != nil {
		t.logger.Warn("core.Tree: frame failed, recreating the tree on the next frame", "err", err)
		discard(t.root)
		t.root = nil
		return nil, err
	}
	return tu, nil
}

func (t *Tree) updateRoot() (*edits.TreeUpdate, error) {
	tu := edits.NewTreeUpdate()
	u := tu.UpdateRoot().UpdateChild(0)
	if t.root.CanUpdateUsing(t.top) {
		return tu, t.root.Update(t.top, u)
	}
	root, err := Instantiate(t, t.top)
	if err != nil {
		return nil, err
	}
	if err := root.Update(t.top, u.Replace()); err != nil {
		discard(root)
		return nil, err
	}
	discard(t.root)
	t.root = root
	return tu, nil
}

// RenderFrame renders a frame and returns its JSON encoding for the host.
func (t *Tree) RenderFrame() (string, error) {
	tu, err := t.Frame()
	if err != nil {
		return "", err
	}
	return tu.Render()
}

// DispatchEvent delivers an event to the element with the given dispatch
// id. It returns whether a listener handled it; an unknown target is not
// an error. Listeners typically schedule updates, which are rendered by
// the next frame.
func (t *Tree) DispatchEvent(typ, target, data string) bool {
	if t.root == nil {
		return false
	}
	ev := &Event{Type: typ, Target: target, Data: data}
	handled := t.root.DispatchEvent(ev)
	if !handled {
		t.logger.Debug("core.Tree: event not handled", "event", ev.String())
	}
	return handled
}

// NextBid returns a new dispatch id, unique within the tree.
func (t *Tree) NextBid() string {
	t.bids++
	return strconv.FormatInt(t.bids, 10)
}

// ResetBidCounterForTesting restarts dispatch ids from 1, so that tests
// can compare markup of freshly built trees.
func (t *Tree) ResetBidCounterForTesting() {
	t.bids = 0
}

// PrintHTML returns the markup of the current render tree,
// which is empty before the first frame.
func (t *Tree) PrintHTML() (string, error) {
	if t.root == nil {
		return "", nil
	}
	container := &html.Node{Type: html.DocumentNode}
	t.root.AppendHTML(container)
	var b strings.Builder
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// Dump returns an indented description of the render tree for debugging.
func (t *Tree) Dump() string {
	if t.root == nil {
		return "<empty tree>\n"
	}
	tp := treeprint.NewWithRoot(describeRender(t.root))
	dumpChildren(tp, t.root)
	return tp.String()
}

func dumpChildren(tp treeprint.Tree, rn RenderNode) {
	rn.VisitChildren(func(c RenderNode) bool {
		n := 0
		c.VisitChildren(func(RenderNode) bool { n++; return Continue })
		if n == 0 {
			tp.AddNode(describeRender(c))
			return Continue
		}
		dumpChildren(tp.AddBranch(describeRender(c)), c)
		return Continue
	})
}

func describeRender(rn RenderNode) string {
	rb := rn.AsRenderNode()
	s := fmt.Sprintf("%T %s", rn, Describe(rb.config))
	if rb.descendantsNeedUpdate {
		s += " (needs update)"
	}
	return s
}
